package config

import (
	"fmt"
	"strings"

	"github.com/adamancini/foxport/internal/types"
)

// ValidationError represents a Foxfile validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the Foxfile for valid values.
func Validate(f *Foxfile) error {
	var errors []string

	if f.TimeoutSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "timeout_seconds",
			Message: "must be non-negative",
		}.Error())
	}

	if f.KeepBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "keep_backups",
			Message: "must be non-negative",
		}.Error())
	}

	for name, cc := range f.Channels {
		if err := validateChannel(name, cc); err != nil {
			errors = append(errors, err.Error())
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func validateChannel(name string, cc ChannelConfig) error {
	if _, err := types.ParseChannel(name); err != nil {
		return ValidationError{
			Field:   fmt.Sprintf("channels.%s", name),
			Message: "unknown channel (must be stable, beta, or nightly)",
		}
	}

	if cc.URL != "" && !strings.HasPrefix(cc.URL, "http://") && !strings.HasPrefix(cc.URL, "https://") {
		return ValidationError{
			Field:   fmt.Sprintf("channels.%s.url", name),
			Message: "url must start with http:// or https://",
		}
	}

	return nil
}
