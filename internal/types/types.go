// Package types defines the shared enums used across foxport packages.
package types

import (
	"fmt"
	"strings"
)

// Channel identifies one independently managed Firefox release track.
type Channel string

const (
	ChannelStable  Channel = "stable"
	ChannelBeta    Channel = "beta"
	ChannelNightly Channel = "nightly"
)

// AllChannels returns the fixed set of channels in display order.
func AllChannels() []Channel {
	return []Channel{ChannelStable, ChannelBeta, ChannelNightly}
}

// ParseChannel converts user input into a Channel.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stable", "release":
		return ChannelStable, nil
	case "beta":
		return ChannelBeta, nil
	case "nightly":
		return ChannelNightly, nil
	default:
		return "", fmt.Errorf("unknown channel '%s' (expected stable, beta, or nightly)", s)
	}
}

// Validate checks that the channel is one of the known tracks.
func (c Channel) Validate() error {
	switch c {
	case ChannelStable, ChannelBeta, ChannelNightly:
		return nil
	default:
		return fmt.Errorf("invalid channel: %s (must be stable, beta, or nightly)", string(c))
	}
}

// DisplayName returns the capitalized name used for directories and shortcuts.
func (c Channel) DisplayName() string {
	switch c {
	case ChannelStable:
		return "Stable"
	case ChannelBeta:
		return "Beta"
	case ChannelNightly:
		return "Nightly"
	default:
		return string(c)
	}
}

func (c Channel) String() string {
	return string(c)
}

// Source identifies where an installed version string was detected from.
type Source string

const (
	SourceMetadataFile   Source = "metadata-file"
	SourceBinaryResource Source = "binary-resource"
	SourceNone           Source = "none"
)

// StatusCode classifies a channel after update reconciliation.
type StatusCode string

const (
	StatusNotInstalled    StatusCode = "not-installed"
	StatusUpToDate        StatusCode = "up-to-date"
	StatusUpdateAvailable StatusCode = "update-available"
	StatusUnknown         StatusCode = "unknown"
)
