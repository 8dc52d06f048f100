package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/adamancini/foxport/internal/state"
)

// ErrSevenZipNotFound means no usable 7-Zip binary could be located.
var ErrSevenZipNotFound = errors.New("7-Zip executable not found")

// windowsSevenZipCandidates are the conventional install locations checked
// when PATH lookup fails.
var windowsSevenZipCandidates = []string{
	`C:\Program Files\7-Zip\7z.exe`,
	`C:\Program Files (x86)\7-Zip\7z.exe`,
}

// FindSevenZip locates a usable 7-Zip binary, preferring the configured
// path when one is given.
func FindSevenZip(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
		if p, err := exec.LookPath(configured); err == nil {
			return p, nil
		}
		return "", fmt.Errorf("%w: configured path %s is not usable", ErrSevenZipNotFound, configured)
	}

	for _, name := range []string{"7z", "7zz", "7za"} {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}

	if runtime.GOOS == "windows" {
		for _, candidate := range windowsSevenZipCandidates {
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}

	return "", ErrSevenZipNotFound
}

// Extractor unpacks Mozilla installers with an external 7-Zip binary. The
// installers are 7z self-extracting executables, so there is nothing to
// decode in-process.
type Extractor struct {
	SevenZip string
}

// Extract unpacks installer into destDir and returns the directory inside
// the extracted tree that holds the browser executable.
func (e *Extractor) Extract(ctx context.Context, installer, destDir string) (string, error) {
	if err := os.RemoveAll(destDir); err != nil {
		return "", fmt.Errorf("clear extract dir: %w", err)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create extract dir: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.SevenZip, "x", installer, "-o"+destDir, "-y")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("7-Zip extraction failed: %w", err)
	}

	return findBrowserRoot(destDir)
}

// findBrowserRoot walks the extracted tree for the directory containing the
// browser executable. Mozilla installers nest it under "core".
func findBrowserRoot(root string) (string, error) {
	exe := state.ExecutableName()
	var found string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == exe {
			found = filepath.Dir(path)
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("scan extracted tree: %w", err)
	}

	if found == "" {
		return "", fmt.Errorf("no %s found inside extracted installer", exe)
	}

	return found, nil
}
