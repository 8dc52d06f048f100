// Package state detects locally installed Firefox versions.
//
// Detection is dual-source: the application.ini metadata file is tried first,
// then the version resource embedded in the browser executable. A definitive
// answer comes back whenever either source is readable; only when both fail
// is a directory reported as not installed.
package state

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adamancini/foxport/internal/types"
)

// InstallRecord describes what was found in one channel's core directory.
// Version is non-empty exactly when Installed is true. Records are created
// fresh on every detection pass and never persisted.
type InstallRecord struct {
	Installed bool
	Version   string
	Source    types.Source
}

// ExecutableName returns the browser binary name for the current platform.
func ExecutableName() string {
	if runtime.GOOS == "windows" {
		return "firefox.exe"
	}
	return "firefox"
}

// Reader produces InstallRecords for channel core directories.
type Reader struct {
	executableName string
	// readBinaryVersion extracts a version from the executable's embedded
	// resources. Replaceable for testing.
	readBinaryVersion func(path string) (string, bool)
}

// NewReader creates a Reader with platform defaults.
func NewReader() *Reader {
	return &Reader{
		executableName:    ExecutableName(),
		readBinaryVersion: readExecutableVersion,
	}
}

// Read inspects coreDir for a portable install. It never fails: a missing
// directory, unreadable metadata, or unreadable binary resource all degrade
// toward a not-installed record rather than an error.
func (r *Reader) Read(coreDir string) InstallRecord {
	abs, err := filepath.Abs(coreDir)
	if err != nil {
		abs = coreDir
	}

	exePath := filepath.Join(abs, r.executableName)
	if _, err := os.Stat(exePath); err != nil {
		return InstallRecord{Source: types.SourceNone}
	}

	if v, ok := readMetadataVersion(filepath.Join(abs, "application.ini")); ok {
		return InstallRecord{Installed: true, Version: v, Source: types.SourceMetadataFile}
	}

	if v, ok := r.readBinaryVersion(exePath); ok {
		return InstallRecord{Installed: true, Version: v, Source: types.SourceBinaryResource}
	}

	return InstallRecord{Source: types.SourceNone}
}
