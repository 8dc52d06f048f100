// Package config handles Foxfile parsing and location resolution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/adamancini/foxport/internal/types"
)

const defaultBouncerURL = "https://download.mozilla.org/"

// bouncerProducts maps each channel to its download.mozilla.org product name.
var bouncerProducts = map[types.Channel]string{
	types.ChannelStable:  "firefox-latest-ssl",
	types.ChannelBeta:    "firefox-beta-latest-ssl",
	types.ChannelNightly: "firefox-nightly-latest-ssl",
}

// ChannelConfig overrides settings for a single channel.
type ChannelConfig struct {
	URL string `yaml:"url,omitempty" toml:"url,omitempty" json:"url,omitempty"`
}

// Foxfile is the parsed configuration file. The zero value plus Default()
// is a fully working configuration; every field is optional.
type Foxfile struct {
	Version        int                      `yaml:"version,omitempty" toml:"version,omitempty" json:"version,omitempty"`
	BaseDir        string                   `yaml:"base_dir,omitempty" toml:"base_dir,omitempty" json:"base_dir,omitempty"`
	SevenZipPath   string                   `yaml:"sevenzip_path,omitempty" toml:"sevenzip_path,omitempty" json:"sevenzip_path,omitempty"`
	Language       string                   `yaml:"language,omitempty" toml:"language,omitempty" json:"language,omitempty"`
	OS             string                   `yaml:"os,omitempty" toml:"os,omitempty" json:"os,omitempty"`
	TimeoutSeconds int                      `yaml:"timeout_seconds,omitempty" toml:"timeout_seconds,omitempty" json:"timeout_seconds,omitempty"`
	KeepBackups    int                      `yaml:"keep_backups,omitempty" toml:"keep_backups,omitempty" json:"keep_backups,omitempty"`
	SigningKeyPath string                   `yaml:"signing_key,omitempty" toml:"signing_key,omitempty" json:"signing_key,omitempty"`
	Channels       map[string]ChannelConfig `yaml:"channels,omitempty" toml:"channels,omitempty" json:"channels,omitempty"`
}

// Default returns a Foxfile with all defaults applied.
func Default() *Foxfile {
	return &Foxfile{Version: 1}
}

// DefaultBaseDir returns the directory the managed installs live in when no
// base dir is configured: next to the foxport binary, so the whole tree stays
// portable on removable media. Falls back to the working directory.
func DefaultBaseDir() string {
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			return filepath.Dir(resolved)
		}
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// bouncerOS returns the download.mozilla.org os parameter for this host.
func (f *Foxfile) bouncerOS() string {
	if f.OS != "" {
		return f.OS
	}
	switch runtime.GOOS {
	case "windows":
		return "win64"
	case "darwin":
		return "osx"
	default:
		return "linux64"
	}
}

// DownloadURL returns the bouncer URL for a channel, honoring any per-channel
// override from the Foxfile.
func (f *Foxfile) DownloadURL(ch types.Channel) string {
	if cc, ok := f.Channels[string(ch)]; ok && cc.URL != "" {
		return cc.URL
	}
	lang := f.Language
	if lang == "" {
		lang = "en-US"
	}
	return fmt.Sprintf("%s?product=%s&os=%s&lang=%s", defaultBouncerURL, bouncerProducts[ch], f.bouncerOS(), lang)
}

// ChannelURLs returns the download URL for every channel.
func (f *Foxfile) ChannelURLs() map[types.Channel]string {
	urls := make(map[types.Channel]string, len(bouncerProducts))
	for _, ch := range types.AllChannels() {
		urls[ch] = f.DownloadURL(ch)
	}
	return urls
}

// Timeout returns the configured HTTP timeout for version checks.
func (f *Foxfile) Timeout() time.Duration {
	if f.TimeoutSeconds > 0 {
		return time.Duration(f.TimeoutSeconds) * time.Second
	}
	return 15 * time.Second
}

// FindFoxfile searches for a Foxfile in the standard locations.
// Returns the path to the first Foxfile found, or an error if none exists.
func FindFoxfile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("specified Foxfile not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	// Check FOXFILE environment variable
	if envPath := os.Getenv("FOXFILE"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}

	// Build search paths in order of precedence
	var searchPaths []string

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	searchPaths = append(searchPaths, filepath.Join(xdgConfig, "foxport"))
	searchPaths = append(searchPaths, filepath.Join(home, ".foxport"))
	searchPaths = append(searchPaths, home)

	// The base dir itself, so a Foxfile can travel with the installs.
	searchPaths = append(searchPaths, DefaultBaseDir())

	fileNames := []string{
		"Foxfile",
		"Foxfile.yaml",
		"Foxfile.yml",
		"Foxfile.toml",
		"Foxfile.json",
		".Foxfile",
		".Foxfile.yaml",
		".Foxfile.yml",
		".Foxfile.toml",
		".Foxfile.json",
	}

	for _, dir := range searchPaths {
		for _, name := range fileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	return "", fmt.Errorf("no Foxfile found in standard locations")
}

// Load reads and parses a Foxfile from the given path.
func Load(path string) (*Foxfile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read Foxfile: %w", err)
	}

	format := detectFormat(path, content)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unable to detect file format for %s", path)
	}

	foxfile, err := parse(content, format)
	if err != nil {
		return nil, err
	}

	if err := Validate(foxfile); err != nil {
		return nil, err
	}

	return foxfile, nil
}
