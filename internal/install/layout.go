// Package install manages the on-disk layout of portable channel installs:
// downloading and extracting official installers, swapping core directories,
// generating launch shortcuts, and starting the browser with its isolated
// profile.
package install

import (
	"path/filepath"
	"runtime"

	"github.com/adamancini/foxport/internal/state"
	"github.com/adamancini/foxport/internal/types"
)

// Layout resolves the directories for channel installs under a base dir.
// Each channel owns <base>/<Name>/core (the browser) and <base>/<Name>/profile
// (the user profile); shortcuts land in <base> itself.
type Layout struct {
	BaseDir string
}

// base returns the absolute base directory. Relative paths would silently
// re-anchor when the working directory changes mid-run.
func (l Layout) base() string {
	abs, err := filepath.Abs(l.BaseDir)
	if err != nil {
		return l.BaseDir
	}
	return abs
}

// ChannelDir returns the directory owning one channel's install.
func (l Layout) ChannelDir(ch types.Channel) string {
	return filepath.Join(l.base(), ch.DisplayName())
}

// CoreDir returns the directory holding the browser binaries.
func (l Layout) CoreDir(ch types.Channel) string {
	return filepath.Join(l.ChannelDir(ch), "core")
}

// ProfileDir returns the channel's isolated user profile directory.
func (l Layout) ProfileDir(ch types.Channel) string {
	return filepath.Join(l.ChannelDir(ch), "profile")
}

// ExecutablePath returns the path of the browser binary.
func (l Layout) ExecutablePath(ch types.Channel) string {
	return filepath.Join(l.CoreDir(ch), state.ExecutableName())
}

// TempDir returns the scratch directory used during installs.
func (l Layout) TempDir() string {
	return filepath.Join(l.base(), "temp_install")
}

// HistoryPath returns the location of the event ledger database.
func (l Layout) HistoryPath() string {
	return filepath.Join(l.base(), ".foxport-history.db")
}

// BackupDir returns the directory holding profile snapshots.
func (l Layout) BackupDir() string {
	return filepath.Join(l.base(), "backups")
}

// ShortcutPath returns the launcher path for a channel on this platform.
func (l Layout) ShortcutPath(ch types.Channel) string {
	return l.shortcutPathExt(ch, shortcutExt(runtime.GOOS))
}

func (l Layout) shortcutPathExt(ch types.Channel, ext string) string {
	return filepath.Join(l.base(), "Firefox Portable "+ch.DisplayName()+ext)
}

func shortcutExt(goos string) string {
	switch goos {
	case "windows":
		return ".cmd"
	case "darwin":
		return ".command"
	default:
		return ".desktop"
	}
}
