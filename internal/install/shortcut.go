package install

import (
	"fmt"
	"os"
	"runtime"

	"github.com/adamancini/foxport/internal/types"
)

// WriteShortcut generates a launcher for the channel in the base directory
// and returns its path. The launcher always starts the browser with the
// channel's isolated profile and -no-remote, so a portable instance never
// attaches to an already running system Firefox.
func WriteShortcut(l Layout, ch types.Channel) (string, error) {
	return writeShortcutFor(l, ch, runtime.GOOS)
}

func writeShortcutFor(l Layout, ch types.Channel, goos string) (string, error) {
	path := l.shortcutPathExt(ch, shortcutExt(goos))
	exe := l.ExecutablePath(ch)
	profile := l.ProfileDir(ch)

	var content string
	var mode os.FileMode = 0o755

	switch goos {
	case "windows":
		content = fmt.Sprintf("@echo off\r\nstart \"\" \"%s\" -profile \"%s\" -no-remote %%*\r\n", exe, profile)
		mode = 0o644
	case "darwin":
		content = fmt.Sprintf("#!/bin/sh\nexec \"%s\" -profile \"%s\" -no-remote \"$@\"\n", exe, profile)
	default:
		content = fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=Firefox Portable %s
Comment=Firefox %s with isolated profile
Exec="%s" -profile "%s" -no-remote
Terminal=false
Categories=Network;WebBrowser;
`, ch.DisplayName(), ch.DisplayName(), exe, profile)
	}

	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return "", fmt.Errorf("write shortcut: %w", err)
	}

	return path, nil
}

// RemoveShortcuts deletes any launcher variants for the channel. Leftovers
// from runs on other platforms are cleaned up too.
func RemoveShortcuts(l Layout, ch types.Channel) {
	for _, ext := range []string{".desktop", ".command", ".cmd", ".lnk"} {
		os.Remove(l.shortcutPathExt(ch, ext))
	}
}
