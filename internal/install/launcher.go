package install

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/adamancini/foxport/internal/types"
)

// Launch starts the channel's browser detached, with its isolated profile
// and -no-remote. Extra args (URLs, files to open) are passed through.
func Launch(l Layout, ch types.Channel, extra ...string) error {
	exe := l.ExecutablePath(ch)
	if _, err := os.Stat(exe); err != nil {
		return fmt.Errorf("%s is not installed (missing %s)", ch, exe)
	}

	args := append([]string{"-profile", l.ProfileDir(ch), "-no-remote"}, extra...)
	cmd := exec.Command(exe, args...)
	cmd.Dir = l.CoreDir(ch)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", ch, err)
	}

	// Detach: the browser outlives the manager process.
	return cmd.Process.Release()
}

// Remove deletes the channel's entire directory (core and profile) along
// with its shortcuts.
func Remove(l Layout, ch types.Channel) error {
	if err := os.RemoveAll(l.ChannelDir(ch)); err != nil {
		return fmt.Errorf("remove %s: %w", ch, err)
	}
	RemoveShortcuts(l, ch)
	return nil
}
