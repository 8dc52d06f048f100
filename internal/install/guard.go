package install

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// Guard refuses destructive operations while a browser is running out of
// the directory about to be replaced. Renaming a core dir with the browser
// open fails on Windows and corrupts the session elsewhere.
type Guard struct {
	// listProcesses is replaceable for testing.
	listProcesses func() ([]*process.Process, error)
}

// NewGuard creates a Guard backed by the system process table.
func NewGuard() *Guard {
	return &Guard{listProcesses: process.Processes}
}

// CheckNotRunning returns an error when any running process executes from
// inside dir. Enumeration failures do not block the caller; the guard is an
// early warning, not a lock.
func (g *Guard) CheckNotRunning(dir string) error {
	if g.listProcesses == nil {
		g.listProcesses = process.Processes
	}

	procs, err := g.listProcesses()
	if err != nil {
		return nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil
	}
	prefix := abs + string(os.PathSeparator)

	for _, p := range procs {
		exe, err := p.Exe()
		if err != nil || exe == "" {
			continue
		}
		if strings.HasPrefix(exe, prefix) {
			name, _ := p.Name()
			if name == "" {
				name = "a process"
			}
			return fmt.Errorf("%s (pid %d) is running from %s; close it before updating", name, p.Pid, abs)
		}
	}

	return nil
}
