package install

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adamancini/foxport/internal/types"
)

// Fetcher downloads a URL to a local file.
type Fetcher interface {
	Fetch(ctx context.Context, url, dst string) error
}

// VerifyFunc checks a downloaded installer before it is extracted.
type VerifyFunc func(ctx context.Context, file string) error

// ArchiveExtractor unpacks an installer and returns the directory holding
// the browser executable.
type ArchiveExtractor interface {
	Extract(ctx context.Context, installer, destDir string) (string, error)
}

// Installer runs the full install flow for a channel: download, optional
// verification, extraction, and core directory swap with rollback.
type Installer struct {
	Layout    Layout
	Extractor ArchiveExtractor
	Fetcher   Fetcher
	Verify    VerifyFunc // optional
	Guard     *Guard     // optional running-instance check before the swap
	Logf      func(format string, args ...interface{})
}

func (i *Installer) logf(format string, args ...interface{}) {
	if i.Logf != nil {
		i.Logf(format, args...)
	}
}

// Install downloads and installs the channel from url. The existing core
// directory (if any) is renamed aside before the new one lands and restored
// when anything fails, so an aborted update never strands the channel
// without a working browser. The user profile is never touched.
func (i *Installer) Install(ctx context.Context, ch types.Channel, url string) error {
	if i.Guard != nil {
		if err := i.Guard.CheckNotRunning(i.Layout.CoreDir(ch)); err != nil {
			return err
		}
	}

	tmpDir := i.Layout.TempDir()
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	installer := filepath.Join(tmpDir, installerName(ch))
	i.logf("downloading %s installer", ch)
	if err := i.Fetcher.Fetch(ctx, url, installer); err != nil {
		return fmt.Errorf("download %s: %w", ch, err)
	}

	if i.Verify != nil {
		i.logf("verifying %s installer", ch)
		if err := i.Verify(ctx, installer); err != nil {
			return fmt.Errorf("verify %s: %w", ch, err)
		}
	}

	i.logf("extracting %s", ch)
	srcDir, err := i.Extractor.Extract(ctx, installer, filepath.Join(tmpDir, "extracted"))
	if err != nil {
		return fmt.Errorf("extract %s: %w", ch, err)
	}

	if err := i.swapCore(ch, srcDir); err != nil {
		return err
	}

	if err := os.MkdirAll(i.Layout.ProfileDir(ch), 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}

	i.logf("%s installed", ch)
	return nil
}

// swapCore replaces the channel's core directory with the extracted tree.
func (i *Installer) swapCore(ch types.Channel, srcDir string) error {
	coreDir := i.Layout.CoreDir(ch)
	backupDir := coreDir + ".bak"

	if err := os.MkdirAll(i.Layout.ChannelDir(ch), 0o755); err != nil {
		return fmt.Errorf("create channel dir: %w", err)
	}

	hadCore := false
	if _, err := os.Stat(coreDir); err == nil {
		hadCore = true
		os.RemoveAll(backupDir)
		if err := os.Rename(coreDir, backupDir); err != nil {
			return fmt.Errorf("back up existing core (browser still running?): %w", err)
		}
	}

	if err := copyTree(srcDir, coreDir); err != nil {
		os.RemoveAll(coreDir)
		if hadCore {
			if restoreErr := os.Rename(backupDir, coreDir); restoreErr != nil {
				return fmt.Errorf("place new core: %v (restore failed: %w)", err, restoreErr)
			}
			i.logf("restored previous %s core after failure", ch)
		}
		return fmt.Errorf("place new core: %w", err)
	}

	if hadCore {
		os.RemoveAll(backupDir)
	}

	return nil
}

// installerName is the temp-dir filename for a channel's download. Mozilla
// serves self-extracting .exe files for win64 and archives elsewhere; 7-Zip
// unpacks either, so the extension is purely cosmetic.
func installerName(ch types.Channel) string {
	if runtime.GOOS == "windows" {
		return "firefox_" + string(ch) + ".exe"
	}
	return "firefox_" + string(ch) + ".installer"
}

// copyTree copies the directory tree at src into dst, preserving file modes.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		return copyFile(path, target, info.Mode())
	})
}

func copyFile(src, dst string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
