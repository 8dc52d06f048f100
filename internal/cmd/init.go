package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adamancini/foxport/internal/config"
)

// starterFoxfile is the commented template written by foxport init. Every
// setting is optional; the defaults match what foxport does with no
// Foxfile at all.
const starterFoxfile = `version: 1

# Directory holding the channel installs. Defaults to the directory the
# foxport binary lives in, so the tree stays portable.
#base_dir: /media/usb/firefox

# Path to the 7-Zip binary used to unpack installers. Defaults to the
# first of 7z, 7zz, 7za found on PATH.
#sevenzip_path: /usr/bin/7z

# Download language, passed to download.mozilla.org.
#language: en-US

# HTTP timeout in seconds for version checks and downloads.
#timeout_seconds: 15

# Profile snapshots kept per channel before pruning.
#keep_backups: 5

# Armored PGP key used to verify SHA512SUMS signatures. Without it,
# installers are still checked against the digest manifest.
#signing_key: ${HOME}/.foxport/mozilla.asc

# Per-channel download URL overrides.
#channels:
#  nightly:
#    url: https://download.mozilla.org/?product=firefox-nightly-latest-ssl&os=win64&lang=de
`

func newInitCmd() *cobra.Command {
	var outputPath string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter Foxfile",
		Long: `Create a commented starter Foxfile. Every setting in it is optional
and documents the default.

Examples:
  foxport init                        # Foxfile next to the installs
  foxport init --config ~/.Foxfile    # Custom location
  foxport init --force                # Overwrite an existing file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := outputPath
			if path == "" {
				path = configPath
			}
			return runInit(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), path, force)
		},
	}

	cmd.Flags().StringVar(&outputPath, "path", "", "Output path for the Foxfile")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing Foxfile")

	return cmd
}

// runInit executes the init workflow.
func runInit(stdin io.Reader, stdout, stderr io.Writer, outputPath string, force bool) error {
	reader := bufio.NewReader(stdin)

	if outputPath == "" {
		outputPath = filepath.Join(config.DefaultBaseDir(), "Foxfile")
	}
	outputPath = expandHomePath(outputPath)

	if _, err := os.Stat(outputPath); err == nil && !force {
		_, _ = fmt.Fprintf(stderr, "Foxfile already exists at %s\n", outputPath)
		_, _ = fmt.Fprintf(stdout, "Overwrite? [y/N]: ")
		answer, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read input: %w", err)
		}
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			_, _ = fmt.Fprintln(stdout, "Aborted.")
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(outputPath), err)
	}

	if err := os.WriteFile(outputPath, []byte(starterFoxfile), 0o644); err != nil {
		return fmt.Errorf("failed to write Foxfile: %w", err)
	}

	_, _ = fmt.Fprintf(stdout, "Created %s\n", outputPath)
	_, _ = fmt.Fprintln(stdout, "\nNext steps:")
	_, _ = fmt.Fprintln(stdout, "  1. Edit the Foxfile to customize")
	_, _ = fmt.Fprintln(stdout, "  2. Run 'foxport status' to check channel versions")
	_, _ = fmt.Fprintln(stdout, "  3. Run 'foxport install' to install")

	return nil
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
