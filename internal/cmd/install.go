package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/adamancini/foxport/internal/backup"
	"github.com/adamancini/foxport/internal/config"
	"github.com/adamancini/foxport/internal/debug"
	"github.com/adamancini/foxport/internal/download"
	"github.com/adamancini/foxport/internal/history"
	"github.com/adamancini/foxport/internal/install"
	"github.com/adamancini/foxport/internal/interactive"
	"github.com/adamancini/foxport/internal/state"
	"github.com/adamancini/foxport/internal/types"
	"github.com/adamancini/foxport/internal/update"
)

func newInstallCmd() *cobra.Command {
	var yes bool
	var force bool
	var skipVerify bool
	var skipBackup bool

	cmd := &cobra.Command{
		Use:     "install [channel...]",
		Aliases: []string{"update"},
		Short:   "Install or update channels",
		Long: `Install downloads the latest installer for each requested channel,
verifies it against Mozilla's SHA512SUMS manifest, extracts it with 7-Zip,
and swaps the channel's core directory. Existing profiles are untouched; a
profile snapshot is taken before each update.

Channels that are already up to date are skipped unless --force is given.

Examples:
  foxport install                  # Install or update everything
  foxport install nightly          # One channel
  foxport update --yes             # No confirmation prompts
  foxport install stable --force   # Reinstall even when current`,
		ValidArgsFunction: channelValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			channels, err := parseChannels(args)
			if err != nil {
				return err
			}
			return runInstall(cmd.Context(), cmd.OutOrStdout(), cmd.InOrStdin(), channels, installOptions{
				yes:        yes,
				force:      force,
				skipVerify: skipVerify,
				skipBackup: skipBackup,
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompts")
	cmd.Flags().BoolVar(&force, "force", false, "Reinstall even when already up to date")
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "Skip SHA512SUMS verification")
	cmd.Flags().BoolVar(&skipBackup, "skip-backup", false, "Skip the profile snapshot before updating")

	return cmd
}

type installOptions struct {
	yes        bool
	force      bool
	skipVerify bool
	skipBackup bool
}

func runInstall(ctx context.Context, stdout io.Writer, stdin io.Reader, channels []types.Channel, opts installOptions) error {
	foxfile, err := loadFoxfile()
	if err != nil {
		return err
	}

	layout := resolveLayout(foxfile)
	checker := newCheckerFor(foxfile)
	reader := state.NewReader()
	prompter := interactive.NewPrompterWithIO(stdin, stdout)
	store := history.NewStore(layout.HistoryPath())
	backups := backup.NewManager(layout.BackupDir())

	installer, makeVerify, err := buildInstaller(foxfile, layout, stdout, opts.skipVerify)
	if err != nil {
		return err
	}

	failures := 0
	for _, ch := range channels {
		rec := reader.Read(layout.CoreDir(ch))
		remote, finalURL, remoteOK := checker.Resolve(ch)
		st := update.Reconcile(rec, remote, remoteOK)

		if st.Code == types.StatusUpToDate && !opts.force {
			logf(stdout, "%s is up to date (%s)", ch, rec.Version)
			continue
		}

		// Nightly never resolves a release number; install from the bouncer
		// URL directly and let the download surface any network failure.
		url := finalURL
		if url == "" {
			url = foxfile.DownloadURL(ch)
		}

		if !opts.yes {
			target := remote
			if !remoteOK {
				target = "latest"
			}
			question := fmt.Sprintf("Install %s (%s)?", ch.DisplayName(), target)
			if rec.Installed {
				question = fmt.Sprintf("Update %s (%s -> %s)?", ch.DisplayName(), rec.Version, target)
			}
			switch prompter.Ask("%s", question) {
			case interactive.ResponseNo:
				continue
			case interactive.ResponseQuit:
				return nil
			}
		}

		if rec.Installed && !opts.skipBackup {
			snapshotProfile(stdout, backups, foxfile, layout, ch)
		}

		installer.Verify = makeVerify(url)
		if err := installer.Install(ctx, ch, url); err != nil {
			logf(stdout, "%s: %v", ch, err)
			failures++
			continue
		}

		if _, err := install.WriteShortcut(layout, ch); err != nil {
			debug.Logf("shortcut for %s: %v", ch, err)
		}

		kind := history.EventInstall
		if rec.Installed {
			kind = history.EventUpdate
		}
		newRec := reader.Read(layout.CoreDir(ch))
		if err := store.Record(ctx, history.Event{
			Channel:     ch,
			Kind:        kind,
			FromVersion: rec.Version,
			ToVersion:   newRec.Version,
		}); err != nil {
			debug.Logf("record history for %s: %v", ch, err)
		}

		logf(stdout, "%s installed (%s)", ch, newRec.Version)
	}

	if failures > 0 {
		return fmt.Errorf("%d channel(s) failed", failures)
	}
	return nil
}

// buildInstaller assembles the download, verify, and extract pipeline. The
// returned makeVerify builds a per-URL verification step, since the
// checksum manifest location is derived from the resolved installer URL.
func buildInstaller(foxfile *config.Foxfile, layout install.Layout, stdout io.Writer, skipVerify bool) (*install.Installer, func(url string) install.VerifyFunc, error) {
	sevenZip, err := install.FindSevenZip(foxfile.SevenZipPath)
	if err != nil {
		return nil, nil, err
	}
	debug.Logf("using 7-Zip at %s", sevenZip)

	var progress download.ProgressFunc
	if !quiet {
		progress = func(done, total int64) {
			if total > 0 {
				fmt.Fprintf(stdout, "\rdownloading... %3d%%", done*100/total)
				if done == total {
					fmt.Fprintln(stdout)
				}
			}
		}
	}

	installer := &install.Installer{
		Layout:    layout,
		Extractor: &install.Extractor{SevenZip: sevenZip},
		Fetcher:   download.New(download.WithProgress(progress)),
		Guard:     install.NewGuard(),
		Logf: func(format string, args ...interface{}) {
			logf(stdout, format, args...)
		},
	}

	if skipVerify {
		logf(stdout, "warning: installer verification disabled")
		return installer, func(string) install.VerifyFunc { return nil }, nil
	}

	verifier := download.NewVerifier()
	if foxfile.SigningKeyPath != "" {
		key, err := os.Open(foxfile.SigningKeyPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open signing key: %w", err)
		}
		defer key.Close()
		if verifier, err = verifier.WithArmoredKey(key); err != nil {
			return nil, nil, fmt.Errorf("load signing key: %w", err)
		}
	}

	makeVerify := func(url string) install.VerifyFunc {
		sumsURL, sigURL, entryName, ok := download.SumsLocation(url)
		if !ok {
			// Nightly builds publish no release manifest.
			debug.Logf("no checksum manifest for %s, skipping verification", url)
			return nil
		}
		return func(ctx context.Context, file string) error {
			if err := verifier.VerifyFile(ctx, file, entryName, sumsURL, sigURL); err != nil {
				return err
			}
			logf(stdout, "checksum verified")
			return nil
		}
	}

	return installer, makeVerify, nil
}

// snapshotProfile archives the profile before an update and prunes old
// snapshots. Failures are logged, never fatal: a backup problem must not
// block an update the user asked for.
func snapshotProfile(stdout io.Writer, backups *backup.Manager, foxfile *config.Foxfile, layout install.Layout, ch types.Channel) {
	if _, err := os.Stat(layout.ProfileDir(ch)); err != nil {
		return
	}

	snap, err := backups.Create(ch, layout.ProfileDir(ch), "pre-update")
	if err != nil {
		logf(stdout, "warning: profile snapshot for %s failed: %v", ch, err)
		return
	}
	debug.Logf("profile snapshot %s created", snap.ID)

	keep := foxfile.KeepBackups
	if keep == 0 {
		keep = backup.DefaultKeepCount
	}
	if _, err := backups.Prune(ch, keep); err != nil {
		debug.Logf("prune snapshots for %s: %v", ch, err)
	}
}
