package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adamancini/foxport/internal/backup"
	"github.com/adamancini/foxport/internal/types"
)

// snapshotReport wraps snapshots for the output writer.
type snapshotReport struct {
	Snapshots []backup.Snapshot `json:"snapshots" yaml:"snapshots"`
}

func (r snapshotReport) RenderText() string {
	if len(r.Snapshots) == 0 {
		return "no profile snapshots"
	}

	lines := make([]string, 0, len(r.Snapshots))
	for _, s := range r.Snapshots {
		line := fmt.Sprintf("%-32s %8.1f KiB", s.ID, float64(s.Size)/1024)
		if s.Note != "" {
			line += "  " + s.Note
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage profile snapshots",
		Long: `Backup manages zip snapshots of channel profiles. A snapshot is taken
automatically before each update; these subcommands create, list, restore,
and prune them by hand.`,
	}

	cmd.AddCommand(newBackupCreateCmd())
	cmd.AddCommand(newBackupListCmd())
	cmd.AddCommand(newBackupRestoreCmd())
	cmd.AddCommand(newBackupPruneCmd())

	return cmd
}

func newBackupCreateCmd() *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:               "create <channel>",
		Short:             "Snapshot a channel's profile",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: channelValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := types.ParseChannel(args[0])
			if err != nil {
				return err
			}

			foxfile, err := loadFoxfile()
			if err != nil {
				return err
			}

			layout := resolveLayout(foxfile)
			manager := backup.NewManager(layout.BackupDir())

			snap, err := manager.Create(ch, layout.ProfileDir(ch), note)
			if err != nil {
				return err
			}

			logf(cmd.OutOrStdout(), "created snapshot %s", snap.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Note stored with the snapshot")

	return cmd
}

func newBackupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "list [channel]",
		Short:             "List profile snapshots",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: channelValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ch types.Channel
			if len(args) == 1 {
				parsed, err := types.ParseChannel(args[0])
				if err != nil {
					return err
				}
				ch = parsed
			}

			foxfile, err := loadFoxfile()
			if err != nil {
				return err
			}

			layout := resolveLayout(foxfile)
			manager := backup.NewManager(layout.BackupDir())

			snapshots, err := manager.List(ch)
			if err != nil {
				return err
			}

			writer, err := newOutputWriter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return writer.Write(snapshotReport{Snapshots: snapshots})
		},
	}
}

func newBackupRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <channel> [snapshot-id]",
		Short: "Restore a channel's profile from a snapshot",
		Long: `Restore replaces the channel's live profile with a snapshot's
contents. Without a snapshot ID the newest snapshot for the channel is
used. Close the browser before restoring.`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: channelValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := types.ParseChannel(args[0])
			if err != nil {
				return err
			}

			foxfile, err := loadFoxfile()
			if err != nil {
				return err
			}

			layout := resolveLayout(foxfile)
			manager := backup.NewManager(layout.BackupDir())

			id := ""
			if len(args) == 2 {
				id = args[1]
			} else {
				latest, err := manager.Latest(ch)
				if err != nil {
					return err
				}
				id = latest.ID
			}

			if err := manager.Restore(id, layout.ProfileDir(ch)); err != nil {
				return err
			}

			logf(cmd.OutOrStdout(), "restored %s from %s", ch.DisplayName(), id)
			return nil
		},
	}
}

func newBackupPruneCmd() *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:               "prune [channel]",
		Short:             "Delete old snapshots, keeping the newest per channel",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: channelValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ch types.Channel
			if len(args) == 1 {
				parsed, err := types.ParseChannel(args[0])
				if err != nil {
					return err
				}
				ch = parsed
			}

			foxfile, err := loadFoxfile()
			if err != nil {
				return err
			}

			if keep < 0 {
				keep = foxfile.KeepBackups
			}
			if keep <= 0 {
				keep = backup.DefaultKeepCount
			}

			layout := resolveLayout(foxfile)
			manager := backup.NewManager(layout.BackupDir())

			result, err := manager.Prune(ch, keep)
			if err != nil {
				return err
			}

			logf(cmd.OutOrStdout(), "deleted %d snapshot(s), kept %d", len(result.Deleted), result.Kept)
			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", -1, "Snapshots to keep per channel (default from Foxfile)")

	return cmd
}
