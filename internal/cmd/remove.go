package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adamancini/foxport/internal/history"
	"github.com/adamancini/foxport/internal/install"
	"github.com/adamancini/foxport/internal/interactive"
	"github.com/adamancini/foxport/internal/state"
	"github.com/adamancini/foxport/internal/types"
)

func newRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <channel>...",
		Short: "Remove channel installs",
		Long: `Remove deletes a channel's entire directory, including the browser core
AND the user profile, along with its shortcuts. Profile snapshots in the
backups directory are kept.

Examples:
  foxport remove beta
  foxport remove stable nightly --yes`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: channelValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			channels := make([]types.Channel, 0, len(args))
			for _, arg := range args {
				ch, err := types.ParseChannel(arg)
				if err != nil {
					return err
				}
				channels = append(channels, ch)
			}

			foxfile, err := loadFoxfile()
			if err != nil {
				return err
			}

			layout := resolveLayout(foxfile)
			reader := state.NewReader()
			prompter := interactive.NewPrompterWithIO(cmd.InOrStdin(), cmd.OutOrStdout())
			store := history.NewStore(layout.HistoryPath())

			for _, ch := range channels {
				rec := reader.Read(layout.CoreDir(ch))
				if !rec.Installed {
					logf(cmd.OutOrStdout(), "%s is not installed", ch)
					continue
				}

				if !yes && !prompter.Confirm("Remove %s (%s) including its profile?", ch.DisplayName(), rec.Version) {
					logf(cmd.OutOrStdout(), "skipped %s", ch)
					continue
				}

				if err := install.Remove(layout, ch); err != nil {
					return fmt.Errorf("remove %s: %w", ch, err)
				}

				_ = store.Record(cmd.Context(), history.Event{
					Channel:     ch,
					Kind:        history.EventRemove,
					FromVersion: rec.Version,
				})

				logf(cmd.OutOrStdout(), "removed %s", ch.DisplayName())
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompts")

	return cmd
}
