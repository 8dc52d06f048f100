package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adamancini/foxport/internal/install"
	"github.com/adamancini/foxport/internal/types"
)

func newLaunchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "launch <channel> [args...]",
		Short: "Start a channel's browser with its isolated profile",
		Long: `Launch starts the channel's browser detached with -no-remote and the
channel's own profile, so it never attaches to another running Firefox.
Extra arguments are passed to the browser.

Examples:
  foxport launch stable
  foxport launch nightly https://example.com`,
		Args:              cobra.MinimumNArgs(1),
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
			if err := install.Launch(layout, ch, args[1:]...); err != nil {
				return err
			}

			logf(cmd.OutOrStdout(), "launched %s", ch.DisplayName())
			return nil
		},
	}
}
