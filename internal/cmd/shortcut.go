package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adamancini/foxport/internal/install"
	"github.com/adamancini/foxport/internal/state"
)

func newShortcutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shortcut [channel...]",
		Short: "Regenerate launch shortcuts",
		Long: `Shortcut writes a launcher for each installed channel into the base
directory. Shortcuts always start the browser with the channel's isolated
profile and -no-remote. Useful after moving the base directory to a new
machine or drive letter, since the shortcuts embed absolute paths.`,
		ValidArgsFunction: channelValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			channels, err := parseChannels(args)
			if err != nil {
				return err
			}

			foxfile, err := loadFoxfile()
			if err != nil {
				return err
			}

			layout := resolveLayout(foxfile)
			reader := state.NewReader()

			for _, ch := range channels {
				if !reader.Read(layout.CoreDir(ch)).Installed {
					logf(cmd.OutOrStdout(), "%s is not installed, skipping", ch)
					continue
				}

				path, err := install.WriteShortcut(layout, ch)
				if err != nil {
					return err
				}
				logf(cmd.OutOrStdout(), "wrote %s", path)
			}

			return nil
		},
	}
}
