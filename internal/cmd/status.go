package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/adamancini/foxport/internal/output"
	"github.com/adamancini/foxport/internal/state"
	"github.com/adamancini/foxport/internal/types"
	"github.com/adamancini/foxport/internal/update"
)

// channelStatus is one row of the status report.
type channelStatus struct {
	Channel types.Channel `json:"channel" yaml:"channel"`
	Status  update.Status `json:"status" yaml:"status"`
	Source  types.Source  `json:"source,omitempty" yaml:"source,omitempty"`
}

// statusReport is the full report across the requested channels.
type statusReport struct {
	Channels []channelStatus `json:"channels" yaml:"channels"`
}

// RenderText formats the report with one colored line per channel.
func (r statusReport) RenderText() string {
	lines := make([]string, 0, len(r.Channels))
	for _, cs := range r.Channels {
		lines = append(lines, output.RenderStatusLine(cs.Channel, cs.Status))
	}
	return strings.Join(lines, "\n")
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [channel...]",
		Short: "Show installed and available versions per channel",
		Long: `Status compares each channel's installed version against the latest
version Mozilla serves and reports one of: up to date, update available,
not installed, or unknown.

Examples:
  foxport status            # All channels
  foxport status stable     # One channel
  foxport status -o json    # Machine-readable`,
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
			checker := newCheckerFor(foxfile)
			reader := state.NewReader()

			report := statusReport{}
			for _, ch := range channels {
				rec := reader.Read(layout.CoreDir(ch))
				remote, remoteOK := checker.RemoteVersion(ch)
				report.Channels = append(report.Channels, channelStatus{
					Channel: ch,
					Status:  update.Reconcile(rec, remote, remoteOK),
					Source:  rec.Source,
				})
			}

			writer, err := newOutputWriter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return writer.Write(report)
		},
	}
}
