package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adamancini/foxport/internal/history"
)

// historyReport wraps ledger events for the output writer.
type historyReport struct {
	Events []history.Event `json:"events" yaml:"events"`
}

func (r historyReport) RenderText() string {
	if len(r.Events) == 0 {
		return "no recorded events"
	}

	lines := make([]string, 0, len(r.Events))
	for _, ev := range r.Events {
		var what string
		switch ev.Kind {
		case history.EventInstall:
			what = "installed " + ev.ToVersion
		case history.EventUpdate:
			what = fmt.Sprintf("updated %s -> %s", ev.FromVersion, ev.ToVersion)
		case history.EventRemove:
			what = "removed " + ev.FromVersion
		default:
			what = string(ev.Kind)
		}
		lines = append(lines, fmt.Sprintf("%s  %-8s %s",
			ev.CreatedAt.Local().Format("2006-01-02 15:04"), ev.Channel.DisplayName(), what))
	}
	return strings.Join(lines, "\n")
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded install, update, and remove events",
		Long: `History lists the event ledger kept in the base directory, newest
first.

Examples:
  foxport history
  foxport history --limit 5
  foxport history -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			foxfile, err := loadFoxfile()
			if err != nil {
				return err
			}

			layout := resolveLayout(foxfile)
			store := history.NewStore(layout.HistoryPath())

			events, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			writer, err := newOutputWriter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return writer.Write(historyReport{Events: events})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of events to show (0 for all)")

	return cmd
}
