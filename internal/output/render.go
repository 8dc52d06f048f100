package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/adamancini/foxport/internal/types"
	"github.com/adamancini/foxport/internal/update"
)

// Status colors follow a traffic-light scheme: green when current, red when
// an update is pending, gray when nothing is installed, blue when the state
// could not be determined.
var (
	styleUpToDate        = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleUpdateAvailable = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleNotInstalled    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleUnknown         = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	styleChannel         = lipgloss.NewStyle().Bold(true)
)

func styleFor(code types.StatusCode) lipgloss.Style {
	switch code {
	case types.StatusUpToDate:
		return styleUpToDate
	case types.StatusUpdateAvailable:
		return styleUpdateAvailable
	case types.StatusNotInstalled:
		return styleNotInstalled
	default:
		return styleUnknown
	}
}

// RenderStatusLine formats one channel's status for text output.
func RenderStatusLine(ch types.Channel, st update.Status) string {
	label := styleChannel.Render(fmt.Sprintf("%-8s", ch.DisplayName()))
	return label + " " + styleFor(st.Code).Render(statusText(st))
}

func statusText(st update.Status) string {
	switch st.Code {
	case types.StatusUpToDate:
		return fmt.Sprintf("up to date (%s)", st.Installed)
	case types.StatusUpdateAvailable:
		return fmt.Sprintf("update available: %s -> %s", st.Installed, st.Remote)
	case types.StatusNotInstalled:
		return "not installed"
	default:
		if st.Reason != "" {
			return "unknown (" + st.Reason + ")"
		}
		return "unknown"
	}
}
