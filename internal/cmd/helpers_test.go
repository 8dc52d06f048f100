package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/adamancini/foxport/internal/history"
	"github.com/adamancini/foxport/internal/types"
	"github.com/adamancini/foxport/internal/update"
)

func TestParseChannels(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []types.Channel
		wantErr bool
	}{
		{
			name: "no args means all channels",
			args: nil,
			want: types.AllChannels(),
		},
		{
			name: "single channel",
			args: []string{"beta"},
			want: []types.Channel{types.ChannelBeta},
		},
		{
			name: "release alias",
			args: []string{"release"},
			want: []types.Channel{types.ChannelStable},
		},
		{
			name: "multiple channels",
			args: []string{"stable", "nightly"},
			want: []types.Channel{types.ChannelStable, types.ChannelNightly},
		},
		{
			name:    "unknown channel",
			args:    []string{"aurora"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseChannels(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseChannels(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseChannels(%v) = %v, want %v", tt.args, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseChannels(%v)[%d] = %v, want %v", tt.args, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStatusReportRenderText(t *testing.T) {
	report := statusReport{
		Channels: []channelStatus{
			{
				Channel: types.ChannelStable,
				Status:  update.Status{Code: types.StatusUpToDate, Installed: "120.0", Remote: "120.0"},
			},
			{
				Channel: types.ChannelNightly,
				Status:  update.Status{Code: types.StatusNotInstalled},
			},
		},
	}

	text := report.RenderText()
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderText() = %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "Stable") || !strings.Contains(lines[0], "up to date") {
		t.Errorf("stable line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Nightly") || !strings.Contains(lines[1], "not installed") {
		t.Errorf("nightly line = %q", lines[1])
	}
}

func TestHistoryReportRenderText(t *testing.T) {
	when := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	report := historyReport{
		Events: []history.Event{
			{Channel: types.ChannelStable, Kind: history.EventUpdate, FromVersion: "119.0", ToVersion: "120.0", CreatedAt: when},
			{Channel: types.ChannelBeta, Kind: history.EventInstall, ToVersion: "121.0b4", CreatedAt: when},
			{Channel: types.ChannelNightly, Kind: history.EventRemove, FromVersion: "122.0a1", CreatedAt: when},
		},
	}

	text := report.RenderText()
	for _, want := range []string{"updated 119.0 -> 120.0", "installed 121.0b4", "removed 122.0a1"} {
		if !strings.Contains(text, want) {
			t.Errorf("RenderText() missing %q:\n%s", want, text)
		}
	}
}

func TestHistoryReportRenderTextEmpty(t *testing.T) {
	text := historyReport{}.RenderText()
	if !strings.Contains(text, "no recorded events") {
		t.Errorf("RenderText() = %q", text)
	}
}
