package cmd

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/adamancini/foxport/internal/config"
	"github.com/adamancini/foxport/internal/debug"
	"github.com/adamancini/foxport/internal/install"
	"github.com/adamancini/foxport/internal/output"
	"github.com/adamancini/foxport/internal/types"
	"github.com/adamancini/foxport/internal/update"
)

// loadFoxfile resolves and parses the Foxfile. A missing file is not an
// error when no explicit path was given: foxport works out of the box with
// defaults.
func loadFoxfile() (*config.Foxfile, error) {
	path, err := config.FindFoxfile(configPath)
	if err != nil {
		if configPath != "" {
			return nil, err
		}
		debug.Logf("no Foxfile found, using defaults")
		return config.Default(), nil
	}

	debug.Logf("loading Foxfile from %s", path)
	return config.Load(path)
}

// resolveBaseDir applies flag > Foxfile > default precedence for the base
// directory. The Foxfile lookup is best effort; flag and default never fail.
func resolveBaseDir() string {
	if baseDirFlag != "" {
		return baseDirFlag
	}
	if f, err := loadFoxfile(); err == nil && f.BaseDir != "" {
		return f.BaseDir
	}
	return config.DefaultBaseDir()
}

// resolveLayout builds the install layout from the loaded Foxfile and
// global flags.
func resolveLayout(f *config.Foxfile) install.Layout {
	dir := baseDirFlag
	if dir == "" {
		dir = f.BaseDir
	}
	if dir == "" {
		dir = config.DefaultBaseDir()
	}
	return install.Layout{BaseDir: dir}
}

// parseChannels converts positional args into channels. No args means all
// channels.
func parseChannels(args []string) ([]types.Channel, error) {
	if len(args) == 0 {
		return types.AllChannels(), nil
	}

	channels := make([]types.Channel, 0, len(args))
	for _, arg := range args {
		ch, err := types.ParseChannel(arg)
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

// newOutputWriter builds a writer for the global --output flag.
func newOutputWriter(w io.Writer) (*output.Writer, error) {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return nil, err
	}
	return output.NewWriter(w, format), nil
}

// newCheckerFor builds a remote version checker honoring the Foxfile's
// timeout and per-channel URL overrides.
func newCheckerFor(f *config.Foxfile) *update.Checker {
	return update.NewChecker(f.ChannelURLs()).
		WithClient(&http.Client{Timeout: f.Timeout()})
}

// logf prints progress unless quiet mode is on, and mirrors everything to
// the debug log.
func logf(w io.Writer, format string, args ...interface{}) {
	debug.Logf(format, args...)
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}

// channelValidArgs offers the channel names for positional args.
func channelValidArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, 0, 3)
	for _, ch := range types.AllChannels() {
		names = append(names, string(ch))
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
