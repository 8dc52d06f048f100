// Package cmd wires the foxport subcommands together.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adamancini/foxport/internal/debug"
)

var (
	// Global flags
	outputFormat string
	configPath   string
	baseDirFlag  string
	verbose      bool
	quiet        bool
)

var foxportVersion = "dev"

func Execute(version, commit, date string) error {
	foxportVersion = version

	rootCmd := &cobra.Command{
		Use:   "foxport",
		Short: "Portable Firefox channel manager",
		Long: `foxport manages portable Firefox installs for the Stable, Beta, and
Nightly channels side by side, each with its own isolated profile.

Installs live next to the foxport binary so the whole tree can travel on
removable media. Updates swap only the browser core; profiles are never
touched.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return debug.Init(resolveBaseDir(), verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			debug.Close()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to Foxfile")
	rootCmd.PersistentFlags().StringVar(&baseDirFlag, "base-dir", "", "Directory holding the channel installs")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (writes foxport.log in the base dir)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newLaunchCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newShortcutCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newBackupCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Register completion function for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd.Execute()
}
