package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "echonest",
	Short: "Command line client for the EchoNest API",
	Long: `echonest queries the EchoNest music metadata API from the command line.

It lists genres, looks up genre profiles, top artists and similar genres,
and keeps a local history of the queries it ran.

The API key is read from ~/.config/echonest/config.yaml, the
ECHONEST_API_KEY environment variable, or the --api-key flag.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("api-key", "", "EchoNest API key (overrides config)")
	flags.String("base-url", "", "EchoNest API base URL (overrides config)")
	flags.StringP("format", "o", "", "Output format: table or json (overrides config)")
	flags.IntP("width", "w", 0, "Column width for table output (overrides config)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flags.Bool("no-history", false, "Do not record this query in the local history")
}
