package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jfmyers9/echonest/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key KEY",
	Short: "Save the EchoNest API key",
	Long: `Save the EchoNest API key to ~/.config/echonest/config.yaml.

You can get an API key from: http://developer.echonest.com/account/register`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSetKey,
}

var configSetGenreCmd = &cobra.Command{
	Use:   "set-genre NAME",
	Short: "Save the default genre name",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetGenre,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configSetGenreCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, cfg)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config file:   %s\n", filepath.Join(config.GetConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "api_key:       %s\n", maskKey(cfg.EchoNest.APIKey))
	fmt.Fprintf(out, "base_url:      %s\n", cfg.EchoNest.BaseURL)
	fmt.Fprintf(out, "timeout:       %s\n", cfg.EchoNest.Timeout)
	fmt.Fprintf(out, "genre:         %s\n", cfg.Genre)
	fmt.Fprintf(out, "output_format: %s\n", cfg.OutputFormat)
	fmt.Fprintf(out, "output_width:  %d\n", cfg.OutputWidth)
	fmt.Fprintf(out, "log_level:     %s\n", cfg.LogLevel)
	fmt.Fprintf(out, "history:       %t (%s)\n", cfg.History.Enabled, cfg.History.Path)
	return nil
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	key := strings.TrimSpace(args[0])
	if key == "" {
		return fmt.Errorf("API key must not be empty")
	}
	return updateConfig(cmd, func(cfg *config.Config) {
		cfg.EchoNest.APIKey = key
	})
}

func runConfigSetGenre(cmd *cobra.Command, args []string) error {
	return updateConfig(cmd, func(cfg *config.Config) {
		cfg.Genre = strings.TrimSpace(args[0])
	})
}

// updateConfig loads the stored configuration, applies fn and saves it.
// Flag overrides are not applied so they never end up in the file.
func updateConfig(cmd *cobra.Command, fn func(cfg *config.Config)) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fn(cfg)

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved to %s/config.yaml\n", config.GetConfigDir())
	return nil
}

// maskKey hides all but the last four characters of an API key
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
