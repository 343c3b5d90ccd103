package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/jfmyers9/echonest/internal/config"
	"github.com/jfmyers9/echonest/internal/journal"
	"github.com/jfmyers9/echonest/pkg/echonest"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app bundles what a command needs to talk to EchoNest and print results
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	out     io.Writer
	client  *echonest.Client
	journal *journal.Journal // nil when history is disabled
}

// newApp loads configuration, applies flag overrides and builds the client.
// withClient is false for commands that never call the API.
func newApp(cmd *cobra.Command, withClient bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, cfg)

	if err := validateFormat(cfg.OutputFormat); err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: setupLogger(os.Stderr, cfg.LogLevel),
		out:    cmd.OutOrStdout(),
	}

	if withClient {
		a.client, err = newClient(cfg, a.logger)
		if err != nil {
			return nil, err
		}
	}

	if cfg.History.Enabled {
		a.journal, err = journal.Open(cfg.History.Path)
		if err != nil {
			// History is best effort; queries still run without it
			a.logger.Warn().Err(err).Str("path", cfg.History.Path).Msg("History disabled")
			a.journal = nil
		}
	}

	return a, nil
}

// applyFlags overrides config values with flags the user set
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if v, _ := flags.GetString("api-key"); v != "" {
		cfg.EchoNest.APIKey = v
	}
	if v, _ := flags.GetString("base-url"); v != "" {
		cfg.EchoNest.BaseURL = v
	}
	if v, _ := flags.GetString("format"); v != "" {
		cfg.OutputFormat = v
	}
	if v, _ := flags.GetInt("width"); v > 0 {
		cfg.OutputWidth = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := flags.GetBool("no-history"); v {
		cfg.History.Enabled = false
	}
}

func newClient(cfg *config.Config, logger zerolog.Logger) (*echonest.Client, error) {
	if cfg.EchoNest.APIKey == "" {
		return nil, fmt.Errorf("no API key configured: run 'echonest config set-key', set ECHONEST_API_KEY or pass --api-key")
	}

	client, err := echonest.NewClient(echonest.Config{
		APIKey:     cfg.EchoNest.APIKey,
		BaseURL:    cfg.EchoNest.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.EchoNest.Timeout},
		UserAgent:  "echonest-cli/" + version,
		Logger:     zerologAdapter{logger: logger},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create EchoNest client: %w", err)
	}
	return client, nil
}

// close releases the history database
func (a *app) close() {
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to close history")
		}
	}
}

// record stores the outcome of a query in the history, if enabled
func (a *app) record(ctx context.Context, operation, genre string, params url.Values, records []echonest.Record, queryErr error) {
	if a.journal == nil {
		return
	}

	entry := journal.Entry{
		Operation:   operation,
		Genre:       genre,
		Params:      params,
		ResultCount: len(records),
	}
	if queryErr != nil {
		entry.Error = queryErr.Error()
	}

	if _, err := a.journal.Add(ctx, entry); err != nil {
		a.logger.Warn().Err(err).Str("operation", operation).Msg("Failed to record query")
	}
}

// render writes records in the configured output format
func (a *app) render(records []echonest.Record) error {
	if a.cfg.OutputFormat == formatJSON {
		return renderJSON(a.out, records)
	}
	return renderTable(a.out, records, a.cfg.OutputWidth)
}
