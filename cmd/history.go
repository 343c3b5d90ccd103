package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jfmyers9/echonest/internal/journal"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent queries",
	Long: `Show the queries recorded in the local history database.

History is stored in ~/.config/echonest/history.db unless history.path
is set. Disable recording with history.enabled: false or --no-history.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 20, "Number of entries to show (0 shows all)")
	historyCmd.Flags().Bool("clear", false, "Delete every entry")
	historyCmd.Flags().Duration("prune", 0, "Delete entries older than this duration (e.g. 720h)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	limit, _ := flags.GetInt("limit")
	clearAll, _ := flags.GetBool("clear")
	prune, _ := flags.GetDuration("prune")

	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	if a.journal == nil {
		return fmt.Errorf("history is disabled")
	}

	ctx := context.Background()

	switch {
	case clearAll:
		deleted, err := a.journal.Clear(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Deleted %d entries.\n", deleted)
		return nil
	case prune > 0:
		deleted, err := a.journal.Prune(ctx, prune)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Deleted %d entries older than %s.\n", deleted, prune)
		return nil
	}

	return a.showHistory(ctx, limit)
}

func (a *app) showHistory(ctx context.Context, limit int) error {
	entries, err := a.journal.Recent(ctx, limit)
	if err != nil {
		return err
	}

	if a.cfg.OutputFormat == formatJSON {
		return renderHistoryJSON(a.out, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No history.")
		return nil
	}

	widths := []int{6, 20, 14, a.cfg.OutputWidth, 8}
	if err := writeColumns(a.out, widths, "ID", "TIME", "OPERATION", "GENRE", "RESULTS", "ERROR"); err != nil {
		return err
	}
	for _, e := range entries {
		err := writeColumns(a.out, widths,
			strconv.FormatInt(e.ID, 10),
			e.CreatedAt.Local().Format(time.DateTime),
			e.Operation,
			e.Genre,
			strconv.Itoa(e.ResultCount),
			e.Error,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// writeColumns pads each cell to its width; cells past the last width
// are written unpadded.
func writeColumns(w io.Writer, widths []int, cells ...string) error {
	line := ""
	for i, cell := range cells {
		if i > 0 {
			line += columnSeparator
		}
		if i < len(widths) {
			cell = padToWidth(cell, widths[i])
		}
		line += cell
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(line, " "))
	return err
}

type historyJSON struct {
	ID          int64               `json:"id"`
	Operation   string              `json:"operation"`
	Genre       string              `json:"genre,omitempty"`
	Params      map[string][]string `json:"params,omitempty"`
	ResultCount int                 `json:"result_count"`
	Error       string              `json:"error,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

func renderHistoryJSON(w io.Writer, entries []journal.Entry) error {
	out := make([]historyJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyJSON{
			ID:          e.ID,
			Operation:   e.Operation,
			Genre:       e.Genre,
			Params:      e.Params,
			ResultCount: e.ResultCount,
			Error:       e.Error,
			CreatedAt:   e.CreatedAt,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
