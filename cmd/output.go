package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jfmyers9/echonest/pkg/echonest"
	"github.com/mattn/go-runewidth"
)

const (
	formatTable = "table"
	formatJSON  = "json"

	columnSeparator = "  "
)

func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", format, formatTable, formatJSON)
	}
}

// renderJSON writes records as an indented JSON array
func renderJSON(w io.Writer, records []echonest.Record) error {
	if records == nil {
		records = []echonest.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// renderTable writes records as fixed-width columns, one record per line.
// Every column is width display columns wide except the last, which is
// left unpadded.
func renderTable(w io.Writer, records []echonest.Record, width int) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}

	columns := recordColumns(records)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = strings.ToUpper(col)
	}
	if err := writeRow(w, header, width); err != nil {
		return err
	}

	for _, r := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = formatCell(r[col])
		}
		if err := writeRow(w, row, width); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, cells []string, width int) error {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = padToWidth(cell, width)
	}
	line := strings.TrimRight(strings.Join(padded, columnSeparator), " ")
	_, err := fmt.Fprintln(w, line)
	return err
}

// recordColumns returns the union of keys across records: "name" and
// "id" first when present, then the rest alphabetically.
func recordColumns(records []echonest.Record) []string {
	seen := make(map[string]bool)
	for _, r := range records {
		for k := range r {
			seen[k] = true
		}
	}

	var columns []string
	for _, preferred := range []string{"name", "id"} {
		if seen[preferred] {
			columns = append(columns, preferred)
			delete(seen, preferred)
		}
	}

	rest := make([]string, 0, len(seen))
	for k := range seen {
		rest = append(rest, k)
	}
	sort.Strings(rest)

	return append(columns, rest...)
}

// formatCell renders a decoded JSON value on a single line
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.Join(strings.Fields(val), " ")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
// If text is shorter than width, pads with spaces.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		truncated := runewidth.Truncate(text, width-ellipsisWidth, "")
		result := truncated + ellipsis

		// Wide runes can leave truncation one column short
		if resultWidth := runewidth.StringWidth(result); resultWidth < width {
			return result + strings.Repeat(" ", width-resultWidth)
		}
		return result
	} else if currentWidth < width {
		return text + strings.Repeat(" ", width-currentWidth)
	}

	return text
}
