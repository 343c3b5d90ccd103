package cmd

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/jfmyers9/echonest/pkg/echonest"
	"github.com/mattn/go-runewidth"
)

func TestPadToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "no padding when width is 0",
			input:    "rock",
			width:    0,
			expected: "rock",
		},
		{
			name:     "no padding when width is negative",
			input:    "rock",
			width:    -1,
			expected: "rock",
		},
		{
			name:     "pad short text with spaces",
			input:    "pop",
			width:    8,
			expected: "pop     ",
		},
		{
			name:     "exact width unchanged",
			input:    "jazz",
			width:    4,
			expected: "jazz",
		},
		{
			name:     "truncate long text with ellipsis",
			input:    "progressive psychedelic rock",
			width:    15,
			expected: "progressive ...",
		},
		{
			name:     "width smaller than ellipsis",
			input:    "shoegaze",
			width:    2,
			expected: "..",
		},
		{
			name:     "handle wide characters",
			input:    "ロック",
			width:    10,
			expected: "ロック    ",
		},
		{
			name:     "truncate wide characters",
			input:    "ジャパニーズロック",
			width:    10,
			expected: "ジャパ... ",
		},
		{
			name:     "empty string padding",
			input:    "",
			width:    3,
			expected: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := padToWidth(tt.input, tt.width)
			if result != tt.expected {
				t.Errorf("padToWidth(%q, %d) = %q, want %q", tt.input, tt.width, result, tt.expected)
			}
			if tt.width > 0 {
				if w := runewidth.StringWidth(result); w != tt.width {
					t.Errorf("expected display width %d, got %d", tt.width, w)
				}
			}
		})
	}
}

func TestRecordColumns(t *testing.T) {
	records := []echonest.Record{
		{"similarity": 0.9, "name": "pop rock"},
		{"name": "dance pop", "id": "x", "description": "upbeat"},
	}

	got := recordColumns(records)
	want := []string{"name", "id", "description", "similarity"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil", value: nil, want: ""},
		{name: "string", value: "rock", want: "rock"},
		{name: "multiline string", value: "rock\nand  roll", want: "rock and roll"},
		{name: "integer float", value: float64(15), want: "15"},
		{name: "fraction", value: 0.25, want: "0.25"},
		{name: "bool", value: true, want: "true"},
		{name: "object", value: map[string]any{"wikipedia_url": "http://w"}, want: `{"wikipedia_url":"http://w"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatCell(tt.value); got != tt.want {
				t.Errorf("formatCell(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestRenderTable(t *testing.T) {
	records := []echonest.Record{
		{"name": "rock", "similarity": 1.0},
		{"name": "alternative rock", "similarity": 0.75},
	}

	var buf bytes.Buffer
	if err := renderTable(&buf, records, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Join([]string{
		"NAME        SIMILARITY",
		"rock        1",
		"alterna...  0.75",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("unexpected table:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestRenderTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := renderTable(&buf, nil, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "No results.\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := renderJSON(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("expected empty array, got %q", buf.String())
	}

	buf.Reset()
	records := []echonest.Record{{"name": "rock"}}
	if err := renderJSON(&buf, records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["name"] != "rock" {
		t.Errorf("unexpected output %s", buf.String())
	}
}

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{"table", "json"} {
		if err := validateFormat(format); err != nil {
			t.Errorf("validateFormat(%q) returned %v", format, err)
		}
	}
	if err := validateFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestMaskKey(t *testing.T) {
	tests := map[string]string{
		"":                  "(not set)",
		"abc":               "***",
		"FILDTEOIK2HBORODV": "*************RODV",
	}
	for key, want := range tests {
		if got := maskKey(key); got != want {
			t.Errorf("maskKey(%q) = %q, want %q", key, got, want)
		}
	}
}
