package cmd

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/jfmyers9/echonest/internal/config"
	"github.com/jfmyers9/echonest/internal/journal"
	"github.com/jfmyers9/echonest/pkg/echonest"
	"github.com/rs/zerolog"
)

const similarResponse = `{
	"response": {
		"status": {"version": "4.2", "code": 0, "message": "Success"},
		"genres": [
			{"name": "dance pop", "similarity": 1.0},
			{"name": "europop", "similarity": 0.8}
		]
	}
}`

type fakeAPI struct {
	*httptest.Server

	mu      sync.Mutex
	queries []url.Values
	paths   []string
}

func newFakeAPI(t *testing.T, statusCode int, body string) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.paths = append(f.paths, r.URL.Path)
		f.queries = append(f.queries, r.URL.Query())
		f.mu.Unlock()

		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeAPI) requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.paths)
}

func newTestApp(t *testing.T, api *fakeAPI, format string) (*app, *bytes.Buffer) {
	t.Helper()

	client, err := echonest.NewClient(echonest.Config{APIKey: "test-key", BaseURL: api.URL})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	j, err := journal.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open journal: %v", err)
	}

	var out bytes.Buffer
	a := &app{
		cfg: &config.Config{
			OutputFormat: format,
			OutputWidth:  12,
			History:      config.HistoryConfig{Enabled: true},
		},
		logger:  zerolog.Nop(),
		out:     &out,
		client:  client,
		journal: j,
	}
	t.Cleanup(a.close)

	return a, &out
}

func TestGenreSimilar(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, similarResponse)
	a, out := newTestApp(t, api, formatTable)
	ctx := context.Background()

	err := a.genreSimilar(ctx, "pop", 15, 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if api.paths[0] != "/genre/similar" {
		t.Errorf("expected /genre/similar, got %s", api.paths[0])
	}
	q := api.queries[0]
	if q.Get("name") != "pop" || q.Get("results") != "15" || q.Get("start") != "0" || q.Has("bucket") {
		t.Errorf("unexpected query %v", q)
	}

	if !strings.Contains(out.String(), "dance pop") || !strings.Contains(out.String(), "SIMILARITY") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	entries, err := a.journal.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("failed to read history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Operation != "genre/similar" || e.Genre != "pop" || e.ResultCount != 2 || e.Failed() {
		t.Errorf("unexpected history entry %+v", e)
	}
}

func TestGenreCommands_MissingName(t *testing.T) {
	tests := []struct {
		name string
		run  func(ctx context.Context, a *app) error
	}{
		{
			name: "artists",
			run:  func(ctx context.Context, a *app) error { return a.genreArtists(ctx, "") },
		},
		{
			name: "profile",
			run:  func(ctx context.Context, a *app) error { return a.genreProfile(ctx, "", nil) },
		},
		{
			name: "similar",
			run: func(ctx context.Context, a *app) error {
				return a.genreSimilar(ctx, "", echonest.DefaultSimilarResults, 0, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, http.StatusOK, similarResponse)
			a, _ := newTestApp(t, api, formatTable)
			ctx := context.Background()

			err := tt.run(ctx, a)
			if !errors.Is(err, echonest.ErrMissingRequiredOption) {
				t.Fatalf("expected ErrMissingRequiredOption, got %v", err)
			}
			if api.requests() != 0 {
				t.Errorf("expected no API requests, got %d", api.requests())
			}

			// Failures are recorded too
			entries, err := a.journal.Recent(ctx, 0)
			if err != nil {
				t.Fatalf("failed to read history: %v", err)
			}
			if len(entries) != 1 || !entries[0].Failed() {
				t.Errorf("expected one failed history entry, got %+v", entries)
			}
		})
	}
}

func TestGenreProfile_JSON(t *testing.T) {
	body := `{"response": {"status": {"code": 0, "message": "Success"},
		"genres": [{"name": "rock", "description": "Rock music", "urls": {"wikipedia_url": "http://en.wikipedia.org/wiki/Rock_music"}}]}}`
	api := newFakeAPI(t, http.StatusOK, body)
	a, out := newTestApp(t, api, formatJSON)

	buckets := []echonest.Bucket{echonest.BucketDescription, echonest.BucketURLs}
	if err := a.genreProfile(context.Background(), "rock", buckets); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := api.queries[0]["bucket"]
	if len(got) != 2 || got[0] != "description" || got[1] != "urls" {
		t.Errorf("expected both buckets, got %v", got)
	}
	if !strings.Contains(out.String(), `"wikipedia_url": "http://en.wikipedia.org/wiki/Rock_music"`) {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestGenreSearch(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, similarResponse)
	a, _ := newTestApp(t, api, formatTable)

	opts := echonest.SearchOptions{Name: "pop", Limit: true, Results: 5}
	if err := a.genreSearch(context.Background(), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := api.queries[0]
	if api.paths[0] != "/genre/search" {
		t.Errorf("expected /genre/search, got %s", api.paths[0])
	}
	if q.Get("name") != "pop" || q.Get("limit") != "true" || q.Get("results") != "5" || q.Has("start") {
		t.Errorf("unexpected query %v", q)
	}
}

func TestGenreList_APIError(t *testing.T) {
	api := newFakeAPI(t, http.StatusBadRequest,
		`{"response": {"status": {"code": 1, "message": "Invalid key: Unknown"}}}`)
	a, out := newTestApp(t, api, formatTable)

	err := a.genreList(context.Background())

	var apiErr *echonest.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *echonest.Error, got %v", err)
	}
	if apiErr.Message != "Invalid key: Unknown" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestGenreName(t *testing.T) {
	a := &app{cfg: &config.Config{Genre: "jazz"}}

	if got := a.genreName([]string{"rock"}); got != "rock" {
		t.Errorf("expected argument to win, got %q", got)
	}
	if got := a.genreName(nil); got != "jazz" {
		t.Errorf("expected configured genre, got %q", got)
	}
	if got := a.genreName([]string{""}); got != "jazz" {
		t.Errorf("expected configured genre for empty argument, got %q", got)
	}
}

func TestShowHistory(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, similarResponse)
	a, out := newTestApp(t, api, formatTable)
	ctx := context.Background()

	if err := a.genreSimilar(ctx, "pop", 15, 0, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out.Reset()

	if err := a.showHistory(ctx, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one entry, got:\n%s", out.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[1], "genre/similar") {
		t.Errorf("unexpected history output:\n%s", out.String())
	}
}
