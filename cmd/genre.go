package cmd

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jfmyers9/echonest/pkg/echonest"
	"github.com/spf13/cobra"
)

// genreCmd groups the genre resource commands
var genreCmd = &cobra.Command{
	Use:   "genre",
	Short: "Query the EchoNest genre API",
	Long: `Query the EchoNest genre API.

Commands that take a [name] argument fall back to the "genre" value in
~/.config/echonest/config.yaml (or ECHONEST_GENRE) when it is omitted.`,
}

var genreListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every genre",
	Args:  cobra.NoArgs,
	RunE:  runGenreList,
}

var genreArtistsCmd = &cobra.Command{
	Use:   "artists [name]",
	Short: "Show the top artists for a genre",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGenreArtists,
}

var genreProfileCmd = &cobra.Command{
	Use:   "profile [name]",
	Short: "Show basic information about a genre",
	Long: `Show basic information about a genre.

Use --bucket to include extra data: description, urls.
The flag may be repeated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenreProfile,
}

var genreSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search genres by name",
	Args:  cobra.NoArgs,
	RunE:  runGenreSearch,
}

var genreSimilarCmd = &cobra.Command{
	Use:   "similar [name]",
	Short: "Show genres similar to a genre",
	Long: `Show genres similar to a genre.

EchoNest accepts between 1 and 99 results; other values are sent
unchanged and rejected by the API.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenreSimilar,
}

func init() {
	rootCmd.AddCommand(genreCmd)
	genreCmd.AddCommand(genreListCmd)
	genreCmd.AddCommand(genreArtistsCmd)
	genreCmd.AddCommand(genreProfileCmd)
	genreCmd.AddCommand(genreSearchCmd)
	genreCmd.AddCommand(genreSimilarCmd)

	genreProfileCmd.Flags().StringSliceP("bucket", "b", nil, "Extra data to return: description, urls")

	genreSearchCmd.Flags().StringP("name", "n", "", "Genre name to search for")
	genreSearchCmd.Flags().StringSliceP("bucket", "b", nil, "Extra data to return: description, urls")
	genreSearchCmd.Flags().Bool("limit", false, "Limit results to the given id space or catalog")
	genreSearchCmd.Flags().Int("results", 0, "Number of results (0 uses the API default)")
	genreSearchCmd.Flags().Int("start", 0, "Index of the first result")

	genreSimilarCmd.Flags().Int("results", echonest.DefaultSimilarResults, "Number of results")
	genreSimilarCmd.Flags().Int("start", 0, "Index of the first result")
	genreSimilarCmd.Flags().StringSliceP("bucket", "b", nil, "Extra data to return: description, urls")
}

// withApp runs fn with an app built from cmd and closes it afterwards
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, a)
}

// genreName picks the name argument, falling back to the configured genre
func (a *app) genreName(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return a.cfg.Genre
}

// genreService returns a fresh genre service with name set when non-empty
func (a *app) genreService(name string) *echonest.GenreService {
	g := echonest.NewGenreService(a.client)
	if name != "" {
		g.SetName(name)
	}
	return g
}

func toBuckets(values []string) []echonest.Bucket {
	buckets := make([]echonest.Bucket, 0, len(values))
	for _, v := range values {
		buckets = append(buckets, echonest.Bucket(v))
	}
	return buckets
}

func runGenreList(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		return a.genreList(ctx)
	})
}

func runGenreArtists(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		return a.genreArtists(ctx, a.genreName(args))
	})
}

func runGenreProfile(cmd *cobra.Command, args []string) error {
	buckets, _ := cmd.Flags().GetStringSlice("bucket")
	return withApp(cmd, func(ctx context.Context, a *app) error {
		return a.genreProfile(ctx, a.genreName(args), toBuckets(buckets))
	})
}

func runGenreSearch(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	name, _ := flags.GetString("name")
	buckets, _ := flags.GetStringSlice("bucket")
	limit, _ := flags.GetBool("limit")
	results, _ := flags.GetInt("results")
	start, _ := flags.GetInt("start")

	opts := echonest.SearchOptions{
		Name:    name,
		Buckets: toBuckets(buckets),
		Limit:   limit,
		Results: results,
		Start:   start,
	}
	return withApp(cmd, func(ctx context.Context, a *app) error {
		return a.genreSearch(ctx, opts)
	})
}

func runGenreSimilar(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	results, _ := flags.GetInt("results")
	start, _ := flags.GetInt("start")
	buckets, _ := flags.GetStringSlice("bucket")

	return withApp(cmd, func(ctx context.Context, a *app) error {
		return a.genreSimilar(ctx, a.genreName(args), results, start, toBuckets(buckets))
	})
}

func (a *app) genreList(ctx context.Context) error {
	records, err := a.genreService("").List(ctx)
	a.record(ctx, "genre/list", "", nil, records, err)
	if err != nil {
		return fmt.Errorf("failed to list genres: %w", err)
	}
	return a.render(records)
}

func (a *app) genreArtists(ctx context.Context, name string) error {
	g := a.genreService(name)
	records, err := g.Artists(ctx)
	a.record(ctx, "genre/artists", g.Name(), nil, records, err)
	if err != nil {
		return fmt.Errorf("failed to get artists: %w", err)
	}
	return a.render(records)
}

func (a *app) genreProfile(ctx context.Context, name string, buckets []echonest.Bucket) error {
	g := a.genreService(name)
	records, err := g.Profile(ctx, buckets...)
	a.record(ctx, "genre/profile", g.Name(), bucketParams(buckets), records, err)
	if err != nil {
		return fmt.Errorf("failed to get genre profile: %w", err)
	}
	return a.render(records)
}

func (a *app) genreSearch(ctx context.Context, opts echonest.SearchOptions) error {
	records, err := a.genreService("").Search(ctx, opts)
	a.record(ctx, "genre/search", opts.Name, searchParams(opts), records, err)
	if err != nil {
		return fmt.Errorf("failed to search genres: %w", err)
	}
	return a.render(records)
}

func (a *app) genreSimilar(ctx context.Context, name string, results, start int, buckets []echonest.Bucket) error {
	g := a.genreService(name)
	records, err := g.Similar(ctx,
		echonest.WithResults(results),
		echonest.WithStart(start),
		echonest.WithBuckets(buckets...),
	)

	params := bucketParams(buckets)
	params.Set("results", strconv.Itoa(results))
	params.Set("start", strconv.Itoa(start))
	a.record(ctx, "genre/similar", g.Name(), params, records, err)

	if err != nil {
		return fmt.Errorf("failed to get similar genres: %w", err)
	}
	return a.render(records)
}

func bucketParams(buckets []echonest.Bucket) url.Values {
	params := url.Values{}
	for _, b := range buckets {
		params.Add("bucket", string(b))
	}
	return params
}

// searchParams summarizes search options for the history
func searchParams(opts echonest.SearchOptions) url.Values {
	params := bucketParams(opts.Buckets)
	if opts.Limit {
		params.Set("limit", "true")
	}
	if opts.Results != 0 {
		params.Set("results", strconv.Itoa(opts.Results))
	}
	if opts.Start != 0 {
		params.Set("start", strconv.Itoa(opts.Start))
	}
	return params
}
