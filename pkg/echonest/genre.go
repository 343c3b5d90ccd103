package echonest

import (
	"context"
	"net/url"
	"strconv"
)

// GenreAPI is the set of genre operations offered by the EchoNest API.
type GenreAPI interface {
	Artists(ctx context.Context) ([]Record, error)
	List(ctx context.Context) ([]Record, error)
	Profile(ctx context.Context, buckets ...Bucket) ([]Record, error)
	Search(ctx context.Context, opts SearchOptions) ([]Record, error)
	Similar(ctx context.Context, opts ...SimilarOption) ([]Record, error)
}

// GenreService provides genre operations for the EchoNest API.
//
// Several operations need a genre name. Set one with SetName; it is kept
// in the service's option mapping and reused by every call.
type GenreService struct {
	*Resource
}

var _ GenreAPI = (*GenreService)(nil)

const (
	genreResource = "genre"
	optionName    = "name"

	// DefaultSimilarResults is the number of results Similar asks for
	// unless WithResults is given.
	DefaultSimilarResults = 15
)

// NewGenreService creates a genre service with its own option mapping.
func NewGenreService(c *Client) *GenreService {
	return &GenreService{Resource: NewResource(c)}
}

// SetName sets the genre name used by Artists, Profile and Similar.
//
// Example:
//
//	similar, err := client.Genre().SetName("jazz").Similar(ctx)
func (g *GenreService) SetName(name string) *GenreService {
	g.SetOption(optionName, name)
	return g
}

// Name returns the configured genre name, or "" if none is set.
func (g *GenreService) Name() string {
	name, _ := g.stringOption(optionName)
	return name
}

// Artists returns the top artists for the configured genre.
//
// http://developer.echonest.com/docs/v4/genre.html#artists
func (g *GenreService) Artists(ctx context.Context) ([]Record, error) {
	env, err := g.getForGenre(ctx, "genre/artists", nil)
	if err != nil {
		return nil, err
	}
	return ReturnResponse(env, "artists")
}

// List returns every genre known to EchoNest. No name is required.
//
// http://developer.echonest.com/docs/v4/genre.html#list
func (g *GenreService) List(ctx context.Context) ([]Record, error) {
	env, err := g.Get(ctx, "genre/list", nil)
	if err != nil {
		return nil, err
	}
	return ReturnResponse(env, "genres")
}

// Profile returns basic information about the configured genre.
//
// Buckets select extra data to include (BucketDescription, BucketURLs).
// Zero, one or several buckets may be given; they are sent unchanged.
//
// http://developer.echonest.com/docs/v4/genre.html#profile
//
// Example:
//
//	profile, err := client.Genre().SetName("rock").Profile(ctx,
//	    echonest.BucketDescription, echonest.BucketURLs)
func (g *GenreService) Profile(ctx context.Context, buckets ...Bucket) ([]Record, error) {
	params := url.Values{}
	addBuckets(params, buckets)

	env, err := g.getForGenre(ctx, "genre/profile", params)
	if err != nil {
		return nil, err
	}
	return ReturnResponse(env, "genres")
}

// SearchOptions holds the parameters recognized by genre/search.
// Zero values are not sent.
type SearchOptions struct {
	Name    string     // Name to match, per remote matching rules
	Buckets []Bucket   // Extra data facets to return
	Limit   bool       // Restrict results to the given id space or catalog
	Results int        // Number of results
	Start   int        // Index of the first result
	Extra   url.Values // Any other remote parameter, sent as-is
}

// values converts the options to request parameters.
func (o SearchOptions) values() url.Values {
	params := mergeParams(nil, o.Extra)
	if o.Name != "" {
		params.Set("name", o.Name)
	}
	addBuckets(params, o.Buckets)
	if o.Limit {
		params.Set("limit", "true")
	}
	if o.Results != 0 {
		params.Set("results", strconv.Itoa(o.Results))
	}
	if o.Start != 0 {
		params.Set("start", strconv.Itoa(o.Start))
	}
	return params
}

// Search searches genres. The configured name is not used; pass one in
// opts.Name if needed.
//
// http://developer.echonest.com/docs/v4/genre.html#search
func (g *GenreService) Search(ctx context.Context, opts SearchOptions) ([]Record, error) {
	env, err := g.Get(ctx, "genre/search", opts.values())
	if err != nil {
		return nil, err
	}
	return ReturnResponse(env, "genres")
}

// SimilarOption configures a Similar request.
type SimilarOption func(*similarConfig)

type similarConfig struct {
	results int
	start   int
	buckets []Bucket
}

// WithResults sets the number of results desired. The API documents
// 0 < n < 100; the value is not checked locally.
func WithResults(n int) SimilarOption {
	return func(c *similarConfig) {
		c.results = n
	}
}

// WithStart sets the zero-based index of the first result returned.
func WithStart(n int) SimilarOption {
	return func(c *similarConfig) {
		c.start = n
	}
}

// WithBuckets selects extra data facets for each result.
func WithBuckets(buckets ...Bucket) SimilarOption {
	return func(c *similarConfig) {
		c.buckets = append(c.buckets, buckets...)
	}
}

// Similar returns genres similar to the configured genre.
//
// Defaults to 15 results starting at index 0.
//
// http://developer.echonest.com/docs/v4/genre.html#similar
func (g *GenreService) Similar(ctx context.Context, opts ...SimilarOption) ([]Record, error) {
	cfg := similarConfig{results: DefaultSimilarResults}
	for _, opt := range opts {
		opt(&cfg)
	}

	params := url.Values{}
	params.Set("results", strconv.Itoa(cfg.results))
	params.Set("start", strconv.Itoa(cfg.start))
	addBuckets(params, cfg.buckets)

	env, err := g.getForGenre(ctx, "genre/similar", params)
	if err != nil {
		return nil, err
	}
	return ReturnResponse(env, "genres")
}

// getForGenre sends a GET request that needs a genre name.
//
// An explicit name in params wins. Otherwise the configured name is
// merged in. With neither, no request is sent and a *MissingOptionError
// is returned.
func (g *GenreService) getForGenre(ctx context.Context, path string, params url.Values, opts ...RequestOption) (*Envelope, error) {
	if params.Get(optionName) == "" {
		name, ok := g.stringOption(optionName)
		if !ok {
			return nil, &MissingOptionError{Resource: genreResource, Option: optionName}
		}
		params = mergeParams(url.Values{optionName: {name}}, withoutKey(params, optionName))
	}

	return g.Get(ctx, path, params, opts...)
}

// withoutKey returns a copy of params without key. Empty values for key
// would otherwise shadow the configured default during merging.
func withoutKey(params url.Values, key string) url.Values {
	out := make(url.Values, len(params))
	for k, v := range params {
		if k != key {
			out[k] = v
		}
	}
	return out
}

func addBuckets(params url.Values, buckets []Bucket) {
	for _, b := range buckets {
		params.Add("bucket", string(b))
	}
}
