// Package echonest provides a client library for the EchoNest API v4.
//
// # Overview
//
// Each resource of the EchoNest API (genre, artist, song, ...) is a group
// of GET endpoints answering with the same JSON envelope:
//
//	{
//	  "response": {
//	    "status": {"code": 0, "message": "Success"},
//	    "genres": [{"name": "rock"}, ...]
//	  }
//	}
//
// A resource service builds the parameters for one endpoint, delegates
// the request to a shared Resource executor, and returns the named
// result field as a list of Records. The genre resource is implemented
// by GenreService.
//
// # Quick Start
//
//	import "github.com/jfmyers9/echonest/pkg/echonest"
//
//	client, err := echonest.NewClient(echonest.Config{
//	    APIKey: "your-api-key",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	genres, err := client.Genre().List(ctx)
//
// # Options
//
// A service keeps an option mapping of defaults reused by every call.
// The genre name is the main one:
//
//	g := client.Genre().SetName("rock")
//
//	artists, err := g.Artists(ctx)
//	profile, err := g.Profile(ctx, echonest.BucketDescription, echonest.BucketURLs)
//	similar, err := g.Similar(ctx, echonest.WithResults(30), echonest.WithStart(10))
//
// Operations that need a name and find none fail with
// ErrMissingRequiredOption without contacting the API.
//
// Search does not use the configured name:
//
//	genres, err := g.Search(ctx, echonest.SearchOptions{
//	    Name:    "metal",
//	    Buckets: []echonest.Bucket{echonest.BucketURLs},
//	})
//
// # Error Handling
//
//	genres, err := g.Similar(ctx)
//	if err != nil {
//	    var apiErr *echonest.Error
//	    switch {
//	    case errors.Is(err, echonest.ErrMissingRequiredOption):
//	        // set a name and call again
//	    case errors.As(err, &apiErr):
//	        fmt.Println(apiErr.Code, apiErr.Message)
//	    }
//	}
//
// The client never retries and never logs errors; every call performs at
// most one HTTP round trip.
//
// # Context Support
//
// All API methods accept a context.Context for cancellation and timeouts:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	genres, err := client.Genre().List(ctx)
//
// # Configuration
//
//	client, err := echonest.NewClient(echonest.Config{
//	    APIKey:     "your-api-key",
//	    HTTPClient: &http.Client{Timeout: 30 * time.Second},
//	    Logger:     myLogger, // Implements echonest.Logger interface
//	})
//
// # API Coverage
//
// Currently implemented:
//   - Genre (genre/artists, genre/list, genre/profile, genre/search, genre/similar)
//
// # EchoNest API Documentation
//
// http://developer.echonest.com/docs/v4/genre.html
package echonest
