// Package overseerr provides a client for the Overseerr HTTP API.
//
// Overseerr is a request management and media discovery tool for
// Plex/Jellyfin/Emby. The package is a thin facade: it exposes typed
// calls for server status, the paginated request listing and the
// movie/show/season detail endpoints, and leaves all aggregation to
// its callers.
//
// Create a client with your Overseerr URL and API key:
//
//	logger := zerolog.New(os.Stdout)
//	client, err := overseerr.NewClient(
//		"https://overseerr.example.com",
//		"your-api-key",
//		logger,
//		overseerr.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// Walk the request listing with a PageIterator:
//
//	it := overseerr.NewPageIterator(client, "pending")
//	for it.Next(ctx) {
//		for _, req := range it.Page().Results {
//			// ...
//		}
//	}
//	if err := it.Err(); err != nil {
//		log.Fatal(err)
//	}
//
// All calls are context-aware. Errors from the API surface as
// *APIError with the HTTP status code and the server's message.
package overseerr
