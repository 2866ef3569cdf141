package overseerr

import (
	"context"
)

// API defines the interface for Overseerr operations. Aggregation code
// depends on this rather than the concrete Client so tests can supply
// fakes.
type API interface {
	// TestConnection verifies the client can reach Overseerr
	TestConnection(ctx context.Context) error

	// GetStatus fetches the server status payload as a plain value
	GetStatus(ctx context.Context) (any, error)

	// GetRequests fetches one page of the request listing
	GetRequests(ctx context.Context, take, skip int, filter string) (*RequestsResponse, error)

	// GetMovieDetails fetches movie detail by TMDB id
	GetMovieDetails(ctx context.Context, movieID int) (*MovieDetails, error)

	// GetTvDetails fetches show detail by TMDB id
	GetTvDetails(ctx context.Context, tvID int) (*TvDetails, error)

	// GetSeasonDetails fetches the episode listing of one season
	GetSeasonDetails(ctx context.Context, tvID, seasonNumber int) (*SeasonDetails, error)

	// PageSize returns the listing page size the client is configured for
	PageSize() int

	// Close releases resources held by the client
	Close() error
}

var _ API = (*Client)(nil)
