// Package aggregator joins Overseerr request listings with their
// movie/show/season detail lookups and flattens the result into
// uniform records for the tool surface.
package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/overseerr-mcp/overseerr"
)

// ClientFactory produces a fresh client per tool invocation. Each
// operation acquires one, and releases it when done, success or not.
type ClientFactory func() (overseerr.API, error)

// Operations aggregates Overseerr request data.
type Operations struct {
	newClient ClientFactory
	logger    zerolog.Logger
}

// NewOperations creates an Operations instance.
func NewOperations(factory ClientFactory, logger zerolog.Logger) *Operations {
	return &Operations{
		newClient: factory,
		logger:    logger,
	}
}

// GetMovieRequests lists movie requests, optionally narrowed by a
// status filter and a start date (inclusive lower bound on creation
// time). Each surviving request is joined with its movie detail.
// Results come back in page/request encounter order; a single failed
// lookup aborts the whole aggregation.
func (o *Operations) GetMovieRequests(ctx context.Context, filter RequestFilter, startDate *time.Time) ([]MovieResult, error) {
	client, err := o.newClient()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	results := make([]MovieResult, 0)

	it := overseerr.NewPageIterator(client, filter.String())
	for it.Next(ctx) {
		for _, req := range it.Page().Results {
			media := req.Media
			if media == nil || media.IsTV() {
				continue
			}
			if excludedByStartDate(startDate, req.CreatedAt) {
				continue
			}
			if media.TmdbID == nil {
				continue
			}

			details, err := client.GetMovieDetails(ctx, *media.TmdbID)
			if err != nil {
				return nil, err
			}

			title := details.Title
			if title == "" {
				title = "Unknown Movie"
			}

			results = append(results, MovieResult{
				Title:             title,
				MediaAvailability: Availability(media.Status),
				RequestDate:       req.CreatedAt,
			})
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	o.logger.Info().
		Str("filter", filter.String()).
		Int("count", len(results)).
		Msg("Aggregated movie requests")

	return results, nil
}

// GetTVRequests lists TV requests with the same filtering as
// GetMovieRequests, producing one record per (request, season). The
// specials season (number 0) is skipped, and every remaining season
// is joined with its episode listing. Season availability mirrors the
// show's since the API has no per-season tracking.
func (o *Operations) GetTVRequests(ctx context.Context, filter RequestFilter, startDate *time.Time) ([]TVResult, error) {
	client, err := o.newClient()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	results := make([]TVResult, 0)

	it := overseerr.NewPageIterator(client, filter.String())
	for it.Next(ctx) {
		for _, req := range it.Page().Results {
			media := req.Media
			if media == nil || !media.IsTV() {
				continue
			}
			if excludedByStartDate(startDate, req.CreatedAt) {
				continue
			}
			if media.TmdbID == nil {
				continue
			}

			details, err := client.GetTvDetails(ctx, *media.TmdbID)
			if err != nil {
				return nil, err
			}

			title := details.Name
			if title == "" {
				title = "Unknown TV Show"
			}
			availability := Availability(media.Status)

			for _, season := range details.Seasons {
				if season.SeasonNumber == 0 {
					continue
				}

				seasonDetails, err := client.GetSeasonDetails(ctx, *media.TmdbID, season.SeasonNumber)
				if err != nil {
					return nil, err
				}

				episodes := make([]EpisodeResult, 0, len(seasonDetails.Episodes))
				for _, ep := range seasonDetails.Episodes {
					name := ep.Name
					if name == "" {
						name = fmt.Sprintf("Episode %d", ep.EpisodeNumber)
					}
					episodes = append(episodes, EpisodeResult{
						EpisodeNumber: fmt.Sprintf("%02d", ep.EpisodeNumber),
						EpisodeName:   name,
					})
				}

				results = append(results, TVResult{
					TvTitle:              title,
					TvTitleAvailability:  availability,
					TvSeason:             fmt.Sprintf("S%02d", season.SeasonNumber),
					TvSeasonAvailability: availability,
					TvEpisodes:           episodes,
					RequestDate:          req.CreatedAt,
				})
			}
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	o.logger.Info().
		Str("filter", filter.String()).
		Int("count", len(results)).
		Msg("Aggregated TV requests")

	return results, nil
}
