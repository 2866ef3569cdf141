package aggregator

// MovieResult is one aggregated movie request. Field order matters:
// it is the order keys appear in the serialized JSON.
type MovieResult struct {
	Title             string `json:"title"`
	MediaAvailability string `json:"media_availability"`
	RequestDate       string `json:"request_date"`
}

// EpisodeResult is one episode entry inside a TVResult. Numbers are
// rendered as 2-digit zero-padded strings.
type EpisodeResult struct {
	EpisodeNumber string `json:"episode_number"`
	EpisodeName   string `json:"episode_name"`
}

// TVResult is one aggregated (request, season) pair. Season
// availability mirrors the show's: the API does not track seasons
// independently.
type TVResult struct {
	TvTitle              string          `json:"tv_title"`
	TvTitleAvailability  string          `json:"tv_title_availability"`
	TvSeason             string          `json:"tv_season"`
	TvSeasonAvailability string          `json:"tv_season_availability"`
	TvEpisodes           []EpisodeResult `json:"tv_episodes"`
	RequestDate          string          `json:"request_date"`
}
