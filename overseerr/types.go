package overseerr

// Media describes the media record attached to a request. Fields the
// API may omit or null out are pointers so callers can tell "absent"
// apart from a zero value: TvdbID in particular is the sole
// discriminator between movie and TV requests.
type Media struct {
	ID     int    `json:"id"`
	TmdbID *int   `json:"tmdbId"`
	TvdbID *int   `json:"tvdbId"`
	Status *int   `json:"status"`
	Type   string `json:"mediaType,omitempty"`
}

// IsTV reports whether the media belongs to a TV show.
func (m *Media) IsTV() bool {
	return m.TvdbID != nil
}

// MediaRequest is one user request as returned by the request listing
// endpoint. CreatedAt is kept as the raw wire string; result records
// echo it back unmodified.
type MediaRequest struct {
	ID        int    `json:"id"`
	Media     *Media `json:"media"`
	CreatedAt string `json:"createdAt"`
}

// PageInfo carries the pagination metadata of a request listing page.
type PageInfo struct {
	Pages    int `json:"pages"`
	PageSize int `json:"pageSize"`
	Results  int `json:"results"`
	Page     int `json:"page"`
}

// RequestsResponse is one page of the paginated request listing.
type RequestsResponse struct {
	PageInfo PageInfo       `json:"pageInfo"`
	Results  []MediaRequest `json:"results"`
}

// MovieDetails is the subset of the movie detail endpoint we consume.
type MovieDetails struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// TvSeason is one season entry in a show's detail response.
type TvSeason struct {
	ID           int `json:"id"`
	SeasonNumber int `json:"seasonNumber"`
}

// TvDetails is the subset of the show detail endpoint we consume.
type TvDetails struct {
	ID      int        `json:"id"`
	Name    string     `json:"name"`
	Seasons []TvSeason `json:"seasons"`
}

// Episode is one episode entry in a season detail response.
type Episode struct {
	ID            int    `json:"id"`
	EpisodeNumber int    `json:"episodeNumber"`
	Name          string `json:"name"`
}

// SeasonDetails is the subset of the season detail endpoint we consume.
type SeasonDetails struct {
	SeasonNumber int       `json:"seasonNumber"`
	Episodes     []Episode `json:"episodes"`
}
