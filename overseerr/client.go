package overseerr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/overseerr-mcp/plainval"
)

// DefaultPageSize is how many requests a listing page holds unless
// overridden with WithPageSize.
const DefaultPageSize = 20

// Client is a thin facade over the Overseerr HTTP API. It performs no
// business logic; aggregation lives elsewhere.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	pageSize   int
	logger     zerolog.Logger
}

// NewClient creates a new Overseerr client. It validates configuration
// only; connectivity is checked separately via TestConnection so a
// down upstream can still be reported instead of failing construction.
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: overseerr URL is required", ErrInvalidConfig)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: overseerr API key is required", ErrInvalidConfig)
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		pageSize: DefaultPageSize,
		logger:   logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// PageSize returns the configured listing page size.
func (c *Client) PageSize() int {
	return c.pageSize
}

// Close releases idle connections held by the underlying transport.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// doRequest performs an authenticated request against the v1 API and
// returns the response body. Non-200 responses become an *APIError.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values) ([]byte, error) {
	requestURL := fmt.Sprintf("%s/api/v1%s", c.baseURL, endpoint)
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Msg("Making Overseerr API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
			Body:       string(body),
		}
	}

	return body, nil
}

// errorMessage pulls the "message" field out of an error body, falling
// back to the raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(body)
}

// TestConnection verifies the base URL and API key by hitting the
// authenticated /auth/me endpoint.
func (c *Client) TestConnection(ctx context.Context) error {
	if _, err := c.doRequest(ctx, http.MethodGet, "/auth/me", nil); err != nil {
		return fmt.Errorf("failed to connect to Overseerr: %w", err)
	}
	return nil
}

// GetStatus fetches the server status endpoint and returns its payload
// as an order-preserving plain value. An error response that still
// carries a JSON body is returned as data, not as an error: the status
// report renders whatever the server said.
func (c *Client) GetStatus(ctx context.Context) (any, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/status", nil)
	if err != nil {
		if apiErr, ok := err.(*APIError); ok {
			if payload, decodeErr := plainval.Decode([]byte(apiErr.Body)); decodeErr == nil {
				return plainval.ToPlain(payload), nil
			}
		}
		return nil, err
	}

	payload, err := plainval.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse status response: %w", err)
	}
	return plainval.ToPlain(payload), nil
}

// GetRequests fetches one page of the request listing. filter may be
// empty, in which case no filter parameter is sent.
func (c *Client) GetRequests(ctx context.Context, take, skip int, filter string) (*RequestsResponse, error) {
	params := url.Values{}
	params.Set("take", strconv.Itoa(take))
	params.Set("skip", strconv.Itoa(skip))
	if filter != "" {
		params.Set("filter", filter)
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/request", params)
	if err != nil {
		return nil, fmt.Errorf("failed to get requests: %w", err)
	}

	var response RequestsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse requests response: %w", err)
	}

	c.logger.Debug().
		Int("skip", skip).
		Int("count", len(response.Results)).
		Int("pages", response.PageInfo.Pages).
		Msg("Retrieved requests page from Overseerr")

	return &response, nil
}

// GetMovieDetails fetches the movie detail for a TMDB id.
func (c *Client) GetMovieDetails(ctx context.Context, movieID int) (*MovieDetails, error) {
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/movie/%d", movieID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get movie %d: %w", movieID, err)
	}

	var details MovieDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("failed to parse movie response: %w", err)
	}
	return &details, nil
}

// GetTvDetails fetches the show detail for a TMDB id.
func (c *Client) GetTvDetails(ctx context.Context, tvID int) (*TvDetails, error) {
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/tv/%d", tvID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get tv show %d: %w", tvID, err)
	}

	var details TvDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("failed to parse tv response: %w", err)
	}
	return &details, nil
}

// GetSeasonDetails fetches the episode listing for one season of a show.
func (c *Client) GetSeasonDetails(ctx context.Context, tvID, seasonNumber int) (*SeasonDetails, error) {
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/tv/%d/season/%d", tvID, seasonNumber), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get season %d of tv show %d: %w", seasonNumber, tvID, err)
	}

	var details SeasonDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("failed to parse season response: %w", err)
	}
	return &details, nil
}
