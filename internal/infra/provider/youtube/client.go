// Package youtube implements domain.VideoAPI on top of the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"video-research/internal/domain"
	"video-research/internal/infra/provider"
)

// DefaultBaseURL is the Data API v3 root.
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

// API paths relative to the base URL.
const (
	SearchEndpoint        = "/search"
	VideosEndpoint        = "/videos"
	ChannelsEndpoint      = "/channels"
	PlaylistItemsEndpoint = "/playlistItems"
)

const (
	detailParts   = "snippet,statistics,contentDetails"
	channelParts  = "contentDetails,snippet,statistics"
	playlistParts = "snippet,contentDetails"
)

// ErrTooManyIDs is returned when a detail call is asked for more than domain.MaxPageSize ids.
var ErrTooManyIDs = errors.New("too many video ids for a single request")

// Client implements domain.VideoAPI for the YouTube Data API.
type Client struct {
	name   string
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

var _ domain.VideoAPI = (*Client)(nil)

// APIKeyHeader carries the API key. Keeping it out of the query string keeps it out of
// transport errors, which embed the request URL.
const APIKeyHeader = "X-Goog-Api-Key"

// New creates a new YouTube Data API client. The API key is sent in the APIKeyHeader header.
func New(cfg provider.ClientConfig, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	client := provider.NewRestyClient(cfg)
	if cfg.APIKey != "" {
		client.SetHeader(APIKeyHeader, cfg.APIKey)
	}

	return &Client{
		name:   "youtube",
		client: client,
		cb:     provider.NewCircuitBreaker[*resty.Response]("youtube", cfg.CB, logger),
		logger: logger,
	}
}

// Name returns the API identifier.
func (c *Client) Name() string {
	return c.name
}

// Ready reports whether calls are currently allowed through the circuit breaker.
func (c *Client) Ready() bool {
	return c.cb.State() != gobreaker.StateOpen
}

// SearchVideos retrieves one page of video search results.
func (c *Client) SearchVideos(ctx context.Context, query domain.SearchQuery, pageToken string, pageSize int) (*domain.ListingPage, error) {
	params := map[string]string{
		"part":       "snippet",
		"type":       "video",
		"q":          query.Keyword,
		"maxResults": strconv.Itoa(clampPageSize(pageSize)),
	}
	if query.Order != "" {
		params["order"] = string(query.Order)
	}
	setPageToken(params, pageToken)

	var result SearchListResponse
	if err := c.get(ctx, "search", SearchEndpoint, params, &result); err != nil {
		return nil, err
	}

	page := &domain.ListingPage{
		Items:         make([]domain.BaseRecord, 0, len(result.Items)),
		NextPageToken: result.NextPageToken,
	}
	for i := range result.Items {
		if result.Items[i].ID.VideoID == "" {
			continue
		}
		page.Items = append(page.Items, result.Items[i].ToDomain())
	}

	return page, nil
}

// MostPopular retrieves one page of the mostPopular chart for a region.
func (c *Client) MostPopular(ctx context.Context, region, categoryID, pageToken string, pageSize int) (*domain.ListingPage, error) {
	params := map[string]string{
		"part":       "id",
		"chart":      "mostPopular",
		"regionCode": region,
		"maxResults": strconv.Itoa(clampPageSize(pageSize)),
	}
	if categoryID != "" {
		params["videoCategoryId"] = categoryID
	}
	setPageToken(params, pageToken)

	var result VideoListResponse
	if err := c.get(ctx, "trending", VideosEndpoint, params, &result); err != nil {
		return nil, err
	}

	page := &domain.ListingPage{
		Items:         make([]domain.BaseRecord, 0, len(result.Items)),
		NextPageToken: result.NextPageToken,
	}
	for _, item := range result.Items {
		if item.ID == "" {
			continue
		}
		page.Items = append(page.Items, domain.BaseRecord{VideoID: item.ID})
	}

	return page, nil
}

// UploadsPlaylist resolves a channel id to its uploads playlist id.
func (c *Client) UploadsPlaylist(ctx context.Context, channelID string) (string, error) {
	params := map[string]string{
		"part": channelParts,
		"id":   channelID,
	}

	var result ChannelListResponse
	if err := c.get(ctx, "channel lookup", ChannelsEndpoint, params, &result); err != nil {
		return "", err
	}

	if len(result.Items) == 0 || result.Items[0].ContentDetails.RelatedPlaylists.Uploads == "" {
		return "", fmt.Errorf("channel %q: %w", channelID, domain.ErrChannelNotFound)
	}

	return result.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}

// PlaylistItems retrieves one page of a playlist. Entries without a video id are skipped.
func (c *Client) PlaylistItems(ctx context.Context, playlistID, pageToken string, pageSize int) (*domain.ListingPage, error) {
	params := map[string]string{
		"part":       playlistParts,
		"playlistId": playlistID,
		"maxResults": strconv.Itoa(clampPageSize(pageSize)),
	}
	setPageToken(params, pageToken)

	var result PlaylistItemListResponse
	if err := c.get(ctx, "playlist items", PlaylistItemsEndpoint, params, &result); err != nil {
		return nil, err
	}

	page := &domain.ListingPage{
		Items:         make([]domain.BaseRecord, 0, len(result.Items)),
		NextPageToken: result.NextPageToken,
	}
	for i := range result.Items {
		if rec, ok := result.Items[i].ToDomain(); ok {
			page.Items = append(page.Items, rec)
		}
	}

	return page, nil
}

// VideoDetails retrieves snippet, statistics and content details for up to 50 videos.
func (c *Client) VideoDetails(ctx context.Context, ids []string) ([]domain.DetailRecord, error) {
	if len(ids) == 0 {
		return []domain.DetailRecord{}, nil
	}
	if len(ids) > domain.MaxPageSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyIDs, len(ids), domain.MaxPageSize)
	}

	params := map[string]string{
		"part": detailParts,
		"id":   strings.Join(ids, ","),
	}

	var result VideoListResponse
	if err := c.get(ctx, "video details", VideosEndpoint, params, &result); err != nil {
		return nil, err
	}

	details := make([]domain.DetailRecord, 0, len(result.Items))
	for i := range result.Items {
		details = append(details, result.Items[i].ToDomain())
	}

	c.logger.Debug("video details fetched",
		zap.Int("requested", len(ids)),
		zap.Int("returned", len(details)),
	)

	return details, nil
}

// get issues a GET through the circuit breaker and decodes the JSON body into result.
func (c *Client) get(ctx context.Context, operation, path string, params map[string]string, result any) error {
	_, err := c.cb.Execute(func() (*resty.Response, error) {
		r, err := c.client.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetResult(result).
			SetError(&ErrorResponse{}).
			Get(path)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, newAPIError(r)
		}

		return r, nil
	})
	if err != nil {
		c.logger.Warn("youtube request failed",
			zap.String("operation", operation),
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return fmt.Errorf("youtube %s: %w", operation, err)
	}

	return nil
}

func setPageToken(params map[string]string, pageToken string) {
	if pageToken != "" {
		params["pageToken"] = pageToken
	}
}

func clampPageSize(n int) int {
	if n < 1 || n > domain.MaxPageSize {
		return domain.MaxPageSize
	}
	return n
}

// APIError is a non-2xx response from the Data API.
type APIError struct {
	StatusCode int
	Reason     string
	Message    string
}

func newAPIError(r *resty.Response) *APIError {
	apiErr := &APIError{StatusCode: r.StatusCode()}

	if body, ok := r.Error().(*ErrorResponse); ok && body != nil {
		apiErr.Message = body.Error.Message
		if len(body.Error.Errors) > 0 {
			apiErr.Reason = body.Error.Errors[0].Reason
		}
	}

	return apiErr
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("youtube api returned status %d (%s)", e.StatusCode, e.hint())
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}

	return msg
}

func (e *APIError) hint() string {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return "invalid request parameters"
	case http.StatusUnauthorized:
		return "authentication failed, check the API key"
	case http.StatusForbidden:
		return "access denied or quota exceeded"
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusTooManyRequests:
		return "rate limit exceeded"
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return "server error, try again later"
	default:
		return "unexpected response"
	}
}
