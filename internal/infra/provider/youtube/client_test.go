package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"video-research/internal/domain"
	"video-research/internal/infra/provider"
)

const (
	testBaseURL       = "https://yt.example.com/youtube/v3"
	testSearchURL     = testBaseURL + SearchEndpoint
	testVideosURL     = testBaseURL + VideosEndpoint
	testChannelsURL   = testBaseURL + ChannelsEndpoint
	testPlaylistURL   = testBaseURL + PlaylistItemsEndpoint
	testAPIKey        = "test-key"
	testUploadsListID = "UUabc"
)

func newTestClientWithRetry(retry provider.RetryConfig) *Client {
	cfg := provider.ClientConfig{
		BaseURL: testBaseURL,
		APIKey:  testAPIKey,
		Timeout: 5 * time.Second,
		Retry:   retry,
		CB: provider.CBConfig{
			MaxRequests:  5,
			Interval:     60 * time.Second,
			Timeout:      15 * time.Second,
			FailureRatio: 0.6,
		},
	}
	client := New(cfg, zap.NewNop())

	// Activate httpmock for this client's HTTP transport
	httpmock.ActivateNonDefault(client.client.GetClient())

	return client
}

func newTestClient() *Client {
	return newTestClientWithRetry(provider.RetryConfig{})
}

func mockSearchResponse() SearchListResponse {
	return SearchListResponse{
		NextPageToken: "page-2",
		Items: []SearchItem{
			{
				ID: SearchItemID{VideoID: "vid-1"},
				Snippet: Snippet{
					Title:        "Go Tutorial",
					ChannelID:    "UC1",
					ChannelTitle: "Gopher Channel",
					PublishedAt:  "2024-01-15T10:00:00Z",
				},
			},
			{
				ID: SearchItemID{VideoID: "vid-2"},
				Snippet: Snippet{
					Title:        "Go Testing",
					ChannelID:    "UC2",
					ChannelTitle: "Test Channel",
					PublishedAt:  "2024-01-16T12:00:00Z",
				},
			},
		},
	}
}

// TestSearchVideos_Success tests request parameters and mapping of a search page.
func TestSearchVideos_Success(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	var captured *http.Request
	httpmock.RegisterResponder("GET", testSearchURL,
		func(req *http.Request) (*http.Response, error) {
			captured = req

			return httpmock.NewJsonResponse(200, mockSearchResponse())
		})

	client := newTestClient()
	page, err := client.SearchVideos(context.Background(),
		domain.SearchQuery{Keyword: "golang", Order: domain.SearchOrderViewCount}, "page-1", 20)

	require.NoError(t, err)
	require.NotNil(t, captured)

	q := captured.URL.Query()
	assert.Equal(t, "snippet", q.Get("part"))
	assert.Equal(t, "video", q.Get("type"))
	assert.Equal(t, "golang", q.Get("q"))
	assert.Equal(t, "viewCount", q.Get("order"))
	assert.Equal(t, "20", q.Get("maxResults"))
	assert.Equal(t, "page-1", q.Get("pageToken"))
	assert.Empty(t, q.Get("key"), "api key must not travel in the query string")
	assert.Equal(t, testAPIKey, captured.Header.Get(APIKeyHeader))

	require.Len(t, page.Items, 2)
	assert.Equal(t, "page-2", page.NextPageToken)
	assert.True(t, page.HasNext())
	assert.Equal(t, domain.BaseRecord{
		VideoID:      "vid-1",
		Title:        "Go Tutorial",
		ChannelTitle: "Gopher Channel",
		ChannelID:    "UC1",
		PublishedAt:  "2024-01-15T10:00:00Z",
	}, page.Items[0])
}

// TestSearchVideos_FirstPageOmitsToken tests that no pageToken is sent for the first page.
func TestSearchVideos_FirstPageOmitsToken(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	var captured *http.Request
	httpmock.RegisterResponder("GET", testSearchURL,
		func(req *http.Request) (*http.Response, error) {
			captured = req

			return httpmock.NewJsonResponse(200, SearchListResponse{})
		})

	client := newTestClient()
	page, err := client.SearchVideos(context.Background(), domain.SearchQuery{Keyword: "go"}, "", 500)

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNext())
	assert.False(t, captured.URL.Query().Has("pageToken"))
	assert.False(t, captured.URL.Query().Has("order"))
	assert.Equal(t, "50", captured.URL.Query().Get("maxResults"), "page size is capped at 50")
}

// TestMostPopular_Success tests the trending chart request and id-only mapping.
func TestMostPopular_Success(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	var captured *http.Request
	httpmock.RegisterResponder("GET", testVideosURL,
		func(req *http.Request) (*http.Response, error) {
			captured = req

			return httpmock.NewJsonResponse(200, VideoListResponse{
				Items: []VideoItem{{ID: "t-1"}, {ID: "t-2"}, {ID: ""}},
			})
		})

	client := newTestClient()
	page, err := client.MostPopular(context.Background(), "GB", "10", "", 2)

	require.NoError(t, err)
	q := captured.URL.Query()
	assert.Equal(t, "id", q.Get("part"))
	assert.Equal(t, "mostPopular", q.Get("chart"))
	assert.Equal(t, "GB", q.Get("regionCode"))
	assert.Equal(t, "10", q.Get("videoCategoryId"))
	assert.Equal(t, "2", q.Get("maxResults"))

	require.Len(t, page.Items, 2)
	assert.Equal(t, "t-1", page.Items[0].VideoID)
	assert.Empty(t, page.Items[0].Title)
}

// TestMostPopular_NoCategory tests that the category filter is optional.
func TestMostPopular_NoCategory(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	var captured *http.Request
	httpmock.RegisterResponder("GET", testVideosURL,
		func(req *http.Request) (*http.Response, error) {
			captured = req

			return httpmock.NewJsonResponse(200, VideoListResponse{})
		})

	client := newTestClient()
	_, err := client.MostPopular(context.Background(), "US", "", "", 50)

	require.NoError(t, err)
	assert.False(t, captured.URL.Query().Has("videoCategoryId"))
}

// TestUploadsPlaylist_Success tests channel to uploads playlist resolution.
func TestUploadsPlaylist_Success(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	resp := ChannelListResponse{Items: []ChannelItem{{ID: "UCabc"}}}
	resp.Items[0].ContentDetails.RelatedPlaylists.Uploads = testUploadsListID

	var captured *http.Request
	httpmock.RegisterResponder("GET", testChannelsURL,
		func(req *http.Request) (*http.Response, error) {
			captured = req

			return httpmock.NewJsonResponse(200, resp)
		})

	client := newTestClient()
	playlistID, err := client.UploadsPlaylist(context.Background(), "UCabc")

	require.NoError(t, err)
	assert.Equal(t, testUploadsListID, playlistID)
	assert.Equal(t, "UCabc", captured.URL.Query().Get("id"))
	assert.Equal(t, "contentDetails,snippet,statistics", captured.URL.Query().Get("part"))
}

// TestUploadsPlaylist_NotFound tests that an empty channel list maps to ErrChannelNotFound.
func TestUploadsPlaylist_NotFound(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testChannelsURL,
		httpmock.NewJsonResponderOrPanic(200, ChannelListResponse{Items: []ChannelItem{}}))

	client := newTestClient()
	playlistID, err := client.UploadsPlaylist(context.Background(), "UCmissing")

	require.Error(t, err)
	assert.Empty(t, playlistID)
	assert.True(t, errors.Is(err, domain.ErrChannelNotFound))
}

// TestPlaylistItems_Mapping tests id/publish-time fallbacks and skipping of entries without ids.
func TestPlaylistItems_Mapping(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	resp := PlaylistItemListResponse{
		NextPageToken: "next",
		Items: []PlaylistItem{
			{
				Snippet:        PlaylistItemSnippet{PublishedAt: "2024-02-01T00:00:00Z"},
				ContentDetails: PlaylistItemContentDetails{VideoID: "p-1", VideoPublishedAt: "2024-01-31T00:00:00Z"},
			},
			{
				ContentDetails: PlaylistItemContentDetails{VideoID: "p-2", VideoPublishedAt: "2024-01-20T00:00:00Z"},
			},
			{
				Snippet: PlaylistItemSnippet{ResourceID: ResourceID{VideoID: "p-3"}},
			},
			{
				Snippet: PlaylistItemSnippet{Title: "Deleted video"},
			},
		},
	}

	var captured *http.Request
	httpmock.RegisterResponder("GET", testPlaylistURL,
		func(req *http.Request) (*http.Response, error) {
			captured = req

			return httpmock.NewJsonResponse(200, resp)
		})

	client := newTestClient()
	page, err := client.PlaylistItems(context.Background(), testUploadsListID, "", 50)

	require.NoError(t, err)
	assert.Equal(t, testUploadsListID, captured.URL.Query().Get("playlistId"))
	assert.Equal(t, "snippet,contentDetails", captured.URL.Query().Get("part"))

	require.Len(t, page.Items, 3)
	assert.Equal(t, "p-1", page.Items[0].VideoID)
	assert.Equal(t, "2024-02-01T00:00:00Z", page.Items[0].PublishedAt)
	assert.Equal(t, "2024-01-20T00:00:00Z", page.Items[1].PublishedAt)
	assert.Equal(t, "p-3", page.Items[2].VideoID)
	assert.Equal(t, "next", page.NextPageToken)
}

// TestVideoDetails_Success tests the batched detail call and mapping.
func TestVideoDetails_Success(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	resp := VideoListResponse{
		Items: []VideoItem{
			{
				ID: "vid-1",
				Snippet: Snippet{
					Title:        "Go Tutorial",
					ChannelID:    "UC1",
					ChannelTitle: "Gopher Channel",
					PublishedAt:  "2024-01-15T10:00:00Z",
					Tags:         []string{"golang", "tutorial"},
				},
				Statistics:     Statistics{ViewCount: "1000", LikeCount: "10", CommentCount: "5"},
				ContentDetails: ContentDetails{Duration: "PT5M12S"},
			},
			{
				ID:             "vid-2",
				Statistics:     Statistics{ViewCount: "50"},
				ContentDetails: ContentDetails{Duration: "PT1H"},
			},
		},
	}

	var captured *http.Request
	httpmock.RegisterResponder("GET", testVideosURL,
		func(req *http.Request) (*http.Response, error) {
			captured = req

			return httpmock.NewJsonResponse(200, resp)
		})

	client := newTestClient()
	details, err := client.VideoDetails(context.Background(), []string{"vid-1", "vid-2"})

	require.NoError(t, err)
	assert.Equal(t, "vid-1,vid-2", captured.URL.Query().Get("id"))
	assert.Equal(t, "snippet,statistics,contentDetails", captured.URL.Query().Get("part"))

	require.Len(t, details, 2)
	assert.Equal(t, "Go Tutorial", details[0].Title)
	assert.Equal(t, []string{"golang", "tutorial"}, details[0].Tags)
	assert.Equal(t, "1000", details[0].ViewCount)
	assert.Equal(t, "PT5M12S", details[0].Duration)
	assert.Empty(t, details[1].LikeCount, "hidden counters stay empty")
}

// TestVideoDetails_NoIDs tests that an empty id list issues no request.
func TestVideoDetails_NoIDs(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	client := newTestClient()
	details, err := client.VideoDetails(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, details)
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

// TestVideoDetails_TooManyIDs tests the per-request id limit.
func TestVideoDetails_TooManyIDs(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	ids := make([]string, domain.MaxPageSize+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("v%d", i)
	}

	client := newTestClient()
	_, err := client.VideoDetails(context.Background(), ids)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooManyIDs))
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

// TestClient_APIError_Parsed tests decoding of the API error envelope.
func TestClient_APIError_Parsed(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	body := `{"error":{"code":403,"message":"The request cannot be completed because you have exceeded your quota.","errors":[{"reason":"quotaExceeded","message":"quota"}]}}`
	httpmock.RegisterResponder("GET", testSearchURL,
		func(_ *http.Request) (*http.Response, error) {
			resp := httpmock.NewStringResponse(403, body)
			resp.Header.Set("Content-Type", "application/json; charset=UTF-8")

			return resp, nil
		})

	client := newTestClient()
	page, err := client.SearchVideos(context.Background(), domain.SearchQuery{Keyword: "go"}, "", 10)

	require.Error(t, err)
	assert.Nil(t, page)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 403, apiErr.StatusCode)
	assert.Equal(t, "quotaExceeded", apiErr.Reason)
	assert.Contains(t, err.Error(), "youtube search")
	assert.Contains(t, err.Error(), "status 403")
}

// TestClient_HTTPError_4xx tests client error handling (4xx).
func TestClient_HTTPError_4xx(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	tests := []struct {
		name       string
		statusCode int
		hint       string
	}{
		{"400 Bad Request", 400, "invalid request parameters"},
		{"401 Unauthorized", 401, "check the API key"},
		{"429 Too Many Requests", 429, "rate limit exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Reset()
			httpmock.RegisterResponder("GET", testVideosURL,
				httpmock.NewStringResponder(tt.statusCode, "Error"))

			client := newTestClient()
			details, err := client.VideoDetails(context.Background(), []string{"a"})

			require.Error(t, err)
			assert.Nil(t, details)
			assert.Contains(t, err.Error(), fmt.Sprintf("status %d", tt.statusCode))
			assert.Contains(t, err.Error(), tt.hint)
		})
	}
}

// TestClient_NoRetryByDefault tests that a 5xx is not retried without retry configuration.
func TestClient_NoRetryByDefault(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	callCount := 0
	httpmock.RegisterResponder("GET", testSearchURL,
		func(_ *http.Request) (*http.Response, error) {
			callCount++

			return httpmock.NewStringResponse(500, "Server Error"), nil
		})

	client := newTestClient()
	_, err := client.SearchVideos(context.Background(), domain.SearchQuery{Keyword: "go"}, "", 10)

	require.Error(t, err)
	assert.Equal(t, 1, callCount)
}

// TestClient_Retry_Configured tests that configured retries recover from transient 5xx.
func TestClient_Retry_Configured(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	callCount := 0
	httpmock.RegisterResponder("GET", testSearchURL,
		func(_ *http.Request) (*http.Response, error) {
			callCount++
			if callCount < 3 {
				return httpmock.NewStringResponse(503, "Unavailable"), nil
			}

			return httpmock.NewJsonResponse(200, mockSearchResponse())
		})

	client := newTestClientWithRetry(provider.RetryConfig{
		MaxAttempts: 3,
		WaitTime:    10 * time.Millisecond,
		MaxWaitTime: 50 * time.Millisecond,
	})
	page, err := client.SearchVideos(context.Background(), domain.SearchQuery{Keyword: "go"}, "", 10)

	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 3, callCount, "Should retry twice and succeed on 3rd attempt")
}

// TestClient_NetworkError tests network error handling.
func TestClient_NetworkError(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testPlaylistURL,
		httpmock.NewErrorResponder(fmt.Errorf("network error: connection refused")))

	client := newTestClient()
	page, err := client.PlaylistItems(context.Background(), testUploadsListID, "", 50)

	require.Error(t, err)
	assert.Nil(t, page)
	assert.Contains(t, err.Error(), "youtube playlist items")
}

// TestClient_TransportErrorOmitsAPIKey tests that transport errors, which embed the
// request URL, never expose the API key.
func TestClient_TransportErrorOmitsAPIKey(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testSearchURL,
		httpmock.NewErrorResponder(fmt.Errorf("dial tcp: i/o timeout")))

	client := newTestClient()
	_, err := client.SearchVideos(context.Background(), domain.SearchQuery{Keyword: "golang"}, "", 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "i/o timeout")
	assert.Contains(t, err.Error(), "yt.example.com", "url is still reported")
	assert.NotContains(t, err.Error(), testAPIKey)
}

// TestClient_CircuitBreaker_Opens tests that CB opens after consecutive failures.
func TestClient_CircuitBreaker_Opens(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testVideosURL,
		httpmock.NewStringResponder(500, "Internal Server Error"))

	client := newTestClient()
	assert.True(t, client.Ready())

	for i := 0; i < 5; i++ {
		_, err := client.VideoDetails(context.Background(), []string{"a"})
		require.Error(t, err)
	}

	start := time.Now()
	_, err := client.VideoDetails(context.Background(), []string{"a"})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Less(t, elapsed.Milliseconds(), int64(100))
	assert.False(t, client.Ready())
}

// TestClient_Name tests the Name method.
func TestClient_Name(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	client := newTestClient()
	assert.Equal(t, "youtube", client.Name())
}

// TestNew_DefaultBaseURL tests that an empty base URL falls back to the public API root.
func TestNew_DefaultBaseURL(t *testing.T) {
	client := New(provider.ClientConfig{}, zap.NewNop())

	assert.True(t, strings.HasPrefix(client.client.BaseURL, "https://www.googleapis.com"))
}
