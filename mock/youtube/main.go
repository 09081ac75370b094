// Command youtube is a local stand-in for the YouTube Data API v3.
//
// Point the CLI at it with APP_YOUTUBE_BASE_URL=http://localhost:8081 and any API key.
// Requests without a key (header or query) are rejected with 403.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	mockChannelID  = "UCmock0000000000000000"
	mockPlaylistID = "UUmock0000000000000000"
	maxPageSize    = 50
)

type video struct {
	ID          string
	Title       string
	PublishedAt time.Time
	Duration    string
	Views       int
	Likes       int
	Comments    int
	Tags        []string
}

// catalog builds n deterministic videos, newest first. Every seventh video has no views.
func catalog(n int, now time.Time) []video {
	videos := make([]video, n)
	for i := range videos {
		views := 1000 * (n - i)
		if i%7 == 6 {
			views = 0
		}
		videos[i] = video{
			ID:          fmt.Sprintf("vid%04d", i),
			Title:       fmt.Sprintf("Mock video %d", i),
			PublishedAt: now.AddDate(0, 0, -i).Truncate(time.Second),
			Duration:    fmt.Sprintf("PT%dM%dS", 1+i%20, i%60),
			Views:       views,
			Likes:       10 * (i%9 + 1),
			Comments:    i % 13,
			Tags:        []string{"mock", fmt.Sprintf("tag%d", i%5)},
		}
	}
	return videos
}

type api struct {
	videos  []video
	byID    map[string]video
	latency time.Duration
}

func newHandler(videos []video, latency time.Duration) http.Handler {
	a := &api{videos: videos, byID: make(map[string]video, len(videos)), latency: latency}
	for _, v := range videos {
		a.byID[v.ID] = v
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/search", a.search)
	mux.HandleFunc("/videos", a.videosList)
	mux.HandleFunc("/channels", a.channels)
	mux.HandleFunc("/playlistItems", a.playlistItems)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	return a.middleware(mux)
}

func (a *api) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.latency > 0 {
			time.Sleep(a.latency)
		}
		if r.URL.Path != "/health" && apiKey(r) == "" {
			writeError(w, http.StatusForbidden, "forbidden", "The request is missing a valid API key.")
			return
		}

		next.ServeHTTP(w, r)
		log.Printf("[youtube mock] %s %s?%s", r.Method, r.URL.Path, r.URL.RawQuery)
	})
}

// apiKey accepts the key from the header or, like the real API, the "key" query parameter.
func apiKey(r *http.Request) string {
	if key := r.Header.Get("X-Goog-Api-Key"); key != "" {
		return key
	}
	return r.URL.Query().Get("key")
}

func (a *api) search(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	matched := make([]video, 0, len(a.videos))
	for _, v := range a.videos {
		if q == "" || strings.Contains(strings.ToLower(v.Title), q) || containsTag(v.Tags, q) {
			matched = append(matched, v)
		}
	}

	page, next, err := paginate(matched, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalidPageToken", err.Error())
		return
	}

	items := make([]map[string]any, 0, len(page))
	for _, v := range page {
		items = append(items, map[string]any{
			"id":      map[string]string{"kind": "youtube#video", "videoId": v.ID},
			"snippet": snippet(v),
		})
	}
	writeJSON(w, http.StatusOK, listResponse(items, next))
}

func (a *api) videosList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Get("chart") == "mostPopular" {
		if query.Get("regionCode") == "" {
			writeError(w, http.StatusBadRequest, "invalidRegionCode", "regionCode is required")
			return
		}
		page, next, err := paginate(a.videos, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalidPageToken", err.Error())
			return
		}
		items := make([]map[string]any, 0, len(page))
		for _, v := range page {
			items = append(items, map[string]any{"id": v.ID})
		}
		writeJSON(w, http.StatusOK, listResponse(items, next))
		return
	}

	ids := strings.Split(query.Get("id"), ",")
	if len(ids) > maxPageSize {
		writeError(w, http.StatusBadRequest, "tooManyIds", "at most 50 ids per request")
		return
	}

	items := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		v, ok := a.byID[id]
		if !ok {
			continue
		}
		items = append(items, map[string]any{
			"id":      v.ID,
			"snippet": snippet(v),
			"statistics": map[string]string{
				"viewCount":    strconv.Itoa(v.Views),
				"likeCount":    strconv.Itoa(v.Likes),
				"commentCount": strconv.Itoa(v.Comments),
			},
			"contentDetails": map[string]string{"duration": v.Duration},
		})
	}
	writeJSON(w, http.StatusOK, listResponse(items, ""))
}

func (a *api) channels(w http.ResponseWriter, r *http.Request) {
	items := []map[string]any{}
	if r.URL.Query().Get("id") == mockChannelID {
		items = append(items, map[string]any{
			"id": mockChannelID,
			"contentDetails": map[string]any{
				"relatedPlaylists": map[string]string{"uploads": mockPlaylistID},
			},
		})
	}
	writeJSON(w, http.StatusOK, listResponse(items, ""))
}

func (a *api) playlistItems(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("playlistId") != mockPlaylistID {
		writeError(w, http.StatusNotFound, "playlistNotFound", "playlist not found")
		return
	}

	page, next, err := paginate(a.videos, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalidPageToken", err.Error())
		return
	}

	items := make([]map[string]any, 0, len(page))
	for _, v := range page {
		items = append(items, map[string]any{
			"snippet": map[string]any{
				"title":       v.Title,
				"publishedAt": v.PublishedAt.Format(time.RFC3339),
				"resourceId":  map[string]string{"videoId": v.ID},
			},
			"contentDetails": map[string]string{
				"videoId":          v.ID,
				"videoPublishedAt": v.PublishedAt.Format(time.RFC3339),
			},
		})
	}
	writeJSON(w, http.StatusOK, listResponse(items, next))
}

// paginate slices videos by the request's pageToken (an offset) and maxResults.
func paginate(videos []video, r *http.Request) ([]video, string, error) {
	size := 5
	if raw := r.URL.Query().Get("maxResults"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxPageSize {
			return nil, "", fmt.Errorf("maxResults must be between 0 and %d", maxPageSize)
		}
		size = n
	}

	offset := 0
	if token := r.URL.Query().Get("pageToken"); token != "" {
		n, err := strconv.Atoi(token)
		if err != nil || n < 0 {
			return nil, "", fmt.Errorf("invalid page token %q", token)
		}
		offset = n
	}

	if offset >= len(videos) {
		return nil, "", nil
	}
	end := min(offset+size, len(videos))

	next := ""
	if end < len(videos) {
		next = strconv.Itoa(end)
	}

	return videos[offset:end], next, nil
}

func snippet(v video) map[string]any {
	return map[string]any{
		"title":        v.Title,
		"channelId":    mockChannelID,
		"channelTitle": "Mock Channel",
		"publishedAt":  v.PublishedAt.Format(time.RFC3339),
		"tags":         v.Tags,
	}
}

func listResponse(items []map[string]any, next string) map[string]any {
	resp := map[string]any{"items": items}
	if next != "" {
		resp["nextPageToken"] = next
	}
	return resp
}

func containsTag(tags []string, q string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, q) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[youtube mock] write error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, reason, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    status,
			"message": message,
			"errors":  []map[string]string{{"reason": reason, "message": message}},
		},
	})
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		addr    string
		count   int
		latency time.Duration
	)

	cmd := &cobra.Command{
		Use:   "youtube-mock",
		Short: "Serve a fake YouTube Data API v3 for local runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Printf("Mock YouTube Data API running on %s", addr)
			server := &http.Server{
				Addr:         addr,
				Handler:      newHandler(catalog(count, time.Now().UTC()), latency),
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
				IdleTimeout:  120 * time.Second,
			}
			return server.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8081", "Listen address")
	cmd.Flags().IntVar(&count, "videos", 180, "Number of videos in the catalog")
	cmd.Flags().DurationVar(&latency, "latency", 50*time.Millisecond, "Artificial latency per request")

	return cmd
}
