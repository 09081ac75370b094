package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"video-research/internal/domain"
)

var errRemote = errors.New("remote failure")

// listingCall records the arguments of one listing call.
type listingCall struct {
	PageToken string
	PageSize  int
}

// fakeVideoAPI is an in-memory domain.VideoAPI. Listings are served from pages in order;
// detail calls return a record for every id except those in missingDetails.
type fakeVideoAPI struct {
	mu sync.Mutex

	pages       []*domain.ListingPage
	listErrAt   int // 1-based listing call that fails; 0 disables
	listCalls   []listingCall
	searchQuery domain.SearchQuery
	region      string
	categoryID  string

	playlists     map[string]string
	lookupErr     error
	lookupCalls   int
	playlistAsked string

	missingDetails map[string]bool
	detailErrAt    int // 1-based detail call that fails; 0 disables
	detailCalls    [][]string
}

var _ domain.VideoAPI = (*fakeVideoAPI)(nil)

func (f *fakeVideoAPI) nextPage(pageToken string, pageSize int) (*domain.ListingPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls = append(f.listCalls, listingCall{PageToken: pageToken, PageSize: pageSize})
	n := len(f.listCalls)
	if f.listErrAt == n {
		return nil, errRemote
	}
	if n > len(f.pages) {
		return &domain.ListingPage{}, nil
	}

	return f.pages[n-1], nil
}

func (f *fakeVideoAPI) SearchVideos(_ context.Context, query domain.SearchQuery, pageToken string, pageSize int) (*domain.ListingPage, error) {
	f.searchQuery = query
	return f.nextPage(pageToken, pageSize)
}

func (f *fakeVideoAPI) MostPopular(_ context.Context, region, categoryID, pageToken string, pageSize int) (*domain.ListingPage, error) {
	f.region = region
	f.categoryID = categoryID
	return f.nextPage(pageToken, pageSize)
}

func (f *fakeVideoAPI) UploadsPlaylist(_ context.Context, channelID string) (string, error) {
	f.lookupCalls++
	if f.lookupErr != nil {
		return "", f.lookupErr
	}
	id, ok := f.playlists[channelID]
	if !ok {
		return "", fmt.Errorf("channel %q: %w", channelID, domain.ErrChannelNotFound)
	}
	return id, nil
}

func (f *fakeVideoAPI) PlaylistItems(_ context.Context, playlistID, pageToken string, pageSize int) (*domain.ListingPage, error) {
	f.playlistAsked = playlistID
	return f.nextPage(pageToken, pageSize)
}

func (f *fakeVideoAPI) VideoDetails(_ context.Context, ids []string) ([]domain.DetailRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	batch := append([]string(nil), ids...)
	f.detailCalls = append(f.detailCalls, batch)
	if f.detailErrAt == len(f.detailCalls) {
		return nil, errRemote
	}

	details := make([]domain.DetailRecord, 0, len(ids))
	for _, id := range ids {
		if f.missingDetails[id] {
			continue
		}
		details = append(details, detailFor(id))
	}

	return details, nil
}

// detailFor returns a deterministic detail record for an id.
func detailFor(id string) domain.DetailRecord {
	return domain.DetailRecord{
		ID:           id,
		Title:        "Detail " + id,
		ChannelTitle: "Channel",
		ChannelID:    "UC1",
		PublishedAt:  "2024-03-01T12:00:00Z",
		Tags:         []string{"go", "video"},
		Duration:     "PT5M12S",
		ViewCount:    "1000",
		LikeCount:    "10",
		CommentCount: "5",
	}
}

// idPage builds a listing page of sequential ids.
func idPage(prefix string, from, count int, next string) *domain.ListingPage {
	page := &domain.ListingPage{NextPageToken: next}
	for i := from; i < from+count; i++ {
		page.Items = append(page.Items, domain.BaseRecord{VideoID: fmt.Sprintf("%s-%03d", prefix, i)})
	}
	return page
}

func sequentialIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("id-%03d", i)
	}
	return ids
}
