package youtube

import (
	"video-research/internal/domain"
)

// SearchListResponse represents a search.list page.
type SearchListResponse struct {
	NextPageToken string       `json:"nextPageToken,omitempty"`
	Items         []SearchItem `json:"items"`
}

// SearchItem represents a single search result.
type SearchItem struct {
	ID      SearchItemID `json:"id"`
	Snippet Snippet      `json:"snippet"`
}

// SearchItemID holds the resource identifier of a search result.
type SearchItemID struct {
	Kind    string `json:"kind,omitempty"`
	VideoID string `json:"videoId"`
}

// Snippet holds the basic metadata shared by search results and videos.
type Snippet struct {
	Title        string   `json:"title"`
	ChannelID    string   `json:"channelId"`
	ChannelTitle string   `json:"channelTitle"`
	PublishedAt  string   `json:"publishedAt"`
	Tags         []string `json:"tags,omitempty"`
}

// ToDomain converts a SearchItem to a listing record.
func (s *SearchItem) ToDomain() domain.BaseRecord {
	return domain.BaseRecord{
		VideoID:      s.ID.VideoID,
		Title:        s.Snippet.Title,
		ChannelTitle: s.Snippet.ChannelTitle,
		ChannelID:    s.Snippet.ChannelID,
		PublishedAt:  s.Snippet.PublishedAt,
	}
}

// VideoListResponse represents a videos.list page.
type VideoListResponse struct {
	NextPageToken string      `json:"nextPageToken,omitempty"`
	Items         []VideoItem `json:"items"`
}

// VideoItem represents a video resource. Parts not requested are left empty.
type VideoItem struct {
	ID             string         `json:"id"`
	Snippet        Snippet        `json:"snippet"`
	Statistics     Statistics     `json:"statistics"`
	ContentDetails ContentDetails `json:"contentDetails"`
}

// Statistics holds video counters. The API encodes them as strings and omits hidden ones.
type Statistics struct {
	ViewCount    string `json:"viewCount,omitempty"`
	LikeCount    string `json:"likeCount,omitempty"`
	CommentCount string `json:"commentCount,omitempty"`
}

// ContentDetails holds the video length.
type ContentDetails struct {
	Duration string `json:"duration"`
}

// ToDomain converts a VideoItem to a detail record.
func (v *VideoItem) ToDomain() domain.DetailRecord {
	return domain.DetailRecord{
		ID:           v.ID,
		Title:        v.Snippet.Title,
		ChannelTitle: v.Snippet.ChannelTitle,
		ChannelID:    v.Snippet.ChannelID,
		PublishedAt:  v.Snippet.PublishedAt,
		Tags:         v.Snippet.Tags,
		Duration:     v.ContentDetails.Duration,
		ViewCount:    v.Statistics.ViewCount,
		LikeCount:    v.Statistics.LikeCount,
		CommentCount: v.Statistics.CommentCount,
	}
}

// ChannelListResponse represents a channels.list response.
type ChannelListResponse struct {
	Items []ChannelItem `json:"items"`
}

// ChannelItem represents a channel resource.
type ChannelItem struct {
	ID             string                `json:"id"`
	ContentDetails ChannelContentDetails `json:"contentDetails"`
}

// ChannelContentDetails holds the channel's managed playlists.
type ChannelContentDetails struct {
	RelatedPlaylists RelatedPlaylists `json:"relatedPlaylists"`
}

// RelatedPlaylists lists platform-managed playlists of a channel.
type RelatedPlaylists struct {
	Uploads string `json:"uploads"`
}

// PlaylistItemListResponse represents a playlistItems.list page.
type PlaylistItemListResponse struct {
	NextPageToken string         `json:"nextPageToken,omitempty"`
	Items         []PlaylistItem `json:"items"`
}

// PlaylistItem represents a single playlist entry.
type PlaylistItem struct {
	Snippet        PlaylistItemSnippet        `json:"snippet"`
	ContentDetails PlaylistItemContentDetails `json:"contentDetails"`
}

// PlaylistItemSnippet holds the entry's metadata.
type PlaylistItemSnippet struct {
	Title       string     `json:"title,omitempty"`
	PublishedAt string     `json:"publishedAt"`
	ResourceID  ResourceID `json:"resourceId"`
}

// ResourceID points at the video behind a playlist entry.
type ResourceID struct {
	VideoID string `json:"videoId"`
}

// PlaylistItemContentDetails holds the video id and the video's own publish time.
type PlaylistItemContentDetails struct {
	VideoID          string `json:"videoId"`
	VideoPublishedAt string `json:"videoPublishedAt,omitempty"`
}

// ToDomain converts a PlaylistItem to a listing record.
// Returns false when the entry carries no video id.
func (p *PlaylistItem) ToDomain() (domain.BaseRecord, bool) {
	videoID := p.ContentDetails.VideoID
	if videoID == "" {
		videoID = p.Snippet.ResourceID.VideoID
	}
	if videoID == "" {
		return domain.BaseRecord{}, false
	}

	publishedAt := p.Snippet.PublishedAt
	if publishedAt == "" {
		publishedAt = p.ContentDetails.VideoPublishedAt
	}

	return domain.BaseRecord{
		VideoID:     videoID,
		PublishedAt: publishedAt,
	}, true
}

// ErrorResponse is the error envelope returned with non-2xx statuses.
type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason  string `json:"reason"`
			Message string `json:"message"`
		} `json:"errors"`
	} `json:"error"`
}
