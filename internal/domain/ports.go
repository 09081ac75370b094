package domain

import "context"

// VideoAPI defines the read-only operations of the remote video data API.
// Implementations: internal/infra/provider/youtube/
type VideoAPI interface {
	// SearchVideos returns one page of keyword search results.
	SearchVideos(ctx context.Context, query SearchQuery, pageToken string, pageSize int) (*ListingPage, error)

	// MostPopular returns one page of the regional trending chart.
	MostPopular(ctx context.Context, region, categoryID, pageToken string, pageSize int) (*ListingPage, error)

	// UploadsPlaylist resolves a channel to its uploads playlist.
	// Returns ErrChannelNotFound when the channel does not exist.
	UploadsPlaylist(ctx context.Context, channelID string) (string, error)

	// PlaylistItems returns one page of a playlist's entries.
	PlaylistItems(ctx context.Context, playlistID, pageToken string, pageSize int) (*ListingPage, error)

	// VideoDetails fetches snippet, statistics and content details for at most MaxPageSize ids.
	VideoDetails(ctx context.Context, ids []string) ([]DetailRecord, error)
}

// SearchQuery is the listing-level part of a keyword search.
type SearchQuery struct {
	Keyword string
	Order   SearchOrder
}
