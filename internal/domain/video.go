// Package domain contains the research entities and the pure transformations applied to them.
// This package has no external dependencies (only stdlib).
package domain

import "errors"

// ErrChannelNotFound is returned when a channel lookup yields no items.
var ErrChannelNotFound = errors.New("channel not found")

// MaxPageSize is the largest page the remote API serves for listing and detail calls.
const MaxPageSize = 50

// BaseRecord is a single item returned by a listing call.
// Depending on the listing, only VideoID may be populated.
type BaseRecord struct {
	VideoID      string
	Title        string
	ChannelTitle string
	ChannelID    string
	PublishedAt  string
}

// DetailRecord holds the extended attributes of a video fetched by identifier.
// Statistics are kept as the raw strings returned by the API; hidden counters arrive empty.
type DetailRecord struct {
	ID           string
	Title        string
	ChannelTitle string
	ChannelID    string
	PublishedAt  string
	Tags         []string
	Duration     string // ISO 8601, e.g. "PT5M12S"

	ViewCount    string
	LikeCount    string
	CommentCount string
}

// ListingPage is one page of a listing call plus its continuation token.
type ListingPage struct {
	Items         []BaseRecord
	NextPageToken string
}

// HasNext reports whether the remote API returned a continuation token.
func (p *ListingPage) HasNext() bool {
	return p != nil && p.NextPageToken != ""
}
