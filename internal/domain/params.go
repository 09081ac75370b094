package domain

import "strings"

// SearchOrder is the ranking requested from the remote search listing.
type SearchOrder string

const (
	SearchOrderDate       SearchOrder = "date"
	SearchOrderRating     SearchOrder = "rating"
	SearchOrderRelevance  SearchOrder = "relevance"
	SearchOrderTitle      SearchOrder = "title"
	SearchOrderViewCount  SearchOrder = "viewCount"
	SearchOrderVideoCount SearchOrder = "videoCount"
)

const (
	DefaultSearchMax     = 25
	DefaultTrendingMax   = 50
	DefaultCompetitorMax = 50
	DefaultRegion        = "US"

	// MaxResultsLimit caps how many items a single workflow collects.
	MaxResultsLimit = 500
)

// SearchParams holds keyword research parameters.
type SearchParams struct {
	Query      string
	Order      SearchOrder
	MaxResults int
}

// DefaultSearchParams returns search params with the tool's defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Order:      SearchOrderViewCount,
		MaxResults: DefaultSearchMax,
	}
}

// Normalize fills defaults and clamps MaxResults. This is bound correction, not validation.
func (p *SearchParams) Normalize() {
	if p.Order == "" {
		p.Order = SearchOrderViewCount
	}
	p.MaxResults = clampMax(p.MaxResults, DefaultSearchMax)
}

// TrendingParams holds regional trending chart parameters.
type TrendingParams struct {
	Region     string
	CategoryID string // optional
	MaxResults int
}

// DefaultTrendingParams returns trending params with the tool's defaults.
func DefaultTrendingParams() TrendingParams {
	return TrendingParams{
		Region:     DefaultRegion,
		MaxResults: DefaultTrendingMax,
	}
}

// Normalize fills defaults, upper-cases the region and clamps MaxResults.
func (p *TrendingParams) Normalize() {
	p.Region = strings.ToUpper(strings.TrimSpace(p.Region))
	if p.Region == "" {
		p.Region = DefaultRegion
	}
	p.CategoryID = strings.TrimSpace(p.CategoryID)
	p.MaxResults = clampMax(p.MaxResults, DefaultTrendingMax)
}

// CompetitorParams holds channel upload analysis parameters.
type CompetitorParams struct {
	ChannelID  string
	MaxResults int
}

// DefaultCompetitorParams returns competitor params with the tool's defaults.
func DefaultCompetitorParams() CompetitorParams {
	return CompetitorParams{MaxResults: DefaultCompetitorMax}
}

// Normalize trims the channel id and clamps MaxResults.
func (p *CompetitorParams) Normalize() {
	p.ChannelID = strings.TrimSpace(p.ChannelID)
	p.MaxResults = clampMax(p.MaxResults, DefaultCompetitorMax)
}

func clampMax(n, fallback int) int {
	if n < 1 {
		return fallback
	}
	if n > MaxResultsLimit {
		return MaxResultsLimit
	}
	return n
}
