// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import "video-research/internal/domain"

// Output formats of the JSON API.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// SearchRequest represents the parameters of keyword research.
type SearchRequest struct {
	Query      string `query:"q" json:"q" validate:"required,max=200"`
	Order      string `query:"order" json:"order" validate:"omitempty,oneof=date rating relevance title viewCount videoCount"`
	MaxResults int    `query:"max" json:"max" validate:"omitempty,min=1,max=500"`
	Format     string `query:"format" json:"format" validate:"omitempty,oneof=json csv"`
}

// ToParams converts SearchRequest to domain.SearchParams, keeping defaults for unset fields.
func (r *SearchRequest) ToParams() domain.SearchParams {
	params := domain.DefaultSearchParams()

	params.Query = r.Query
	if r.Order != "" {
		params.Order = domain.SearchOrder(r.Order)
	}
	if r.MaxResults > 0 {
		params.MaxResults = r.MaxResults
	}

	params.Normalize()

	return params
}

// TrendingRequest represents the parameters of a regional trending chart.
type TrendingRequest struct {
	Region     string `query:"region" json:"region" validate:"omitempty,region"`
	Category   string `query:"category" json:"category" validate:"omitempty,numeric"`
	MaxResults int    `query:"max" json:"max" validate:"omitempty,min=1,max=500"`
	Format     string `query:"format" json:"format" validate:"omitempty,oneof=json csv"`
}

// ToParams converts TrendingRequest to domain.TrendingParams.
func (r *TrendingRequest) ToParams() domain.TrendingParams {
	params := domain.DefaultTrendingParams()

	if r.Region != "" {
		params.Region = r.Region
	}
	params.CategoryID = r.Category
	if r.MaxResults > 0 {
		params.MaxResults = r.MaxResults
	}

	params.Normalize()

	return params
}

// CompetitorRequest represents the parameters of a channel upload analysis.
type CompetitorRequest struct {
	ChannelID  string `query:"channel_id" json:"channel_id" validate:"required,max=100"`
	MaxResults int    `query:"max" json:"max" validate:"omitempty,min=1,max=500"`
	Format     string `query:"format" json:"format" validate:"omitempty,oneof=json csv"`
}

// ToParams converts CompetitorRequest to domain.CompetitorParams.
func (r *CompetitorRequest) ToParams() domain.CompetitorParams {
	params := domain.DefaultCompetitorParams()

	params.ChannelID = r.ChannelID
	if r.MaxResults > 0 {
		params.MaxResults = r.MaxResults
	}

	params.Normalize()

	return params
}

// WantsCSV reports whether a CSV download was requested.
func WantsCSV(format string) bool {
	return format == FormatCSV
}
