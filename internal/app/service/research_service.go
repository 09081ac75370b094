package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"video-research/internal/domain"
)

// Config holds research pipeline settings.
type Config struct {
	BatchDelay time.Duration
	Now        func() time.Time // defaults to time.Now
}

// ResearchService runs the keyword, trending and competitor workflows.
type ResearchService struct {
	api      domain.VideoAPI
	pipeline *Pipeline
	logger   *zap.Logger
}

// NewResearchService creates a new ResearchService.
func NewResearchService(api domain.VideoAPI, cfg Config, logger *zap.Logger) *ResearchService {
	pipeline := NewPipeline(
		NewDetailFetcher(api, cfg.BatchDelay, logger),
		NewRowProjector(cfg.Now),
		logger,
	)

	return &ResearchService{
		api:      api,
		pipeline: pipeline,
		logger:   logger,
	}
}

// Search runs keyword research. Rows carry an age in days.
func (s *ResearchService) Search(ctx context.Context, params domain.SearchParams) *domain.ResultSet {
	params.Normalize()

	s.logger.Debug("running search workflow",
		zap.String("query", params.Query),
		zap.String("order", string(params.Order)),
		zap.Int("max_results", params.MaxResults),
	)

	query := domain.SearchQuery{Keyword: params.Query, Order: params.Order}
	list := func(ctx context.Context, pageToken string, pageSize int) (*domain.ListingPage, error) {
		return s.api.SearchVideos(ctx, query, pageToken, pageSize)
	}

	return s.pipeline.Run(ctx, domain.WorkflowSearch, list, params.MaxResults)
}

// Trending lists the most popular videos of a region, optionally within one category.
func (s *ResearchService) Trending(ctx context.Context, params domain.TrendingParams) *domain.ResultSet {
	params.Normalize()

	s.logger.Debug("running trending workflow",
		zap.String("region", params.Region),
		zap.String("category_id", params.CategoryID),
		zap.Int("max_results", params.MaxResults),
	)

	list := func(ctx context.Context, pageToken string, pageSize int) (*domain.ListingPage, error) {
		return s.api.MostPopular(ctx, params.Region, params.CategoryID, pageToken, pageSize)
	}

	return s.pipeline.Run(ctx, domain.WorkflowTrending, list, params.MaxResults)
}

// Competitor analyses a channel's recent uploads. An unknown channel or a failed lookup
// yields an empty result set with a notice and no further remote calls.
func (s *ResearchService) Competitor(ctx context.Context, params domain.CompetitorParams) *domain.ResultSet {
	params.Normalize()

	playlistID, err := s.api.UploadsPlaylist(ctx, params.ChannelID)
	if err != nil {
		rs := domain.NewResultSet(domain.WorkflowCompetitor, nil)
		if errors.Is(err, domain.ErrChannelNotFound) {
			rs.Notice = fmt.Sprintf("channel not found: %s", params.ChannelID)
			s.logger.Info("channel not found", zap.String("channel_id", params.ChannelID))
		} else {
			rs.Notice = fmt.Sprintf("channel lookup failed: %s", params.ChannelID)
			s.logger.Warn("channel lookup failed",
				zap.String("channel_id", params.ChannelID),
				zap.Error(err),
			)
		}

		return rs
	}

	s.logger.Debug("running competitor workflow",
		zap.String("channel_id", params.ChannelID),
		zap.String("playlist_id", playlistID),
		zap.Int("max_results", params.MaxResults),
	)

	list := func(ctx context.Context, pageToken string, pageSize int) (*domain.ListingPage, error) {
		return s.api.PlaylistItems(ctx, playlistID, pageToken, pageSize)
	}

	return s.pipeline.Run(ctx, domain.WorkflowCompetitor, list, params.MaxResults)
}
