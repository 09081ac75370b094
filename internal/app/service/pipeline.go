// Package service provides the research use cases.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"video-research/internal/domain"
)

// ListFunc fetches one page of a listing call.
type ListFunc func(ctx context.Context, pageToken string, pageSize int) (*domain.ListingPage, error)

// Pipeline runs the shared paginate -> fetch details -> project rows sequence.
type Pipeline struct {
	fetcher   *DetailFetcher
	projector *RowProjector
	logger    *zap.Logger
}

// NewPipeline creates a new Pipeline.
func NewPipeline(fetcher *DetailFetcher, projector *RowProjector, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		projector: projector,
		logger:    logger,
	}
}

// Run paginates list until maxResults records are collected, then assembles the result set.
func (p *Pipeline) Run(ctx context.Context, workflow domain.Workflow, list ListFunc, maxResults int) *domain.ResultSet {
	start := time.Now()

	records := p.Collect(ctx, string(workflow), list, maxResults)
	rs := p.Assemble(ctx, workflow, records)

	p.logger.Info("workflow completed",
		zap.String("workflow", string(workflow)),
		zap.Int("rows", rs.Len()),
		zap.Duration("duration", time.Since(start)),
	)

	return rs
}

// Collect pages through a listing call. It stops when maxResults records are held, when no
// continuation token is returned, or when a call fails; collected records are always returned.
func (p *Pipeline) Collect(ctx context.Context, operation string, list ListFunc, maxResults int) []domain.BaseRecord {
	if maxResults < 1 {
		return []domain.BaseRecord{}
	}

	records := make([]domain.BaseRecord, 0, min(maxResults, domain.MaxResultsLimit))
	pageToken := ""

	for page := 1; len(records) < maxResults; page++ {
		remaining := maxResults - len(records)

		resp, err := list(ctx, pageToken, min(domain.MaxPageSize, remaining))
		if err != nil {
			p.logger.Warn("listing call failed, stopping pagination",
				zap.String("operation", operation),
				zap.Int("page", page),
				zap.Int("collected", len(records)),
				zap.Error(err),
			)

			break
		}
		// No page and no error is an empty final page.
		if resp == nil {
			break
		}

		items := resp.Items
		if len(items) > remaining {
			items = items[:remaining]
		}
		records = append(records, items...)

		// A repeated token would loop forever.
		if !resp.HasNext() || resp.NextPageToken == pageToken {
			break
		}
		pageToken = resp.NextPageToken
	}

	p.logger.Debug("listing collected",
		zap.String("operation", operation),
		zap.Int("count", len(records)),
		zap.Int("requested", maxResults),
	)

	return records
}

// Assemble fetches details for records and projects one row per record, in record order.
// Records without a detail match keep their place with empty fields.
func (p *Pipeline) Assemble(ctx context.Context, workflow domain.Workflow, records []domain.BaseRecord) *domain.ResultSet {
	if len(records) == 0 {
		return domain.NewResultSet(workflow, nil)
	}

	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.VideoID
	}

	details := p.fetcher.Fetch(ctx, ids)
	byID := make(map[string]*domain.DetailRecord, len(details))
	for i := range details {
		byID[details[i].ID] = &details[i]
	}

	rows := make([]domain.ReportRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, p.projector.Project(workflow, rec, byID[rec.VideoID]))
	}

	if missing := len(records) - len(details); missing > 0 {
		p.logger.Debug("records without detail match",
			zap.String("workflow", string(workflow)),
			zap.Int("missing", missing),
		)
	}

	return domain.NewResultSet(workflow, rows)
}
