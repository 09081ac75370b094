package service

import (
	"time"

	"video-research/internal/domain"
)

// RowProjector maps listing records and their details into report rows.
type RowProjector struct {
	now func() time.Time
}

// NewRowProjector creates a RowProjector. A nil clock defaults to time.Now.
func NewRowProjector(now func() time.Time) *RowProjector {
	if now == nil {
		now = time.Now
	}

	return &RowProjector{now: now}
}

// Project builds a report row. Detail fields win over listing fields; a nil detail
// still yields a row with zero counters and empty tags.
func (p *RowProjector) Project(workflow domain.Workflow, base domain.BaseRecord, detail *domain.DetailRecord) domain.ReportRow {
	var d domain.DetailRecord
	if detail != nil {
		d = *detail
	}

	row := domain.ReportRow{
		VideoID:      base.VideoID,
		Title:        firstNonEmpty(d.Title, base.Title),
		ChannelTitle: firstNonEmpty(d.ChannelTitle, base.ChannelTitle),
		ChannelID:    firstNonEmpty(d.ChannelID, base.ChannelID),
		PublishedAt:  firstNonEmpty(d.PublishedAt, base.PublishedAt),
		DurationSec:  domain.ParseISODuration(d.Duration),
		Views:        domain.SafeInt(d.ViewCount),
		Likes:        domain.SafeInt(d.LikeCount),
		Comments:     domain.SafeInt(d.CommentCount),
		Tags:         domain.JoinTags(d.Tags),
	}
	row.EngagementPerK = domain.EngagementPerK(row.Views, row.Likes, row.Comments)

	if workflow.TracksAge() {
		row.AgeDays = domain.AgeInDays(row.PublishedAt, p.now())
	}

	return row
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
