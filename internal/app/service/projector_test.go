package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-research/internal/domain"
)

var fixedNow = time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestRowProjector_WithDetail(t *testing.T) {
	p := NewRowProjector(fixedClock)
	detail := detailFor("abc")

	row := p.Project(domain.WorkflowSearch, domain.BaseRecord{VideoID: "abc", Title: "Listing title"}, &detail)

	assert.Equal(t, "abc", row.VideoID)
	assert.Equal(t, "Detail abc", row.Title, "detail wins over listing")
	assert.Equal(t, 312, row.DurationSec)
	assert.Equal(t, int64(1000), row.Views)
	assert.Equal(t, int64(10), row.Likes)
	assert.Equal(t, int64(5), row.Comments)
	assert.Equal(t, "go, video", row.Tags)
	require.NotNil(t, row.EngagementPerK)
	assert.InDelta(t, 15.0, *row.EngagementPerK, 1e-9)
	require.NotNil(t, row.AgeDays)
	assert.Equal(t, 10, *row.AgeDays)
}

func TestRowProjector_WithoutDetail(t *testing.T) {
	p := NewRowProjector(fixedClock)
	base := domain.BaseRecord{
		VideoID:      "xyz",
		Title:        "Listing title",
		ChannelTitle: "Listing channel",
		ChannelID:    "UC9",
		PublishedAt:  "2024-03-10T12:00:00Z",
	}

	row := p.Project(domain.WorkflowSearch, base, nil)

	assert.Equal(t, "xyz", row.VideoID)
	assert.Equal(t, "Listing title", row.Title)
	assert.Equal(t, "Listing channel", row.ChannelTitle)
	assert.Equal(t, "UC9", row.ChannelID)
	assert.Equal(t, 0, row.DurationSec)
	assert.Zero(t, row.Views)
	assert.Empty(t, row.Tags)
	assert.Nil(t, row.EngagementPerK, "zero views yields a null ratio")
	require.NotNil(t, row.AgeDays)
	assert.Equal(t, 1, *row.AgeDays)
}

func TestRowProjector_AgeOnlyForSearch(t *testing.T) {
	p := NewRowProjector(fixedClock)
	detail := detailFor("abc")

	trending := p.Project(domain.WorkflowTrending, domain.BaseRecord{VideoID: "abc"}, &detail)
	competitor := p.Project(domain.WorkflowCompetitor, domain.BaseRecord{VideoID: "abc"}, &detail)

	assert.Nil(t, trending.AgeDays)
	assert.Nil(t, competitor.AgeDays)
}

func TestRowProjector_MalformedFields(t *testing.T) {
	p := NewRowProjector(fixedClock)
	detail := domain.DetailRecord{
		ID:           "bad",
		PublishedAt:  "not a date",
		Duration:     "garbage",
		ViewCount:    "many",
		LikeCount:    "",
		CommentCount: "3",
	}

	row := p.Project(domain.WorkflowSearch, domain.BaseRecord{VideoID: "bad"}, &detail)

	assert.Nil(t, row.AgeDays, "unparseable timestamp yields null age")
	assert.Equal(t, 0, row.DurationSec)
	assert.Zero(t, row.Views)
	assert.Equal(t, int64(3), row.Comments)
	assert.Nil(t, row.EngagementPerK)
}

func TestNewRowProjector_DefaultClock(t *testing.T) {
	p := NewRowProjector(nil)
	detail := detailFor("abc")
	detail.PublishedAt = time.Now().UTC().Add(-49 * time.Hour).Format(time.RFC3339)

	row := p.Project(domain.WorkflowSearch, domain.BaseRecord{VideoID: "abc"}, &detail)

	require.NotNil(t, row.AgeDays)
	assert.Equal(t, 2, *row.AgeDays)
}
