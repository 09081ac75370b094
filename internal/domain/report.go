package domain

import (
	"strconv"
	"strings"
	"time"
)

// Workflow identifies one of the research workflows.
type Workflow string

const (
	WorkflowSearch     Workflow = "search"
	WorkflowTrending   Workflow = "trending"
	WorkflowCompetitor Workflow = "competitor"
)

// Column is a named field of a report row as it appears in exports.
type Column string

const (
	ColumnVideoID        Column = "video_id"
	ColumnTitle          Column = "title"
	ColumnChannelTitle   Column = "channel_title"
	ColumnChannelID      Column = "channel_id"
	ColumnPublishedAt    Column = "published_at"
	ColumnAgeDays        Column = "age_days"
	ColumnDurationSec    Column = "duration_sec"
	ColumnViews          Column = "views"
	ColumnLikes          Column = "likes"
	ColumnComments       Column = "comments"
	ColumnTags           Column = "tags"
	ColumnEngagementPerK Column = "engagement_per_k"
)

// TagSeparator joins a video's tags into a single cell.
const TagSeparator = ", "

var workflowColumns = map[Workflow][]Column{
	WorkflowSearch: {
		ColumnVideoID, ColumnTitle, ColumnChannelTitle, ColumnChannelID, ColumnPublishedAt,
		ColumnAgeDays, ColumnDurationSec, ColumnViews, ColumnLikes, ColumnComments,
		ColumnTags, ColumnEngagementPerK,
	},
	WorkflowTrending: {
		ColumnVideoID, ColumnTitle, ColumnChannelTitle, ColumnChannelID, ColumnPublishedAt,
		ColumnDurationSec, ColumnViews, ColumnLikes, ColumnComments,
		ColumnTags, ColumnEngagementPerK,
	},
	WorkflowCompetitor: {
		ColumnVideoID, ColumnTitle, ColumnPublishedAt,
		ColumnDurationSec, ColumnViews, ColumnLikes, ColumnComments,
		ColumnTags, ColumnEngagementPerK,
	},
}

// Columns returns the fixed export column set of the workflow.
func (w Workflow) Columns() []Column {
	cols := workflowColumns[w]
	out := make([]Column, len(cols))
	copy(out, cols)

	return out
}

// TracksAge reports whether rows of this workflow carry an age in days.
func (w Workflow) TracksAge() bool {
	return w == WorkflowSearch
}

// ReportRow is one flattened video in a research report.
type ReportRow struct {
	VideoID        string   `json:"video_id"`
	Title          string   `json:"title"`
	ChannelTitle   string   `json:"channel_title"`
	ChannelID      string   `json:"channel_id"`
	PublishedAt    string   `json:"published_at"`
	AgeDays        *int     `json:"age_days"`
	DurationSec    int      `json:"duration_sec"`
	Views          int64    `json:"views"`
	Likes          int64    `json:"likes"`
	Comments       int64    `json:"comments"`
	Tags           string   `json:"tags"`
	EngagementPerK *float64 `json:"engagement_per_k"`
}

// Cell renders a single column of the row as text. Null values render empty.
func (r *ReportRow) Cell(col Column) string {
	switch col {
	case ColumnVideoID:
		return r.VideoID
	case ColumnTitle:
		return r.Title
	case ColumnChannelTitle:
		return r.ChannelTitle
	case ColumnChannelID:
		return r.ChannelID
	case ColumnPublishedAt:
		return r.PublishedAt
	case ColumnAgeDays:
		if r.AgeDays == nil {
			return ""
		}
		return strconv.Itoa(*r.AgeDays)
	case ColumnDurationSec:
		return strconv.Itoa(r.DurationSec)
	case ColumnViews:
		return strconv.FormatInt(r.Views, 10)
	case ColumnLikes:
		return strconv.FormatInt(r.Likes, 10)
	case ColumnComments:
		return strconv.FormatInt(r.Comments, 10)
	case ColumnTags:
		return r.Tags
	case ColumnEngagementPerK:
		if r.EngagementPerK == nil {
			return ""
		}
		return formatRatio(*r.EngagementPerK)
	default:
		return ""
	}
}

// formatRatio renders the shortest decimal form and keeps one fractional digit on whole
// values, so 15 is written as "15.0".
func formatRatio(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// EngagementPerK computes (likes + comments) per thousand views.
// Returns nil when views is zero.
func EngagementPerK(views, likes, comments int64) *float64 {
	if views == 0 {
		return nil
	}
	ratio := float64(likes+comments) / float64(views) * 1000

	return &ratio
}

// JoinTags joins tags with TagSeparator; no tags yields an empty string.
func JoinTags(tags []string) string {
	return strings.Join(tags, TagSeparator)
}

// publishedAtLayouts are tried in order; layouts without a zone parse as UTC.
var publishedAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParsePublishedAt parses an API timestamp, defaulting to UTC when no offset is present.
func ParsePublishedAt(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range publishedAtLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// AgeInDays returns the whole days elapsed between publishedAt and now.
// Returns nil if publishedAt cannot be parsed.
func AgeInDays(publishedAt string, now time.Time) *int {
	t, ok := ParsePublishedAt(publishedAt)
	if !ok {
		return nil
	}
	days := int(now.UTC().Sub(t) / (24 * time.Hour))

	return &days
}

// ResultSet is the ordered output of one workflow invocation.
type ResultSet struct {
	Workflow Workflow    `json:"workflow"`
	Rows     []ReportRow `json:"rows"`
	Notice   string      `json:"notice,omitempty"` // user-facing message, e.g. channel not found
}

// NewResultSet creates a ResultSet; a nil rows slice becomes empty.
func NewResultSet(workflow Workflow, rows []ReportRow) *ResultSet {
	if rows == nil {
		rows = []ReportRow{}
	}

	return &ResultSet{Workflow: workflow, Rows: rows}
}

// Len returns the number of rows.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

// Head returns at most n leading rows.
func (rs *ResultSet) Head(n int) []ReportRow {
	if rs == nil || n <= 0 {
		return nil
	}
	if n > len(rs.Rows) {
		n = len(rs.Rows)
	}
	return rs.Rows[:n]
}
