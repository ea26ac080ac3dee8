package query

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
)

// DefaultRecentLimit is used when no positive limit is given.
const DefaultRecentLimit = 10

// newestFirst orders by timestamp descending; equal timestamps put the
// later insertion (higher id) first.
func newestFirst(a, b domain.ActivityLog) int {
	if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

// RecentActivityQuery represents the query for the latest activity entries
type RecentActivityQuery struct {
	Limit int
}

// RecentActivityHandler handles the recent activity query
type RecentActivityHandler struct {
	repo Reader
}

// NewRecentActivityHandler creates a new recent activity handler
func NewRecentActivityHandler(repo Reader) *RecentActivityHandler {
	return &RecentActivityHandler{repo: repo}
}

// Handle returns at most Limit entries, newest first.
func (h *RecentActivityHandler) Handle(ctx context.Context, query RecentActivityQuery) (entries []domain.ActivityLog, err error) {
	if query.Limit <= 0 {
		query.Limit = DefaultRecentLimit
	}

	_, span := tracer.Start(ctx, "query.RecentActivity")
	span.SetAttributes(attribute.Int("activity.limit", query.Limit))
	defer func() { endSpan(span, err) }()

	entries, err = h.repo.ListActivity(domain.NoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	slices.SortStableFunc(entries, newestFirst)
	if len(entries) > query.Limit {
		entries = entries[:query.Limit]
	}
	return entries, nil
}

// Range is an activity history window.
type Range string

const (
	RangeToday Range = "today"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeAll   Range = "all"
)

// ParseRange maps a query value to a Range. Empty means all.
func ParseRange(s string) (Range, error) {
	switch r := Range(s); r {
	case "":
		return RangeAll, nil
	case RangeToday, RangeWeek, RangeMonth, RangeAll:
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown range %q", domain.ErrValidation, s)
}

// since returns the start of the window ending at now. The zero time
// means unbounded.
func (r Range) since(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch r {
	case RangeToday:
		return day
	case RangeWeek:
		return day.AddDate(0, 0, -6)
	case RangeMonth:
		return day.AddDate(0, -1, 0)
	}
	return time.Time{}
}

// ActivityLogsQuery represents the query for filtered activity history
type ActivityLogsQuery struct {
	Range      Range
	ActionType string
}

// ActivityLogsHandler handles the activity history query
type ActivityLogsHandler struct {
	repo Reader
	now  func() time.Time
}

// NewActivityLogsHandler creates a new activity logs handler
func NewActivityLogsHandler(repo Reader, now func() time.Time) *ActivityLogsHandler {
	if now == nil {
		now = time.Now
	}
	return &ActivityLogsHandler{repo: repo, now: now}
}

// Handle returns entries inside the window, newest first.
func (h *ActivityLogsHandler) Handle(ctx context.Context, query ActivityLogsQuery) (entries []domain.ActivityLog, err error) {
	_, span := tracer.Start(ctx, "query.ActivityLogs")
	span.SetAttributes(
		attribute.String("activity.range", string(query.Range)),
		attribute.String("activity.action_type", query.ActionType),
	)
	defer func() { endSpan(span, err) }()

	filter := domain.NoFilter
	if query.ActionType != "" {
		filter = domain.Where("actionType", query.ActionType)
	}
	all, err := h.repo.ListActivity(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	since := query.Range.since(h.now())
	entries = make([]domain.ActivityLog, 0, len(all))
	for _, e := range all {
		if e.Timestamp.Before(since) {
			continue
		}
		entries = append(entries, e)
	}
	slices.SortStableFunc(entries, newestFirst)
	return entries, nil
}
