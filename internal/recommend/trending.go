package recommend

import (
	"context"
	"sort"
	"time"

	"github.com/ideaforge/backend/internal/apperr"
	"github.com/ideaforge/backend/internal/models"
	"github.com/ideaforge/backend/internal/ranking"
)

type Period string

const (
	PeriodHourly  Period = "HOURLY"
	PeriodDaily   Period = "DAILY"
	PeriodWeekly  Period = "WEEKLY"
	PeriodMonthly Period = "MONTHLY"
)

const (
	trendingTagLimit      = 10
	trendingCategoryLimit = 5
)

// ParsePeriod validates a query-string period, defaulting to DAILY when
// empty.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return PeriodDaily, nil
	}
	switch Period(s) {
	case PeriodHourly, PeriodDaily, PeriodWeekly, PeriodMonthly:
		return Period(s), nil
	default:
		return "", apperr.Newf(apperr.InvalidArgument, "period must be HOURLY, DAILY, WEEKLY or MONTHLY, got %q", s)
	}
}

// Lookback is the fixed window each period subtracts from now.
func (p Period) Lookback() time.Duration {
	switch p {
	case PeriodHourly:
		return time.Hour
	case PeriodWeekly:
		return 7 * 24 * time.Hour
	case PeriodMonthly:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Snapshot is a per-request view of what is moving inside a time window.
// Nothing persists it; repeated calls recompute from the current corpus.
type Snapshot struct {
	TagCounts      []TagCount      `json:"tag_counts"`
	CategoryCounts []CategoryCount `json:"category_counts"`
}

// TrendingCalculator derives tag and category frequency snapshots from
// recently published ideas. The clock is injectable for tests.
type TrendingCalculator struct {
	store Store
	now   func() time.Time
}

func NewTrendingCalculator(store Store) *TrendingCalculator {
	return &TrendingCalculator{store: store, now: time.Now}
}

// Compute counts tags and categories over ideas published inside the
// period's window, optionally narrowed to one category.
func (c *TrendingCalculator) Compute(ctx context.Context, period Period, category string) (Snapshot, error) {
	ideas, err := c.window(ctx, period, category)
	if err != nil {
		return Snapshot{}, err
	}
	return buildSnapshot(ideas), nil
}

// TopIdeas returns the window's ideas under trending order, truncated to
// limit.
func (c *TrendingCalculator) TopIdeas(ctx context.Context, period Period, category string, limit int) ([]models.Idea, error) {
	ideas, err := c.window(ctx, period, category)
	if err != nil {
		return nil, err
	}
	ranking.Sort(ideas, ranking.ModeTrending)
	if limit > 0 && len(ideas) > limit {
		ideas = ideas[:limit]
	}
	return ideas, nil
}

func (c *TrendingCalculator) window(ctx context.Context, period Period, category string) ([]models.Idea, error) {
	cutoff := c.now().Add(-period.Lookback())
	ideas, err := c.store.IdeasSince(ctx, cutoff, category)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServiceUnavailable, "storage unavailable", err)
	}
	return ideas, nil
}

func buildSnapshot(ideas []models.Idea) Snapshot {
	tagCounts := make(map[string]int)
	categoryCounts := make(map[string]int)
	for _, idea := range ideas {
		for _, tag := range idea.Tags {
			tagCounts[tag]++
		}
		if idea.Category != "" {
			categoryCounts[idea.Category]++
		}
	}

	tags := make([]TagCount, 0, len(tagCounts))
	for tag, n := range tagCounts {
		tags = append(tags, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})
	if len(tags) > trendingTagLimit {
		tags = tags[:trendingTagLimit]
	}

	categories := make([]CategoryCount, 0, len(categoryCounts))
	for cat, n := range categoryCounts {
		categories = append(categories, CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Count != categories[j].Count {
			return categories[i].Count > categories[j].Count
		}
		return categories[i].Category < categories[j].Category
	})
	if len(categories) > trendingCategoryLimit {
		categories = categories[:trendingCategoryLimit]
	}

	return Snapshot{TagCounts: tags, CategoryCounts: categories}
}
