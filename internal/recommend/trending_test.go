package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ideaforge/backend/internal/apperr"
	"github.com/ideaforge/backend/internal/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// corpusStore serves a fixed idea corpus and applies the cutoff and
// category filters the way the real store would.
func corpusStore(ideas []models.Idea) *fakeStore {
	return &fakeStore{
		sinceFn: func(_ context.Context, cutoff time.Time, category string) ([]models.Idea, error) {
			var out []models.Idea
			for _, idea := range ideas {
				if idea.CreatedAt.Before(cutoff) {
					continue
				}
				if category != "" && idea.Category != category {
					continue
				}
				out = append(out, idea)
			}
			return out, nil
		},
	}
}

func TestParsePeriod(t *testing.T) {
	if p, err := ParsePeriod(""); err != nil || p != PeriodDaily {
		t.Errorf("empty period = %v, %v; want DAILY", p, err)
	}
	if _, err := ParsePeriod("FORTNIGHTLY"); apperr.KindOf(err) != apperr.InvalidArgument {
		t.Errorf("invalid period kind = %v, want InvalidArgument", apperr.KindOf(err))
	}
}

func TestPeriodLookback(t *testing.T) {
	cases := map[Period]time.Duration{
		PeriodHourly:  time.Hour,
		PeriodDaily:   24 * time.Hour,
		PeriodWeekly:  7 * 24 * time.Hour,
		PeriodMonthly: 30 * 24 * time.Hour,
	}
	for period, want := range cases {
		if got := period.Lookback(); got != want {
			t.Errorf("%s lookback = %v, want %v", period, got, want)
		}
	}
}

func TestTrendingTagCountsAndTies(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	ideas := []models.Idea{
		{Category: "WEB", Tags: []string{"go", "api"}, CreatedAt: now.Add(-2 * time.Hour)},
		{Category: "WEB", Tags: []string{"go"}, CreatedAt: now.Add(-3 * time.Hour)},
		{Category: "AI_ML", Tags: []string{"zig", "api"}, CreatedAt: now.Add(-4 * time.Hour)},
	}
	calc := NewTrendingCalculator(corpusStore(ideas))
	calc.now = fixedClock(now)

	snap, err := calc.Compute(context.Background(), PeriodDaily, "")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	want := []TagCount{{"api", 2}, {"go", 2}, {"zig", 1}}
	if len(snap.TagCounts) != len(want) {
		t.Fatalf("tag counts = %v", snap.TagCounts)
	}
	for i, w := range want {
		if snap.TagCounts[i] != w {
			t.Errorf("tag[%d] = %v, want %v (count desc, ties alphabetical)", i, snap.TagCounts[i], w)
		}
	}
	if snap.CategoryCounts[0] != (CategoryCount{"WEB", 2}) {
		t.Errorf("category[0] = %v", snap.CategoryCounts[0])
	}
}

func TestTrendingHourlyIsSubsetOfDaily(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	ideas := []models.Idea{
		{Category: "WEB", Tags: []string{"fresh"}, CreatedAt: now.Add(-30 * time.Minute)},
		{Category: "WEB", Tags: []string{"fresh", "stale"}, CreatedAt: now.Add(-5 * time.Hour)},
		{Category: "DATA", Tags: []string{"stale"}, CreatedAt: now.Add(-20 * time.Hour)},
	}
	calc := NewTrendingCalculator(corpusStore(ideas))
	calc.now = fixedClock(now)

	hourly, err := calc.Compute(context.Background(), PeriodHourly, "")
	if err != nil {
		t.Fatalf("hourly: %v", err)
	}
	daily, err := calc.Compute(context.Background(), PeriodDaily, "")
	if err != nil {
		t.Fatalf("daily: %v", err)
	}

	dailyTags := make(map[string]struct{}, len(daily.TagCounts))
	for _, tc := range daily.TagCounts {
		dailyTags[tc.Tag] = struct{}{}
	}
	for _, tc := range hourly.TagCounts {
		if _, ok := dailyTags[tc.Tag]; !ok {
			t.Errorf("hourly tag %q missing from daily window", tc.Tag)
		}
	}
	if len(hourly.TagCounts) != 1 || hourly.TagCounts[0].Tag != "fresh" {
		t.Errorf("hourly tags = %v, want only fresh", hourly.TagCounts)
	}
}

func TestTrendingTruncatesTagAndCategoryLists(t *testing.T) {
	now := time.Now()
	idea := models.Idea{CreatedAt: now.Add(-time.Hour)}
	for i := 0; i < 15; i++ {
		idea.Tags = append(idea.Tags, string(rune('a'+i)))
	}
	ideas := []models.Idea{idea}
	for _, cat := range []string{"WEB", "MOBILE", "AI_ML", "GAME", "DATA", "DEVTOOLS", "IOT"} {
		ideas = append(ideas, models.Idea{Category: cat, CreatedAt: now.Add(-time.Hour)})
	}

	calc := NewTrendingCalculator(corpusStore(ideas))
	snap, err := calc.Compute(context.Background(), PeriodDaily, "")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(snap.TagCounts) != trendingTagLimit {
		t.Errorf("tag count = %d, want %d", len(snap.TagCounts), trendingTagLimit)
	}
	if len(snap.CategoryCounts) != trendingCategoryLimit {
		t.Errorf("category count = %d, want %d", len(snap.CategoryCounts), trendingCategoryLimit)
	}
}

func TestTrendingCategoryFilterNarrowsWindow(t *testing.T) {
	now := time.Now()
	ideas := []models.Idea{
		{Category: "WEB", Tags: []string{"go"}, CreatedAt: now.Add(-time.Hour)},
		{Category: "DATA", Tags: []string{"spark"}, CreatedAt: now.Add(-time.Hour)},
	}
	calc := NewTrendingCalculator(corpusStore(ideas))

	snap, err := calc.Compute(context.Background(), PeriodDaily, "DATA")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(snap.TagCounts) != 1 || snap.TagCounts[0].Tag != "spark" {
		t.Errorf("tags = %v, want only spark", snap.TagCounts)
	}
}

func TestTopIdeasRankedByTrending(t *testing.T) {
	now := time.Now()
	older := models.Idea{ID: 1, VoteScore: 5, CreatedAt: now.Add(-3 * time.Hour)}
	newer := models.Idea{ID: 2, VoteScore: 5, CreatedAt: now.Add(-time.Hour)}
	top := models.Idea{ID: 3, VoteScore: 9, CreatedAt: now.Add(-4 * time.Hour)}

	calc := NewTrendingCalculator(corpusStore([]models.Idea{older, newer, top}))
	ideas, err := calc.TopIdeas(context.Background(), PeriodDaily, "", 2)
	if err != nil {
		t.Fatalf("top ideas: %v", err)
	}
	if len(ideas) != 2 {
		t.Fatalf("len = %d, want 2", len(ideas))
	}
	if ideas[0].ID != top.ID || ideas[1].ID != newer.ID {
		t.Errorf("order = [%d %d], want [%d %d]", ideas[0].ID, ideas[1].ID, top.ID, newer.ID)
	}
}

func TestTrendingStorageDownServiceUnavailable(t *testing.T) {
	calc := NewTrendingCalculator(&fakeStore{
		sinceFn: func(context.Context, time.Time, string) ([]models.Idea, error) {
			return nil, errors.New("connection refused")
		},
	})
	_, err := calc.Compute(context.Background(), PeriodDaily, "")
	if apperr.KindOf(err) != apperr.ServiceUnavailable {
		t.Errorf("kind = %v, want ServiceUnavailable", apperr.KindOf(err))
	}
}
