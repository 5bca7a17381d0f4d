package recommend

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ideaforge/backend/internal/apperr"
	"github.com/ideaforge/backend/internal/models"
)

// fakeStore satisfies Store with overridable functions so each test wires
// only what it needs.
type fakeStore struct {
	userFn        func(ctx context.Context, userID int) (models.User, error)
	preferencesFn func(ctx context.Context, userID int) (*models.UserPreferences, error)
	upvotedFn     func(ctx context.Context, userID int) ([]models.Idea, error)
	candidatesFn  func(ctx context.Context, c Criteria, userID, limit int) ([]models.Idea, error)
	karmaFn       func(ctx context.Context, authorIDs []int) (map[int]int, error)
	sinceFn       func(ctx context.Context, cutoff time.Time, category string) ([]models.Idea, error)
}

func (f *fakeStore) User(ctx context.Context, userID int) (models.User, error) {
	if f.userFn != nil {
		return f.userFn(ctx, userID)
	}
	return models.User{ID: userID}, nil
}

func (f *fakeStore) Preferences(ctx context.Context, userID int) (*models.UserPreferences, error) {
	if f.preferencesFn != nil {
		return f.preferencesFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeStore) UpvotedIdeas(ctx context.Context, userID int) ([]models.Idea, error) {
	if f.upvotedFn != nil {
		return f.upvotedFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeStore) Candidates(ctx context.Context, c Criteria, userID, limit int) ([]models.Idea, error) {
	if f.candidatesFn != nil {
		return f.candidatesFn(ctx, c, userID, limit)
	}
	return nil, nil
}

func (f *fakeStore) AuthorKarma(ctx context.Context, authorIDs []int) (map[int]int, error) {
	if f.karmaFn != nil {
		return f.karmaFn(ctx, authorIDs)
	}
	return map[int]int{}, nil
}

func (f *fakeStore) IdeasSince(ctx context.Context, cutoff time.Time, category string) ([]models.Idea, error) {
	if f.sinceFn != nil {
		return f.sinceFn(ctx, cutoff, category)
	}
	return nil, nil
}

func staticCandidates(ideas ...models.Idea) func(context.Context, Criteria, int, int) ([]models.Idea, error) {
	return func(context.Context, Criteria, int, int) ([]models.Idea, error) {
		return ideas, nil
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreFormula(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	idea := models.Idea{
		Category:      "WEB",
		TechStack:     []string{"Go", "PostgreSQL"},
		VoteScore:     10,
		ViewCount:     50,
		CommentCount:  4,
		BookmarkCount: 3,
		CreatedAt:     now.Add(-48 * time.Hour),
	}

	// 0.3*10 + 0.1*50 + 0.2*4 + 0.4*3 = 10.0 engagement
	// +10 category, +5 one tech match, +5 fresh, +2500/1000*2 = 5 karma
	got := Score(idea, []string{"go", "java"}, []string{"WEB"}, 2500, now)
	want := 10.0 + 10 + 5 + 5 + 5
	if !almostEqual(got, want) {
		t.Errorf("score = %v, want %v", got, want)
	}
}

func TestScoreAgeBuckets(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		age  time.Duration
		want float64
	}{
		{"under a week", 6 * 24 * time.Hour, 5},
		{"under a month", 20 * 24 * time.Hour, 2},
		{"older", 90 * 24 * time.Hour, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			idea := models.Idea{CreatedAt: now.Add(-tc.age)}
			if got := Score(idea, nil, nil, 0, now); !almostEqual(got, tc.want) {
				t.Errorf("score = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestScoreTechMatchOncePerUserToken(t *testing.T) {
	now := time.Now()
	idea := models.Idea{
		TechStack:   []string{"golang", "go-kit"},
		AITechStack: []string{"openai"},
		CreatedAt:   now.Add(-90 * 24 * time.Hour),
	}

	// "go" substring-matches both golang and go-kit but counts once;
	// "OpenAI" matches case-insensitively; "rust" matches nothing.
	got := Score(idea, []string{"go", "OpenAI", "rust"}, nil, 0, now)
	if !almostEqual(got, 10) {
		t.Errorf("score = %v, want 10 for two token matches", got)
	}
}

func TestScoreSubstringMatchesEitherDirection(t *testing.T) {
	now := time.Now()
	idea := models.Idea{Tags: []string{"react"}, CreatedAt: now.Add(-90 * 24 * time.Hour)}

	// The user token is longer than the candidate token.
	if got := Score(idea, []string{"react-native"}, nil, 0, now); !almostEqual(got, 5) {
		t.Errorf("score = %v, want 5", got)
	}
}

func TestRecommendOrdersByScoreThenHot(t *testing.T) {
	created := time.Now().Add(-60 * 24 * time.Hour)
	low := models.Idea{ID: 1, AuthorID: 7, VoteScore: 1, CreatedAt: created}
	high := models.Idea{ID: 2, AuthorID: 7, VoteScore: 20, CreatedAt: created}
	// Scores identically to low; the hot tie-break falls through to the
	// higher id.
	lowTwin := models.Idea{ID: 3, AuthorID: 7, VoteScore: 1, CreatedAt: created}

	engine := NewEngine(&fakeStore{candidatesFn: staticCandidates(low, high, lowTwin)})
	recs, _, err := engine.Recommend(context.Background(), 99, RequestFilters{}, 10)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("len = %d, want 3", len(recs))
	}
	if recs[0].Idea.ID != high.ID {
		t.Errorf("first = %d, want %d", recs[0].Idea.ID, high.ID)
	}
	if recs[1].Idea.ID != lowTwin.ID {
		t.Errorf("second = %d, want %d (hot tie-break on id)", recs[1].Idea.ID, lowTwin.ID)
	}
}

func TestRecommendTruncatesToLimit(t *testing.T) {
	now := time.Now()
	var ideas []models.Idea
	for i := 1; i <= 9; i++ {
		ideas = append(ideas, models.Idea{ID: i, AuthorID: 7, VoteScore: i, CreatedAt: now})
	}
	var askedLimit int
	engine := NewEngine(&fakeStore{
		candidatesFn: func(_ context.Context, _ Criteria, _ int, limit int) ([]models.Idea, error) {
			askedLimit = limit
			return ideas, nil
		},
	})

	recs, _, err := engine.Recommend(context.Background(), 99, RequestFilters{}, 3)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(recs) != 3 {
		t.Errorf("len = %d, want 3", len(recs))
	}
	if askedLimit != 9 {
		t.Errorf("candidate limit = %d, want 9", askedLimit)
	}
	if recs[0].Idea.ID != 9 {
		t.Errorf("first = %d, want highest-scored", recs[0].Idea.ID)
	}
}

func TestRecommendUnknownUserNotFound(t *testing.T) {
	engine := NewEngine(&fakeStore{
		userFn: func(context.Context, int) (models.User, error) {
			return models.User{}, ErrUserNotFound
		},
	})

	_, _, err := engine.Recommend(context.Background(), 99, RequestFilters{}, 10)
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("kind = %v, want NotFound", apperr.KindOf(err))
	}
}

func TestRecommendStorageDownServiceUnavailable(t *testing.T) {
	engine := NewEngine(&fakeStore{
		candidatesFn: func(context.Context, Criteria, int, int) ([]models.Idea, error) {
			return nil, errors.New("connection refused")
		},
	})

	_, _, err := engine.Recommend(context.Background(), 99, RequestFilters{}, 10)
	if apperr.KindOf(err) != apperr.ServiceUnavailable {
		t.Errorf("kind = %v, want ServiceUnavailable", apperr.KindOf(err))
	}
}

func TestRecommendDisabledReturnsEmpty(t *testing.T) {
	prefs := models.DefaultPreferences(99)
	prefs.EnableRecommendations = false
	engine := NewEngine(&fakeStore{
		preferencesFn: func(context.Context, int) (*models.UserPreferences, error) {
			return &prefs, nil
		},
		candidatesFn: func(context.Context, Criteria, int, int) ([]models.Idea, error) {
			t.Fatal("candidates must not be fetched when recommendations are off")
			return nil, nil
		},
	})

	recs, _, err := engine.Recommend(context.Background(), 99, RequestFilters{}, 10)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("len = %d, want 0", len(recs))
	}
}

func TestRecommendKarmaFailureDegrades(t *testing.T) {
	now := time.Now()
	engine := NewEngine(&fakeStore{
		candidatesFn: staticCandidates(models.Idea{ID: 1, AuthorID: 7, VoteScore: 10, CreatedAt: now}),
		karmaFn: func(context.Context, []int) (map[int]int, error) {
			return nil, errors.New("timeout")
		},
	})

	recs, _, err := engine.Recommend(context.Background(), 99, RequestFilters{}, 10)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("len = %d, want 1", len(recs))
	}
	// 0.3*10 engagement + 5 freshness, karma contributes nothing.
	if !almostEqual(recs[0].Score, 8) {
		t.Errorf("score = %v, want 8", recs[0].Score)
	}
}
