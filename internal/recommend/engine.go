package recommend

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ideaforge/backend/internal/apperr"
	"github.com/ideaforge/backend/internal/models"
	"github.com/ideaforge/backend/internal/ranking"
)

// ErrUserNotFound is returned by Store implementations when the requesting
// user has no profile.
var ErrUserNotFound = errors.New("user not found")

// DefaultLimit applies when the caller requests no particular size.
const DefaultLimit = 10

// candidateHeadroom controls how many candidates are fetched per requested
// result so scoring can reorder before truncation.
const candidateHeadroom = 3

// Store is the storage surface the engine and the trending calculator
// consume. Candidates must already exclude the requesting user's own ideas
// and anything they bookmarked or voted on, and return up to limit rows
// ordered by vote score desc, created-at desc. UpvotedIdeas returns the
// user's UP-voted ideas in activity-log order.
type Store interface {
	User(ctx context.Context, userID int) (models.User, error)
	Preferences(ctx context.Context, userID int) (*models.UserPreferences, error)
	UpvotedIdeas(ctx context.Context, userID int) ([]models.Idea, error)
	Candidates(ctx context.Context, c Criteria, userID, limit int) ([]models.Idea, error)
	AuthorKarma(ctx context.Context, authorIDs []int) (map[int]int, error)
	IdeasSince(ctx context.Context, cutoff time.Time, category string) ([]models.Idea, error)
}

// Recommendation pairs a candidate with the score that placed it.
type Recommendation struct {
	Idea  models.Idea `json:"idea"`
	Score float64     `json:"score"`
}

type Engine struct {
	store Store
	log   *log.Entry
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store, log: log.WithField("component", "recommendations")}
}

// Recommend builds criteria for the user, fetches a candidate superset,
// scores it, and returns the top limit results ordered by descending
// score with hot-ranking tie-breaks.
func (e *Engine) Recommend(ctx context.Context, userID int, filters RequestFilters, limit int) ([]Recommendation, Criteria, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	user, err := e.store.User(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, Criteria{}, apperr.New(apperr.NotFound, "user profile not found")
		}
		return nil, Criteria{}, apperr.Wrap(apperr.ServiceUnavailable, "storage unavailable", err)
	}
	prefs, err := e.store.Preferences(ctx, userID)
	if err != nil {
		return nil, Criteria{}, apperr.Wrap(apperr.ServiceUnavailable, "storage unavailable", err)
	}
	if prefs != nil && !prefs.EnableRecommendations {
		return []Recommendation{}, Criteria{}, nil
	}

	upvoted, err := e.store.UpvotedIdeas(ctx, userID)
	if err != nil {
		return nil, Criteria{}, apperr.Wrap(apperr.ServiceUnavailable, "storage unavailable", err)
	}
	criteria := BuildCriteria(user, prefs, upvoted, filters)

	candidates, err := e.store.Candidates(ctx, criteria, userID, limit*candidateHeadroom)
	if err != nil {
		return nil, Criteria{}, apperr.Wrap(apperr.ServiceUnavailable, "storage unavailable", err)
	}
	if len(candidates) == 0 {
		return []Recommendation{}, criteria, nil
	}

	karma, err := e.store.AuthorKarma(ctx, authorIDs(candidates))
	if err != nil {
		// Scoring degrades to karma 0 rather than failing the request.
		e.log.WithError(err).Warn("author karma lookup failed")
		karma = map[int]int{}
	}

	userTokens := unionTokens(user.Skills, criteria.TechStack)
	now := time.Now()
	recs := make([]Recommendation, 0, len(candidates))
	for _, cand := range candidates {
		recs = append(recs, Recommendation{
			Idea:  cand,
			Score: Score(cand, userTokens, criteria.Categories, karma[cand.AuthorID], now),
		})
	}
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return ranking.Less(recs[i].Idea, recs[j].Idea, ranking.ModeHot)
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, criteria, nil
}

// Score computes the documented recommendation score for one candidate:
//
//	0.3*voteScore + 0.1*viewCount + 0.2*commentCount + 0.4*bookmarkCount
//	+10 when the category is preferred
//	+5 per user tech token matching any candidate token
//	+5 when younger than 7 days, +2 when younger than 30
//	+authorKarma/1000*2
func Score(idea models.Idea, userTokens, preferredCategories []string, authorKarma int, now time.Time) float64 {
	score := 0.3*float64(idea.VoteScore) +
		0.1*float64(idea.ViewCount) +
		0.2*float64(idea.CommentCount) +
		0.4*float64(idea.BookmarkCount)

	for _, cat := range preferredCategories {
		if cat == idea.Category {
			score += 10
			break
		}
	}

	score += 5 * float64(matchCount(userTokens, candidateTokens(idea)))

	age := now.Sub(idea.CreatedAt)
	switch {
	case age < 7*24*time.Hour:
		score += 5
	case age < 30*24*time.Hour:
		score += 2
	}

	score += float64(authorKarma) / 1000 * 2
	return score
}

// matchCount counts user tokens that match at least one candidate token,
// case-insensitively and by substring in either direction. Each user token
// counts at most once.
func matchCount(userTokens, candidates []string) int {
	matched := 0
	for _, ut := range userTokens {
		u := strings.ToLower(strings.TrimSpace(ut))
		if u == "" {
			continue
		}
		for _, ct := range candidates {
			c := strings.ToLower(strings.TrimSpace(ct))
			if c == "" {
				continue
			}
			if strings.Contains(c, u) || strings.Contains(u, c) {
				matched++
				break
			}
		}
	}
	return matched
}

func candidateTokens(idea models.Idea) []string {
	tokens := make([]string, 0, len(idea.TechStack)+len(idea.AITechStack)+len(idea.Tags))
	tokens = append(tokens, idea.TechStack...)
	tokens = append(tokens, idea.AITechStack...)
	tokens = append(tokens, idea.Tags...)
	return tokens
}

func unionTokens(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var out []string
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			key := strings.ToLower(v)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func authorIDs(ideas []models.Idea) []int {
	seen := make(map[int]struct{}, len(ideas))
	var out []int
	for _, idea := range ideas {
		if _, ok := seen[idea.AuthorID]; ok {
			continue
		}
		seen[idea.AuthorID] = struct{}{}
		out = append(out, idea.AuthorID)
	}
	return out
}
