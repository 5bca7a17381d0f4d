// Package ranking orders idea candidate sets for feed display. Sorting is
// pure comparison over fields already present on the candidates; no storage
// access, no side effects. Pagination is the caller's problem.
package ranking

import (
	"sort"

	"github.com/ideaforge/backend/internal/models"
)

type Mode string

const (
	ModeNewest   Mode = "newest"
	ModeOldest   Mode = "oldest"
	ModePopular  Mode = "popular"
	ModeTrending Mode = "trending"
	ModeHot      Mode = "hot"
)

// ParseMode maps a query-string value to a Mode, defaulting to hot.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeNewest, ModeOldest, ModePopular, ModeTrending, ModeHot:
		return Mode(s)
	default:
		return ModeHot
	}
}

// Sort orders ideas in place according to mode. Every mode ends on the idea
// ID so the order is a total one and repeated calls agree.
func Sort(ideas []models.Idea, mode Mode) {
	sort.SliceStable(ideas, func(i, j int) bool {
		return Less(ideas[i], ideas[j], mode)
	})
}

// OrderClause is the SQL equivalent of Less for paging at the database.
// Both must agree on tie-break chains or pages would disagree with
// in-memory re-ranking.
func OrderClause(mode Mode) string {
	switch mode {
	case ModeNewest:
		return "created_at DESC, id DESC"
	case ModeOldest:
		return "created_at ASC, id ASC"
	case ModePopular:
		return "vote_score DESC, id DESC"
	case ModeTrending:
		return "vote_score DESC, created_at DESC, id DESC"
	default:
		return "vote_score DESC, comment_count DESC, view_count DESC, id DESC"
	}
}

// Less reports whether a sorts before b under mode.
func Less(a, b models.Idea, mode Mode) bool {
	switch mode {
	case ModeNewest:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	case ModeOldest:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	case ModePopular:
		if a.VoteScore != b.VoteScore {
			return a.VoteScore > b.VoteScore
		}
		return a.ID > b.ID
	case ModeTrending:
		if a.VoteScore != b.VoteScore {
			return a.VoteScore > b.VoteScore
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	default: // hot
		if a.VoteScore != b.VoteScore {
			return a.VoteScore > b.VoteScore
		}
		if a.CommentCount != b.CommentCount {
			return a.CommentCount > b.CommentCount
		}
		if a.ViewCount != b.ViewCount {
			return a.ViewCount > b.ViewCount
		}
		return a.ID > b.ID
	}
}
