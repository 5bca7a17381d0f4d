package handlers

import (
	"gorm.io/gorm"

	"github.com/ideaforge/backend/internal/config"
	"github.com/ideaforge/backend/internal/engagement"
	"github.com/ideaforge/backend/internal/recommend"
)

// Handler combines all handler types
type Handler struct {
	Auth           *AuthHandler
	Idea           *IdeaHandler
	Comment        *CommentHandler
	Bookmark       *BookmarkHandler
	Vote           *VoteHandler
	User           *UserHandler
	Recommendation *RecommendationHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, cfg *config.Config) *Handler {
	ledger := engagement.NewLedger(
		engagement.NewGormStore(db),
		engagement.NewKarmaAccumulator(),
		engagement.LogBroadcaster{},
	)
	engine := recommend.NewEngine(recommend.NewGormStore(db))
	trending := recommend.NewTrendingCalculator(recommend.NewGormStore(db))

	return &Handler{
		Auth:           NewAuthHandler(db, cfg),
		Idea:           NewIdeaHandler(db),
		Comment:        NewCommentHandler(db),
		Bookmark:       NewBookmarkHandler(db),
		Vote:           NewVoteHandler(ledger),
		User:           NewUserHandler(db),
		Recommendation: NewRecommendationHandler(engine, trending, cfg),
	}
}
