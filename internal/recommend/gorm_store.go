package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/ideaforge/backend/internal/models"
)

// GormStore implements Store on gorm/Postgres. Tech-stack matching uses
// the array-overlap operator against the three token columns.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) User(ctx context.Context, userID int) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

func (s *GormStore) Preferences(ctx context.Context, userID int) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

// UpvotedIdeas returns the ideas the user has UP-voted, ordered by when
// the activity was logged. Criteria inference tie-breaks on that order.
func (s *GormStore) UpvotedIdeas(ctx context.Context, userID int) ([]models.Idea, error) {
	var ideas []models.Idea
	err := s.db.WithContext(ctx).
		Table("activity_records").
		Select("ideas.*").
		Joins("JOIN ideas ON ideas.id = activity_records.target_id").
		Where("activity_records.user_id = ? AND activity_records.type = ? AND activity_records.payload = ?",
			userID, models.ActivityVoteUp, models.TargetIdea).
		Order("activity_records.created_at ASC, activity_records.id ASC").
		Scan(&ideas).Error
	return ideas, err
}

// Candidates fetches published ideas matching the criteria, minus anything
// the user wrote, bookmarked, or voted on, ordered by vote score then
// recency so the scorer sees the strongest superset first.
func (s *GormStore) Candidates(ctx context.Context, c Criteria, userID, limit int) ([]models.Idea, error) {
	q := s.db.WithContext(ctx).Model(&models.Idea{}).
		Where("published = ?", true).
		Where("author_id <> ?", userID).
		Where("id NOT IN (SELECT idea_id FROM bookmarks WHERE user_id = ?)", userID).
		Where("id NOT IN (SELECT target_id FROM votes WHERE voter_id = ? AND target_type = ?)",
			userID, models.TargetIdea)

	if len(c.Categories) > 0 {
		q = q.Where("category IN ?", c.Categories)
	}
	if len(c.Difficulty) > 0 {
		q = q.Where("difficulty IN ?", c.Difficulty)
	}
	if len(c.TimeCommitment) > 0 {
		q = q.Where("time_commitment IN ?", c.TimeCommitment)
	}
	if len(c.TechStack) > 0 {
		tokens := pq.Array(c.TechStack)
		q = q.Where("(tech_stack && ? OR ai_tech_stack && ? OR tags && ?)", tokens, tokens, tokens)
	}

	var ideas []models.Idea
	err := q.Preload("Author").Order("vote_score DESC, created_at DESC").Limit(limit).Find(&ideas).Error
	return ideas, err
}

func (s *GormStore) AuthorKarma(ctx context.Context, authorIDs []int) (map[int]int, error) {
	karma := make(map[int]int, len(authorIDs))
	if len(authorIDs) == 0 {
		return karma, nil
	}
	var users []models.User
	err := s.db.WithContext(ctx).
		Select("id", "karma_score").
		Where("id IN ?", authorIDs).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		karma[u.ID] = u.KarmaScore
	}
	return karma, nil
}

func (s *GormStore) IdeasSince(ctx context.Context, cutoff time.Time, category string) ([]models.Idea, error) {
	q := s.db.WithContext(ctx).Model(&models.Idea{}).
		Where("published = ? AND created_at >= ?", true, cutoff)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var ideas []models.Idea
	err := q.Find(&ideas).Error
	return ideas, err
}
