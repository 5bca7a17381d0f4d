package engagement

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/ideaforge/backend/internal/models"
)

const uniqueViolation = "23505"

// GormStore implements Store on top of gorm/Postgres. Score and karma
// updates go through UpdateColumn with a SQL expression so the increment
// happens in the database, not in Go.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Target(ctx context.Context, ref TargetRef) (TargetInfo, error) {
	db := s.db.WithContext(ctx)
	switch ref.Type {
	case models.TargetIdea:
		var idea models.Idea
		if err := db.Select("id", "author_id", "vote_score").First(&idea, ref.ID).Error; err != nil {
			return TargetInfo{}, translateNotFound(err)
		}
		return TargetInfo{AuthorID: idea.AuthorID, VoteScore: idea.VoteScore}, nil
	case models.TargetComment:
		var comment models.Comment
		if err := db.Select("id", "author_id", "vote_score").First(&comment, ref.ID).Error; err != nil {
			return TargetInfo{}, translateNotFound(err)
		}
		return TargetInfo{AuthorID: comment.AuthorID, VoteScore: comment.VoteScore}, nil
	default:
		return TargetInfo{}, fmt.Errorf("unknown target type %q", ref.Type)
	}
}

func (s *GormStore) CurrentVote(ctx context.Context, voterID int, ref TargetRef) (Polarity, error) {
	var vote models.Vote
	err := s.voteQuery(ctx, voterID, ref).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return None, nil
	}
	if err != nil {
		return None, err
	}
	if vote.Value == models.VoteValueDown {
		return Down, nil
	}
	return Up, nil
}

func (s *GormStore) CreateVote(ctx context.Context, voterID int, ref TargetRef, p Polarity) error {
	vote := models.Vote{
		VoterID:    voterID,
		TargetType: ref.Type,
		TargetID:   ref.ID,
		Value:      p.Value(),
	}
	err := s.db.WithContext(ctx).Create(&vote).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateVote
	}
	return err
}

func (s *GormStore) UpdateVote(ctx context.Context, voterID int, ref TargetRef, p Polarity) error {
	return s.voteQuery(ctx, voterID, ref).Update("value", p.Value()).Error
}

func (s *GormStore) DeleteVote(ctx context.Context, voterID int, ref TargetRef) error {
	return s.voteQuery(ctx, voterID, ref).Delete(&models.Vote{}).Error
}

func (s *GormStore) voteQuery(ctx context.Context, voterID int, ref TargetRef) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Vote{}).
		Where("voter_id = ? AND target_type = ? AND target_id = ?", voterID, ref.Type, ref.ID)
}

// AddVoteScore increments the target's vote score in the database and
// returns the resulting value.
func (s *GormStore) AddVoteScore(ctx context.Context, ref TargetRef, delta int) (int, error) {
	db := s.db.WithContext(ctx)
	switch ref.Type {
	case models.TargetIdea:
		res := db.Model(&models.Idea{}).Where("id = ?", ref.ID).
			UpdateColumn("vote_score", gorm.Expr("vote_score + ?", delta))
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected == 0 {
			return 0, ErrTargetNotFound
		}
		var idea models.Idea
		if err := db.Select("vote_score").First(&idea, ref.ID).Error; err != nil {
			return 0, err
		}
		return idea.VoteScore, nil
	case models.TargetComment:
		res := db.Model(&models.Comment{}).Where("id = ?", ref.ID).
			UpdateColumn("vote_score", gorm.Expr("vote_score + ?", delta))
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected == 0 {
			return 0, ErrTargetNotFound
		}
		var comment models.Comment
		if err := db.Select("vote_score").First(&comment, ref.ID).Error; err != nil {
			return 0, err
		}
		return comment.VoteScore, nil
	default:
		return 0, fmt.Errorf("unknown target type %q", ref.Type)
	}
}

func (s *GormStore) AddKarma(ctx context.Context, userID int, delta int) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("karma_score", gorm.Expr("karma_score + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAuthorNotFound
	}
	return nil
}

func (s *GormStore) RecordActivity(ctx context.Context, rec models.ActivityRecord) error {
	return s.db.WithContext(ctx).Create(&rec).Error
}

func (s *GormStore) InTransaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTargetNotFound
	}
	return err
}
