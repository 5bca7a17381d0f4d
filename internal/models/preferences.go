package models

import (
	"time"

	"github.com/lib/pq"
)

// UserPreferences holds the explicit recommendation settings a user chose.
// Rows are created lazily with defaults on first access; code must never
// assume one exists.
type UserPreferences struct {
	ID                      int            `gorm:"primaryKey" json:"id"`
	UserID                  int            `gorm:"uniqueIndex;not null" json:"user_id"`
	PreferredCategories     pq.StringArray `gorm:"type:text[]" json:"preferred_categories"`
	PreferredTechStack      pq.StringArray `gorm:"type:text[]" json:"preferred_tech_stack"`
	PreferredDifficulty     pq.StringArray `gorm:"type:text[]" json:"preferred_difficulty"`
	PreferredTimeCommitment pq.StringArray `gorm:"type:text[]" json:"preferred_time_commitment"`
	EnableRecommendations   bool           `gorm:"default:true" json:"enable_recommendations"`
	EnableTrending          bool           `gorm:"default:true" json:"enable_trending"`
	RecommendationWeight    float64        `gorm:"default:1" json:"recommendation_weight"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
}

// DefaultPreferences returns the lazy-created row for a user who never
// saved any settings.
func DefaultPreferences(userID int) UserPreferences {
	return UserPreferences{
		UserID:                userID,
		EnableRecommendations: true,
		EnableTrending:        true,
		RecommendationWeight:  1,
	}
}
