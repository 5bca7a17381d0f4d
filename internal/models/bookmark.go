package models

import "time"

// Bookmark marks an idea a user saved for later. One row per (user, idea).
type Bookmark struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"not null;uniqueIndex:idx_user_idea" json:"user_id"`
	IdeaID    int       `gorm:"not null;uniqueIndex:idx_user_idea" json:"idea_id"`
	Idea      Idea      `gorm:"foreignKey:IdeaID" json:"idea"`
	CreatedAt time.Time `json:"created_at"`
}
