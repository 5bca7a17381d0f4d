package models

import "time"

type Comment struct {
	ID              int       `gorm:"primaryKey" json:"id"`
	Body            string    `gorm:"not null" json:"body"`
	AuthorID        int       `gorm:"index" json:"author_id"`
	Author          User      `gorm:"foreignKey:AuthorID" json:"author"`
	IdeaID          int       `gorm:"index" json:"idea_id"`
	ParentCommentID *int      `json:"parent_comment_id,omitempty"`
	VoteScore       int       `gorm:"default:0" json:"vote_score"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateCommentRequest struct {
	Body            string `json:"body"`
	ParentCommentID *int   `json:"parent_comment_id,omitempty"`
}
