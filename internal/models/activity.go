package models

import "time"

// Activity types recorded by the platform. The log is append-only; the
// recommendation engine reads it, nothing mutates it.
const (
	ActivityVoteUp   = "VOTE_UP"
	ActivityVoteDown = "VOTE_DOWN"
	ActivityView     = "VIEW"
	ActivityBookmark = "BOOKMARK"
	ActivityComment  = "COMMENT"
)

type ActivityRecord struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"not null;index" json:"type"`
	UserID    int       `gorm:"not null;index" json:"user_id"`
	TargetID  int       `gorm:"not null" json:"target_id"`
	Payload   string    `json:"payload,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
