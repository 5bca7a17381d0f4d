package models

import "time"

// Vote target kinds. A vote always points at exactly one of these.
const (
	TargetIdea    = "IDEA"
	TargetComment = "COMMENT"
)

// Stored vote values. +1 for UP, -1 for DOWN.
const (
	VoteValueUp   = 1
	VoteValueDown = -1
)

// Vote tracks one user's vote on one target. The composite unique index
// guarantees at most one row per (voter, target) pair and serializes
// concurrent casts by the same voter.
type Vote struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	VoterID    int       `gorm:"not null;uniqueIndex:idx_voter_target" json:"voter_id"`
	TargetType string    `gorm:"not null;uniqueIndex:idx_voter_target" json:"target_type"`
	TargetID   int       `gorm:"not null;uniqueIndex:idx_voter_target" json:"target_id"`
	Value      int       `gorm:"not null" json:"value"` // +1 or -1
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
