package models

import (
	"time"

	"github.com/lib/pq"
)

type Idea struct {
	ID             int            `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Category       string         `gorm:"index" json:"category"`
	Difficulty     string         `json:"difficulty"`
	TimeCommitment string         `json:"time_commitment"`
	TechStack      pq.StringArray `gorm:"type:text[]" json:"tech_stack"`
	AITechStack    pq.StringArray `gorm:"type:text[]" json:"ai_tech_stack"`
	Tags           pq.StringArray `gorm:"type:text[]" json:"tags"`
	AuthorID       int            `gorm:"index" json:"author_id"`
	Author         User           `gorm:"foreignKey:AuthorID" json:"author"`
	Published      bool           `gorm:"default:true;index" json:"published"`

	// Engagement counters. Mutated only through atomic column increments,
	// never read-modify-write. The reconciliation job corrects drift.
	VoteScore     int `gorm:"default:0" json:"vote_score"`
	ViewCount     int `gorm:"default:0" json:"view_count"`
	CommentCount  int `gorm:"default:0" json:"comment_count"`
	BookmarkCount int `gorm:"default:0" json:"bookmark_count"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateIdeaRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Difficulty     string   `json:"difficulty"`
	TimeCommitment string   `json:"time_commitment"`
	TechStack      []string `json:"tech_stack"`
	AITechStack    []string `json:"ai_tech_stack"`
	Tags           []string `json:"tags"`
}

// Allowed enum values for idea dimensions. Handlers reject anything else
// with an invalid-argument error.
var (
	Categories = map[string]struct{}{
		"WEB":      {},
		"MOBILE":   {},
		"AI_ML":    {},
		"GAME":     {},
		"DATA":     {},
		"DEVTOOLS": {},
		"IOT":      {},
		"OTHER":    {},
	}

	Difficulties = map[string]struct{}{
		"BEGINNER":     {},
		"INTERMEDIATE": {},
		"ADVANCED":     {},
	}

	TimeCommitments = map[string]struct{}{
		"WEEKEND":   {},
		"ONE_WEEK":  {},
		"ONE_MONTH": {},
		"LONG_TERM": {},
	}
)

func ValidCategory(c string) bool {
	_, ok := Categories[c]
	return ok
}

func ValidDifficulty(d string) bool {
	_, ok := Difficulties[d]
	return ok
}

func ValidTimeCommitment(t string) bool {
	_, ok := TimeCommitments[t]
	return ok
}
