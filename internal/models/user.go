package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`

	// Skills the user declares on their profile. Used as the tech-stack
	// fallback when recommendation criteria end up empty.
	Skills pq.StringArray `gorm:"type:text[]" json:"skills"`

	// KarmaScore is an incremental ledger fed by votes on this user's
	// content. It is never recomputed on the hot path.
	KarmaScore int `gorm:"default:0" json:"karma_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message"`
}
