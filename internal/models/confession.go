package models

import (
	"time"

	"github.com/google/uuid"
)

// Confession is an anonymous text post. Likes and comments live in their own
// tables; the API serializes likes back to a flat array of user ids.
type Confession struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Likes     []Like    `gorm:"foreignKey:ConfessionID" json:"-"`
	Comments  []Comment `gorm:"foreignKey:ConfessionID" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Like marks that a user liked a confession. The composite unique index is
// what enforces the at-most-one-like-per-user invariant, including under
// concurrent toggles.
type Like struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConfessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_confession_user" json:"confession_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_confession_user" json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Comment is an append-only reply on a confession, ordered by CreatedAt.
type Comment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConfessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"confession_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}
