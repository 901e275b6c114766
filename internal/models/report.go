package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReportTypePost    = "post"
	ReportTypeComment = "comment"

	ReportStatusPending  = "pending"
	ReportStatusResolved = "resolved"
)

// Report is a moderation flag raised by a user against a confession or one of
// its comments. Status moves pending -> resolved, one way.
type Report struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ConfessionID uuid.UUID   `gorm:"type:uuid;not null;index" json:"confession_id"`
	ReporterID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"reporter_id"`
	Reason       string      `gorm:"not null;size:500" json:"reason"`
	Type         string      `gorm:"not null;size:20;default:'post'" json:"type"`
	Status       string      `gorm:"not null;size:20;default:'pending';index" json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Confession   *Confession `gorm:"foreignKey:ConfessionID" json:"confession,omitempty"`
	Reporter     *User       `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
}
