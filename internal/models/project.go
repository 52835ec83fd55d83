package models

import (
	"time"
)

// Project represents a dashboard project owned by a user. OwnerID is
// checked against the users table at creation time by the handler; there
// is no foreign key in the schema.
type Project struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null" json:"title" validate:"required"`
	Description string    `gorm:"type:text" json:"description"`
	OwnerID     int64     `gorm:"index;not null" json:"owner_id" validate:"required,gt=0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
