package models

import (
	"time"
)

// User represents a platform user. Email uniqueness is enforced at the
// handler layer with a pre-read, not by a database constraint, so two
// concurrent creates with the same email can race. Accepted for a
// low-contention internal tool.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"not null;index" json:"email" validate:"required,email"`
	Name      string    `gorm:"not null" json:"name" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}
