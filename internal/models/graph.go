package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Graph stores a report/visualization configuration: the chart type, a
// title, the query it renders, and an open-ended attribute bag.
type Graph struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Type       string         `gorm:"type:varchar(64);not null" json:"type" validate:"required"`
	Title      string         `gorm:"not null" json:"title" validate:"required"`
	Query      string         `gorm:"type:text" json:"query"`
	Attributes datatypes.JSON `gorm:"type:jsonb" json:"attributes"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// BeforeCreate assigns an id when the caller did not provide one.
func (g *Graph) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
