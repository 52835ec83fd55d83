package models

import (
	"time"

	"gorm.io/datatypes"
)

// Event is a read-only resource: rows are written by external ingestion,
// this service only queries the most recent N by time descending. Tie
// order within equal timestamps is backend-defined.
type Event struct {
	ID      int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Time    time.Time      `gorm:"column:time;index;not null" json:"time"`
	Source  string         `gorm:"type:varchar(128)" json:"source"`
	Kind    string         `gorm:"type:varchar(64)" json:"kind"`
	Payload datatypes.JSON `gorm:"type:jsonb" json:"payload"`
}
