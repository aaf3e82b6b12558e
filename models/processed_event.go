package models

import (
	"time"
)

// ProcessedEvent records a realtime event key that has already been applied.
type ProcessedEvent struct {
	ID        uint      `gorm:"primaryKey"`
	EventKey  string    `gorm:"type:varchar(191);not null;uniqueIndex"`
	Event     string    `gorm:"type:varchar(50);not null"`
	CreatedAt time.Time `gorm:"not null"`
}
