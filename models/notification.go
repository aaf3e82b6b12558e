package models

import (
	"time"
)

// Notification is a realtime alert shown on the dashboards, journaled locally.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Event     string    `gorm:"type:varchar(50);not null;index" json:"event"`
	Title     string    `gorm:"type:varchar(100)" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Sound     bool      `gorm:"not null;default:false" json:"sound"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
