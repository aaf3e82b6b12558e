package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

const defaultNotificationLimit = 50

type NotificationService struct {
	db  *gorm.DB
	hub *kds.KDSHub
}

func NewNotificationService(db *gorm.DB, hub *kds.KDSHub) *NotificationService {
	return &NotificationService{db: db, hub: hub}
}

// Notify journals the alert and pushes it to every dashboard.
func (s *NotificationService) Notify(ctx context.Context, event, title, message string, sound bool) (models.Notification, error) {
	n := models.Notification{
		Event:     event,
		Title:     title,
		Message:   message,
		Sound:     sound,
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		utils.ErrorLogger.Errorf("Failed to save notification %q: %v", title, err)
		return models.Notification{}, fmt.Errorf("save notification: %w", err)
	}
	s.hub.BroadcastNotification(n)
	return n, nil
}

// List returns the newest notifications first.
func (s *NotificationService) List(ctx context.Context, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	var out []models.Notification
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return out, nil
}
