package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type SettingsSource interface {
	GetSettings(ctx context.Context) (map[string]string, error)
}

// SettingsService holds the global tax and discount rates handed to checkout.
type SettingsService struct {
	src SettingsSource

	mu       sync.RWMutex
	settings models.Settings
	loaded   bool
}

func NewSettingsService(src SettingsSource) *SettingsService {
	return &SettingsService{src: src}
}

// Get returns the cached settings, loading them on first use.
func (s *SettingsService) Get(ctx context.Context) (models.Settings, error) {
	s.mu.RLock()
	if s.loaded {
		st := s.settings
		s.mu.RUnlock()
		return st, nil
	}
	s.mu.RUnlock()
	return s.Reload(ctx)
}

func (s *SettingsService) Reload(ctx context.Context) (models.Settings, error) {
	raw, err := s.src.GetSettings(ctx)
	if err != nil {
		return models.Settings{}, fmt.Errorf("fetch settings: %w", err)
	}
	st := models.SettingsFromMap(raw)
	if err := s.Replace(st); err != nil {
		return models.Settings{}, err
	}
	return st, nil
}

// Replace installs settings pushed by the backend. Rates outside 0-100 are
// refused and the previous settings stay.
func (s *SettingsService) Replace(st models.Settings) error {
	if err := st.Validate(); err != nil {
		utils.ErrorLogger.Errorf("Rejected settings: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	s.mu.Lock()
	s.settings = st
	s.loaded = true
	s.mu.Unlock()
	return nil
}

func (s *SettingsService) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
}
