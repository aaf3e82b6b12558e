package services

import (
	"context"

	"github.com/yeremiapane/restaurant-pos/models"
)

type SessionSource interface {
	CurrentSession(ctx context.Context) (*models.Session, error)
}

// SessionStatus backs the warning banner on the order screen.
type SessionStatus struct {
	Active   bool            `json:"active"`
	Session  *models.Session `json:"session,omitempty"`
	Redirect string          `json:"redirect,omitempty"`
}

type SessionService struct {
	src SessionSource
}

func NewSessionService(src SessionSource) *SessionService {
	return &SessionService{src: src}
}

func (s *SessionService) Status(ctx context.Context) (SessionStatus, error) {
	session, err := s.src.CurrentSession(ctx)
	if err != nil {
		return SessionStatus{}, err
	}
	if session == nil || session.Status != models.SessionOpen {
		return SessionStatus{Redirect: SessionRedirect}, nil
	}
	return SessionStatus{Active: true, Session: session}, nil
}
