package navigation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/database/repository"
	sessionRepo "medibook/database/repository/session"
	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

// State is what the client needs to draw the bar after a change.
type State struct {
	Active     models.Tab  `json:"active"`
	Location   string      `json:"location"`
	Route      *Route      `json:"route,omitempty"`
	Indicators []Indicator `json:"indicators"`
}

// Service keeps one Controller per client session.
type Service struct {
	Store sessionRepo.Store
	TTL   time.Duration
}

func NewService(store sessionRepo.Store, ttl time.Duration) *Service {
	return &Service{Store: store, TTL: ttl}
}

func key(sessionID string) string {
	return utils.NavigationSessionPrefix + sessionID
}

func (s *Service) load(ctx context.Context, sessionID string) (*Controller, error) {
	c := NewController()
	if sessionID == "" {
		return c, nil
	}
	if err := s.Store.Get(ctx, key(sessionID), c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewController(), nil
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) save(ctx context.Context, sessionID string, c *Controller) error {
	if sessionID == "" {
		return nil
	}
	if err := s.Store.Set(ctx, key(sessionID), c, s.TTL); err != nil {
		return fmt.Errorf("failed to save navigation state: %w", err)
	}
	return nil
}

// Current returns the session's controller state.
func (s *Service) Current(ctx context.Context, sessionID string, actor Actor) (*State, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &State{Active: c.Active, Location: c.Location, Indicators: c.Indicators(actor)}, nil
}

// Select applies a tab tap for the session.
func (s *Service) Select(ctx context.Context, sessionID string, tab models.Tab, actor Actor) (*State, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	route := c.Select(tab, actor)
	if route.Redirected {
		utils.GetLogger().Debug("guarded tab redirected to login selection",
			zap.String("tab", string(tab)), zap.String("sessionID", sessionID))
	}
	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return &State{Active: c.Active, Location: c.Location, Route: &route, Indicators: c.Indicators(actor)}, nil
}

// Sync applies a location change for the session.
func (s *Service) Sync(ctx context.Context, sessionID, location string, actor Actor) (*State, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Sync(location)
	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return &State{Active: c.Active, Location: c.Location, Indicators: c.Indicators(actor)}, nil
}
