package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/database/repository"
	sessionRepo "medibook/database/repository/session"
	"medibook/models"
	"medibook/services/theme"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("onboarding session not found or expired")
	ErrUnknownAction   = errors.New("unknown onboarding action")
	ErrNoSteps         = errors.New("no onboarding steps for role")
)

// WelcomePath is where skipping the first step leads.
const WelcomePath = "/welcome"

// Action is a button press on the onboarding screen.
type Action string

const (
	ActionNext     Action = "next"
	ActionPrevious Action = "previous"
	ActionSkip     Action = "skip"
)

// StepSource supplies the onboarding steps for a role.
type StepSource func(role models.Role) []models.Step

// Session is the persisted wizard position.
type Session struct {
	ID      string      `json:"id"`
	Role    models.Role `json:"role"`
	Current int         `json:"current"`
}

// Result is returned after every action.
type Result struct {
	SessionID  string     `json:"sessionId"`
	Transition Transition `json:"transition"`
	Redirect   string     `json:"redirect,omitempty"`
	Finished   bool       `json:"finished"`
	View       View       `json:"view"`
}

// Service runs onboarding wizards, one per client session.
type Service struct {
	Store sessionRepo.Store
	Steps StepSource
	TTL   time.Duration
}

func NewService(store sessionRepo.Store, steps StepSource, ttl time.Duration) *Service {
	return &Service{Store: store, Steps: steps, TTL: ttl}
}

func key(id string) string {
	return utils.OnboardingSessionPrefix + id
}

func (s *Service) steps(role models.Role) ([]models.Step, error) {
	steps := s.Steps(role)
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSteps, role)
	}
	return steps, nil
}

// Start opens a wizard for role at step 1.
func (s *Service) Start(ctx context.Context, role models.Role) (*Result, error) {
	if _, err := theme.For(role); err != nil {
		return nil, err
	}
	steps, err := s.steps(role)
	if err != nil {
		return nil, err
	}
	sess := Session{ID: uuid.New().String(), Role: role, Current: 1}
	if err := s.Store.Set(ctx, key(sess.ID), sess, s.TTL); err != nil {
		return nil, fmt.Errorf("failed to save onboarding session: %w", err)
	}
	seq := NewSequencer(len(steps), sess.Current)
	return &Result{SessionID: sess.ID, Transition: Stayed, View: Render(seq, steps)}, nil
}

func (s *Service) load(ctx context.Context, id string) (*Session, error) {
	var sess Session
	if err := s.Store.Get(ctx, key(id), &sess); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &sess, nil
}

// Get returns the current view of a wizard.
func (s *Service) Get(ctx context.Context, id string) (*Result, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	steps, err := s.steps(sess.Role)
	if err != nil {
		return nil, err
	}
	seq := NewSequencer(len(steps), sess.Current)
	return &Result{SessionID: sess.ID, Transition: Stayed, View: Render(seq, steps)}, nil
}

// Apply performs action on the wizard. A wizard that completes or goes back
// to the welcome screen is closed and its session removed.
func (s *Service) Apply(ctx context.Context, id string, action Action) (*Result, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	steps, err := s.steps(sess.Role)
	if err != nil {
		return nil, err
	}
	variant, err := theme.For(sess.Role)
	if err != nil {
		return nil, err
	}

	res := &Result{SessionID: sess.ID}
	seq := NewSequencer(len(steps), sess.Current)
	seq.OnComplete = func() { res.Redirect = variant.AuthPath }
	seq.OnBackToWelcome = func() { res.Redirect = WelcomePath }

	switch action {
	case ActionNext:
		res.Transition = seq.Next()
	case ActionPrevious:
		res.Transition = seq.Previous()
	case ActionSkip:
		res.Transition = seq.Skip()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	res.View = Render(seq, steps)

	logger := utils.GetLogger()
	switch res.Transition {
	case Completed, BackToWelcome:
		res.Finished = true
		if err := s.Store.Delete(ctx, key(sess.ID)); err != nil {
			logger.Warn("failed to clear onboarding session", zap.String("sessionID", sess.ID), zap.Error(err))
		}
		logger.Info("onboarding finished",
			zap.String("sessionID", sess.ID),
			zap.String("role", string(sess.Role)),
			zap.String("transition", string(res.Transition)),
			zap.Int("step", seq.Current()),
		)
	default:
		sess.Current = seq.Current()
		if err := s.Store.Set(ctx, key(sess.ID), sess, s.TTL); err != nil {
			return nil, fmt.Errorf("failed to save onboarding session: %w", err)
		}
	}
	return res, nil
}
