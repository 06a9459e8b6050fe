package conversation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/PabloGalante/farum-demo/internal/domain"
	"github.com/PabloGalante/farum-demo/internal/observability"
)

// SessionStore keeps the live controllers of the process.
type SessionStore interface {
	CreateSession(c *Controller) error
	GetSession(id domain.SessionID) (*Controller, error)
	DeleteSession(id domain.SessionID) error
	ListSessions() []domain.SessionID
}

// Service is the entry point used by transports. It creates controllers,
// registers them in the store and forwards user actions to them.
type Service struct {
	scenarios domain.ScenarioSource
	store     SessionStore
	opts      Options
	newID     func() string
}

func NewService(scenarios domain.ScenarioSource, store SessionStore, opts Options) *Service {
	return &Service{
		scenarios: scenarios,
		store:     store,
		opts:      opts.withDefaults(),
		newID:     uuid.NewString,
	}
}

type StartSessionInput struct {
	ScenarioIndex int
	Mode          domain.InteractionMode
	Panel         domain.Panel
}

type StartSessionOutput struct {
	Session Snapshot
}

func (s *Service) StartSession(ctx context.Context, in StartSessionInput) (*StartSessionOutput, error) {
	log := observability.LoggerFromContext(ctx).With(
		"scenario_index", in.ScenarioIndex,
		"mode", in.Mode,
	)
	log.Info("starting new session")

	id := domain.SessionID(s.newID())
	ctrl, err := NewController(id, s.scenarios, Config{
		ScenarioIndex: in.ScenarioIndex,
		Mode:          in.Mode,
		Panel:         in.Panel,
	}, s.withSessionLogger(id))
	if err != nil {
		log.Warn("failed to create session", "error", err)
		return nil, err
	}

	if err := s.store.CreateSession(ctrl); err != nil {
		ctrl.Close()
		log.Error("failed to store session", "error", err)
		return nil, err
	}

	log.Info("session started", "session_id", id)

	return &StartSessionOutput{Session: ctrl.Snapshot()}, nil
}

func (s *Service) withSessionLogger(id domain.SessionID) Options {
	opts := s.opts
	opts.Logger = opts.Logger.With("session_id", id)
	return opts
}

func (s *Service) GetSession(ctx context.Context, id domain.SessionID) (Snapshot, error) {
	ctrl, err := s.store.GetSession(id)
	if err != nil {
		return Snapshot{}, err
	}
	return ctrl.Snapshot(), nil
}

// ListSessions returns a snapshot of every live session, ordered by id.
// Sessions ended while listing are skipped.
func (s *Service) ListSessions(ctx context.Context) []Snapshot {
	ids := s.store.ListSessions()
	out := make([]Snapshot, 0, len(ids))
	for _, id := range ids {
		ctrl, err := s.store.GetSession(id)
		if err != nil {
			continue
		}
		out = append(out, ctrl.Snapshot())
	}
	return out
}

type ActionOutput struct {
	Accepted bool
	Session  Snapshot
}

// SelectOption forwards a menu choice. A rejected action is not an error.
func (s *Service) SelectOption(ctx context.Context, id domain.SessionID, text string) (*ActionOutput, error) {
	ctrl, err := s.store.GetSession(id)
	if err != nil {
		return nil, err
	}

	accepted := ctrl.SelectOption(text)
	observability.LoggerFromContext(ctx).Info("option selected",
		"session_id", id,
		"option", text,
		"accepted", accepted,
	)

	return &ActionOutput{Accepted: accepted, Session: ctrl.Snapshot()}, nil
}

// SubmitFreeText forwards typed text. A rejected action is not an error.
func (s *Service) SubmitFreeText(ctx context.Context, id domain.SessionID, text string) (*ActionOutput, error) {
	ctrl, err := s.store.GetSession(id)
	if err != nil {
		return nil, err
	}

	accepted := ctrl.SubmitFreeText(text)
	observability.LoggerFromContext(ctx).Info("free text submitted",
		"session_id", id,
		"accepted", accepted,
	)

	return &ActionOutput{Accepted: accepted, Session: ctrl.Snapshot()}, nil
}

func (s *Service) SetDraft(ctx context.Context, id domain.SessionID, text string) (Snapshot, error) {
	ctrl, err := s.store.GetSession(id)
	if err != nil {
		return Snapshot{}, err
	}
	ctrl.SetDraft(text)
	return ctrl.Snapshot(), nil
}

func (s *Service) Reset(ctx context.Context, id domain.SessionID) (Snapshot, error) {
	ctrl, err := s.store.GetSession(id)
	if err != nil {
		return Snapshot{}, err
	}
	ctrl.Reset()
	observability.LoggerFromContext(ctx).Info("session reset", "session_id", id)
	return ctrl.Snapshot(), nil
}

// ConfigUpdate carries the fields to change; nil fields are kept.
type ConfigUpdate struct {
	ScenarioIndex *int
	Mode          *domain.InteractionMode
	Panel         *domain.Panel
}

func (s *Service) UpdateConfig(ctx context.Context, id domain.SessionID, upd ConfigUpdate) (Snapshot, error) {
	ctrl, err := s.store.GetSession(id)
	if err != nil {
		return Snapshot{}, err
	}

	cfg := ctrl.Config()
	if upd.ScenarioIndex != nil {
		cfg.ScenarioIndex = *upd.ScenarioIndex
	}
	if upd.Mode != nil {
		cfg.Mode = *upd.Mode
	}
	if upd.Panel != nil {
		cfg.Panel = *upd.Panel
	}

	if err := ctrl.Apply(cfg); err != nil {
		return Snapshot{}, fmt.Errorf("update session %s: %w", id, err)
	}

	observability.LoggerFromContext(ctx).Info("session config updated",
		"session_id", id,
		"scenario_index", cfg.ScenarioIndex,
		"mode", cfg.Mode,
		"panel", cfg.Panel,
	)
	return ctrl.Snapshot(), nil
}

func (s *Service) Subscribe(ctx context.Context, id domain.SessionID) (<-chan Snapshot, func(), error) {
	ctrl, err := s.store.GetSession(id)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := ctrl.Subscribe()
	return ch, cancel, nil
}

func (s *Service) EndSession(ctx context.Context, id domain.SessionID) error {
	ctrl, err := s.store.GetSession(id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteSession(id); err != nil {
		return err
	}
	ctrl.Close()
	observability.LoggerFromContext(ctx).Info("session ended", "session_id", id)
	return nil
}
