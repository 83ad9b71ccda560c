package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// MoveResult is what a single move produced. A rejected move is reported in Outcome, not as an error.
type MoveResult struct {
	Session *entity.Session
	Outcome tictactoe.Outcome
	Events  []tictactoe.Event
}

type SessionManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo

	// serialises load, apply and save so two moves on one session never interleave
	mu sync.Mutex

	newID func() string
}

func NewSessionManager(logger *slog.Logger, sessionRepo sessionRepo) *SessionManager {
	return &SessionManager{
		logger:      logger.With("component", "session_manager"),
		sessionRepo: sessionRepo,
		newID:       uuid.NewString,
	}
}

func (that *SessionManager) CreateSession(ctx context.Context) (*entity.Session, error) {
	log := that.logger.With("method", "CreateSession")

	session := entity.NewSession(that.newID())
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info("session created", "sessionID", session.ID)

	return session, nil
}

func (that *SessionManager) GetState(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (that *SessionManager) MakeMove(ctx context.Context, id string, row, col int) (*MoveResult, error) {
	log := that.logger.With("method", "MakeMove", "sessionID", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	recorder := &tictactoe.Recorder{}
	controller := tictactoe.NewGameController(session, recorder, that.eventLogger(log))

	outcome, err := controller.ApplyMove(row, col)
	if err != nil {
		log.Debug("move rejected", "row", row, "col", col, "reason", outcome.ReasonCode())

		return &MoveResult{Session: session, Outcome: outcome}, nil
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &MoveResult{
		Session: session,
		Outcome: outcome,
		Events:  recorder.Events,
	}, nil
}

func (that *SessionManager) ResetSession(ctx context.Context, id string) (*MoveResult, error) {
	log := that.logger.With("method", "ResetSession", "sessionID", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	recorder := &tictactoe.Recorder{}
	controller := tictactoe.NewGameController(session, recorder, that.eventLogger(log))
	controller.Reset()

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &MoveResult{
		Session: session,
		Events:  recorder.Events,
	}, nil
}

func (that *SessionManager) EndSession(ctx context.Context, id string) error {
	log := that.logger.With("method", "EndSession", "sessionID", id)

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	log.Info("session ended")

	return nil
}

func (that *SessionManager) eventLogger(log *slog.Logger) tictactoe.Listener {
	return tictactoe.ListenerFunc(func(event tictactoe.Event) {
		switch event.Type {
		case tictactoe.EventWon:
			log.Info("game won", "winner", event.Player, "line", event.Line.ID)
		case tictactoe.EventDrawn:
			log.Info("game drawn")
		case tictactoe.EventReset:
			log.Info("game reset")
		default:
			log.Debug("game event", "event", event.Type, "player", event.Player)
		}
	})
}
