package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type sessionRepo interface {
	Save(ctx context.Context, key string, session entity.Session) error
	GetByKey(ctx context.Context, key string) (entity.Session, error)
	DeleteByKey(ctx context.Context, key string) error
}

type engine interface {
	Reset()
	ApplyMove(cell int) (entity.Outcome, error)
	Restore(session entity.Session) error
	Session() entity.Session
}

// GameManager - drives the engine on behalf of the presentation layer and keeps
// the stored snapshot in step with it when a session store is configured.
type GameManager struct {
	logger      *slog.Logger
	engine      engine
	sessionRepo sessionRepo
	sessionKey  string
}

// NewGameManager - sessionRepo may be nil, in which case nothing is persisted.
func NewGameManager(logger *slog.Logger, engine engine, sessionRepo sessionRepo, sessionKey string) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		engine:      engine,
		sessionRepo: sessionRepo,
		sessionKey:  sessionKey,
	}
}

func (that *GameManager) Move(ctx context.Context, cell int) (entity.Outcome, error) {
	log := that.logger.With("method", "Move", "cell", cell)

	outcome, err := that.engine.ApplyMove(cell)
	if err != nil {
		return entity.Outcome{}, fmt.Errorf("failed make turn: %w", err)
	}

	if !outcome.Accepted {
		return outcome, nil
	}

	if outcome.IsTerminal() {
		log.Info("game finished", "status", outcome.Status, "winner", outcome.Winner)
	}

	if err = that.saveSession(ctx); err != nil {
		return outcome, fmt.Errorf("failed save session: %w", err)
	}

	return outcome, nil
}

func (that *GameManager) Restart(ctx context.Context) (entity.Session, error) {
	that.engine.Reset()

	if err := that.deleteSession(ctx); err != nil {
		return that.engine.Session(), fmt.Errorf("failed delete session: %w", err)
	}

	that.logger.Info("game restarted")

	return that.engine.Session(), nil
}

// Resume - continues the stored game if there is one, otherwise starts fresh.
func (that *GameManager) Resume(ctx context.Context) (entity.Session, error) {
	log := that.logger.With("method", "Resume")

	if that.sessionRepo == nil {
		that.engine.Reset()
		return that.engine.Session(), nil
	}

	stored, err := that.sessionRepo.GetByKey(ctx, that.sessionKey)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		that.engine.Reset()
		return that.engine.Session(), nil
	}

	if err != nil {
		return that.engine.Session(), fmt.Errorf("failed get session: %w", err)
	}

	if err = that.engine.Restore(stored); err != nil {
		log.Error("stored session discarded", "error", err)

		that.engine.Reset()
		if err = that.deleteSession(ctx); err != nil {
			return that.engine.Session(), fmt.Errorf("failed delete session: %w", err)
		}

		return that.engine.Session(), nil
	}

	log.Info("game resumed", "status", stored.Status, "turn", stored.Turn)

	return that.engine.Session(), nil
}

func (that *GameManager) Session() entity.Session {
	return that.engine.Session()
}

func (that *GameManager) saveSession(ctx context.Context) error {
	if that.sessionRepo == nil {
		return nil
	}

	if err := that.sessionRepo.Save(ctx, that.sessionKey, that.engine.Session()); err != nil {
		that.logger.Error("failed to save session", "error", err)
		return err
	}

	return nil
}

func (that *GameManager) deleteSession(ctx context.Context) error {
	if that.sessionRepo == nil {
		return nil
	}

	err := that.sessionRepo.DeleteByKey(ctx, that.sessionKey)
	if err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
		that.logger.Error("failed to delete session", "error", err)
		return err
	}

	return nil
}
