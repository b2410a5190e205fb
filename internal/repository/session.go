package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const sessionKeyPrefix = "session:"

type SessionRepository interface {
	Save(ctx context.Context, key string, session entity.Session) error
	GetByKey(ctx context.Context, key string) (entity.Session, error)
	DeleteByKey(ctx context.Context, key string) error
}

type dbSession struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &dbSession{
		client: client,
	}
}

// Save - overwrites the snapshot stored under key; no history is kept.
func (that *dbSession) Save(ctx context.Context, key string, session entity.Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	err = that.client.Set(ctx, sessionKeyPrefix+key, sessionJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *dbSession) GetByKey(ctx context.Context, key string) (entity.Session, error) {
	response, err := that.client.Get(ctx, sessionKeyPrefix+key).Result()

	if errors.Is(err, redis.Nil) {
		return entity.Session{}, apperror.ErrSessionNotFound
	}

	if err != nil {
		return entity.Session{}, fmt.Errorf("failed to get session by key: %w", err)
	}

	var existingSession entity.Session
	if err = json.Unmarshal([]byte(response), &existingSession); err != nil {
		return entity.Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return existingSession, nil
}

func (that *dbSession) DeleteByKey(ctx context.Context, key string) error {
	deleted, err := that.client.Del(ctx, sessionKeyPrefix+key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session by key: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrSessionNotFound
	}

	return nil
}
