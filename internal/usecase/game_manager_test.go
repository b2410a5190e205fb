package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var errRedisDown = errors.New("redis down")

type mockSessionRepo struct {
	mock.Mock
}

func (that *mockSessionRepo) Save(ctx context.Context, key string, session entity.Session) error {
	args := that.Called(ctx, key, session)
	return args.Error(0)
}

func (that *mockSessionRepo) GetByKey(ctx context.Context, key string) (entity.Session, error) {
	args := that.Called(ctx, key)
	return args.Get(0).(entity.Session), args.Error(1) //nolint: forcetypeassert // test double
}

func (that *mockSessionRepo) DeleteByKey(ctx context.Context, key string) error {
	args := that.Called(ctx, key)
	return args.Error(0)
}

func newMockSessionRepo(t *testing.T) *mockSessionRepo {
	t.Helper()

	repo := &mockSessionRepo{}
	t.Cleanup(func() { repo.AssertExpectations(t) })

	return repo
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newManager(repo *mockSessionRepo) *GameManager {
	logger := testLogger()

	if repo == nil {
		return NewGameManager(logger, tictactoe.New(logger), nil, "test")
	}

	return NewGameManager(logger, tictactoe.New(logger), repo, "test")
}

func TestGameManager_Move(t *testing.T) {
	ctx := context.Background()

	t.Run("Accepted move is saved", func(t *testing.T) {
		// Given: a manager with a session store
		repo := newMockSessionRepo(t)
		manager := newManager(repo)

		repo.On("Save", ctx, "test", mock.MatchedBy(func(s entity.Session) bool {
			return s.Board[4] == entity.PlayerX && s.Turn == entity.PlayerO
		})).Return(nil).Once()

		// When: X plays the centre
		outcome, err := manager.Move(ctx, 4)

		// Then: the move is accepted and the snapshot saved
		require.NoError(t, err)
		assert.True(t, outcome.Accepted)
		assert.Equal(t, entity.PlayerO, outcome.Turn)
	})

	t.Run("Rejected move is not saved", func(t *testing.T) {
		// Given: X has played the centre
		repo := newMockSessionRepo(t)
		manager := newManager(repo)

		repo.On("Save", ctx, "test", mock.Anything).Return(nil).Once()
		_, err := manager.Move(ctx, 4)
		require.NoError(t, err)

		// When: O plays the same cell
		outcome, err := manager.Move(ctx, 4)

		// Then: the move is rejected and Save is not called again
		require.NoError(t, err)
		assert.False(t, outcome.Accepted)
		assert.ErrorIs(t, outcome.Reason, apperror.ErrCellOccupied)
	})

	t.Run("Invalid cell is an error", func(t *testing.T) {
		manager := newManager(newMockSessionRepo(t))

		_, err := manager.Move(ctx, 9)

		require.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Storage failure keeps the move", func(t *testing.T) {
		// Given: a store that fails
		repo := newMockSessionRepo(t)
		manager := newManager(repo)

		repo.On("Save", ctx, "test", mock.Anything).Return(errRedisDown).Once()

		// When: X plays
		outcome, err := manager.Move(ctx, 0)

		// Then: the error is reported but the engine state advanced
		require.ErrorIs(t, err, errRedisDown)
		assert.True(t, outcome.Accepted)
		assert.Equal(t, entity.PlayerX, manager.Session().Board[0])
	})

	t.Run("Without a store moves still work", func(t *testing.T) {
		manager := newManager(nil)

		for _, cell := range []int{0, 1, 3, 4} {
			_, err := manager.Move(ctx, cell)
			require.NoError(t, err)
		}

		outcome, err := manager.Move(ctx, 6)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusWon, outcome.Status)
		assert.Equal(t, entity.PlayerX, outcome.Winner)
	})
}

func TestGameManager_Restart(t *testing.T) {
	ctx := context.Background()

	t.Run("Restart clears the board and the stored snapshot", func(t *testing.T) {
		// Given: a game with one move
		repo := newMockSessionRepo(t)
		manager := newManager(repo)

		repo.On("Save", ctx, "test", mock.Anything).Return(nil).Once()
		_, err := manager.Move(ctx, 0)
		require.NoError(t, err)

		repo.On("DeleteByKey", ctx, "test").Return(nil).Once()

		// When: the game is restarted
		session, err := manager.Restart(ctx)

		// Then: a fresh session is returned
		require.NoError(t, err)
		assert.Equal(t, entity.NewSession(), session)
	})

	t.Run("Missing snapshot is not an error", func(t *testing.T) {
		repo := newMockSessionRepo(t)
		manager := newManager(repo)

		repo.On("DeleteByKey", ctx, "test").Return(apperror.ErrSessionNotFound).Once()

		_, err := manager.Restart(ctx)

		require.NoError(t, err)
	})

	t.Run("Delete failure is reported", func(t *testing.T) {
		repo := newMockSessionRepo(t)
		manager := newManager(repo)

		repo.On("DeleteByKey", ctx, "test").Return(errRedisDown).Once()

		session, err := manager.Restart(ctx)

		require.ErrorIs(t, err, errRedisDown)
		assert.Equal(t, entity.NewSession(), session)
	})
}

func TestGameManager_Resume(t *testing.T) {
	ctx := context.Background()

	t.Run("Resumes the stored game", func(t *testing.T) {
		// Given: a stored mid-game snapshot
		repo := newMockSessionRepo(t)
		manager := newManager(repo)

		stored := entity.Session{
			Board:  entity.Board{entity.PlayerX, entity.PlayerO, entity.PlayerX},
			Turn:   entity.PlayerO,
			Status: entity.StatusInProgress,
		}
		repo.On("GetByKey", ctx, "test").Return(stored, nil).Once()

		// When: the manager resumes
		session, err := manager.Resume(ctx)

		// Then: the engine continues from the snapshot
		require.NoError(t, err)
		assert.Equal(t, stored, session)
		assert.Equal(t, stored, manager.Session())
	})

	t.Run("Starts fresh when nothing is stored", func(t *testing.T) {
		repo := newMockSessionRepo(t)
		manager := newManager(repo)

		repo.On("GetByKey", ctx, "test").Return(entity.Session{}, apperror.ErrSessionNotFound).Once()

		session, err := manager.Resume(ctx)

		require.NoError(t, err)
		assert.Equal(t, entity.NewSession(), session)
	})

	t.Run("Discards a corrupt snapshot", func(t *testing.T) {
		// Given: a stored snapshot with impossible mark counts
		repo := newMockSessionRepo(t)
		manager := newManager(repo)

		corrupt := entity.Session{
			Board:  entity.Board{entity.PlayerO, entity.PlayerO, entity.PlayerO},
			Turn:   entity.PlayerX,
			Status: entity.StatusWon,
			Winner: entity.PlayerO,
		}
		repo.On("GetByKey", ctx, "test").Return(corrupt, nil).Once()
		repo.On("DeleteByKey", ctx, "test").Return(nil).Once()

		// When: the manager resumes
		session, err := manager.Resume(ctx)

		// Then: the snapshot is deleted and a fresh game starts
		require.NoError(t, err)
		assert.Equal(t, entity.NewSession(), session)
	})

	t.Run("Storage failure is reported", func(t *testing.T) {
		repo := newMockSessionRepo(t)
		manager := newManager(repo)

		repo.On("GetByKey", ctx, "test").Return(entity.Session{}, errRedisDown).Once()

		_, err := manager.Resume(ctx)

		require.ErrorIs(t, err, errRedisDown)
	})

	t.Run("Without a store resume starts fresh", func(t *testing.T) {
		manager := newManager(nil)

		session, err := manager.Resume(ctx)

		require.NoError(t, err)
		assert.Equal(t, entity.NewSession(), session)
	})
}
