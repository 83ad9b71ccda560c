package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-web/testing/suite"
)

var errRedisDown = errors.New("redis down")

type mockSessionRepo struct {
	mock.Mock
}

func (that *mockSessionRepo) CreateOrUpdate(ctx context.Context, session *entity.Session) error {
	args := that.Called(ctx, session)
	return args.Error(0)
}

func (that *mockSessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	args := that.Called(ctx, id)

	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

func (that *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

func newManager(repo sessionRepo) *SessionManager {
	manager := NewSessionManager(suite.NewLogger(), repo)
	manager.newID = func() string { return "session-1" }

	return manager
}

func TestSessionManager_CreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores a new session", func(t *testing.T) {
		// Given: an empty repository
		repo := repository.NewMemorySessionRepository()
		manager := newManager(repo)

		// When: a session is created
		session, err := manager.CreateSession(ctx)

		// Then: it is stored with X to move
		require.NoError(t, err)
		assert.Equal(t, "session-1", session.ID)

		stored, err := repo.GetByID(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, stored.Active)
	})

	t.Run("Uses random ids by default", func(t *testing.T) {
		manager := NewSessionManager(suite.NewLogger(), repository.NewMemorySessionRepository())

		first, err := manager.CreateSession(ctx)
		require.NoError(t, err)
		second, err := manager.CreateSession(ctx)
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("Returns storage errors", func(t *testing.T) {
		// Given: a repository that fails to save
		repo := &mockSessionRepo{}
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Session")).Return(errRedisDown).Once()
		manager := newManager(repo)

		// When: a session is created
		session, err := manager.CreateSession(ctx)

		// Then: the error is wrapped
		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, session)
		repo.AssertExpectations(t)
	})
}

func TestSessionManager_MakeMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Accepted move is saved with its events", func(t *testing.T) {
		// Given: a new session
		repo := repository.NewMemorySessionRepository()
		manager := newManager(repo)
		_, err := manager.CreateSession(ctx)
		require.NoError(t, err)

		// When: X plays the center
		result, err := manager.MakeMove(ctx, "session-1", 1, 1)

		// Then: the move is stored and O is next
		require.NoError(t, err)
		assert.Equal(t, tictactoe.OutcomeAccepted, result.Outcome.Kind)
		assert.Len(t, result.Events, 2)

		stored, err := repo.GetByID(ctx, "session-1")
		require.NoError(t, err)
		cell, _ := stored.Board.CellAt(1, 1)
		assert.Equal(t, entity.PlayerX, cell)
		assert.Equal(t, entity.PlayerO, stored.Active)
	})

	t.Run("Rejected move is a result, not an error", func(t *testing.T) {
		// Given: X already holds the center
		repo := &mockSessionRepo{}
		session := entity.NewSession("session-1")
		require.NoError(t, session.Board.SetMark(1, 1, entity.PlayerX))
		session.Active = entity.PlayerO
		repo.On("GetByID", mock.Anything, "session-1").Return(session, nil).Once()
		manager := newManager(repo)

		// When: O plays the center
		result, err := manager.MakeMove(ctx, "session-1", 1, 1)

		// Then: the outcome is rejected and nothing is saved
		require.NoError(t, err)
		assert.True(t, result.Outcome.IsRejected())
		assert.ErrorIs(t, result.Outcome.Reason, apperror.ErrCellOccupied)
		assert.Empty(t, result.Events)
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Winning move finishes the session", func(t *testing.T) {
		repo := repository.NewMemorySessionRepository()
		manager := newManager(repo)
		_, err := manager.CreateSession(ctx)
		require.NoError(t, err)

		var result *MoveResult
		for _, move := range []entity.Coord{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 0, Col: 2}} {
			result, err = manager.MakeMove(ctx, "session-1", move.Row, move.Col)
			require.NoError(t, err)
		}

		assert.Equal(t, tictactoe.OutcomeWon, result.Outcome.Kind)
		assert.Equal(t, entity.StatusWon, result.Session.Status)

		again, err := manager.MakeMove(ctx, "session-1", 2, 2)
		require.NoError(t, err)
		assert.ErrorIs(t, again.Outcome.Reason, apperror.ErrGameAlreadyOver)
	})

	t.Run("Unknown session", func(t *testing.T) {
		manager := newManager(repository.NewMemorySessionRepository())

		result, err := manager.MakeMove(ctx, "missing", 0, 0)

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, result)
	})

	t.Run("Save failure is returned", func(t *testing.T) {
		repo := &mockSessionRepo{}
		repo.On("GetByID", mock.Anything, "session-1").Return(entity.NewSession("session-1"), nil).Once()
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Session")).Return(errRedisDown).Once()
		manager := newManager(repo)

		_, err := manager.MakeMove(ctx, "session-1", 0, 0)

		require.ErrorIs(t, err, errRedisDown)
		repo.AssertExpectations(t)
	})
}

func TestSessionManager_ResetSession(t *testing.T) {
	ctx := context.Background()

	// Given: a session with a move played
	repo := repository.NewMemorySessionRepository()
	manager := newManager(repo)
	_, err := manager.CreateSession(ctx)
	require.NoError(t, err)
	_, err = manager.MakeMove(ctx, "session-1", 2, 2)
	require.NoError(t, err)

	// When: the session is reset
	result, err := manager.ResetSession(ctx, "session-1")

	// Then: the stored board is empty and X is to move
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, tictactoe.EventReset, result.Events[0].Type)

	stored, err := manager.GetState(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PlayerX, stored.Active)
	assert.Equal(t, 9, stored.Board.MarkCount(entity.EmptyCell))
}

func TestSessionManager_EndSession(t *testing.T) {
	ctx := context.Background()

	// Given: a stored session
	manager := newManager(repository.NewMemorySessionRepository())
	_, err := manager.CreateSession(ctx)
	require.NoError(t, err)

	// When: it is ended
	require.NoError(t, manager.EndSession(ctx, "session-1"))

	// Then: it can no longer be loaded or ended again
	_, err = manager.GetState(ctx, "session-1")
	require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	require.ErrorIs(t, manager.EndSession(ctx, "session-1"), apperror.ErrSessionNotFound)
}
