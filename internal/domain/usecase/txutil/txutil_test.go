package txutil

import (
	"context"
	"errors"
	"testing"

	mcore "github.com/amirhossein-jamali/polaroid-studio/mocks/port/core"
	mpers "github.com/amirhossein-jamali/polaroid-studio/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type txKey struct{}

func TestRun(t *testing.T) {
	ctx := context.Background()
	txCtx := context.WithValue(ctx, txKey{}, "tx")

	t.Run("Commits on success", func(t *testing.T) {
		uow := mpers.NewMockUnitOfWork(t)
		logger := mcore.NewPermissiveMockLogger(t)
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)

		var seen context.Context
		err := Run(ctx, uow, logger, func(c context.Context) error {
			seen = c
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, txCtx, seen)
		uow.AssertNotCalled(t, "Rollback", txCtx)
	})

	t.Run("Rolls back on step error", func(t *testing.T) {
		uow := mpers.NewMockUnitOfWork(t)
		logger := mcore.NewPermissiveMockLogger(t)
		stepErr := errors.New("step failed")
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)

		err := Run(ctx, uow, logger, func(context.Context) error { return stepErr })

		assert.Equal(t, stepErr, err)
		uow.AssertNotCalled(t, "Commit", txCtx)
	})

	t.Run("Returns step error when rollback fails", func(t *testing.T) {
		uow := mpers.NewMockUnitOfWork(t)
		logger := mcore.NewMockLogger(t)
		stepErr := errors.New("step failed")
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(errors.New("connection lost"))
		logger.On("Error", "Failed to rollback transaction", map[string]any{
			"error":          "connection lost",
			"original_error": "step failed",
		}).Once()

		err := Run(ctx, uow, logger, func(context.Context) error { return stepErr })

		assert.Equal(t, stepErr, err)
	})

	t.Run("Begin failure skips step", func(t *testing.T) {
		uow := mpers.NewMockUnitOfWork(t)
		logger := mcore.NewPermissiveMockLogger(t)
		uow.On("Begin", ctx).Return(nil, errors.New("pool exhausted"))

		called := false
		err := Run(ctx, uow, logger, func(context.Context) error {
			called = true
			return nil
		})

		assert.ErrorContains(t, err, "begin transaction: pool exhausted")
		assert.False(t, called)
	})

	t.Run("Commit failure is wrapped", func(t *testing.T) {
		uow := mpers.NewMockUnitOfWork(t)
		logger := mcore.NewPermissiveMockLogger(t)
		commitErr := errors.New("serialization failure")
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(commitErr)
		uow.On("Rollback", txCtx).Return(nil)

		err := Run(ctx, uow, logger, func(context.Context) error { return nil })

		assert.ErrorIs(t, err, commitErr)
	})
}
