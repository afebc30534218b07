package repository

import (
	"context"
	"testing"
	"time"

	"betbot/repository/testutil"
	"betbot/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByUserID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("user not found", func(t *testing.T) {
		user, err := repo.GetByUserID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("user found", func(t *testing.T) {
		created, err := repo.Create(ctx, 123456, "testuser", 1000)
		require.NoError(t, err)

		user, err := repo.GetByUserID(ctx, 123456)
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, int64(123456), user.UserID)
		assert.Equal(t, "testuser", user.Username)
		assert.Equal(t, int64(1000), user.Balance)
		assert.Nil(t, user.LastDailyClaim)
		assert.Equal(t, created.CreatedAt, user.CreatedAt)
	})
}

func TestUserRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		user, err := repo.Create(ctx, 123456, "testuser", 1000)
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, int64(123456), user.UserID)
		assert.Equal(t, "testuser", user.Username)
		assert.Equal(t, int64(1000), user.Balance)
		assert.Nil(t, user.LastDailyClaim)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("duplicate user ID", func(t *testing.T) {
		_, err := repo.Create(ctx, 789012, "testuser2", 1000)
		require.NoError(t, err)

		_, err = repo.Create(ctx, 789012, "different_name", 1000)
		assert.Error(t, err)
	})
}

func TestUserRepository_DeductBalance(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful deduction", func(t *testing.T) {
		_, err := repo.Create(ctx, 111111, "spender", 1000)
		require.NoError(t, err)

		err = repo.DeductBalance(ctx, 111111, 300)
		require.NoError(t, err)

		user, err := repo.GetByUserID(ctx, 111111)
		require.NoError(t, err)
		assert.Equal(t, int64(700), user.Balance)
	})

	t.Run("insufficient balance leaves row untouched", func(t *testing.T) {
		_, err := repo.Create(ctx, 222222, "broke", 100)
		require.NoError(t, err)

		err = repo.DeductBalance(ctx, 222222, 300)
		assert.ErrorIs(t, err, service.ErrInsufficientBalance)

		user, err := repo.GetByUserID(ctx, 222222)
		require.NoError(t, err)
		assert.Equal(t, int64(100), user.Balance)
	})

	t.Run("exact balance is spendable", func(t *testing.T) {
		_, err := repo.Create(ctx, 333333, "allin", 500)
		require.NoError(t, err)

		err = repo.DeductBalance(ctx, 333333, 500)
		require.NoError(t, err)

		user, err := repo.GetByUserID(ctx, 333333)
		require.NoError(t, err)
		assert.Equal(t, int64(0), user.Balance)
	})

	t.Run("missing user", func(t *testing.T) {
		err := repo.DeductBalance(ctx, 999999, 100)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		err := repo.DeductBalance(ctx, 111111, 0)
		assert.Error(t, err)
	})
}

func TestUserRepository_AddBalance(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful credit", func(t *testing.T) {
		_, err := repo.Create(ctx, 111111, "winner", 700)
		require.NoError(t, err)

		err = repo.AddBalance(ctx, 111111, 300)
		require.NoError(t, err)

		user, err := repo.GetByUserID(ctx, 111111)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), user.Balance)
	})

	t.Run("missing user", func(t *testing.T) {
		err := repo.AddBalance(ctx, 999999, 100)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}

func TestUserRepository_ClaimDaily(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("first claim succeeds", func(t *testing.T) {
		_, err := repo.Create(ctx, 111111, "claimer", 1000)
		require.NoError(t, err)

		cutoff := time.Now().Add(-24 * time.Hour)
		user, err := repo.ClaimDaily(ctx, 111111, 1000, cutoff)
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, int64(2000), user.Balance)
		require.NotNil(t, user.LastDailyClaim)
		assert.WithinDuration(t, time.Now(), *user.LastDailyClaim, time.Minute)
	})

	t.Run("claim within cooldown is refused", func(t *testing.T) {
		_, err := repo.Create(ctx, 222222, "eager", 1000)
		require.NoError(t, err)

		cutoff := time.Now().Add(-24 * time.Hour)
		first, err := repo.ClaimDaily(ctx, 222222, 1000, cutoff)
		require.NoError(t, err)
		require.NotNil(t, first)

		// Immediate retry: last claim is after the cutoff
		second, err := repo.ClaimDaily(ctx, 222222, 1000, cutoff)
		require.NoError(t, err)
		assert.Nil(t, second)

		// Balance credited exactly once
		user, err := repo.GetByUserID(ctx, 222222)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), user.Balance)
	})

	t.Run("claim after cooldown succeeds again", func(t *testing.T) {
		_, err := repo.Create(ctx, 333333, "patient", 1000)
		require.NoError(t, err)

		cutoff := time.Now().Add(-24 * time.Hour)
		first, err := repo.ClaimDaily(ctx, 333333, 1000, cutoff)
		require.NoError(t, err)
		require.NotNil(t, first)

		// A cutoff in the future simulates the cooldown having elapsed
		elapsedCutoff := time.Now().Add(time.Minute)
		second, err := repo.ClaimDaily(ctx, 333333, 1000, elapsedCutoff)
		require.NoError(t, err)
		require.NotNil(t, second)
		assert.Equal(t, int64(3000), second.Balance)
	})

	t.Run("missing user", func(t *testing.T) {
		cutoff := time.Now().Add(-24 * time.Hour)
		user, err := repo.ClaimDaily(ctx, 999999, 1000, cutoff)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserRepository_UpdateBalance(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful update", func(t *testing.T) {
		_, err := repo.Create(ctx, 111111, "testuser", 1000)
		require.NoError(t, err)

		err = repo.UpdateBalance(ctx, 111111, 5000)
		require.NoError(t, err)

		user, err := repo.GetByUserID(ctx, 111111)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), user.Balance)
	})

	t.Run("missing user", func(t *testing.T) {
		err := repo.UpdateBalance(ctx, 999999, 5000)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}
