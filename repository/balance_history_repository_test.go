package repository

import (
	"context"
	"testing"

	"betbot/models"
	"betbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceHistoryRepository_RecordAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	repo := NewBalanceHistoryRepository(testDB.DB)
	ctx := context.Background()

	_, err := userRepo.Create(ctx, 123456, "testuser", 1000)
	require.NoError(t, err)

	t.Run("record assigns id and timestamp", func(t *testing.T) {
		history := testutil.CreateTestBalanceHistory(123456, models.TransactionTypeStakePlaced)

		err := repo.Record(ctx, history)
		require.NoError(t, err)

		assert.NotZero(t, history.ID)
		assert.False(t, history.CreatedAt.IsZero())
	})

	t.Run("metadata and related id survive the round trip", func(t *testing.T) {
		relatedID := int64(987654)
		history := &models.BalanceHistory{
			UserID:          123456,
			BalanceBefore:   700,
			BalanceAfter:    800,
			ChangeAmount:    100,
			TransactionType: models.TransactionTypeBetWon,
			TransactionMetadata: map[string]any{
				"winning_option": "Red",
				"title":          "Finals",
			},
			RelatedID: &relatedID,
		}
		require.NoError(t, repo.Record(ctx, history))

		entries, err := repo.GetByUser(ctx, 123456, 1)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		got := entries[0]
		assert.Equal(t, models.TransactionTypeBetWon, got.TransactionType)
		assert.Equal(t, "Red", got.TransactionMetadata["winning_option"])
		require.NotNil(t, got.RelatedID)
		assert.Equal(t, relatedID, *got.RelatedID)
	})

	t.Run("newest first with limit", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			require.NoError(t, repo.Record(ctx, testutil.CreateTestBalanceHistory(123456, models.TransactionTypeDailyReward)))
		}

		entries, err := repo.GetByUser(ctx, 123456, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Greater(t, entries[0].ID, entries[1].ID)
	})

	t.Run("no history for unknown user", func(t *testing.T) {
		entries, err := repo.GetByUser(ctx, 999999, 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
