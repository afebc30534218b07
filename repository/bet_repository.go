package repository

import (
	"context"
	"fmt"

	"betbot/database"
	"betbot/models"

	"github.com/jackc/pgx/v5"
)

// BetRepository implements the service.BetRepository interface
type BetRepository struct {
	q queryable
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *database.DB) *BetRepository {
	return &BetRepository{q: db.Pool}
}

// newBetRepositoryWithTx creates a new bet repository with a transaction
func newBetRepositoryWithTx(tx queryable) *BetRepository {
	return &BetRepository{q: tx}
}

// Create inserts a new bet row keyed by its announcement message ID.
// Message IDs are platform-assigned and unique, so a primary key collision
// here is unexpected and surfaces as an error.
func (r *BetRepository) Create(ctx context.Context, bet *models.Bet) error {
	query := `
		INSERT INTO bets (message_id, title, option1, option2, creator_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		bet.MessageID,
		bet.Title,
		bet.Option1,
		bet.Option2,
		bet.CreatorID,
	).Scan(&bet.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create bet %d: %w", bet.MessageID, err)
	}

	return nil
}

// GetByMessageID retrieves a bet by its announcement message ID
func (r *BetRepository) GetByMessageID(ctx context.Context, messageID int64) (*models.Bet, error) {
	query := `
		SELECT message_id, title, option1, option2, creator_id, created_at
		FROM bets
		WHERE message_id = $1
	`

	var bet models.Bet
	err := r.q.QueryRow(ctx, query, messageID).Scan(
		&bet.MessageID,
		&bet.Title,
		&bet.Option1,
		&bet.Option2,
		&bet.CreatorID,
		&bet.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet %d: %w", messageID, err)
	}

	return &bet, nil
}

// AddStake appends a stake row; repeat placements stay separate rows
func (r *BetRepository) AddStake(ctx context.Context, stake *models.Stake) error {
	query := `
		INSERT INTO individual_bets (message_id, user_id, chosen_option, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		stake.MessageID,
		stake.UserID,
		stake.ChosenOption,
		stake.Amount,
	).Scan(&stake.ID, &stake.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to add stake on bet %d for user %d: %w", stake.MessageID, stake.UserID, err)
	}

	return nil
}

// OptionTotals aggregates stake amounts grouped by chosen option. Options
// nobody staked on are absent from the result.
func (r *BetRepository) OptionTotals(ctx context.Context, messageID int64) (map[string]int64, error) {
	query := `
		SELECT chosen_option, SUM(amount)
		FROM individual_bets
		WHERE message_id = $1
		GROUP BY chosen_option
	`

	rows, err := r.q.Query(ctx, query, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get option totals for bet %d: %w", messageID, err)
	}
	defer rows.Close()

	totals := make(map[string]int64)
	for rows.Next() {
		var option string
		var total int64
		if err := rows.Scan(&option, &total); err != nil {
			return nil, fmt.Errorf("failed to scan option total: %w", err)
		}
		totals[option] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate option totals: %w", err)
	}

	return totals, nil
}

// StakesForOption returns every stake row on the given option, ordered by
// placement; the same user may appear more than once
func (r *BetRepository) StakesForOption(ctx context.Context, messageID int64, option string) ([]*models.Stake, error) {
	query := `
		SELECT id, message_id, user_id, chosen_option, amount, created_at
		FROM individual_bets
		WHERE message_id = $1 AND chosen_option = $2
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, messageID, option)
	if err != nil {
		return nil, fmt.Errorf("failed to get stakes for bet %d: %w", messageID, err)
	}
	defer rows.Close()

	var stakes []*models.Stake
	for rows.Next() {
		var stake models.Stake
		err := rows.Scan(
			&stake.ID,
			&stake.MessageID,
			&stake.UserID,
			&stake.ChosenOption,
			&stake.Amount,
			&stake.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stake: %w", err)
		}
		stakes = append(stakes, &stake)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stakes: %w", err)
	}

	return stakes, nil
}

// Delete removes the bet; stakes go with it via ON DELETE CASCADE.
// Deleting an absent key is a no-op.
func (r *BetRepository) Delete(ctx context.Context, messageID int64) error {
	query := `DELETE FROM bets WHERE message_id = $1`

	if _, err := r.q.Exec(ctx, query, messageID); err != nil {
		return fmt.Errorf("failed to delete bet %d: %w", messageID, err)
	}

	return nil
}
