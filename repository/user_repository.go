package repository

import (
	"context"
	"fmt"
	"time"

	"betbot/database"
	"betbot/models"
	"betbot/service"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

// GetByUserID retrieves a user by their Discord ID
func (r *UserRepository) GetByUserID(ctx context.Context, userID int64) (*models.User, error) {
	query := `
		SELECT user_id, username, balance, last_daily_claim, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&user.UserID,
		&user.Username,
		&user.Balance,
		&user.LastDailyClaim,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	return &user, nil
}

// Create creates a new user with the initial balance
func (r *UserRepository) Create(ctx context.Context, userID int64, username string, initialBalance int64) (*models.User, error) {
	query := `
		INSERT INTO users (user_id, username, balance)
		VALUES ($1, $2, $3)
		RETURNING user_id, username, balance, last_daily_claim, created_at, updated_at
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, userID, username, initialBalance).Scan(
		&user.UserID,
		&user.Username,
		&user.Balance,
		&user.LastDailyClaim,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create user %d: %w", userID, err)
	}

	return &user, nil
}

// UpdateBalance overwrites a user's balance unconditionally. Callers own
// non-negativity; the schema check constraint is the last line of defense.
func (r *UserRepository) UpdateBalance(ctx context.Context, userID int64, newBalance int64) error {
	query := `
		UPDATE users
		SET balance = $1, updated_at = NOW()
		WHERE user_id = $2
	`

	result, err := r.q.Exec(ctx, query, newBalance, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update balance for user %d: %w", userID, service.ErrUserNotFound)
	}

	return nil
}

// AddBalance adds to a user's balance atomically
func (r *UserRepository) AddBalance(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET balance = balance + $1, updated_at = NOW()
		WHERE user_id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("failed to add balance for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("add balance for user %d: %w", userID, service.ErrUserNotFound)
	}

	return nil
}

// DeductBalance deducts from a user's balance atomically. The guard makes
// check-and-debit a single statement, so concurrent placements cannot
// overspend.
func (r *UserRepository) DeductBalance(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET balance = balance - $1, updated_at = NOW()
		WHERE user_id = $2
		  AND balance >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("failed to deduct balance for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		// Distinguish a missing user from a failed guard
		user, err := r.GetByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if user == nil {
			return fmt.Errorf("deduct balance for user %d: %w", userID, service.ErrUserNotFound)
		}
		return fmt.Errorf("have %d, need %d: %w", user.Balance, amount, service.ErrInsufficientBalance)
	}

	return nil
}

// ClaimDaily credits the daily reward and stamps the claim time in one
// guarded statement. Returns nil if the cooldown is still active.
func (r *UserRepository) ClaimDaily(ctx context.Context, userID int64, amount int64, cutoff time.Time) (*models.User, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET balance = balance + $1, last_daily_claim = NOW(), updated_at = NOW()
		WHERE user_id = $2
		  AND (last_daily_claim IS NULL OR last_daily_claim <= $3)
		RETURNING user_id, username, balance, last_daily_claim, created_at, updated_at
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, amount, userID, cutoff).Scan(
		&user.UserID,
		&user.Username,
		&user.Balance,
		&user.LastDailyClaim,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim daily reward for user %d: %w", userID, err)
	}

	return &user, nil
}
