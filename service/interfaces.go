package service

import (
	"context"
	"time"

	"betbot/events"
	"betbot/models"
)

// UserRepository defines the interface for user balance data access
type UserRepository interface {
	// GetByUserID retrieves a user by their Discord ID, nil if absent
	GetByUserID(ctx context.Context, userID int64) (*models.User, error)

	// Create creates a new user with the initial balance
	Create(ctx context.Context, userID int64, username string, initialBalance int64) (*models.User, error)

	// UpdateBalance overwrites a user's balance unconditionally
	UpdateBalance(ctx context.Context, userID int64, newBalance int64) error

	// AddBalance adds to a user's balance atomically
	AddBalance(ctx context.Context, userID int64, amount int64) error

	// DeductBalance deducts from a user's balance atomically, failing with
	// ErrInsufficientBalance if the guard balance >= amount does not hold
	DeductBalance(ctx context.Context, userID int64, amount int64) error

	// ClaimDaily atomically credits the daily reward and stamps the claim
	// time, but only if the previous claim is absent or at/before cutoff.
	// Returns the updated user, or nil if the cooldown is still active.
	ClaimDaily(ctx context.Context, userID int64, amount int64, cutoff time.Time) (*models.User, error)
}

// BetRepository defines the interface for bet and stake data access
type BetRepository interface {
	// Create inserts a new bet row; the message ID must be unique
	Create(ctx context.Context, bet *models.Bet) error

	// GetByMessageID retrieves a bet by its announcement message ID, nil if absent
	GetByMessageID(ctx context.Context, messageID int64) (*models.Bet, error)

	// AddStake appends a stake row. Option membership and amount
	// positivity are the service's responsibility.
	AddStake(ctx context.Context, stake *models.Stake) error

	// OptionTotals aggregates stake amounts grouped by chosen option.
	// Options with no stakes are absent from the map.
	OptionTotals(ctx context.Context, messageID int64) (map[string]int64, error)

	// StakesForOption returns every stake row on the given option, one per
	// placement; the same user may appear more than once
	StakesForOption(ctx context.Context, messageID int64, option string) ([]*models.Stake, error)

	// Delete removes the bet and all its stakes. Deleting an absent key is
	// a no-op.
	Delete(ctx context.Context, messageID int64) error
}

// BalanceHistoryRepository defines the interface for the balance audit ledger
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *models.BalanceHistory) error

	// GetByUser returns the most recent balance history for a user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error)
}

// UserService defines the interface for user operations
type UserService interface {
	// GetOrCreateUser retrieves an existing user or creates a new one with
	// the starting balance
	GetOrCreateUser(ctx context.Context, userID int64, username string) (*models.User, error)
}

// BettingService defines the interface for the bet lifecycle
type BettingService interface {
	// CreateBet records a new open bet under its announcement message ID
	CreateBet(ctx context.Context, messageID, creatorID int64, title, option1, option2 string) (*models.Bet, error)

	// GetBetByMessageID retrieves an open bet
	GetBetByMessageID(ctx context.Context, messageID int64) (*models.Bet, error)

	// PlaceStake debits the user and appends a stake row on the chosen
	// option (1 or 2) in a single transaction
	PlaceStake(ctx context.Context, messageID, userID int64, optionNumber int, amount int64) (*models.StakeReceipt, error)

	// SettleBet determines the winning option, pays out winners and
	// removes the bet. Only the creator or an administrator may settle.
	SettleBet(ctx context.Context, messageID, requesterID int64, isAdmin bool) (*models.SettlementResult, error)
}

// DailyClaimResult is returned after a successful daily reward claim
type DailyClaimResult struct {
	Amount     int64
	NewBalance int64
}

// EconomyService defines the interface for the daily reward
type EconomyService interface {
	// ClaimDaily grants the daily reward if the user's cooldown has
	// elapsed, failing with ErrDailyCooldownActive otherwise
	ClaimDaily(ctx context.Context, userID int64, username string) (*DailyClaimResult, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	BetRepository() BetRepository
	BalanceHistoryRepository() BalanceHistoryRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
