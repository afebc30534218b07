package service

import (
	"context"
	"fmt"
	"time"

	"betbot/config"
	"betbot/models"
)

// economyService implements the EconomyService interface
type economyService struct {
	uowFactory UnitOfWorkFactory
	config     *config.Config
}

// NewEconomyService creates a new economy service
func NewEconomyService(uowFactory UnitOfWorkFactory, cfg *config.Config) EconomyService {
	return &economyService{
		uowFactory: uowFactory,
		config:     cfg,
	}
}

// ClaimDaily grants the daily reward on a rolling cooldown. The claim and
// the cooldown check are a single guarded update, so two racing claims
// cannot both succeed, and the claim time survives restarts.
func (s *economyService) ClaimDaily(ctx context.Context, userID int64, username string) (*DailyClaimResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		user, err = uow.UserRepository().Create(ctx, userID, username, s.config.StartingBalance)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		history := &models.BalanceHistory{
			UserID:          userID,
			BalanceBefore:   0,
			BalanceAfter:    s.config.StartingBalance,
			ChangeAmount:    s.config.StartingBalance,
			TransactionType: models.TransactionTypeInitial,
			TransactionMetadata: map[string]any{
				"username": username,
			},
		}
		if err := RecordBalanceChange(ctx, uow, history); err != nil {
			return nil, fmt.Errorf("failed to record initial balance: %w", err)
		}
	}

	balanceBefore := user.Balance

	cutoff := time.Now().Add(-s.config.DailyCooldown)
	claimed, err := uow.UserRepository().ClaimDaily(ctx, userID, s.config.DailyRewardAmount, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to claim daily reward: %w", err)
	}
	if claimed == nil {
		return nil, ErrDailyCooldownActive
	}

	history := &models.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   balanceBefore,
		BalanceAfter:    claimed.Balance,
		ChangeAmount:    s.config.DailyRewardAmount,
		TransactionType: models.TransactionTypeDailyReward,
		TransactionMetadata: map[string]any{
			"reward_amount": s.config.DailyRewardAmount,
		},
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, fmt.Errorf("failed to record daily reward: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &DailyClaimResult{
		Amount:     s.config.DailyRewardAmount,
		NewBalance: claimed.Balance,
	}, nil
}
