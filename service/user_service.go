package service

import (
	"context"
	"fmt"

	"betbot/config"
	"betbot/models"
)

// userService implements the UserService interface
type userService struct {
	uowFactory UnitOfWorkFactory
	config     *config.Config
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory, cfg *config.Config) UserService {
	return &userService{
		uowFactory: uowFactory,
		config:     cfg,
	}
}

// GetOrCreateUser retrieves an existing user or creates a new one with the
// starting balance. The first-touch creation persists immediately.
func (s *userService) GetOrCreateUser(ctx context.Context, userID int64, username string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
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

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}
