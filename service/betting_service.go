package service

import (
	"context"
	"fmt"

	"betbot/events"
	"betbot/models"
)

// PayoutMultiplier fixes the winner payout: each winning stake row is
// credited Amount * (PayoutMultiplier - 1), so a winner ends up holding
// PayoutMultiplier times their stake.
const PayoutMultiplier = 2

// bettingService implements the BettingService interface
type bettingService struct {
	uowFactory UnitOfWorkFactory
}

// NewBettingService creates a new betting service
func NewBettingService(uowFactory UnitOfWorkFactory) BettingService {
	return &bettingService{
		uowFactory: uowFactory,
	}
}

// CreateBet records a new open bet under its announcement message ID
func (s *bettingService) CreateBet(ctx context.Context, messageID, creatorID int64, title, option1, option2 string) (*models.Bet, error) {
	if title == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}
	if option1 == "" || option2 == "" {
		return nil, fmt.Errorf("both options must be non-empty")
	}
	if option1 == option2 {
		return nil, fmt.Errorf("options must be distinct")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	creator, err := uow.UserRepository().GetByUserID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get creator: %w", err)
	}
	if creator == nil {
		return nil, fmt.Errorf("get creator %d: %w", creatorID, ErrUserNotFound)
	}

	bet := &models.Bet{
		MessageID: messageID,
		Title:     title,
		Option1:   option1,
		Option2:   option2,
		CreatorID: creatorID,
	}

	if err := uow.BetRepository().Create(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to create bet: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return bet, nil
}

// GetBetByMessageID retrieves an open bet, ErrBetNotFound if absent
func (s *bettingService) GetBetByMessageID(ctx context.Context, messageID int64) (*models.Bet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bet, err := uow.BetRepository().GetByMessageID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil {
		return nil, fmt.Errorf("get bet %d: %w", messageID, ErrBetNotFound)
	}

	return bet, nil
}

// PlaceStake debits the user and appends a stake row in one transaction.
// The debit is a guarded update, so a stake can never push a balance
// negative even under concurrent placements.
func (s *bettingService) PlaceStake(ctx context.Context, messageID, userID int64, optionNumber int, amount int64) (*models.StakeReceipt, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("stake amount must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bet, err := uow.BetRepository().GetByMessageID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil {
		return nil, fmt.Errorf("get bet %d: %w", messageID, ErrBetNotFound)
	}

	chosenOption := bet.OptionByNumber(optionNumber)
	if chosenOption == "" {
		return nil, fmt.Errorf("invalid option number %d", optionNumber)
	}

	user, err := uow.UserRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("get user %d: %w", userID, ErrUserNotFound)
	}

	// Debit first; the stake row only exists for currency already taken
	if err := uow.UserRepository().DeductBalance(ctx, userID, amount); err != nil {
		return nil, err
	}

	stake := &models.Stake{
		MessageID:    messageID,
		UserID:       userID,
		ChosenOption: chosenOption,
		Amount:       amount,
	}
	if err := uow.BetRepository().AddStake(ctx, stake); err != nil {
		return nil, fmt.Errorf("failed to add stake: %w", err)
	}

	history := &models.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   user.Balance,
		BalanceAfter:    user.Balance - amount,
		ChangeAmount:    -amount,
		TransactionType: models.TransactionTypeStakePlaced,
		TransactionMetadata: map[string]any{
			"chosen_option": chosenOption,
			"title":         bet.Title,
		},
		RelatedID: &messageID,
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, fmt.Errorf("failed to record stake debit: %w", err)
	}

	uow.EventBus().Publish(events.StakePlacedEvent{
		MessageID:    messageID,
		UserID:       userID,
		ChosenOption: chosenOption,
		Amount:       amount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.StakeReceipt{
		Bet:          bet,
		ChosenOption: chosenOption,
		Amount:       amount,
		NewBalance:   user.Balance - amount,
	}, nil
}

// SettleBet determines the winning option, credits every winning stake row
// and removes the bet, all in one transaction. Settlement is terminal:
// afterwards the message ID refers to nothing.
func (s *bettingService) SettleBet(ctx context.Context, messageID, requesterID int64, isAdmin bool) (*models.SettlementResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bet, err := uow.BetRepository().GetByMessageID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil {
		// Already settled or never existed
		return nil, fmt.Errorf("get bet %d: %w", messageID, ErrBetNotFound)
	}

	if requesterID != bet.CreatorID && !isAdmin {
		return nil, fmt.Errorf("settle bet %d: %w", messageID, ErrNotAuthorized)
	}

	totals, err := uow.BetRepository().OptionTotals(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get option totals: %w", err)
	}

	// Options without stakes are absent from the aggregation
	optionTotals := map[string]int64{
		bet.Option1: totals[bet.Option1],
		bet.Option2: totals[bet.Option2],
	}

	result := &models.SettlementResult{
		Bet:          bet,
		OptionTotals: optionTotals,
	}

	switch {
	case optionTotals[bet.Option1] > optionTotals[bet.Option2]:
		result.WinningOption = bet.Option1
	case optionTotals[bet.Option2] > optionTotals[bet.Option1]:
		result.WinningOption = bet.Option2
	default:
		// Equal totals, including both zero: nobody wins, the bet still ends
		result.Tie = true
	}

	if !result.Tie {
		stakes, err := uow.BetRepository().StakesForOption(ctx, messageID, result.WinningOption)
		if err != nil {
			return nil, fmt.Errorf("failed to get winning stakes: %w", err)
		}

		// One payout per stake row; a double-staker is paid per row
		for _, stake := range stakes {
			payout := stake.Amount * (PayoutMultiplier - 1)

			winner, err := uow.UserRepository().GetByUserID(ctx, stake.UserID)
			if err != nil {
				return nil, fmt.Errorf("failed to get winner: %w", err)
			}
			if winner == nil {
				return nil, fmt.Errorf("get winner %d: %w", stake.UserID, ErrUserNotFound)
			}

			if err := uow.UserRepository().AddBalance(ctx, stake.UserID, payout); err != nil {
				return nil, fmt.Errorf("failed to credit winner %d: %w", stake.UserID, err)
			}

			history := &models.BalanceHistory{
				UserID:          stake.UserID,
				BalanceBefore:   winner.Balance,
				BalanceAfter:    winner.Balance + payout,
				ChangeAmount:    payout,
				TransactionType: models.TransactionTypeBetWon,
				TransactionMetadata: map[string]any{
					"winning_option": result.WinningOption,
					"stake_amount":   stake.Amount,
					"title":          bet.Title,
				},
				RelatedID: &messageID,
			}
			if err := RecordBalanceChange(ctx, uow, history); err != nil {
				return nil, fmt.Errorf("failed to record payout: %w", err)
			}

			result.Winners = append(result.Winners, models.WinnerPayout{
				UserID:      stake.UserID,
				StakeAmount: stake.Amount,
				Payout:      payout,
			})
		}
	}

	if err := uow.BetRepository().Delete(ctx, messageID); err != nil {
		return nil, fmt.Errorf("failed to delete bet: %w", err)
	}

	uow.EventBus().Publish(events.BetSettledEvent{
		MessageID:     messageID,
		SettledBy:     requesterID,
		WinningOption: result.WinningOption,
		Tie:           result.Tie,
		WinnerCount:   len(result.Winners),
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return result, nil
}
