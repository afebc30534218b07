package testutil

import (
	"betbot/models"
)

// CreateTestBet creates a test bet with default values
func CreateTestBet(messageID, creatorID int64) *models.Bet {
	return &models.Bet{
		MessageID: messageID,
		Title:     "Who wins the finals?",
		Option1:   "Red",
		Option2:   "Blue",
		CreatorID: creatorID,
	}
}

// CreateTestStake creates a test stake on the given option
func CreateTestStake(messageID, userID int64, option string, amount int64) *models.Stake {
	return &models.Stake{
		MessageID:    messageID,
		UserID:       userID,
		ChosenOption: option,
		Amount:       amount,
	}
}

// CreateTestBalanceHistory creates a test balance history entry
func CreateTestBalanceHistory(userID int64, transactionType models.TransactionType) *models.BalanceHistory {
	return &models.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   1000,
		BalanceAfter:    700,
		ChangeAmount:    -300,
		TransactionType: transactionType,
		TransactionMetadata: map[string]any{
			"test": true,
		},
	}
}
