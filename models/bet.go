package models

import (
	"time"
)

// Bet represents an open binary-outcome bet. The announcement message ID is
// the bet's key; once the bet is settled the row is gone and the key refers
// to nothing.
type Bet struct {
	MessageID int64     `db:"message_id"`
	Title     string    `db:"title"`
	Option1   string    `db:"option1"`
	Option2   string    `db:"option2"`
	CreatorID int64     `db:"creator_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Stake represents one user's currency commitment to one option of a bet.
// A user who places multiple times holds multiple stake rows; they are
// never merged.
type Stake struct {
	ID           int64     `db:"id"`
	MessageID    int64     `db:"message_id"`
	UserID       int64     `db:"user_id"`
	ChosenOption string    `db:"chosen_option"`
	Amount       int64     `db:"amount"`
	CreatedAt    time.Time `db:"created_at"`
}

// OptionByNumber returns the label for option 1 or 2, or "" for anything else
func (b *Bet) OptionByNumber(n int) string {
	switch n {
	case 1:
		return b.Option1
	case 2:
		return b.Option2
	default:
		return ""
	}
}

// HasOption reports whether label is one of the bet's two options
func (b *Bet) HasOption(label string) bool {
	return label == b.Option1 || label == b.Option2
}

// StakeReceipt is returned after a successful stake placement
type StakeReceipt struct {
	Bet          *Bet
	ChosenOption string
	Amount       int64
	NewBalance   int64
}

// WinnerPayout describes the credit applied to a single winning stake row
type WinnerPayout struct {
	UserID      int64
	StakeAmount int64
	Payout      int64
}

// SettlementResult represents the terminal outcome of a bet
type SettlementResult struct {
	Bet           *Bet
	OptionTotals  map[string]int64
	Tie           bool
	WinningOption string
	Winners       []WinnerPayout
}
