package models

import (
	"time"
)

// User represents a Discord user with a currency balance
type User struct {
	UserID         int64      `db:"user_id"`
	Username       string     `db:"username"`
	Balance        int64      `db:"balance"`
	LastDailyClaim *time.Time `db:"last_daily_claim"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

// CanClaimDaily reports whether the user's daily reward cooldown has elapsed
func (u *User) CanClaimDaily(now time.Time, cooldown time.Duration) bool {
	if u.LastDailyClaim == nil {
		return true
	}
	return now.Sub(*u.LastDailyClaim) >= cooldown
}

// NextDailyClaim returns the earliest time the user may claim again.
// For a user who has never claimed it returns the zero time.
func (u *User) NextDailyClaim(cooldown time.Duration) time.Time {
	if u.LastDailyClaim == nil {
		return time.Time{}
	}
	return u.LastDailyClaim.Add(cooldown)
}
