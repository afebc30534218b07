package service

import "errors"

// Sentinel errors the interaction layer branches on. Everything else is a
// wrapped internal error that aborts the single request.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrBetNotFound         = errors.New("bet not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotAuthorized       = errors.New("not authorized")
	ErrDailyCooldownActive = errors.New("daily reward already claimed")
)
