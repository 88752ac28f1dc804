package telegram

import "github.com/go-faster/errors"

var (
	// ErrPasswordNeeded means the code was accepted but the account has 2FA enabled
	ErrPasswordNeeded   = errors.New("two-factor password required")
	ErrCodeNotRequested = errors.New("verification code was not requested for this phone")
	ErrUnauthorized     = errors.New("account is not authorized")
	ErrClosed           = errors.New("session closed")
)
