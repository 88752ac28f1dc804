package models

import "fmt"

// AuthState tracks where the account is in the login flow
type AuthState int

const (
	Unauthenticated AuthState = iota
	CodeRequested
	Authorized
)

func (s AuthState) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case CodeRequested:
		return "code_requested"
	case Authorized:
		return "authorized"
	default:
		return fmt.Sprintf("auth_state(%d)", int(s))
	}
}

// Account identifies the signed-in Telegram user
type Account struct {
	ID        int64
	Phone     string
	FirstName string
	Username  string
}

// DisplayName renders the account for the main view header
func (a Account) DisplayName() string {
	if a.Username == "" {
		return fmt.Sprintf("%s (no username)", a.FirstName)
	}
	return fmt.Sprintf("%s (@%s)", a.FirstName, a.Username)
}
