package account

import "errors"

var (
	ErrInvalidCredentials = errors.New("Invalid username or password") //nolint:staticcheck // surfaced verbatim to clients
	ErrEmailTaken         = errors.New("email is already taken")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUnknownRole        = errors.New("unknown role")
	ErrUserNotFound       = errors.New("user not found")
)

// DefaultRoleID is the role assigned when registration does not name one.
const DefaultRoleID int64 = 1
