package account

import (
	"context"
)

type Service interface {
	Register(ctx context.Context, reg Registration) (int64, error)
	// Login returns a signed token, or ErrInvalidCredentials for an unknown
	// email or a wrong password.
	Login(ctx context.Context, email, password string) (string, error)
}
