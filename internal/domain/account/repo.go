package account

import "context"

type Repository interface {
	CreateUser(ctx context.Context, u *User) (int64, error)
	// GetUserByEmail loads the user together with its role, or returns
	// ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetRole(ctx context.Context, id int64) (*Role, error)
	ListRoles(ctx context.Context) ([]Role, error)
	CreateRole(ctx context.Context, name string) (int64, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns nil when password matches hash.
	Verify(hash, password string) error
}

type TokenIssuer interface {
	Issue(ctx context.Context, u *User) (string, error)
}
