package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/astro-web3/restaurant-api/pkg/logger"
)

type service struct {
	repo   Repository
	hasher PasswordHasher
	issuer TokenIssuer
}

func NewService(repo Repository, hasher PasswordHasher, issuer TokenIssuer) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
		issuer: issuer,
	}
}

func (s *service) Register(ctx context.Context, reg Registration) (int64, error) {
	if reg.Password != reg.ConfirmPassword {
		return 0, ErrPasswordMismatch
	}

	taken, err := s.repo.EmailExists(ctx, reg.Email)
	if err != nil {
		return 0, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return 0, ErrEmailTaken
	}

	roleID := reg.RoleID
	if roleID == 0 {
		roleID = DefaultRoleID
	}
	role, err := s.repo.GetRole(ctx, roleID)
	if err != nil {
		return 0, err
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Email:        reg.Email,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		DateOfBirth:  reg.DateOfBirth,
		Nationality:  reg.Nationality,
		PasswordHash: hash,
		RoleID:       role.ID,
		Role:         *role,
	}
	id, err := s.repo.CreateUser(ctx, u)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	logger.InfoContext(ctx, "user registered",
		slog.Int64("user_id", id),
		slog.String("role", role.Name),
	)
	return id, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.hasher.Verify(u.PasswordHash, password); err != nil {
		logger.DebugContext(ctx, "password verification failed", slog.Int64("user_id", u.ID))
		return "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(ctx, u)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
