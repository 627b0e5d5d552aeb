// Package token issues and verifies the HS256 bearer tokens handed out at
// login, and turns verified tokens into principals.
package token

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/coder/quartz"
	"github.com/golang-jwt/jwt/v5"

	"github.com/astro-web3/restaurant-api/internal/domain/account"
	"github.com/astro-web3/restaurant-api/internal/domain/identity"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims
	SubjectID   string `json:"subject_id"`
	Name        string `json:"name,omitempty"`
	Role        string `json:"role,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Nationality string `json:"nationality,omitempty"`
}

type JWT struct {
	key    []byte
	issuer string
	expiry time.Duration
	clock  quartz.Clock
}

// NewJWT signs with key. The issuer doubles as the audience.
func NewJWT(key, issuer string, expireDays int, clock quartz.Clock) (*JWT, error) {
	if key == "" {
		return nil, errors.New("jwt key is empty")
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &JWT{
		key:    []byte(key),
		issuer: issuer,
		expiry: time.Duration(expireDays) * 24 * time.Hour,
		clock:  clock,
	}, nil
}

var _ account.TokenIssuer = (*JWT)(nil)

func (j *JWT) Issue(_ context.Context, u *account.User) (string, error) {
	now := j.clock.Now()
	subject := strconv.FormatInt(u.ID, 10)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiry)),
		},
		SubjectID:   subject,
		Name:        u.FullName(),
		Role:        u.Role.Name,
		Nationality: u.Nationality,
	}
	if u.DateOfBirth != nil {
		claims.DateOfBirth = u.DateOfBirth.Format(identity.DateLayout)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.key)
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies raw and returns the principal it carries.
func (j *JWT) Parse(raw string) (identity.Principal, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		raw,
		claims,
		func(*jwt.Token) (interface{}, error) {
			return j.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return j.clock.Now() }),
	)
	if err != nil {
		return identity.Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.SubjectID == "" {
		return identity.Principal{}, fmt.Errorf("%w: missing subject_id", ErrInvalidToken)
	}

	return claims.principal(), nil
}

func (c *Claims) principal() identity.Principal {
	claims := []identity.Claim{{Type: identity.ClaimSubjectID, Value: c.SubjectID}}
	add := func(t identity.ClaimType, v string) {
		if v != "" {
			claims = append(claims, identity.Claim{Type: t, Value: v})
		}
	}
	add(identity.ClaimName, c.Name)
	add(identity.ClaimRole, c.Role)
	add(identity.ClaimDateOfBirth, c.DateOfBirth)
	add(identity.ClaimNationality, c.Nationality)
	return identity.NewPrincipal(claims...)
}
