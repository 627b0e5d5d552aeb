package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/astro-web3/restaurant-api/internal/domain/account"
)

type userRow struct {
	ID           int64        `db:"id"`
	Email        string       `db:"email"`
	FirstName    string       `db:"first_name"`
	LastName     string       `db:"last_name"`
	DateOfBirth  sql.NullTime `db:"date_of_birth"`
	Nationality  string       `db:"nationality"`
	PasswordHash string       `db:"password_hash"`
	RoleID       int64        `db:"role_id"`
	RoleName     string       `db:"role_name"`
}

func (s *Store) CreateUser(ctx context.Context, u *account.User) (int64, error) {
	var dob sql.NullTime
	if u.DateOfBirth != nil {
		dob = sql.NullTime{Time: *u.DateOfBirth, Valid: true}
	}

	var id int64
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO users (email, first_name, last_name, date_of_birth, nationality, password_hash, role_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		u.Email, u.FirstName, u.LastName, dob, u.Nationality, u.PasswordHash, u.RoleID,
	)
	if isUniqueViolation(err) {
		return 0, account.ErrEmailTaken
	}
	return id, err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*account.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row, `
		SELECT u.id, u.email, u.first_name, u.last_name, u.date_of_birth, u.nationality,
			u.password_hash, u.role_id, r.name AS role_name
		FROM users u JOIN roles r ON r.id = u.role_id
		WHERE lower(u.email) = lower($1)`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, account.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	u := &account.User{
		ID:           row.ID,
		Email:        row.Email,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Nationality:  row.Nationality,
		PasswordHash: row.PasswordHash,
		RoleID:       row.RoleID,
		Role:         account.Role{ID: row.RoleID, Name: row.RoleName},
	}
	if row.DateOfBirth.Valid {
		dob := row.DateOfBirth.Time
		u.DateOfBirth = &dob
	}
	return u, nil
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`, email)
	return exists, err
}

func (s *Store) GetRole(ctx context.Context, id int64) (*account.Role, error) {
	var role account.Role
	err := s.db.QueryRowxContext(ctx, `SELECT id, name FROM roles WHERE id = $1`, id).
		Scan(&role.ID, &role.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, account.ErrUnknownRole
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *Store) ListRoles(ctx context.Context) ([]account.Role, error) {
	rows, err := s.db.QueryxContext(ctx, `SELECT id, name FROM roles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []account.Role
	for rows.Next() {
		var r account.Role
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) CreateRole(ctx context.Context, name string) (int64, error) {
	var id int64
	if err := s.db.GetContext(ctx, &id,
		`INSERT INTO roles (name) VALUES ($1) RETURNING id`, name); err != nil {
		return 0, fmt.Errorf("failed to insert role %q: %w", name, err)
	}
	return id, nil
}
