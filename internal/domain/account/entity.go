package account

import (
	"strings"
	"time"
)

type Role struct {
	ID   int64
	Name string
}

type User struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	DateOfBirth  *time.Time
	Nationality  string
	PasswordHash string
	RoleID       int64
	Role         Role
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type Registration struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	DateOfBirth     *time.Time
	Nationality     string
	RoleID          int64
}
