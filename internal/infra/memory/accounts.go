package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/astro-web3/restaurant-api/internal/domain/account"
)

func (s *Store) CreateUser(_ context.Context, u *account.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return 0, account.ErrEmailTaken
		}
	}
	s.nextUser++
	stored := *u
	stored.ID = s.nextUser
	s.users[stored.ID] = &stored
	return stored.ID, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*account.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			out := *u
			if role, ok := s.roles[u.RoleID]; ok {
				out.Role = *role
			}
			return &out, nil
		}
	}
	return nil, account.ErrUserNotFound
}

func (s *Store) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) GetRole(_ context.Context, id int64) (*account.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.roles[id]
	if !ok {
		return nil, account.ErrUnknownRole
	}
	out := *role
	return &out, nil
}

func (s *Store) ListRoles(_ context.Context) ([]account.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]account.Role, 0, len(s.roles))
	for _, r := range s.roles {
		out = append(out, *r)
	}
	slices.SortFunc(out, func(a, b account.Role) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *Store) CreateRole(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextRole++
	s.roles[s.nextRole] = &account.Role{ID: s.nextRole, Name: name}
	return s.nextRole, nil
}
