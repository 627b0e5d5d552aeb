package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astro-web3/restaurant-api/internal/domain/account"
	"github.com/astro-web3/restaurant-api/internal/domain/restaurant"
	"github.com/astro-web3/restaurant-api/internal/infra/memory"
)

func ptr(v int64) *int64 { return &v }

func seed(t *testing.T, s *memory.Store) {
	t.Helper()
	ctx := context.Background()
	for _, r := range []*restaurant.Restaurant{
		{Name: "KFC", Description: "Fried chicken", Category: "FastFood", CreatedByID: ptr(5)},
		{Name: "McDonald", Description: "Burgers", Category: "FastFood", CreatedByID: ptr(5)},
		{Name: "Bistro", Description: "French kitchen", Category: "Fine", CreatedByID: ptr(7)},
		{Name: "Anonymous", Description: "no creator", Category: "Bar"},
	} {
		_, err := s.Create(ctx, r)
		require.NoError(t, err)
	}
}

func names(rs []*restaurant.Restaurant) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

func TestStoreList(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	seed(t, s)
	ctx := context.Background()

	tests := []struct {
		name  string
		query restaurant.Query
		want  []string
		total int
	}{
		{
			name:  "first page in insertion order",
			query: restaurant.Query{PageSize: 2, PageNumber: 1},
			want:  []string{"KFC", "McDonald"},
			total: 4,
		},
		{
			name:  "second page",
			query: restaurant.Query{PageSize: 2, PageNumber: 2},
			want:  []string{"Bistro", "Anonymous"},
			total: 4,
		},
		{
			name:  "page past the end",
			query: restaurant.Query{PageSize: 5, PageNumber: 3},
			want:  []string{},
			total: 4,
		},
		{
			name:  "search is case insensitive over description",
			query: restaurant.Query{SearchPhrase: "BURGER", PageSize: 5, PageNumber: 1},
			want:  []string{"McDonald"},
			total: 1,
		},
		{
			name:  "sort by name descending",
			query: restaurant.Query{SortBy: restaurant.SortByName, SortDirection: restaurant.SortDescending, PageSize: 10, PageNumber: 1},
			want:  []string{"McDonald", "KFC", "Bistro", "Anonymous"},
			total: 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, total, err := s.List(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
			assert.Equal(t, tt.total, total)
		})
	}
}

func TestStoreCountCreatedBy(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	seed(t, s)
	ctx := context.Background()

	n, err := s.CountCreatedBy(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, s.Delete(ctx, 1))

	n, err = s.CountCreatedBy(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.CountCreatedBy(ctx, 42)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStoreDishes(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	seed(t, s)
	ctx := context.Background()

	id, err := s.CreateDish(ctx, &restaurant.Dish{Name: "Zinger", Price: 12.5, RestaurantID: 1})
	require.NoError(t, err)

	_, err = s.GetDish(ctx, 2, id)
	require.ErrorIs(t, err, restaurant.ErrDishNotFound)
	require.ErrorIs(t, s.DeleteDish(ctx, 2, id), restaurant.ErrDishNotFound)

	r, err := s.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, r.Dishes, 1)
	assert.Equal(t, "Zinger", r.Dishes[0].Name)

	require.NoError(t, s.DeleteDish(ctx, 1, id))
	dishes, err := s.ListDishes(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, dishes)

	_, err = s.CreateDish(ctx, &restaurant.Dish{Name: "Ghost", RestaurantID: 99})
	require.ErrorIs(t, err, restaurant.ErrRestaurantNotFound)
}

func TestStoreReturnsCopies(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	seed(t, s)
	ctx := context.Background()

	r, err := s.GetByID(ctx, 1)
	require.NoError(t, err)
	r.Name = "changed"
	*r.CreatedByID = 99

	again, err := s.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "KFC", again.Name)
	creator, ok := again.CreatorID()
	assert.True(t, ok)
	assert.Equal(t, int64(5), creator)
}

func TestStoreUsers(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	ctx := context.Background()

	roleID, err := s.CreateRole(ctx, "Manager")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, &account.User{Email: "a@b.pl", RoleID: roleID})
	require.NoError(t, err)
	_, err = s.CreateUser(ctx, &account.User{Email: "A@B.pl", RoleID: roleID})
	require.ErrorIs(t, err, account.ErrEmailTaken)

	u, err := s.GetUserByEmail(ctx, "a@b.pl")
	require.NoError(t, err)
	assert.Equal(t, "Manager", u.Role.Name)

	_, err = s.GetUserByEmail(ctx, "nobody@b.pl")
	require.ErrorIs(t, err, account.ErrUserNotFound)

	_, err = s.GetRole(ctx, 42)
	require.ErrorIs(t, err, account.ErrUnknownRole)
}
