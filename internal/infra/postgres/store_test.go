package postgres_test

import (
	"context"
	_ "embed"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astro-web3/restaurant-api/internal/domain/account"
	"github.com/astro-web3/restaurant-api/internal/domain/restaurant"
	"github.com/astro-web3/restaurant-api/internal/infra/postgres"
)

//go:embed schema.sql
var schema string

const dsnEnv = "RESTAURANT_API_TEST_DSN"

// openStore connects to the database named by RESTAURANT_API_TEST_DSN and
// recreates the schema. The test is skipped when the variable is unset.
func openStore(t *testing.T) *postgres.Store {
	t.Helper()
	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skipf("%s not set", dsnEnv)
	}

	ctx := context.Background()
	admin, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	require.NoError(t, err)
	_, err = admin.ExecContext(ctx, `DROP TABLE IF EXISTS dishes, restaurants, users, roles CASCADE`)
	require.NoError(t, err)
	_, err = admin.ExecContext(ctx, schema)
	require.NoError(t, err)
	require.NoError(t, admin.Close())

	store, err := postgres.Open(ctx, dsn, postgres.PoolConfig{MaxOpenConns: 4})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreRestaurants(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	roleID, err := store.CreateRole(ctx, "Manager")
	require.NoError(t, err)
	userID, err := store.CreateUser(ctx, &account.User{
		Email:        "owner@example.com",
		PasswordHash: "hash",
		RoleID:       roleID,
	})
	require.NoError(t, err)

	id, err := store.Create(ctx, &restaurant.Restaurant{
		Name:        "KFC",
		Description: "Fast food",
		Category:    "Fast Food",
		CreatedByID: &userID,
		Address:     restaurant.Address{City: "Kraków", Street: "Długa 5"},
		Dishes:      []restaurant.Dish{{Name: "Nashville Hot Chicken", Price: 10.3}},
	})
	require.NoError(t, err)
	_, err = store.Create(ctx, &restaurant.Restaurant{
		Name:    "McDonald",
		Address: restaurant.Address{City: "Kraków", Street: "Boczna 1"},
	})
	require.NoError(t, err)

	got, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "KFC", got.Name)
	require.Len(t, got.Dishes, 1)
	assert.InDelta(t, 10.3, got.Dishes[0].Price, 0.001)

	count, err := store.CountCreatedBy(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	items, total, err := store.List(ctx, restaurant.Query{
		SearchPhrase:  "fast",
		SortBy:        restaurant.SortByName,
		SortDirection: restaurant.SortAscending,
		PageSize:      5,
		PageNumber:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Len(t, items[0].Dishes, 1)

	require.NoError(t, store.Update(ctx, id, restaurant.Update{Name: "KFC 2", HasDelivery: true}))
	require.ErrorIs(t, store.Update(ctx, 999, restaurant.Update{Name: "x"}), restaurant.ErrRestaurantNotFound)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.GetByID(ctx, id)
	require.ErrorIs(t, err, restaurant.ErrRestaurantNotFound)
}

func TestStoreUsers(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	roleID, err := store.CreateRole(ctx, "User")
	require.NoError(t, err)

	u := &account.User{Email: "jan@example.com", PasswordHash: "hash", RoleID: roleID}
	_, err = store.CreateUser(ctx, u)
	require.NoError(t, err)

	_, err = store.CreateUser(ctx, u)
	require.ErrorIs(t, err, account.ErrEmailTaken)

	got, err := store.GetUserByEmail(ctx, "jan@example.com")
	require.NoError(t, err)
	assert.Equal(t, "User", got.Role.Name)

	_, err = store.GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, account.ErrUserNotFound)
}
