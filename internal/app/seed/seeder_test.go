package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astro-web3/restaurant-api/internal/app/seed"
	"github.com/astro-web3/restaurant-api/internal/domain/restaurant"
	"github.com/astro-web3/restaurant-api/internal/infra/memory"
)

func TestSeedIsIdempotent(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	s := seed.NewSeeder(store, store)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx))
	require.NoError(t, s.Seed(ctx))

	roles, err := store.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 3)
	assert.Equal(t, "User", roles[0].Name)
	assert.Equal(t, int64(1), roles[0].ID)

	items, total, err := store.List(ctx, restaurant.Query{PageSize: 10, PageNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "KFC", items[0].Name)
	assert.Len(t, items[0].Dishes, 2)
	_, hasCreator := items[0].CreatorID()
	assert.False(t, hasCreator)
}
