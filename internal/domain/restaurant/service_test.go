package restaurant_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astro-web3/restaurant-api/internal/domain/authz"
	"github.com/astro-web3/restaurant-api/internal/domain/identity"
	"github.com/astro-web3/restaurant-api/internal/domain/restaurant"
	"github.com/astro-web3/restaurant-api/internal/infra/memory"
)

type mapCache struct {
	items       map[int64]*restaurant.Restaurant
	getErr      error
	hits        int
	invalidated []int64
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[int64]*restaurant.Restaurant)}
}

func (c *mapCache) Get(_ context.Context, id int64) (*restaurant.Restaurant, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	r, ok := c.items[id]
	if !ok {
		return nil, nil
	}
	c.hits++
	return r, nil
}

func (c *mapCache) Set(_ context.Context, r *restaurant.Restaurant) error {
	c.items[r.ID] = r
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, id int64) error {
	delete(c.items, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

func manager(id int64) identity.Principal {
	return identity.NewPrincipal(
		identity.Claim{Type: identity.ClaimSubjectID, Value: strconv.FormatInt(id, 10)},
		identity.Claim{Type: identity.ClaimRole, Value: identity.RoleManager},
	)
}

func newService(t *testing.T, cache restaurant.Cache) (restaurant.Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	reg, err := authz.NewRegistry(authz.DefaultPolicies()...)
	require.NoError(t, err)
	authzService := authz.NewService(reg, authz.NewOwnershipOracle(store), nil)
	return restaurant.NewService(store, authzService, cache), store
}

func TestCreateStampsCreator(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store := newService(t, nil)

	id, err := svc.Create(ctx, manager(7), &restaurant.Restaurant{Name: "Pierogarnia"})
	require.NoError(t, err)

	got, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	creator, ok := got.CreatorID()
	require.True(t, ok)
	assert.Equal(t, int64(7), creator)

	count, err := store.CountCreatedBy(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateRejectsMalformedSubject(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t, nil)

	p := identity.NewPrincipal(identity.Claim{Type: identity.ClaimSubjectID, Value: "abc"})
	_, err := svc.Create(context.Background(), p, &restaurant.Restaurant{Name: "X"})
	require.ErrorIs(t, err, authz.ErrInconsistentPrincipal)
}

func TestUpdateAndDeleteOwnership(t *testing.T) {
	t.Parallel()

	admin := identity.NewPrincipal(
		identity.Claim{Type: identity.ClaimSubjectID, Value: "99"},
		identity.Claim{Type: identity.ClaimRole, Value: identity.RoleAdmin},
	)

	tests := []struct {
		name    string
		caller  identity.Principal
		wantErr error
	}{
		{name: "creator", caller: manager(1)},
		{name: "admin", caller: admin},
		{name: "stranger", caller: manager(2), wantErr: authz.ErrForbidden},
		{name: "anonymous", caller: identity.Anonymous(), wantErr: authz.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			svc, _ := newService(t, nil)

			id, err := svc.Create(ctx, manager(1), &restaurant.Restaurant{Name: "Bar"})
			require.NoError(t, err)

			err = svc.Update(ctx, tt.caller, id, restaurant.Update{Name: "Bar Mleczny"})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			err = svc.Delete(ctx, tt.caller, id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			_, err = svc.GetByID(ctx, id)
			require.ErrorIs(t, err, restaurant.ErrRestaurantNotFound)
		})
	}
}

func TestUpdateMissingRestaurant(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t, nil)

	err := svc.Update(context.Background(), manager(1), 404, restaurant.Update{Name: "x"})
	require.ErrorIs(t, err, restaurant.ErrRestaurantNotFound)
}

func TestGetByIDUsesCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cache := newMapCache()
	svc, _ := newService(t, cache)

	id, err := svc.Create(ctx, manager(1), &restaurant.Restaurant{Name: "Cached"})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, cache.hits)

	got, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, "Cached", got.Name)

	require.NoError(t, svc.Update(ctx, manager(1), id, restaurant.Update{Name: "Fresh"}))
	assert.Equal(t, []int64{id}, cache.invalidated)

	got, err = svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Fresh", got.Name)
}

func TestGetByIDFallsBackOnCacheError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cache := newMapCache()
	cache.getErr = errors.New("connection refused")
	svc, _ := newService(t, cache)

	id, err := svc.Create(ctx, manager(1), &restaurant.Restaurant{Name: "Fallback"})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Fallback", got.Name)
}

func TestDishesBelongToRestaurant(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService(t, nil)

	first, err := svc.Create(ctx, manager(1), &restaurant.Restaurant{Name: "First"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, manager(1), &restaurant.Restaurant{Name: "Second"})
	require.NoError(t, err)

	dishID, err := svc.CreateDish(ctx, first, &restaurant.Dish{Name: "Zurek", Price: 12.5})
	require.NoError(t, err)

	_, err = svc.GetDish(ctx, second, dishID)
	require.ErrorIs(t, err, restaurant.ErrDishNotFound)

	dishes, err := svc.ListDishes(ctx, first)
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.Equal(t, "Zurek", dishes[0].Name)

	require.ErrorIs(t, svc.DeleteDish(ctx, second, dishID), restaurant.ErrDishNotFound)
	require.NoError(t, svc.DeleteDish(ctx, first, dishID))

	_, err = svc.CreateDish(ctx, 404, &restaurant.Dish{Name: "Ghost"})
	require.ErrorIs(t, err, restaurant.ErrRestaurantNotFound)
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	page := restaurant.NewPage(nil, 12, restaurant.Query{PageSize: 5, PageNumber: 3})
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 11, page.ItemsFrom)
	assert.Equal(t, 15, page.ItemsTo)
	assert.Equal(t, 12, page.TotalItemsCount)
}
