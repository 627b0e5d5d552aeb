// Package memory holds process-local implementations of the restaurant and
// account repositories. Records are copied on the way in and out.
package memory

import (
	"sync"

	"github.com/astro-web3/restaurant-api/internal/domain/account"
	"github.com/astro-web3/restaurant-api/internal/domain/restaurant"
)

type Store struct {
	mu          sync.RWMutex
	restaurants map[int64]*restaurant.Restaurant
	dishes      map[int64]*restaurant.Dish
	users       map[int64]*account.User
	roles       map[int64]*account.Role

	nextRestaurant int64
	nextDish       int64
	nextUser       int64
	nextRole       int64
}

func NewStore() *Store {
	return &Store{
		restaurants: make(map[int64]*restaurant.Restaurant),
		dishes:      make(map[int64]*restaurant.Dish),
		users:       make(map[int64]*account.User),
		roles:       make(map[int64]*account.Role),
	}
}

var (
	_ restaurant.Repository = (*Store)(nil)
	_ account.Repository    = (*Store)(nil)
)
