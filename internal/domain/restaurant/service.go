package restaurant

import (
	"context"

	"github.com/astro-web3/restaurant-api/internal/domain/identity"
)

type Service interface {
	GetByID(ctx context.Context, id int64) (*Restaurant, error)
	List(ctx context.Context, q Query) (*Page, error)
	// Create stamps the principal as creator after a Create authorization.
	Create(ctx context.Context, p identity.Principal, r *Restaurant) (int64, error)
	Update(ctx context.Context, p identity.Principal, id int64, u Update) error
	Delete(ctx context.Context, p identity.Principal, id int64) error

	CreateDish(ctx context.Context, restaurantID int64, d *Dish) (int64, error)
	GetDish(ctx context.Context, restaurantID, dishID int64) (*Dish, error)
	ListDishes(ctx context.Context, restaurantID int64) ([]Dish, error)
	DeleteDish(ctx context.Context, restaurantID, dishID int64) error
}
