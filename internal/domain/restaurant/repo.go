package restaurant

import (
	"context"
)

type CommandRepository interface {
	Create(ctx context.Context, r *Restaurant) (int64, error)
	Update(ctx context.Context, id int64, u Update) error
	Delete(ctx context.Context, id int64) error
	CreateDish(ctx context.Context, d *Dish) (int64, error)
	DeleteDish(ctx context.Context, restaurantID, dishID int64) error
}

// QueryRepository reads committed state. GetByID and GetDish return
// ErrRestaurantNotFound and ErrDishNotFound respectively.
type QueryRepository interface {
	GetByID(ctx context.Context, id int64) (*Restaurant, error)
	List(ctx context.Context, q Query) ([]*Restaurant, int, error)
	CountCreatedBy(ctx context.Context, subjectID int64) (int, error)
	GetDish(ctx context.Context, restaurantID, dishID int64) (*Dish, error)
	ListDishes(ctx context.Context, restaurantID int64) ([]Dish, error)
}

type Repository interface {
	CommandRepository
	QueryRepository
}

// Cache holds fully loaded restaurants by id. A miss is (nil, nil).
type Cache interface {
	Get(ctx context.Context, id int64) (*Restaurant, error)
	Set(ctx context.Context, r *Restaurant) error
	Invalidate(ctx context.Context, id int64) error
}
