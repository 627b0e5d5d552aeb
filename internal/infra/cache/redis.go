package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/astro-web3/restaurant-api/internal/domain/restaurant"
)

const keyPrefix = "restaurant-api:restaurant:"

// cachedRestaurant is the stored form; the domain type has no JSON tags.
type cachedRestaurant struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	HasDelivery   bool         `json:"has_delivery"`
	ContactEmail  string       `json:"contact_email"`
	ContactNumber string       `json:"contact_number"`
	CreatedByID   *int64       `json:"created_by_id,omitempty"`
	City          string       `json:"city"`
	Street        string       `json:"street"`
	PostalCode    string       `json:"postal_code"`
	Dishes        []cachedDish `json:"dishes"`
}

type cachedDish struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(url string, poolSize int) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	opt.PoolSize = poolSize

	client := redis.NewClient(opt)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// NewRestaurantCache caches loaded restaurants for ttl.
func NewRestaurantCache(client *redis.Client, ttl time.Duration) restaurant.Cache {
	return &redisCache{client: client, ttl: ttl}
}

func key(id int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, id)
}

func (r *redisCache) Get(ctx context.Context, id int64) (*restaurant.Restaurant, error) {
	val, err := r.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var cached cachedRestaurant
	if err := json.Unmarshal(val, &cached); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached restaurant: %w", err)
	}

	return cached.toDomain(), nil
}

func (r *redisCache) Set(ctx context.Context, rest *restaurant.Restaurant) error {
	data, err := json.Marshal(fromDomain(rest))
	if err != nil {
		return fmt.Errorf("failed to marshal cached restaurant: %w", err)
	}

	if err := r.client.Set(ctx, key(rest.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set redis cache: %w", err)
	}

	return nil
}

func (r *redisCache) Invalidate(ctx context.Context, id int64) error {
	if err := r.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

func fromDomain(r *restaurant.Restaurant) cachedRestaurant {
	out := cachedRestaurant{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		HasDelivery:   r.HasDelivery,
		ContactEmail:  r.ContactEmail,
		ContactNumber: r.ContactNumber,
		CreatedByID:   r.CreatedByID,
		City:          r.Address.City,
		Street:        r.Address.Street,
		PostalCode:    r.Address.PostalCode,
		Dishes:        make([]cachedDish, 0, len(r.Dishes)),
	}
	for _, d := range r.Dishes {
		out.Dishes = append(out.Dishes, cachedDish{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Price:       d.Price,
		})
	}
	return out
}

func (c cachedRestaurant) toDomain() *restaurant.Restaurant {
	out := &restaurant.Restaurant{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		Category:      c.Category,
		HasDelivery:   c.HasDelivery,
		ContactEmail:  c.ContactEmail,
		ContactNumber: c.ContactNumber,
		CreatedByID:   c.CreatedByID,
		Address: restaurant.Address{
			City:       c.City,
			Street:     c.Street,
			PostalCode: c.PostalCode,
		},
		Dishes: make([]restaurant.Dish, 0, len(c.Dishes)),
	}
	for _, d := range c.Dishes {
		out.Dishes = append(out.Dishes, restaurant.Dish{
			ID:           d.ID,
			Name:         d.Name,
			Description:  d.Description,
			Price:        d.Price,
			RestaurantID: c.ID,
		})
	}
	return out
}
