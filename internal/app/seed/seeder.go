// Package seed inserts the default roles and sample restaurants into empty
// stores.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/astro-web3/restaurant-api/internal/domain/account"
	"github.com/astro-web3/restaurant-api/internal/domain/identity"
	"github.com/astro-web3/restaurant-api/internal/domain/restaurant"
	"github.com/astro-web3/restaurant-api/pkg/logger"
	"github.com/astro-web3/restaurant-api/pkg/tracer"
)

type Seeder struct {
	restaurants restaurant.Repository
	accounts    account.Repository
}

func NewSeeder(restaurants restaurant.Repository, accounts account.Repository) *Seeder {
	return &Seeder{restaurants: restaurants, accounts: accounts}
}

func (s *Seeder) Seed(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "app.seed.Seed")
	defer span.End()

	if err := s.seedRoles(ctx); err != nil {
		tracer.Fail(span, err)
		return err
	}
	if err := s.seedRestaurants(ctx); err != nil {
		tracer.Fail(span, err)
		return err
	}
	return nil
}

func (s *Seeder) seedRoles(ctx context.Context) error {
	roles, err := s.accounts.ListRoles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list roles: %w", err)
	}
	if len(roles) > 0 {
		return nil
	}

	for _, name := range []string{identity.RoleUser, identity.RoleManager, identity.RoleAdmin} {
		if _, err := s.accounts.CreateRole(ctx, name); err != nil {
			return err
		}
	}
	logger.InfoContext(ctx, "roles seeded", slog.Int("count", 3))
	return nil
}

func (s *Seeder) seedRestaurants(ctx context.Context) error {
	_, total, err := s.restaurants.List(ctx, restaurant.Query{PageSize: 1, PageNumber: 1})
	if err != nil {
		return fmt.Errorf("failed to count restaurants: %w", err)
	}
	if total > 0 {
		return nil
	}

	samples := sampleRestaurants()
	for _, r := range samples {
		if _, err := s.restaurants.Create(ctx, r); err != nil {
			return fmt.Errorf("failed to seed restaurant %q: %w", r.Name, err)
		}
	}
	logger.InfoContext(ctx, "restaurants seeded", slog.Int("count", len(samples)))
	return nil
}

func sampleRestaurants() []*restaurant.Restaurant {
	return []*restaurant.Restaurant{
		{
			Name:         "KFC",
			Category:     "FastFood",
			Description:  "KFC (short for Kentucky Fried Chicken) is an American fast food restaurant chain headquartered in Louisville, Kentucky.",
			ContactEmail: "contact@kfc.com",
			HasDelivery:  true,
			Dishes: []restaurant.Dish{
				{Name: "Nashville Hot Chicken", Price: 10.30},
				{Name: "Chicken Nuggets", Price: 5.30},
			},
			Address: restaurant.Address{City: "Kraków", Street: "Długa 5", PostalCode: "30-001"},
		},
		{
			Name:         "McDonald",
			Category:     "FastFood",
			Description:  "McDonald's Corporation is an American multinational fast food chain.",
			ContactEmail: "contact@mac.com",
			HasDelivery:  true,
			Dishes: []restaurant.Dish{
				{Name: "Cheeseburger", Price: 6.30},
				{Name: "Hamburger", Price: 7.30},
			},
			Address: restaurant.Address{City: "Warszawa", Street: "Potockiego 15", PostalCode: "01-002"},
		},
	}
}
