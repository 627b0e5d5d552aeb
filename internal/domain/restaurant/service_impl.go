package restaurant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/astro-web3/restaurant-api/internal/domain/authz"
	"github.com/astro-web3/restaurant-api/internal/domain/identity"
	"github.com/astro-web3/restaurant-api/pkg/logger"
)

type service struct {
	repo  Repository
	authz authz.Service
	cache Cache
}

// NewService builds the restaurant service. cache may be nil.
func NewService(repo Repository, authzService authz.Service, cache Cache) Service {
	return &service{
		repo:  repo,
		authz: authzService,
		cache: cache,
	}
}

func (s *service) GetByID(ctx context.Context, id int64) (*Restaurant, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			logger.WarnContext(ctx, "restaurant cache read failed",
				slog.Int64("restaurant_id", id),
				slog.String("error", err.Error()),
			)
		} else if cached != nil {
			return cached, nil
		}
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, r); err != nil {
			logger.WarnContext(ctx, "restaurant cache write failed",
				slog.Int64("restaurant_id", id),
				slog.String("error", err.Error()),
			)
		}
	}
	return r, nil
}

func (s *service) List(ctx context.Context, q Query) (*Page, error) {
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return NewPage(items, total, q), nil
}

func (s *service) Create(ctx context.Context, p identity.Principal, r *Restaurant) (int64, error) {
	if err := s.authorize(ctx, p, nil, authz.OperationCreate); err != nil {
		return 0, err
	}

	creator, err := p.SubjectID()
	switch {
	case err == nil:
		r.CreatedByID = &creator
	case errors.Is(err, identity.ErrAnonymous):
		r.CreatedByID = nil
	default:
		return 0, fmt.Errorf("%w: %w", authz.ErrInconsistentPrincipal, err)
	}

	id, err := s.repo.Create(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("failed to create restaurant: %w", err)
	}
	r.ID = id
	return id, nil
}

func (s *service) Update(ctx context.Context, p identity.Principal, id int64, u Update) error {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, p, r, authz.OperationUpdate); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, u); err != nil {
		return fmt.Errorf("failed to update restaurant %d: %w", id, err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *service) Delete(ctx context.Context, p identity.Principal, id int64) error {
	logger.InfoContext(ctx, "restaurant delete invoked", slog.Int64("restaurant_id", id))

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, p, r, authz.OperationDelete); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete restaurant %d: %w", id, err)
	}
	s.invalidate(ctx, id)

	logger.InfoContext(ctx, "restaurant delete complete", slog.Int64("restaurant_id", id))
	return nil
}

func (s *service) CreateDish(ctx context.Context, restaurantID int64, d *Dish) (int64, error) {
	if _, err := s.repo.GetByID(ctx, restaurantID); err != nil {
		return 0, err
	}

	d.RestaurantID = restaurantID
	id, err := s.repo.CreateDish(ctx, d)
	if err != nil {
		return 0, fmt.Errorf("failed to create dish: %w", err)
	}
	d.ID = id
	s.invalidate(ctx, restaurantID)
	return id, nil
}

func (s *service) GetDish(ctx context.Context, restaurantID, dishID int64) (*Dish, error) {
	if _, err := s.repo.GetByID(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.repo.GetDish(ctx, restaurantID, dishID)
}

func (s *service) ListDishes(ctx context.Context, restaurantID int64) ([]Dish, error) {
	if _, err := s.repo.GetByID(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.repo.ListDishes(ctx, restaurantID)
}

func (s *service) DeleteDish(ctx context.Context, restaurantID, dishID int64) error {
	if _, err := s.repo.GetByID(ctx, restaurantID); err != nil {
		return err
	}
	if err := s.repo.DeleteDish(ctx, restaurantID, dishID); err != nil {
		return err
	}
	s.invalidate(ctx, restaurantID)
	return nil
}

// authorize turns a NotSucceeded verdict into authz.ErrForbidden.
func (s *service) authorize(ctx context.Context, p identity.Principal, r *Restaurant, op authz.Operation) error {
	var resource authz.Resource
	if r != nil {
		resource = r
	}

	verdict, err := s.authz.Authorize(ctx, p, resource, authz.ResourceOperation(op))
	if err != nil {
		return err
	}
	if !verdict.Succeeded() {
		return authz.ErrForbidden
	}
	return nil
}

func (s *service) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		logger.WarnContext(ctx, "restaurant cache invalidation failed",
			slog.Int64("restaurant_id", id),
			slog.String("error", err.Error()),
		)
	}
}
