package restaurant

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/astro-web3/restaurant-api/internal/domain/identity"
	restaurantdomain "github.com/astro-web3/restaurant-api/internal/domain/restaurant"
	"github.com/astro-web3/restaurant-api/pkg/logger"
	"github.com/astro-web3/restaurant-api/pkg/tracer"
)

type CommandService struct {
	domainService restaurantdomain.Service
}

func NewCommandService(domainService restaurantdomain.Service) *CommandService {
	return &CommandService{
		domainService: domainService,
	}
}

func (s *CommandService) Create(
	ctx context.Context,
	p identity.Principal,
	r *restaurantdomain.Restaurant,
) (int64, error) {
	ctx, span := tracer.Start(ctx, "app.restaurant.Create")
	defer span.End()

	id, err := s.domainService.Create(ctx, p, r)
	if err != nil {
		tracer.Fail(span, err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("restaurant.id", id))
	logger.InfoContext(ctx, "restaurant created",
		slog.Int64("restaurant_id", id),
		slog.String("name", r.Name),
	)
	return id, nil
}

func (s *CommandService) Update(
	ctx context.Context,
	p identity.Principal,
	id int64,
	u restaurantdomain.Update,
) error {
	ctx, span := tracer.Start(ctx, "app.restaurant.Update")
	defer span.End()

	span.SetAttributes(attribute.Int64("restaurant.id", id))

	if err := s.domainService.Update(ctx, p, id, u); err != nil {
		tracer.Fail(span, err)
		return err
	}

	logger.InfoContext(ctx, "restaurant updated", slog.Int64("restaurant_id", id))
	return nil
}

func (s *CommandService) Delete(ctx context.Context, p identity.Principal, id int64) error {
	ctx, span := tracer.Start(ctx, "app.restaurant.Delete")
	defer span.End()

	span.SetAttributes(attribute.Int64("restaurant.id", id))

	if err := s.domainService.Delete(ctx, p, id); err != nil {
		tracer.Fail(span, err)
		return err
	}
	return nil
}

func (s *CommandService) CreateDish(
	ctx context.Context,
	restaurantID int64,
	d *restaurantdomain.Dish,
) (int64, error) {
	ctx, span := tracer.Start(ctx, "app.restaurant.CreateDish")
	defer span.End()

	span.SetAttributes(attribute.Int64("restaurant.id", restaurantID))

	id, err := s.domainService.CreateDish(ctx, restaurantID, d)
	if err != nil {
		tracer.Fail(span, err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("dish.id", id))
	logger.InfoContext(ctx, "dish created",
		slog.Int64("restaurant_id", restaurantID),
		slog.Int64("dish_id", id),
	)
	return id, nil
}

func (s *CommandService) DeleteDish(ctx context.Context, restaurantID, dishID int64) error {
	ctx, span := tracer.Start(ctx, "app.restaurant.DeleteDish")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("restaurant.id", restaurantID),
		attribute.Int64("dish.id", dishID),
	)

	if err := s.domainService.DeleteDish(ctx, restaurantID, dishID); err != nil {
		tracer.Fail(span, err)
		return err
	}

	logger.InfoContext(ctx, "dish deleted",
		slog.Int64("restaurant_id", restaurantID),
		slog.Int64("dish_id", dishID),
	)
	return nil
}
