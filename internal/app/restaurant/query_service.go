package restaurant

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	restaurantdomain "github.com/astro-web3/restaurant-api/internal/domain/restaurant"
	"github.com/astro-web3/restaurant-api/pkg/tracer"
)

type QueryService struct {
	domainService restaurantdomain.Service
}

func NewQueryService(domainService restaurantdomain.Service) *QueryService {
	return &QueryService{
		domainService: domainService,
	}
}

func (s *QueryService) GetByID(ctx context.Context, id int64) (*restaurantdomain.Restaurant, error) {
	ctx, span := tracer.Start(ctx, "app.restaurant.GetByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("restaurant.id", id))

	r, err := s.domainService.GetByID(ctx, id)
	if err != nil {
		tracer.Fail(span, err)
		return nil, err
	}
	return r, nil
}

func (s *QueryService) List(ctx context.Context, q restaurantdomain.Query) (*restaurantdomain.Page, error) {
	ctx, span := tracer.Start(ctx, "app.restaurant.List")
	defer span.End()

	span.SetAttributes(
		attribute.String("query.search_phrase", q.SearchPhrase),
		attribute.Int("query.page_size", q.PageSize),
		attribute.Int("query.page_number", q.PageNumber),
	)

	page, err := s.domainService.List(ctx, q)
	if err != nil {
		tracer.Fail(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.total", page.TotalItemsCount))
	return page, nil
}

func (s *QueryService) GetDish(ctx context.Context, restaurantID, dishID int64) (*restaurantdomain.Dish, error) {
	ctx, span := tracer.Start(ctx, "app.restaurant.GetDish")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("restaurant.id", restaurantID),
		attribute.Int64("dish.id", dishID),
	)

	d, err := s.domainService.GetDish(ctx, restaurantID, dishID)
	if err != nil {
		tracer.Fail(span, err)
		return nil, err
	}
	return d, nil
}

func (s *QueryService) ListDishes(ctx context.Context, restaurantID int64) ([]restaurantdomain.Dish, error) {
	ctx, span := tracer.Start(ctx, "app.restaurant.ListDishes")
	defer span.End()

	span.SetAttributes(attribute.Int64("restaurant.id", restaurantID))

	dishes, err := s.domainService.ListDishes(ctx, restaurantID)
	if err != nil {
		tracer.Fail(span, err)
		return nil, err
	}
	return dishes, nil
}
