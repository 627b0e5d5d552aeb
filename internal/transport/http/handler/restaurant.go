package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	restaurantapp "github.com/astro-web3/restaurant-api/internal/app/restaurant"
	"github.com/astro-web3/restaurant-api/internal/domain/restaurant"
	"github.com/astro-web3/restaurant-api/pkg/tracer"
)

type RestaurantHandler struct {
	commandService *restaurantapp.CommandService
	queryService   *restaurantapp.QueryService
}

func NewRestaurantHandler(
	commandService *restaurantapp.CommandService,
	queryService *restaurantapp.QueryService,
) *RestaurantHandler {
	return &RestaurantHandler{
		commandService: commandService,
		queryService:   queryService,
	}
}

func (h *RestaurantHandler) List(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "transport.http.ListRestaurants")
	defer span.End()

	var q RestaurantQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.queryService.List(ctx, q.toDomain())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPageResponse(page))
}

func (h *RestaurantHandler) Get(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "transport.http.GetRestaurant")
	defer span.End()

	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int64("restaurant.id", id))

	r, err := h.queryService.GetByID(ctx, id)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRestaurantResponse(r))
}

func (h *RestaurantHandler) Create(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "transport.http.CreateRestaurant")
	defer span.End()

	var req CreateRestaurantRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.commandService.Create(ctx, PrincipalFrom(c), req.toDomain())
	if err != nil {
		WriteError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/restaurant/%d", id))
	c.Status(http.StatusCreated)
}

func (h *RestaurantHandler) Update(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "transport.http.UpdateRestaurant")
	defer span.End()

	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateRestaurantRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.commandService.Update(ctx, PrincipalFrom(c), id, restaurant.Update{
		Name:        req.Name,
		Description: req.Description,
		HasDelivery: req.HasDelivery,
	})
	if err != nil {
		WriteError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *RestaurantHandler) Delete(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "transport.http.DeleteRestaurant")
	defer span.End()

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.commandService.Delete(ctx, PrincipalFrom(c), id); err != nil {
		WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RestaurantHandler) CreateDish(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "transport.http.CreateDish")
	defer span.End()

	restaurantID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req CreateDishRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.commandService.CreateDish(ctx, restaurantID, &restaurant.Dish{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		WriteError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/restaurant/%d/dish/%d", restaurantID, id))
	c.Status(http.StatusCreated)
}

func (h *RestaurantHandler) GetDish(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "transport.http.GetDish")
	defer span.End()

	restaurantID, ok := idParam(c, "id")
	if !ok {
		return
	}
	dishID, ok := idParam(c, "dishId")
	if !ok {
		return
	}

	d, err := h.queryService.GetDish(ctx, restaurantID, dishID)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, newDishResponse(*d))
}

func (h *RestaurantHandler) ListDishes(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "transport.http.ListDishes")
	defer span.End()

	restaurantID, ok := idParam(c, "id")
	if !ok {
		return
	}

	dishes, err := h.queryService.ListDishes(ctx, restaurantID)
	if err != nil {
		WriteError(c, err)
		return
	}

	out := make([]DishResponse, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, newDishResponse(d))
	}
	c.JSON(http.StatusOK, out)
}

func (h *RestaurantHandler) DeleteDish(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "transport.http.DeleteDish")
	defer span.End()

	restaurantID, ok := idParam(c, "id")
	if !ok {
		return
	}
	dishID, ok := idParam(c, "dishId")
	if !ok {
		return
	}

	if err := h.commandService.DeleteDish(ctx, restaurantID, dishID); err != nil {
		WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
