package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/astro-web3/restaurant-api/internal/config"
	"github.com/astro-web3/restaurant-api/internal/domain/authz"
	"github.com/astro-web3/restaurant-api/internal/transport/http/handler"
)

func NewRouter(
	h *Handler,
	cfg *config.Config,
	restaurantHandler *handler.RestaurantHandler,
	accountHandler *handler.AccountHandler,
) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	if cfg.Observability.TraceEnabled {
		router.Use(otelgin.Middleware(serviceName))
	}
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(cfg.Server.SlowRequestThreshold))

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := router.Group("/api")
	api.Use(h.Authenticate)

	acc := api.Group("/account")
	acc.POST("/register", accountHandler.Register)
	acc.POST("/login", accountHandler.Login)

	management := h.RequirePolicy(authz.PolicyIsManagement)

	rest := api.Group("/restaurant")
	rest.GET("", restaurantHandler.List)
	rest.GET("/:id", h.RequirePolicy(authz.PolicyIsAdult), restaurantHandler.Get)
	rest.POST("", management, restaurantHandler.Create)
	rest.PUT("/:id", management, restaurantHandler.Update)
	rest.DELETE("/:id", management, restaurantHandler.Delete)

	rest.POST("/:id/dish", restaurantHandler.CreateDish)
	rest.GET("/:id/dish", restaurantHandler.ListDishes)
	rest.GET("/:id/dish/:dishId", restaurantHandler.GetDish)
	rest.DELETE("/:id/dish/:dishId", restaurantHandler.DeleteDish)

	return router
}
