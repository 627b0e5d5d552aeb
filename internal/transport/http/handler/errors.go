package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/astro-web3/restaurant-api/internal/domain/account"
	"github.com/astro-web3/restaurant-api/internal/domain/authz"
	"github.com/astro-web3/restaurant-api/internal/domain/restaurant"
	"github.com/astro-web3/restaurant-api/pkg/logger"
)

const (
	msgForbidden    = "forbidden"
	msgUnauthorized = "unauthorized"
	msgInternal     = "internal server error"
)

// WriteError maps err onto a status code and aborts the request. Every
// authorization denial produces the same body.
func WriteError(c *gin.Context, err error) {
	status, msg := classify(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func Forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msgForbidden})
}

func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, authz.ErrInconsistentPrincipal),
		errors.Is(err, authz.ErrUnknownPolicy),
		errors.Is(err, authz.ErrInvalidRequirement):
		return http.StatusInternalServerError, msgInternal
	case errors.Is(err, authz.ErrForbidden):
		return http.StatusForbidden, msgForbidden
	case errors.Is(err, restaurant.ErrRestaurantNotFound):
		return http.StatusNotFound, restaurant.ErrRestaurantNotFound.Error()
	case errors.Is(err, restaurant.ErrDishNotFound):
		return http.StatusNotFound, restaurant.ErrDishNotFound.Error()
	}
	for _, sentinel := range badRequest {
		if errors.Is(err, sentinel) {
			return http.StatusBadRequest, sentinel.Error()
		}
	}
	return http.StatusInternalServerError, msgInternal
}

var badRequest = []error{
	account.ErrInvalidCredentials,
	account.ErrEmailTaken,
	account.ErrPasswordMismatch,
	account.ErrUnknownRole,
}
