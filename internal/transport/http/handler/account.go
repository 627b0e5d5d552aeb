package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	accountapp "github.com/astro-web3/restaurant-api/internal/app/account"
	"github.com/astro-web3/restaurant-api/internal/domain/account"
	"github.com/astro-web3/restaurant-api/internal/domain/identity"
	"github.com/astro-web3/restaurant-api/pkg/tracer"
)

type AccountHandler struct {
	service *accountapp.Service
}

func NewAccountHandler(service *accountapp.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

func (h *AccountHandler) Register(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "transport.http.Register")
	defer span.End()

	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	reg := account.Registration{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Nationality:     req.Nationality,
		RoleID:          req.RoleID,
	}
	if req.DateOfBirth != "" {
		// already validated by the datetime tag
		dob, _ := time.Parse(identity.DateLayout, req.DateOfBirth)
		reg.DateOfBirth = &dob
	}

	if _, err := h.service.Register(ctx, reg); err != nil {
		WriteError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *AccountHandler) Login(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "transport.http.Login")
	defer span.End()

	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.String(http.StatusOK, token)
}
