package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/astro-web3/restaurant-api/internal/app/authz"
	"github.com/astro-web3/restaurant-api/internal/domain/identity"
	"github.com/astro-web3/restaurant-api/internal/transport/http/handler"
	"github.com/astro-web3/restaurant-api/pkg/logger"
	"github.com/astro-web3/restaurant-api/pkg/tracer"
)

// TokenParser turns a bearer token into a principal.
type TokenParser interface {
	Parse(raw string) (identity.Principal, error)
}

// Handler authenticates requests and guards routes with named policies.
type Handler struct {
	appService authz.Service
	tokens     TokenParser
}

func NewHandler(appService authz.Service, tokens TokenParser) *Handler {
	return &Handler{
		appService: appService,
		tokens:     tokens,
	}
}

// Authenticate stores the caller's principal on the context. A request
// without a bearer token proceeds anonymously; an invalid token is rejected.
func (h *Handler) Authenticate(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		handler.SetPrincipal(c, identity.Anonymous())
		c.Next()
		return
	}

	raw, found := strings.CutPrefix(authHeader, "Bearer ")
	raw = strings.TrimSpace(raw)
	if !found || raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	p, err := h.tokens.Parse(raw)
	if err != nil {
		logger.DebugContext(c.Request.Context(), "token rejected", slog.String("error", err.Error()))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	handler.SetPrincipal(c, p)
	c.Next()
}

// RequirePolicy admits the request only when policy succeeds for the caller.
// Anonymous callers that fail get 401, authenticated ones 403.
func (h *Handler) RequirePolicy(policy string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "transport.http.RequirePolicy")
		defer span.End()

		span.SetAttributes(attribute.String("authz.policy", policy))

		p := handler.PrincipalFrom(c)
		verdict, err := h.appService.Check(ctx, p, policy, nil)
		if err != nil {
			handler.WriteError(c, err)
			return
		}

		if !verdict.Succeeded() {
			logger.WarnContext(ctx, "authorization denied",
				slog.String("policy", policy),
				slog.Bool("authenticated", p.IsAuthenticated()),
			)
			if !p.IsAuthenticated() {
				handler.Unauthorized(c)
				return
			}
			handler.Forbidden(c)
			return
		}

		c.Next()
	}
}
