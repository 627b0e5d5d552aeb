package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/coder/quartz"
	"github.com/go-chi/cors"

	accountapp "github.com/astro-web3/restaurant-api/internal/app/account"
	authzapp "github.com/astro-web3/restaurant-api/internal/app/authz"
	restaurantapp "github.com/astro-web3/restaurant-api/internal/app/restaurant"
	"github.com/astro-web3/restaurant-api/internal/app/seed"
	"github.com/astro-web3/restaurant-api/internal/config"
	accountdomain "github.com/astro-web3/restaurant-api/internal/domain/account"
	authzdomain "github.com/astro-web3/restaurant-api/internal/domain/authz"
	restaurantdomain "github.com/astro-web3/restaurant-api/internal/domain/restaurant"
	"github.com/astro-web3/restaurant-api/internal/infra/cache"
	"github.com/astro-web3/restaurant-api/internal/infra/memory"
	"github.com/astro-web3/restaurant-api/internal/infra/password"
	"github.com/astro-web3/restaurant-api/internal/infra/postgres"
	"github.com/astro-web3/restaurant-api/internal/infra/token"
	"github.com/astro-web3/restaurant-api/internal/transport/http/handler"
	"github.com/astro-web3/restaurant-api/pkg/logger"
	"github.com/astro-web3/restaurant-api/pkg/otel"
	"github.com/astro-web3/restaurant-api/pkg/tracer"
)

type Server struct {
	httpServer *http.Server
	closers    []func() error
}

const (
	idleTimeoutMultiplier = 2
	serviceName           = "restaurant-api"
	corsMaxAgeSeconds     = 300
)

// Dependencies are the stores and clock the HTTP stack is built on.
type Dependencies struct {
	Restaurants restaurantdomain.Repository
	Accounts    accountdomain.Repository
	// Cache may be nil.
	Cache restaurantdomain.Cache
	Clock quartz.Clock
}

func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	logger.InitLogger(cfg.Observability.LogLevel, cfg.Observability.Format, cfg.Observability.LogSource)

	otelCfg := otel.DefaultConfig()
	otelCfg.EndpointURL = cfg.Observability.TracingEndpointURL
	otelCfg.Enabled = cfg.Observability.TraceEnabled
	otelCfg.SampleRatio = cfg.Observability.TraceSampleRatio
	if err := tracer.InitTracer(serviceName, otelCfg); err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}

	srv := &Server{}
	deps := Dependencies{Clock: quartz.NewReal()}

	switch cfg.Database.Driver {
	case "postgres":
		store, err := postgres.Open(ctx, cfg.Database.DSN, postgres.PoolConfig{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		srv.closers = append(srv.closers, store.Close)
		deps.Restaurants, deps.Accounts = store, store
	default:
		store := memory.NewStore()
		deps.Restaurants, deps.Accounts = store, store
	}

	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis.URL, cfg.Redis.PoolSize)
		if err != nil {
			_ = srv.close()
			return nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		srv.closers = append(srv.closers, redisClient.Close)
		deps.Cache = cache.NewRestaurantCache(redisClient, cfg.Redis.RestaurantTTL)
	}

	if cfg.Seed.Enabled {
		if err := seed.NewSeeder(deps.Restaurants, deps.Accounts).Seed(ctx); err != nil {
			_ = srv.close()
			return nil, fmt.Errorf("failed to seed: %w", err)
		}
	}

	h, err := NewHTTPHandler(cfg, deps)
	if err != nil {
		_ = srv.close()
		return nil, err
	}

	srv.httpServer = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout * idleTimeoutMultiplier,
	}
	return srv, nil
}

// NewHTTPHandler wires domain services, handlers and middleware on top of deps.
func NewHTTPHandler(cfg *config.Config, deps Dependencies) (http.Handler, error) {
	registry, err := buildRegistry(cfg.Authz.Policies)
	if err != nil {
		return nil, fmt.Errorf("failed to build policy registry: %w", err)
	}

	oracle := authzdomain.NewOwnershipOracle(deps.Restaurants)
	authzDomainService := authzdomain.NewService(registry, oracle, deps.Clock)
	authzAppService := authzapp.NewService(authzDomainService)

	restaurantDomainService := restaurantdomain.NewService(deps.Restaurants, authzDomainService, deps.Cache)
	restaurantHandler := handler.NewRestaurantHandler(
		restaurantapp.NewCommandService(restaurantDomainService),
		restaurantapp.NewQueryService(restaurantDomainService),
	)

	tokens, err := token.NewJWT(cfg.Auth.JWTKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTExpireDays, deps.Clock)
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}
	accountDomainService := accountdomain.NewService(deps.Accounts, password.NewBcrypt(cfg.Auth.BcryptCost), tokens)
	accountHandler := handler.NewAccountHandler(accountapp.NewService(accountDomainService))

	h := NewHandler(authzAppService, tokens)
	router := NewRouter(h, cfg, restaurantHandler, accountHandler)

	if len(cfg.CORS.AllowedOrigins) == 0 {
		return router, nil
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", headerRequestID},
		ExposedHeaders: []string{"Location", headerRequestID},
		MaxAge:         corsMaxAgeSeconds,
	})(router), nil
}

func buildRegistry(policies []config.PolicyConfig) (*authzdomain.Registry, error) {
	if len(policies) == 0 {
		return authzdomain.NewRegistry(authzdomain.DefaultPolicies()...)
	}

	out := make([]authzdomain.Policy, 0, len(policies))
	for _, pc := range policies {
		p := authzdomain.Policy{Name: pc.Name}
		for _, rc := range pc.Requirements {
			r, err := authzdomain.ParseRequirement(authzdomain.RequirementSpec{
				Kind:      rc.Kind,
				Threshold: rc.Threshold,
				Operation: rc.Operation,
				ClaimType: rc.ClaimType,
				Values:    rc.Values,
			})
			if err != nil {
				return nil, fmt.Errorf("policy %q: %w", pc.Name, err)
			}
			p.Requirements = append(p.Requirements, r)
		}
		out = append(out, p)
	}
	return authzdomain.NewRegistry(out...)
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	return errors.Join(err, s.close())
}

func (s *Server) close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}
