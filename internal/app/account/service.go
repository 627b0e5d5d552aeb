package account

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	accountdomain "github.com/astro-web3/restaurant-api/internal/domain/account"
	"github.com/astro-web3/restaurant-api/pkg/tracer"
)

type Service struct {
	domainService accountdomain.Service
}

func NewService(domainService accountdomain.Service) *Service {
	return &Service{
		domainService: domainService,
	}
}

func (s *Service) Register(ctx context.Context, reg accountdomain.Registration) (int64, error) {
	ctx, span := tracer.Start(ctx, "app.account.Register")
	defer span.End()

	id, err := s.domainService.Register(ctx, reg)
	if err != nil {
		tracer.Fail(span, err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("user.id", id))
	return id, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	ctx, span := tracer.Start(ctx, "app.account.Login")
	defer span.End()

	token, err := s.domainService.Login(ctx, email, password)
	if err != nil {
		tracer.Fail(span, err)
		return "", err
	}
	return token, nil
}
