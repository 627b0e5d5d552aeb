package authz

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/astro-web3/restaurant-api/internal/domain/authz"
	"github.com/astro-web3/restaurant-api/internal/domain/identity"
	"github.com/astro-web3/restaurant-api/pkg/tracer"
)

type Service interface {
	Check(
		ctx context.Context,
		p identity.Principal,
		policyName string,
		resource authz.Resource,
	) (authz.Verdict, error)
}

type service struct {
	domainService authz.Service
}

func NewService(domainService authz.Service) Service {
	return &service{
		domainService: domainService,
	}
}

func (s *service) Check(
	ctx context.Context,
	p identity.Principal,
	policyName string,
	resource authz.Resource,
) (authz.Verdict, error) {
	ctx, span := tracer.Start(ctx, "app.authz.Check")
	defer span.End()

	span.SetAttributes(
		attribute.String("authz.policy", policyName),
		attribute.Bool("authz.authenticated", p.IsAuthenticated()),
	)

	verdict, err := s.domainService.Evaluate(ctx, p, policyName, resource)
	if err != nil {
		tracer.Fail(span, err)
		return authz.VerdictNotSucceeded, err
	}

	span.SetAttributes(attribute.Bool("authz.allowed", verdict.Succeeded()))
	return verdict, nil
}
