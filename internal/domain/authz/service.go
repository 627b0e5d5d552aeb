// Package authz evaluates named policies and ad-hoc requirements against a
// principal and, for resource-scoped requirements, a target resource.
package authz

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coder/quartz"

	"github.com/astro-web3/restaurant-api/internal/domain/identity"
	"github.com/astro-web3/restaurant-api/pkg/logger"
)

type Service interface {
	// Evaluate resolves policyName and evaluates its requirements.
	// resource may be nil.
	Evaluate(ctx context.Context, p identity.Principal, policyName string, resource Resource) (Verdict, error)
	// Authorize evaluates requirements directly without a registered policy.
	Authorize(ctx context.Context, p identity.Principal, resource Resource, reqs ...Requirement) (Verdict, error)
}

type service struct {
	registry *Registry
	oracle   OwnershipOracle
	clock    quartz.Clock
}

func NewService(registry *Registry, oracle OwnershipOracle, clock quartz.Clock) Service {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &service{
		registry: registry,
		oracle:   oracle,
		clock:    clock,
	}
}

func (s *service) Evaluate(
	ctx context.Context,
	p identity.Principal,
	policyName string,
	resource Resource,
) (Verdict, error) {
	reqs, ok := s.registry.Lookup(policyName)
	if !ok {
		return VerdictNotSucceeded, fmt.Errorf("%w: %q", ErrUnknownPolicy, policyName)
	}

	verdict, err := s.evaluateAll(ctx, p, resource, reqs)
	if err != nil {
		return VerdictNotSucceeded, fmt.Errorf("policy %s: %w", policyName, err)
	}

	logger.DebugContext(ctx, "policy evaluated",
		slog.String("policy", policyName),
		slog.String("verdict", verdict.String()),
	)
	return verdict, nil
}

func (s *service) Authorize(
	ctx context.Context,
	p identity.Principal,
	resource Resource,
	reqs ...Requirement,
) (Verdict, error) {
	for _, r := range reqs {
		if err := r.validate(); err != nil {
			return VerdictNotSucceeded, err
		}
	}
	return s.evaluateAll(ctx, p, resource, reqs)
}

// evaluateAll ANDs reqs in order and stops at the first one that does not
// succeed. An empty list never succeeds.
func (s *service) evaluateAll(
	ctx context.Context,
	p identity.Principal,
	resource Resource,
	reqs []Requirement,
) (Verdict, error) {
	if len(reqs) == 0 {
		return VerdictNotSucceeded, nil
	}
	for _, r := range reqs {
		verdict, err := s.evaluate(ctx, p, resource, r)
		if err != nil {
			return VerdictNotSucceeded, err
		}
		if !verdict.Succeeded() {
			logger.DebugContext(ctx, "requirement not succeeded",
				slog.String("requirement", r.String()),
			)
			return VerdictNotSucceeded, nil
		}
	}
	return VerdictSucceeded, nil
}

func (s *service) evaluate(
	ctx context.Context,
	p identity.Principal,
	resource Resource,
	r Requirement,
) (Verdict, error) {
	switch r.kind {
	case KindMinimumAge:
		return s.evaluateMinimumAge(ctx, p, r.threshold)
	case KindMinimumCreatedResources:
		return s.evaluateMinimumCreated(ctx, p, r.threshold)
	case KindResourceOperation:
		return s.evaluateResourceOperation(p, r.operation, resource), nil
	case KindClaimIn:
		return evaluateClaimIn(p, r.claimType, r.allowed), nil
	default:
		return VerdictNotSucceeded, fmt.Errorf("%w: %s", ErrInvalidRequirement, r.kind)
	}
}
