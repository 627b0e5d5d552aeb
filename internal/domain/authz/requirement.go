package authz

import (
	"fmt"
	"strings"

	"github.com/astro-web3/restaurant-api/internal/domain/identity"
)

type Kind int

const (
	KindMinimumAge Kind = iota + 1
	KindMinimumCreatedResources
	KindResourceOperation
	KindClaimIn
)

func (k Kind) String() string {
	switch k {
	case KindMinimumAge:
		return "minimum_age"
	case KindMinimumCreatedResources:
		return "minimum_created_resources"
	case KindResourceOperation:
		return "resource_operation"
	case KindClaimIn:
		return "claim_in"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type Operation int

const (
	OperationRead Operation = iota + 1
	OperationCreate
	OperationUpdate
	OperationDelete
)

func (o Operation) String() string {
	switch o {
	case OperationRead:
		return "read"
	case OperationCreate:
		return "create"
	case OperationUpdate:
		return "update"
	case OperationDelete:
		return "delete"
	default:
		return fmt.Sprintf("operation(%d)", int(o))
	}
}

func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(s) {
	case "read":
		return OperationRead, nil
	case "create":
		return OperationCreate, nil
	case "update":
		return OperationUpdate, nil
	case "delete":
		return OperationDelete, nil
	default:
		return 0, fmt.Errorf("%w: unknown operation %q", ErrInvalidRequirement, s)
	}
}

// Requirement is a single condition of a policy. The zero value is invalid;
// use the constructors.
type Requirement struct {
	kind      Kind
	threshold int
	operation Operation
	claimType identity.ClaimType
	allowed   []string
}

func MinimumAge(years int) Requirement {
	return Requirement{kind: KindMinimumAge, threshold: years}
}

func MinimumCreatedResources(count int) Requirement {
	return Requirement{kind: KindMinimumCreatedResources, threshold: count}
}

func ResourceOperation(op Operation) Requirement {
	return Requirement{kind: KindResourceOperation, operation: op}
}

// ClaimIn is satisfied when the principal carries a claim of type t whose
// value is one of allowed, or any claim of type t when allowed is empty.
func ClaimIn(t identity.ClaimType, allowed ...string) Requirement {
	return Requirement{kind: KindClaimIn, claimType: t, allowed: append([]string(nil), allowed...)}
}

func (r Requirement) Kind() Kind { return r.kind }

func (r Requirement) Threshold() int { return r.threshold }

func (r Requirement) Operation() Operation { return r.operation }

// ResourceScoped reports whether the requirement needs the target resource.
func (r Requirement) ResourceScoped() bool {
	return r.kind == KindResourceOperation
}

func (r Requirement) String() string {
	switch r.kind {
	case KindMinimumAge, KindMinimumCreatedResources:
		return fmt.Sprintf("%s(%d)", r.kind, r.threshold)
	case KindResourceOperation:
		return fmt.Sprintf("%s(%s)", r.kind, r.operation)
	case KindClaimIn:
		return fmt.Sprintf("%s(%s: %s)", r.kind, r.claimType, strings.Join(r.allowed, ","))
	default:
		return r.kind.String()
	}
}

func (r Requirement) validate() error {
	switch r.kind {
	case KindMinimumAge, KindMinimumCreatedResources:
		if r.threshold < 0 {
			return fmt.Errorf("%w: %s threshold must not be negative", ErrInvalidRequirement, r.kind)
		}
	case KindResourceOperation:
		if r.operation < OperationRead || r.operation > OperationDelete {
			return fmt.Errorf("%w: %s", ErrInvalidRequirement, r)
		}
	case KindClaimIn:
		if r.claimType == "" {
			return fmt.Errorf("%w: %s needs a claim type", ErrInvalidRequirement, r.kind)
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidRequirement, r.kind)
	}
	return nil
}

// RequirementSpec is the declarative form of a requirement, as read from
// configuration.
type RequirementSpec struct {
	Kind      string
	Threshold int
	Operation string
	ClaimType string
	Values    []string
}

func ParseRequirement(spec RequirementSpec) (Requirement, error) {
	var r Requirement
	switch strings.ToLower(spec.Kind) {
	case "minimum_age":
		r = MinimumAge(spec.Threshold)
	case "minimum_created_resources":
		r = MinimumCreatedResources(spec.Threshold)
	case "resource_operation":
		op, err := ParseOperation(spec.Operation)
		if err != nil {
			return Requirement{}, err
		}
		r = ResourceOperation(op)
	case "claim_in":
		r = ClaimIn(identity.ClaimType(spec.ClaimType), spec.Values...)
	default:
		return Requirement{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidRequirement, spec.Kind)
	}
	if err := r.validate(); err != nil {
		return Requirement{}, err
	}
	return r, nil
}
