package authz

import (
	"fmt"
	"maps"
	"slices"

	"github.com/astro-web3/restaurant-api/internal/domain/identity"
)

const (
	PolicyIsAdult        = "IsAdult"
	PolicyIsCreator      = "IsCreator"
	PolicyHasNationality = "HasNationality"
	PolicyIsManagement   = "IsManagement"
)

type Policy struct {
	Name         string
	Requirements []Requirement
}

// DefaultPolicies are installed when configuration does not define any.
func DefaultPolicies() []Policy {
	return []Policy{
		{Name: PolicyIsAdult, Requirements: []Requirement{MinimumAge(18)}},
		{Name: PolicyIsCreator, Requirements: []Requirement{MinimumCreatedResources(2)}},
		{Name: PolicyHasNationality, Requirements: []Requirement{
			ClaimIn(identity.ClaimNationality, "Polish", "Czech"),
		}},
		{Name: PolicyIsManagement, Requirements: []Requirement{
			ClaimIn(identity.ClaimRole, identity.RoleAdmin, identity.RoleManager),
		}},
	}
}

// Registry maps policy names to requirements. It is built once and never
// modified, so concurrent reads need no locking.
type Registry struct {
	policies map[string][]Requirement
}

func NewRegistry(policies ...Policy) (*Registry, error) {
	reg := &Registry{policies: make(map[string][]Requirement, len(policies))}
	for _, p := range policies {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: policy without a name", ErrInvalidRequirement)
		}
		if _, dup := reg.policies[p.Name]; dup {
			return nil, fmt.Errorf("%w: policy %q defined twice", ErrInvalidRequirement, p.Name)
		}
		if len(p.Requirements) == 0 {
			return nil, fmt.Errorf("%w: policy %q has no requirements", ErrInvalidRequirement, p.Name)
		}
		for _, r := range p.Requirements {
			if err := r.validate(); err != nil {
				return nil, fmt.Errorf("policy %q: %w", p.Name, err)
			}
		}
		reg.policies[p.Name] = slices.Clone(p.Requirements)
	}
	return reg, nil
}

func (r *Registry) Lookup(name string) ([]Requirement, bool) {
	reqs, ok := r.policies[name]
	return reqs, ok
}

func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.policies))
}
