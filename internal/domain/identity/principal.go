// Package identity models an authenticated caller as a set of claims.
package identity

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"
)

type ClaimType string

const (
	ClaimSubjectID   ClaimType = "subject_id"
	ClaimName        ClaimType = "name"
	ClaimRole        ClaimType = "role"
	ClaimDateOfBirth ClaimType = "date_of_birth"
	ClaimNationality ClaimType = "nationality"
)

const (
	RoleUser    = "User"
	RoleManager = "Manager"
	RoleAdmin   = "Admin"
)

// DateLayout is the wire format of the date_of_birth claim.
const DateLayout = time.DateOnly

var (
	ErrAnonymous      = errors.New("principal has no subject")
	ErrMalformedClaim = errors.New("malformed claim")
)

type Claim struct {
	Type  ClaimType
	Value string
}

// Principal is an immutable multi-map of claims. Several values may share a
// type; lookups return the first value in insertion order.
type Principal struct {
	order  []ClaimType
	values map[ClaimType][]string
}

func NewPrincipal(claims ...Claim) Principal {
	p := Principal{values: make(map[ClaimType][]string, len(claims))}
	for _, c := range claims {
		if _, seen := p.values[c.Type]; !seen {
			p.order = append(p.order, c.Type)
		}
		p.values[c.Type] = append(p.values[c.Type], c.Value)
	}
	return p
}

// Anonymous returns a principal without any claims.
func Anonymous() Principal {
	return Principal{}
}

func (p Principal) FindFirst(t ClaimType) (string, bool) {
	vs := p.values[t]
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func (p Principal) FindAll(t ClaimType) []string {
	return slices.Clone(p.values[t])
}

// HasClaim reports whether any claim of type t carries one of allowed.
// With no allowed values it only checks presence.
func (p Principal) HasClaim(t ClaimType, allowed ...string) bool {
	vs := p.values[t]
	if len(allowed) == 0 {
		return len(vs) > 0
	}
	for _, v := range vs {
		if slices.Contains(allowed, v) {
			return true
		}
	}
	return false
}

func (p Principal) IsAuthenticated() bool {
	_, ok := p.FindFirst(ClaimSubjectID)
	return ok
}

// SubjectID parses the subject_id claim.
func (p Principal) SubjectID() (int64, error) {
	raw, ok := p.FindFirst(ClaimSubjectID)
	if !ok {
		return 0, ErrAnonymous
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrMalformedClaim, ClaimSubjectID, raw)
	}
	return id, nil
}

func (p Principal) Role() (string, bool) {
	return p.FindFirst(ClaimRole)
}

func (p Principal) IsInRole(roles ...string) bool {
	return p.HasClaim(ClaimRole, roles...) && len(roles) > 0
}

// Claims returns every claim, grouped by type in first-seen order.
func (p Principal) Claims() []Claim {
	out := make([]Claim, 0, len(p.values))
	for _, t := range p.order {
		for _, v := range p.values[t] {
			out = append(out, Claim{Type: t, Value: v})
		}
	}
	return out
}
