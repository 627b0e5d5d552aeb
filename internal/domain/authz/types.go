package authz

import "errors"

var (
	// ErrForbidden reports that an identity-bearing requirement was evaluated
	// for a principal without a subject.
	ErrForbidden = errors.New("forbidden")
	// ErrInconsistentPrincipal reports a principal whose subject is present
	// but whose claims are incomplete or malformed.
	ErrInconsistentPrincipal = errors.New("inconsistent principal")
	ErrUnknownPolicy         = errors.New("unknown policy")
	ErrInvalidRequirement    = errors.New("invalid requirement")
)

type Verdict int

const (
	VerdictNotSucceeded Verdict = iota
	VerdictSucceeded
)

func (v Verdict) Succeeded() bool {
	return v == VerdictSucceeded
}

func (v Verdict) String() string {
	if v == VerdictSucceeded {
		return "succeeded"
	}
	return "not_succeeded"
}

func verdictOf(ok bool) Verdict {
	if ok {
		return VerdictSucceeded
	}
	return VerdictNotSucceeded
}

// Resource is a protected record whose creator can be looked up.
type Resource interface {
	// CreatorID returns the subject id stamped at creation, if any.
	CreatorID() (int64, bool)
}
