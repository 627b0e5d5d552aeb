package authz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/astro-web3/restaurant-api/internal/domain/identity"
	"github.com/astro-web3/restaurant-api/pkg/logger"
)

// subjectOf extracts the numeric subject id. A principal without a subject is
// forbidden; one whose subject is not a number is inconsistent.
func subjectOf(p identity.Principal) (int64, error) {
	id, err := p.SubjectID()
	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, identity.ErrAnonymous):
		return 0, ErrForbidden
	default:
		return 0, fmt.Errorf("%w: %w", ErrInconsistentPrincipal, err)
	}
}

func (s *service) evaluateMinimumAge(ctx context.Context, p identity.Principal, threshold int) (Verdict, error) {
	subjectID, err := subjectOf(p)
	if err != nil {
		return VerdictNotSucceeded, err
	}

	raw, ok := p.FindFirst(identity.ClaimDateOfBirth)
	if !ok {
		return VerdictNotSucceeded, fmt.Errorf("%w: subject %d has no %s claim",
			ErrInconsistentPrincipal, subjectID, identity.ClaimDateOfBirth)
	}
	dob, err := time.Parse(identity.DateLayout, raw)
	if err != nil {
		return VerdictNotSucceeded, fmt.Errorf("%w: %s %q: %w",
			ErrInconsistentPrincipal, identity.ClaimDateOfBirth, raw, err)
	}

	today := dateOf(s.clock.Now())
	ok = !addYears(dob, threshold).After(today)

	logger.InfoContext(ctx, "minimum age evaluated",
		slog.Int64("subject_id", subjectID),
		slog.String("date_of_birth", raw),
		slog.Int("threshold", threshold),
		slog.Bool("succeeded", ok),
	)
	return verdictOf(ok), nil
}

func (s *service) evaluateMinimumCreated(ctx context.Context, p identity.Principal, threshold int) (Verdict, error) {
	subjectID, err := subjectOf(p)
	if err != nil {
		return VerdictNotSucceeded, err
	}

	count, err := s.oracle.CountCreatedBy(ctx, subjectID)
	if err != nil {
		return VerdictNotSucceeded, fmt.Errorf("count resources created by %d: %w", subjectID, err)
	}

	logger.DebugContext(ctx, "minimum created resources evaluated",
		slog.Int64("subject_id", subjectID),
		slog.Int("count", count),
		slog.Int("threshold", threshold),
	)
	return verdictOf(count >= threshold), nil
}

// evaluateResourceOperation checks every condition so that a principal
// missing one claim can still pass through another.
func (s *service) evaluateResourceOperation(p identity.Principal, op Operation, resource Resource) Verdict {
	benign := op == OperationRead || op == OperationCreate

	role, _ := p.Role()
	admin := role == identity.RoleAdmin

	owner := false
	if id, err := p.SubjectID(); err == nil {
		owner = s.oracle.IsCreator(resource, id)
	}

	return verdictOf(benign || admin || owner)
}

func evaluateClaimIn(p identity.Principal, t identity.ClaimType, allowed []string) Verdict {
	return verdictOf(p.HasClaim(t, allowed...))
}

// dateOf returns the UTC calendar date of t at midnight, the form time.Parse
// gives dates of birth.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// addYears adds calendar years. February 29 lands on February 28 when the
// target year is not a leap year, instead of rolling into March.
func addYears(t time.Time, years int) time.Time {
	y, m, d := t.Date()
	target := y + years
	if m == time.February && d == 29 && !isLeap(target) {
		d = 28
	}
	return time.Date(target, m, d, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
