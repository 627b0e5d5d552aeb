package authz

import "context"

// CreationCounter counts the resources created by a subject.
type CreationCounter interface {
	CountCreatedBy(ctx context.Context, subjectID int64) (int, error)
}

// OwnershipOracle answers creator questions against committed state.
type OwnershipOracle interface {
	CreationCounter
	IsCreator(resource Resource, subjectID int64) bool
}

type ownershipOracle struct {
	counter CreationCounter
}

func NewOwnershipOracle(counter CreationCounter) OwnershipOracle {
	return &ownershipOracle{counter: counter}
}

func (o *ownershipOracle) CountCreatedBy(ctx context.Context, subjectID int64) (int, error) {
	return o.counter.CountCreatedBy(ctx, subjectID)
}

func (o *ownershipOracle) IsCreator(resource Resource, subjectID int64) bool {
	if resource == nil {
		return false
	}
	creator, ok := resource.CreatorID()
	return ok && creator == subjectID
}
