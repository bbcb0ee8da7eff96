package ledger

import (
	"context"

	apperrors "github.com/Yns1000/haybank/internal/errors"
)

// Kind names a resource that can be owned by a user.
type Kind string

const (
	KindAccount      Kind = "account"
	KindCounterparty Kind = "counterparty"
	KindMovement     Kind = "movement"
	KindTransfer     Kind = "transfer"
)

// Access distinguishes reading a resource from mutating it. It only matters
// for transfers, which have two owning accounts.
type Access int

const (
	Read Access = iota
	Write
)

// Ownership is the outcome of resolving a resource against a user.
type Ownership int

const (
	NotFound Ownership = iota
	NotOwned
	Owned
)

func (o Ownership) String() string {
	switch o {
	case Owned:
		return "owned"
	case NotOwned:
		return "not_owned"
	default:
		return "not_found"
	}
}

// Directory answers ownership questions against the store.
type Directory interface {
	// Owners returns the ids of the users owning the resource. A transfer
	// yields one entry per leg. found is false when the resource is absent.
	Owners(ctx context.Context, kind Kind, id uint) (owners []uint, found bool, err error)
	// CountOwnedAccounts counts how many of accountIDs belong to userID.
	CountOwnedAccounts(ctx context.Context, userID uint, accountIDs []uint) (int64, error)
}

// Resolver decides whether a user may read or write a resource.
type Resolver struct {
	dir Directory
}

// NewResolver creates a Resolver backed by dir.
func NewResolver(dir Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve reports whether userID owns the resource. Read access needs at
// least one owner to match; write access needs every owner to match.
func (r *Resolver) Resolve(ctx context.Context, userID uint, kind Kind, id uint, access Access) (Ownership, error) {
	owners, found, err := r.dir.Owners(ctx, kind, id)
	if err != nil {
		return NotFound, err
	}
	if !found || len(owners) == 0 {
		return NotFound, nil
	}

	matched := 0
	for _, owner := range owners {
		if owner == userID {
			matched++
		}
	}

	switch {
	case access == Write && matched == len(owners):
		return Owned, nil
	case access == Read && matched > 0:
		return Owned, nil
	}
	return NotOwned, nil
}

// Require is Resolve turned into an error: the resource's not-found error
// when it is absent, ErrForbidden when it belongs to someone else.
func (r *Resolver) Require(ctx context.Context, userID uint, kind Kind, id uint, access Access) error {
	ownership, err := r.Resolve(ctx, userID, kind, id, access)
	if err != nil {
		return err
	}
	switch ownership {
	case NotFound:
		return NotFoundError(kind)
	case NotOwned:
		return apperrors.ErrForbidden
	}
	return nil
}

// Step wraps Require for use in a pipeline.
func (r *Resolver) Step(userID uint, kind Kind, id uint, access Access) Step {
	return func(ctx context.Context) error {
		return r.Require(ctx, userID, kind, id, access)
	}
}

// RequireAccounts checks, with a single membership query, that every
// distinct id in accountIDs belongs to userID.
func (r *Resolver) RequireAccounts(ctx context.Context, userID uint, accountIDs ...uint) error {
	distinct := make([]uint, 0, len(accountIDs))
	seen := make(map[uint]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	owned, err := r.dir.CountOwnedAccounts(ctx, userID, distinct)
	if err != nil {
		return err
	}
	if owned < int64(len(distinct)) {
		return apperrors.WithMessage(apperrors.ErrForbidden, "accounts do not belong to the current user")
	}
	return nil
}

// NotFoundError returns the not-found error for a resource kind.
func NotFoundError(kind Kind) *apperrors.AppError {
	switch kind {
	case KindAccount:
		return apperrors.ErrAccountNotFound
	case KindCounterparty:
		return apperrors.ErrCounterpartyNotFound
	case KindMovement:
		return apperrors.ErrMovementNotFound
	case KindTransfer:
		return apperrors.ErrTransferNotFound
	}
	return apperrors.ErrNotFound
}
