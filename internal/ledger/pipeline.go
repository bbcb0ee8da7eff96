// Package ledger holds the posting rules for movements and transfers:
// ownership resolution, payload validation with sign normalization, and
// duplicate/no-op detection. It has no storage code of its own; lookups go
// through the Directory and Finder interfaces.
package ledger

import (
	"context"

	apperrors "github.com/Yns1000/haybank/internal/errors"
)

// Step is one link of a validation chain. A non-nil error stops the chain.
type Step func(ctx context.Context) error

// Run executes steps in order and returns the first error. Nothing after a
// failing step runs, so a chain ending in a write performs no write on error.
func Run(ctx context.Context, steps ...Step) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Check lifts a context-free validation into a Step.
func Check(fn func() error) Step {
	return func(context.Context) error {
		return fn()
	}
}
