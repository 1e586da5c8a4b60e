package repositories

import (
	"context"
)

// UnitOfWork defines the interface for atomic operations. All repository
// calls made with the context passed to fn share one transaction; fn
// returning an error rolls everything back. Nested Do calls join the
// ambient transaction.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
