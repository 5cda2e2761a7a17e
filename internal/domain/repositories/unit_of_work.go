package repositories

import (
	"context"
)

// UnitOfWork groups repository writes into one atomic scope. Callers pass
// the context they receive from Do into every repository call that must
// commit or abort together.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
