package domain

import "context"

// UnitOfWork runs fn in a transaction carried by ctx. Services emit events
// only after WithinTx returns nil, so listeners never observe rolled back
// state.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
