package services

import "context"

// TxnRunner runs a function inside a storage transaction so that
// multi-document mutations are all-or-nothing. pkg/mongodb.Client satisfies
// this; tests substitute a pass-through.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NopTxnRunner runs the function directly, with no transactional boundary.
// Used by tests against in-memory repositories.
type NopTxnRunner struct{}

// WithTransaction runs fn on the caller's context
func (NopTxnRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
