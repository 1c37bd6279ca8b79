package port

import "context"

type IdempotencyStore interface {
	// Reserve marks a submission key as in use, returns false if already reserved
	Reserve(ctx context.Context, key string) (bool, error)

	// Release frees a reserved key so a failed submission can be retried
	Release(ctx context.Context, key string) error
}
