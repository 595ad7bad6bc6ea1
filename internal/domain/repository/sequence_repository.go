package repository

import "context"

// SequenceRepository hands out tenant-scoped monotonic sequence values.
// Next must be called inside the transaction that persists whatever the
// value is stamped onto, so an aborted mutation does not burn a serial
// visibly out of order.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
