// Package dbtest holds test doubles for the db package.
package dbtest

import (
	"context"
	"sync"
)

type ctxKey struct{}

// SerialTx runs every transaction under one mutex, the strongest isolation there is.
// Stores backing in-memory fakes rely on it to model serialized writers.
type SerialTx struct {
	mu sync.Mutex

	statsMu    sync.Mutex
	Committed  int
	RolledBack int
}

func (t *SerialTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(ctxKey{}) != nil {
		return fn(ctx)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	err := fn(context.WithValue(ctx, ctxKey{}, true))

	t.statsMu.Lock()
	defer t.statsMu.Unlock()
	if err != nil {
		t.RolledBack++
	} else {
		t.Committed++
	}
	return err
}

// InTx reports whether ctx was produced by SerialTx.WithinTx.
func InTx(ctx context.Context) bool {
	return ctx.Value(ctxKey{}) != nil
}
