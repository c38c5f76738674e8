package kv

import (
	"context"
	"errors"
	"fmt"
)

// Write is one key change in a batch. Delete removes the key, otherwise Value
// is stored.
type Write struct {
	Key    string
	Value  []byte
	Delete bool
}

// Batcher is implemented by stores that apply several writes as one unit.
type Batcher interface {
	ApplyBatch(ctx context.Context, writes []Write) error
}

// Apply performs writes as one unit. Stores that are not Batchers get the
// writes one at a time, in order; when one fails the earlier ones are put
// back to their previous values.
func Apply(ctx context.Context, store Store, writes []Write) error {
	if len(writes) == 0 {
		return nil
	}
	if b, ok := store.(Batcher); ok {
		return b.ApplyBatch(ctx, writes)
	}

	undo := make([]Write, 0, len(writes))
	for _, w := range writes {
		old, had, err := store.Get(ctx, w.Key)
		if err != nil {
			return errors.Join(fmt.Errorf("read %s: %w", w.Key, err), rollback(ctx, store, undo))
		}
		if err := apply(ctx, store, w); err != nil {
			return errors.Join(fmt.Errorf("write %s: %w", w.Key, err), rollback(ctx, store, undo))
		}
		undo = append(undo, Write{Key: w.Key, Value: old, Delete: !had})
	}
	return nil
}

func apply(ctx context.Context, store Store, w Write) error {
	if w.Delete {
		return store.Delete(ctx, w.Key)
	}
	return store.Set(ctx, w.Key, w.Value)
}

// rollback replays undo newest first.
func rollback(ctx context.Context, store Store, undo []Write) error {
	var errs []error
	for i := len(undo) - 1; i >= 0; i-- {
		if err := apply(ctx, store, undo[i]); err != nil {
			errs = append(errs, fmt.Errorf("rollback %s: %w", undo[i].Key, err))
		}
	}
	return errors.Join(errs...)
}
