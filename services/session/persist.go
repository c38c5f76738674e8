package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"svdiagnostic/database/kv"
	"svdiagnostic/models"
)

// Durable storage keys, one per persisted entity.
const (
	KeyUser          = "sv_diagnostic_user"
	KeyActiveBooking = "sv_diagnostic_booking"
	KeyHistory       = "sv_diagnostic_history"
	KeyFeedback      = "sv_diagnostic_feedback"
	KeyNewCustomer   = "sv_diagnostic_new_cust"
	KeyAppInstalled  = "sv_diagnostic_app_installed"
)

// StorageKeys lists every durable key. Persist writes them in this order; the
// first-booking flag leads so that a store which loses later writes never
// pairs a recorded booking with an unspent discount.
func StorageKeys() []string {
	return []string{KeyNewCustomer, KeyUser, KeyActiveBooking, KeyHistory, KeyFeedback, KeyAppInstalled}
}

// durableValues encodes the persisted part of s, keyed by storage key.
func durableValues(s State) (map[string][]byte, error) {
	values := map[string]any{
		KeyUser:          s.User,
		KeyActiveBooking: s.ActiveBooking,
		KeyHistory:       s.History,
		KeyFeedback:      s.FeedbackSubmitted,
		KeyNewCustomer:   s.IsNewCustomer,
	}
	out := make(map[string][]byte, len(values)+1)
	for k, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", k, err)
		}
		out[k] = b
	}
	// Only its presence matters.
	if s.AppInstalled {
		out[KeyAppInstalled] = []byte("true")
	}
	return out, nil
}

// Hydrate rebuilds a device's state from storage. Absent keys keep defaults.
func Hydrate(ctx context.Context, store kv.Store) (State, error) {
	s := DefaultState()

	targets := []struct {
		key string
		dst any
	}{
		{KeyUser, &s.User},
		{KeyActiveBooking, &s.ActiveBooking},
		{KeyHistory, &s.History},
		{KeyFeedback, &s.FeedbackSubmitted},
		{KeyNewCustomer, &s.IsNewCustomer},
	}
	for _, t := range targets {
		raw, ok, err := store.Get(ctx, t.key)
		if err != nil {
			return State{}, fmt.Errorf("hydrate %s: %w", t.key, err)
		}
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, t.dst); err != nil {
			return State{}, fmt.Errorf("hydrate %s: %w", t.key, err)
		}
	}
	if s.History == nil {
		s.History = []models.Booking{}
	}

	if _, ok, err := store.Get(ctx, KeyAppInstalled); err != nil {
		return State{}, fmt.Errorf("hydrate %s: %w", KeyAppInstalled, err)
	} else if ok {
		s.AppInstalled = true
	}
	return s, nil
}

// Persist writes the durable keys whose value differs between prev and next
// as one batch. Either every changed key is stored or none is.
func Persist(ctx context.Context, store kv.Store, prev, next State) error {
	before, err := durableValues(prev)
	if err != nil {
		return err
	}
	after, err := durableValues(next)
	if err != nil {
		return err
	}

	var writes []kv.Write
	for _, k := range StorageKeys() {
		nv, present := after[k]
		ov, was := before[k]
		switch {
		case present && (!was || !bytes.Equal(ov, nv)):
			writes = append(writes, kv.Write{Key: k, Value: nv})
		case !present && was:
			writes = append(writes, kv.Write{Key: k, Delete: true})
		}
	}
	if err := kv.Apply(ctx, store, writes); err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}

// Clear removes every durable key.
func Clear(ctx context.Context, store kv.Store) error {
	if err := store.Delete(ctx, StorageKeys()...); err != nil {
		return fmt.Errorf("clear storage: %w", err)
	}
	return nil
}
