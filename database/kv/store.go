// Package kv is the durable key-value storage used to mirror device state.
package kv

import "context"

// Store is a string-keyed byte store. A missing key is reported by ok=false,
// never by an error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}

type scopedStore struct {
	inner  Store
	prefix string
}

// Scoped namespaces every key under one device.
func Scoped(inner Store, deviceID string) Store {
	return &scopedStore{inner: inner, prefix: "device:" + deviceID + ":"}
}

func (s *scopedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scopedStore) Set(ctx context.Context, key string, value []byte) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *scopedStore) Delete(ctx context.Context, keys ...string) error {
	scoped := make([]string, len(keys))
	for i, k := range keys {
		scoped[i] = s.prefix + k
	}
	return s.inner.Delete(ctx, scoped...)
}

func (s *scopedStore) ApplyBatch(ctx context.Context, writes []Write) error {
	scoped := make([]Write, len(writes))
	for i, w := range writes {
		w.Key = s.prefix + w.Key
		scoped[i] = w
	}
	return Apply(ctx, s.inner, scoped)
}
