package kv

import (
	"context"
	"errors"
	"time"

	"reminders/internal/core/domain"
	"reminders/internal/core/port"
	"reminders/pkg/tracing"
)

// InstrumentedStore wraps a store with a span and a metric per call.
type InstrumentedStore struct {
	next    port.KeyValueStore
	system  string
	metrics port.Metrics
}

var _ port.KeyValueStore = (*InstrumentedStore)(nil)

func Instrument(next port.KeyValueStore, system string, metrics port.Metrics) *InstrumentedStore {
	return &InstrumentedStore{next: next, system: system, metrics: metrics}
}

func (s *InstrumentedStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := s.observe(ctx, "get", key, func(ctx context.Context) error {
		v, err := s.next.Get(ctx, key)
		value = v
		return err
	})

	return value, err
}

func (s *InstrumentedStore) Put(ctx context.Context, key string, value []byte) error {
	return s.observe(ctx, "put", key, func(ctx context.Context) error {
		return s.next.Put(ctx, key, value)
	})
}

func (s *InstrumentedStore) Delete(ctx context.Context, key string) error {
	return s.observe(ctx, "delete", key, func(ctx context.Context) error {
		return s.next.Delete(ctx, key)
	})
}

func (s *InstrumentedStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	err := s.observe(ctx, "list", prefix, func(ctx context.Context) error {
		k, err := s.next.List(ctx, prefix)
		keys = k
		return err
	})

	return keys, err
}

// Ping forwards to the wrapped store when it supports health checks.
func (s *InstrumentedStore) Ping(ctx context.Context) error {
	if p, ok := s.next.(port.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *InstrumentedStore) observe(ctx context.Context, op, key string, fn func(context.Context) error) error {
	start := time.Now()
	var callErr error

	tracing.StoreSpanWrapper(ctx, s.system, op, key, func(ctx context.Context) error {
		callErr = fn(ctx)

		// A miss is an answer, not a failure.
		if errors.Is(callErr, domain.ErrNotFound) {
			return nil
		}
		return callErr
	})

	metricErr := callErr
	if errors.Is(metricErr, domain.ErrNotFound) {
		metricErr = nil
	}
	s.metrics.RecordStoreOperation(ctx, op, time.Since(start), metricErr)

	return callErr
}
