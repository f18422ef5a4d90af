// Package kv provides the key/value substrate shared by every engine
// component. A Backend is a plain erroring store; the Adapter wraps one with
// the silent get/set contract the overlay, roster, draft and request layers
// rely on: a missing key, an unparseable value or an unavailable backend all
// read as absence, and a failed write is a no-op. Correctness of value shape
// belongs to callers, never to this layer.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"curator/internal/platform/metrics"
	"curator/pkg/platform/sentinel"
)

// Backend is a single-key atomic store. Get returns sentinel.ErrNotFound
// for missing keys; any other error means the backend could not serve the
// call at all.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Adapter exposes the no-throw contract over a Backend. All engine
// components except the session manager (which needs to observe
// unavailability for its fallback order) go through an Adapter.
type Adapter struct {
	backend Backend
	log     *slog.Logger
	metrics *metrics.Metrics
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger routes swallowed failure logs to the given logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *Adapter) { a.log = log }
}

// WithMetrics counts swallowed failures on the given metrics set.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Adapter) { a.metrics = m }
}

// New wraps backend with the silent adapter contract.
func New(backend Backend, opts ...Option) *Adapter {
	a := &Adapter{backend: backend, log: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Get unmarshals the value stored under key into out and reports whether a
// usable value was found. Misses, deserialization failures and backend
// errors all report false; out is left untouched in every false case.
func (a *Adapter) Get(ctx context.Context, key string, out any) bool {
	raw, err := a.backend.Get(ctx, key)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false
	}
	if err != nil {
		a.swallow("get", key, err)
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		a.swallow("decode", key, err)
		return false
	}
	return true
}

// Set serializes value under key. Serialization and backend failures are
// swallowed; each call is a single atomic key write so no partial state is
// possible.
func (a *Adapter) Set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		a.swallow("encode", key, err)
		return
	}
	if err := a.backend.Set(ctx, key, raw); err != nil {
		a.swallow("set", key, err)
	}
}

// Delete removes key. Failures are swallowed.
func (a *Adapter) Delete(ctx context.Context, key string) {
	if err := a.backend.Delete(ctx, key); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		a.swallow("delete", key, err)
	}
}

func (a *Adapter) swallow(op, key string, err error) {
	if a.metrics != nil {
		a.metrics.StorageFailures.WithLabelValues(op).Inc()
	}
	a.log.Debug("storage failure swallowed", "op", op, "key", key, "err", err)
}
