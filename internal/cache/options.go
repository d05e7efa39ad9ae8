package cache

import (
	"bytes"
	"encoding/gob"
)

// options holds per-call settings for cache operations.
type options struct {
	file    string
	ttl     *float64
	refresh func() (bool, error)
}

// Option configures a single cache call.
type Option func(*options)

// WithFile stores or reads the blob at an explicit path instead of the
// default {cache_dir}/{name}.gob.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithTTL sets this entry's time-to-live in hours, overriding the
// configured default. Zero expires the entry immediately.
func WithTTL(hours float64) Option {
	return func(o *options) { o.ttl = &hours }
}

// WithRefresh force-invalidates the entry before lookup when refresh is
// true, guaranteeing a recompute.
func WithRefresh(refresh bool) Option {
	return func(o *options) {
		if refresh {
			o.refresh = func() (bool, error) { return true, nil }
		}
	}
}

// WithRefreshFunc defers the refresh decision to a callable evaluated at
// lookup time. A callable that errors or panics counts as false.
func WithRefreshFunc(fn func() (bool, error)) Option {
	return func(o *options) { o.refresh = fn }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// blobEnvelope wraps cached values so gob can carry arbitrary types behind
// an interface field.
type blobEnvelope struct {
	Value any
}

func encodeBlob(value any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(blobEnvelope{Value: value}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeBlob(blob []byte) (any, error) {
	var env blobEnvelope
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&env); err != nil {
		return nil, err
	}
	return env.Value, nil
}
