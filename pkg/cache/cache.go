// Package cache stores rendered figures between runs.
//
// A rendered image depends only on the frame data, the figure description
// and the output options, so it can be reused when none of them changed.
// [Keyer] turns those inputs into a key; a [Cache] stores the bytes.
//
// Three backends are provided:
//   - [FileCache]: sharded JSON entries under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for several machines
//     plotting the same runs
//   - [NullCache]: stores nothing, for --no-cache
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// TTLArtifact is how long rendered figures are kept.
const TTLArtifact = 7 * 24 * time.Hour

// ArtifactKeyOpts are the render settings that change a rendered image.
type ArtifactKeyOpts struct {
	FigureHash string  `json:"figure"`
	Format     string  `json:"format"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Scale      float64 `json:"scale,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a figure rendered from the frame
	// whose contents hash to frameHash.
	ArtifactKey(frameHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "artifact:<sha256>" keys.
type DefaultKeyer struct{}

func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ArtifactKey(frameHash string, opts ArtifactKeyOpts) string {
	return key("artifact", frameHash, opts)
}

// ScopedKeyer prefixes the keys of another Keyer, so several projects can
// share one Redis database.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer scopes inner (or the default keyer if nil) under prefix,
// e.g. "clawplot:shocktube:".
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ArtifactKey(frameHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(frameHash, opts)
}

// NullCache never stores anything. It backs --no-cache and the "none"
// backend.
type NullCache struct{}

func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
