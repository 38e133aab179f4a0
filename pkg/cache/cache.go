// Package cache stores generated layouts and rendered artifacts.
//
// Generation is deterministic for a given seed, room count, palette and
// catalog, so results can be cached by a hash of those inputs. Three
// backends implement Cache:
//
//   - FileCache: one JSON file per entry under an XDG cache directory (CLI)
//   - RedisCache: a shared redis instance (HTTP server)
//   - NullCache: caching disabled
//
// Keys are produced by a Keyer; ScopedKeyer namespaces them.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Default time-to-live for cached entries.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiration.
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts holds the generation inputs that affect a layout.
type LayoutKeyOpts struct {
	Rooms      int      `json:"rooms"`
	Seed       uint64   `json:"seed"`
	Palette    []string `json:"palette"`
	MaxRetries int      `json:"max_retries"`
}

// ArtifactKeyOpts holds the render inputs that affect an artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer produces cache keys.
type Keyer interface {
	// LayoutKey keys a layout by the hash of its footprint catalog and the
	// generation options.
	LayoutKey(catalogHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the hash of its layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unprefixed keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(catalogHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", catalogHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return fmt.Sprintf("artifact:%s:%s", opts.Format, Hash([]byte(layoutHash)))
}
