// Package cache stores serialized layout results keyed by the scene and
// options that produced them.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for `hyprtile serve` instances
//   - [NullCache]: disables caching
//
// Keys come from a [Keyer] so callers never assemble key strings by hand.
package cache

import (
	"context"
	"time"
)

// TTLs per entry kind.
const (
	TTLResult = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// ResultKeyOpts are the options that change a layout result for the same
// scene.
type ResultKeyOpts struct {
	Passes     int    `json:"passes"`
	ConfigHash string `json:"config_hash"`
	Workspace  string `json:"workspace,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey keys a pipeline result by scene hash and options.
	ResultKey(sceneHash string, opts ResultKeyOpts) string
}

// DefaultKeyer produces "result:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ResultKey(sceneHash string, opts ResultKeyOpts) string {
	return hashKey("result", sceneHash, opts)
}
