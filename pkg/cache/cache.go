// Package cache stores rendered artifacts between runs.
//
// Rendering a figure to PDF or PNG is the slow end of the pipeline, and a
// composed figure fully determines its output. Artifacts are therefore keyed
// by a hash of the figure's JSON form plus the render options, so a cache
// entry can never outlive a change to the geometry or the styles.
//
// Implementations:
//   - [FileCache]: one file per entry under the user cache directory
//   - [NullCache]: stores nothing; used when caching is disabled
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long a rendered artifact stays valid.
const TTLArtifact = 30 * 24 * time.Hour

// Cache is a byte store with per-entry expiry. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	DPI          float64 `json:"dpi,omitempty"`
	SVGPrecision int     `json:"svg_precision,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered format of a figure.
	ArtifactKey(figureHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the figure hash and options into "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey generates a key for artifact caching.
func (DefaultKeyer) ArtifactKey(figureHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", figureHash, opts)
}
