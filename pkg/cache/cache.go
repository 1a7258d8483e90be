// Package cache stores planning results between runs.
//
// Planning a full map evaluates 56 candidates; the cache remembers only the
// winning plan.Candidate per coverage hash, plus rendered artifacts keyed by
// the plan they were drawn from. Backends:
//   - [FileCache]: one JSON file per entry under the XDG cache directory
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: disables caching
//
// Keys come from a [Keyer]; [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// TTLs for cached values.
const (
	PlanTTL     = 30 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// PlanVersion is mixed into every plan key. Bump it when tiling or scoring
// changes so stale winners are not reused.
const PlanVersion = 1

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// PlanKey keys the winning candidate of a coverage map.
	PlanKey(coverageHash string) string

	// ArtifactKey keys a rendered artifact of a plan.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that change an artifact.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Scale   int    `json:"scale,omitempty"`
	Caption bool   `json:"caption,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PlanKey returns "plan:<sha256>".
func (k *DefaultKeyer) PlanKey(coverageHash string) string {
	return hashKey("plan", coverageHash, PlanVersion)
}

// ArtifactKey returns "artifact:<sha256>".
func (k *DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
