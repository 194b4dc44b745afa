// Package cache stores dump documents and rendered artifacts by content
// hash.
//
// Backends share the [Cache] interface: [FileCache] for the CLI,
// [MemoryCache] for the long-running inspector, [RedisCache] and
// [MongoCache] for deployments that share a cache between processes, and
// [NullCache] when caching is disabled. [Open] picks one from a [Config].
//
// Keys come from a [Keyer]. The default keyer hashes the snapshot bytes
// and the options that influence the output, so a changed snapshot or a
// different id prefix never hits a stale entry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default lifetimes of cache entries.
const (
	DumpTTL     = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// DumpKeyOpts are the options that change a dump document.
type DumpKeyOpts struct {
	Prefix string `json:"prefix"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// DumpKey is the key of the document built from a snapshot.
	DumpKey(snapshotHash string, opts DumpKeyOpts) string
	// ArtifactKey is the key of one rendering of a document.
	ArtifactKey(dumpHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) DumpKey(snapshotHash string, opts DumpKeyOpts) string {
	return hashKey("dump", snapshotHash, opts)
}

func (DefaultKeyer) ArtifactKey(dumpHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dumpHash, opts)
}
