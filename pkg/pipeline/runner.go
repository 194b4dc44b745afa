package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treedump/pkg/cache"
	"github.com/matzehuels/treedump/pkg/dump"
	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/observability"
	"github.com/matzehuels/treedump/pkg/snapshot"
	"github.com/matzehuels/treedump/pkg/toolkit"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner with different options as long as
// each live tree passed to Render has a single owner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL overrides the default lifetime of cache entries when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → dump → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	data, err := opts.snapshotData()
	if err != nil {
		return nil, err
	}

	result := &Result{
		SnapshotHash: cache.Hash(append([]byte(opts.Format+"\n"), data...)),
	}

	// Stage 1+2: Build and dump
	doc, hit, err := r.DumpWithCacheInfo(ctx, result.SnapshotHash, data, opts, &result.Stats)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.CacheInfo.DumpHit = hit
	result.Stats.Widgets = doc.Stats.Widgets
	result.Stats.Properties = doc.Stats.Properties

	r.Logger.Info("dumped tree",
		"widgets", doc.Stats.Widgets,
		"properties", doc.Stats.Properties,
		"cached", hit,
		"duration", result.Stats.BuildTime+result.Stats.DumpTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// DumpWithCacheInfo returns the document of a snapshot, from cache when
// possible, and whether it was a cache hit. Timings of a fresh build are
// recorded in stats when it is non-nil.
func (r *Runner) DumpWithCacheInfo(ctx context.Context, snapshotHash string, data []byte, opts Options, stats *Stats) (*dump.Document, bool, error) {
	key := r.Keyer.DumpKey(snapshotHash, opts.DumpKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			doc, err := dump.ReadJSON(bytes.NewReader(cached))
			if err == nil && doc.Root != nil {
				hooks.OnCacheHit(ctx, "dump")
				return doc, true, nil
			}
			// Unreadable entries are rebuilt and overwritten
		}
		hooks.OnCacheMiss(ctx, "dump")
	}

	source := opts.source()
	dumpHooks := observability.Dump()

	dumpHooks.OnBuildStart(ctx, source)
	buildStart := time.Now()
	root, err := buildTree(opts.Format, data)
	buildTime := time.Since(buildStart)
	widgets := 0
	if root != nil {
		toolkit.Walk(root, func(*toolkit.Widget, int) bool { widgets++; return true })
	}
	dumpHooks.OnBuildComplete(ctx, source, widgets, buildTime, err)
	if err != nil {
		return nil, false, fmt.Errorf("build: %w", err)
	}

	dumpStart := time.Now()
	doc, err := r.DumpTree(ctx, source, root, opts)
	if err != nil {
		return nil, false, err
	}
	if stats != nil {
		stats.BuildTime = buildTime
		stats.DumpTime = time.Since(dumpStart)
	}

	var buf bytes.Buffer
	if err := dump.WriteJSON(&buf, doc); err == nil {
		if err := r.Cache.Set(ctx, key, buf.Bytes(), r.ttl(cache.DumpTTL)); err == nil {
			hooks.OnCacheSet(ctx, "dump", buf.Len())
		} else {
			r.Logger.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return doc, false, nil
}

// DumpTree traverses a live tree. source names the tree in hook events.
func (r *Runner) DumpTree(ctx context.Context, source string, root *toolkit.Widget, opts Options) (*dump.Document, error) {
	r.applyLogger(&opts)
	opts.SetRenderDefaults()

	hooks := observability.Dump()
	hooks.OnDumpStart(ctx, source)
	start := time.Now()

	var doc *dump.Document
	var err error
	if root == nil {
		err = errors.New(errors.ErrCodeInvalidInput, "nil root widget")
	} else {
		d := dump.New(toolkit.Provider{}, dump.Options{Prefix: opts.Prefix, Logger: opts.Logger})
		doc, err = d.Build(root)
	}

	widgets := 0
	if doc != nil {
		widgets = doc.Stats.Widgets
	}
	hooks.OnDumpComplete(ctx, source, widgets, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("dump: %w", err)
	}
	return doc, nil
}

// RenderWithCacheInfo renders doc with caching and reports whether every
// artifact came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *dump.Document, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := dump.WriteJSON(&buf, doc); err != nil {
		return nil, false, fmt.Errorf("serialize document for cache key: %w", err)
	}
	docHash := cache.Hash(buf.Bytes())
	hooks := observability.Cache()

	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				hooks.OnCacheMiss(ctx, "artifact")
				break
			}
			hooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(uniq(opts.Formats)) {
			return artifacts, true, nil
		}
	}

	rendered, err := RenderDocument(ctx, doc, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.ArtifactTTL)); err == nil {
			hooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Render dumps and renders a live tree without caching. Live trees change
// between calls, so their output is never stored.
func (r *Runner) Render(ctx context.Context, root *toolkit.Widget, opts Options) (*dump.Document, map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, nil, err
	}
	doc, err := r.DumpTree(ctx, "live", root, opts)
	if err != nil {
		return nil, nil, err
	}
	artifacts, err := RenderDocument(ctx, doc, opts)
	if err != nil {
		return nil, nil, err
	}
	return doc, artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func buildTree(format snapshot.Format, data []byte) (*toolkit.Widget, error) {
	snap, err := snapshot.DecodeBytes(format, data)
	if err != nil {
		return nil, err
	}
	return snap.Build()
}

func (o *Options) snapshotData() ([]byte, error) {
	if len(o.Data) > 0 {
		return o.Data, nil
	}
	data, err := os.ReadFile(o.Snapshot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "snapshot %s", o.Snapshot)
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return data, nil
}

func (o *Options) source() string {
	if o.Snapshot != "" {
		return o.Snapshot
	}
	return "<memory>"
}

func uniq(formats []string) map[string]bool {
	seen := make(map[string]bool, len(formats))
	for _, f := range formats {
		seen[f] = true
	}
	return seen
}
