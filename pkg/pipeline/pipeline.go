// Package pipeline runs the snapshot → tree → dump → render pipeline.
//
// The CLI, the HTTP inspector and the file watcher all go through this
// package, so caching and output formats behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: decode a snapshot (TOML, YAML or JSON) into a live widget tree
//  2. Dump: traverse the tree into a [dump.Document]
//  3. Render: produce output in various formats (xml, json, dot, svg, png, pdf)
//
// Build and Dump are cached together under the snapshot's content hash;
// each rendered format is cached under the hash of the document.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Snapshot: "form.toml",
//	    Formats:  []string{"xml", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	markup := result.Artifacts["xml"]
//
// A live tree is rendered without caching:
//
//	artifacts, err := runner.Render(ctx, root, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treedump/pkg/cache"
	"github.com/matzehuels/treedump/pkg/dump"
	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/snapshot"
)

// Format constants for output formats.
const (
	FormatXML  = "xml"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// DefaultPNGScale is the resolution multiplier of png output.
const DefaultPNGScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatXML:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// Extension returns the file extension used for format.
func Extension(format string) string {
	return "." + format
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Snapshot is the path of the snapshot file. Ignored when Data is set.
	Snapshot string `json:"snapshot,omitempty"`
	// Data is an in-memory snapshot.
	Data []byte `json:"-"`
	// Format of the snapshot. Derived from the Snapshot extension when empty.
	Format snapshot.Format `json:"format,omitempty"`

	Formats  []string `json:"formats,omitempty"`
	Prefix   string   `json:"prefix,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the dumped tree.
	Document *dump.Document

	// SnapshotHash is the content hash of the snapshot bytes.
	SnapshotHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Widgets    int
	Properties int
	BuildTime  time.Duration
	DumpTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DumpHit   bool // Whether the document came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: xml, json, dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Data) == 0 && o.Snapshot == "" {
		return errors.New(errors.ErrCodeInvalidInput, "snapshot path or data is required")
	}
	if o.Format == "" {
		if o.Snapshot == "" {
			return errors.New(errors.ErrCodeInvalidInput, "snapshot format is required for in-memory data")
		}
		f, err := snapshot.FormatFromPath(o.Snapshot)
		if err != nil {
			return err
		}
		o.Format = f
	}
	f, err := snapshot.ParseFormat(string(o.Format))
	if err != nil {
		return err
	}
	o.Format = f
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatXML}
	}
	if o.Prefix == "" {
		o.Prefix = dump.DefaultPrefix
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "png scale must be positive")
	}
	return ValidateFormats(o.Formats)
}

// DumpKeyOpts returns cache key options for the dumped document.
func (o *Options) DumpKeyOpts() cache.DumpKeyOpts {
	return cache.DumpKeyOpts{Prefix: o.Prefix}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatDOT, FormatSVG, FormatPNG, FormatPDF:
		opts.Detailed = o.Detailed
	}
	if format == FormatPNG {
		opts.Scale = o.PNGScale
	}
	return opts
}
