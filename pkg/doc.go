// Package pkg provides the core libraries of treedump, a dumper that turns
// live widget trees into builder markup.
//
// # Overview
//
// A widget tree is reached only through an introspection provider: class
// names, property specs, current values, children and packing. The dumper
// walks the tree once, names every widget, drops what the markup would
// restore anyway and writes an <interface> document. The pkg directory is
// organized into four areas:
//
//  1. Domain: [introspect], [toolkit], [dump]
//  2. Input and output: [snapshot], [render], [render/nodelink]
//  3. Orchestration: [pipeline], [cache], [server], [script]
//  4. Support: [errors], [observability], [config], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	Snapshot file (toml, yaml, json)
//	         ↓
//	    [snapshot] package (decode + build a live tree)
//	         ↓
//	    [toolkit] package (widgets behind an [introspect.Provider])
//	         ↓
//	    [dump] package (traversal + markup)
//	         ↓
//	    xml / json / dot / svg / png / pdf
//
// # Quick Start
//
//	snap, _ := snapshot.Load("form.toml")
//	root, _ := snap.Build()
//
//	d := dump.New(toolkit.Provider{}, dump.Options{})
//	_ = d.Dump(os.Stdout, root)
//
// # Main Packages
//
// [introspect] - The provider interface every toolkit adapter implements,
// together with property specs, values, enum and flags classes.
//
// [toolkit] - An in-memory widget toolkit with a class hierarchy, packing
// properties and the button label rules. It is the provider the CLI and
// server use.
//
// [dump] - The traversal: synthetic ids, the ignored-property table,
// default elision, enum and flags rendering, and the markup writer.
//
// [snapshot] - Tree descriptions in TOML, YAML or JSON, built into live
// widgets.
//
// [render/nodelink] - Node-link diagrams of a dump through Graphviz.
//
// [render] - SVG to PDF and PNG conversion.
//
// [pipeline] - Build, dump and render with caching, shared by the CLI and
// the HTTP inspector.
//
// [cache] - File, memory, Redis and MongoDB backends keyed by content hash.
//
// [server] - HTTP inspector with a websocket stream of the live markup.
//
// [script] - The scripting bridge that runs Go source against a live tree.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/dump/...               # Specific package
//	go test -run Example                 # Examples only
//
// Redis and MongoDB cache tests run when TREEDUMP_TEST_REDIS_URL or
// TREEDUMP_TEST_MONGO_URI is set.
//
// [introspect]: https://pkg.go.dev/github.com/matzehuels/treedump/pkg/introspect
// [toolkit]: https://pkg.go.dev/github.com/matzehuels/treedump/pkg/toolkit
// [dump]: https://pkg.go.dev/github.com/matzehuels/treedump/pkg/dump
// [snapshot]: https://pkg.go.dev/github.com/matzehuels/treedump/pkg/snapshot
// [render]: https://pkg.go.dev/github.com/matzehuels/treedump/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/treedump/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/treedump/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/treedump/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/treedump/pkg/server
// [script]: https://pkg.go.dev/github.com/matzehuels/treedump/pkg/script
// [errors]: https://pkg.go.dev/github.com/matzehuels/treedump/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/treedump/pkg/observability
// [config]: https://pkg.go.dev/github.com/matzehuels/treedump/pkg/config
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/treedump/pkg/buildinfo
//
// [introspect.Provider]: https://pkg.go.dev/github.com/matzehuels/treedump/pkg/introspect#Provider
package pkg
