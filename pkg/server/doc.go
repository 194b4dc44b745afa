// Package server exposes one live widget tree over HTTP.
//
// Routes:
//
//	GET  /healthz                    liveness and version
//	GET  /api/v1/dump?format=xml     dump the live tree (xml, json, dot, svg, png, pdf)
//	POST /api/v1/eval                run a script against the tree
//	GET  /api/v1/watch               websocket stream of markup after every change
//
// Every request that touches the tree holds the server's tree lock, so the
// dumper and the scripting bridge never see the tree concurrently. Watchers
// get the current markup on connect and again after each eval or
// [Server.SetRoot].
package server
