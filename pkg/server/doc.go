// Package server streams a view's patches to remote mirrors over WebSocket.
//
// A Server wraps an updater.Updater. Every connection to /ws first receives
// a Snapshot frame with the current tree and sequence number, then one
// Patches frame per update. A client that notices a gap sends a Resync
// frame carrying the last sequence number it applied; the server replays
// the missing frames from history, or sends a fresh Snapshot when they
// have been evicted.
//
// Routes:
//
//	GET /                       current view as an HTML page
//	GET /ws                     patch stream
//	GET /metrics                Prometheus metrics
//	GET /healthz                200 while the live tree is in sync
//	GET /_patchwork/client.js   browser client, when configured
//
// Client is the Go side of the stream: it mirrors the view into a
// dom.Document and is mainly used by tests and the CLI.
package server
