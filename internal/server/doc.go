// Package server implements the MCP (Model Context Protocol) surface of the
// editing session.
//
// The server speaks JSON-RPC 2.0 over stdio: requests arrive one per line on
// stdin, responses go to stdout, and logging goes to stderr. Each server
// wraps exactly one editing session; tools either act on that session
// (studio_*) or inspect image files directly (image_*).
//
// # Protocol
//
// Supported MCP methods:
//   - initialize: protocol handshake
//   - tools/list: enumerate available tools
//   - tools/call: execute a tool with arguments
//   - ping: health check
//
// # Tools
//
// Session lifecycle:
//   - studio_open: open a file, clearing history
//   - studio_save: write the current image to a file
//   - studio_export: write the current image in every export format
//   - studio_reset: return to the originally opened image
//
// Editing:
//   - studio_apply: run a named operation and commit it to history
//   - studio_undo / studio_redo: move the history cursor
//
// Introspection:
//   - studio_current, studio_render, studio_history, studio_operations,
//     studio_stats
//
// File inspection (session-independent):
//   - image_info, image_sample_color, image_dominant_colors
//
// # Error handling
//
// Tool failures produce a JSON-RPC error with code -32000 whose data carries
// an error kind (unknown_operation, invalid_parameter, no_more_history,
// empty_history, io_failure) plus a human-readable detail. No failure is
// fatal: a failed operation or save leaves the session exactly as it was.
//
// Requests are handled strictly one at a time in arrival order, so no two
// operations ever run concurrently against the session.
package server
