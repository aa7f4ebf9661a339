// Package editor implements the controller for a single editing session.
//
// The editor owns the session state: the current image, the undo/redo
// history, and the operation registry. Every user action comes through one
// synchronous entry point -- Apply, Undo, Redo, Open, Save, Reset -- and is
// handled to completion before the next. A failed operation discards its
// in-flight result, so the current image is never corrupted by an error.
//
// Undo and redo move the history cursor without recording new entries;
// only successful operations commit snapshots.
package editor
