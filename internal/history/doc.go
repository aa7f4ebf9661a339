// Package history implements a linear undo/redo stack of image snapshots.
//
// Each committed snapshot pairs an image with the label of the operation that
// produced it. A cursor marks the currently displayed entry; committing after
// one or more undos discards the redo branch, which is the standard linear
// undo model. The stack is bounded: once the limit is reached the oldest
// snapshot is dropped to keep memory predictable for long sessions.
//
// Nothing is persisted across sessions.
package history
