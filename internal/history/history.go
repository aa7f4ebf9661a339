package history

import (
	"errors"
	"image"
)

// DefaultLimit is the number of snapshots kept when no explicit limit is given.
const DefaultLimit = 20

// ErrNoMoreHistory is returned by Undo when the cursor is already at the oldest
// entry, and by Redo when the cursor is already at the newest entry.
var ErrNoMoreHistory = errors.New("no more history")

// ErrEmptyHistory is returned by Current when no snapshot has been committed.
var ErrEmptyHistory = errors.New("history is empty")

// Entry is a snapshot of the image together with the label of the operation
// that produced it.
//
// The image held by an entry is treated as immutable: operations never modify
// their input, so a snapshot is just a reference to the image that was current
// at commit time.
type Entry struct {
	Image image.Image
	Label string
}

// History is a linear undo/redo stack of image snapshots.
//
// The cursor always points at the currently displayed entry. Commit discards
// everything after the cursor (the redo branch), appends, and advances the
// cursor. Undo and Redo move the cursor without modifying the stack.
//
// History is not safe for concurrent use; the editor drives it from a single
// goroutine.
type History struct {
	entries []Entry
	cursor  int
	limit   int
}

// New creates an empty history keeping at most limit snapshots.
// A limit below 1 falls back to DefaultLimit.
func New(limit int) *History {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &History{
		entries: make([]Entry, 0, limit),
		cursor:  -1,
		limit:   limit,
	}
}

// Commit records img as a new snapshot labeled with the operation that
// produced it. Any entries after the cursor are discarded first, so a commit
// after one or more undos starts a fresh branch. When the stack is full the
// oldest entry is dropped.
//
// Commit always succeeds.
func (h *History) Commit(img image.Image, label string) {
	// Drop the redo branch.
	h.entries = h.entries[:h.cursor+1]

	h.entries = append(h.entries, Entry{Image: img, Label: label})
	if len(h.entries) > h.limit {
		h.entries = h.entries[1:]
	}
	h.cursor = len(h.entries) - 1
}

// Undo moves the cursor back one entry and returns that entry's image.
// It fails with ErrNoMoreHistory if the cursor is at the first entry,
// and with ErrEmptyHistory if nothing has been committed.
func (h *History) Undo() (image.Image, error) {
	if len(h.entries) == 0 {
		return nil, ErrEmptyHistory
	}
	if h.cursor == 0 {
		return nil, ErrNoMoreHistory
	}
	h.cursor--
	return h.entries[h.cursor].Image, nil
}

// Redo moves the cursor forward one entry and returns that entry's image.
// It fails with ErrNoMoreHistory if the cursor is at the last entry,
// and with ErrEmptyHistory if nothing has been committed.
func (h *History) Redo() (image.Image, error) {
	if len(h.entries) == 0 {
		return nil, ErrEmptyHistory
	}
	if h.cursor == len(h.entries)-1 {
		return nil, ErrNoMoreHistory
	}
	h.cursor++
	return h.entries[h.cursor].Image, nil
}

// Current returns the image at the cursor, or ErrEmptyHistory if no snapshot
// has been committed.
func (h *History) Current() (image.Image, error) {
	if len(h.entries) == 0 {
		return nil, ErrEmptyHistory
	}
	return h.entries[h.cursor].Image, nil
}

// Len returns the number of snapshots on the stack.
func (h *History) Len() int {
	return len(h.entries)
}

// Cursor returns the index of the current entry, or -1 for an empty history.
func (h *History) Cursor() int {
	return h.cursor
}

// Labels returns the operation labels of all entries, oldest first.
func (h *History) Labels() []string {
	labels := make([]string, len(h.entries))
	for i, e := range h.entries {
		labels[i] = e.Label
	}
	return labels
}

// Clear discards all snapshots, returning the history to its initial state.
// Used when a new file is opened or the session resets.
func (h *History) Clear() {
	h.entries = h.entries[:0]
	h.cursor = -1
}
