package editor

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/pixeldesk/image-studio/internal/history"
	"github.com/pixeldesk/image-studio/internal/imageio"
	"github.com/pixeldesk/image-studio/internal/logger"
	"github.com/pixeldesk/image-studio/internal/ops"
)

// ErrNoImage is returned by operations that need a loaded image while the
// session has none.
var ErrNoImage = errors.New("no image loaded")

// State is the controller's processing state. The editor is synchronous:
// it is Applying only for the duration of a single Apply call.
type State int

const (
	// Idle means the editor is ready to accept the next action.
	Idle State = iota
	// Applying means an operation is currently running.
	Applying
)

func (s State) String() string {
	if s == Applying {
		return "applying"
	}
	return "idle"
}

// Stats tracks session counters, mirroring what the status surface reports.
type Stats struct {
	ImagesLoaded  int       `json:"images_loaded"`
	OpsApplied    int       `json:"ops_applied"`
	SessionStart  time.Time `json:"session_start"`
	CurrentPath   string    `json:"current_path,omitempty"`
	HistoryLength int       `json:"history_length"`
}

// Editor is the controller for one editing session: it owns the current
// image, its history, and the operation registry, and it is the single
// entry point for every user action.
//
// All session state lives on this struct; there are no package-level
// singletons. The editor is synchronous and not safe for concurrent use:
// the caller (the MCP loop or the batch runner) drives it from one
// goroutine, handling each action to completion before the next.
type Editor struct {
	registry *ops.Registry
	hist     *history.History
	log      *logger.Logger

	state    State
	path     string
	original image.Image

	imagesLoaded int
	opsApplied   int
	sessionStart time.Time
}

// New creates an editor with an empty history bounded to historyLimit
// snapshots (0 uses the default limit).
func New(registry *ops.Registry, historyLimit int, log *logger.Logger) *Editor {
	return &Editor{
		registry:     registry,
		hist:         history.New(historyLimit),
		log:          log,
		state:        Idle,
		sessionStart: time.Now(),
	}
}

// Registry exposes the operation registry for introspection.
func (e *Editor) Registry() *ops.Registry {
	return e.registry
}

// State returns the controller state. Outside an Apply call this is
// always Idle.
func (e *Editor) State() State {
	return e.state
}

// Open loads the image at path, clears any previous history, and commits the
// loaded image as the session's starting snapshot.
func (e *Editor) Open(path string) (image.Image, error) {
	img, err := imageio.Load(path)
	if err != nil {
		return nil, err
	}

	e.hist.Clear()
	e.hist.Commit(img, "open")
	e.path = path
	e.original = img
	e.imagesLoaded++

	e.log.Infow("opened image", "path", path,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return img, nil
}

// Apply runs the named operation on the current image and, on success,
// commits the result as a new history snapshot.
//
// On any failure the in-flight result is discarded: the current image and
// the history are exactly as they were before the call, and the editor is
// back in Idle.
func (e *Editor) Apply(name string, params ops.Params) (image.Image, error) {
	cur, err := e.hist.Current()
	if err != nil {
		return nil, ErrNoImage
	}

	e.state = Applying
	defer func() { e.state = Idle }()

	out, err := e.registry.Apply(name, cur, params)
	if err != nil {
		e.log.Warnw("operation failed", "op", name, "error", err)
		return nil, err
	}

	e.hist.Commit(out, name)
	e.opsApplied++

	e.log.Infow("applied operation", "op", name, "history_length", e.hist.Len())
	return out, nil
}

// Undo steps the history cursor back one snapshot and returns that image.
// It never creates a new history entry.
func (e *Editor) Undo() (image.Image, error) {
	return e.hist.Undo()
}

// Redo steps the history cursor forward one snapshot and returns that image.
// It never creates a new history entry.
func (e *Editor) Redo() (image.Image, error) {
	return e.hist.Redo()
}

// Current returns the image at the history cursor.
func (e *Editor) Current() (image.Image, error) {
	img, err := e.hist.Current()
	if err != nil {
		return nil, ErrNoImage
	}
	return img, nil
}

// Reset returns the session to the originally opened image, discarding all
// edits. The history is reduced to the single starting snapshot. The opened
// image is kept outside the history, so Reset restores it even after the
// bounded stack has dropped the oldest snapshots.
func (e *Editor) Reset() (image.Image, error) {
	if e.original == nil {
		return nil, ErrNoImage
	}
	e.hist.Clear()
	e.hist.Commit(e.original, "open")

	e.log.Infow("session reset", "path", e.path)
	return e.original, nil
}

// Save encodes the current image to path. The in-memory session is untouched
// whether or not the save succeeds.
func (e *Editor) Save(path string, quality int) error {
	img, err := e.Current()
	if err != nil {
		return err
	}
	if err := imageio.Save(img, path, imageio.SaveOptions{JPEGQuality: quality}); err != nil {
		return err
	}
	e.log.Infow("saved image", "path", path)
	return nil
}

// Export writes the current image to dir once per export format, named after
// the opened file (or "export" when nothing was opened from disk). It returns
// the written paths.
func (e *Editor) Export(dir string, quality int) ([]string, error) {
	img, err := e.Current()
	if err != nil {
		return nil, err
	}

	base := "export"
	if e.path != "" {
		name := filepath.Base(e.path)
		base = strings.TrimSuffix(name, filepath.Ext(name))
	}

	paths, err := imageio.ExportAll(img, dir, base, imageio.SaveOptions{JPEGQuality: quality})
	if err != nil {
		return paths, fmt.Errorf("export failed: %w", err)
	}
	e.log.Infow("exported image", "dir", dir, "count", len(paths))
	return paths, nil
}

// History returns the operation labels on the stack (oldest first) and the
// cursor position.
func (e *Editor) History() ([]string, int) {
	return e.hist.Labels(), e.hist.Cursor()
}

// Stats returns the session's counters.
func (e *Editor) Stats() Stats {
	return Stats{
		ImagesLoaded:  e.imagesLoaded,
		OpsApplied:    e.opsApplied,
		SessionStart:  e.sessionStart,
		CurrentPath:   e.path,
		HistoryLength: e.hist.Len(),
	}
}
