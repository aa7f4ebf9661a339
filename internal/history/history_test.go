package history

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// solidImage creates a uniform image used as a distinguishable snapshot.
func solidImage(c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestCommitAdvancesCursor(t *testing.T) {
	h := New(10)

	a := solidImage(color.RGBA{255, 0, 0, 255})
	b := solidImage(color.RGBA{0, 255, 0, 255})

	h.Commit(a, "open")
	h.Commit(b, "blur")

	if h.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", h.Len())
	}
	if h.Cursor() != 1 {
		t.Errorf("Cursor: got %d, want 1", h.Cursor())
	}

	cur, err := h.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if cur != b {
		t.Error("Current should return the most recent snapshot")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	h := New(10)

	a := solidImage(color.RGBA{255, 0, 0, 255})
	b := solidImage(color.RGBA{0, 255, 0, 255})
	h.Commit(a, "open")
	h.Commit(b, "sharpen")

	img, err := h.Undo()
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if img != a {
		t.Error("Undo should return the previous snapshot")
	}

	img, err = h.Redo()
	if err != nil {
		t.Fatalf("Redo failed: %v", err)
	}
	if img != b {
		t.Error("Redo should restore the snapshot undone before it")
	}
}

func TestUndoAtOldestEntry(t *testing.T) {
	h := New(10)
	h.Commit(solidImage(color.RGBA{255, 0, 0, 255}), "open")

	if _, err := h.Undo(); !errors.Is(err, ErrNoMoreHistory) {
		t.Errorf("Undo on single entry: got %v, want ErrNoMoreHistory", err)
	}
}

func TestRedoAtNewestEntry(t *testing.T) {
	h := New(10)
	h.Commit(solidImage(color.RGBA{255, 0, 0, 255}), "open")
	h.Commit(solidImage(color.RGBA{0, 255, 0, 255}), "blur")

	if _, err := h.Redo(); !errors.Is(err, ErrNoMoreHistory) {
		t.Errorf("Redo at newest entry: got %v, want ErrNoMoreHistory", err)
	}
}

func TestEmptyHistory(t *testing.T) {
	h := New(10)

	if _, err := h.Current(); !errors.Is(err, ErrEmptyHistory) {
		t.Errorf("Current on empty history: got %v, want ErrEmptyHistory", err)
	}
	if _, err := h.Undo(); !errors.Is(err, ErrEmptyHistory) {
		t.Errorf("Undo on empty history: got %v, want ErrEmptyHistory", err)
	}
	if _, err := h.Redo(); !errors.Is(err, ErrEmptyHistory) {
		t.Errorf("Redo on empty history: got %v, want ErrEmptyHistory", err)
	}
	if h.Cursor() != -1 {
		t.Errorf("Cursor on empty history: got %d, want -1", h.Cursor())
	}
}

func TestCommitAfterUndoDiscardsRedoBranch(t *testing.T) {
	h := New(10)

	start := solidImage(color.RGBA{0, 0, 0, 255})
	a := solidImage(color.RGBA{255, 0, 0, 255})
	b := solidImage(color.RGBA{0, 255, 0, 255})
	c := solidImage(color.RGBA{0, 0, 255, 255})

	h.Commit(start, "open")
	h.Commit(a, "brighten")
	h.Commit(b, "blur")

	img, err := h.Undo()
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if img != a {
		t.Error("Undo should return the brighten snapshot")
	}

	img, err = h.Redo()
	if err != nil {
		t.Fatalf("Redo failed: %v", err)
	}
	if img != b {
		t.Error("Redo should return the blur snapshot")
	}

	// Step back to a, then commit c: the blur entry must be discarded.
	if _, err := h.Undo(); err != nil {
		t.Fatalf("second Undo failed: %v", err)
	}
	h.Commit(c, "sepia")

	if h.Len() != h.Cursor()+1 {
		t.Errorf("after commit: len=%d cursor=%d, want len == cursor+1", h.Len(), h.Cursor())
	}

	want := []string{"open", "brighten", "sepia"}
	got := h.Labels()
	if len(got) != len(want) {
		t.Fatalf("Labels: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Labels[%d]: got %q, want %q", i, got[i], want[i])
		}
	}

	if _, err := h.Redo(); !errors.Is(err, ErrNoMoreHistory) {
		t.Errorf("Redo after branch discard: got %v, want ErrNoMoreHistory", err)
	}
}

func TestLimitDropsOldest(t *testing.T) {
	h := New(3)

	imgs := []image.Image{
		solidImage(color.RGBA{10, 0, 0, 255}),
		solidImage(color.RGBA{20, 0, 0, 255}),
		solidImage(color.RGBA{30, 0, 0, 255}),
		solidImage(color.RGBA{40, 0, 0, 255}),
	}
	for _, img := range imgs {
		h.Commit(img, "op")
	}

	if h.Len() != 3 {
		t.Fatalf("Len after overflow: got %d, want 3", h.Len())
	}

	// Walk back to the oldest retained snapshot.
	var last image.Image
	for {
		img, err := h.Undo()
		if errors.Is(err, ErrNoMoreHistory) {
			break
		}
		if err != nil {
			t.Fatalf("Undo failed: %v", err)
		}
		last = img
	}
	if last != imgs[1] {
		t.Error("oldest snapshot should be the second commit after overflow")
	}
}

func TestClear(t *testing.T) {
	h := New(10)
	h.Commit(solidImage(color.RGBA{255, 0, 0, 255}), "open")
	h.Clear()

	if h.Len() != 0 || h.Cursor() != -1 {
		t.Errorf("after Clear: len=%d cursor=%d, want 0 and -1", h.Len(), h.Cursor())
	}
	if _, err := h.Current(); !errors.Is(err, ErrEmptyHistory) {
		t.Errorf("Current after Clear: got %v, want ErrEmptyHistory", err)
	}
}
