package inspect

import (
	"image"
	"image/color"
	"testing"
)

func TestSampleColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.SetRGBA(3, 4, color.RGBA{255, 0, 0, 255})

	sample, err := SampleColor(img, 3, 4)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}

	if sample.Hex != "#ff0000" {
		t.Errorf("Hex: got %s, want #ff0000", sample.Hex)
	}
	if sample.RGBA.R != 255 || sample.RGBA.G != 0 || sample.RGBA.B != 0 {
		t.Errorf("RGBA: got %+v", sample.RGBA)
	}
	if sample.HSL.H != 0 || sample.HSL.S != 100 || sample.HSL.L != 50 {
		t.Errorf("HSL: got %+v, want H=0 S=100 L=50", sample.HSL)
	}
}

func TestSampleColorOutOfBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 5},
		{"negative y", 5, -1},
		{"x at width", 10, 5},
		{"y at height", 5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SampleColor(img, tt.x, tt.y); err == nil {
				t.Error("SampleColor should fail outside bounds")
			}
		})
	}
}

func TestDominantColors(t *testing.T) {
	// 3/4 red, 1/4 blue.
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if x < 6 {
				img.SetRGBA(x, y, color.RGBA{240, 0, 0, 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{0, 0, 240, 255})
			}
		}
	}

	colors := DominantColors(img, 5)
	if len(colors) != 2 {
		t.Fatalf("got %d colors, want 2", len(colors))
	}
	if colors[0].Hex != "#f00000" {
		t.Errorf("top color: got %s, want #f00000", colors[0].Hex)
	}
	if colors[0].Percentage <= colors[1].Percentage {
		t.Error("colors not sorted by frequency")
	}

	if got := DominantColors(img, 1); len(got) != 1 {
		t.Errorf("count=1: got %d colors", len(got))
	}
}
