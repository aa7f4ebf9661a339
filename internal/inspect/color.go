package inspect

import (
	"fmt"
	"image"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA holds 8-bit color components including alpha.
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSL holds a color in hue/saturation/lightness space.
// H is 0-360 degrees, S and L are 0-100 percent.
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// ColorSample is one pixel's color in several representations.
type ColorSample struct {
	Hex  string `json:"hex"`
	RGBA RGBA   `json:"rgba"`
	HSL  HSL    `json:"hsl"`
}

// SampleColor reads the color at (x, y). Coordinates are 0-based from the
// top-left; out-of-bounds coordinates are an error.
func SampleColor(img image.Image, x, y int) (*ColorSample, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, a := img.At(x, y).RGBA()
	r8, g8, b8, a8 := uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)

	c := colorful.Color{
		R: float64(r8) / 255.0,
		G: float64(g8) / 255.0,
		B: float64(b8) / 255.0,
	}
	h, s, l := c.Hsl()

	return &ColorSample{
		Hex:  c.Hex(),
		RGBA: RGBA{R: r8, G: g8, B: b8, A: a8},
		HSL:  HSL{H: int(h), S: int(s * 100), L: int(l * 100)},
	}, nil
}

// ColorFrequency is a quantized color and how much of the image it covers.
type ColorFrequency struct {
	Hex        string  `json:"hex"`
	Percentage float64 `json:"percentage"`
}

// DominantColors returns the count most frequent colors in the image, most
// common first. Channels are quantized to 16-value buckets so near-identical
// shades group together.
func DominantColors(img image.Image, count int) []ColorFrequency {
	bounds := img.Bounds()
	counts := make(map[[3]uint8]int)
	total := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			key := [3]uint8{
				uint8((r >> 8) / 16 * 16),
				uint8((g >> 8) / 16 * 16),
				uint8((b >> 8) / 16 * 16),
			}
			counts[key]++
			total++
		}
	}
	if total == 0 {
		return nil
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for key, n := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        fmt.Sprintf("#%02x%02x%02x", key[0], key[1], key[2]),
			Percentage: float64(n) / float64(total) * 100,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if len(colors) > count {
		colors = colors[:count]
	}
	return colors
}
