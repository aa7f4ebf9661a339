package ops

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/lucasb-eyer/go-colorful"
)

// registerEffects adds the stylistic effect operations.
func registerEffects(r *Registry) {
	r.register(&Operation{
		Name:    "grayscale",
		Summary: "Convert to grayscale",
		apply: func(img image.Image, p Params) (image.Image, error) {
			return effect.Grayscale(img), nil
		},
	})

	r.register(&Operation{
		Name:    "invert",
		Summary: "Invert all color channels",
		apply: func(img image.Image, p Params) (image.Image, error) {
			return effect.Invert(img), nil
		},
	})

	r.register(&Operation{
		Name:    "sepia",
		Summary: "Classic sepia tone",
		apply: func(img image.Image, p Params) (image.Image, error) {
			return effect.Sepia(img), nil
		},
	})

	r.register(&Operation{
		Name:    "posterize",
		Summary: "Reduce each channel to a fixed number of levels",
		Params: []ParamSpec{
			intSpecDefault("levels", 2, 128, 8, "levels per channel"),
		},
		apply: func(img image.Image, p Params) (image.Image, error) {
			return posterize(img, p.Int("levels")), nil
		},
	})

	r.register(&Operation{
		Name:    "oil_paint",
		Summary: "Painterly effect from a soft blur plus posterization",
		apply: func(img image.Image, p Params) (image.Image, error) {
			return posterize(blur.Gaussian(img, 1), 16), nil
		},
	})

	r.register(&Operation{
		Name:    "vintage",
		Summary: "Faded photo look: sepia, soft blur and dimmed brightness",
		apply: func(img image.Image, p Params) (image.Image, error) {
			out := effect.Sepia(img)
			out = blur.Gaussian(out, 0.5)
			return adjust.Brightness(out, -0.1), nil
		},
	})

	r.register(&Operation{
		Name:    "psychedelic",
		Summary: "Trigonometric channel remapping",
		apply: func(img image.Image, p Params) (image.Image, error) {
			return psychedelic(img), nil
		},
	})

	r.register(&Operation{
		Name:    "tint",
		Summary: "Blend every pixel toward a target color in Lab space",
		Params: []ParamSpec{
			{Name: "color", Kind: String, Type: "string", Usage: "target color as hex, e.g. #FF8800"},
			floatSpecDefault("strength", 0, 1, 0.3, "blend factor; 0 is a no-op, 1 replaces the pixel"),
		},
		apply: func(img image.Image, p Params) (image.Image, error) {
			target, err := colorful.Hex(p.String("color"))
			if err != nil {
				return nil, fmt.Errorf("%w: tint %q is not a hex color", ErrInvalidParameter, p.String("color"))
			}
			return tint(img, target, p.Float("strength")), nil
		},
	})
}

// posterize quantizes each channel to the given number of levels. Alpha is
// preserved.
func posterize(img image.Image, levels int) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)

	step := 255.0 / float64(levels-1)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			out.SetRGBA(x, y, color.RGBA{
				R: quantize(uint8(r>>8), step),
				G: quantize(uint8(g>>8), step),
				B: quantize(uint8(b>>8), step),
				A: uint8(a >> 8),
			})
		}
	}
	return out
}

// quantize snaps an 8-bit channel value to the nearest posterization level.
func quantize(v uint8, step float64) uint8 {
	return clampChannel(math.Round(float64(v)/step) * step)
}

// psychedelic remaps each channel through shifted sine waves, producing the
// high-contrast color swirl of the original effect.
func psychedelic(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			out.SetRGBA(x, y, color.RGBA{
				R: clampChannel(math.Sin(float64(r>>8)*0.02)*127 + 128),
				G: clampChannel(math.Cos(float64(g>>8)*0.02)*127 + 128),
				B: clampChannel(math.Sin(float64(b>>8)*0.02+1)*127 + 128),
				A: uint8(a >> 8),
			})
		}
	}
	return out
}

// tint blends every pixel toward target in Lab space, which keeps perceived
// lightness more stable than blending raw RGB.
func tint(img image.Image, target colorful.Color, strength float64) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			src := colorful.Color{
				R: float64(r>>8) / 255.0,
				G: float64(g>>8) / 255.0,
				B: float64(b>>8) / 255.0,
			}
			blended := src.BlendLab(target, strength).Clamped()
			out.SetRGBA(x, y, color.RGBA{
				R: uint8(blended.R*255 + 0.5),
				G: uint8(blended.G*255 + 0.5),
				B: uint8(blended.B*255 + 0.5),
				A: uint8(a >> 8),
			})
		}
	}
	return out
}
