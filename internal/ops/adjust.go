package ops

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
)

// registerAdjust adds the tonal and color adjustment operations.
func registerAdjust(r *Registry) {
	r.register(&Operation{
		Name:    "brightness",
		Summary: "Adjust image brightness",
		Params: []ParamSpec{
			floatSpec("amount", -1, 1, "normalized brightness change; 0 leaves the image unchanged"),
		},
		apply: func(img image.Image, p Params) (image.Image, error) {
			return adjust.Brightness(img, p.Float("amount")), nil
		},
	})

	r.register(&Operation{
		Name:    "contrast",
		Summary: "Adjust image contrast",
		Params: []ParamSpec{
			floatSpec("amount", -1, 1, "normalized contrast change; 0 leaves the image unchanged"),
		},
		apply: func(img image.Image, p Params) (image.Image, error) {
			return adjust.Contrast(img, p.Float("amount")), nil
		},
	})

	r.register(&Operation{
		Name:    "saturation",
		Summary: "Adjust color saturation",
		Params: []ParamSpec{
			floatSpec("amount", -1, 1, "normalized saturation change; -1 fully desaturates"),
		},
		apply: func(img image.Image, p Params) (image.Image, error) {
			return adjust.Saturation(img, p.Float("amount")), nil
		},
	})

	r.register(&Operation{
		Name:    "gamma",
		Summary: "Apply gamma correction",
		Params: []ParamSpec{
			floatSpec("gamma", 0.1, 10, "gamma value; 1 leaves the image unchanged"),
		},
		apply: func(img image.Image, p Params) (image.Image, error) {
			return adjust.Gamma(img, p.Float("gamma")), nil
		},
	})

	r.register(&Operation{
		Name:    "hue",
		Summary: "Rotate the hue of every pixel",
		Params: []ParamSpec{
			intSpec("degrees", -360, 360, "hue rotation in degrees"),
		},
		apply: func(img image.Image, p Params) (image.Image, error) {
			return adjust.Hue(img, p.Int("degrees")), nil
		},
	})

	r.register(&Operation{
		Name:    "temperature",
		Summary: "Warm or cool the image",
		Params: []ParamSpec{
			floatSpec("amount", -100, 100, "positive warms (boosts red), negative cools (boosts blue)"),
		},
		apply: func(img image.Image, p Params) (image.Image, error) {
			return temperature(img, p.Float("amount")), nil
		},
	})

	r.register(&Operation{
		Name:    "auto_enhance",
		Summary: "One-shot contrast, saturation and sharpness boost",
		apply: func(img image.Image, p Params) (image.Image, error) {
			out := adjust.Contrast(img, 0.12)
			out = adjust.Saturation(out, 0.1)
			return effect.UnsharpMask(out, 1, 0.3), nil
		},
	})
}

// temperature scales the warm or cool channels. A positive amount boosts red
// (and slightly green), a negative amount boosts blue.
func temperature(img image.Image, amount float64) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)

	rScale, gScale, bScale := 1.0, 1.0, 1.0
	if amount > 0 {
		rScale = 1 + amount*0.01
		gScale = 1 + amount*0.005
	} else {
		bScale = 1 - amount*0.01
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			out.SetRGBA(x, y, color.RGBA{
				R: clampChannel(float64(r>>8) * rScale),
				G: clampChannel(float64(g>>8) * gScale),
				B: clampChannel(float64(b>>8) * bScale),
				A: uint8(a >> 8),
			})
		}
	}
	return out
}

// clampChannel limits a computed channel value to the 8-bit range.
func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
