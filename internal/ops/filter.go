package ops

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// registerFilters adds convolution and noise filters.
func registerFilters(r *Registry) {
	r.register(&Operation{
		Name:    "blur",
		Summary: "Gaussian blur",
		Params: []ParamSpec{
			floatSpec("radius", 0.1, 100, "blur radius in pixels"),
		},
		apply: func(img image.Image, p Params) (image.Image, error) {
			return blur.Gaussian(img, p.Float("radius")), nil
		},
	})

	r.register(&Operation{
		Name:    "box_blur",
		Summary: "Box blur (faster, blockier than gaussian)",
		Params: []ParamSpec{
			floatSpec("radius", 0.1, 100, "blur radius in pixels"),
		},
		apply: func(img image.Image, p Params) (image.Image, error) {
			return blur.Box(img, p.Float("radius")), nil
		},
	})

	r.register(&Operation{
		Name:    "sharpen",
		Summary: "Sharpen with a fixed convolution kernel",
		apply: func(img image.Image, p Params) (image.Image, error) {
			return effect.Sharpen(img), nil
		},
	})

	r.register(&Operation{
		Name:    "unsharp_mask",
		Summary: "Sharpen by subtracting a blurred copy",
		Params: []ParamSpec{
			floatSpecDefault("radius", 0.1, 50, 2, "blur radius used for the mask"),
			floatSpecDefault("amount", 0.1, 10, 1.5, "strength of the sharpening"),
		},
		apply: func(img image.Image, p Params) (image.Image, error) {
			return effect.UnsharpMask(img, p.Float("radius"), p.Float("amount")), nil
		},
	})

	r.register(&Operation{
		Name:    "denoise",
		Summary: "Median filter noise reduction",
		Params: []ParamSpec{
			intSpecDefault("radius", 1, 10, 3, "neighborhood radius of the median filter"),
		},
		apply: func(img image.Image, p Params) (image.Image, error) {
			return effect.Median(img, float64(p.Int("radius"))), nil
		},
	})

	r.register(&Operation{
		Name:    "emboss",
		Summary: "Emboss relief effect",
		apply: func(img image.Image, p Params) (image.Image, error) {
			return effect.Emboss(img), nil
		},
	})

	r.register(&Operation{
		Name:    "sobel",
		Summary: "Sobel gradient magnitude",
		apply: func(img image.Image, p Params) (image.Image, error) {
			return effect.Sobel(img), nil
		},
	})

	r.register(&Operation{
		Name:    "edge_detect",
		Summary: "Canny edge detection producing a binary edge map",
		Params: []ParamSpec{
			intSpecDefault("threshold_low", 0, 255, 50, "gradient magnitudes below this are discarded"),
			intSpecDefault("threshold_high", 0, 255, 150, "gradient magnitudes above this are always edges"),
		},
		apply: func(img image.Image, p Params) (image.Image, error) {
			low, high := p.Int("threshold_low"), p.Int("threshold_high")
			if low >= high {
				return nil, fmt.Errorf("%w: edge_detect thresholds must satisfy low < high (got %d, %d)",
					ErrInvalidParameter, low, high)
			}
			return cannyEdges(img, low, high), nil
		},
	})

	r.register(&Operation{
		Name:    "equalize",
		Summary: "Per-channel histogram equalization",
		apply: func(img image.Image, p Params) (image.Image, error) {
			return equalize(img), nil
		},
	})
}
