package ops

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
)

// resampleFilters maps the filter parameter values to resampling kernels.
var resampleFilters = map[string]imaging.ResampleFilter{
	"lanczos": imaging.Lanczos,
	"linear":  imaging.Linear,
	"nearest": imaging.NearestNeighbor,
}

// registerTransforms adds the geometric operations.
func registerTransforms(r *Registry) {
	r.register(&Operation{
		Name:    "resize",
		Summary: "Resize to exact dimensions",
		Params: []ParamSpec{
			intSpec("width", 1, 20000, "target width in pixels"),
			intSpec("height", 1, 20000, "target height in pixels"),
			{Name: "filter", Kind: String, Type: "string",
				Enum: []string{"lanczos", "linear", "nearest"}, Default: "lanczos",
				Usage: "resampling kernel"},
		},
		apply: func(img image.Image, p Params) (image.Image, error) {
			filter := resampleFilters[p.String("filter")]
			return imaging.Resize(img, p.Int("width"), p.Int("height"), filter), nil
		},
	})

	r.register(&Operation{
		Name:    "crop",
		Summary: "Crop to a rectangular region",
		Params: []ParamSpec{
			intSpec("x1", 0, 20000, "left edge (inclusive)"),
			intSpec("y1", 0, 20000, "top edge (inclusive)"),
			intSpec("x2", 1, 20000, "right edge (exclusive)"),
			intSpec("y2", 1, 20000, "bottom edge (exclusive)"),
		},
		apply: func(img image.Image, p Params) (image.Image, error) {
			x1, y1 := p.Int("x1"), p.Int("y1")
			x2, y2 := p.Int("x2"), p.Int("y2")
			if x1 >= x2 || y1 >= y2 {
				return nil, fmt.Errorf("%w: crop region must satisfy x1 < x2 and y1 < y2", ErrInvalidParameter)
			}
			bounds := img.Bounds()
			if x2 > bounds.Dx() || y2 > bounds.Dy() {
				return nil, fmt.Errorf("%w: crop region (%d,%d)-(%d,%d) outside image %dx%d",
					ErrInvalidParameter, x1, y1, x2, y2, bounds.Dx(), bounds.Dy())
			}
			return transform.Crop(img, image.Rect(x1, y1, x2, y2)), nil
		},
	})

	r.register(&Operation{
		Name:    "rotate",
		Summary: "Rotate by an arbitrary angle, growing the canvas to fit",
		Params: []ParamSpec{
			floatSpec("angle", -360, 360, "rotation in degrees, counterclockwise"),
		},
		apply: func(img image.Image, p Params) (image.Image, error) {
			return transform.Rotate(img, p.Float("angle"), &transform.RotationOptions{ResizeBounds: true}), nil
		},
	})

	r.register(&Operation{
		Name:    "flip_horizontal",
		Summary: "Mirror left-right",
		apply: func(img image.Image, p Params) (image.Image, error) {
			return transform.FlipH(img), nil
		},
	})

	r.register(&Operation{
		Name:    "flip_vertical",
		Summary: "Mirror top-bottom",
		apply: func(img image.Image, p Params) (image.Image, error) {
			return transform.FlipV(img), nil
		},
	})
}
