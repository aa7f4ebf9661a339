package ops

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// watermarkPositions are the supported anchor points for the watermark text.
var watermarkPositions = []string{"bottom-right", "bottom-left", "top-right", "top-left", "center"}

// registerAnnotate adds the annotation operations.
func registerAnnotate(r *Registry) {
	r.register(&Operation{
		Name:    "watermark",
		Summary: "Stamp a text watermark onto the image",
		Params: []ParamSpec{
			{Name: "text", Kind: String, Type: "string", Usage: "watermark text"},
			{Name: "position", Kind: String, Type: "string",
				Enum: watermarkPositions, Default: "bottom-right",
				Usage: "anchor corner or center"},
			floatSpecDefault("opacity", 0, 1, 0.7, "watermark opacity"),
		},
		apply: func(img image.Image, p Params) (image.Image, error) {
			text := strings.TrimSpace(p.String("text"))
			if text == "" {
				return nil, fmt.Errorf("%w: watermark text must not be empty", ErrInvalidParameter)
			}
			return watermark(img, text, p.String("position"), p.Float("opacity")), nil
		},
	})
}

// watermark draws text on a translucent backing box anchored at position.
// Text that does not fit is still drawn; it just overflows the image edge.
func watermark(img image.Image, text, position string, opacity float64) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, text).Ceil()
	textHeight := face.Metrics().Height.Ceil()

	const margin, padding = 20, 5
	w, h := bounds.Dx(), bounds.Dy()

	var x, y int
	switch position {
	case "bottom-left":
		x, y = margin, h-textHeight-margin
	case "top-right":
		x, y = w-textWidth-margin, margin
	case "top-left":
		x, y = margin, margin
	case "center":
		x, y = (w-textWidth)/2, (h-textHeight)/2
	default: // bottom-right
		x, y = w-textWidth-margin, h-textHeight-margin
	}

	backing := image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: uint8(opacity * 128)})
	box := image.Rect(x-padding, y-padding, x+textWidth+padding, y+textHeight+padding)
	draw.Draw(out, box.Intersect(out.Bounds()), backing, image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(color.NRGBA{A: uint8(opacity * 255)}),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)

	return out
}
