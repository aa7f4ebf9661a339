package ops

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
)

// cannyEdges runs Canny edge detection and returns a binary edge map:
// edge pixels are white (255), everything else black.
//
// Steps: gaussian pre-blur, luminance conversion (ITU-R BT.601 weights),
// Sobel gradients, non-maximum suppression, then double-threshold hysteresis.
// Magnitudes above high are strong edges; magnitudes between low and high
// survive only when adjacent to a strong edge.
func cannyEdges(img image.Image, low, high int) *image.Gray {
	// Pre-blur to suppress noise before taking gradients.
	smoothed := blur.Gaussian(img, 1.4)

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	luma := toLuma(smoothed)

	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)
	sobelGradients(luma, width, height, magnitude, direction)

	suppressed := suppressNonMaxima(magnitude, direction, width, height)

	out := image.NewGray(image.Rect(0, 0, width, height))
	lowThresh := float64(low) / 255.0
	highThresh := float64(high) / 255.0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := suppressed[y*width+x]
			switch {
			case v >= highThresh:
				out.SetGray(x, y, color.Gray{Y: 255})
			case v >= lowThresh && hasStrongNeighbor(suppressed, width, height, x, y, highThresh):
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// toLuma flattens an image into a normalized (0..1) luminance plane.
func toLuma(img image.Image) []float64 {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	luma := make([]float64, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			rf := float64(r>>8) / 255.0
			gf := float64(g>>8) / 255.0
			bf := float64(b>>8) / 255.0
			luma[y*width+x] = 0.299*rf + 0.587*gf + 0.114*bf
		}
	}
	return luma
}

// sobelGradients fills magnitude and direction with the Sobel gradient of the
// luminance plane. Border pixels use replicated edge values.
func sobelGradients(luma []float64, width, height int, magnitude, direction []float64) {
	sobelX := [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY := [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clampIndex(y+ky, height-1)
					px := clampIndex(x+kx, width-1)
					v := luma[py*width+px]
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y*width+x] = math.Sqrt(gx*gx + gy*gy)
			direction[y*width+x] = math.Atan2(gy, gx)
		}
	}
}

// suppressNonMaxima thins edges to one pixel by keeping only local maxima
// along the gradient direction. Image borders are zeroed.
func suppressNonMaxima(magnitude, direction []float64, width, height int) []float64 {
	out := make([]float64, width*height)

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			angle := direction[i]
			mag := magnitude[i]

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1, n2 = magnitude[i-1], magnitude[i+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1, n2 = magnitude[i-width+1], magnitude[i+width-1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1, n2 = magnitude[i-width], magnitude[i+width]
			default:
				n1, n2 = magnitude[i-width-1], magnitude[i+width+1]
			}

			if mag >= n1 && mag >= n2 {
				out[i] = mag
			}
		}
	}
	return out
}

// hasStrongNeighbor reports whether any of the 8 neighbors of (x, y) exceeds
// the strong-edge threshold.
func hasStrongNeighbor(suppressed []float64, width, height, x, y int, highThresh float64) bool {
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			py := clampIndex(y+ky, height-1)
			px := clampIndex(x+kx, width-1)
			if suppressed[py*width+px] >= highThresh {
				return true
			}
		}
	}
	return false
}

// clampIndex constrains v to [0, max].
func clampIndex(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
