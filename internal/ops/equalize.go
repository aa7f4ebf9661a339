package ops

import (
	"image"
	"image/color"
)

// equalize applies histogram equalization to each channel independently,
// spreading the channel's cumulative distribution across the full 8-bit
// range. Alpha is preserved.
func equalize(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	out := image.NewRGBA(bounds)
	if total == 0 {
		return out
	}

	var histR, histG, histB [256]int
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			histR[r>>8]++
			histG[g>>8]++
			histB[b>>8]++
		}
	}

	mapR := equalizeMap(histR, total)
	mapG := equalizeMap(histG, total)
	mapB := equalizeMap(histB, total)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			out.SetRGBA(x, y, color.RGBA{
				R: mapR[r>>8],
				G: mapG[g>>8],
				B: mapB[b>>8],
				A: uint8(a >> 8),
			})
		}
	}
	return out
}

// equalizeMap builds the value remapping table from a channel histogram.
// The first non-zero bin maps to 0 so the darkest value stays black.
func equalizeMap(hist [256]int, total int) [256]uint8 {
	var table [256]uint8

	cdfMin := 0
	cdf := 0
	for i := 0; i < 256; i++ {
		if hist[i] > 0 {
			cdfMin = hist[i]
			break
		}
	}
	if cdfMin == total {
		// Uniform channel: nothing to spread.
		for i := range table {
			table[i] = uint8(i)
		}
		return table
	}

	for i := 0; i < 256; i++ {
		cdf += hist[i]
		if cdf == 0 {
			table[i] = 0
			continue
		}
		table[i] = uint8((cdf - cdfMin) * 255 / (total - cdfMin))
	}
	return table
}
