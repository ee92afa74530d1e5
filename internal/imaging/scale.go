package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Scale resizes img by factor using Lanczos resampling.
//
// A factor of exactly 1.0 returns img untouched so the default path stays
// lossless. The factor must be positive and finite, must not shrink either
// dimension below one pixel, and must not grow the image past maxPixels
// (zero means DefaultMaxPixels). An oversized result is a *SizeError.
func Scale(img image.Image, factor float64, maxPixels int) (image.Image, error) {
	if factor == 1.0 {
		return img, nil
	}
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("scale factor must be positive, got %g", factor)
	}

	bounds := img.Bounds()
	width := float64(bounds.Dx()) * factor
	height := float64(bounds.Dy()) * factor
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("scale factor %g reduces %dx%d image to nothing", factor, bounds.Dx(), bounds.Dy())
	}

	limit := maxPixelsOrDefault(maxPixels)
	if width*height > float64(limit) {
		return nil, &SizeError{Width: clampInt(width), Height: clampInt(height), MaxPixels: limit}
	}

	return imaging.Resize(img, int(width), int(height), imaging.Lanczos), nil
}

// clampInt converts f for error reporting, giving 0 when it does not fit.
func clampInt(f float64) int {
	if f >= math.MaxInt32 {
		return 0
	}
	return int(f)
}
