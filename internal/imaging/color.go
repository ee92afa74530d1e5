package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorFrequency represents a color and its occurrence frequency in an image.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // Hex color "#RRGGBB" (quantized)
	Percentage float64  `json:"percentage"` // Percentage of pixels with this color (0-100)
	RGB        RGBColor `json:"rgb"`        // RGB components (quantized)
	HSL        HSLColor `json:"hsl"`        // HSL of the quantized color
}

// DominantColors returns the count most common colors in img, most frequent
// first.
//
// Colors are quantized by dropping the low four bits of each channel, so
// #F0F0F0 and #FAFAFA land in the same bucket. Fully transparent pixels are
// counted as black. A placeholder tile from an upstream server typically
// shows up as a single bucket near 100%.
func DominantColors(img image.Image, count int) []ColorFrequency {
	bounds := img.Bounds()
	counts := make(map[RGBColor]int)
	total := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				c = color.NRGBA{}
			}
			key := RGBColor{R: c.R / 16 * 16, G: c.G / 16 * 16, B: c.B / 16 * 16}
			counts[key]++
			total++
		}
	}
	if total == 0 {
		return nil
	}

	keys := make([]RGBColor, 0, len(counts))
	for rgb := range counts {
		keys = append(keys, rgb)
	}
	sort.Slice(keys, func(i, j int) bool {
		ci, cj := counts[keys[i]], counts[keys[j]]
		if ci != cj {
			return ci > cj
		}
		return hexOf(keys[i]) < hexOf(keys[j])
	})

	colors := make([]ColorFrequency, 0, len(keys))
	for _, rgb := range keys {
		colors = append(colors, ColorFrequency{
			Hex:        hexOf(rgb),
			Percentage: math.Round(float64(counts[rgb])/float64(total)*1000) / 10,
			RGB:        rgb,
			HSL:        toHSL(rgb),
		})
	}

	if count > 0 && len(colors) > count {
		colors = colors[:count]
	}
	return colors
}

func hexOf(c RGBColor) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func toHSL(c RGBColor) HSLColor {
	h, s, l := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)}
}
