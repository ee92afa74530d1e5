package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultGridColor is the overlay color used when none is supplied.
const DefaultGridColor = "#FF000080"

// DrawTileGrid returns a copy of img with the tile grid drawn on top.
//
// Cell borders are drawn every TileSize pixels in both directions and, when
// labels is true, each of the first count cells gets its tile index printed
// in its top-left corner. An unparseable colorHex falls back to
// DefaultGridColor. The source image is not modified.
func DrawTileGrid(img image.Image, g Grid, count int, colorHex string, labels bool) *image.NRGBA {
	gridColor, err := parseHexColor(colorHex)
	if err != nil {
		gridColor, _ = parseHexColor(DefaultGridColor)
	}

	result := imaging.Clone(img)
	bounds := result.Bounds()
	line := image.NewUniform(gridColor)

	// Vertical lines
	for x := g.TileSize; x < bounds.Max.X; x += g.TileSize {
		draw.Draw(result, image.Rect(x, 0, x+1, bounds.Max.Y), line, image.Point{}, draw.Over)
	}

	// Horizontal lines
	for y := g.TileSize; y < bounds.Max.Y; y += g.TileSize {
		draw.Draw(result, image.Rect(0, y, bounds.Max.X, y+1), line, image.Point{}, draw.Over)
	}

	if labels {
		labelColor := color.NRGBA{255, 255, 255, 255}
		bgColor := color.NRGBA{0, 0, 0, 180}
		for i := 0; i < count; i++ {
			origin := g.CellOrigin(i)
			drawLabel(result, origin.X+2, origin.Y+2, strconv.Itoa(i), labelColor, bgColor)
		}
	}

	return result
}

// parseHexColor parses "#RRGGBB" or "#RRGGBBAA".
func parseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}

	alpha := uint8(255)
	switch len(hex) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in %q: %w", hex, err)
		}
		alpha = uint8(a)
		hex = hex[:7]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length")
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// drawLabel draws a digit string using a 3x5 pixel font over a filled box.
// Pixels outside the image are skipped.
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
	}

	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	draw.Draw(img, image.Rect(x-1, y-1, x+labelWidth, y+labelHeight).Intersect(bounds),
		image.NewUniform(bg), image.Point{}, draw.Over)

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, rowBits := range glyph {
			for col, pixel := range rowBits {
				px, py := cx+col, y+row
				if pixel == '1' && image.Pt(px, py).In(bounds) {
					img.SetNRGBA(px, py, fg)
				}
			}
		}
		cx += charWidth
	}
}
