package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
)

// DefaultMaxPixels caps the pixel count of any image this package allocates:
// 1 GiB of NRGBA pixel data.
const DefaultMaxPixels = 1 << 28

// Grid describes how square tiles are laid out on the composite.
type Grid struct {
	// TileSize is the edge length of every tile, in pixels.
	TileSize int `json:"tile_size"`

	// TilesPerRow is the number of columns in the grid.
	TilesPerRow int `json:"tiles_per_row"`

	// MaxPixels caps the composite's width×height. Zero means
	// DefaultMaxPixels.
	MaxPixels int `json:"max_pixels,omitempty"`
}

// Validate reports whether the grid parameters are usable.
func (g Grid) Validate() error {
	if g.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", g.TileSize)
	}
	if g.TilesPerRow <= 0 {
		return fmt.Errorf("tiles per row must be positive, got %d", g.TilesPerRow)
	}
	if g.MaxPixels < 0 {
		return fmt.Errorf("max pixels must not be negative, got %d", g.MaxPixels)
	}
	return nil
}

// CheckSize reports whether the composite for n tiles can be allocated:
// its width and height must be representable and their product must not
// exceed the pixel cap. The grid must already pass Validate.
func (g Grid) CheckSize(n int) error {
	limit := maxPixelsOrDefault(g.MaxPixels)
	w, okW := mulInt(g.TileSize, g.TilesPerRow)
	h, okH := mulInt(g.TileSize, g.Rows(n))
	if !okW || !okH {
		return &SizeError{MaxPixels: limit}
	}
	if px, ok := mulInt(w, h); !ok || px > limit {
		return &SizeError{Width: w, Height: h, MaxPixels: limit}
	}
	return nil
}

// Rows returns the number of rows needed to hold n tiles.
func (g Grid) Rows(n int) int {
	rows := n / g.TilesPerRow
	if n%g.TilesPerRow != 0 {
		rows++
	}
	return rows
}

// Bounds returns the composite rectangle for n tiles. The width always spans
// TilesPerRow cells, even when the last row is only partially filled.
func (g Grid) Bounds(n int) image.Rectangle {
	return image.Rect(0, 0, g.TileSize*g.TilesPerRow, g.TileSize*g.Rows(n))
}

// CellOrigin returns the top-left corner of cell i in composite coordinates.
func (g Grid) CellOrigin(i int) image.Point {
	return image.Pt((i%g.TilesPerRow)*g.TileSize, (i/g.TilesPerRow)*g.TileSize)
}

// Cell returns the rectangle occupied by tile i.
func (g Grid) Cell(i int) image.Rectangle {
	min := g.CellOrigin(i)
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(g.TileSize, g.TileSize))}
}

// Stitch composites tiles onto a single image according to the grid.
//
// Parameters:
//   - tiles: Decoded tiles in placement order. Each must be at least
//     TileSize pixels in both dimensions; only the top-left
//     TileSize×TileSize block is used, larger tiles are cropped.
//   - g: Grid geometry. Must pass Validate.
//
// Returns:
//   - *image.NRGBA: The composite, sized by g.Bounds(len(tiles)). Cells past
//     the last tile keep the zero pixel value.
//   - error: *StitchError if any tile is too small; *SizeError if the
//     composite would exceed the grid's pixel cap; a plain error for invalid
//     grid parameters or an empty tile list.
//
// Every tile is bounds-checked before the composite is allocated, so a
// failure never leaves a half-written image behind. Placement is a direct
// overwrite with no blending.
func Stitch(tiles []image.Image, g Grid) (*image.NRGBA, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if len(tiles) == 0 {
		return nil, errors.New("no tiles to stitch")
	}
	if err := g.CheckSize(len(tiles)); err != nil {
		return nil, err
	}

	for i, tile := range tiles {
		if tile == nil {
			return nil, &StitchError{Index: i, TileSize: g.TileSize}
		}
		b := tile.Bounds()
		if b.Dx() < g.TileSize || b.Dy() < g.TileSize {
			return nil, &StitchError{Index: i, Width: b.Dx(), Height: b.Dy(), TileSize: g.TileSize}
		}
	}

	bounds := g.Bounds(len(tiles))
	composite := imaging.New(bounds.Dx(), bounds.Dy(), color.NRGBA{})

	parallel.Line(len(tiles), func(start, end int) {
		for i := start; i < end; i++ {
			placeTile(composite, tiles[i], g, i)
		}
	})

	return composite, nil
}

// placeTile copies the top-left block of tile into cell i, row by row.
func placeTile(dst *image.NRGBA, tile image.Image, g Grid, i int) {
	min := tile.Bounds().Min
	block := imaging.Crop(tile, image.Rect(min.X, min.Y, min.X+g.TileSize, min.Y+g.TileSize))

	origin := g.CellOrigin(i)
	rowBytes := g.TileSize * 4
	for y := 0; y < g.TileSize; y++ {
		src := block.Pix[y*block.Stride : y*block.Stride+rowBytes]
		off := dst.PixOffset(origin.X, origin.Y+y)
		copy(dst.Pix[off:off+rowBytes], src)
	}
}

func maxPixelsOrDefault(limit int) int {
	if limit > 0 {
		return limit
	}
	return DefaultMaxPixels
}

// mulInt multiplies two non-negative ints, reporting false on overflow.
func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}
