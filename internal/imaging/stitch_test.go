package imaging

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

// createInMemoryImage creates a solid-color image of the given size.
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createGradientImage creates an image where every pixel is distinct within
// the tile and seed distinguishes tiles from each other.
func createGradientImage(width, height int, seed uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x),
				G: uint8(y),
				B: seed,
				A: uint8(128 + (x+y)%128),
			})
		}
	}
	return img
}

// assertBlockEqual checks that the size×size block of got at dst matches the
// size×size block of want at its origin.
func assertBlockEqual(t *testing.T, got image.Image, dst image.Point, want image.Image, size int) {
	t.Helper()
	wmin := want.Bounds().Min
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			g := color.NRGBAModel.Convert(got.At(dst.X+x, dst.Y+y))
			w := color.NRGBAModel.Convert(want.At(wmin.X+x, wmin.Y+y))
			if g != w {
				t.Fatalf("pixel (%d,%d) of cell at %v: got %v, want %v", x, y, dst, g, w)
			}
		}
	}
}

func TestGrid_Geometry(t *testing.T) {
	g := Grid{TileSize: 256, TilesPerRow: 3}

	tests := []struct {
		name   string
		count  int
		rows   int
		bounds image.Rectangle
	}{
		{"single tile", 1, 1, image.Rect(0, 0, 768, 256)},
		{"exact row", 3, 1, image.Rect(0, 0, 768, 256)},
		{"partial second row", 4, 2, image.Rect(0, 0, 768, 512)},
		{"three full rows", 9, 3, image.Rect(0, 0, 768, 768)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Rows(tt.count); got != tt.rows {
				t.Errorf("Rows(%d): got %d, want %d", tt.count, got, tt.rows)
			}
			if got := g.Bounds(tt.count); got != tt.bounds {
				t.Errorf("Bounds(%d): got %v, want %v", tt.count, got, tt.bounds)
			}
		})
	}
}

func TestGrid_CellOrigin(t *testing.T) {
	g := Grid{TileSize: 100, TilesPerRow: 2}

	tests := []struct {
		index int
		want  image.Point
	}{
		{0, image.Pt(0, 0)},
		{1, image.Pt(100, 0)},
		{2, image.Pt(0, 100)},
		{3, image.Pt(100, 100)},
		{4, image.Pt(0, 200)},
	}

	for _, tt := range tests {
		if got := g.CellOrigin(tt.index); got != tt.want {
			t.Errorf("CellOrigin(%d): got %v, want %v", tt.index, got, tt.want)
		}
	}

	if got, want := g.Cell(3), image.Rect(100, 100, 200, 200); got != want {
		t.Errorf("Cell(3): got %v, want %v", got, want)
	}
}

func TestGrid_Validate(t *testing.T) {
	tests := []struct {
		name    string
		grid    Grid
		wantErr bool
	}{
		{"valid", Grid{TileSize: 256, TilesPerRow: 4}, false},
		{"zero tile size", Grid{TileSize: 0, TilesPerRow: 4}, true},
		{"negative tile size", Grid{TileSize: -1, TilesPerRow: 4}, true},
		{"zero per row", Grid{TileSize: 256, TilesPerRow: 0}, true},
		{"negative max pixels", Grid{TileSize: 256, TilesPerRow: 4, MaxPixels: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grid.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStitch_FourQuadrants(t *testing.T) {
	tiles := []image.Image{
		createGradientImage(256, 256, 10),
		createGradientImage(256, 256, 20),
		createGradientImage(256, 256, 30),
		createGradientImage(256, 256, 40),
	}
	g := Grid{TileSize: 256, TilesPerRow: 2}

	out, err := Stitch(tiles, g)
	if err != nil {
		t.Fatalf("Stitch failed: %v", err)
	}

	if out.Bounds() != image.Rect(0, 0, 512, 512) {
		t.Fatalf("bounds: got %v, want 512x512", out.Bounds())
	}

	// Row-major: 0 top-left, 1 top-right, 2 bottom-left, 3 bottom-right
	assertBlockEqual(t, out, image.Pt(0, 0), tiles[0], 256)
	assertBlockEqual(t, out, image.Pt(256, 0), tiles[1], 256)
	assertBlockEqual(t, out, image.Pt(0, 256), tiles[2], 256)
	assertBlockEqual(t, out, image.Pt(256, 256), tiles[3], 256)
}

func TestStitch_PartialLastRow(t *testing.T) {
	tiles := []image.Image{
		createInMemoryImage(128, 128, color.NRGBA{255, 0, 0, 255}),
		createInMemoryImage(128, 128, color.NRGBA{0, 255, 0, 255}),
		createInMemoryImage(128, 128, color.NRGBA{0, 0, 255, 255}),
	}

	out, err := Stitch(tiles, Grid{TileSize: 128, TilesPerRow: 2})
	if err != nil {
		t.Fatalf("Stitch failed: %v", err)
	}

	if out.Bounds().Dx() != 256 || out.Bounds().Dy() != 256 {
		t.Fatalf("dimensions: got %dx%d, want 256x256", out.Bounds().Dx(), out.Bounds().Dy())
	}

	assertBlockEqual(t, out, image.Pt(0, 128), tiles[2], 128)

	// The fourth cell has no tile and keeps the zero value
	for _, p := range []image.Point{{128, 128}, {200, 200}, {255, 255}} {
		if got := out.NRGBAAt(p.X, p.Y); got != (color.NRGBA{}) {
			t.Errorf("empty cell pixel at %v: got %v, want zero", p, got)
		}
	}
}

func TestStitch_CropsLargerTiles(t *testing.T) {
	big := createGradientImage(100, 80, 7)
	tiles := []image.Image{big, createGradientImage(64, 64, 8)}

	out, err := Stitch(tiles, Grid{TileSize: 64, TilesPerRow: 2})
	if err != nil {
		t.Fatalf("Stitch failed: %v", err)
	}

	if out.Bounds() != image.Rect(0, 0, 128, 64) {
		t.Fatalf("bounds: got %v, want 128x64", out.Bounds())
	}
	assertBlockEqual(t, out, image.Pt(0, 0), big, 64)
	assertBlockEqual(t, out, image.Pt(64, 0), tiles[1], 64)
}

func TestStitch_NonZeroOriginTile(t *testing.T) {
	src := createGradientImage(40, 40, 3)
	sub := src.SubImage(image.Rect(10, 10, 40, 40))

	out, err := Stitch([]image.Image{sub}, Grid{TileSize: 20, TilesPerRow: 1})
	if err != nil {
		t.Fatalf("Stitch failed: %v", err)
	}
	assertBlockEqual(t, out, image.Pt(0, 0), sub, 20)
}

func TestStitch_ConvertsColorModels(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range gray.Pix {
		gray.Pix[i] = uint8(i * 3)
	}

	out, err := Stitch([]image.Image{gray}, Grid{TileSize: 8, TilesPerRow: 1})
	if err != nil {
		t.Fatalf("Stitch failed: %v", err)
	}
	assertBlockEqual(t, out, image.Pt(0, 0), gray, 8)
}

func TestStitch_TileTooSmall(t *testing.T) {
	tiles := []image.Image{
		createInMemoryImage(64, 64, color.White),
		createInMemoryImage(64, 32, color.White),
	}

	_, err := Stitch(tiles, Grid{TileSize: 64, TilesPerRow: 2})
	if err == nil {
		t.Fatal("expected error for undersized tile")
	}

	var stitchErr *StitchError
	if !errors.As(err, &stitchErr) {
		t.Fatalf("expected *StitchError, got %T: %v", err, err)
	}
	if stitchErr.Index != 1 || stitchErr.Width != 64 || stitchErr.Height != 32 || stitchErr.TileSize != 64 {
		t.Errorf("unexpected error detail: %+v", stitchErr)
	}
}

func TestStitch_InvalidInput(t *testing.T) {
	tile := createInMemoryImage(16, 16, color.White)

	tests := []struct {
		name  string
		tiles []image.Image
		grid  Grid
	}{
		{"no tiles", nil, Grid{TileSize: 16, TilesPerRow: 1}},
		{"zero tile size", []image.Image{tile}, Grid{TileSize: 0, TilesPerRow: 1}},
		{"zero per row", []image.Image{tile}, Grid{TileSize: 16, TilesPerRow: 0}},
		{"nil tile", []image.Image{tile, nil}, Grid{TileSize: 16, TilesPerRow: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Stitch(tt.tiles, tt.grid); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGrid_CheckSize(t *testing.T) {
	tests := []struct {
		name    string
		grid    Grid
		count   int
		wantErr bool
	}{
		{"small", Grid{TileSize: 256, TilesPerRow: 4}, 16, false},
		{"exactly at custom limit", Grid{TileSize: 10, TilesPerRow: 2, MaxPixels: 400}, 4, false},
		{"over custom limit", Grid{TileSize: 10, TilesPerRow: 2, MaxPixels: 399}, 4, true},
		{"over default limit", Grid{TileSize: 4, TilesPerRow: 1 << 45}, 1, true},
		{"width overflows", Grid{TileSize: 4, TilesPerRow: math.MaxInt / 2}, 1, true},
		{"height overflows", Grid{TileSize: 1 << 32, TilesPerRow: 1}, 1 << 32, true},
		{"max per row", Grid{TileSize: 1, TilesPerRow: math.MaxInt}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grid.CheckSize(tt.count)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckSize(%d) error = %v, wantErr %v", tt.count, err, tt.wantErr)
			}
			var sizeErr *SizeError
			if tt.wantErr && !errors.As(err, &sizeErr) {
				t.Errorf("expected *SizeError, got %T", err)
			}
		})
	}
}

func TestGrid_RowsDoesNotOverflow(t *testing.T) {
	g := Grid{TileSize: 1, TilesPerRow: math.MaxInt}
	if got := g.Rows(1); got != 1 {
		t.Errorf("Rows(1): got %d, want 1", got)
	}
}

func TestStitch_RejectsOversizedComposite(t *testing.T) {
	tile := createInMemoryImage(4, 4, color.White)

	tests := []struct {
		name string
		grid Grid
	}{
		{"wrapping width", Grid{TileSize: 4, TilesPerRow: math.MaxInt / 2}},
		{"unallocatable width", Grid{TileSize: 4, TilesPerRow: 1 << 45}},
		{"custom limit", Grid{TileSize: 4, TilesPerRow: 2, MaxPixels: 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Stitch([]image.Image{tile}, tt.grid)
			var sizeErr *SizeError
			if !errors.As(err, &sizeErr) {
				t.Fatalf("expected *SizeError, got %v", err)
			}
			if out != nil {
				t.Errorf("oversized stitch returned an image with bounds %v", out.Bounds())
			}
		})
	}
}

func TestStitch_ManyTilesPlacement(t *testing.T) {
	const size = 16
	for _, perRow := range []int{1, 3, 5, 7} {
		tiles := make([]image.Image, 11)
		for i := range tiles {
			tiles[i] = createGradientImage(size, size, uint8(i*20))
		}
		g := Grid{TileSize: size, TilesPerRow: perRow}

		out, err := Stitch(tiles, g)
		if err != nil {
			t.Fatalf("perRow=%d: Stitch failed: %v", perRow, err)
		}
		if out.Bounds() != g.Bounds(len(tiles)) {
			t.Fatalf("perRow=%d: bounds %v, want %v", perRow, out.Bounds(), g.Bounds(len(tiles)))
		}
		for i, tile := range tiles {
			assertBlockEqual(t, out, g.CellOrigin(i), tile, size)
		}
	}
}
