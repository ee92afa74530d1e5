package imaging

import "fmt"

// StitchError reports a tile that cannot fill its grid cell.
//
// Tiles are read only within their top-left TileSize×TileSize block, so a
// tile narrower or shorter than TileSize would be read out of bounds.
type StitchError struct {
	Index    int // Position of the tile in the input sequence
	Width    int // Decoded tile width
	Height   int // Decoded tile height
	TileSize int // Required edge length
}

func (e *StitchError) Error() string {
	return fmt.Sprintf("tile %d is %dx%d, smaller than tile size %d", e.Index, e.Width, e.Height, e.TileSize)
}

// SizeError reports an output image too large to allocate. Width and
// Height are zero when the requested size is not representable at all.
type SizeError struct {
	Width     int
	Height    int
	MaxPixels int
}

func (e *SizeError) Error() string {
	if e.Width == 0 || e.Height == 0 {
		return fmt.Sprintf("image size overflows (limit %d pixels)", e.MaxPixels)
	}
	return fmt.Sprintf("image of %dx%d exceeds limit of %d pixels", e.Width, e.Height, e.MaxPixels)
}

// EncodeError wraps a failure to serialize an image to PNG.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode image: %v", e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
