// Package imaging provides the raster side of tile stitching: decoding tile
// payloads, laying tiles out on a grid, and encoding the composite for
// transport.
//
// Nothing in this package knows about networking. Callers hand it decoded
// images (or raw bytes for Decode) and get images or encoded text back.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Rectangles are half-open: Min is inclusive, Max is exclusive
//
// Tile i of a grid occupies the cell at row i / TilesPerRow and column
// i % TilesPerRow, so tiles fill the composite in row-major order.
//
// # Pixel Format
//
// The composite is an *image.NRGBA: 8-bit, 4-channel, non-premultiplied.
// Non-premultiplied storage means a PNG encode/decode round trip reproduces
// every pixel exactly, including partially transparent ones. Cells with no
// tile stay at the zero value (transparent black).
//
// # Thread Safety
//
// All functions are stateless. Stitch parallelises placement internally;
// every tile owns a disjoint region of the composite so no locking is needed.
//
// # Error Handling
//
// Geometry and encoding failures are reported as typed errors:
//   - *StitchError: a tile is smaller than the grid's tile edge
//   - *EncodeError: the composite could not be serialized to PNG
package imaging
