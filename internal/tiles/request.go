package tiles

import (
	"image"

	"github.com/ironsheep/tile-stitch-mcp/internal/imaging"
)

// Request identifies one tile to fetch. Index is the tile's position in the
// caller's input and decides its grid cell.
type Request struct {
	Index int    `json:"index"`
	URL   string `json:"url"`
}

// NewRequests builds requests for urls, indexed in input order.
func NewRequests(urls []string) []Request {
	reqs := make([]Request, len(urls))
	for i, u := range urls {
		reqs[i] = Request{Index: i, URL: u}
	}
	return reqs
}

// Tile is a successfully fetched and validated tile.
type Tile struct {
	Request Request
	Image   image.Image
	Info    *imaging.ImageInfo
}

// Images returns the decoded images of tiles in order.
func Images(tiles []*Tile) []image.Image {
	imgs := make([]image.Image, len(tiles))
	for i, t := range tiles {
		imgs[i] = t.Image
	}
	return imgs
}
