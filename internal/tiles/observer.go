package tiles

import "github.com/ironsheep/tile-stitch-mcp/internal/imaging"

// Observer receives progress notifications from a Fetcher. Implementations
// must be safe for concurrent use; calls arrive from every fetch task.
type Observer interface {
	// DownloadStarted is called before the request is sent.
	DownloadStarted(req Request)

	// PayloadReceived is called once the full body has been read.
	PayloadReceived(req Request, statusCode int, size int)

	// TileDecoded is called after a payload decodes successfully.
	TileDecoded(req Request, info *imaging.ImageInfo)

	// TileRejected is called when a tile matches the placeholder signature.
	TileRejected(req Request, err *InvalidTileError)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) DownloadStarted(Request) {}
func (NopObserver) PayloadReceived(Request, int, int) {}
func (NopObserver) TileDecoded(Request, *imaging.ImageInfo) {}
func (NopObserver) TileRejected(Request, *InvalidTileError) {}
