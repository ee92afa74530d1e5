package logging

import (
	"go.uber.org/zap"

	"github.com/ironsheep/tile-stitch-mcp/internal/imaging"
	"github.com/ironsheep/tile-stitch-mcp/internal/tiles"
)

// TileObserver reports fetch progress to a zap logger. Tile numbers in the
// log are 1-based, matching how operators count tiles on a map.
type TileObserver struct {
	logger *zap.Logger
}

// NewTileObserver returns an observer that logs through logger. A nil
// logger discards everything.
func NewTileObserver(logger *zap.Logger) *TileObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TileObserver{logger: logger}
}

var _ tiles.Observer = (*TileObserver)(nil)

func (o *TileObserver) DownloadStarted(req tiles.Request) {
	o.logger.Info("downloading tile",
		zap.Int("tile", req.Index+1),
		zap.String("url", req.URL))
}

func (o *TileObserver) PayloadReceived(req tiles.Request, statusCode, size int) {
	o.logger.Info("tile payload received",
		zap.Int("tile", req.Index+1),
		zap.Int("status", statusCode),
		zap.Int("bytes", size))
}

func (o *TileObserver) TileDecoded(req tiles.Request, info *imaging.ImageInfo) {
	o.logger.Info("tile decoded",
		zap.Int("tile", req.Index+1),
		zap.Int("width", info.Width),
		zap.Int("height", info.Height),
		zap.String("format", info.Format))
}

func (o *TileObserver) TileRejected(req tiles.Request, err *tiles.InvalidTileError) {
	o.logger.Warn("invalid tile, aborting stitch",
		zap.Int("tile", req.Index+1),
		zap.String("url", req.URL),
		zap.String("reason", string(err.Reason)),
		zap.Error(err))
}
