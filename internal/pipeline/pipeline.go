// Package pipeline composes tile fetching, stitching and encoding into the
// operations exposed to callers.
//
// Data flows strictly forward: URLs are fetched and validated, the decoded
// tiles are stitched onto one composite, and the composite is encoded as
// base64 PNG. Any single failure aborts the whole operation; no partial
// image is ever returned.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ironsheep/tile-stitch-mcp/internal/imaging"
	"github.com/ironsheep/tile-stitch-mcp/internal/logging"
	"github.com/ironsheep/tile-stitch-mcp/internal/tiles"
)

// Overlay requests a debug grid drawn over the composite.
type Overlay struct {
	Color  string // Hex color "#RRGGBB" or "#RRGGBBAA"
	Labels bool   // Print each tile's index in its cell
}

// Input describes one stitch operation.
type Input struct {
	URLs        []string
	TilesPerRow int
	TileSize    int

	// Scale resizes the final composite. Zero or 1.0 leaves it untouched.
	Scale float64

	// Overlay, when non-nil, draws cell borders over the composite.
	Overlay *Overlay
}

// Result is a successfully stitched composite.
type Result struct {
	JobID       string `json:"job_id"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Rows        int    `json:"rows"`
	Columns     int    `json:"columns"`
	TileCount   int    `json:"tile_count"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// ProbeResult describes a single fetched tile.
type ProbeResult struct {
	URL            string                   `json:"url"`
	Valid          bool                     `json:"valid"`
	Reason         string                   `json:"reason,omitempty"`
	Info           *imaging.ImageInfo       `json:"info,omitempty"`
	DominantColors []imaging.ColorFrequency `json:"dominant_colors,omitempty"`
}

// Pipeline runs stitch and probe operations against a shared Fetcher.
// It is safe for concurrent use.
type Pipeline struct {
	fetcher   *tiles.Fetcher
	logger    *zap.Logger
	maxPixels int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMaxPixels caps the pixel count of the composite and of its scaled
// output. Zero means imaging.DefaultMaxPixels.
func WithMaxPixels(n int) Option {
	return func(p *Pipeline) {
		p.maxPixels = n
	}
}

// New creates a Pipeline. A nil logger discards log output.
func New(fetcher *tiles.Fetcher, logger *zap.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pipeline{fetcher: fetcher, logger: logger}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stitch fetches every tile in in.URLs, composites them on the grid and
// returns the composite as base64 PNG.
func (p *Pipeline) Stitch(ctx context.Context, in Input) (*Result, error) {
	grid := imaging.Grid{TileSize: in.TileSize, TilesPerRow: in.TilesPerRow, MaxPixels: p.maxPixels}
	if err := validate(in, grid); err != nil {
		return nil, err
	}

	jobID := uuid.NewString()
	logger := p.logger.With(zap.String("job_id", jobID))
	logger.Info("stitch started",
		zap.Int("tiles", len(in.URLs)),
		zap.Int("tiles_per_row", in.TilesPerRow),
		zap.Int("tile_size", in.TileSize))

	fetched, err := p.fetcher.Fetch(ctx, tiles.NewRequests(in.URLs), logging.NewTileObserver(logger))
	if err != nil {
		logger.Warn("stitch aborted", zap.Error(err))
		return nil, err
	}

	composite, err := imaging.Stitch(tiles.Images(fetched), grid)
	if err != nil {
		logger.Warn("stitch aborted", zap.Error(err))
		return nil, err
	}
	for i := range fetched {
		origin := grid.CellOrigin(i)
		logger.Debug("tile placed", zap.Int("tile", i+1), zap.Int("x", origin.X), zap.Int("y", origin.Y))
	}

	var out image.Image = composite
	if in.Overlay != nil {
		out = imaging.DrawTileGrid(out, grid, len(fetched), in.Overlay.Color, in.Overlay.Labels)
	}
	if in.Scale != 0 {
		if out, err = imaging.Scale(out, in.Scale, p.maxPixels); err != nil {
			return nil, err
		}
	}

	encoded, err := imaging.EncodeBase64(out)
	if err != nil {
		logger.Error("encode failed", zap.Error(err))
		return nil, err
	}

	bounds := out.Bounds()
	logger.Info("stitch complete", zap.Int("width", bounds.Dx()), zap.Int("height", bounds.Dy()))

	return &Result{
		JobID:       jobID,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Rows:        grid.Rows(len(in.URLs)),
		Columns:     in.TilesPerRow,
		TileCount:   len(in.URLs),
		ImageBase64: encoded,
		MimeType:    imaging.MimeTypePNG,
	}, nil
}

// Probe fetches a single tile and reports whether it would be accepted.
//
// A placeholder tile is not an error here: it comes back with Valid false
// and the rejection reason. Transport and decode failures are returned as
// errors.
func (p *Pipeline) Probe(ctx context.Context, url string) (*ProbeResult, error) {
	if url == "" {
		return nil, errors.New("url is required")
	}

	logger := p.logger.With(zap.String("job_id", uuid.NewString()))
	tile, err := p.fetcher.FetchOne(ctx, tiles.Request{URL: url}, logging.NewTileObserver(logger))

	var invalid *tiles.InvalidTileError
	switch {
	case errors.As(err, &invalid):
		res := &ProbeResult{URL: url, Valid: false, Reason: invalid.Error()}
		if invalid.Reason == tiles.ReasonDimensions {
			res.Info = &imaging.ImageInfo{Width: invalid.Width, Height: invalid.Height}
		}
		return res, nil
	case err != nil:
		return nil, err
	}

	return &ProbeResult{
		URL:            url,
		Valid:          true,
		Info:           tile.Info,
		DominantColors: imaging.DominantColors(tile.Image, 3),
	}, nil
}

func validate(in Input, grid imaging.Grid) error {
	if len(in.URLs) == 0 {
		return errors.New("at least one tile url is required")
	}
	for i, u := range in.URLs {
		if u == "" {
			return fmt.Errorf("tile url %d is empty", i)
		}
	}
	if err := grid.Validate(); err != nil {
		return err
	}
	if err := grid.CheckSize(len(in.URLs)); err != nil {
		return err
	}
	if in.Scale < 0 {
		return fmt.Errorf("scale must not be negative, got %g", in.Scale)
	}
	return nil
}
