package tiles

import (
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/tile-stitch-mcp/internal/imaging"
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout bounds each tile download, including the body read.
// Zero means no timeout beyond whatever the client enforces.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithConcurrency caps the number of downloads in flight.
// Zero means one concurrent task per request.
func WithConcurrency(n int) Option {
	return func(f *Fetcher) {
		f.concurrency = n
	}
}

// WithInvalidTilePolicy replaces the placeholder detection policy.
func WithInvalidTilePolicy(p InvalidTilePolicy) Option {
	return func(f *Fetcher) {
		f.policy = p
	}
}

// Fetcher downloads and validates tiles. It holds no per-call state, so a
// single Fetcher (and its client) is shared by every concurrent task.
type Fetcher struct {
	client      Doer
	timeout     time.Duration
	concurrency int
	policy      InvalidTilePolicy
}

// NewFetcher creates a Fetcher around client. A nil client means
// http.DefaultClient.
func NewFetcher(client Doer, opts ...Option) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	f := &Fetcher{
		client: client,
		policy: DefaultInvalidTilePolicy(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Policy returns the placeholder detection policy in effect.
func (f *Fetcher) Policy() InvalidTilePolicy {
	return f.policy
}

// Fetch retrieves every request concurrently and returns the tiles in
// request order.
//
// All downloads run to completion before Fetch returns, even when one fails
// early. If any tile fails, the first failure reported is returned and no
// tiles are; which failure that is when several tiles fail is not defined.
func (f *Fetcher) Fetch(ctx context.Context, reqs []Request, obs Observer) ([]*Tile, error) {
	if obs == nil {
		obs = NopObserver{}
	}

	tiles := make([]*Tile, len(reqs))

	// A plain Group: failures must not cancel sibling downloads.
	var g errgroup.Group
	if f.concurrency > 0 {
		g.SetLimit(f.concurrency)
	}

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &TaskError{Request: req, Value: r}
				}
			}()

			tile, err := f.FetchOne(ctx, req, obs)
			if err != nil {
				return err
			}
			tiles[i] = tile
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tiles, nil
}

// FetchOne downloads, checks and decodes a single tile.
//
// The payload-length check runs on the raw body before any decoding; a
// matching payload is never decoded. The dimension check runs on the
// decoded image.
//
// Returns *TransportError, *InvalidTileError or *DecodeError on failure.
func (f *Fetcher) FetchOne(ctx context.Context, req Request, obs Observer) (*Tile, error) {
	if obs == nil {
		obs = NopObserver{}
	}

	obs.DownloadStarted(req)
	data, status, err := f.download(ctx, req)
	if err != nil {
		return nil, err
	}
	obs.PayloadReceived(req, status, len(data))

	if f.policy.RejectsPayload(len(data)) {
		invalid := &InvalidTileError{Request: req, Reason: ReasonPayloadLength, Size: len(data)}
		obs.TileRejected(req, invalid)
		return nil, invalid
	}

	img, info, err := imaging.Decode(data)
	if err != nil {
		return nil, &DecodeError{Request: req, Err: err}
	}
	obs.TileDecoded(req, info)

	if f.policy.RejectsDimensions(info.Width, info.Height) {
		invalid := &InvalidTileError{Request: req, Reason: ReasonDimensions, Width: info.Width, Height: info.Height}
		obs.TileRejected(req, invalid)
		return nil, invalid
	}

	return &Tile{Request: req, Image: img, Info: info}, nil
}

// download performs the GET and reads the full body. Non-2xx responses are
// returned like any other; their bodies fail the later checks.
func (f *Fetcher) download(ctx context.Context, req Request) ([]byte, int, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, 0, &TransportError{Request: req, Err: err}
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, 0, &TransportError{Request: req, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &TransportError{Request: req, Err: err}
	}
	return data, resp.StatusCode, nil
}
