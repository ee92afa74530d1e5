package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ironsheep/tile-stitch-mcp/internal/config"
	"github.com/ironsheep/tile-stitch-mcp/internal/imaging"
	"github.com/ironsheep/tile-stitch-mcp/internal/logging"
	"github.com/ironsheep/tile-stitch-mcp/internal/pipeline"
	"github.com/ironsheep/tile-stitch-mcp/internal/server"
	"github.com/ironsheep/tile-stitch-mcp/internal/tiles"
)

// setup loads the config named by --config and builds the logger and
// pipeline shared by every command.
func setup(c *cli.Context) (*pipeline.Pipeline, *zap.Logger, error) {
	cfg := &config.Config{}
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, nil, cli.Exit(err.Error(), 2)
		}
		cfg = loaded
	}

	logger, err := logging.New(logLevel(c, cfg))
	if err != nil {
		return nil, nil, cli.Exit(err.Error(), 2)
	}

	fetcher := tiles.NewFetcher(&http.Client{}, cfg.FetcherOptions()...)
	return pipeline.New(fetcher, logger, cfg.PipelineOptions()...), logger, nil
}

// logLevel picks the log level: --log-level, then TILE_STITCH_LOG_LEVEL,
// then the config file.
func logLevel(c *cli.Context, cfg *config.Config) string {
	if c.IsSet("log-level") {
		return c.String("log-level")
	}
	return logging.ResolveLevel(cfg.Log.Level)
}

func signalContext(c *cli.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the MCP server over stdin/stdout (default)",
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	p, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	server.ServerVersion = Version
	logger.Info("tile-stitch-mcp starting",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit", GitCommit))

	ctx, stop := signalContext(c)
	defer stop()

	if err := server.New(p, logger).Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func stitchCommand() *cli.Command {
	return &cli.Command{
		Name:      "stitch",
		Usage:     "Stitch the given tile URLs into one PNG",
		ArgsUsage: "<url> [url...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "tiles-per-row",
				Aliases:  []string{"r"},
				Usage:    "number of tiles in each row",
				Required: true,
			},
			&cli.IntFlag{
				Name:     "tile-size",
				Aliases:  []string{"s"},
				Usage:    "edge length of each tile in pixels",
				Required: true,
			},
			&cli.Float64Flag{
				Name:  "scale",
				Usage: "scale factor applied to the composite",
				Value: 1.0,
			},
			&cli.BoolFlag{
				Name:  "grid",
				Usage: "draw tile borders and indices over the composite",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "write the PNG to this file instead of printing base64 to stdout",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("at least one tile url is required", 2)
			}

			p, logger, err := setup(c)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signalContext(c)
			defer stop()

			in := pipeline.Input{
				URLs:        c.Args().Slice(),
				TilesPerRow: c.Int("tiles-per-row"),
				TileSize:    c.Int("tile-size"),
				Scale:       c.Float64("scale"),
			}
			if c.Bool("grid") {
				in.Overlay = &pipeline.Overlay{Color: imaging.DefaultGridColor, Labels: true}
			}

			res, err := p.Stitch(ctx, in)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			out := c.String("out")
			if out == "" {
				fmt.Fprintln(c.App.Writer, res.ImageBase64)
				return nil
			}

			data, err := base64.StdEncoding.DecodeString(res.ImageBase64)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(c.App.ErrWriter, "wrote %s (%dx%d, %d tiles)\n", out, res.Width, res.Height, res.TileCount)
			return nil
		},
	}
}

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     "Download one tile and report whether it would be accepted",
		ArgsUsage: "<url>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("probe takes exactly one url", 2)
			}

			p, logger, err := setup(c)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signalContext(c)
			defer stop()

			res, err := p.Probe(ctx, c.Args().First())
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			enc := json.NewEncoder(c.App.Writer)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
			if !res.Valid {
				return cli.Exit("", 3)
			}
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(c *cli.Context) error {
			fmt.Fprintf(c.App.Writer, "tile-stitch-mcp %s\n", Version)
			fmt.Fprintf(c.App.Writer, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(c.App.Writer, "  Git commit: %s\n", GitCommit)
			return nil
		},
	}
}
