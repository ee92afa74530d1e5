// Package main provides the tile-stitch-mcp entrypoint.
//
// With no command it runs the MCP server over stdin/stdout. The stitch and
// probe commands run a single job from the shell, which is handy when
// checking a tile source before wiring it into an MCP client.
//
// Usage:
//
//	tile-stitch-mcp [--config file] [--log-level level] [command]
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "tile-stitch-mcp",
		Usage:   "MCP server that downloads map tiles and stitches them into one PNG",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Description: "Logs go to stderr as JSON; stdout carries the MCP protocol.\n" +
			"Set TILE_STITCH_LOG_LEVEL=debug to log every tile placement.",
		Flags:          globalFlags(),
		Action:         serveAction,
		ExitErrHandler: exitErrHandler,
		Commands: []*cli.Command{
			serveCommand(),
			stitchCommand(),
			probeCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to a YAML config file",
			EnvVars: []string{"TILE_STITCH_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log level (debug, info, warn, error); overrides TILE_STITCH_LOG_LEVEL and the config file",
		},
	}
}

// exitErrHandler prints the error and exits, preserving codes from cli.Exit.
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
