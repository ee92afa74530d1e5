// Package server implements the MCP (Model Context Protocol) server that
// exposes tile stitching to MCP clients.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - tiles_stitch: Fetch tiles by URL and return the composite as base64 PNG
//   - tiles_probe: Fetch one tile and report its metadata and validity
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, naming the failing tile and cause
//
// A stitch either succeeds completely or fails; there are no partial images.
//
// # Usage
//
//	srv := server.New(pipeline.New(fetcher, logger), logger)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
