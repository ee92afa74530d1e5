package server

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/ironsheep/tile-stitch-mcp/internal/imaging"
	"github.com/ironsheep/tile-stitch-mcp/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "tiles_stitch").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", zap.String("tool", params.Name), zap.Error(err))
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
// A panicking handler is reported as an error so one bad call cannot take
// the server down.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tool panicked", zap.String("tool", name), zap.Any("panic", r), zap.Stack("stack"))
			result, err = nil, fmt.Errorf("tool %s panicked: %v", name, r)
		}
	}()

	switch name {
	case "tiles_stitch":
		return s.handleTilesStitch(ctx, args)
	case "tiles_probe":
		return s.handleTilesProbe(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type tilesStitchArgs struct {
	URLs        []string `json:"urls"`
	TilesPerRow int      `json:"tiles_per_row"`
	TileSize    int      `json:"tile_size"`
	Scale       float64  `json:"scale"`
	ShowGrid    bool     `json:"show_grid"`
	ShowLabels  bool     `json:"show_labels"`
	GridColor   string   `json:"grid_color"`
}

func (s *Server) handleTilesStitch(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a tilesStitchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if a.GridColor == "" {
		a.GridColor = imaging.DefaultGridColor
	}

	in := pipeline.Input{
		URLs:        a.URLs,
		TilesPerRow: a.TilesPerRow,
		TileSize:    a.TileSize,
		Scale:       a.Scale,
	}
	if a.ShowGrid {
		in.Overlay = &pipeline.Overlay{Color: a.GridColor, Labels: a.ShowLabels}
	}
	return s.pipeline.Stitch(ctx, in)
}

type tilesProbeArgs struct {
	URL string `json:"url"`
}

func (s *Server) handleTilesProbe(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a tilesProbeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.pipeline.Probe(ctx, a.URL)
}
