package server

import "github.com/ironsheep/tile-stitch-mcp/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name: "tiles_stitch",
			Description: "Download square map tiles from the given URLs and stitch them into one PNG, placed row by row. " +
				"Returns the composite as base64-encoded PNG. Fails as a whole if any tile cannot be downloaded, " +
				"cannot be decoded, or is the upstream placeholder tile.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"urls": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"minItems":    1,
						"description": "Tile URLs in placement order (row-major)",
					},
					"tiles_per_row": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"description": "Number of tiles in each row of the output",
					},
					"tile_size": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"description": "Edge length of each square tile in pixels (e.g., 256)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor applied to the composite. Default 1.0",
						"default":     1.0,
					},
					"show_grid": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw tile borders over the composite",
						"default":     false,
					},
					"show_labels": map[string]interface{}{
						"type":        "boolean",
						"description": "With show_grid, print each tile's index in its cell",
						"default":     false,
					},
					"grid_color": map[string]interface{}{
						"type":        "string",
						"description": "Grid color in hex (e.g., '#FF0000' or '#FF000080' with alpha)",
						"default":     imaging.DefaultGridColor,
					},
				},
				"required": []string{"urls", "tiles_per_row", "tile_size"},
			},
		},
		{
			Name:        "tiles_probe",
			Description: "Download a single tile and report its dimensions, format, dominant colors, and whether it would be rejected as a placeholder.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"url": map[string]interface{}{
						"type":        "string",
						"description": "Tile URL",
					},
				},
				"required": []string{"url"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
