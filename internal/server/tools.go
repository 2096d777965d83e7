package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// nodeProperties are the per-call overrides shared by the overlay tools.
func nodeProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the source image file",
		},
		"cascade_file": map[string]interface{}{
			"type":        "string",
			"description": "Classifier cascade file. Overrides the server config; empty keeps it.",
		},
		"detector": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"pigo", "opencv"},
			"description": "Detector adapter used to read the cascade",
		},
		"downscale": map[string]interface{}{
			"type":        "number",
			"description": "Divide the detector working resolution by this factor (>= 1)",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	renderProps := nodeProperties()
	renderProps["policy"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"attenuate", "edge", "mask", "circle"},
		"description": "Render policy: attenuate by overlap, highlight region edges, binary mask, or ring each region",
	}
	renderProps["border_color"] = map[string]interface{}{
		"type":        "string",
		"description": "Edge and ring color as #RRGGBB or r,g,b floats in [0,1]",
	}
	renderProps["label_regions"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Draw each region's index at its top-left corner",
		"default":     false,
	}

	return []Tool{
		{
			Name:        "frame_info",
			Description: "Load an image file and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "frame_evict",
			Description: "Drop a decoded image from the server cache so the next call re-reads the file. Without a path the whole cache is cleared.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Image path to evict; empty clears every cached image",
					},
				},
			},
		},
		{
			Name:        "overlay_detect_regions",
			Description: "Run the configured classifier once over an image and return the detected regions in image coordinates (origin top-left). present=false means no classifier ran.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": nodeProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "overlay_render",
			Description: "Detect regions in an image and composite them onto it with the chosen render policy. Returns a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": renderProps,
				"required":   []string{"path"},
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
