package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/region-overlay-mcp/internal/config"
	"github.com/ironsheep/region-overlay-mcp/internal/frame"
	"github.com/ironsheep/region-overlay-mcp/internal/overlay"
	"github.com/ironsheep/region-overlay-mcp/internal/region"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "frame_info", "overlay_render").
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
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool call failed", "tool", params.Name, "error", err)
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "frame_info":
		return s.handleFrameInfo(args)
	case "frame_evict":
		return s.handleFrameEvict(args)
	case "overlay_detect_regions":
		return s.handleDetectRegions(args)
	case "overlay_render":
		return s.handleRender(args)
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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type frameInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleFrameInfo(args json.RawMessage) (interface{}, error) {
	var a frameInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return frame.LoadInfo(s.cache, a.Path)
}

type frameEvictArgs struct {
	Path string `json:"path"`
}

// EvictResult reports what frame_evict dropped.
type EvictResult struct {
	Path    string `json:"path,omitempty"`
	Cleared bool   `json:"cleared"`
}

// handleFrameEvict drops one cached image, or the whole cache when no path is
// given, so the next call re-reads the file from disk.
func (s *Server) handleFrameEvict(args json.RawMessage) (interface{}, error) {
	var a frameEvictArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	if a.Path == "" {
		s.cache.Clear()
		s.logger.Debug("image cache cleared")
		return &EvictResult{Cleared: true}, nil
	}
	s.cache.Evict(a.Path)
	s.logger.Debug("image evicted from cache", "path", a.Path)
	return &EvictResult{Path: a.Path}, nil
}

// nodeArgs are the per-call overrides accepted by the overlay tools. Zero
// values keep the server configuration.
type nodeArgs struct {
	Path        string  `json:"path"`
	CascadeFile string  `json:"cascade_file"`
	Detector    string  `json:"detector"`
	Downscale   float64 `json:"downscale"`
	Policy      string  `json:"policy"`
	BorderColor string  `json:"border_color"`

	// LabelRegions is read by overlay_render only.
	LabelRegions bool `json:"label_regions"`
}

func (a nodeArgs) apply(cfg config.Config) config.Config {
	if a.CascadeFile != "" {
		cfg.CascadeFile = a.CascadeFile
	}
	if a.Detector != "" {
		cfg.Detector = a.Detector
	}
	if a.Downscale != 0 {
		cfg.Downscale = a.Downscale
	}
	if a.Policy != "" {
		cfg.Policy = a.Policy
	}
	if a.BorderColor != "" {
		cfg.BorderColor = a.BorderColor
	}
	return cfg
}

// newNode builds a fresh node for one call, so concurrent calls never share
// lifecycle state.
func (s *Server) newNode(a nodeArgs) (*overlay.Node, error) {
	opts := []overlay.Option{overlay.WithLogger(s.logger)}
	if s.detector != nil {
		opts = append(opts, overlay.WithDetector(s.detector))
	}
	return overlay.New(a.apply(s.cfg), opts...)
}

// DetectResult reports the region set detected for one image.
type DetectResult struct {
	// Present is false when no classifier ran, either because none is
	// configured or because it failed to load (see Warning).
	Present bool            `json:"present"`
	Count   int             `json:"count"`
	Regions []region.Region `json:"regions"`
	Warning string          `json:"warning,omitempty"`
}

func (s *Server) handleDetectRegions(args json.RawMessage) (interface{}, error) {
	var a nodeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	f, err := s.cache.Frame(a.Path)
	if err != nil {
		return nil, err
	}
	n, err := s.newNode(a)
	if err != nil {
		return nil, err
	}

	if err := n.Open(context.Background(), f); err != nil {
		return nil, err
	}
	defer n.Close()

	set := n.Regions()
	result := &DetectResult{
		Present: set.Present(),
		Count:   set.Len(),
		Regions: set.Regions(),
	}
	if result.Regions == nil {
		result.Regions = []region.Region{}
	}
	if w := n.Warning(); w != nil {
		result.Warning = w.Error()
	}
	return result, nil
}

// RenderResult contains a composited image encoded as base64 PNG.
type RenderResult struct {
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Policy         string `json:"policy"`
	RegionsPresent bool   `json:"regions_present"`
	RegionCount    int    `json:"region_count"`
	Warning        string `json:"warning,omitempty"`
	ImageBase64    string `json:"image_base64"`
	MimeType       string `json:"mime_type"`
}

func (s *Server) handleRender(args json.RawMessage) (interface{}, error) {
	var a nodeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	n, err := s.newNode(a)
	if err != nil {
		return nil, err
	}

	out, err := overlay.RenderImage(context.Background(), n, img)
	if err != nil {
		return nil, err
	}

	if a.LabelRegions {
		overlay.LabelRegions(out.Image, out.Regions)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out.Image, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	bounds := out.Image.Bounds()
	result := &RenderResult{
		Width:          bounds.Dx(),
		Height:         bounds.Dy(),
		Policy:         n.Policy().String(),
		RegionsPresent: out.Regions.Present(),
		RegionCount:    out.Regions.Len(),
		ImageBase64:    base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:       "image/png",
	}
	if out.Warning != nil {
		result.Warning = out.Warning.Error()
	}
	return result, nil
}
