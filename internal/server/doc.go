// Package server implements the MCP (Model Context Protocol) host for the
// region-overlay engine.
//
// The server is the reference host: it decodes image files, drives one
// overlay.Node through a complete frame lifecycle per tool call, and returns
// the detected regions or the composited image.
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
//   - frame_info: Decode an image and report width, height and format
//   - frame_evict: Drop one cached image, or the whole cache
//   - overlay_detect_regions: Run the classifier once and list the regions
//   - overlay_render: Composite the regions with a render policy (attenuate,
//     edge, mask or circle), return PNG
//
// The overlay tools accept cascade_file, detector, downscale, policy and
// border_color arguments that override the server configuration for that call
// only.
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process. Nodes are
// not cached: every call builds, detects, renders and closes its own node.
//
// # Error Handling
//
//   - -32601: Method not found
//   - -32602: Invalid params (malformed JSON)
//   - -32000: Tool execution failed (bad path, invalid override, aborted build)
//
// A classifier that cannot be loaded is not an error. The call succeeds with
// present=false and the reason in the warning field.
package server
