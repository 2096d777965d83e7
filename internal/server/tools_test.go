package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	want := []string{"frame_info", "frame_evict", "overlay_detect_regions", "overlay_render"}
	if len(tools) != len(want) {
		t.Fatalf("got %d tools, want %d", len(tools), len(want))
	}
	for i, name := range want {
		if tools[i].Name != name {
			t.Errorf("tools[%d] = %s, want %s", i, tools[i].Name, name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("schema type = %v, want object", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("properties missing")
			}
			if _, ok := props["path"]; !ok {
				t.Error("path property missing")
			}

			if tool.Name == "frame_evict" {
				if _, ok := tool.InputSchema["required"]; ok {
					t.Error("frame_evict path must be optional")
				}
				return
			}
			required, ok := tool.InputSchema["required"].([]string)
			if !ok || len(required) != 1 || required[0] != "path" {
				t.Errorf("required = %v, want [path]", tool.InputSchema["required"])
			}
		})
	}
}

func TestToolDefinitions_RenderOverrides(t *testing.T) {
	var render Tool
	for _, tool := range GetToolDefinitions() {
		if tool.Name == "overlay_render" {
			render = tool
		}
	}

	props := render.InputSchema["properties"].(map[string]interface{})
	for _, key := range []string{"policy", "border_color", "cascade_file", "detector", "downscale"} {
		if _, ok := props[key]; !ok {
			t.Errorf("overlay_render missing %s", key)
		}
	}

	policy := props["policy"].(map[string]interface{})
	enum := policy["enum"].([]string)
	if len(enum) != 4 {
		t.Errorf("policy enum = %v", enum)
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer()
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 2, Method: "tools/list"})

	result := resp.Result.(map[string]interface{})
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatalf("tools type = %T", result["tools"])
	}
	if len(tools) != 4 {
		t.Errorf("got %d tools, want 4", len(tools))
	}
}
