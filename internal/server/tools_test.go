package server

import (
	"testing"
)

func toolByName(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range GetToolDefinitions() {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("tool %s not found", name)
	return Tool{}
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"contact_parse_records",
		"contact_parse_image",
		"contact_parse_batch",
		"image_preprocess",
		"ocr_info",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("Duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties should be a map")
			}

			// Every required parameter must be declared
			required, _ := tool.InputSchema["required"].([]string)
			props, _ := tool.InputSchema["properties"].(map[string]interface{})
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %s not in properties", r)
				}
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	tests := map[string][]string{
		"contact_parse_records": {"records"},
		"contact_parse_image":   {"path"},
		"contact_parse_batch":   {"paths"},
		"image_preprocess":      {"path"},
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			tool := toolByName(t, name)
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			if len(required) != len(want) {
				t.Fatalf("required: got %v, want %v", required, want)
			}
			for i := range want {
				if required[i] != want[i] {
					t.Errorf("required: got %v, want %v", required, want)
				}
			}
		})
	}

	if _, ok := toolByName(t, "ocr_info").InputSchema["required"]; ok {
		t.Error("ocr_info should not require any parameter")
	}
}

func TestToolDefinitions_ImageOptions(t *testing.T) {
	for _, name := range []string{"contact_parse_image", "contact_parse_batch"} {
		t.Run(name, func(t *testing.T) {
			props := toolByName(t, name).InputSchema["properties"].(map[string]interface{})

			defaults := map[string]interface{}{
				"language":   "eng",
				"mode":       "words",
				"row_margin": 12,
				"preprocess": true,
			}
			for param, want := range defaults {
				p, ok := props[param].(map[string]interface{})
				if !ok {
					t.Errorf("%s: parameter not found", param)
					continue
				}
				if p["default"] != want {
					t.Errorf("%s: default got %v, want %v", param, p["default"], want)
				}
			}

			mode := props["mode"].(map[string]interface{})
			enum, ok := mode["enum"].([]string)
			if !ok || len(enum) != 2 || enum[0] != "words" || enum[1] != "regions" {
				t.Errorf("mode enum: got %v, want [words regions]", mode["enum"])
			}
		})
	}
}

func TestToolDefinitions_ImageOptionsNotShared(t *testing.T) {
	// Each tool gets its own property map; adding path to one must not
	// leak into the other.
	batch := toolByName(t, "contact_parse_batch").InputSchema["properties"].(map[string]interface{})
	if _, ok := batch["path"]; ok {
		t.Error("contact_parse_batch should not declare 'path'")
	}
	single := toolByName(t, "contact_parse_image").InputSchema["properties"].(map[string]interface{})
	if _, ok := single["paths"]; ok {
		t.Error("contact_parse_image should not declare 'paths'")
	}
}

func TestToolDefinitions_RecordSchema(t *testing.T) {
	props := toolByName(t, "contact_parse_records").InputSchema["properties"].(map[string]interface{})

	records, ok := props["records"].(map[string]interface{})
	if !ok {
		t.Fatal("records property should be a map")
	}
	items, ok := records["items"].(map[string]interface{})
	if !ok {
		t.Fatal("records.items should be a map")
	}
	itemProps := items["properties"].(map[string]interface{})
	for _, field := range []string{"box", "text_raw", "text_clean", "confidence"} {
		if _, ok := itemProps[field]; !ok {
			t.Errorf("record schema missing %s", field)
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	expected := GetToolDefinitions()
	if len(toolsList) != len(expected) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expected))
	}
}
