package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// recordSchema describes one detection record.
var recordSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"box": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "integer"},
			"minItems":    4,
			"description": "Bounding box [x0, y0, x1, y1] in pixels, y increasing downward",
		},
		"text_raw": map[string]interface{}{
			"type":        "string",
			"description": "Unprocessed OCR output (ignored by the parser)",
		},
		"text_clean": map[string]interface{}{
			"type":        "string",
			"description": "Normalized text used for parsing",
		},
		"confidence": map[string]interface{}{
			"type":        "number",
			"description": "Recognizer confidence, either 0-1 or 0-100",
		},
	},
	"required": []string{"box", "text_clean"},
}

// imageOptionProperties returns the schema properties shared by the image
// parsing tools.
func imageOptionProperties() map[string]interface{} {
	return map[string]interface{}{
		"language": map[string]interface{}{
			"type":        "string",
			"description": "Tesseract language code, e.g. 'eng' or 'eng+hin'. Default from server config ('eng')",
			"default":     "eng",
		},
		"mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"words", "regions"},
			"description": "'words' recognizes the whole card once; 'regions' re-reads each padded text line separately",
			"default":     "words",
		},
		"row_margin": map[string]interface{}{
			"type":        "integer",
			"description": "Max vertical distance in pixels between a box midpoint and a row anchor for the box to join the row",
			"default":     12,
		},
		"preprocess": map[string]interface{}{
			"type":        "boolean",
			"description": "Apply grayscale, dark-card inversion and denoising before OCR",
			"default":     true,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	parseImageProps := imageOptionProperties()
	parseImageProps["path"] = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the card image (PNG, JPEG or GIF)",
	}

	batchProps := imageOptionProperties()
	batchProps["paths"] = map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"minItems":    1,
		"description": "Absolute paths to card images",
	}

	return []Tool{
		// Contact parsing
		{
			Name:        "contact_parse_records",
			Description: "Parse already-recognized OCR boxes into a structured contact (name, designation, company, phones, emails, websites, address). Returns the records and the parsed contact.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"records": map[string]interface{}{
						"type":        "array",
						"items":       recordSchema,
						"description": "Detection records in reading order or any order",
					},
					"row_margin": map[string]interface{}{
						"type":        "integer",
						"description": "Max vertical distance in pixels between a box midpoint and a row anchor",
						"default":     12,
					},
				},
				"required": []string{"records"},
			},
		},
		{
			Name:        "contact_parse_image",
			Description: "Run OCR on a business card image and parse the text into a structured contact. Returns the image name, a request id, the per-box OCR results and the parsed contact.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": parseImageProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "contact_parse_batch",
			Description: "Parse several business card images concurrently. Each item carries either its parse result or its own error message.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": batchProps,
				"required":   []string{"paths"},
			},
		},

		// Helpers
		{
			Name:        "image_preprocess",
			Description: "Return the preprocessed card image (as fed to OCR) as base64-encoded PNG. Useful to check why a card parses poorly.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the card image",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "ocr_info",
			Description: "Report the Tesseract version and whether the given language data loads.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code to check",
						"default":     "eng",
					},
				},
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
