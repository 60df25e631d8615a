package server

import (
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/contact-extract-mcp/internal/contact"
	"github.com/ironsheep/contact-extract-mcp/internal/imaging"
	"github.com/ironsheep/contact-extract-mcp/internal/ocr"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "contact_parse_image").
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
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"tool":  params.Name,
			"error": err.Error(),
		}).Warn("tool execution failed")
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
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
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}

	switch name {
	// Contact parsing
	case "contact_parse_records":
		return s.handleParseRecords(args)
	case "contact_parse_image":
		return s.handleParseImage(args)
	case "contact_parse_batch":
		return s.handleParseBatch(args)

	// Helpers
	case "image_preprocess":
		return s.handleImagePreprocess(args)
	case "ocr_info":
		return s.handleOCRInfo(args)

	default:
		return nil, eris.Errorf("unknown tool: %s", name)
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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Result Types ===

// ParseResult is the output of contact_parse_records: the input records
// echoed back beside the parsed contact.
type ParseResult struct {
	Results []contact.DetectionRecord `json:"results"`
	Parsed  *contact.ParsedContact    `json:"parsed"`
}

// ImageParseResult is the output of contact_parse_image.
type ImageParseResult struct {
	// Image is the base name of the parsed file.
	Image string `json:"image"`

	// RequestID identifies this parse in the server log.
	RequestID string `json:"request_id"`

	Results []contact.DetectionRecord `json:"results"`
	Parsed  *contact.ParsedContact    `json:"parsed"`
}

// BatchItem is one entry of a contact_parse_batch result. Exactly one of
// the embedded result and Error is set.
type BatchItem struct {
	Path string `json:"path"`
	*ImageParseResult
	Error string `json:"error,omitempty"`
}

// BatchResult is the output of contact_parse_batch. Items are in the order
// of the requested paths.
type BatchResult struct {
	Items []BatchItem `json:"items"`
	Count int         `json:"count"`
}

// === Contact Parsing Handlers ===

type parseRecordsArgs struct {
	Records   []contact.DetectionRecord `json:"records"`
	RowMargin *int                      `json:"row_margin,omitempty"`
}

func (s *Server) handleParseRecords(args json.RawMessage) (interface{}, error) {
	var a parseRecordsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Records == nil {
		return nil, eris.New("records is required")
	}
	margin, err := s.rowMargin(a.RowMargin)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	parsed := contact.ParseWithOptions(a.Records, contact.Options{RowMargin: margin})

	s.log.WithFields(logrus.Fields{
		"tool":     "contact_parse_records",
		"records":  len(a.Records),
		"lines":    len(parsed.RawLines),
		"duration": time.Since(start),
	}).Info("parsed contact")

	return &ParseResult{Results: a.Records, Parsed: parsed}, nil
}

// imageOptions are the recognition options shared by the image tools.
type imageOptions struct {
	Language   string `json:"language,omitempty"`
	Mode       string `json:"mode,omitempty"`
	RowMargin  *int   `json:"row_margin,omitempty"`
	Preprocess *bool  `json:"preprocess,omitempty"`
}

type parseImageArgs struct {
	Path string `json:"path"`
	imageOptions
}

func (s *Server) handleParseImage(args json.RawMessage) (interface{}, error) {
	var a parseImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, eris.New("path is required")
	}
	plan, err := s.planImageParse(a.imageOptions)
	if err != nil {
		return nil, err
	}
	return s.parseImage("contact_parse_image", a.Path, plan)
}

type parseBatchArgs struct {
	Paths []string `json:"paths"`
	imageOptions
}

func (s *Server) handleParseBatch(args json.RawMessage) (interface{}, error) {
	var a parseBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, eris.New("paths is required")
	}
	plan, err := s.planImageParse(a.imageOptions)
	if err != nil {
		return nil, err
	}

	items := make([]BatchItem, len(a.Paths))

	var g errgroup.Group
	g.SetLimit(s.cfg.Server.MaxWorkers)
	for i, path := range a.Paths {
		i, path := i, path
		g.Go(func() error {
			items[i].Path = path
			res, err := s.parseImage("contact_parse_batch", path, plan)
			if err != nil {
				items[i].Error = err.Error()
				return nil
			}
			items[i].ImageParseResult = res
			return nil
		})
	}
	// Workers never return errors; failures are reported per item.
	_ = g.Wait()

	return &BatchResult{Items: items, Count: len(items)}, nil
}

// parsePlan is a validated set of options for one or more image parses.
type parsePlan struct {
	recognizer ocr.Options
	rowMargin  int
	preprocess bool
}

func (s *Server) planImageParse(o imageOptions) (parsePlan, error) {
	plan := parsePlan{
		recognizer: s.cfg.Recognizer,
		preprocess: true,
	}
	if o.Language != "" {
		plan.recognizer.Language = o.Language
	}
	if o.Mode != "" {
		plan.recognizer.Mode = ocr.Mode(o.Mode)
	}
	if err := plan.recognizer.Validate(); err != nil {
		return parsePlan{}, err
	}
	if o.Preprocess != nil {
		plan.preprocess = *o.Preprocess
	}

	margin, err := s.rowMargin(o.RowMargin)
	if err != nil {
		return parsePlan{}, err
	}
	plan.rowMargin = margin
	return plan, nil
}

// parseImage loads, optionally preprocesses, recognizes and parses one card.
func (s *Server) parseImage(tool, path string, plan parsePlan) (*ImageParseResult, error) {
	requestID := uuid.NewString()
	logger := s.log.WithFields(logrus.Fields{
		"tool":       tool,
		"request_id": requestID,
		"path":       path,
	})
	start := time.Now()

	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	if plan.preprocess {
		img = imaging.Preprocess(img, s.cfg.Preprocess)
	}

	records, err := ocr.Recognize(img, plan.recognizer)
	if err != nil {
		logger.WithError(err).Error("recognition failed")
		return nil, eris.Wrapf(err, "failed to recognize %s", filepath.Base(path))
	}

	parsed := contact.ParseWithOptions(records, contact.Options{RowMargin: plan.rowMargin})

	logger.WithFields(logrus.Fields{
		"records":  len(records),
		"lines":    len(parsed.RawLines),
		"notes":    parsed.Notes,
		"duration": time.Since(start),
	}).Info("parsed contact")

	return &ImageParseResult{
		Image:     filepath.Base(path),
		RequestID: requestID,
		Results:   records,
		Parsed:    parsed,
	}, nil
}

// rowMargin resolves an optional row_margin argument against the
// configured default.
func (s *Server) rowMargin(arg *int) (int, error) {
	if arg == nil {
		return s.cfg.Parser.RowMargin, nil
	}
	if *arg < 0 {
		return 0, eris.Errorf("row_margin must not be negative, got %d", *arg)
	}
	return *arg, nil
}

// === Helper Tool Handlers ===

type imagePreprocessArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImagePreprocess(args json.RawMessage) (interface{}, error) {
	var a imagePreprocessArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, eris.New("path is required")
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EncodeBase64(imaging.Preprocess(img, s.cfg.Preprocess))
}

type ocrInfoArgs struct {
	Language string `json:"language,omitempty"`
}

func (s *Server) handleOCRInfo(args json.RawMessage) (interface{}, error) {
	var a ocrInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts := s.cfg.Recognizer
	if a.Language != "" {
		opts.Language = a.Language
	}
	return ocr.TesseractInfo(opts), nil
}
