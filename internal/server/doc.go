// Package server implements the MCP (Model Context Protocol) server for
// business card contact extraction.
//
// The server exposes the contact parser and the OCR pipeline in front of it
// as MCP tools, so an assistant can turn a card photo, or a list of OCR
// boxes it already has, into a structured contact.
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
// Contact parsing:
//   - contact_parse_records: Parse caller-supplied detection records
//   - contact_parse_image: OCR one card image and parse it
//   - contact_parse_batch: OCR and parse several cards concurrently
//
// Helpers:
//   - image_preprocess: Show the image exactly as OCR sees it
//   - ocr_info: Report the Tesseract installation
//
// Parse results use the envelope {"results": [...], "parsed": {...}}; the
// image tools add the image name and a request id that also appears in the
// server log.
//
// # Concurrency
//
// contact_parse_batch runs at most server.max_workers parses at once. Each
// parse creates its own Tesseract client. Decoded images are shared through
// a mutex-guarded cache keyed by path.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The error text
//
// A batch never fails as a whole because of one card: each item carries its
// own error. Parsing itself never fails; problems with the input show up as
// notes on the parsed contact.
//
// # Usage
//
//	cfg, err := config.Load(path)
//	...
//	srv := server.NewWithConfig(cfg, logger)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal(err)
//	}
package server
