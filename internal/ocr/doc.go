// Package ocr turns card images into contact.DetectionRecords using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). It knows
// nothing about contacts beyond the record shape: the parser in
// internal/contact consumes what Recognize produces.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Modes
//
// Recognize supports two detection modes:
//
//   - ModeWords: a single pass over the whole image. Every recognized word
//     becomes one record with Tesseract's word box and confidence.
//   - ModeRegions: Tesseract locates text lines, each line box is expanded
//     by Options.RegionPadding (clamped to the image), cropped, and
//     recognized again as a single block. The record carries the expanded
//     box and the mean word confidence of the crop.
//
// Words mode is faster. Regions mode reads dense or small print better
// because each crop is recognized in isolation.
//
// # Text Cleaning
//
// CleanText repairs common OCR noise before the text reaches the parser:
// whitespace runs, non-printable characters, curly quotes, O/0 confusion
// and stray spaces before punctuation. The raw text is kept alongside it.
//
// # Confidence
//
// Confidences are reported on a 0 to 1 scale. Options.MinConfidence drops
// words (or lines) below the floor.
package ocr
