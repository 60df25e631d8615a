// Package contact turns OCR detection records into a structured contact record.
//
// The package is the pure core of the server: it performs no I/O, keeps no
// state between calls, and never fails outright. Callers hand it the boxes
// produced by a text detector/recognizer for one image and receive a
// ParsedContact whose every field is present.
//
// # Pipeline
//
// Parsing runs in a fixed order:
//
//  1. ReconstructLines: cluster boxes into rows by vertical midpoint and
//     emit top-to-bottom lines of left-to-right text
//  2. ExtractEntities: emails, phone numbers, websites, a LinkedIn handle
//     and tax/registration codes
//  3. ClassifyRoles: name, designation and company from the top lines
//  4. ResolveAddress: address and location, with a bottom-of-card fallback
//  5. AggregateConfidence: one normalized score from per-box confidences
//
// Parse assembles the result and appends diagnostic notes.
//
// # Row Clustering
//
// A row keeps the midpoint of the box that opened it as its anchor. Later
// boxes join the first row (in creation order) whose anchor lies within the
// margin of their own midpoint. Anchors never move, so a box may start a new
// row even when it is close to a non-anchor member of an existing one.
//
// # Notes
//
// Heuristic misses are not errors. They leave the field empty and add one
// of the tags NoteNameNotDetected, NoteEmailNotDetected or
// NoteMobileNotDetected. An unexpected fault (for example a box with fewer
// than four coordinates) stops processing and adds a single
// "parser_error:<category>" note; the partial result is still returned.
//
// # Concurrency
//
// All functions are safe for concurrent use. Patterns are compiled once at
// package initialization.
package contact
