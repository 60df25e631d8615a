package contact

import (
	"errors"
	"strings"
)

// Diagnostic notes appended to ParsedContact.Notes.
const (
	NoteNameNotDetected   = "name_not_detected"
	NoteEmailNotDetected  = "email_not_detected"
	NoteMobileNotDetected = "mobile_not_detected"

	// NoteParserErrorPrefix precedes the fault category of an aborted parse.
	NoteParserErrorPrefix = "parser_error:"
)

// Fault categories reported after NoteParserErrorPrefix.
const (
	FaultMalformedRecord = "malformed_record"
	FaultPanic           = "panic"
	FaultInternal        = "internal"
)

// Options tunes a parse. The zero value uses the defaults.
type Options struct {
	// RowMargin is the row clustering tolerance in pixels.
	// Zero or negative selects DefaultRowMargin.
	RowMargin int
}

func (o Options) rowMargin() int {
	if o.RowMargin <= 0 {
		return DefaultRowMargin
	}
	return o.RowMargin
}

// Parse extracts a contact record from detection records using the default
// options. It never returns nil.
func Parse(records []DetectionRecord) *ParsedContact {
	return ParseWithOptions(records, Options{})
}

// ParseWithOptions extracts a contact record from detection records.
//
// The raw lines are filled in before any heuristic runs. If a stage fails,
// or panics, processing stops, a single "parser_error:<category>" note is
// recorded and the fields filled so far are returned. Otherwise the
// "*_not_detected" notes are appended for an empty name, email or mobile.
func ParseWithOptions(records []DetectionRecord, opts Options) (parsed *ParsedContact) {
	parsed = newParsedContact()

	defer func() {
		if r := recover(); r != nil {
			parsed.Notes = append(parsed.Notes, NoteParserErrorPrefix+FaultPanic)
		}
	}()

	if err := assemble(parsed, records, opts); err != nil {
		parsed.Notes = append(parsed.Notes, NoteParserErrorPrefix+faultCategory(err))
	}
	return parsed
}

// Stage names passed to stageHook.
const (
	stageEntities   = "entities"
	stageRoles      = "roles"
	stageAddress    = "address"
	stageConfidence = "confidence"
)

// stageHook, when set, runs before each stage after line reconstruction.
// A returned error aborts the parse. Tests use it to inject faults.
var stageHook func(stage string) error

func enterStage(stage string) error {
	if stageHook == nil {
		return nil
	}
	return stageHook(stage)
}

// assemble runs each stage in order, writing into parsed as it goes.
func assemble(parsed *ParsedContact, records []DetectionRecord, opts Options) error {
	lines, err := ReconstructLines(records, opts.rowMargin())
	if err != nil {
		return err
	}
	parsed.RawText = strings.Join(lines, "\n")
	parsed.RawLines = append(parsed.RawLines, lines...)

	if err := enterStage(stageEntities); err != nil {
		return err
	}
	ent := ExtractEntities(lines)
	parsed.Email = ent.Email
	parsed.Mobile = ent.Mobile
	parsed.Website = ent.Website
	parsed.Social = ent.Social
	parsed.Extras = ent.Extras

	if err := enterStage(stageRoles); err != nil {
		return err
	}
	roles := ClassifyRoles(lines)
	parsed.Name = trimmed(roles.Name)
	parsed.Designation = trimmed(roles.Designation)
	parsed.Company = trimmed(roles.Company)

	if err := enterStage(stageAddress); err != nil {
		return err
	}
	addr := ResolveAddress(lines, parsed.Email, parsed.Mobile)
	parsed.Address = trimmed(addr.Address)
	parsed.Location = addr.Location

	if err := enterStage(stageConfidence); err != nil {
		return err
	}
	parsed.Confidence = AggregateConfidence(records)

	if parsed.Name == nil {
		parsed.Notes = append(parsed.Notes, NoteNameNotDetected)
	}
	if len(parsed.Email) == 0 {
		parsed.Notes = append(parsed.Notes, NoteEmailNotDetected)
	}
	if len(parsed.Mobile) == 0 {
		parsed.Notes = append(parsed.Notes, NoteMobileNotDetected)
	}
	return nil
}

func faultCategory(err error) string {
	if errors.Is(err, ErrMalformedRecord) {
		return FaultMalformedRecord
	}
	return FaultInternal
}

// trimmed strips surrounding whitespace from an optional field.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	return stringPtr(strings.TrimSpace(*s))
}
