package contact

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
)

// DetectionRecord is one OCR-detected text fragment.
//
// Records are produced by a detector/recognizer once per image and are
// never modified by this package.
type DetectionRecord struct {
	// Box is the bounding box as [x0, y0, x1, y1] in pixels.
	// x0 < x1 and y0 < y1 are expected but not enforced.
	Box []int `json:"box"`

	// TextRaw is the recognizer's unprocessed output. It is carried for
	// callers and ignored by the parser.
	TextRaw string `json:"text_raw,omitempty"`

	// TextClean is the cleaned text. Records with blank text are skipped.
	TextClean string `json:"text_clean"`

	// Confidence is the recognizer's score on any scale (0-1 or 0-100).
	// Nil means the recognizer reported none.
	Confidence *float64 `json:"confidence,omitempty"`
}

// UnmarshalJSON decodes a record leniently. Box coordinates may be any JSON
// numbers and are floored to whole pixels; a box that is not a list of
// numbers decodes as nil and is later reported as malformed. A confidence
// that is not a number is dropped, except that true and false count as 1
// and 0. Text fields must be strings.
func (r *DetectionRecord) UnmarshalJSON(data []byte) error {
	var aux struct {
		Box        json.RawMessage `json:"box"`
		TextRaw    string          `json:"text_raw"`
		TextClean  string          `json:"text_clean"`
		Confidence json.RawMessage `json:"confidence"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = DetectionRecord{
		Box:        decodeBox(aux.Box),
		TextRaw:    aux.TextRaw,
		TextClean:  aux.TextClean,
		Confidence: decodeConfidence(aux.Confidence),
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeBox(raw json.RawMessage) []int {
	if isNull(raw) {
		return nil
	}
	var coords []float64
	if err := json.Unmarshal(raw, &coords); err != nil {
		return nil
	}
	box := make([]int, len(coords))
	for i, c := range coords {
		if math.Abs(c) > math.MaxInt32 {
			return nil
		}
		box[i] = int(math.Floor(c))
	}
	return box
}

func decodeConfidence(raw json.RawMessage) *float64 {
	if isNull(raw) {
		return nil
	}
	var c float64
	if err := json.Unmarshal(raw, &c); err == nil {
		return &c
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			c = 1
		}
		return &c
	}
	return nil
}

// text returns the trimmed clean text.
func (r DetectionRecord) text() string {
	return strings.TrimSpace(r.TextClean)
}

// ParsedContact is the structured result of parsing one image.
//
// Optional scalar fields are nil when not detected and list fields are
// empty rather than nil, so the JSON form always carries every key.
type ParsedContact struct {
	Name        *string `json:"name"`
	Designation *string `json:"designation"`
	Company     *string `json:"company"`
	Address     *string `json:"address"`
	Location    *string `json:"location"`

	Mobile  []string `json:"mobile"`
	Email   []string `json:"email"`
	Website []string `json:"website"`

	// Social maps a platform name ("linkedin") to the matched handle URL.
	Social map[string]string `json:"social"`

	// Extras maps an identifier kind ("gstin", "cin") to the matched code.
	Extras map[string]string `json:"extras"`

	// Confidence is the mean recognizer confidence in [0, 1], or nil.
	Confidence *float64 `json:"confidence"`

	RawText  string   `json:"raw_text"`
	RawLines []string `json:"raw_lines"`
	Notes    []string `json:"notes"`
}

// newParsedContact returns a record with every collection initialized.
func newParsedContact() *ParsedContact {
	return &ParsedContact{
		Mobile:   []string{},
		Email:    []string{},
		Website:  []string{},
		Social:   map[string]string{},
		Extras:   map[string]string{},
		RawLines: []string{},
		Notes:    []string{},
	}
}

func stringPtr(s string) *string {
	return &s
}
