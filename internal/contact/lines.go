package contact

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// DefaultRowMargin is the vertical tolerance, in pixels, used to decide
// whether two boxes share a row.
const DefaultRowMargin = 12

// ErrMalformedRecord is returned when a record cannot be placed on the page.
var ErrMalformedRecord = eris.New("malformed detection record")

// row is one vertical band of records. anchor is the midpoint of the record
// that opened the row and never changes afterwards.
type row struct {
	anchor  int
	records []DetectionRecord
}

// ReconstructLines rebuilds the reading order of an image from its boxes.
//
// Parameters:
//   - records: Detection records in any order. Records with blank text are
//     discarded.
//   - margin: Maximum distance in pixels between a box midpoint and a row
//     anchor for the box to join that row. Use DefaultRowMargin when unsure.
//
// Returns:
//   - []string: One line per row, top to bottom, each the row's texts joined
//     left to right with single spaces.
//   - error: Wraps ErrMalformedRecord if a kept record has fewer than four
//     box coordinates.
//
// # Algorithm
//
// Records are processed in input order. Each record joins the first row, in
// creation order, whose anchor is within margin of the record's midpoint;
// otherwise it opens a new row anchored at its own midpoint. Rows are then
// sorted by anchor and the records of each row by their left edge. Both
// sorts are stable, so ties keep input order.
func ReconstructLines(records []DetectionRecord, margin int) ([]string, error) {
	rows := make([]*row, 0)

	for i, rec := range records {
		if rec.text() == "" {
			continue
		}
		if len(rec.Box) < 4 {
			return nil, eris.Wrapf(ErrMalformedRecord, "record %d: box has %d coordinates, want 4", i, len(rec.Box))
		}

		mid := floorDiv(rec.Box[1]+rec.Box[3], 2)

		placed := false
		for _, r := range rows {
			if absInt(r.anchor-mid) <= margin {
				r.records = append(r.records, rec)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, &row{anchor: mid, records: []DetectionRecord{rec}})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].anchor < rows[j].anchor
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		sort.SliceStable(r.records, func(i, j int) bool {
			return r.records[i].Box[0] < r.records[j].Box[0]
		})

		pieces := make([]string, 0, len(r.records))
		for _, rec := range r.records {
			pieces = append(pieces, rec.text())
		}
		lines = append(lines, strings.Join(pieces, " "))
	}

	return lines, nil
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
