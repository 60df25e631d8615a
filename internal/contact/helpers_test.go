package contact

// box builds a record whose vertical midpoint is y, spanning 10px each way.
func box(x, y int, text string) DetectionRecord {
	return DetectionRecord{Box: []int{x, y - 10, x + 100, y + 10}, TextClean: text}
}

func withConfidence(r DetectionRecord, c float64) DetectionRecord {
	r.Confidence = &c
	return r
}

// stacked lays out one record per line, 40px apart.
func stacked(lines ...string) []DetectionRecord {
	records := make([]DetectionRecord, 0, len(lines))
	for i, ln := range lines {
		records = append(records, box(10, 20+i*40, ln))
	}
	return records
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
