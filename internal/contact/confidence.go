package contact

import (
	"math"
	"math/big"
	"strconv"
)

// percentScaleThreshold separates 0-1 scores from 0-100 scores.
const percentScaleThreshold = 1.1

// AggregateConfidence reduces per-box confidences to a single score.
//
// Non-negative values are averaged. A mean above 1.1 is taken to be on a
// 0-100 scale and divided by 100. The result is rounded to two decimals and
// clamped to [0, 1]. It returns nil when no record carries a usable value.
func AggregateConfidence(records []DetectionRecord) *float64 {
	sum := new(big.Rat)
	n := 0
	for _, rec := range records {
		if rec.Confidence == nil {
			continue
		}
		c := *rec.Confidence
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
			continue
		}
		sum.Add(sum, new(big.Rat).SetFloat64(c))
		n++
	}
	if n == 0 {
		return nil
	}

	mean, _ := sum.Quo(sum, big.NewRat(int64(n), 1)).Float64()
	if mean > percentScaleThreshold {
		mean /= 100
	}

	score := roundHundredths(mean)
	score = math.Min(math.Max(score, 0), 1)
	return &score
}

// roundHundredths rounds the exact binary value of v to two decimals, ties
// to even. Scaling by 100 first would round the product and can move a
// value across the midpoint.
func roundHundredths(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
