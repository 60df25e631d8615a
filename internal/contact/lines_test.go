package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstructLines_MergesCloseMidpoints(t *testing.T) {
	records := []DetectionRecord{
		box(200, 100, "Smith"),
		box(10, 105, "John"),
	}

	lines, err := ReconstructLines(records, DefaultRowMargin)
	require.NoError(t, err)
	assert.Equal(t, []string{"John Smith"}, lines)
}

func TestReconstructLines_SplitsDistantMidpoints(t *testing.T) {
	records := []DetectionRecord{
		box(10, 100, "John"),
		box(10, 120, "Smith"),
	}

	lines, err := ReconstructLines(records, DefaultRowMargin)
	require.NoError(t, err)
	assert.Equal(t, []string{"John", "Smith"}, lines)
}

func TestReconstructLines_OrdersTopToBottom(t *testing.T) {
	records := []DetectionRecord{
		box(10, 300, "third"),
		box(10, 100, "first"),
		box(10, 200, "second"),
	}

	lines, err := ReconstructLines(records, DefaultRowMargin)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, lines)
}

func TestReconstructLines_AnchorDoesNotDrift(t *testing.T) {
	// b is within margin of the anchor a; c is within margin of b but not a.
	records := []DetectionRecord{
		box(10, 100, "a"),
		box(20, 110, "b"),
		box(30, 120, "c"),
	}

	lines, err := ReconstructLines(records, 12)
	require.NoError(t, err)
	assert.Equal(t, []string{"a b", "c"}, lines)
}

func TestReconstructLines_FirstBucketWins(t *testing.T) {
	// The record at 110 is within margin of both anchors and joins the
	// first one created, even though the second is closer.
	records := []DetectionRecord{
		box(10, 100, "top"),
		box(10, 118, "lower"),
		box(50, 110, "between"),
	}

	lines, err := ReconstructLines(records, 12)
	require.NoError(t, err)
	assert.Equal(t, []string{"top between", "lower"}, lines)
}

func TestReconstructLines_SkipsBlankText(t *testing.T) {
	records := []DetectionRecord{
		box(10, 100, "   "),
		box(10, 200, ""),
		{Box: []int{1}, TextClean: ""},
		box(10, 300, " kept "),
	}

	lines, err := ReconstructLines(records, DefaultRowMargin)
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, lines)
}

func TestReconstructLines_MalformedBox(t *testing.T) {
	records := []DetectionRecord{
		box(10, 100, "ok"),
		{Box: []int{1, 2, 3}, TextClean: "broken"},
	}

	_, err := ReconstructLines(records, DefaultRowMargin)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestReconstructLines_Empty(t *testing.T) {
	lines, err := ReconstructLines(nil, DefaultRowMargin)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 2, floorDiv(5, 2))
	assert.Equal(t, -3, floorDiv(-5, 2))
	assert.Equal(t, -2, floorDiv(-4, 2))
}
