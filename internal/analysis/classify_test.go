package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchflow/internal/models"
)

func rec(x, z float64, call models.CallKind) models.PitchRecord {
	return models.PitchRecord{X: x, Z: z, PitchType: "Unknown", Call: call}
}

func TestParseCallTable(t *testing.T) {
	cases := map[string]models.CallKind{
		"Ball":              models.CallBall,
		"Called Strike":     models.CallCalledStrike,
		"Swinging Strike":   models.CallSwingingStrike,
		"Foul":              models.CallFoul,
		"In play, run(s)":   models.CallInPlay,
		"In play, no out":   models.CallInPlay,
		"In play, out(s)":   models.CallInPlay,
		"Ball In Dirt":      models.CallUnknown,
		"Hit By Pitch":      models.CallUnknown,
		"ball":              models.CallUnknown,
		"":                  models.CallUnknown,
	}
	for text, want := range cases {
		assert.Equal(t, want, models.ParseCall(text), "call text %q", text)
	}
}

func TestClassifyIsStrictPartition(t *testing.T) {
	records := []models.PitchRecord{
		rec(0, 2, models.CallBall),
		rec(0.1, 2.1, models.CallBall),
		rec(0.2, 2.2, models.CallCalledStrike),
		rec(0.3, 2.3, models.CallSwingingStrike),
		rec(0.4, 2.4, models.CallFoul),
		rec(0.5, 2.5, models.CallInPlay),
		rec(0.6, 2.6, models.CallUnknown),
	}

	buckets := Classify(records)
	require.Len(t, buckets, len(models.AllCalls))

	total := 0
	for _, kind := range models.AllCalls {
		total += len(buckets[kind])
	}
	assert.Equal(t, len(records), total, "bucket sizes must sum to the record count")
	assert.Len(t, buckets[models.CallBall], 2)
	assert.Len(t, buckets[models.CallCalledStrike], 1)
}

func TestClassifyEmptyInputHasAllBuckets(t *testing.T) {
	buckets := Classify(nil)
	require.Len(t, buckets, len(models.AllCalls))
	for _, kind := range models.AllCalls {
		assert.Empty(t, buckets[kind])
		assert.NotNil(t, buckets[kind])
	}
}

func TestTypeCounts(t *testing.T) {
	records := []models.PitchRecord{
		{PitchType: "Slider"},
		{PitchType: "Slider"},
		{PitchType: "Four-Seam Fastball"},
	}
	counts := TypeCounts(records)
	assert.Equal(t, map[string]int{"Slider": 2, "Four-Seam Fastball": 1}, counts)
}
