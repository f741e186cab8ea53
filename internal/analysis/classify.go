package analysis

import "pitchflow/internal/models"

// Classify partitions records into the six call buckets. The partition is
// strict: every record lands in exactly one bucket and every bucket is
// present in the result, empty or not. All downstream geometric analysis
// operates only on the Ball and CalledStrike buckets.
func Classify(records []models.PitchRecord) map[models.CallKind][]models.PitchRecord {
	buckets := make(map[models.CallKind][]models.PitchRecord, len(models.AllCalls))
	for _, kind := range models.AllCalls {
		buckets[kind] = []models.PitchRecord{}
	}
	for _, rec := range records {
		buckets[rec.Call] = append(buckets[rec.Call], rec)
	}
	return buckets
}

// TypeCounts tallies pitch-type labels across a record group, the data
// behind the pitch distribution panel.
func TypeCounts(records []models.PitchRecord) map[string]int {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.PitchType]++
	}
	return counts
}
