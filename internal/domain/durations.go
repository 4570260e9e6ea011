package domain

// Schedule block constraints. Every task duration is normalized to a
// multiple of BlockSize between MinDuration and MaxDuration minutes.
const (
	BlockSize   = 5
	MinDuration = 15
	MaxDuration = 180
)

// RoundToNearestBlock rounds n to the nearest BlockSize multiple, with a
// floor of MinDuration. Negative and zero inputs clamp to MinDuration.
func RoundToNearestBlock(n int) int {
	if n < MinDuration {
		return MinDuration
	}
	rounded := ((n + BlockSize/2) / BlockSize) * BlockSize
	if rounded < MinDuration {
		return MinDuration
	}
	return rounded
}

// ValidDuration reports whether n is a schedulable block duration.
func ValidDuration(n int) bool {
	return n >= MinDuration && n%BlockSize == 0 && n <= MaxDuration
}
