package metrics

// Level is the coarse fraud indicator band.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// FraudLevel buckets a fraud probability: < 0.3 low, < 0.7 medium, otherwise high.
func FraudLevel(p float64) Level {
	switch {
	case p < 0.3:
		return LevelLow
	case p < 0.7:
		return LevelMedium
	default:
		return LevelHigh
	}
}
