package risk

import "fmt"

type Tier int

const (
	Low Tier = iota
	Average
	High
)

// Scores below LowThreshold are Low; scores at or above HighThreshold are
// High; everything in between, including LowThreshold itself, is Average.
const (
	LowThreshold  = -1.0
	HighThreshold = 1.0
)

var advice = map[Tier]string{
	Low:     "You are in a genetically low-risk group. However, living a better life is always a good option.",
	Average: "You are in an average genetic risk group. A healthy lifestyle is recommended.",
	High:    "You are in a genetically high-risk group. Consult your doctor for precautions.",
}

// Classify is total: NaN compares false against both thresholds and so lands
// in Average.
func Classify(score float64) Tier {
	switch {
	case score < LowThreshold:
		return Low
	case score >= HighThreshold:
		return High
	}

	return Average
}

func (t Tier) String() string {
	switch t {
	case Low:
		return "Low"
	case Average:
		return "Average"
	case High:
		return "High"
	}

	return fmt.Sprintf("Tier(%d)", int(t))
}

// Advice returns the fixed interpretation sentence for the tier.
func (t Tier) Advice() string {
	return advice[t]
}

// Format renders a score the way it is shown to the user: the score to four
// decimal places, a blank line, then the interpretation.
func Format(score float64) string {
	return fmt.Sprintf("PRS Score: %.4f\n\n%s", score, Classify(score).Advice())
}
