package emotion

import (
	"math"

	"github.com/easeaico/maitri/internal/types"
)

// ToneSignal is an optional, caller-supplied intensity per emotion.
type ToneSignal map[types.Emotion]float64

const (
	minScore = 0
	maxScore = 10

	keywordWeight = 2
	toneWeight    = 3
)

// Crisis thresholds. A physical-concern threshold existed historically but no
// signal feeds it, so it is not evaluated.
const (
	SevereDepressionThreshold  = 8
	AnxietyAttackThreshold     = 8
	IsolationDistressThreshold = 7
)

// Crisis indicator strings.
const (
	IndicatorSevereDepression = "Severe depression detected"
	IndicatorHighAnxiety      = "High anxiety levels detected"
	IndicatorIsolation        = "Critical isolation distress"
	IndicatorSelfHarm         = "Potential self-harm ideation"
)

// CrisisAssessment is the result of EvaluateCrisis.
type CrisisAssessment struct {
	IsCrisis   bool
	Indicators []string
	Summary    string
}

// ClampScore bounds a score to 0-10. NaN maps to 0.
func ClampScore(score float64) float64 {
	switch {
	case math.IsNaN(score), score < minScore:
		return minScore
	case score > maxScore:
		return maxScore
	default:
		return score
	}
}
