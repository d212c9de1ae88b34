package emotion

import (
	"math"
	"strings"

	"github.com/easeaico/maitri/internal/lexicon"
	"github.com/easeaico/maitri/internal/types"
)

// Analysis bundles everything inferred from a single message.
type Analysis struct {
	State    types.EmotionalState
	Language string
	Crisis   CrisisAssessment
}

// Analyzer runs the scorer, language detector and crisis evaluator over a message.
type Analyzer struct{}

// NewAnalyzer returns an Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze scores text, detects its language mix and evaluates crisis indicators.
func (a *Analyzer) Analyze(text string, tone ToneSignal) Analysis {
	state := Score(text, tone)
	return Analysis{
		State:    state,
		Language: DetectLanguageMix(text),
		Crisis:   EvaluateCrisis(state, text),
	}
}

// Score combines keyword hits with the tone signal into a bounded score per emotion.
// The result always holds every label in types.Emotions.
func Score(text string, tone ToneSignal) types.EmotionalState {
	lower := strings.ToLower(text)
	state := make(types.EmotionalState, len(types.Emotions))
	for _, e := range types.Emotions {
		hits := 0
		for _, kw := range lexicon.EmotionKeywords(e) {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		score := float64(keywordWeight * hits)
		if v := tone[e]; !math.IsNaN(v) {
			score += toneWeight * v
		}
		state[e] = ClampScore(score)
	}
	return state
}
