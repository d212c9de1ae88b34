package emotion

import (
	"strings"

	"github.com/easeaico/maitri/internal/lexicon"
	"github.com/easeaico/maitri/internal/types"
)

// EvaluateCrisis checks the state against the crisis thresholds and scans the raw
// message for self-harm phrases.
func EvaluateCrisis(state types.EmotionalState, text string) CrisisAssessment {
	var indicators []string

	if state[types.EmotionDepression] >= SevereDepressionThreshold {
		indicators = append(indicators, IndicatorSevereDepression)
	}
	if state[types.EmotionAnxiety] >= AnxietyAttackThreshold {
		indicators = append(indicators, IndicatorHighAnxiety)
	}
	if state[types.EmotionLoneliness] >= IsolationDistressThreshold {
		indicators = append(indicators, IndicatorIsolation)
	}
	if containsSelfHarmPhrase(text) {
		indicators = append(indicators, IndicatorSelfHarm)
	}

	return CrisisAssessment{
		IsCrisis:   len(indicators) > 0,
		Indicators: indicators,
		Summary:    strings.Join(indicators, "; "),
	}
}

func containsSelfHarmPhrase(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, phrase := range lexicon.SelfHarmPhrases() {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
