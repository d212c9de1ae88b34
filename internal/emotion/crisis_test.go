package emotion

import (
	"strings"
	"testing"

	"github.com/easeaico/maitri/internal/types"
)

func TestEvaluateCrisisSevereDepressionOnly(t *testing.T) {
	state := types.EmotionalState{
		types.EmotionDepression: 8,
		types.EmotionAnxiety:    0,
		types.EmotionLoneliness: 0,
	}
	got := EvaluateCrisis(state, "")
	if !got.IsCrisis {
		t.Fatalf("expected crisis")
	}
	if got.Summary != IndicatorSevereDepression {
		t.Fatalf("expected only severe depression indicator, got %q", got.Summary)
	}
}

func TestEvaluateCrisisBelowThresholds(t *testing.T) {
	state := types.EmotionalState{
		types.EmotionDepression: 7,
		types.EmotionAnxiety:    7,
		types.EmotionLoneliness: 6,
	}
	got := EvaluateCrisis(state, "just a long day")
	if got.IsCrisis || got.Summary != "" || len(got.Indicators) != 0 {
		t.Fatalf("expected no crisis, got %#v", got)
	}
}

func TestEvaluateCrisisAllIndicatorsInOrder(t *testing.T) {
	state := types.EmotionalState{
		types.EmotionDepression: 10,
		types.EmotionAnxiety:    9,
		types.EmotionLoneliness: 7,
	}
	got := EvaluateCrisis(state, "There is NO POINT anymore")
	want := strings.Join([]string{
		IndicatorSevereDepression,
		IndicatorHighAnxiety,
		IndicatorIsolation,
		IndicatorSelfHarm,
	}, "; ")
	if got.Summary != want {
		t.Fatalf("expected %q, got %q", want, got.Summary)
	}
}

func TestEvaluateCrisisScansRawText(t *testing.T) {
	got := EvaluateCrisis(Score("", nil), "main marna chahta hoon")
	if !got.IsCrisis || got.Summary != IndicatorSelfHarm {
		t.Fatalf("expected self-harm indicator from raw text, got %#v", got)
	}
}
