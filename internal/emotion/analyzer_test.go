package emotion

import (
	"math"
	"testing"

	"github.com/easeaico/maitri/internal/types"
)

func TestScoreAlwaysHasAllLabels(t *testing.T) {
	state := Score("", nil)
	if len(state) != len(types.Emotions) {
		t.Fatalf("expected %d labels, got %d", len(types.Emotions), len(state))
	}
	for _, e := range types.Emotions {
		v, ok := state[e]
		if !ok {
			t.Fatalf("missing label %s", e)
		}
		if v != 0 {
			t.Fatalf("expected zero for %s, got %v", e, v)
		}
	}
}

func TestScoreKeywordsAndTone(t *testing.T) {
	state := Score("I feel so Lonely and isolated up here", ToneSignal{types.EmotionLoneliness: 1})
	// "lonely" and "isolated" hit: 2*2 + 3*1
	if got := state[types.EmotionLoneliness]; got != 7 {
		t.Fatalf("expected loneliness 7, got %v", got)
	}
	if got := state[types.EmotionAnger]; got != 0 {
		t.Fatalf("expected anger 0, got %v", got)
	}
}

func TestScoreClampsAdversarialTone(t *testing.T) {
	tone := ToneSignal{
		types.EmotionDepression: 1e9,
		types.EmotionAnxiety:    -1e9,
		"fatigue":               50,
	}
	state := Score("sad down hopeless empty udaas dukhi", tone)
	for _, e := range types.Emotions {
		if v := state[e]; v < 0 || v > 10 {
			t.Fatalf("score for %s out of range: %v", e, v)
		}
	}
	if state[types.EmotionDepression] != 10 {
		t.Fatalf("expected depression clamped to 10, got %v", state[types.EmotionDepression])
	}
	if state[types.EmotionAnxiety] != 0 {
		t.Fatalf("expected anxiety clamped to 0, got %v", state[types.EmotionAnxiety])
	}
	if _, ok := state["fatigue"]; ok {
		t.Fatalf("unexpected label outside the fixed set")
	}
}

func TestScoreIgnoresNaNTone(t *testing.T) {
	state := Score("hello, so overwhelmed", ToneSignal{
		types.EmotionStress:  math.NaN(),
		types.EmotionAnxiety: math.Inf(1),
	})
	want := Score("hello, so overwhelmed", nil)[types.EmotionStress]
	if want != keywordWeight {
		t.Fatalf("expected keyword-only stress %v, got %v", float64(keywordWeight), want)
	}
	if v := state[types.EmotionStress]; v != want {
		t.Fatalf("expected NaN stress tone to be ignored (score %v), got %v", want, v)
	}
	if v := state[types.EmotionAnxiety]; v != 10 {
		t.Fatalf("expected +Inf anxiety tone clamped to 10, got %v", v)
	}
}

func TestClampScore(t *testing.T) {
	cases := map[string]struct {
		in, want float64
	}{
		"nan":  {math.NaN(), 0},
		"neg":  {-3, 0},
		"inf":  {math.Inf(1), 10},
		"-inf": {math.Inf(-1), 0},
		"mid":  {4.5, 4.5},
	}
	for name, tc := range cases {
		if got := ClampScore(tc.in); got != tc.want {
			t.Fatalf("%s: ClampScore(%v) = %v, want %v", name, tc.in, got, tc.want)
		}
	}
}

func TestAnalyzerCombinesAllSignals(t *testing.T) {
	a := NewAnalyzer()
	got := a.Analyze("Mujhe kya ho gaya, I want to give up", nil)
	if got.Language != "hindi_english_mix" {
		t.Fatalf("expected hindi mix, got %s", got.Language)
	}
	if !got.Crisis.IsCrisis || got.Crisis.Summary != IndicatorSelfHarm {
		t.Fatalf("expected self-harm crisis, got %#v", got.Crisis)
	}
	if len(got.State) != len(types.Emotions) {
		t.Fatalf("expected full state, got %#v", got.State)
	}
}
