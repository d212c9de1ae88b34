package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/easeaico/maitri/internal/storage"
	"github.com/easeaico/maitri/internal/types"
)

func seed(t *testing.T, store *storage.MemoryStore, userID string, turns []types.ConversationTurn, totalCrises int) {
	t.Helper()
	ctx := context.Background()
	profile, err := store.GetOrCreateProfile(ctx, userID)
	if err != nil {
		t.Fatalf("GetOrCreateProfile error: %v", err)
	}
	profile.CrisisCount = totalCrises
	if err := store.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("SaveProfile error: %v", err)
	}
	for _, turn := range turns {
		if _, err := store.AppendTurn(ctx, userID, turn); err != nil {
			t.Fatalf("AppendTurn error: %v", err)
		}
	}
}

func turnAt(minute int, crisis bool, state types.EmotionalState) types.ConversationTurn {
	return types.ConversationTurn{
		Timestamp:      time.Date(2026, 6, 1, 10, minute, 0, 0, time.UTC),
		UserText:       "message",
		AIResponse:     "reply",
		EmotionalState: state,
		CrisisFlag:     crisis,
	}
}

func flat(v float64) types.EmotionalState {
	state := make(types.EmotionalState)
	for _, e := range types.Emotions {
		state[e] = v
	}
	return state
}

func TestCrisisReportUnknownUser(t *testing.T) {
	r := NewReporter(storage.NewMemoryStore(), 10)
	if _, err := r.CrisisReport(context.Background(), "ASTRO404"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCrisisReportNoCrisisEvenWithHighMeans(t *testing.T) {
	store := storage.NewMemoryStore()
	seed(t, store, "ASTRO001", []types.ConversationTurn{
		turnAt(1, false, flat(9)),
		turnAt(2, false, flat(9)),
	}, 0)

	report, err := NewReporter(store, 10).CrisisReport(context.Background(), "ASTRO001")
	if err != nil {
		t.Fatalf("CrisisReport error: %v", err)
	}
	if report.Status != types.ReportStatusNoCrisis || report.HasCrisis() {
		t.Fatalf("expected no crisis status, got %+v", report)
	}
	if report.UrgencyLevel != "" || report.Recommendation != "" {
		t.Fatalf("no-crisis report should not grade urgency: %+v", report)
	}
}

func TestCrisisReportHighByCountWithLowMeans(t *testing.T) {
	store := storage.NewMemoryStore()
	var turns []types.ConversationTurn
	for i := 0; i < 4; i++ {
		turns = append(turns, turnAt(i, true, flat(2)))
	}
	seed(t, store, "ASTRO001", turns, 7)

	report, err := NewReporter(store, 10).CrisisReport(context.Background(), "ASTRO001")
	if err != nil {
		t.Fatalf("CrisisReport error: %v", err)
	}
	if report.UrgencyLevel != types.UrgencyHigh {
		t.Fatalf("expected HIGH urgency, got %s", report.UrgencyLevel)
	}
	if report.CrisisCount != 4 || report.TotalCrisisCount != 7 {
		t.Fatalf("unexpected counts: %d/%d", report.CrisisCount, report.TotalCrisisCount)
	}
	if len(report.CriticalConversations) != 3 {
		t.Fatalf("expected last 3 crisis turns, got %d", len(report.CriticalConversations))
	}
	if report.CriticalConversations[2].ConversationID != 4 {
		t.Fatalf("expected most recent crisis last, got %d", report.CriticalConversations[2].ConversationID)
	}
	if report.LastCrisis == nil || report.LastCrisis.Minute() != 3 {
		t.Fatalf("unexpected last crisis: %v", report.LastCrisis)
	}
	if report.Recommendation != recommendMonitor {
		t.Fatalf("unexpected recommendation: %s", report.Recommendation)
	}
}

func TestCrisisReportWindowAndMeans(t *testing.T) {
	store := storage.NewMemoryStore()
	turns := []types.ConversationTurn{turnAt(0, true, flat(10))}
	for i := 1; i <= 10; i++ {
		turns = append(turns, turnAt(i, false, types.EmotionalState{types.EmotionDepression: 9, types.EmotionAnxiety: 1}))
	}
	turns[10].CrisisFlag = true
	seed(t, store, "ASTRO002", turns, 2)

	report, err := NewReporter(store, 10).CrisisReport(context.Background(), "ASTRO002")
	if err != nil {
		t.Fatalf("CrisisReport error: %v", err)
	}
	if report.CrisisCount != 1 {
		t.Fatalf("expected the oldest crisis to fall outside the window, got %d", report.CrisisCount)
	}
	if report.EmotionalTrends[types.EmotionDepression] != 9 {
		t.Fatalf("expected mean depression 9, got %v", report.EmotionalTrends[types.EmotionDepression])
	}
	if report.Recommendation != recommendIntervention || report.UrgencyLevel != types.UrgencyHigh {
		t.Fatalf("unexpected grading: %s / %s", report.Recommendation, report.UrgencyLevel)
	}
}

func TestRecommend(t *testing.T) {
	cases := []struct {
		means map[types.Emotion]float64
		want  string
	}{
		{map[types.Emotion]float64{types.EmotionDepression: 7.5}, recommendIntervention},
		{map[types.Emotion]float64{types.EmotionAnxiety: 8}, recommendStress},
		{map[types.Emotion]float64{types.EmotionLoneliness: 6.5}, recommendIsolation},
		{map[types.Emotion]float64{types.EmotionDepression: 7, types.EmotionLoneliness: 6}, recommendMonitor},
	}
	for _, tc := range cases {
		if got := Recommend(tc.means); got != tc.want {
			t.Fatalf("Recommend(%v) = %q, want %q", tc.means, got, tc.want)
		}
	}
}

func TestUrgency(t *testing.T) {
	cases := []struct {
		peak   float64
		crises int
		want   types.Urgency
	}{
		{8.5, 1, types.UrgencyHigh},
		{2, 4, types.UrgencyHigh},
		{6.5, 1, types.UrgencyMedium},
		{2, 2, types.UrgencyMedium},
		{6, 1, types.UrgencyLow},
	}
	for _, tc := range cases {
		got := Urgency(map[types.Emotion]float64{types.EmotionStress: tc.peak}, tc.crises)
		if got != tc.want {
			t.Fatalf("Urgency(%v, %d) = %s, want %s", tc.peak, tc.crises, got, tc.want)
		}
	}
}
