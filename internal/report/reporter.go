// Package report derives ground-control crisis reports from stored histories.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/easeaico/maitri/internal/storage"
	"github.com/easeaico/maitri/internal/types"
)

// ErrUserNotFound is returned when no session exists for the requested user.
var ErrUserNotFound = errors.New("user not found")

const (
	recommendIntervention = "Immediate psychological intervention recommended. Consider emergency communication with family."
	recommendStress       = "High stress levels detected. Recommend relaxation protocols and workload adjustment."
	recommendIsolation    = "Severe isolation distress. Increase social interaction protocols."
	recommendMonitor      = "Monitor emotional state. Continue supportive AI interactions."
)

// criticalLimit is how many crisis turns a report quotes.
const criticalLimit = 3

// Store is the read side of the session store.
type Store interface {
	GetProfile(ctx context.Context, userID string) (*types.UserProfile, error)
	RecentTurns(ctx context.Context, userID string, limit int) ([]types.ConversationTurn, error)
}

// Reporter builds crisis reports over the last window turns of a user.
type Reporter struct {
	store  Store
	window int
	now    func() time.Time
}

// NewReporter returns a Reporter. A window <= 0 uses 10 turns.
func NewReporter(store Store, window int) *Reporter {
	if window <= 0 {
		window = 10
	}
	return &Reporter{store: store, window: window, now: time.Now}
}

// CrisisReport summarizes the user's recent crisis activity. It never mutates state.
func (r *Reporter) CrisisReport(ctx context.Context, userID string) (*types.CrisisReport, error) {
	profile, err := r.store.GetProfile(ctx, userID)
	if errors.Is(err, storage.ErrSessionNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	turns, err := r.store.RecentTurns(ctx, userID, r.window)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	report := &types.CrisisReport{
		UserID:      userID,
		Status:      types.ReportStatusNoCrisis,
		GeneratedAt: r.now(),
	}

	var crises []types.ConversationTurn
	for _, turn := range turns {
		if turn.CrisisFlag {
			crises = append(crises, turn)
		}
	}
	if len(crises) == 0 {
		return report, nil
	}

	means := meanState(turns)
	crisisCount := len(crises)
	last := crises[crisisCount-1].Timestamp
	if len(crises) > criticalLimit {
		crises = crises[len(crises)-criticalLimit:]
	}

	report.Status = types.ReportStatusCrisis
	report.CrisisCount = crisisCount
	report.TotalCrisisCount = profile.CrisisCount
	report.LastCrisis = &last
	report.EmotionalTrends = means
	report.CriticalConversations = crises
	report.Recommendation = Recommend(means)
	report.UrgencyLevel = Urgency(means, crisisCount)
	return report, nil
}

// Recommend picks the ground-control recommendation for the mean emotional state.
func Recommend(means map[types.Emotion]float64) string {
	switch {
	case means[types.EmotionDepression] > 7:
		return recommendIntervention
	case means[types.EmotionAnxiety] > 7:
		return recommendStress
	case means[types.EmotionLoneliness] > 6:
		return recommendIsolation
	default:
		return recommendMonitor
	}
}

// Urgency grades a report from its peak mean emotion and crisis count.
func Urgency(means map[types.Emotion]float64, crisisCount int) types.Urgency {
	peak := 0.0
	for _, v := range means {
		peak = max(peak, v)
	}

	switch {
	case peak > 8 || crisisCount > 3:
		return types.UrgencyHigh
	case peak > 6 || crisisCount > 1:
		return types.UrgencyMedium
	default:
		return types.UrgencyLow
	}
}

// meanState averages each emotion over the turns that carry it.
func meanState(turns []types.ConversationTurn) map[types.Emotion]float64 {
	sums := make(map[types.Emotion]float64)
	counts := make(map[types.Emotion]int)
	for _, turn := range turns {
		for e, v := range turn.EmotionalState {
			sums[e] += v
			counts[e]++
		}
	}

	means := make(map[types.Emotion]float64, len(sums))
	for e, sum := range sums {
		means[e] = sum / float64(counts[e])
	}
	return means
}
