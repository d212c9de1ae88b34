package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/easeaico/maitri/internal/types"
)

type sessionStore interface {
	GetOrCreateProfile(ctx context.Context, userID string) (*types.UserProfile, error)
	GetProfile(ctx context.Context, userID string) (*types.UserProfile, error)
	SaveProfile(ctx context.Context, profile *types.UserProfile) error
	AppendTurn(ctx context.Context, userID string, turn types.ConversationTurn) (int, error)
	RecentTurns(ctx context.Context, userID string, limit int) ([]types.ConversationTurn, error)
	TurnCount(ctx context.Context, userID string) (int, error)
	ListUsers(ctx context.Context) ([]string, error)
}

func sampleTurn(text string) types.ConversationTurn {
	return types.ConversationTurn{
		TurnID:      uuid.New(),
		Timestamp:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		UserText:    text,
		AIResponse:  "reply to " + text,
		PersonaUsed: "best_friend",
		LanguageTag: "english",
		EmotionalState: types.EmotionalState{
			types.EmotionDepression: 2,
			types.EmotionLoneliness: 7,
		},
	}
}

func exerciseStore(t *testing.T, store sessionStore) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.GetProfile(ctx, "ASTRO001"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	profile, err := store.GetOrCreateProfile(ctx, "ASTRO001")
	if err != nil {
		t.Fatalf("GetOrCreateProfile error: %v", err)
	}
	if profile.PreferredLanguage != "english" || profile.CrisisCount != 0 {
		t.Fatalf("unexpected initial profile: %+v", profile)
	}

	profile.CrisisCount = 2
	profile.PreferredLanguage = "hindi"
	profile.EmotionalPatterns[types.EmotionAnxiety] = 9
	if err := store.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("SaveProfile error: %v", err)
	}

	again, err := store.GetOrCreateProfile(ctx, "ASTRO001")
	if err != nil {
		t.Fatalf("GetOrCreateProfile error: %v", err)
	}
	if again.CrisisCount != 2 || again.PreferredLanguage != "hindi" || again.EmotionalPatterns[types.EmotionAnxiety] != 9 {
		t.Fatalf("profile not persisted: %+v", again)
	}

	for i, text := range []string{"one", "two", "three"} {
		n, err := store.AppendTurn(ctx, "ASTRO001", sampleTurn(text))
		if err != nil {
			t.Fatalf("AppendTurn error: %v", err)
		}
		if n != i+1 {
			t.Fatalf("expected length %d, got %d", i+1, n)
		}
	}

	recent, err := store.RecentTurns(ctx, "ASTRO001", 2)
	if err != nil {
		t.Fatalf("RecentTurns error: %v", err)
	}
	if len(recent) != 2 || recent[0].UserText != "two" || recent[1].UserText != "three" {
		t.Fatalf("unexpected recent turns: %+v", recent)
	}
	if recent[1].ConversationID != 3 {
		t.Fatalf("expected conversation id 3, got %d", recent[1].ConversationID)
	}
	if recent[0].EmotionalState[types.EmotionLoneliness] != 7 {
		t.Fatalf("emotional state not preserved: %+v", recent[0].EmotionalState)
	}

	all, err := store.RecentTurns(ctx, "ASTRO001", 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected all 3 turns, got %d (%v)", len(all), err)
	}

	count, err := store.TurnCount(ctx, "ASTRO001")
	if err != nil || count != 3 {
		t.Fatalf("expected 3 turns, got %d (%v)", count, err)
	}
	if count, _ := store.TurnCount(ctx, "ASTRO404"); count != 0 {
		t.Fatalf("expected 0 turns for unknown user, got %d", count)
	}

	if _, err := store.GetOrCreateProfile(ctx, "ASTRO000"); err != nil {
		t.Fatalf("GetOrCreateProfile error: %v", err)
	}
	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers error: %v", err)
	}
	if len(users) != 2 || users[0] != "ASTRO000" || users[1] != "ASTRO001" {
		t.Fatalf("unexpected users: %v", users)
	}
}
