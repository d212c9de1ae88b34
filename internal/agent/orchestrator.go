// Package agent runs a conversation turn end to end: analysis, prompt assembly,
// generation and session bookkeeping.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/easeaico/maitri/internal/emotion"
	"github.com/easeaico/maitri/internal/lexicon"
	"github.com/easeaico/maitri/internal/metrics"
	"github.com/easeaico/maitri/internal/models"
	"github.com/easeaico/maitri/internal/prompt"
	"github.com/easeaico/maitri/internal/types"
)

// ErrEmptyMessage is returned for blank user input.
var ErrEmptyMessage = errors.New("empty message")

// Completer produces a reply for a fully assembled prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// SessionStore persists user profiles and conversation histories.
type SessionStore interface {
	GetOrCreateProfile(ctx context.Context, userID string) (*types.UserProfile, error)
	GetProfile(ctx context.Context, userID string) (*types.UserProfile, error)
	SaveProfile(ctx context.Context, profile *types.UserProfile) error
	// AppendTurn sets the turn's ConversationID and returns the new history length.
	AppendTurn(ctx context.Context, userID string, turn types.ConversationTurn) (int, error)
	// RecentTurns returns up to limit turns, oldest first.
	RecentTurns(ctx context.Context, userID string, limit int) ([]types.ConversationTurn, error)
	TurnCount(ctx context.Context, userID string) (int, error)
	ListUsers(ctx context.Context) ([]string, error)
}

// Options tunes an Orchestrator. Zero values fall back to defaults.
type Options struct {
	HistoryLimit   int
	BackendTimeout time.Duration
	Metrics        *metrics.Metrics
	Now            func() time.Time
}

// Orchestrator owns the per-turn pipeline.
type Orchestrator struct {
	store     SessionStore
	completer Completer
	analyzer  *emotion.Analyzer
	builder   *prompt.Builder

	historyLimit int
	timeout      time.Duration
	metrics      *metrics.Metrics
	now          func() time.Time

	mu    sync.Mutex
	locks map[string]*userLock
}

// userLock is dropped from Orchestrator.locks once no turn holds or waits on it.
type userLock struct {
	mu   sync.Mutex
	refs int
}

// NewOrchestrator wires the pipeline around store and completer.
func NewOrchestrator(store SessionStore, completer Completer, opts Options) (*Orchestrator, error) {
	if store == nil || completer == nil {
		return nil, fmt.Errorf("store and completer are required")
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 5
	}
	if opts.BackendTimeout <= 0 {
		opts.BackendTimeout = 15 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Orchestrator{
		store:        store,
		completer:    completer,
		analyzer:     emotion.NewAnalyzer(),
		builder:      prompt.NewBuilder(opts.HistoryLimit),
		historyLimit: opts.HistoryLimit,
		timeout:      opts.BackendTimeout,
		metrics:      opts.Metrics,
		now:          opts.Now,
		locks:        make(map[string]*userLock),
	}, nil
}

// lockUser blocks until the caller owns userID's turn and returns the release func.
func (o *Orchestrator) lockUser(userID string) (unlock func()) {
	o.mu.Lock()
	l, ok := o.locks[userID]
	if !ok {
		l = &userLock{}
		o.locks[userID] = l
	}
	l.refs++
	o.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		o.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(o.locks, userID)
		}
		o.mu.Unlock()
	}
}

// GenerateResponse processes one message from userID and returns the reply envelope.
//
// Backend failures do not surface as errors: the envelope carries a canned reply,
// is marked Degraded and no turn is recorded. Storage failures are returned.
func (o *Orchestrator) GenerateResponse(ctx context.Context, userID, persona, text string, tone emotion.ToneSignal) (*types.ResponseEnvelope, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	unlock := o.lockUser(userID)
	defer unlock()

	profile, err := o.store.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	analysis := o.analyzer.Analyze(text, tone)
	profile.PreferredLanguage = analysis.Language
	if profile.EmotionalPatterns == nil {
		profile.EmotionalPatterns = make(map[types.Emotion]float64)
	}
	for e, score := range analysis.State {
		if score > profile.EmotionalPatterns[e] {
			profile.EmotionalPatterns[e] = score
		}
	}
	if analysis.Crisis.IsCrisis {
		profile.CrisisCount++
		slog.Warn("crisis detected", "user_id", userID, "indicators", analysis.Crisis.Summary, "crisis_count", profile.CrisisCount)
		o.metrics.RecordCrisis(analysis.Crisis.Indicators)
	}

	personaProfile, personaKey := lexicon.Persona(persona)
	if personaKey != persona {
		slog.Debug("unknown persona, using default", "requested", persona, "persona", personaKey)
	}

	history, err := o.store.RecentTurns(ctx, userID, o.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	promptText, err := o.builder.Build(prompt.BuildContext{
		Persona:  personaProfile,
		Message:  text,
		State:    analysis.State,
		Language: analysis.Language,
		History:  history,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	o.metrics.RecordTurn()
	now := o.now()
	profile.UpdatedAt = now

	envelope := &types.ResponseEnvelope{
		EmotionalState:   analysis.State,
		IsCrisis:         analysis.Crisis.IsCrisis,
		CrisisSummary:    analysis.Crisis.Summary,
		LanguageDetected: analysis.Language,
		PersonaUsed:      personaKey,
		Timestamp:        now,
	}

	reply, err := o.complete(ctx, promptText)
	if err != nil {
		kind := models.KindOf(err)
		slog.Error("backend generation failed", "user_id", userID, "kind", string(kind), "error", err.Error())
		o.metrics.RecordFallback(string(kind))

		if saveErr := o.store.SaveProfile(ctx, profile); saveErr != nil {
			return nil, fmt.Errorf("failed to save profile: %w", saveErr)
		}
		envelope.Response = fallbackReply(kind, err)
		envelope.Degraded = true
		envelope.Error = err.Error()
		envelope.ErrorKind = string(kind)
		return envelope, nil
	}

	length, err := o.store.AppendTurn(ctx, userID, types.ConversationTurn{
		TurnID:         uuid.New(),
		Timestamp:      now,
		UserText:       text,
		AIResponse:     reply,
		PersonaUsed:    personaKey,
		LanguageTag:    analysis.Language,
		EmotionalState: analysis.State,
		CrisisFlag:     analysis.Crisis.IsCrisis,
		CrisisSummary:  analysis.Crisis.Summary,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append turn: %w", err)
	}
	if err := o.store.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	envelope.Response = reply
	envelope.ConversationID = length
	return envelope, nil
}

// complete calls the backend once, bounded by the configured timeout.
func (o *Orchestrator) complete(ctx context.Context, promptText string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	reply, err := o.completer.Complete(callCtx, promptText)
	o.metrics.RecordBackendLatency(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", models.NewBackendError(models.ErrorKindEmpty, models.ErrEmptyCompletion)
	}
	return reply, nil
}
