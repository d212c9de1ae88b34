package types

import (
	"time"

	"github.com/google/uuid"
)

// Emotion is an emotion label tracked by the scorer.
type Emotion string

const (
	EmotionDepression   Emotion = "depression"
	EmotionAnxiety      Emotion = "anxiety"
	EmotionLoneliness   Emotion = "loneliness"
	EmotionHomesickness Emotion = "homesickness"
	EmotionStress       Emotion = "stress"
	EmotionAnger        Emotion = "anger"
)

// Emotions is the fixed, ordered label set. Every EmotionalState carries all of them.
var Emotions = []Emotion{
	EmotionDepression,
	EmotionAnxiety,
	EmotionLoneliness,
	EmotionHomesickness,
	EmotionStress,
	EmotionAnger,
}

// EmotionalState maps each emotion to an intensity in [0, 10].
type EmotionalState map[Emotion]float64

// Vector returns the state as a dense vector in Emotions order.
func (s EmotionalState) Vector() []float32 {
	vec := make([]float32, len(Emotions))
	for i, e := range Emotions {
		vec[i] = float32(s[e])
	}
	return vec
}

// EmotionalStateFromVector is the inverse of Vector.
func EmotionalStateFromVector(vec []float32) EmotionalState {
	state := make(EmotionalState, len(Emotions))
	for i, e := range Emotions {
		if i < len(vec) {
			state[e] = float64(vec[i])
		} else {
			state[e] = 0
		}
	}
	return state
}

// PersonaProfile describes a relational role used to condition replies.
type PersonaProfile struct {
	Key               string   `json:"key"`
	Traits            []string `json:"traits"`
	SpeechStyle       string   `json:"speech_style"`
	EmotionalApproach string   `json:"emotional_approach"`
	SamplePhrases     []string `json:"sample_phrases"`
}

// ConversationTurn is one user message and the generated reply. Never mutated after append.
type ConversationTurn struct {
	ConversationID int            `json:"conversation_id"`
	TurnID         uuid.UUID      `json:"turn_id"`
	Timestamp      time.Time      `json:"timestamp"`
	UserText       string         `json:"user_text"`
	AIResponse     string         `json:"ai_response"`
	PersonaUsed    string         `json:"persona_used"`
	LanguageTag    string         `json:"language_tag"`
	EmotionalState EmotionalState `json:"emotional_state"`
	CrisisFlag     bool           `json:"crisis_flag"`
	CrisisSummary  string         `json:"crisis_summary,omitempty"`
}

// UserProfile is the per-user state mutated on every turn.
type UserProfile struct {
	UserID            string `json:"user_id"`
	PreferredLanguage string `json:"preferred_language"`
	// EmotionalPatterns keeps the peak score seen per emotion. Stored only.
	EmotionalPatterns map[Emotion]float64 `json:"emotional_patterns"`
	CrisisCount       int                 `json:"crisis_count"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// NewUserProfile returns the initial profile for a user seen for the first time.
func NewUserProfile(userID string, now time.Time) *UserProfile {
	return &UserProfile{
		UserID:            userID,
		PreferredLanguage: "english",
		EmotionalPatterns: make(map[Emotion]float64),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Urgency is a coarse escalation level for ground control.
type Urgency string

const (
	UrgencyLow    Urgency = "LOW"
	UrgencyMedium Urgency = "MEDIUM"
	UrgencyHigh   Urgency = "HIGH"
)

const (
	// ReportStatusCrisis marks a report with at least one crisis turn in the window.
	ReportStatusCrisis = "Crisis detected"
	// ReportStatusNoCrisis marks a report whose window holds no crisis turns.
	ReportStatusNoCrisis = "No recent crisis detected"
)

// CrisisReport is a derived view over a user's recent history.
type CrisisReport struct {
	UserID                string              `json:"astronaut_id"`
	Status                string              `json:"status"`
	CrisisCount           int                 `json:"crisis_count,omitempty"`
	TotalCrisisCount      int                 `json:"total_crisis_count,omitempty"`
	LastCrisis            *time.Time          `json:"last_crisis,omitempty"`
	EmotionalTrends       map[Emotion]float64 `json:"emotional_trends,omitempty"`
	CriticalConversations []ConversationTurn  `json:"critical_conversations,omitempty"`
	Recommendation        string              `json:"recommendation,omitempty"`
	UrgencyLevel          Urgency             `json:"urgency_level,omitempty"`
	GeneratedAt           time.Time           `json:"generated_at"`
}

// HasCrisis reports whether the window contained any crisis turn.
func (r *CrisisReport) HasCrisis() bool {
	return r != nil && r.Status == ReportStatusCrisis
}

// ResponseEnvelope is returned to the caller for every message.
type ResponseEnvelope struct {
	Response         string         `json:"response"`
	EmotionalState   EmotionalState `json:"emotional_state"`
	IsCrisis         bool           `json:"is_crisis"`
	CrisisSummary    string         `json:"crisis_summary"`
	LanguageDetected string         `json:"language_detected"`
	PersonaUsed      string         `json:"persona_used"`
	Timestamp        time.Time      `json:"timestamp"`
	ConversationID   int            `json:"conversation_id,omitempty"`
	// Degraded is set when the reply is a canned fallback.
	Degraded  bool   `json:"degraded,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
}
