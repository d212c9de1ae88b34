// Package storage holds the session store implementations: in-memory, Redis and PostgreSQL.
package storage

import (
	"errors"
	"maps"

	"github.com/easeaico/maitri/internal/types"
)

// ErrSessionNotFound is returned when no profile exists for a user id.
var ErrSessionNotFound = errors.New("session not found")

func cloneProfile(p *types.UserProfile) *types.UserProfile {
	if p == nil {
		return nil
	}
	out := *p
	out.EmotionalPatterns = maps.Clone(p.EmotionalPatterns)
	if out.EmotionalPatterns == nil {
		out.EmotionalPatterns = make(map[types.Emotion]float64)
	}
	return &out
}

func cloneTurn(t types.ConversationTurn) types.ConversationTurn {
	t.EmotionalState = maps.Clone(t.EmotionalState)
	return t
}

// window returns the last limit items of turns; limit <= 0 returns all of them.
func window(turns []types.ConversationTurn, limit int) []types.ConversationTurn {
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	out := make([]types.ConversationTurn, 0, len(turns))
	for _, t := range turns {
		out = append(out, cloneTurn(t))
	}
	return out
}
