package storage

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/easeaico/maitri/internal/types"
)

// MemoryStore keeps sessions in process memory. Data is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*types.UserProfile
	turns    map[string][]types.ConversationTurn
	now      func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]*types.UserProfile),
		turns:    make(map[string][]types.ConversationTurn),
		now:      time.Now,
	}
}

func (s *MemoryStore) GetOrCreateProfile(ctx context.Context, userID string) (*types.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		profile = types.NewUserProfile(userID, s.now())
		s.profiles[userID] = profile
	}
	return cloneProfile(profile), nil
}

func (s *MemoryStore) GetProfile(ctx context.Context, userID string) (*types.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cloneProfile(profile), nil
}

func (s *MemoryStore) SaveProfile(ctx context.Context, profile *types.UserProfile) error {
	if profile == nil || profile.UserID == "" {
		return fmt.Errorf("profile with user id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[profile.UserID] = cloneProfile(profile)
	return nil
}

// AppendTurn stores turn with ConversationID set to the new history length.
func (s *MemoryStore) AppendTurn(ctx context.Context, userID string, turn types.ConversationTurn) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.turns[userID]
	turn.ConversationID = len(history) + 1
	s.turns[userID] = append(history, cloneTurn(turn))
	return turn.ConversationID, nil
}

func (s *MemoryStore) RecentTurns(ctx context.Context, userID string, limit int) ([]types.ConversationTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return window(s.turns[userID], limit), nil
}

func (s *MemoryStore) TurnCount(ctx context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.turns[userID]), nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]string, 0, len(s.profiles))
	for id := range s.profiles {
		users = append(users, id)
	}
	slices.Sort(users)
	return users, nil
}
