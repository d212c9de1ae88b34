package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/easeaico/maitri/internal/types"
)

// profileModel maps to the user_profiles table.
type profileModel struct {
	UserID            string `gorm:"primaryKey"`
	PreferredLanguage string
	EmotionalPatterns map[types.Emotion]float64 `gorm:"serializer:json;type:jsonb"`
	CrisisCount       int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (profileModel) TableName() string {
	return "user_profiles"
}

// turnModel maps to the conversation_turns table.
type turnModel struct {
	ID             int
	TurnID         uuid.UUID `gorm:"type:uuid"`
	UserID         string
	ConversationID int
	Timestamp      time.Time
	UserText       string
	AIResponse     string `gorm:"column:ai_response"`
	PersonaUsed    string
	LanguageTag    string
	EmotionalState pgvector.Vector `gorm:"type:vector(6)"`
	CrisisFlag     bool
	CrisisSummary  string
}

func (turnModel) TableName() string {
	return "conversation_turns"
}

// PostgresStore persists sessions with gorm. Emotional states are stored as pgvector columns.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore wraps an open gorm handle.
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgresStore opens databaseURL and pings it.
func OpenPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return NewPostgresStore(db), nil
}

func (s *PostgresStore) DB() *gorm.DB {
	return s.db
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *PostgresStore) GetOrCreateProfile(ctx context.Context, userID string) (*types.UserProfile, error) {
	record := profileFromDomain(types.NewUserProfile(userID, time.Now()))
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return s.GetProfile(ctx, userID)
}

func (s *PostgresStore) GetProfile(ctx context.Context, userID string) (*types.UserProfile, error) {
	var record profileModel
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profileToDomain(record), nil
}

func (s *PostgresStore) SaveProfile(ctx context.Context, profile *types.UserProfile) error {
	if profile == nil || profile.UserID == "" {
		return fmt.Errorf("profile with user id is required")
	}
	record := profileFromDomain(profile)
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// AppendTurn numbers and inserts turn inside a transaction holding a per-user advisory lock.
func (s *PostgresStore) AppendTurn(ctx context.Context, userID string, turn types.ConversationTurn) (int, error) {
	var length int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", userID).Error; err != nil {
			return fmt.Errorf("failed to lock user history: %w", err)
		}
		var count int64
		if err := tx.Model(&turnModel{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count turns: %w", err)
		}

		turn.ConversationID = int(count) + 1
		record := turnFromDomain(userID, turn)
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to insert turn: %w", err)
		}
		length = turn.ConversationID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return length, nil
}

func (s *PostgresStore) RecentTurns(ctx context.Context, userID string, limit int) ([]types.ConversationTurn, error) {
	query := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("conversation_id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []turnModel
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}

	return turnsOldestFirst(records), nil
}

// turnsOldestFirst converts rows read newest first into chronological order.
func turnsOldestFirst(records []turnModel) []types.ConversationTurn {
	results := make([]types.ConversationTurn, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		results = append(results, turnToDomain(records[i]))
	}
	return results
}

func (s *PostgresStore) TurnCount(ctx context.Context, userID string) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&turnModel{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count turns: %w", err)
	}
	return int(count), nil
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]string, error) {
	var users []string
	if err := s.db.WithContext(ctx).
		Model(&profileModel{}).
		Order("user_id").
		Pluck("user_id", &users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func profileFromDomain(p *types.UserProfile) profileModel {
	return profileModel{
		UserID:            p.UserID,
		PreferredLanguage: p.PreferredLanguage,
		EmotionalPatterns: p.EmotionalPatterns,
		CrisisCount:       p.CrisisCount,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func profileToDomain(model profileModel) *types.UserProfile {
	return cloneProfile(&types.UserProfile{
		UserID:            model.UserID,
		PreferredLanguage: model.PreferredLanguage,
		EmotionalPatterns: model.EmotionalPatterns,
		CrisisCount:       model.CrisisCount,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	})
}

func turnFromDomain(userID string, turn types.ConversationTurn) turnModel {
	return turnModel{
		TurnID:         turn.TurnID,
		UserID:         userID,
		ConversationID: turn.ConversationID,
		Timestamp:      turn.Timestamp,
		UserText:       turn.UserText,
		AIResponse:     turn.AIResponse,
		PersonaUsed:    turn.PersonaUsed,
		LanguageTag:    turn.LanguageTag,
		EmotionalState: pgvector.NewVector(turn.EmotionalState.Vector()),
		CrisisFlag:     turn.CrisisFlag,
		CrisisSummary:  turn.CrisisSummary,
	}
}

func turnToDomain(model turnModel) types.ConversationTurn {
	return types.ConversationTurn{
		ConversationID: model.ConversationID,
		TurnID:         model.TurnID,
		Timestamp:      model.Timestamp,
		UserText:       model.UserText,
		AIResponse:     model.AIResponse,
		PersonaUsed:    model.PersonaUsed,
		LanguageTag:    model.LanguageTag,
		EmotionalState: types.EmotionalStateFromVector(model.EmotionalState.Slice()),
		CrisisFlag:     model.CrisisFlag,
		CrisisSummary:  model.CrisisSummary,
	}
}

// AutoMigrate creates the pgvector extension and the session tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}
	if err := db.AutoMigrate(&profileModel{}, &turnModel{}); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}
