package oversight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/easeaico/maitri/internal/types"
)

// Publisher delivers crisis reports to ground control.
type Publisher interface {
	Publish(ctx context.Context, report *types.CrisisReport) error
}

// RedisPublisher publishes reports as JSON on a Redis pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher returns a RedisPublisher for channel.
func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, report *types.CrisisReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish report: %w", err)
	}
	return nil
}

// LogPublisher writes reports to the structured log.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, report *types.CrisisReport) error {
	slog.Warn("ground control alert",
		"astronaut_id", report.UserID,
		"urgency", string(report.UrgencyLevel),
		"crisis_count", report.CrisisCount,
		"recommendation", report.Recommendation,
	)
	return nil
}
