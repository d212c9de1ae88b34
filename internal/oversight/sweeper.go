// Package oversight periodically reviews every known user and escalates
// crisis reports to ground control.
package oversight

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/easeaico/maitri/internal/metrics"
	"github.com/easeaico/maitri/internal/types"
)

// UserLister lists the users with a stored session.
type UserLister interface {
	ListUsers(ctx context.Context) ([]string, error)
}

// ReportSource builds a crisis report for one user.
type ReportSource interface {
	CrisisReport(ctx context.Context, userID string) (*types.CrisisReport, error)
}

// Sweeper publishes MEDIUM and HIGH urgency reports on a fixed interval.
type Sweeper struct {
	users     UserLister
	reports   ReportSource
	publisher Publisher
	metrics   *metrics.Metrics
	timeout   time.Duration

	scheduler gocron.Scheduler

	mu   sync.Mutex
	sent map[string]escalation
}

// escalation is the last report published for a user.
type escalation struct {
	lastCrisis time.Time
	urgency    types.Urgency
}

// NewSweeper returns a Sweeper. m may be nil.
func NewSweeper(users UserLister, reports ReportSource, publisher Publisher, m *metrics.Metrics) *Sweeper {
	if publisher == nil {
		publisher = LogPublisher{}
	}
	return &Sweeper{
		users:     users,
		reports:   reports,
		publisher: publisher,
		metrics:   m,
		timeout:   time.Minute,
		sent:      make(map[string]escalation),
	}
}

// Sweep reviews every user once and returns how many reports were published.
// Failures for one user are logged and do not stop the sweep. A report is not
// published again until the user has a newer crisis or the urgency changes.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	published := 0
	for _, userID := range users {
		report, err := s.reports.CrisisReport(ctx, userID)
		if err != nil {
			slog.Error("failed to build crisis report", "astronaut_id", userID, "error", err.Error())
			continue
		}
		if !shouldEscalate(report) || s.alreadySent(userID, report) {
			continue
		}
		if err := s.publisher.Publish(ctx, report); err != nil {
			slog.Error("failed to publish crisis report", "astronaut_id", userID, "error", err.Error())
			continue
		}
		s.markSent(userID, report)
		s.metrics.RecordOversightAlert(string(report.UrgencyLevel))
		published++
	}

	slog.Debug("oversight sweep finished", "users", len(users), "published", published)
	return published, nil
}

// Start schedules Sweep every interval, running the first sweep immediately.
func (s *Sweeper) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("oversight interval must be > 0")
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()
			if _, err := s.Sweep(ctx); err != nil {
				slog.Error("oversight sweep failed", "error", err.Error())
			}
		}),
		gocron.WithName("oversight_sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return fmt.Errorf("failed to schedule oversight sweep: %w", err)
	}

	scheduler.Start()
	s.scheduler = scheduler
	slog.Info("oversight sweeper started", "interval", interval.String())
	return nil
}

// Stop shuts the scheduler down, waiting for a running sweep.
func (s *Sweeper) Stop() error {
	if s.scheduler == nil {
		return nil
	}
	return s.scheduler.Shutdown()
}

func shouldEscalate(report *types.CrisisReport) bool {
	if !report.HasCrisis() {
		return false
	}
	return report.UrgencyLevel == types.UrgencyMedium || report.UrgencyLevel == types.UrgencyHigh
}

func (s *Sweeper) alreadySent(userID string, report *types.CrisisReport) bool {
	if report.LastCrisis == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.sent[userID]
	return ok && !report.LastCrisis.After(prev.lastCrisis) && prev.urgency == report.UrgencyLevel
}

func (s *Sweeper) markSent(userID string, report *types.CrisisReport) {
	if report.LastCrisis == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent[userID] = escalation{lastCrisis: *report.LastCrisis, urgency: report.UrgencyLevel}
}
