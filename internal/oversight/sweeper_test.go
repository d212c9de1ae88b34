package oversight

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/easeaico/maitri/internal/types"
)

type fakeUsers struct {
	users []string
	err   error
}

func (f fakeUsers) ListUsers(ctx context.Context) ([]string, error) {
	return f.users, f.err
}

type fakeReports map[string]*types.CrisisReport

func (f fakeReports) CrisisReport(ctx context.Context, userID string) (*types.CrisisReport, error) {
	report, ok := f[userID]
	if !ok {
		return nil, errors.New("not found")
	}
	return report, nil
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []string
}

func (p *recordingPublisher) Publish(ctx context.Context, report *types.CrisisReport) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, report.UserID)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

var lastCrisis = time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

func crisisReport(userID string, urgency types.Urgency) *types.CrisisReport {
	at := lastCrisis
	return &types.CrisisReport{UserID: userID, Status: types.ReportStatusCrisis, UrgencyLevel: urgency, CrisisCount: 2, LastCrisis: &at}
}

func TestSweepPublishesMediumAndHigh(t *testing.T) {
	reports := fakeReports{
		"ASTRO001": crisisReport("ASTRO001", types.UrgencyHigh),
		"ASTRO002": crisisReport("ASTRO002", types.UrgencyLow),
		"ASTRO003": {UserID: "ASTRO003", Status: types.ReportStatusNoCrisis},
		"ASTRO004": crisisReport("ASTRO004", types.UrgencyMedium),
	}
	pub := &recordingPublisher{}
	s := NewSweeper(fakeUsers{users: []string{"ASTRO001", "ASTRO002", "ASTRO003", "ASTRO004", "ASTRO005"}}, reports, pub, nil)

	n, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep error: %v", err)
	}
	if n != 2 || len(pub.published) != 2 {
		t.Fatalf("expected 2 published reports, got %d (%v)", n, pub.published)
	}
	if pub.published[0] != "ASTRO001" || pub.published[1] != "ASTRO004" {
		t.Fatalf("unexpected published users: %v", pub.published)
	}
}

func TestSweepPublishesEachCrisisOnce(t *testing.T) {
	reports := fakeReports{"ASTRO001": crisisReport("ASTRO001", types.UrgencyMedium)}
	pub := &recordingPublisher{}
	s := NewSweeper(fakeUsers{users: []string{"ASTRO001"}}, reports, pub, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.Sweep(ctx); err != nil {
			t.Fatalf("Sweep error: %v", err)
		}
	}
	if pub.count() != 1 {
		t.Fatalf("expected unchanged report published once, got %d", pub.count())
	}

	reports["ASTRO001"] = crisisReport("ASTRO001", types.UrgencyHigh)
	if n, _ := s.Sweep(ctx); n != 1 {
		t.Fatalf("expected republish after urgency change, got %d", n)
	}

	newer := crisisReport("ASTRO001", types.UrgencyHigh)
	later := lastCrisis.Add(time.Hour)
	newer.LastCrisis = &later
	reports["ASTRO001"] = newer
	if n, _ := s.Sweep(ctx); n != 1 {
		t.Fatalf("expected republish after a newer crisis, got %d", n)
	}
	if n, _ := s.Sweep(ctx); n != 0 {
		t.Fatalf("expected no republish, got %d", n)
	}
}

func TestSweepListError(t *testing.T) {
	s := NewSweeper(fakeUsers{err: errors.New("down")}, fakeReports{}, &recordingPublisher{}, nil)
	if _, err := s.Sweep(context.Background()); err == nil {
		t.Fatalf("expected error when users cannot be listed")
	}
}

func TestSweeperStartRunsImmediately(t *testing.T) {
	pub := &recordingPublisher{}
	s := NewSweeper(fakeUsers{users: []string{"ASTRO001"}}, fakeReports{"ASTRO001": crisisReport("ASTRO001", types.UrgencyHigh)}, pub, nil)

	if err := s.Start(time.Hour); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for pub.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected an immediate sweep")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := s.Start(0); err == nil {
		t.Fatalf("expected error for zero interval")
	}
}

func TestRedisPublisher(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	ctx := context.Background()

	sub := client.Subscribe(ctx, "maitri:ground_control")
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe error: %v", err)
	}

	pub := NewRedisPublisher(client, "maitri:ground_control")
	if err := pub.Publish(ctx, crisisReport("ASTRO001", types.UrgencyHigh)); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	recvCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	msg, err := sub.ReceiveMessage(recvCtx)
	if err != nil {
		t.Fatalf("ReceiveMessage error: %v", err)
	}

	var got types.CrisisReport
	if err := json.Unmarshal([]byte(msg.Payload), &got); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if got.UserID != "ASTRO001" || got.UrgencyLevel != types.UrgencyHigh {
		t.Fatalf("unexpected payload: %+v", got)
	}
}
