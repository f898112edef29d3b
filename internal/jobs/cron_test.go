package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
)

type stubReaper struct {
	mu    sync.Mutex
	idle  []string
	ended []string
}

func (s *stubReaper) IdleSessions(time.Duration) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.idle...)
}

func (s *stubReaper) EndSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = append(s.ended, sessionID)
	return nil
}

func TestInitCronJobsRejectsInvalidSpec(t *testing.T) {
	c := cron.New()
	defer c.Stop()

	if err := InitCronJobs(c, &stubReaper{}, "not a cron spec", time.Minute); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}

func TestInitCronJobsReapsIdleSessions(t *testing.T) {
	c := cron.New()
	defer c.Stop()

	reaper := &stubReaper{idle: []string{"a", "b"}}
	if err := InitCronJobs(c, reaper, "@every 1s", time.Minute); err != nil {
		t.Fatalf("InitCronJobs err: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		reaper.mu.Lock()
		ended := len(reaper.ended)
		reaper.mu.Unlock()
		if ended >= 2 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("reaper never ran, ended %d sessions", ended)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
