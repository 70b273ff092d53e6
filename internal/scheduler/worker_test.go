package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	leasetransport "railspace_backend/internal/leases/transport"
	"railspace_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type fakeExpirer struct {
	mu     sync.Mutex
	calls  []time.Time
	result leasetransport.ExpiryResult
	err    error
}

func (f *fakeExpirer) ExpireDue(_ context.Context, now time.Time) (leasetransport.ExpiryResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, now)
	return f.result, f.err
}

func (f *fakeExpirer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestHandleExpireLeases(t *testing.T) {
	fixed := time.Date(2025, 4, 1, 6, 0, 0, 0, time.UTC)
	pinned := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		payload ExpireLeasesPayload
		want    time.Time
	}{
		{name: "defaults to now", want: fixed},
		{name: "pinned date", payload: ExpireLeasesPayload{AsOf: pinned}, want: pinned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expirer := &fakeExpirer{result: leasetransport.ExpiryResult{Expired: 2}}
			w := &Worker{leases: expirer, log: logger.Discard(), now: func() time.Time { return fixed }}

			task, err := NewExpireLeasesTask(tt.payload)
			if err != nil {
				t.Fatalf("task: %v", err)
			}
			if err := w.handleExpireLeases(context.Background(), task); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(expirer.calls) != 1 || !expirer.calls[0].Equal(tt.want) {
				t.Fatalf("expected sweep at %v, got %v", tt.want, expirer.calls)
			}
		})
	}
}

func TestHandleExpireLeasesReturnsErrorForRetry(t *testing.T) {
	boom := errors.New("db down")
	w := &Worker{leases: &fakeExpirer{err: boom}, log: logger.Discard(), now: time.Now}

	task, _ := NewExpireLeasesTask(ExpireLeasesPayload{})
	if err := w.handleExpireLeases(context.Background(), task); !errors.Is(err, boom) {
		t.Fatalf("expected sweep error, got %v", err)
	}
}

func TestParseExpireLeasesPayload(t *testing.T) {
	payload, err := ParseExpireLeasesPayload(asynq.NewTask(TaskExpireLeases, nil))
	if err != nil {
		t.Fatalf("empty payload: %v", err)
	}
	if !payload.AsOf.IsZero() {
		t.Fatalf("expected zero date, got %v", payload.AsOf)
	}

	if _, err := ParseExpireLeasesPayload(asynq.NewTask(TaskExpireLeases, []byte("{"))); err == nil {
		t.Fatalf("expected malformed payload to fail")
	}
}

func TestSweeperRunsImmediatelyAndStops(t *testing.T) {
	expirer := &fakeExpirer{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		NewSweeper(expirer, logger.Discard(), time.Hour).Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for expirer.callCount() == 0 {
		select {
		case <-deadline:
			t.Fatalf("sweeper did not run")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done
}

func TestRedisClientOpt(t *testing.T) {
	opt, err := redisClientOpt("rediss://:secret@cache.internal:6380/2", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt.Addr != "cache.internal:6380" || opt.Password != "secret" || opt.DB != 2 {
		t.Fatalf("unexpected options %+v", opt)
	}
	if opt.TLSConfig == nil || !opt.TLSConfig.InsecureSkipVerify {
		t.Fatalf("expected insecure tls config")
	}

	if _, err := redisClientOpt("not a url", false); err == nil {
		t.Fatalf("expected invalid url to fail")
	}
}
