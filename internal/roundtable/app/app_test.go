package app

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"testing"

	"github.com/louisbranch/roundtable/internal/roundtable/consensus"
	"github.com/louisbranch/roundtable/internal/roundtable/generator"
	"github.com/louisbranch/roundtable/internal/roundtable/meeting"
	"github.com/louisbranch/roundtable/internal/roundtable/role"
	"github.com/louisbranch/roundtable/internal/roundtable/storage/sqlite"
)

// countingInvoker counts invocations and returns deterministic text.
type countingInvoker struct {
	mu    sync.Mutex
	calls int
	fail  error
}

func (c *countingInvoker) Invoke(ctx context.Context, req generator.Request) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.fail != nil {
		return "", c.fail
	}
	return fmt.Sprintf("opinion %d", c.calls), nil
}

func (c *countingInvoker) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// scriptedDetector returns a consensus verdict at a chosen round, none
// before it, and never invokes the generator.
type scriptedDetector struct {
	consensusAtRound int
	summary          string
	evaluations      int
}

func (d *scriptedDetector) Evaluate(ctx context.Context, topic string, transcript []meeting.Contribution, round int) (consensus.Verdict, error) {
	d.evaluations++
	if d.consensusAtRound != 0 && round >= d.consensusAtRound {
		return consensus.Verdict{Reached: true, Summary: d.summary}, nil
	}
	return consensus.Verdict{}, nil
}

type testEnv struct {
	service  *Service
	store    *sqlite.Store
	invoker  *countingInvoker
	detector *scriptedDetector
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "roundtable.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	invoker := &countingInvoker{}
	detector := &scriptedDetector{}
	service := NewService(Config{
		Roles:    store,
		Meetings: store,
		Usage:    store,
		Invoker:  invoker,
		Detector: detector,
		Logger:   log.New(testWriter{t}, "", 0),
	})
	return &testEnv{service: service, store: store, invoker: invoker, detector: detector}
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func (e *testEnv) createRole(t *testing.T, name string) role.Role {
	t.Helper()
	created, err := e.service.CreateRole(context.Background(), role.CreateInput{Name: name, Description: name + " persona"})
	if err != nil {
		t.Fatalf("create role %s: %v", name, err)
	}
	return created
}

func (e *testEnv) createMeeting(t *testing.T, topic string, rounds int, roleIDs ...string) meeting.Meeting {
	t.Helper()
	created, err := e.service.CreateMeeting(context.Background(), meeting.CreateInput{
		Topic:   topic,
		RoleIDs: roleIDs,
		Rounds:  rounds,
	})
	if err != nil {
		t.Fatalf("create meeting: %v", err)
	}
	return created
}
