package domain

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/louisbranch/roundtable/internal/roundtable/app"
	"github.com/louisbranch/roundtable/internal/roundtable/consensus"
	"github.com/louisbranch/roundtable/internal/roundtable/generator"
	"github.com/louisbranch/roundtable/internal/roundtable/meeting"
	"github.com/louisbranch/roundtable/internal/roundtable/storage/sqlite"
)

type stubDetector struct{}

func (stubDetector) Evaluate(ctx context.Context, topic string, transcript []meeting.Contribution, round int) (consensus.Verdict, error) {
	return consensus.Verdict{}, nil
}

type stubInvoker struct {
	mu    sync.Mutex
	calls int
}

func (s *stubInvoker) Invoke(ctx context.Context, req generator.Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return fmt.Sprintf("position %d", s.calls), nil
}

func newTestService(t *testing.T) *app.Service {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "roundtable.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return app.NewService(app.Config{
		Roles:    store,
		Meetings: store,
		Usage:    store,
		Invoker:  &stubInvoker{},
		Detector: stubDetector{},
		Logger:   testLogger(t),
	})
}

func testLogger(t *testing.T) *log.Logger {
	t.Helper()
	return log.New(testWriter{t}, "", 0)
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func createRole(t *testing.T, svc *app.Service, logger *log.Logger, name string) RoleSummary {
	t.Helper()
	_, result, err := RoleCreateHandler(svc, logger)(context.Background(), nil, RoleCreateInput{Name: name})
	if err != nil {
		t.Fatalf("role_create %s: %v", name, err)
	}
	if result.Status != statusSuccess {
		t.Fatalf("role_create %s: status %q", name, result.Status)
	}
	return result.Role
}

func createMeeting(t *testing.T, svc *app.Service, logger *log.Logger, topic string, rounds int, roleIDs ...string) MeetingDetail {
	t.Helper()
	_, result, err := MeetingCreateHandler(svc, logger)(context.Background(), nil, MeetingCreateInput{
		Topic:   topic,
		RoleIDs: roleIDs,
		Rounds:  rounds,
	})
	if err != nil {
		t.Fatalf("meeting_create: %v", err)
	}
	if result.Status != statusSuccess {
		t.Fatalf("meeting_create: status %q", result.Status)
	}
	return result.Meeting
}

func TestRoleCreateDuplicateNameReportsFailureStatus(t *testing.T) {
	svc := newTestService(t)
	logger := testLogger(t)
	createRole(t, svc, logger, "Engineer")

	_, result, err := RoleCreateHandler(svc, logger)(context.Background(), nil, RoleCreateInput{Name: "Engineer"})
	if err != nil {
		t.Fatalf("duplicate create should degrade to a status, got error %v", err)
	}
	if !strings.HasPrefix(result.Status, "failure:") {
		t.Fatalf("expected failure indicator, got %q", result.Status)
	}
	if result.Role.ID != "" {
		t.Fatalf("no role should be reported on failure, got %+v", result.Role)
	}
}

func TestRoleListOrderedByName(t *testing.T) {
	svc := newTestService(t)
	logger := testLogger(t)
	createRole(t, svc, logger, "Zara")
	createRole(t, svc, logger, "Ana")

	_, result, err := RoleListHandler(svc, logger)(context.Background(), nil, RoleListInput{})
	if err != nil {
		t.Fatalf("role_list: %v", err)
	}
	if len(result.Roles) != 2 || result.Roles[0].Name != "Ana" || result.Roles[1].Name != "Zara" {
		t.Fatalf("unexpected listing: %+v", result.Roles)
	}
}

func TestRoleDeleteMissingReportsFailureStatus(t *testing.T) {
	svc := newTestService(t)
	logger := testLogger(t)

	_, result, err := RoleDeleteHandler(svc, logger)(context.Background(), nil, RoleDeleteInput{RoleID: "ghost"})
	if err != nil {
		t.Fatalf("missing role should degrade to a status, got error %v", err)
	}
	if !strings.HasPrefix(result.Status, "failure:") {
		t.Fatalf("expected failure indicator, got %q", result.Status)
	}
}

func TestRoleIdentityGet(t *testing.T) {
	svc := newTestService(t)
	logger := testLogger(t)
	r := createRole(t, svc, logger, "Engineer")

	_, result, err := RoleIdentityGetHandler(svc, logger)(context.Background(), nil, RoleIdentityGetInput{RoleID: r.ID})
	if err != nil {
		t.Fatalf("role_identity_get: %v", err)
	}
	if !strings.Contains(result.Identity, "# Engineer") {
		t.Fatalf("identity missing heading: %q", result.Identity)
	}

	_, _, err = RoleIdentityGetHandler(svc, logger)(context.Background(), nil, RoleIdentityGetInput{RoleID: "ghost"})
	if err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestMeetingCreateUnknownRoleReportsFailureStatus(t *testing.T) {
	svc := newTestService(t)
	logger := testLogger(t)

	_, result, err := MeetingCreateHandler(svc, logger)(context.Background(), nil, MeetingCreateInput{
		Topic:   "topic",
		RoleIDs: []string{"ghost"},
	})
	if err != nil {
		t.Fatalf("unknown role should degrade to a status, got error %v", err)
	}
	if !strings.HasPrefix(result.Status, "failure:") {
		t.Fatalf("expected failure indicator, got %q", result.Status)
	}
}

func TestMeetingLifecycleThroughTools(t *testing.T) {
	svc := newTestService(t)
	logger := testLogger(t)
	ctx := context.Background()
	a := createRole(t, svc, logger, "Alice")
	b := createRole(t, svc, logger, "Bob")
	m := createMeeting(t, svc, logger, "pricing strategy", 2, a.ID, b.ID)

	_, start, err := MeetingStartHandler(svc, logger)(ctx, nil, MeetingStartInput{MeetingID: m.MeetingID})
	if err != nil {
		t.Fatalf("meeting_start: %v", err)
	}
	if start.Outcome != "completed" {
		t.Fatalf("expected completed outcome, got %q", start.Outcome)
	}

	_, status, err := MeetingStatusGetHandler(svc, logger)(ctx, nil, MeetingStatusGetInput{MeetingID: m.MeetingID})
	if err != nil {
		t.Fatalf("meeting_status_get: %v", err)
	}
	if status.Status != "completed" || status.Conclusion == "" {
		t.Fatalf("unexpected status view: %+v", status)
	}

	_, minutes, err := MeetingMinutesGetHandler(svc, logger)(ctx, nil, MeetingMinutesGetInput{MeetingID: m.MeetingID})
	if err != nil {
		t.Fatalf("meeting_minutes_get: %v", err)
	}
	if !strings.Contains(minutes.Minutes, "## Round 1") || !strings.Contains(minutes.Minutes, "### Alice") {
		t.Fatalf("minutes missing expected sections: %q", minutes.Minutes)
	}
}

func TestMeetingStartLiteralOutcomes(t *testing.T) {
	svc := newTestService(t)
	logger := testLogger(t)
	ctx := context.Background()
	a := createRole(t, svc, logger, "Alice")
	m := createMeeting(t, svc, logger, "topic", 1, a.ID)

	_, missing, err := MeetingStartHandler(svc, logger)(ctx, nil, MeetingStartInput{MeetingID: "ghost"})
	if err != nil {
		t.Fatalf("meeting_start missing: %v", err)
	}
	if missing.Outcome != "meeting not found" {
		t.Fatalf("expected literal not-found outcome, got %q", missing.Outcome)
	}

	if _, first, err := MeetingStartHandler(svc, logger)(ctx, nil, MeetingStartInput{MeetingID: m.MeetingID}); err != nil || first.Outcome != "completed" {
		t.Fatalf("first start: outcome %q err %v", first.Outcome, err)
	}

	_, again, err := MeetingStartHandler(svc, logger)(ctx, nil, MeetingStartInput{MeetingID: m.MeetingID})
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if again.Outcome != "already completed, use continuation" {
		t.Fatalf("expected continuation hint, got %q", again.Outcome)
	}
}

func TestMeetingContinueDefaultsToOneRound(t *testing.T) {
	svc := newTestService(t)
	logger := testLogger(t)
	ctx := context.Background()
	a := createRole(t, svc, logger, "Alice")
	m := createMeeting(t, svc, logger, "topic", 1, a.ID)

	if _, first, err := MeetingStartHandler(svc, logger)(ctx, nil, MeetingStartInput{MeetingID: m.MeetingID}); err != nil || first.Outcome != "completed" {
		t.Fatalf("start: outcome %q err %v", first.Outcome, err)
	}

	_, cont, err := MeetingContinueHandler(svc, logger)(ctx, nil, MeetingContinueInput{MeetingID: m.MeetingID})
	if err != nil {
		t.Fatalf("meeting_continue: %v", err)
	}
	if cont.Outcome != "completed" {
		t.Fatalf("expected completed continuation, got %q", cont.Outcome)
	}

	_, detail, err := MeetingGetHandler(svc, logger)(ctx, nil, MeetingGetInput{MeetingID: m.MeetingID})
	if err != nil {
		t.Fatalf("meeting_get: %v", err)
	}
	if detail.Meeting.Rounds != 2 {
		t.Fatalf("expected budget extended to 2, got %d", detail.Meeting.Rounds)
	}
}

func TestStructuralMutationToolsReportStatuses(t *testing.T) {
	svc := newTestService(t)
	logger := testLogger(t)
	ctx := context.Background()
	a := createRole(t, svc, logger, "Alice")
	b := createRole(t, svc, logger, "Bob")
	m := createMeeting(t, svc, logger, "topic", 2, a.ID)

	if _, r, err := MeetingTopicUpdateHandler(svc, logger)(ctx, nil, MeetingTopicUpdateInput{MeetingID: m.MeetingID, Topic: "sharper"}); err != nil || r.Status != statusSuccess {
		t.Fatalf("topic update: status %q err %v", r.Status, err)
	}
	if _, r, err := MeetingRoundsUpdateHandler(svc, logger)(ctx, nil, MeetingRoundsUpdateInput{MeetingID: m.MeetingID, Rounds: 4}); err != nil || r.Status != statusSuccess {
		t.Fatalf("rounds update: status %q err %v", r.Status, err)
	}
	if _, r, err := MeetingParticipantAddHandler(svc, logger)(ctx, nil, MeetingParticipantAddInput{MeetingID: m.MeetingID, RoleID: b.ID}); err != nil || r.Status != statusSuccess {
		t.Fatalf("participant add: status %q err %v", r.Status, err)
	}
	if _, r, err := MeetingParticipantRemoveHandler(svc, logger)(ctx, nil, MeetingParticipantRemoveInput{MeetingID: m.MeetingID, RoleID: b.ID}); err != nil || r.Status != statusSuccess {
		t.Fatalf("participant remove: status %q err %v", r.Status, err)
	}

	_, last, err := MeetingParticipantRemoveHandler(svc, logger)(ctx, nil, MeetingParticipantRemoveInput{MeetingID: m.MeetingID, RoleID: a.ID})
	if err != nil {
		t.Fatalf("last participant removal should degrade to a status, got error %v", err)
	}
	if !strings.HasPrefix(last.Status, "failure:") {
		t.Fatalf("expected failure indicator, got %q", last.Status)
	}

	if _, r, err := MeetingDeleteHandler(svc, logger)(ctx, nil, MeetingDeleteInput{MeetingID: m.MeetingID}); err != nil || r.Status != statusSuccess {
		t.Fatalf("delete: status %q err %v", r.Status, err)
	}
}

func TestMeetingFollowupThroughTools(t *testing.T) {
	svc := newTestService(t)
	logger := testLogger(t)
	ctx := context.Background()
	a := createRole(t, svc, logger, "Alice")
	m := createMeeting(t, svc, logger, "pricing strategy", 1, a.ID)

	_, early, err := MeetingFollowupHandler(svc, logger)(ctx, nil, MeetingFollowupInput{MeetingID: m.MeetingID, Topic: "rollout"})
	if err != nil {
		t.Fatalf("followup before completion should degrade to a status, got error %v", err)
	}
	if !strings.HasPrefix(early.Status, "failure:") {
		t.Fatalf("expected failure indicator, got %q", early.Status)
	}

	if _, first, err := MeetingStartHandler(svc, logger)(ctx, nil, MeetingStartInput{MeetingID: m.MeetingID}); err != nil || first.Outcome != "completed" {
		t.Fatalf("start: outcome %q err %v", first.Outcome, err)
	}

	_, followup, err := MeetingFollowupHandler(svc, logger)(ctx, nil, MeetingFollowupInput{MeetingID: m.MeetingID, Topic: "rollout"})
	if err != nil {
		t.Fatalf("meeting_followup: %v", err)
	}
	if followup.Status != statusSuccess {
		t.Fatalf("followup status %q", followup.Status)
	}
	if followup.Meeting.Status != "pending" || followup.Meeting.Topic != "rollout" {
		t.Fatalf("unexpected follow-up detail: %+v", followup.Meeting)
	}
	if len(followup.Meeting.Roles) != 1 || followup.Meeting.Roles[0] != a.ID {
		t.Fatalf("participants not inherited: %v", followup.Meeting.Roles)
	}
}
