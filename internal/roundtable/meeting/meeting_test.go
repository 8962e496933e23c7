package meeting

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeCreateInput(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateInput
		wantErr error
	}{
		{
			name:    "valid",
			input:   CreateInput{Topic: "pricing strategy", RoleIDs: []string{"a", "b"}, Rounds: 2},
			wantErr: nil,
		},
		{
			name:    "empty topic",
			input:   CreateInput{Topic: "  ", RoleIDs: []string{"a"}},
			wantErr: ErrEmptyTopic,
		},
		{
			name:    "no participants",
			input:   CreateInput{Topic: "t", RoleIDs: nil},
			wantErr: ErrNoParticipants,
		},
		{
			name:    "blank participants filtered to empty",
			input:   CreateInput{Topic: "t", RoleIDs: []string{" ", ""}},
			wantErr: ErrNoParticipants,
		},
		{
			name:    "duplicate participant",
			input:   CreateInput{Topic: "t", RoleIDs: []string{"a", "a"}},
			wantErr: ErrDuplicateParticipant,
		},
		{
			name:    "negative rounds",
			input:   CreateInput{Topic: "t", RoleIDs: []string{"a"}, Rounds: -1},
			wantErr: ErrInvalidRounds,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeCreateInput(tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNormalizeCreateInputDefaultsRounds(t *testing.T) {
	normalized, err := NormalizeCreateInput(CreateInput{Topic: "t", RoleIDs: []string{"a"}})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if normalized.Rounds != DefaultRounds {
		t.Fatalf("expected default rounds %d, got %d", DefaultRounds, normalized.Rounds)
	}
}

func TestCreateStartsPendingWithEmptyOutcome(t *testing.T) {
	fixed := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	created, err := Create(
		CreateInput{Topic: "launch window", RoleIDs: []string{"a", "b"}, Rounds: 2},
		func() time.Time { return fixed },
		func() (string, error) { return "m-1", nil },
	)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != StatusPending {
		t.Fatalf("expected pending, got %s", created.Status)
	}
	if created.Consensus != "" || created.Conclusion != "" {
		t.Fatal("expected empty consensus and conclusion on a new meeting")
	}
	if created.ID != "m-1" || !created.CreatedAt.Equal(fixed) {
		t.Fatalf("unexpected identity fields %+v", created)
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "running", "completed"} {
		if _, err := ParseStatus(valid); err != nil {
			t.Fatalf("parse %q: %v", valid, err)
		}
	}
	if _, err := ParseStatus("archived"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusRunning, true},
		{StatusRunning, StatusCompleted, true},
		{StatusRunning, StatusPending, true},
		{StatusCompleted, StatusRunning, true},
		{StatusPending, StatusCompleted, false},
		{StatusCompleted, StatusPending, false},
		{StatusRunning, StatusRunning, false},
	}
	for _, tc := range tests {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func pendingMeeting() Meeting {
	return Meeting{
		ID:      "m-1",
		Topic:   "pricing strategy",
		RoleIDs: []string{"a", "b"},
		Rounds:  2,
		Status:  StatusPending,
	}
}

func TestUpdateTopic(t *testing.T) {
	m := pendingMeeting()

	updated, err := UpdateTopic(m, " new topic ")
	if err != nil {
		t.Fatalf("update topic: %v", err)
	}
	if updated.Topic != "new topic" {
		t.Fatalf("unexpected topic %q", updated.Topic)
	}

	if _, err := UpdateTopic(m, ""); !errors.Is(err, ErrEmptyTopic) {
		t.Fatalf("expected ErrEmptyTopic, got %v", err)
	}

	m.Status = StatusRunning
	if _, err := UpdateTopic(m, "x"); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
}

func TestUpdateRounds(t *testing.T) {
	m := pendingMeeting()

	updated, err := UpdateRounds(m, 5)
	if err != nil {
		t.Fatalf("update rounds: %v", err)
	}
	if updated.Rounds != 5 {
		t.Fatalf("unexpected rounds %d", updated.Rounds)
	}

	if _, err := UpdateRounds(m, 0); !errors.Is(err, ErrInvalidRounds) {
		t.Fatalf("expected ErrInvalidRounds, got %v", err)
	}

	m.Status = StatusCompleted
	if _, err := UpdateRounds(m, 4); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
}

func TestAddParticipant(t *testing.T) {
	m := pendingMeeting()

	updated, err := AddParticipant(m, "c")
	if err != nil {
		t.Fatalf("add participant: %v", err)
	}
	if len(updated.RoleIDs) != 3 || updated.RoleIDs[2] != "c" {
		t.Fatalf("unexpected participants %v", updated.RoleIDs)
	}
	if len(m.RoleIDs) != 2 {
		t.Fatal("add mutated the original participant list")
	}

	if _, err := AddParticipant(m, "a"); !errors.Is(err, ErrParticipantPresent) {
		t.Fatalf("expected ErrParticipantPresent, got %v", err)
	}

	m.Status = StatusRunning
	if _, err := AddParticipant(m, "d"); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
}

func TestRemoveParticipant(t *testing.T) {
	m := pendingMeeting()

	updated, err := RemoveParticipant(m, "a")
	if err != nil {
		t.Fatalf("remove participant: %v", err)
	}
	if len(updated.RoleIDs) != 1 || updated.RoleIDs[0] != "b" {
		t.Fatalf("unexpected participants %v", updated.RoleIDs)
	}

	if _, err := RemoveParticipant(m, "zz"); !errors.Is(err, ErrParticipantMissing) {
		t.Fatalf("expected ErrParticipantMissing, got %v", err)
	}

	solo := pendingMeeting()
	solo.RoleIDs = []string{"a"}
	if _, err := RemoveParticipant(solo, "a"); !errors.Is(err, ErrLastParticipant) {
		t.Fatalf("expected ErrLastParticipant, got %v", err)
	}

	m.Status = StatusRunning
	if _, err := RemoveParticipant(m, "a"); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
}
