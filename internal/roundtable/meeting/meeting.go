// Package meeting models a discussion session and owns its lifecycle rules.
//
// A meeting is created pending, runs rounds of contributions in fixed
// participant order, and completes on consensus or round exhaustion. The
// rules here are pure: persistence and locking live with the callers.
package meeting

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/roundtable/internal/platform/id"
)

// Status represents lifecycle state for a meeting.
type Status string

const (
	// StatusPending allows structural mutation and starting.
	StatusPending Status = "pending"
	// StatusRunning marks an in-flight discussion; the record is owned by
	// the lock holder and rejects structural mutation.
	StatusRunning Status = "running"
	// StatusCompleted marks a finished discussion; re-entered only through
	// an explicit continuation.
	StatusCompleted Status = "completed"
)

// DefaultRounds is used when create input leaves the round budget unset.
const DefaultRounds = 3

var (
	// ErrEmptyID indicates an ID is required.
	ErrEmptyID = errors.New("id is required")
	// ErrEmptyTopic indicates a topic is required.
	ErrEmptyTopic = errors.New("topic is required")
	// ErrNoParticipants indicates at least one participant is required.
	ErrNoParticipants = errors.New("at least one participant is required")
	// ErrDuplicateParticipant indicates a participant id appears twice.
	ErrDuplicateParticipant = errors.New("participant ids must be unique")
	// ErrParticipantPresent indicates the participant is already on the meeting.
	ErrParticipantPresent = errors.New("participant already added")
	// ErrParticipantMissing indicates the participant is not on the meeting.
	ErrParticipantMissing = errors.New("participant not on meeting")
	// ErrLastParticipant indicates removal would leave zero participants.
	ErrLastParticipant = errors.New("cannot remove the last participant")
	// ErrInvalidRounds indicates the round budget must be at least one.
	ErrInvalidRounds = errors.New("rounds must be at least 1")
	// ErrNotPending indicates a structural mutation against a non-pending meeting.
	ErrNotPending = errors.New("meeting is not pending")
	// ErrInvalidTransition indicates a disallowed status change.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Meeting is the domain model for one discussion session.
//
// Transcript contributions are stored separately and append-only; the record
// here carries only the structural fields and the cached outcome.
type Meeting struct {
	ID      string
	Topic   string
	RoleIDs []string
	Rounds  int
	Status  Status

	// Reference carries background material fed into every generation
	// context, such as the conclusion of the meeting this one follows up.
	Reference string

	Consensus  string
	Conclusion string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Contribution is one participant's statement within a specific round.
// Immutable once appended; Seq is the zero-based position in the transcript.
type Contribution struct {
	MeetingID string
	Seq       int
	Round     int
	RoleID    string
	Text      string
	CreatedAt time.Time
}

// CreateInput captures user-provided fields for creating a meeting.
type CreateInput struct {
	Topic   string
	RoleIDs []string
	Rounds  int
}

// NormalizeCreateInput validates and canonicalizes create input. A zero
// round budget takes the default; negative budgets are rejected.
func NormalizeCreateInput(input CreateInput) (CreateInput, error) {
	input.Topic = strings.TrimSpace(input.Topic)
	if input.Topic == "" {
		return CreateInput{}, ErrEmptyTopic
	}

	ids := make([]string, 0, len(input.RoleIDs))
	seen := make(map[string]struct{}, len(input.RoleIDs))
	for _, roleID := range input.RoleIDs {
		roleID = strings.TrimSpace(roleID)
		if roleID == "" {
			continue
		}
		if _, dup := seen[roleID]; dup {
			return CreateInput{}, ErrDuplicateParticipant
		}
		seen[roleID] = struct{}{}
		ids = append(ids, roleID)
	}
	if len(ids) == 0 {
		return CreateInput{}, ErrNoParticipants
	}
	input.RoleIDs = ids

	if input.Rounds == 0 {
		input.Rounds = DefaultRounds
	}
	if input.Rounds < 1 {
		return CreateInput{}, ErrInvalidRounds
	}

	return input, nil
}

// Create constructs a normalized pending meeting with generated identifiers.
func Create(input CreateInput, now func() time.Time, idGenerator func() (string, error)) (Meeting, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateInput(input)
	if err != nil {
		return Meeting{}, err
	}

	meetingID, err := idGenerator()
	if err != nil {
		return Meeting{}, fmt.Errorf("generate meeting id: %w", err)
	}

	createdAt := now().UTC()
	return Meeting{
		ID:        meetingID,
		Topic:     normalized.Topic,
		RoleIDs:   normalized.RoleIDs,
		Rounds:    normalized.Rounds,
		Status:    StatusPending,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// ParseStatus converts a stored status string back into a Status.
func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusPending, StatusRunning, StatusCompleted:
		return Status(value), nil
	}
	return "", fmt.Errorf("unknown meeting status %q", value)
}

// CanTransition reports whether a status change is allowed. The completed
// to running edge exists only for explicit continuations.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusRunning
	case StatusRunning:
		return to == StatusPending || to == StatusCompleted
	case StatusCompleted:
		return to == StatusRunning
	}
	return false
}
