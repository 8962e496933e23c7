// Package storage defines the persistence contracts for roles and meetings.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ErrConflict indicates a write collided with an existing record.
var ErrConflict = errors.New("record conflict")

// ErrStatusMismatch indicates a compare-and-set found a different stored
// status than the caller expected.
var ErrStatusMismatch = errors.New("stored status does not match expected")

// RoleRecord stores a persisted participant persona.
type RoleRecord struct {
	ID          string
	Name        string
	Description string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MeetingRecord stores a persisted meeting. RoleIDs preserves speaking order.
type MeetingRecord struct {
	ID         string
	Topic      string
	RoleIDs    []string
	Rounds     int
	Status     string
	Reference  string
	Consensus  string
	Conclusion string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ContributionRecord stores one transcript entry. Seq is the zero-based
// position in the meeting's transcript and is unique per meeting.
type ContributionRecord struct {
	MeetingID string
	Seq       int
	Round     int
	RoleID    string
	Text      string
	CreatedAt time.Time
}

// RoleStore persists role records.
type RoleStore interface {
	PutRole(ctx context.Context, record RoleRecord) error
	GetRole(ctx context.Context, roleID string) (RoleRecord, error)
	ListRoles(ctx context.Context) ([]RoleRecord, error)
	DeleteRole(ctx context.Context, roleID string) error
}

// MeetingStore persists meeting records and their append-only transcripts.
type MeetingStore interface {
	PutMeeting(ctx context.Context, record MeetingRecord) error
	GetMeeting(ctx context.Context, meetingID string) (MeetingRecord, error)
	ListMeetings(ctx context.Context) ([]MeetingRecord, error)
	// UpdateMeeting replaces the structural fields of an existing record.
	UpdateMeeting(ctx context.Context, record MeetingRecord) error
	DeleteMeeting(ctx context.Context, meetingID string) error

	// CompareAndSetStatus atomically moves a meeting from expectedStatus to
	// newStatus. Returns ErrStatusMismatch when the stored status differs,
	// closing the race between two near-simultaneous start requests.
	CompareAndSetStatus(ctx context.Context, meetingID string, expectedStatus, newStatus string, updatedAt time.Time) error

	// AppendContribution appends one transcript entry. The (meeting, seq)
	// pair is unique; a duplicate append returns ErrConflict.
	AppendContribution(ctx context.Context, record ContributionRecord) error
	ListContributions(ctx context.Context, meetingID string) ([]ContributionRecord, error)

	// MeetingSnapshot reads a meeting and its transcript in one read
	// transaction so minutes render from a consistent view.
	MeetingSnapshot(ctx context.Context, meetingID string) (MeetingRecord, []ContributionRecord, error)

	// CompleteMeeting commits the end of a run as one atomic unit: status
	// set to newStatus, consensus and conclusion cached on the record.
	CompleteMeeting(ctx context.Context, meetingID string, newStatus, consensus, conclusion string, updatedAt time.Time) error
}

// RoleUsageStore reports participant references across meetings. Used to
// block deleting a role that is still on a meeting.
type RoleUsageStore interface {
	CountMeetingsWithRole(ctx context.Context, roleID string) (int, error)
}
