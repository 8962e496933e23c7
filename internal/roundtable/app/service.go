// Package app orchestrates meetings: it owns the service operations, the
// per-meeting concurrency guard, and the round-robin discussion driver.
package app

import (
	"context"
	"errors"
	"log"
	"time"

	apperrors "github.com/louisbranch/roundtable/internal/platform/errors"
	"github.com/louisbranch/roundtable/internal/platform/id"
	"github.com/louisbranch/roundtable/internal/roundtable/consensus"
	"github.com/louisbranch/roundtable/internal/roundtable/generator"
	"github.com/louisbranch/roundtable/internal/roundtable/meeting"
	"github.com/louisbranch/roundtable/internal/roundtable/minutes"
	"github.com/louisbranch/roundtable/internal/roundtable/role"
	"github.com/louisbranch/roundtable/internal/roundtable/storage"
)

// Config wires the service's collaborators.
type Config struct {
	Roles    storage.RoleStore
	Meetings storage.MeetingStore
	// Usage is optional; when present, deleting a role still referenced by
	// a meeting is rejected.
	Usage    storage.RoleUsageStore
	Invoker  generator.Invoker
	Detector consensus.Detector
	Logger   *log.Logger

	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() (string, error)
}

// Service implements the meeting orchestration operations.
type Service struct {
	roles    storage.RoleStore
	meetings storage.MeetingStore
	usage    storage.RoleUsageStore
	invoker  generator.Invoker
	detector consensus.Detector
	guard    *Guard
	logger   *log.Logger
	now      func() time.Time
	newID    func() (string, error)
}

// NewService builds a Service from its collaborators.
func NewService(cfg Config) *Service {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = id.NewID
	}
	return &Service{
		roles:    cfg.Roles,
		meetings: cfg.Meetings,
		usage:    cfg.Usage,
		invoker:  cfg.Invoker,
		detector: cfg.Detector,
		guard:    NewGuard(),
		logger:   cfg.Logger,
		now:      cfg.Now,
		newID:    cfg.NewID,
	}
}

// CreateRole validates and persists a new role.
func (s *Service) CreateRole(ctx context.Context, input role.CreateInput) (role.Role, error) {
	created, err := role.Create(input, s.now, s.newID)
	if err != nil {
		if errors.Is(err, role.ErrEmptyName) {
			return role.Role{}, apperrors.New(apperrors.CodeRoleNameEmpty, "role name is required")
		}
		return role.Role{}, apperrors.Wrap(apperrors.CodeUnknown, "create role", err)
	}

	if err := s.roles.PutRole(ctx, roleToRecord(created)); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return role.Role{}, apperrors.WithMetadata(apperrors.CodeRoleNameTaken, "role name is already taken", map[string]string{"name": created.Name})
		}
		return role.Role{}, apperrors.Wrap(apperrors.CodeStorageWrite, "persist role", err)
	}
	return created, nil
}

// GetRole fetches one role by id.
func (s *Service) GetRole(ctx context.Context, roleID string) (role.Role, error) {
	rec, err := s.roles.GetRole(ctx, roleID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return role.Role{}, apperrors.WithMetadata(apperrors.CodeRoleNotFound, "role not found", map[string]string{"role_id": roleID})
		}
		return role.Role{}, apperrors.Wrap(apperrors.CodeStorageRead, "get role", err)
	}
	return roleFromRecord(rec), nil
}

// ListRoles returns all roles ordered by name.
func (s *Service) ListRoles(ctx context.Context) ([]role.Role, error) {
	recs, err := s.roles.ListRoles(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageRead, "list roles", err)
	}
	roles := make([]role.Role, 0, len(recs))
	for _, rec := range recs {
		roles = append(roles, roleFromRecord(rec))
	}
	return roles, nil
}

// DeleteRole removes a role. A role still referenced by a meeting is kept.
func (s *Service) DeleteRole(ctx context.Context, roleID string) error {
	if s.usage != nil {
		count, err := s.usage.CountMeetingsWithRole(ctx, roleID)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeStorageRead, "check role usage", err)
		}
		if count > 0 {
			return apperrors.WithMetadata(apperrors.CodeRoleInMeeting, "role is a participant in a meeting", map[string]string{"role_id": roleID})
		}
	}

	if err := s.roles.DeleteRole(ctx, roleID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.WithMetadata(apperrors.CodeRoleNotFound, "role not found", map[string]string{"role_id": roleID})
		}
		return apperrors.Wrap(apperrors.CodeStorageWrite, "delete role", err)
	}
	return nil
}

// RoleIdentity renders the identity document for one role.
func (s *Service) RoleIdentity(ctx context.Context, roleID string) (string, error) {
	r, err := s.GetRole(ctx, roleID)
	if err != nil {
		return "", err
	}
	return role.Identity(r), nil
}

// CreateMeeting validates input, resolves every participant against the
// role store, and persists a new pending meeting.
func (s *Service) CreateMeeting(ctx context.Context, input meeting.CreateInput) (meeting.Meeting, error) {
	created, err := meeting.Create(input, s.now, s.newID)
	if err != nil {
		return meeting.Meeting{}, mapMeetingDomainErr(err)
	}

	for _, roleID := range created.RoleIDs {
		if _, err := s.roles.GetRole(ctx, roleID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return meeting.Meeting{}, apperrors.WithMetadata(apperrors.CodeRoleNotFound, "participant role not found", map[string]string{"role_id": roleID})
			}
			return meeting.Meeting{}, apperrors.Wrap(apperrors.CodeStorageRead, "resolve participant", err)
		}
	}

	if err := s.meetings.PutMeeting(ctx, meetingToRecord(created)); err != nil {
		return meeting.Meeting{}, apperrors.Wrap(apperrors.CodeStorageWrite, "persist meeting", err)
	}
	return created, nil
}

// GetMeeting fetches one meeting by id.
func (s *Service) GetMeeting(ctx context.Context, meetingID string) (meeting.Meeting, error) {
	rec, err := s.meetings.GetMeeting(ctx, meetingID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return meeting.Meeting{}, apperrors.WithMetadata(apperrors.CodeMeetingNotFound, "meeting not found", map[string]string{"meeting_id": meetingID})
		}
		return meeting.Meeting{}, apperrors.Wrap(apperrors.CodeStorageRead, "get meeting", err)
	}
	m, err := meetingFromRecord(rec)
	if err != nil {
		return meeting.Meeting{}, apperrors.Wrap(apperrors.CodeStorageRead, "decode meeting", err)
	}
	return m, nil
}

// ListMeetings returns all meetings, newest first.
func (s *Service) ListMeetings(ctx context.Context) ([]meeting.Meeting, error) {
	recs, err := s.meetings.ListMeetings(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageRead, "list meetings", err)
	}
	meetings := make([]meeting.Meeting, 0, len(recs))
	for _, rec := range recs {
		m, err := meetingFromRecord(rec)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeStorageRead, "decode meeting", err)
		}
		meetings = append(meetings, m)
	}
	return meetings, nil
}

// Transcript returns the append-ordered transcript of one meeting.
func (s *Service) Transcript(ctx context.Context, meetingID string) ([]meeting.Contribution, error) {
	if _, err := s.GetMeeting(ctx, meetingID); err != nil {
		return nil, err
	}
	recs, err := s.meetings.ListContributions(ctx, meetingID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageRead, "list contributions", err)
	}
	transcript := make([]meeting.Contribution, 0, len(recs))
	for _, rec := range recs {
		transcript = append(transcript, contributionFromRecord(rec))
	}
	return transcript, nil
}

// UpdateTopic replaces the topic of a pending meeting.
func (s *Service) UpdateTopic(ctx context.Context, meetingID, topic string) (meeting.Meeting, error) {
	return s.mutate(ctx, meetingID, func(m meeting.Meeting) (meeting.Meeting, error) {
		return meeting.UpdateTopic(m, topic)
	})
}

// UpdateRounds replaces the round budget of a pending meeting.
func (s *Service) UpdateRounds(ctx context.Context, meetingID string, rounds int) (meeting.Meeting, error) {
	return s.mutate(ctx, meetingID, func(m meeting.Meeting) (meeting.Meeting, error) {
		return meeting.UpdateRounds(m, rounds)
	})
}

// AddParticipant appends a role to the speaking order of a pending meeting.
func (s *Service) AddParticipant(ctx context.Context, meetingID, roleID string) (meeting.Meeting, error) {
	if _, err := s.GetRole(ctx, roleID); err != nil {
		return meeting.Meeting{}, err
	}
	return s.mutate(ctx, meetingID, func(m meeting.Meeting) (meeting.Meeting, error) {
		return meeting.AddParticipant(m, roleID)
	})
}

// RemoveParticipant removes a role from the speaking order of a pending
// meeting, never past the last participant.
func (s *Service) RemoveParticipant(ctx context.Context, meetingID, roleID string) (meeting.Meeting, error) {
	return s.mutate(ctx, meetingID, func(m meeting.Meeting) (meeting.Meeting, error) {
		return meeting.RemoveParticipant(m, roleID)
	})
}

// DeleteMeeting removes a meeting and its transcript. Running meetings
// cannot be deleted.
func (s *Service) DeleteMeeting(ctx context.Context, meetingID string) error {
	m, err := s.GetMeeting(ctx, meetingID)
	if err != nil {
		return err
	}
	if m.Status == meeting.StatusRunning {
		return apperrors.WithMetadata(apperrors.CodeMeetingAlreadyRunning, "meeting is running", map[string]string{"meeting_id": meetingID})
	}

	if err := s.meetings.DeleteMeeting(ctx, meetingID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.WithMetadata(apperrors.CodeMeetingNotFound, "meeting not found", map[string]string{"meeting_id": meetingID})
		}
		return apperrors.Wrap(apperrors.CodeStorageWrite, "delete meeting", err)
	}
	return nil
}

// StatusView is the read model for a meeting's outcome.
type StatusView struct {
	MeetingID  string
	Topic      string
	Status     meeting.Status
	Consensus  string
	Conclusion string
}

// MeetingStatus returns the outcome view of one meeting.
func (s *Service) MeetingStatus(ctx context.Context, meetingID string) (StatusView, error) {
	m, err := s.GetMeeting(ctx, meetingID)
	if err != nil {
		return StatusView{}, err
	}
	return StatusView{
		MeetingID:  m.ID,
		Topic:      m.Topic,
		Status:     m.Status,
		Consensus:  m.Consensus,
		Conclusion: m.Conclusion,
	}, nil
}

// MeetingMinutes renders the minutes document for one meeting. Works on any
// status; an in-progress meeting yields a partial view.
func (s *Service) MeetingMinutes(ctx context.Context, meetingID string) (string, error) {
	rec, transcriptRecs, err := s.meetings.MeetingSnapshot(ctx, meetingID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", apperrors.WithMetadata(apperrors.CodeMeetingNotFound, "meeting not found", map[string]string{"meeting_id": meetingID})
		}
		return "", apperrors.Wrap(apperrors.CodeStorageRead, "snapshot meeting", err)
	}
	m, err := meetingFromRecord(rec)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeStorageRead, "decode meeting", err)
	}
	transcript := make([]meeting.Contribution, 0, len(transcriptRecs))
	for _, entry := range transcriptRecs {
		transcript = append(transcript, contributionFromRecord(entry))
	}
	names, err := s.roleNames(ctx, m.RoleIDs)
	if err != nil {
		return "", err
	}
	return minutes.Render(m, transcript, names), nil
}

// Followup creates a new pending meeting on a fresh topic with the same
// participants and round budget as a completed source meeting. The source
// topic and conclusion travel along as reference material for the prompts.
func (s *Service) Followup(ctx context.Context, meetingID, topic string) (meeting.Meeting, error) {
	source, err := s.GetMeeting(ctx, meetingID)
	if err != nil {
		return meeting.Meeting{}, err
	}
	if source.Status != meeting.StatusCompleted {
		return meeting.Meeting{}, apperrors.WithMetadata(apperrors.CodeMeetingNotCompleted, "follow-up requires a completed meeting", map[string]string{"meeting_id": meetingID})
	}

	created, err := meeting.Create(meeting.CreateInput{
		Topic:   topic,
		RoleIDs: source.RoleIDs,
		Rounds:  source.Rounds,
	}, s.now, s.newID)
	if err != nil {
		return meeting.Meeting{}, mapMeetingDomainErr(err)
	}
	created.Reference = followupReference(source)

	if err := s.meetings.PutMeeting(ctx, meetingToRecord(created)); err != nil {
		return meeting.Meeting{}, apperrors.Wrap(apperrors.CodeStorageWrite, "persist follow-up meeting", err)
	}
	return created, nil
}

func (s *Service) mutate(ctx context.Context, meetingID string, change func(meeting.Meeting) (meeting.Meeting, error)) (meeting.Meeting, error) {
	m, err := s.GetMeeting(ctx, meetingID)
	if err != nil {
		return meeting.Meeting{}, err
	}

	updated, err := change(m)
	if err != nil {
		return meeting.Meeting{}, mapMeetingDomainErr(err)
	}
	updated.UpdatedAt = s.now().UTC()

	if err := s.meetings.UpdateMeeting(ctx, meetingToRecord(updated)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return meeting.Meeting{}, apperrors.WithMetadata(apperrors.CodeMeetingNotFound, "meeting not found", map[string]string{"meeting_id": meetingID})
		}
		return meeting.Meeting{}, apperrors.Wrap(apperrors.CodeStorageWrite, "update meeting", err)
	}
	return updated, nil
}

func (s *Service) roleNames(ctx context.Context, roleIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(roleIDs))
	for _, roleID := range roleIDs {
		rec, err := s.roles.GetRole(ctx, roleID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// A deleted role renders as its id.
				continue
			}
			return nil, apperrors.Wrap(apperrors.CodeStorageRead, "resolve role name", err)
		}
		names[roleID] = rec.Name
	}
	return names, nil
}

func followupReference(source meeting.Meeting) string {
	ref := "This meeting follows up on a previous discussion of " + quote(source.Topic) + "."
	if source.Conclusion != "" {
		ref += " Previous conclusion: " + source.Conclusion
	}
	if source.Consensus != "" {
		ref += " Previous consensus: " + source.Consensus
	}
	return ref
}

func quote(value string) string {
	return "\"" + value + "\""
}

func mapMeetingDomainErr(err error) error {
	switch {
	case errors.Is(err, meeting.ErrEmptyTopic):
		return apperrors.New(apperrors.CodeMeetingTopicEmpty, "meeting topic is required")
	case errors.Is(err, meeting.ErrNoParticipants):
		return apperrors.New(apperrors.CodeMeetingParticipantsEmpty, "at least one participant is required")
	case errors.Is(err, meeting.ErrDuplicateParticipant):
		return apperrors.New(apperrors.CodeMeetingParticipantDup, "participant ids must be unique")
	case errors.Is(err, meeting.ErrParticipantPresent):
		return apperrors.New(apperrors.CodeMeetingParticipantDup, "participant already added")
	case errors.Is(err, meeting.ErrParticipantMissing):
		return apperrors.New(apperrors.CodeMeetingParticipantMissing, "participant not on meeting")
	case errors.Is(err, meeting.ErrLastParticipant):
		return apperrors.New(apperrors.CodeMeetingLastParticipant, "cannot remove the last participant")
	case errors.Is(err, meeting.ErrInvalidRounds):
		return apperrors.New(apperrors.CodeMeetingRoundsInvalid, "rounds must be at least 1")
	case errors.Is(err, meeting.ErrNotPending):
		return apperrors.New(apperrors.CodeMeetingStatusDisallowsOp, "meeting status disallows this operation")
	default:
		return apperrors.Wrap(apperrors.CodeUnknown, "meeting operation", err)
	}
}
