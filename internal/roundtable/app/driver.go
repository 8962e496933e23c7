package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/roundtable/internal/platform/errors"
	"github.com/louisbranch/roundtable/internal/roundtable/generator"
	"github.com/louisbranch/roundtable/internal/roundtable/meeting"
	"github.com/louisbranch/roundtable/internal/roundtable/minutes"
	"github.com/louisbranch/roundtable/internal/roundtable/role"
	"github.com/louisbranch/roundtable/internal/roundtable/storage"
)

// StartOutcome is the reportable result of a start or continuation request.
type StartOutcome string

const (
	// StartCompleted means the discussion ran and the meeting completed.
	StartCompleted StartOutcome = "completed"
	// StartNotFound means no meeting exists under the given id.
	StartNotFound StartOutcome = "meeting not found"
	// StartUseContinuation means the meeting already completed; extend it
	// with a continuation request instead.
	StartUseContinuation StartOutcome = "already completed, use continuation"
	// StartAlreadyRunning means another run holds the meeting's lock.
	StartAlreadyRunning StartOutcome = "already running"
)

// Start runs the discussion for a pending meeting to completion. The
// outcome is reportable: conflicts come back as outcomes with a nil error
// and zero side effects; only generator and store failures return errors.
func (s *Service) Start(ctx context.Context, meetingID string) (StartOutcome, error) {
	m, err := s.GetMeeting(ctx, meetingID)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return StartNotFound, nil
		}
		return "", err
	}

	switch m.Status {
	case meeting.StatusRunning:
		return StartAlreadyRunning, nil
	case meeting.StatusCompleted:
		return StartUseContinuation, nil
	}

	if !s.guard.TryAcquire(m.ID) {
		return StartAlreadyRunning, nil
	}
	defer s.guard.Release(m.ID)

	if err := s.meetings.CompareAndSetStatus(ctx, m.ID, string(meeting.StatusPending), string(meeting.StatusRunning), s.now().UTC()); err != nil {
		switch {
		case errors.Is(err, storage.ErrStatusMismatch):
			return StartAlreadyRunning, nil
		case errors.Is(err, storage.ErrNotFound):
			return StartNotFound, nil
		}
		return "", apperrors.Wrap(apperrors.CodeStorageWrite, "transition to running", err)
	}
	m.Status = meeting.StatusRunning

	if err := s.run(ctx, m, true); err != nil {
		s.revertToPending(ctx, m.ID)
		return "", err
	}
	return StartCompleted, nil
}

// Continue re-enters a completed meeting with extraRounds more rounds. The
// transcript is kept and round numbering continues where it left off. A
// consensus recorded by the earlier run is kept unless a later round
// supersedes it.
func (s *Service) Continue(ctx context.Context, meetingID string, extraRounds int) (StartOutcome, error) {
	if extraRounds < 1 {
		return "", apperrors.New(apperrors.CodeMeetingRoundsInvalid, "extra rounds must be at least 1")
	}

	m, err := s.GetMeeting(ctx, meetingID)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return StartNotFound, nil
		}
		return "", err
	}

	switch m.Status {
	case meeting.StatusRunning:
		return StartAlreadyRunning, nil
	case meeting.StatusPending:
		return "", apperrors.WithMetadata(apperrors.CodeMeetingNotCompleted, "continuation requires a completed meeting", map[string]string{"meeting_id": meetingID})
	}

	if !s.guard.TryAcquire(m.ID) {
		return StartAlreadyRunning, nil
	}
	defer s.guard.Release(m.ID)

	if err := s.meetings.CompareAndSetStatus(ctx, m.ID, string(meeting.StatusCompleted), string(meeting.StatusRunning), s.now().UTC()); err != nil {
		switch {
		case errors.Is(err, storage.ErrStatusMismatch):
			return StartAlreadyRunning, nil
		case errors.Is(err, storage.ErrNotFound):
			return StartNotFound, nil
		}
		return "", apperrors.Wrap(apperrors.CodeStorageWrite, "transition to running", err)
	}

	m.Status = meeting.StatusRunning
	m.Rounds += extraRounds
	m.UpdatedAt = s.now().UTC()
	if err := s.meetings.UpdateMeeting(ctx, meetingToRecord(m)); err != nil {
		s.revertToPending(ctx, m.ID)
		return "", apperrors.Wrap(apperrors.CodeStorageWrite, "extend round budget", err)
	}

	if err := s.run(ctx, m, false); err != nil {
		s.revertToPending(ctx, m.ID)
		return "", err
	}
	return StartCompleted, nil
}

// run executes the round-robin loop for a meeting already in running
// status, with the guard held. Participant order is frozen here; later
// structural edits cannot affect an in-flight run. rejudge re-evaluates
// the last complete round before generating more; Start sets it so a run
// that aborted between transcribing a round and recording its verdict
// does not skip that round's consensus check, while Continue leaves it
// unset because its rounds were already judged.
func (s *Service) run(ctx context.Context, m meeting.Meeting, rejudge bool) error {
	tracer := otel.Tracer("roundtable/app")
	ctx, span := tracer.Start(ctx, "meeting.run", trace.WithAttributes(
		attribute.String("meeting.id", m.ID),
		attribute.Int("meeting.rounds", m.Rounds),
		attribute.Int("meeting.participants", len(m.RoleIDs)),
	))
	defer span.End()

	personas, err := s.resolvePersonas(ctx, m.RoleIDs)
	if err != nil {
		return err
	}

	transcript, err := s.Transcript(ctx, m.ID)
	if err != nil {
		return err
	}

	participants := m.RoleIDs
	count := len(participants)
	// A prior aborted run may have left a partially filled round; resume at
	// the next unfilled slot.
	startRound := len(transcript)/count + 1
	slot := len(transcript) % count

	consensusSummary := m.Consensus
	reached := false

	if rejudge && slot == 0 && len(transcript) > 0 {
		lastRound := transcript[len(transcript)-1].Round
		verdict, err := s.detector.Evaluate(ctx, m.Topic, transcript, lastRound)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeGeneratorExhausted, "consensus judge failed", err)
		}
		if verdict.Reached {
			consensusSummary = verdict.Summary
			reached = true
			s.logger.Printf("meeting %s reached consensus after round %d", m.ID, lastRound)
		}
	}

	for round := startRound; !reached && round <= m.Rounds; round++ {
		roundCtx, roundSpan := tracer.Start(ctx, "meeting.round", trace.WithAttributes(
			attribute.Int("meeting.round", round),
		))

		for i := slot; i < count; i++ {
			roleID := participants[i]
			text, err := s.contribute(roundCtx, m, personas, transcript, round, roleID)
			if err != nil {
				roundSpan.End()
				return err
			}

			contribution := meeting.Contribution{
				MeetingID: m.ID,
				Seq:       len(transcript),
				Round:     round,
				RoleID:    roleID,
				Text:      text,
				CreatedAt: s.now().UTC(),
			}
			if err := s.meetings.AppendContribution(roundCtx, contributionToRecord(contribution)); err != nil {
				roundSpan.End()
				return apperrors.Wrap(apperrors.CodeStorageWrite, "append contribution", err)
			}
			transcript = append(transcript, contribution)
		}
		slot = 0

		verdict, err := s.detector.Evaluate(roundCtx, m.Topic, transcript, round)
		roundSpan.End()
		if err != nil {
			return apperrors.Wrap(apperrors.CodeGeneratorExhausted, "consensus judge failed", err)
		}
		if verdict.Reached {
			consensusSummary = verdict.Summary
			s.logger.Printf("meeting %s reached consensus after round %d", m.ID, round)
			break
		}
	}

	m.Consensus = consensusSummary
	conclusion := minutes.Conclude(m, transcript, personaNames(personas))

	if err := s.meetings.CompleteMeeting(ctx, m.ID, string(meeting.StatusCompleted), consensusSummary, conclusion, s.now().UTC()); err != nil {
		return apperrors.Wrap(apperrors.CodeStorageWrite, "commit completed meeting", err)
	}
	return nil
}

func (s *Service) contribute(ctx context.Context, m meeting.Meeting, personas map[string]role.Role, transcript []meeting.Contribution, round int, roleID string) (string, error) {
	persona := personas[roleID]

	ctx, span := otel.Tracer("roundtable/app").Start(ctx, "meeting.contribution", trace.WithAttributes(
		attribute.String("meeting.id", m.ID),
		attribute.Int("meeting.round", round),
		attribute.String("role.id", roleID),
	))
	defer span.End()

	text, err := s.invoker.Invoke(ctx, generator.Request{
		System: contributionSystem(persona),
		Prompt: contributionPrompt(m, personas, transcript, round, persona),
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeGeneratorExhausted, fmt.Sprintf("generate contribution for %s in round %d", roleID, round), err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperrors.New(apperrors.CodeGeneratorEmpty, "generator returned empty contribution")
	}
	return text, nil
}

func contributionSystem(persona role.Role) string {
	var b strings.Builder
	b.WriteString(role.Identity(persona))
	b.WriteString("\nYou are participating in a roundtable meeting. ")
	b.WriteString("Speak in character and give a concise, concrete opinion on the topic.")
	return b.String()
}

func contributionPrompt(m meeting.Meeting, personas map[string]role.Role, transcript []meeting.Contribution, round int, persona role.Role) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", m.Topic)
	if m.Reference != "" {
		fmt.Fprintf(&b, "\nBackground: %s\n", m.Reference)
	}
	if len(transcript) > 0 {
		b.WriteString("\nDiscussion so far:\n")
		for _, c := range transcript {
			speaker := c.RoleID
			if p, ok := personas[c.RoleID]; ok {
				speaker = p.Name
			}
			fmt.Fprintf(&b, "\n[Round %d, %s]\n%s\n", c.Round, speaker, c.Text)
		}
	}
	fmt.Fprintf(&b, "\nIt is round %d and your turn to speak as %s.", round, persona.Name)
	return b.String()
}

func (s *Service) resolvePersonas(ctx context.Context, roleIDs []string) (map[string]role.Role, error) {
	personas := make(map[string]role.Role, len(roleIDs))
	for _, roleID := range roleIDs {
		rec, err := s.roles.GetRole(ctx, roleID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, apperrors.WithMetadata(apperrors.CodeRoleNotFound, "participant role not found", map[string]string{"role_id": roleID})
			}
			return nil, apperrors.Wrap(apperrors.CodeStorageRead, "resolve persona", err)
		}
		personas[roleID] = roleFromRecord(rec)
	}
	return personas, nil
}

func personaNames(personas map[string]role.Role) map[string]string {
	names := make(map[string]string, len(personas))
	for roleID, persona := range personas {
		names[roleID] = persona.Name
	}
	return names
}

// revertToPending puts a failed run back into pending so the meeting never
// stays stuck in running. The partial transcript is kept; a later start
// resumes at the next unfilled slot.
func (s *Service) revertToPending(ctx context.Context, meetingID string) {
	// The run may have failed because ctx was canceled; the revert must
	// still reach the store.
	ctx = context.WithoutCancel(ctx)
	err := s.meetings.CompareAndSetStatus(ctx, meetingID, string(meeting.StatusRunning), string(meeting.StatusPending), s.now().UTC())
	if err != nil {
		s.logger.Printf("revert meeting %s to pending: %v", meetingID, err)
	}
}
