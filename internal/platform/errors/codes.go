// Package errors provides structured error handling for roundtable services.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Role errors
	CodeRoleNameEmpty     Code = "ROLE_NAME_EMPTY"
	CodeRoleNameTaken     Code = "ROLE_NAME_TAKEN"
	CodeRoleInMeeting     Code = "ROLE_IN_MEETING"
	CodeRoleNotFound      Code = "ROLE_NOT_FOUND"
	CodeRoleIdentityEmpty Code = "ROLE_IDENTITY_EMPTY"

	// Meeting errors
	CodeMeetingTopicEmpty          Code = "MEETING_TOPIC_EMPTY"
	CodeMeetingParticipantsEmpty   Code = "MEETING_PARTICIPANTS_EMPTY"
	CodeMeetingParticipantDup      Code = "MEETING_PARTICIPANT_DUPLICATE"
	CodeMeetingParticipantMissing  Code = "MEETING_PARTICIPANT_MISSING"
	CodeMeetingLastParticipant     Code = "MEETING_LAST_PARTICIPANT"
	CodeMeetingRoundsInvalid       Code = "MEETING_ROUNDS_INVALID"
	CodeMeetingNotFound            Code = "MEETING_NOT_FOUND"
	CodeMeetingStatusDisallowsOp   Code = "MEETING_STATUS_DISALLOWS_OPERATION"
	CodeMeetingAlreadyRunning      Code = "MEETING_ALREADY_RUNNING"
	CodeMeetingAlreadyCompleted    Code = "MEETING_ALREADY_COMPLETED"
	CodeMeetingNotCompleted        Code = "MEETING_NOT_COMPLETED"
	CodeMeetingInvalidStatusChange Code = "MEETING_INVALID_STATUS_TRANSITION"

	// Generator errors
	CodeGeneratorExhausted Code = "GENERATOR_RETRIES_EXHAUSTED"
	CodeGeneratorEmpty     Code = "GENERATOR_EMPTY_OUTPUT"

	// Storage errors
	CodeStorageWrite Code = "STORAGE_WRITE_FAILED"
	CodeStorageRead  Code = "STORAGE_READ_FAILED"
)

// Kind groups codes into the failure classes callers branch on.
type Kind int

const (
	// KindUnknown is an unclassified failure.
	KindUnknown Kind = iota
	// KindValidation is malformed or missing input; nothing was mutated.
	KindValidation
	// KindNotFound is an unknown role or meeting id; nothing was mutated.
	KindNotFound
	// KindConflict is an operation disallowed by the current meeting status.
	// Conflicts are reportable outcomes, not fatal failures.
	KindConflict
	// KindGenerator is a generation capability failure after retries.
	KindGenerator
	// KindPersistence is a store failure; the prior state is intact.
	KindPersistence
)

// ErrorKind maps domain codes to failure kinds.
func (c Code) ErrorKind() Kind {
	switch c {
	case CodeRoleNameEmpty,
		CodeRoleNameTaken,
		CodeRoleIdentityEmpty,
		CodeMeetingTopicEmpty,
		CodeMeetingParticipantsEmpty,
		CodeMeetingParticipantDup,
		CodeMeetingParticipantMissing,
		CodeMeetingLastParticipant,
		CodeMeetingRoundsInvalid:
		return KindValidation

	case CodeRoleNotFound,
		CodeMeetingNotFound:
		return KindNotFound

	case CodeRoleInMeeting,
		CodeMeetingStatusDisallowsOp,
		CodeMeetingAlreadyRunning,
		CodeMeetingAlreadyCompleted,
		CodeMeetingNotCompleted,
		CodeMeetingInvalidStatusChange:
		return KindConflict

	case CodeGeneratorExhausted,
		CodeGeneratorEmpty:
		return KindGenerator

	case CodeStorageWrite,
		CodeStorageRead:
		return KindPersistence

	default:
		return KindUnknown
	}
}
