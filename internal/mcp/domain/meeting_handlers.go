package domain

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/roundtable/internal/roundtable/app"
	"github.com/louisbranch/roundtable/internal/roundtable/meeting"
)

func meetingSummary(m meeting.Meeting) MeetingSummary {
	return MeetingSummary{MeetingID: m.ID, Topic: m.Topic, Status: string(m.Status)}
}

func meetingDetail(m meeting.Meeting) MeetingDetail {
	roles := make([]string, len(m.RoleIDs))
	copy(roles, m.RoleIDs)
	return MeetingDetail{
		MeetingID: m.ID,
		Topic:     m.Topic,
		Roles:     roles,
		Rounds:    m.Rounds,
		Status:    string(m.Status),
	}
}

// MeetingListHandler returns the MCP handler for meeting_list.
func MeetingListHandler(svc *app.Service, logger *log.Logger) mcp.ToolHandlerFor[MeetingListInput, MeetingListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ MeetingListInput) (*mcp.CallToolResult, MeetingListResult, error) {
		meetings, err := svc.ListMeetings(ctx)
		if err != nil {
			return nil, MeetingListResult{}, toolFailure(logger, "meeting_list", err)
		}
		result := MeetingListResult{Meetings: make([]MeetingSummary, 0, len(meetings))}
		for _, m := range meetings {
			result.Meetings = append(result.Meetings, meetingSummary(m))
		}
		return nil, result, nil
	}
}

// MeetingCreateHandler returns the MCP handler for meeting_create.
func MeetingCreateHandler(svc *app.Service, logger *log.Logger) mcp.ToolHandlerFor[MeetingCreateInput, MeetingCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MeetingCreateInput) (*mcp.CallToolResult, MeetingCreateResult, error) {
		created, err := svc.CreateMeeting(ctx, meeting.CreateInput{
			Topic:   input.Topic,
			RoleIDs: input.RoleIDs,
			Rounds:  input.Rounds,
		})
		if err != nil {
			status, terr := failureStatus(logger, "meeting_create", err)
			if terr != nil {
				return nil, MeetingCreateResult{}, terr
			}
			return nil, MeetingCreateResult{Status: status}, nil
		}
		return nil, MeetingCreateResult{Status: statusSuccess, Meeting: meetingDetail(created)}, nil
	}
}

// MeetingGetHandler returns the MCP handler for meeting_get.
func MeetingGetHandler(svc *app.Service, logger *log.Logger) mcp.ToolHandlerFor[MeetingGetInput, MeetingGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MeetingGetInput) (*mcp.CallToolResult, MeetingGetResult, error) {
		m, err := svc.GetMeeting(ctx, input.MeetingID)
		if err != nil {
			return nil, MeetingGetResult{}, toolFailure(logger, "meeting_get", err)
		}
		return nil, MeetingGetResult{Meeting: meetingDetail(m)}, nil
	}
}

// MeetingDeleteHandler returns the MCP handler for meeting_delete.
func MeetingDeleteHandler(svc *app.Service, logger *log.Logger) mcp.ToolHandlerFor[MeetingDeleteInput, MeetingDeleteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MeetingDeleteInput) (*mcp.CallToolResult, MeetingDeleteResult, error) {
		if err := svc.DeleteMeeting(ctx, input.MeetingID); err != nil {
			status, terr := failureStatus(logger, "meeting_delete", err)
			if terr != nil {
				return nil, MeetingDeleteResult{}, terr
			}
			return nil, MeetingDeleteResult{Status: status}, nil
		}
		return nil, MeetingDeleteResult{Status: statusSuccess}, nil
	}
}

// MeetingTopicUpdateHandler returns the MCP handler for meeting_topic_update.
func MeetingTopicUpdateHandler(svc *app.Service, logger *log.Logger) mcp.ToolHandlerFor[MeetingTopicUpdateInput, MeetingTopicUpdateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MeetingTopicUpdateInput) (*mcp.CallToolResult, MeetingTopicUpdateResult, error) {
		if _, err := svc.UpdateTopic(ctx, input.MeetingID, input.Topic); err != nil {
			status, terr := failureStatus(logger, "meeting_topic_update", err)
			if terr != nil {
				return nil, MeetingTopicUpdateResult{}, terr
			}
			return nil, MeetingTopicUpdateResult{Status: status}, nil
		}
		return nil, MeetingTopicUpdateResult{Status: statusSuccess}, nil
	}
}

// MeetingRoundsUpdateHandler returns the MCP handler for meeting_rounds_update.
func MeetingRoundsUpdateHandler(svc *app.Service, logger *log.Logger) mcp.ToolHandlerFor[MeetingRoundsUpdateInput, MeetingRoundsUpdateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MeetingRoundsUpdateInput) (*mcp.CallToolResult, MeetingRoundsUpdateResult, error) {
		if _, err := svc.UpdateRounds(ctx, input.MeetingID, input.Rounds); err != nil {
			status, terr := failureStatus(logger, "meeting_rounds_update", err)
			if terr != nil {
				return nil, MeetingRoundsUpdateResult{}, terr
			}
			return nil, MeetingRoundsUpdateResult{Status: status}, nil
		}
		return nil, MeetingRoundsUpdateResult{Status: statusSuccess}, nil
	}
}

// MeetingParticipantAddHandler returns the MCP handler for meeting_participant_add.
func MeetingParticipantAddHandler(svc *app.Service, logger *log.Logger) mcp.ToolHandlerFor[MeetingParticipantAddInput, MeetingParticipantAddResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MeetingParticipantAddInput) (*mcp.CallToolResult, MeetingParticipantAddResult, error) {
		if _, err := svc.AddParticipant(ctx, input.MeetingID, input.RoleID); err != nil {
			status, terr := failureStatus(logger, "meeting_participant_add", err)
			if terr != nil {
				return nil, MeetingParticipantAddResult{}, terr
			}
			return nil, MeetingParticipantAddResult{Status: status}, nil
		}
		return nil, MeetingParticipantAddResult{Status: statusSuccess}, nil
	}
}

// MeetingParticipantRemoveHandler returns the MCP handler for meeting_participant_remove.
func MeetingParticipantRemoveHandler(svc *app.Service, logger *log.Logger) mcp.ToolHandlerFor[MeetingParticipantRemoveInput, MeetingParticipantRemoveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MeetingParticipantRemoveInput) (*mcp.CallToolResult, MeetingParticipantRemoveResult, error) {
		if _, err := svc.RemoveParticipant(ctx, input.MeetingID, input.RoleID); err != nil {
			status, terr := failureStatus(logger, "meeting_participant_remove", err)
			if terr != nil {
				return nil, MeetingParticipantRemoveResult{}, terr
			}
			return nil, MeetingParticipantRemoveResult{Status: status}, nil
		}
		return nil, MeetingParticipantRemoveResult{Status: statusSuccess}, nil
	}
}

// MeetingStatusGetHandler returns the MCP handler for meeting_status_get.
func MeetingStatusGetHandler(svc *app.Service, logger *log.Logger) mcp.ToolHandlerFor[MeetingStatusGetInput, MeetingStatusGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MeetingStatusGetInput) (*mcp.CallToolResult, MeetingStatusGetResult, error) {
		view, err := svc.MeetingStatus(ctx, input.MeetingID)
		if err != nil {
			return nil, MeetingStatusGetResult{}, toolFailure(logger, "meeting_status_get", err)
		}
		return nil, MeetingStatusGetResult{
			MeetingID:  view.MeetingID,
			Topic:      view.Topic,
			Status:     string(view.Status),
			Consensus:  view.Consensus,
			Conclusion: view.Conclusion,
		}, nil
	}
}

// MeetingMinutesGetHandler returns the MCP handler for meeting_minutes_get.
func MeetingMinutesGetHandler(svc *app.Service, logger *log.Logger) mcp.ToolHandlerFor[MeetingMinutesGetInput, MeetingMinutesGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MeetingMinutesGetInput) (*mcp.CallToolResult, MeetingMinutesGetResult, error) {
		minutes, err := svc.MeetingMinutes(ctx, input.MeetingID)
		if err != nil {
			return nil, MeetingMinutesGetResult{}, toolFailure(logger, "meeting_minutes_get", err)
		}
		return nil, MeetingMinutesGetResult{MeetingID: input.MeetingID, Minutes: minutes}, nil
	}
}

// MeetingStartHandler returns the MCP handler for meeting_start. The
// start outcome is reported verbatim; a generator failure degrades to a
// failure indicator and leaves the meeting pending for a later retry.
func MeetingStartHandler(svc *app.Service, logger *log.Logger) mcp.ToolHandlerFor[MeetingStartInput, MeetingStartResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MeetingStartInput) (*mcp.CallToolResult, MeetingStartResult, error) {
		outcome, err := svc.Start(ctx, input.MeetingID)
		if err != nil {
			status, terr := failureStatus(logger, "meeting_start", err)
			if terr != nil {
				return nil, MeetingStartResult{}, terr
			}
			return nil, MeetingStartResult{Outcome: status}, nil
		}
		return nil, MeetingStartResult{Outcome: string(outcome)}, nil
	}
}

// MeetingContinueHandler returns the MCP handler for meeting_continue.
func MeetingContinueHandler(svc *app.Service, logger *log.Logger) mcp.ToolHandlerFor[MeetingContinueInput, MeetingContinueResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MeetingContinueInput) (*mcp.CallToolResult, MeetingContinueResult, error) {
		extra := input.ExtraRounds
		if extra == 0 {
			extra = 1
		}
		outcome, err := svc.Continue(ctx, input.MeetingID, extra)
		if err != nil {
			status, terr := failureStatus(logger, "meeting_continue", err)
			if terr != nil {
				return nil, MeetingContinueResult{}, terr
			}
			return nil, MeetingContinueResult{Outcome: status}, nil
		}
		return nil, MeetingContinueResult{Outcome: string(outcome)}, nil
	}
}

// MeetingFollowupHandler returns the MCP handler for meeting_followup.
func MeetingFollowupHandler(svc *app.Service, logger *log.Logger) mcp.ToolHandlerFor[MeetingFollowupInput, MeetingFollowupResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MeetingFollowupInput) (*mcp.CallToolResult, MeetingFollowupResult, error) {
		created, err := svc.Followup(ctx, input.MeetingID, input.Topic)
		if err != nil {
			status, terr := failureStatus(logger, "meeting_followup", err)
			if terr != nil {
				return nil, MeetingFollowupResult{}, terr
			}
			return nil, MeetingFollowupResult{Status: status}, nil
		}
		return nil, MeetingFollowupResult{Status: statusSuccess, Meeting: meetingDetail(created)}, nil
	}
}
