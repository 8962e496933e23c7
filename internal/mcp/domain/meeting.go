package domain

import "github.com/modelcontextprotocol/go-sdk/mcp"

// MeetingSummary represents a meeting list entry.
type MeetingSummary struct {
	MeetingID string `json:"meeting_id" jsonschema:"meeting identifier"`
	Topic     string `json:"topic" jsonschema:"discussion topic"`
	Status    string `json:"status" jsonschema:"pending, running or completed"`
}

// MeetingDetail represents a full meeting view.
type MeetingDetail struct {
	MeetingID string   `json:"meeting_id" jsonschema:"meeting identifier"`
	Topic     string   `json:"topic" jsonschema:"discussion topic"`
	Roles     []string `json:"roles" jsonschema:"participant role ids in speaking order"`
	Rounds    int      `json:"rounds" jsonschema:"round budget"`
	Status    string   `json:"status" jsonschema:"pending, running or completed"`
}

// MeetingListInput represents the MCP tool input for listing meetings.
type MeetingListInput struct{}

// MeetingListResult represents the MCP tool output for listing meetings.
type MeetingListResult struct {
	Meetings []MeetingSummary `json:"meetings" jsonschema:"meetings ordered by creation time, newest first"`
}

// MeetingCreateInput represents the MCP tool input for meeting creation.
type MeetingCreateInput struct {
	Topic   string   `json:"topic" jsonschema:"discussion topic"`
	RoleIDs []string `json:"role_ids" jsonschema:"participant role ids in speaking order"`
	Rounds  int      `json:"rounds,omitempty" jsonschema:"round budget, defaults to 3"`
}

// MeetingCreateResult represents the MCP tool output for meeting creation.
type MeetingCreateResult struct {
	Status  string        `json:"status" jsonschema:"success or failure indicator"`
	Meeting MeetingDetail `json:"meeting,omitempty" jsonschema:"created meeting"`
}

// MeetingGetInput represents the MCP tool input for reading a meeting.
type MeetingGetInput struct {
	MeetingID string `json:"meeting_id" jsonschema:"meeting identifier"`
}

// MeetingGetResult represents the MCP tool output for reading a meeting.
type MeetingGetResult struct {
	Meeting MeetingDetail `json:"meeting" jsonschema:"meeting detail"`
}

// MeetingDeleteInput represents the MCP tool input for meeting deletion.
type MeetingDeleteInput struct {
	MeetingID string `json:"meeting_id" jsonschema:"meeting identifier"`
}

// MeetingDeleteResult represents the MCP tool output for meeting deletion.
type MeetingDeleteResult struct {
	Status string `json:"status" jsonschema:"success or failure indicator"`
}

// MeetingTopicUpdateInput represents the MCP tool input for retargeting a meeting.
type MeetingTopicUpdateInput struct {
	MeetingID string `json:"meeting_id" jsonschema:"meeting identifier"`
	Topic     string `json:"topic" jsonschema:"replacement topic"`
}

// MeetingTopicUpdateResult represents the MCP tool output for retargeting a meeting.
type MeetingTopicUpdateResult struct {
	Status string `json:"status" jsonschema:"success or failure indicator"`
}

// MeetingRoundsUpdateInput represents the MCP tool input for resizing the round budget.
type MeetingRoundsUpdateInput struct {
	MeetingID string `json:"meeting_id" jsonschema:"meeting identifier"`
	Rounds    int    `json:"rounds" jsonschema:"new round budget, at least 1"`
}

// MeetingRoundsUpdateResult represents the MCP tool output for resizing the round budget.
type MeetingRoundsUpdateResult struct {
	Status string `json:"status" jsonschema:"success or failure indicator"`
}

// MeetingParticipantAddInput represents the MCP tool input for adding a participant.
type MeetingParticipantAddInput struct {
	MeetingID string `json:"meeting_id" jsonschema:"meeting identifier"`
	RoleID    string `json:"role_id" jsonschema:"role identifier to append to the speaking order"`
}

// MeetingParticipantAddResult represents the MCP tool output for adding a participant.
type MeetingParticipantAddResult struct {
	Status string `json:"status" jsonschema:"success or failure indicator"`
}

// MeetingParticipantRemoveInput represents the MCP tool input for removing a participant.
type MeetingParticipantRemoveInput struct {
	MeetingID string `json:"meeting_id" jsonschema:"meeting identifier"`
	RoleID    string `json:"role_id" jsonschema:"role identifier to remove"`
}

// MeetingParticipantRemoveResult represents the MCP tool output for removing a participant.
type MeetingParticipantRemoveResult struct {
	Status string `json:"status" jsonschema:"success or failure indicator"`
}

// MeetingStatusGetInput represents the MCP tool input for reading meeting status.
type MeetingStatusGetInput struct {
	MeetingID string `json:"meeting_id" jsonschema:"meeting identifier"`
}

// MeetingStatusGetResult represents the MCP tool output for reading meeting status.
type MeetingStatusGetResult struct {
	MeetingID  string `json:"meeting_id" jsonschema:"meeting identifier"`
	Topic      string `json:"topic" jsonschema:"discussion topic"`
	Status     string `json:"status" jsonschema:"pending, running or completed"`
	Consensus  string `json:"consensus" jsonschema:"consensus summary, empty when none was reached"`
	Conclusion string `json:"conclusion" jsonschema:"closing synthesis, empty until completion"`
}

// MeetingMinutesGetInput represents the MCP tool input for rendering minutes.
type MeetingMinutesGetInput struct {
	MeetingID string `json:"meeting_id" jsonschema:"meeting identifier"`
}

// MeetingMinutesGetResult represents the MCP tool output for rendering minutes.
type MeetingMinutesGetResult struct {
	MeetingID string `json:"meeting_id" jsonschema:"meeting identifier"`
	Minutes   string `json:"minutes" jsonschema:"meeting minutes rendered as markdown"`
}

// MeetingStartInput represents the MCP tool input for running a meeting.
type MeetingStartInput struct {
	MeetingID string `json:"meeting_id" jsonschema:"meeting identifier"`
}

// MeetingStartResult represents the MCP tool output for running a meeting.
type MeetingStartResult struct {
	Outcome string `json:"outcome" jsonschema:"completed, meeting not found, already completed, use continuation, or already running"`
}

// MeetingContinueInput represents the MCP tool input for continuing a completed meeting.
type MeetingContinueInput struct {
	MeetingID   string `json:"meeting_id" jsonschema:"meeting identifier"`
	ExtraRounds int    `json:"extra_rounds,omitempty" jsonschema:"additional rounds to grant, defaults to 1"`
}

// MeetingContinueResult represents the MCP tool output for continuing a completed meeting.
type MeetingContinueResult struct {
	Outcome string `json:"outcome" jsonschema:"completed, meeting not found, or already running"`
}

// MeetingFollowupInput represents the MCP tool input for scheduling a follow-up.
type MeetingFollowupInput struct {
	MeetingID string `json:"meeting_id" jsonschema:"completed source meeting identifier"`
	Topic     string `json:"topic" jsonschema:"topic of the follow-up meeting"`
}

// MeetingFollowupResult represents the MCP tool output for scheduling a follow-up.
type MeetingFollowupResult struct {
	Status  string        `json:"status" jsonschema:"success or failure indicator"`
	Meeting MeetingDetail `json:"meeting,omitempty" jsonschema:"created follow-up meeting"`
}

// MeetingListTool describes the meeting_list tool.
func MeetingListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "meeting_list",
		Description: "Lists all meetings with their topics and statuses.",
	}
}

// MeetingCreateTool describes the meeting_create tool.
func MeetingCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "meeting_create",
		Description: "Creates a pending meeting over a topic with an ordered participant list and a round budget.",
	}
}

// MeetingGetTool describes the meeting_get tool.
func MeetingGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "meeting_get",
		Description: "Returns the full detail of a meeting.",
	}
}

// MeetingDeleteTool describes the meeting_delete tool.
func MeetingDeleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "meeting_delete",
		Description: "Deletes a meeting and its transcript. Fails while the meeting is running.",
	}
}

// MeetingTopicUpdateTool describes the meeting_topic_update tool.
func MeetingTopicUpdateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "meeting_topic_update",
		Description: "Replaces the topic of a pending meeting.",
	}
}

// MeetingRoundsUpdateTool describes the meeting_rounds_update tool.
func MeetingRoundsUpdateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "meeting_rounds_update",
		Description: "Resizes the round budget of a pending meeting.",
	}
}

// MeetingParticipantAddTool describes the meeting_participant_add tool.
func MeetingParticipantAddTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "meeting_participant_add",
		Description: "Appends a role to the speaking order of a pending meeting.",
	}
}

// MeetingParticipantRemoveTool describes the meeting_participant_remove tool.
func MeetingParticipantRemoveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "meeting_participant_remove",
		Description: "Removes a role from a pending meeting. The last participant cannot be removed.",
	}
}

// MeetingStatusGetTool describes the meeting_status_get tool.
func MeetingStatusGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "meeting_status_get",
		Description: "Returns the status, consensus and conclusion of a meeting.",
	}
}

// MeetingMinutesGetTool describes the meeting_minutes_get tool.
func MeetingMinutesGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "meeting_minutes_get",
		Description: "Renders the minutes of a meeting as markdown from its stored transcript.",
	}
}

// MeetingStartTool describes the meeting_start tool.
func MeetingStartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "meeting_start",
		Description: "Runs a pending meeting to completion: participants contribute in order until consensus or round exhaustion.",
	}
}

// MeetingContinueTool describes the meeting_continue tool.
func MeetingContinueTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "meeting_continue",
		Description: "Grants a completed meeting additional rounds and resumes the discussion on the same transcript.",
	}
}

// MeetingFollowupTool describes the meeting_followup tool.
func MeetingFollowupTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "meeting_followup",
		Description: "Creates a pending follow-up meeting that inherits the participants of a completed meeting and carries its conclusion as background.",
	}
}
