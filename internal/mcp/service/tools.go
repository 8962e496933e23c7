package service

import (
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/roundtable/internal/mcp/domain"
	"github.com/louisbranch/roundtable/internal/roundtable/app"
)

func registerRoleTools(mcpServer *mcp.Server, svc *app.Service, logger *log.Logger) {
	mcp.AddTool(mcpServer, domain.RoleListTool(), domain.RoleListHandler(svc, logger))
	mcp.AddTool(mcpServer, domain.RoleCreateTool(), domain.RoleCreateHandler(svc, logger))
	mcp.AddTool(mcpServer, domain.RoleDeleteTool(), domain.RoleDeleteHandler(svc, logger))
	mcp.AddTool(mcpServer, domain.RoleIdentityGetTool(), domain.RoleIdentityGetHandler(svc, logger))
}

func registerMeetingTools(mcpServer *mcp.Server, svc *app.Service, logger *log.Logger) {
	mcp.AddTool(mcpServer, domain.MeetingListTool(), domain.MeetingListHandler(svc, logger))
	mcp.AddTool(mcpServer, domain.MeetingCreateTool(), domain.MeetingCreateHandler(svc, logger))
	mcp.AddTool(mcpServer, domain.MeetingGetTool(), domain.MeetingGetHandler(svc, logger))
	mcp.AddTool(mcpServer, domain.MeetingDeleteTool(), domain.MeetingDeleteHandler(svc, logger))
	mcp.AddTool(mcpServer, domain.MeetingTopicUpdateTool(), domain.MeetingTopicUpdateHandler(svc, logger))
	mcp.AddTool(mcpServer, domain.MeetingRoundsUpdateTool(), domain.MeetingRoundsUpdateHandler(svc, logger))
	mcp.AddTool(mcpServer, domain.MeetingParticipantAddTool(), domain.MeetingParticipantAddHandler(svc, logger))
	mcp.AddTool(mcpServer, domain.MeetingParticipantRemoveTool(), domain.MeetingParticipantRemoveHandler(svc, logger))
	mcp.AddTool(mcpServer, domain.MeetingStatusGetTool(), domain.MeetingStatusGetHandler(svc, logger))
	mcp.AddTool(mcpServer, domain.MeetingMinutesGetTool(), domain.MeetingMinutesGetHandler(svc, logger))
	mcp.AddTool(mcpServer, domain.MeetingStartTool(), domain.MeetingStartHandler(svc, logger))
	mcp.AddTool(mcpServer, domain.MeetingContinueTool(), domain.MeetingContinueHandler(svc, logger))
	mcp.AddTool(mcpServer, domain.MeetingFollowupTool(), domain.MeetingFollowupHandler(svc, logger))
}
