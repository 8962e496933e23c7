package domain

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/roundtable/internal/roundtable/app"
	"github.com/louisbranch/roundtable/internal/roundtable/role"
)

func roleSummary(r role.Role) RoleSummary {
	return RoleSummary{ID: r.ID, Name: r.Name, Description: r.Description}
}

// RoleListHandler returns the MCP handler for role_list.
func RoleListHandler(svc *app.Service, logger *log.Logger) mcp.ToolHandlerFor[RoleListInput, RoleListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ RoleListInput) (*mcp.CallToolResult, RoleListResult, error) {
		roles, err := svc.ListRoles(ctx)
		if err != nil {
			return nil, RoleListResult{}, toolFailure(logger, "role_list", err)
		}
		result := RoleListResult{Roles: make([]RoleSummary, 0, len(roles))}
		for _, r := range roles {
			result.Roles = append(result.Roles, roleSummary(r))
		}
		return nil, result, nil
	}
}

// RoleCreateHandler returns the MCP handler for role_create.
func RoleCreateHandler(svc *app.Service, logger *log.Logger) mcp.ToolHandlerFor[RoleCreateInput, RoleCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RoleCreateInput) (*mcp.CallToolResult, RoleCreateResult, error) {
		created, err := svc.CreateRole(ctx, role.CreateInput{
			Name:        input.Name,
			Description: input.Description,
			Notes:       input.Notes,
		})
		if err != nil {
			status, terr := failureStatus(logger, "role_create", err)
			if terr != nil {
				return nil, RoleCreateResult{}, terr
			}
			return nil, RoleCreateResult{Status: status}, nil
		}
		return nil, RoleCreateResult{Status: statusSuccess, Role: roleSummary(created)}, nil
	}
}

// RoleDeleteHandler returns the MCP handler for role_delete.
func RoleDeleteHandler(svc *app.Service, logger *log.Logger) mcp.ToolHandlerFor[RoleDeleteInput, RoleDeleteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RoleDeleteInput) (*mcp.CallToolResult, RoleDeleteResult, error) {
		if err := svc.DeleteRole(ctx, input.RoleID); err != nil {
			status, terr := failureStatus(logger, "role_delete", err)
			if terr != nil {
				return nil, RoleDeleteResult{}, terr
			}
			return nil, RoleDeleteResult{Status: status}, nil
		}
		return nil, RoleDeleteResult{Status: statusSuccess}, nil
	}
}

// RoleIdentityGetHandler returns the MCP handler for role_identity_get.
func RoleIdentityGetHandler(svc *app.Service, logger *log.Logger) mcp.ToolHandlerFor[RoleIdentityGetInput, RoleIdentityGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RoleIdentityGetInput) (*mcp.CallToolResult, RoleIdentityGetResult, error) {
		doc, err := svc.RoleIdentity(ctx, input.RoleID)
		if err != nil {
			return nil, RoleIdentityGetResult{}, toolFailure(logger, "role_identity_get", err)
		}
		return nil, RoleIdentityGetResult{RoleID: input.RoleID, Identity: doc}, nil
	}
}
