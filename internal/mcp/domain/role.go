// Package domain defines the MCP tool surface for the roundtable engine.
package domain

import "github.com/modelcontextprotocol/go-sdk/mcp"

// RoleSummary represents a readable role entry.
type RoleSummary struct {
	ID          string `json:"id" jsonschema:"role identifier"`
	Name        string `json:"name" jsonschema:"role name"`
	Description string `json:"description" jsonschema:"role description"`
}

// RoleListInput represents the MCP tool input for listing roles.
type RoleListInput struct{}

// RoleListResult represents the MCP tool output for listing roles.
type RoleListResult struct {
	Roles []RoleSummary `json:"roles" jsonschema:"all roles ordered by name"`
}

// RoleCreateInput represents the MCP tool input for role creation.
type RoleCreateInput struct {
	Name        string `json:"name" jsonschema:"role name (unique)"`
	Description string `json:"description,omitempty" jsonschema:"optional role description"`
	Notes       string `json:"notes,omitempty" jsonschema:"optional persona notes"`
}

// RoleCreateResult represents the MCP tool output for role creation.
type RoleCreateResult struct {
	Status string      `json:"status" jsonschema:"success or failure indicator"`
	Role   RoleSummary `json:"role,omitempty" jsonschema:"created role"`
}

// RoleDeleteInput represents the MCP tool input for role deletion.
type RoleDeleteInput struct {
	RoleID string `json:"role_id" jsonschema:"role identifier"`
}

// RoleDeleteResult represents the MCP tool output for role deletion.
type RoleDeleteResult struct {
	Status string `json:"status" jsonschema:"success or failure indicator"`
}

// RoleIdentityGetInput represents the MCP tool input for reading a role identity.
type RoleIdentityGetInput struct {
	RoleID string `json:"role_id" jsonschema:"role identifier"`
}

// RoleIdentityGetResult represents the MCP tool output for reading a role identity.
type RoleIdentityGetResult struct {
	RoleID   string `json:"role_id" jsonschema:"role identifier"`
	Identity string `json:"identity" jsonschema:"identity document rendered as markdown"`
}

// RoleListTool describes the role_list tool.
func RoleListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "role_list",
		Description: "Lists all roles available as meeting participants.",
	}
}

// RoleCreateTool describes the role_create tool.
func RoleCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "role_create",
		Description: "Creates a new persona role. Role names are unique.",
	}
}

// RoleDeleteTool describes the role_delete tool.
func RoleDeleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "role_delete",
		Description: "Deletes a role. Fails while the role participates in any meeting.",
	}
}

// RoleIdentityGetTool describes the role_identity_get tool.
func RoleIdentityGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "role_identity_get",
		Description: "Returns the markdown identity document of a role.",
	}
}
