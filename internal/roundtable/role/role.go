// Package role models the persona-bearing participants of a discussion.
//
// Role records are metadata-first: the orchestration engine resolves them by
// id at run start and renders their identity document into the generation
// context, but never stores persona content on the meeting itself.
package role

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/roundtable/internal/platform/id"
)

var (
	// ErrEmptyID indicates an ID is required.
	ErrEmptyID = errors.New("id is required")
	// ErrEmptyName indicates a role name is required.
	ErrEmptyName = errors.New("name is required")
)

// Role is the domain model for one discussion participant persona.
type Role struct {
	ID          string
	Name        string
	Description string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateInput captures user-provided fields for creating a role.
type CreateInput struct {
	Name        string
	Description string
	Notes       string
}

// NormalizeCreateInput validates and canonicalizes create input.
func NormalizeCreateInput(input CreateInput) (CreateInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return CreateInput{}, ErrEmptyName
	}

	input.Description = strings.TrimSpace(input.Description)
	input.Notes = strings.TrimSpace(input.Notes)

	return input, nil
}

// Create constructs a normalized role with generated identifiers.
func Create(input CreateInput, now func() time.Time, idGenerator func() (string, error)) (Role, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateInput(input)
	if err != nil {
		return Role{}, err
	}

	roleID, err := idGenerator()
	if err != nil {
		return Role{}, fmt.Errorf("generate role id: %w", err)
	}

	createdAt := now().UTC()
	return Role{
		ID:          roleID,
		Name:        normalized.Name,
		Description: normalized.Description,
		Notes:       normalized.Notes,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}
