package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/roundtable/internal/roundtable/storage"
)

// PutRole persists a role record. Role names are unique; a clashing name on
// a different record returns ErrConflict.
func (s *Store) PutRole(ctx context.Context, record storage.RoleRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("role id is required")
	}
	if strings.TrimSpace(record.Name) == "" {
		return fmt.Errorf("role name is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO roles (
	id, name, description, notes, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	description = excluded.description,
	notes = excluded.notes,
	updated_at = excluded.updated_at
`,
		record.ID,
		record.Name,
		record.Description,
		record.Notes,
		toMillis(record.CreatedAt),
		toMillis(record.UpdatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("put role: %w", err)
	}
	return nil
}

// GetRole fetches a role record by ID.
func (s *Store) GetRole(ctx context.Context, roleID string) (storage.RoleRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.RoleRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.RoleRecord{}, fmt.Errorf("storage is not configured")
	}
	roleID = strings.TrimSpace(roleID)
	if roleID == "" {
		return storage.RoleRecord{}, fmt.Errorf("role id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, name, description, notes, created_at, updated_at
FROM roles
WHERE id = ?
`, roleID)

	var rec storage.RoleRecord
	var createdAt int64
	var updatedAt int64
	if err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.Description,
		&rec.Notes,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.RoleRecord{}, storage.ErrNotFound
		}
		return storage.RoleRecord{}, fmt.Errorf("get role: %w", err)
	}
	rec.CreatedAt = fromMillis(createdAt)
	rec.UpdatedAt = fromMillis(updatedAt)
	return rec, nil
}

// ListRoles returns all roles ordered by name.
func (s *Store) ListRoles(ctx context.Context) ([]storage.RoleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, name, description, notes, created_at, updated_at
FROM roles
ORDER BY name
`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var records []storage.RoleRecord
	for rows.Next() {
		var rec storage.RoleRecord
		var createdAt int64
		var updatedAt int64
		if err := rows.Scan(
			&rec.ID,
			&rec.Name,
			&rec.Description,
			&rec.Notes,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan role row: %w", err)
		}
		rec.CreatedAt = fromMillis(createdAt)
		rec.UpdatedAt = fromMillis(updatedAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate role rows: %w", err)
	}
	return records, nil
}

// DeleteRole deletes one role by ID.
func (s *Store) DeleteRole(ctx context.Context, roleID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	roleID = strings.TrimSpace(roleID)
	if roleID == "" {
		return fmt.Errorf("role id is required")
	}

	res, err := s.sqlDB.ExecContext(ctx, `
DELETE FROM roles
WHERE id = ?
`, roleID)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete role rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CountMeetingsWithRole reports how many meetings list roleID as a participant.
func (s *Store) CountMeetingsWithRole(ctx context.Context, roleID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	roleID = strings.TrimSpace(roleID)
	if roleID == "" {
		return 0, fmt.Errorf("role id is required")
	}

	// role_ids is a JSON array of quoted ids; an exact-quoted LIKE match is
	// sufficient because ids never contain quotes.
	var count int
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM meetings
WHERE role_ids LIKE '%"' || ? || '"%'
`, roleID)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count meetings with role: %w", err)
	}
	return count, nil
}
