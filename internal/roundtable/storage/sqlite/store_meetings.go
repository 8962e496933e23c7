package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/roundtable/internal/roundtable/storage"
)

// PutMeeting persists a meeting record.
func (s *Store) PutMeeting(ctx context.Context, record storage.MeetingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("meeting id is required")
	}
	if strings.TrimSpace(record.Topic) == "" {
		return fmt.Errorf("meeting topic is required")
	}
	if strings.TrimSpace(record.Status) == "" {
		return fmt.Errorf("meeting status is required")
	}

	roleIDs, err := encodeRoleIDs(record.RoleIDs)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO meetings (
	id, topic, role_ids, rounds, status, reference, consensus, conclusion, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	topic = excluded.topic,
	role_ids = excluded.role_ids,
	rounds = excluded.rounds,
	status = excluded.status,
	reference = excluded.reference,
	consensus = excluded.consensus,
	conclusion = excluded.conclusion,
	updated_at = excluded.updated_at
`,
		record.ID,
		record.Topic,
		roleIDs,
		record.Rounds,
		record.Status,
		record.Reference,
		record.Consensus,
		record.Conclusion,
		toMillis(record.CreatedAt),
		toMillis(record.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put meeting: %w", err)
	}
	return nil
}

// GetMeeting fetches a meeting record by ID.
func (s *Store) GetMeeting(ctx context.Context, meetingID string) (storage.MeetingRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.MeetingRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.MeetingRecord{}, fmt.Errorf("storage is not configured")
	}
	meetingID = strings.TrimSpace(meetingID)
	if meetingID == "" {
		return storage.MeetingRecord{}, fmt.Errorf("meeting id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, topic, role_ids, rounds, status, reference, consensus, conclusion, created_at, updated_at
FROM meetings
WHERE id = ?
`, meetingID)
	return scanMeetingRow(row)
}

// ListMeetings returns all meetings ordered by creation time, newest first.
func (s *Store) ListMeetings(ctx context.Context) ([]storage.MeetingRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, topic, role_ids, rounds, status, reference, consensus, conclusion, created_at, updated_at
FROM meetings
ORDER BY created_at DESC, id
`)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	var records []storage.MeetingRecord
	for rows.Next() {
		rec, err := scanMeetingRows(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meeting row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meeting rows: %w", err)
	}
	return records, nil
}

// UpdateMeeting replaces the structural fields of an existing record.
func (s *Store) UpdateMeeting(ctx context.Context, record storage.MeetingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("meeting id is required")
	}

	roleIDs, err := encodeRoleIDs(record.RoleIDs)
	if err != nil {
		return err
	}

	res, err := s.sqlDB.ExecContext(ctx, `
UPDATE meetings SET
	topic = ?,
	role_ids = ?,
	rounds = ?,
	status = ?,
	reference = ?,
	consensus = ?,
	conclusion = ?,
	updated_at = ?
WHERE id = ?
`,
		record.Topic,
		roleIDs,
		record.Rounds,
		record.Status,
		record.Reference,
		record.Consensus,
		record.Conclusion,
		toMillis(record.UpdatedAt),
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("update meeting: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update meeting rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteMeeting deletes one meeting and its transcript.
func (s *Store) DeleteMeeting(ctx context.Context, meetingID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	meetingID = strings.TrimSpace(meetingID)
	if meetingID == "" {
		return fmt.Errorf("meeting id is required")
	}

	res, err := s.sqlDB.ExecContext(ctx, `
DELETE FROM meetings
WHERE id = ?
`, meetingID)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete meeting rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CompareAndSetStatus atomically moves a meeting between statuses. The WHERE
// clause on the stored status makes two racing transitions admit one winner.
func (s *Store) CompareAndSetStatus(ctx context.Context, meetingID string, expectedStatus, newStatus string, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	meetingID = strings.TrimSpace(meetingID)
	if meetingID == "" {
		return fmt.Errorf("meeting id is required")
	}
	if strings.TrimSpace(expectedStatus) == "" || strings.TrimSpace(newStatus) == "" {
		return fmt.Errorf("expected and new status are required")
	}

	res, err := s.sqlDB.ExecContext(ctx, `
UPDATE meetings SET
	status = ?,
	updated_at = ?
WHERE id = ? AND status = ?
`, newStatus, toMillis(updatedAt), meetingID, expectedStatus)
	if err != nil {
		return fmt.Errorf("compare and set status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("compare and set status rows affected: %w", err)
	}
	if affected == 1 {
		return nil
	}

	if _, err := s.GetMeeting(ctx, meetingID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.ErrNotFound
		}
		return err
	}
	return storage.ErrStatusMismatch
}

// AppendContribution appends one transcript entry.
func (s *Store) AppendContribution(ctx context.Context, record storage.ContributionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.MeetingID) == "" {
		return fmt.Errorf("meeting id is required")
	}
	if strings.TrimSpace(record.RoleID) == "" {
		return fmt.Errorf("role id is required")
	}
	if record.Round < 1 {
		return fmt.Errorf("round must be at least 1")
	}
	if record.Seq < 0 {
		return fmt.Errorf("seq must not be negative")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO contributions (
	meeting_id, seq, round, role_id, text, created_at
) VALUES (?, ?, ?, ?, ?, ?)
`,
		record.MeetingID,
		record.Seq,
		record.Round,
		record.RoleID,
		record.Text,
		toMillis(record.CreatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("append contribution: %w", err)
	}
	return nil
}

// ListContributions returns the transcript of one meeting in append order.
func (s *Store) ListContributions(ctx context.Context, meetingID string) ([]storage.ContributionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	meetingID = strings.TrimSpace(meetingID)
	if meetingID == "" {
		return nil, fmt.Errorf("meeting id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT meeting_id, seq, round, role_id, text, created_at
FROM contributions
WHERE meeting_id = ?
ORDER BY seq
`, meetingID)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	var records []storage.ContributionRecord
	for rows.Next() {
		var rec storage.ContributionRecord
		var createdAt int64
		if err := rows.Scan(
			&rec.MeetingID,
			&rec.Seq,
			&rec.Round,
			&rec.RoleID,
			&rec.Text,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan contribution row: %w", err)
		}
		rec.CreatedAt = fromMillis(createdAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contribution rows: %w", err)
	}
	return records, nil
}

// MeetingSnapshot reads one meeting and its transcript inside a single
// transaction. A run committing between the two reads cannot produce a
// transcript that disagrees with the returned record.
func (s *Store) MeetingSnapshot(ctx context.Context, meetingID string) (storage.MeetingRecord, []storage.ContributionRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.MeetingRecord{}, nil, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.MeetingRecord{}, nil, fmt.Errorf("storage is not configured")
	}
	meetingID = strings.TrimSpace(meetingID)
	if meetingID == "" {
		return storage.MeetingRecord{}, nil, fmt.Errorf("meeting id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storage.MeetingRecord{}, nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
SELECT id, topic, role_ids, rounds, status, reference, consensus, conclusion, created_at, updated_at
FROM meetings
WHERE id = ?
`, meetingID)
	rec, err := scanMeetingRow(row)
	if err != nil {
		return storage.MeetingRecord{}, nil, err
	}

	rows, err := tx.QueryContext(ctx, `
SELECT meeting_id, seq, round, role_id, text, created_at
FROM contributions
WHERE meeting_id = ?
ORDER BY seq
`, meetingID)
	if err != nil {
		return storage.MeetingRecord{}, nil, fmt.Errorf("snapshot contributions: %w", err)
	}
	defer rows.Close()

	var transcript []storage.ContributionRecord
	for rows.Next() {
		var entry storage.ContributionRecord
		var createdAt int64
		if err := rows.Scan(
			&entry.MeetingID,
			&entry.Seq,
			&entry.Round,
			&entry.RoleID,
			&entry.Text,
			&createdAt,
		); err != nil {
			return storage.MeetingRecord{}, nil, fmt.Errorf("scan contribution row: %w", err)
		}
		entry.CreatedAt = fromMillis(createdAt)
		transcript = append(transcript, entry)
	}
	if err := rows.Err(); err != nil {
		return storage.MeetingRecord{}, nil, fmt.Errorf("iterate contribution rows: %w", err)
	}
	// Rows must be drained and closed before the transaction can commit.
	if err := rows.Close(); err != nil {
		return storage.MeetingRecord{}, nil, fmt.Errorf("close contribution rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return storage.MeetingRecord{}, nil, fmt.Errorf("commit snapshot: %w", err)
	}
	return rec, transcript, nil
}

// CompleteMeeting commits the end of a run as one update: status, consensus
// and conclusion land together or not at all.
func (s *Store) CompleteMeeting(ctx context.Context, meetingID string, newStatus, consensus, conclusion string, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	meetingID = strings.TrimSpace(meetingID)
	if meetingID == "" {
		return fmt.Errorf("meeting id is required")
	}
	if strings.TrimSpace(newStatus) == "" {
		return fmt.Errorf("new status is required")
	}

	res, err := s.sqlDB.ExecContext(ctx, `
UPDATE meetings SET
	status = ?,
	consensus = ?,
	conclusion = ?,
	updated_at = ?
WHERE id = ?
`, newStatus, consensus, conclusion, toMillis(updatedAt), meetingID)
	if err != nil {
		return fmt.Errorf("complete meeting: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete meeting rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanMeetingRow(row *sql.Row) (storage.MeetingRecord, error) {
	var (
		rec        storage.MeetingRecord
		roleIDsRaw string
		createdAt  int64
		updatedAt  int64
	)
	if err := row.Scan(
		&rec.ID,
		&rec.Topic,
		&roleIDsRaw,
		&rec.Rounds,
		&rec.Status,
		&rec.Reference,
		&rec.Consensus,
		&rec.Conclusion,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.MeetingRecord{}, storage.ErrNotFound
		}
		return storage.MeetingRecord{}, fmt.Errorf("get meeting: %w", err)
	}
	ids, err := decodeRoleIDs(roleIDsRaw)
	if err != nil {
		return storage.MeetingRecord{}, err
	}
	rec.RoleIDs = ids
	rec.CreatedAt = fromMillis(createdAt)
	rec.UpdatedAt = fromMillis(updatedAt)
	return rec, nil
}

func scanMeetingRows(rows *sql.Rows) (storage.MeetingRecord, error) {
	var (
		rec        storage.MeetingRecord
		roleIDsRaw string
		createdAt  int64
		updatedAt  int64
	)
	if err := rows.Scan(
		&rec.ID,
		&rec.Topic,
		&roleIDsRaw,
		&rec.Rounds,
		&rec.Status,
		&rec.Reference,
		&rec.Consensus,
		&rec.Conclusion,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.MeetingRecord{}, err
	}
	ids, err := decodeRoleIDs(roleIDsRaw)
	if err != nil {
		return storage.MeetingRecord{}, err
	}
	rec.RoleIDs = ids
	rec.CreatedAt = fromMillis(createdAt)
	rec.UpdatedAt = fromMillis(updatedAt)
	return rec, nil
}
