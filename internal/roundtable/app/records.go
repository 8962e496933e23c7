package app

import (
	"github.com/louisbranch/roundtable/internal/roundtable/meeting"
	"github.com/louisbranch/roundtable/internal/roundtable/role"
	"github.com/louisbranch/roundtable/internal/roundtable/storage"
)

func roleToRecord(r role.Role) storage.RoleRecord {
	return storage.RoleRecord{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func roleFromRecord(rec storage.RoleRecord) role.Role {
	return role.Role{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Notes:       rec.Notes,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func meetingToRecord(m meeting.Meeting) storage.MeetingRecord {
	return storage.MeetingRecord{
		ID:         m.ID,
		Topic:      m.Topic,
		RoleIDs:    m.RoleIDs,
		Rounds:     m.Rounds,
		Status:     string(m.Status),
		Reference:  m.Reference,
		Consensus:  m.Consensus,
		Conclusion: m.Conclusion,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func meetingFromRecord(rec storage.MeetingRecord) (meeting.Meeting, error) {
	status, err := meeting.ParseStatus(rec.Status)
	if err != nil {
		return meeting.Meeting{}, err
	}
	return meeting.Meeting{
		ID:         rec.ID,
		Topic:      rec.Topic,
		RoleIDs:    rec.RoleIDs,
		Rounds:     rec.Rounds,
		Status:     status,
		Reference:  rec.Reference,
		Consensus:  rec.Consensus,
		Conclusion: rec.Conclusion,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}, nil
}

func contributionFromRecord(rec storage.ContributionRecord) meeting.Contribution {
	return meeting.Contribution{
		MeetingID: rec.MeetingID,
		Seq:       rec.Seq,
		Round:     rec.Round,
		RoleID:    rec.RoleID,
		Text:      rec.Text,
		CreatedAt: rec.CreatedAt,
	}
}

func contributionToRecord(c meeting.Contribution) storage.ContributionRecord {
	return storage.ContributionRecord{
		MeetingID: c.MeetingID,
		Seq:       c.Seq,
		Round:     c.Round,
		RoleID:    c.RoleID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}
