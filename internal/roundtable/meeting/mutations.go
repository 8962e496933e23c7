package meeting

import "strings"

// UpdateTopic returns a copy with the topic replaced. Pending only.
func UpdateTopic(m Meeting, topic string) (Meeting, error) {
	if m.Status != StatusPending {
		return Meeting{}, ErrNotPending
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Meeting{}, ErrEmptyTopic
	}
	m.Topic = topic
	return m, nil
}

// UpdateRounds returns a copy with the round budget replaced. Pending only.
func UpdateRounds(m Meeting, rounds int) (Meeting, error) {
	if m.Status != StatusPending {
		return Meeting{}, ErrNotPending
	}
	if rounds < 1 {
		return Meeting{}, ErrInvalidRounds
	}
	m.Rounds = rounds
	return m, nil
}

// AddParticipant returns a copy with roleID appended to the speaking order.
// Pending only; duplicates are rejected.
func AddParticipant(m Meeting, roleID string) (Meeting, error) {
	if m.Status != StatusPending {
		return Meeting{}, ErrNotPending
	}
	roleID = strings.TrimSpace(roleID)
	if roleID == "" {
		return Meeting{}, ErrParticipantMissing
	}
	for _, existing := range m.RoleIDs {
		if existing == roleID {
			return Meeting{}, ErrParticipantPresent
		}
	}
	ids := make([]string, 0, len(m.RoleIDs)+1)
	ids = append(ids, m.RoleIDs...)
	ids = append(ids, roleID)
	m.RoleIDs = ids
	return m, nil
}

// RemoveParticipant returns a copy with roleID removed from the speaking
// order. Pending only; removing the last participant is rejected.
func RemoveParticipant(m Meeting, roleID string) (Meeting, error) {
	if m.Status != StatusPending {
		return Meeting{}, ErrNotPending
	}
	roleID = strings.TrimSpace(roleID)

	idx := -1
	for i, existing := range m.RoleIDs {
		if existing == roleID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Meeting{}, ErrParticipantMissing
	}
	if len(m.RoleIDs) == 1 {
		return Meeting{}, ErrLastParticipant
	}

	ids := make([]string, 0, len(m.RoleIDs)-1)
	ids = append(ids, m.RoleIDs[:idx]...)
	ids = append(ids, m.RoleIDs[idx+1:]...)
	m.RoleIDs = ids
	return m, nil
}
