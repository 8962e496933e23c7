// Package minutes renders meeting records into markdown documents.
//
// Rendering is pure: the same record and transcript always produce
// byte-identical output, and nothing here calls the generation capability.
package minutes

import (
	"fmt"
	"strings"

	"github.com/louisbranch/roundtable/internal/roundtable/meeting"
)

// Render produces the minutes document for a meeting. names maps role ids
// to display names; unknown ids fall back to the id itself so a deleted
// role never breaks rendering.
func Render(m meeting.Meeting, transcript []meeting.Contribution, names map[string]string) string {
	var b strings.Builder

	b.WriteString("# Minutes: ")
	b.WriteString(m.Topic)
	b.WriteString("\n\n")

	participants := make([]string, 0, len(m.RoleIDs))
	for _, roleID := range m.RoleIDs {
		participants = append(participants, displayName(names, roleID))
	}

	fmt.Fprintf(&b, "- Meeting: %s\n", m.ID)
	fmt.Fprintf(&b, "- Participants: %s\n", strings.Join(participants, ", "))
	fmt.Fprintf(&b, "- Rounds used: %d of %d\n", roundsUsed(transcript), m.Rounds)
	fmt.Fprintf(&b, "- Status: %s\n", m.Status)

	currentRound := 0
	for _, c := range transcript {
		if c.Round != currentRound {
			currentRound = c.Round
			fmt.Fprintf(&b, "\n## Round %d\n", currentRound)
		}
		fmt.Fprintf(&b, "\n### %s\n\n", displayName(names, c.RoleID))
		b.WriteString(strings.TrimSpace(c.Text))
		b.WriteString("\n")
	}

	b.WriteString("\n## Consensus\n\n")
	if m.Consensus != "" {
		b.WriteString(m.Consensus)
	} else {
		b.WriteString("No consensus was reached.")
	}
	b.WriteString("\n")

	if m.Conclusion != "" {
		b.WriteString("\n## Conclusion\n\n")
		b.WriteString(m.Conclusion)
		b.WriteString("\n")
	}

	return b.String()
}

func displayName(names map[string]string, roleID string) string {
	if name, ok := names[roleID]; ok && name != "" {
		return name
	}
	return roleID
}

func roundsUsed(transcript []meeting.Contribution) int {
	used := 0
	for _, c := range transcript {
		if c.Round > used {
			used = c.Round
		}
	}
	return used
}
