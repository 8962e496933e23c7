package minutes

import (
	"fmt"
	"strings"

	"github.com/louisbranch/roundtable/internal/roundtable/meeting"
)

// Conclude synthesizes the closing text for a finished run. It is computed
// once at run completion and cached on the meeting record; reads render the
// cached value and never regenerate it.
func Conclude(m meeting.Meeting, transcript []meeting.Contribution, names map[string]string) string {
	var b strings.Builder

	rounds := roundsUsed(transcript)
	fmt.Fprintf(&b, "After %d round(s) and %d contribution(s) on %q, ", rounds, len(transcript), m.Topic)
	if m.Consensus != "" {
		fmt.Fprintf(&b, "the participants reached consensus: %s", m.Consensus)
	} else {
		b.WriteString("the round budget was exhausted without consensus.")
	}

	closing := closingPositions(m, transcript)
	if len(closing) > 0 {
		b.WriteString("\n\nClosing positions:\n")
		for _, roleID := range m.RoleIDs {
			text, ok := closing[roleID]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "- %s: %s\n", displayName(names, roleID), text)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// closingPositions maps each participant to the lead sentence of their last
// contribution.
func closingPositions(m meeting.Meeting, transcript []meeting.Contribution) map[string]string {
	last := make(map[string]string, len(m.RoleIDs))
	for _, c := range transcript {
		last[c.RoleID] = leadSentence(c.Text)
	}
	return last
}

func leadSentence(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.IndexAny(text, ".!?"); idx != -1 {
		return strings.TrimSpace(text[:idx+1])
	}
	if idx := strings.IndexByte(text, '\n'); idx != -1 {
		return strings.TrimSpace(text[:idx])
	}
	return text
}
