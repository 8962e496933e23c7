package role

import "strings"

// Identity renders the role's identity document as markdown. The output is
// deterministic for an unchanged record; it is what the discussion driver
// feeds into the generation context as the persona.
func Identity(r Role) string {
	var b strings.Builder

	b.WriteString("# ")
	b.WriteString(r.Name)
	b.WriteString("\n")

	if r.Description != "" {
		b.WriteString("\n## Description\n\n")
		b.WriteString(r.Description)
		b.WriteString("\n")
	}

	if r.Notes != "" {
		b.WriteString("\n## Notes\n\n")
		b.WriteString(r.Notes)
		b.WriteString("\n")
	}

	return b.String()
}
