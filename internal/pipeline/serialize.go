package pipeline

import (
	"fmt"
	"strings"
)

// Serialize assembles the packager text: a title line (fallbackTitle when
// the header has none), an optional description line from the subtitle, then
// one block per question with its points, question text and answer lines.
// Blocks are separated by blank lines.
func Serialize(header Header, fallbackTitle string, questions []Formatted) string {
	var b strings.Builder

	title := header.Title
	if title == "" {
		title = fallbackTitle
	}
	fmt.Fprintf(&b, "Quiz title: %s\n", title)
	if header.Subtitle != "" {
		fmt.Fprintf(&b, "Quiz description: %s\n", header.Subtitle)
	}
	b.WriteString("\n")

	for _, q := range questions {
		fmt.Fprintf(&b, "Points: %d\n%s\n", q.Points, q.Question)
		if len(q.Answers) > 0 {
			b.WriteString(strings.Join(q.Answers, "\n"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}
