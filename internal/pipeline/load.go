package pipeline

import (
	"regexp"
	"strings"
)

// Placeholder markup emitted for blank rules and essay prompts.
const (
	BlankRule  = "<code>________</code>"
	EssayBlank = "<code>____________</code>"
)

const (
	byteOrderMark = "\uFEFF"
	commentPrefix = "#"
)

var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Three or more underscores become one blank rule
	underscoreRun = regexp.MustCompile(`_{3,}`)
)

// Clean prepares raw exam text for parsing: it drops a leading byte-order
// mark, replaces every run of three or more underscores with BlankRule, and
// removes empty lines and comment lines.
func Clean(raw string) string {
	text := strings.TrimPrefix(raw, byteOrderMark)
	text = underscoreRun.ReplaceAllString(text, BlankRule)

	lines := splitLines(text)
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(text string) string {
	return crlfOrCR.ReplaceAllString(text, "\n")
}

// splitLines splits text on any line ending.
func splitLines(text string) []string {
	return strings.Split(normalizeLineEndings(text), "\n")
}
