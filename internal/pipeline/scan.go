package pipeline

import (
	"regexp"
	"strings"
)

// Line-leading markers of the exam format.
const (
	QuestionSigil = "@ "
	AnswerSigil   = "$ "
	NotePrefix    = "%"
)

// lineKind classifies a single exam line.
type lineKind int

const (
	lineText     lineKind = iota // question continuation or stray text
	lineHeader                   // TITLE:, SUBTITLE:, INSTRUCTIONS:
	lineQuestion                 // "@ " question start
	lineAnswer                   // "$ " answer
	lineField                    // "| Points: 3 | Topic: x"
	lineNote                     // "%" author note
)

// region is the scanner state: text before the first question start belongs
// to the header region and is never part of a block.
type region int

const (
	headerRegion region = iota
	questionRegion
)

var (
	// Metadata line, optionally introduced by a pipe
	headerLine = regexp.MustCompile(`(?i)^\s*(?:\|\s*)?(title|subtitle|instructions):[ \t]*(\S.*?)\s*$`)

	// Per-block field line: "| ..." or a bare "Points:" / "Topic:" line
	fieldLine = regexp.MustCompile(`(?i)^\s*(?:\||(?:points|topic):)`)
)

// classify returns the kind of a line. Answer lines may be indented; question
// starts must begin at column zero.
func classify(line string) lineKind {
	switch {
	case headerLine.MatchString(line):
		return lineHeader
	case strings.HasPrefix(line, QuestionSigil):
		return lineQuestion
	case strings.HasPrefix(strings.TrimLeft(line, " \t"), AnswerSigil):
		return lineAnswer
	case fieldLine.MatchString(line):
		return lineField
	case strings.HasPrefix(line, NotePrefix):
		return lineNote
	default:
		return lineText
	}
}

// ExtractHeader scans every line for TITLE, SUBTITLE and INSTRUCTIONS markers.
// Matching is case-insensitive and the last occurrence of a marker wins.
func ExtractHeader(text string) Header {
	var h Header
	for _, line := range splitLines(text) {
		if classify(line) != lineHeader {
			continue
		}
		m := headerLine.FindStringSubmatch(line)
		switch strings.ToLower(m[1]) {
		case "title":
			h.Title = m[2]
		case "subtitle":
			h.Subtitle = m[2]
		case "instructions":
			h.Instructions = m[2]
		}
	}
	return h
}

// StripHeaderLines removes metadata lines so that only question content and
// per-block fields remain.
func StripHeaderLines(text string) string {
	lines := splitLines(text)
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if classify(line) == lineHeader {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// SplitBlocks partitions text into question blocks. Each block starts at a
// question-start line and runs until the next one. Blocks are trimmed and
// empty blocks are discarded; text without any question start yields nil.
func SplitBlocks(text string) []string {
	var (
		blocks  []string
		current []string
		state   = headerRegion
	)

	flush := func() {
		if block := strings.TrimSpace(strings.Join(current, "\n")); block != "" {
			blocks = append(blocks, block)
		}
		current = current[:0]
	}

	for _, line := range splitLines(text) {
		if classify(line) == lineQuestion {
			if state == questionRegion {
				flush()
			}
			state = questionRegion
		}
		if state == questionRegion {
			current = append(current, line)
		}
	}
	if state == questionRegion {
		flush()
	}

	return blocks
}
