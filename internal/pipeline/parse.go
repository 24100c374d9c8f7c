package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// LineBreak is the markup inserted for each line break of a question body.
const LineBreak = "<br>"

var (
	// Per-block fields, introduced by a pipe or the start of a line,
	// value runs to the next pipe or the end of the line.
	pointsField = regexp.MustCompile(`(?im)(?:^|\|)[ \t]*Points:[ \t]*([^|\r\n]+)`)
	topicField  = regexp.MustCompile(`(?im)(?:^|\|)[ \t]*Topic:[ \t]*([^|\r\n]+)`)

	// Inline field segment trailing question or answer text.
	fieldSegment = regexp.MustCompile(`\s*\| .*$`)
)

// ParseQuestions splits text into blocks and parses each one, keeping input
// order. Blocks without a question yield no record.
func ParseQuestions(text string, settings Settings) ([]Record, error) {
	blocks := SplitBlocks(text)
	records := make([]Record, 0, len(blocks))
	for _, block := range blocks {
		rec, ok, err := ParseBlock(block, settings)
		if err != nil {
			return nil, err
		}
		if ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// ParseBlock extracts the question body, answers, points and topic of one
// block. It returns ok=false when the block has no question-start line or an
// empty question body.
//
// The body is the question-start line plus the lines following it, up to the
// first answer, field or note line. A Points value that is not a
// non-negative integer returns ErrInvalidPoints.
func ParseBlock(block string, settings Settings) (Record, bool, error) {
	lines := splitLines(block)

	start := -1
	for i, line := range lines {
		if classify(line) == lineQuestion {
			start = i
			break
		}
	}
	if start < 0 {
		return Record{}, false, nil
	}

	body := []string{stripField(strings.TrimPrefix(lines[start], QuestionSigil))}
	for _, line := range lines[start+1:] {
		if classify(line) != lineText {
			break
		}
		body = append(body, stripField(line))
	}

	question := strings.TrimSpace(strings.Join(body, "\n"))
	if question == "" {
		return Record{}, false, nil
	}
	question = strings.ReplaceAll(question, "\n", LineBreak+"\n")

	var answers []string
	for _, line := range lines {
		if classify(line) != lineAnswer {
			continue
		}
		answer := strings.TrimPrefix(strings.TrimLeft(line, " \t"), AnswerSigil)
		answers = append(answers, stripField(answer))
	}

	rec := Record{
		Question: question,
		Answers:  answers,
		Points:   settings.DefaultPoints,
		Topic:    settings.DefaultTopic,
	}

	if m := pointsField.FindStringSubmatch(block); m != nil {
		raw := strings.TrimSpace(m[1])
		points, err := strconv.Atoi(raw)
		if err != nil || points < 0 {
			return Record{}, false, fmt.Errorf("%w: %q in question %q", ErrInvalidPoints, raw, excerpt(question))
		}
		rec.Points = points
	}

	if m := topicField.FindStringSubmatch(block); m != nil {
		rec.Topic = strings.TrimSpace(m[1])
	}

	return rec, true, nil
}

// stripField removes a trailing "| ..." field segment from a line.
func stripField(line string) string {
	return fieldSegment.ReplaceAllString(line, "")
}
