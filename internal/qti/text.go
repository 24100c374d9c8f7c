package qti

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-exam2qti/internal/pipeline"
)

var (
	titleLine       = regexp.MustCompile(`(?i)^quiz title:\s*(.*)$`)
	descriptionLine = regexp.MustCompile(`(?i)^quiz description:\s*(.*)$`)
	pointsLine      = regexp.MustCompile(`(?i)^points:\s*(\S+)\s*$`)
	questionLine    = regexp.MustCompile(`^(\d+)\.\s+(.*)$`)
	choiceLine      = regexp.MustCompile(`^(\*?)([a-z])\)\s?(.*)$`)
)

// defaultPoints applies to questions without a Points line.
const defaultPoints = 1

// textParser holds the state of ParseText between lines.
type textParser struct {
	quiz    *Quiz
	current *Question
	points  *float64
}

// ParseText reads the line-oriented quiz format:
//
//	Quiz title: Week 1
//	Quiz description: Arithmetic
//
//	Points: 2
//	1. What is 2+2?
//	a) 3
//	*b) 4
//
// Questions are separated by blank lines. A question without choices is an
// essay question; a trailing blank-response placeholder is dropped from its
// text. Choice questions need at least one correct choice.
func ParseText(text string) (*Quiz, error) {
	p := &textParser{quiz: &Quiz{}}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	for i, line := range strings.Split(text, "\n") {
		if err := p.line(strings.TrimRight(line, " \t\r")); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParseText, i+1, err)
		}
	}
	if err := p.closeQuestion(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseText, err)
	}

	return p.quiz, nil
}

func (p *textParser) line(line string) error {
	if strings.TrimSpace(line) == "" {
		return p.closeQuestion()
	}
	if p.current != nil {
		return p.questionLine(line)
	}

	if m := titleLine.FindStringSubmatch(line); m != nil {
		p.quiz.Title = m[1]
		return nil
	}
	if m := descriptionLine.FindStringSubmatch(line); m != nil {
		p.quiz.Description = m[1]
		return nil
	}
	if m := pointsLine.FindStringSubmatch(line); m != nil {
		points, err := strconv.ParseFloat(m[1], 64)
		if err != nil || points < 0 {
			return fmt.Errorf("invalid points %q", m[1])
		}
		p.points = &points
		return nil
	}
	if m := questionLine.FindStringSubmatch(line); m != nil {
		number, _ := strconv.Atoi(m[1])
		points := float64(defaultPoints)
		if p.points != nil {
			points = *p.points
			p.points = nil
		}
		p.current = &Question{Number: number, Points: points, Text: m[2]}
		return nil
	}

	return fmt.Errorf("unexpected %q outside a question", excerpt(line))
}

// questionLine adds a choice or a continuation line to the open question.
func (p *textParser) questionLine(line string) error {
	q := p.current
	if m := choiceLine.FindStringSubmatch(line); m != nil && m[2] == nextLetter(len(q.Choices)) {
		q.Choices = append(q.Choices, Choice{
			Letter:  m[2],
			Text:    m[3],
			Correct: m[1] == pipeline.CorrectMarker,
		})
		return nil
	}
	if len(q.Choices) > 0 {
		return fmt.Errorf("unexpected %q after choices of question %d", excerpt(line), q.Number)
	}
	q.Text += "\n" + line
	return nil
}

// closeQuestion validates and stores the open question, if any.
func (p *textParser) closeQuestion() error {
	q := p.current
	if q == nil {
		return nil
	}
	p.current = nil

	if len(q.Choices) == 0 {
		q.Text = strings.TrimSuffix(q.Text, "\n"+pipeline.EssayBlank)
	}
	q.Type = typeFor(q.Choices)
	if q.Type != Essay && q.CorrectCount() == 0 {
		return fmt.Errorf("question %d has no correct choice", q.Number)
	}

	p.quiz.Questions = append(p.quiz.Questions, *q)
	return nil
}

// nextLetter returns the label of the choice at index i.
func nextLetter(i int) string {
	if i >= 26 {
		return ""
	}
	return string(rune('a' + i))
}

// excerpt shortens a line for error messages.
func excerpt(line string) string {
	const max = 40
	runes := []rune(line)
	if len(runes) <= max {
		return line
	}
	return string(runes[:max]) + "..."
}
