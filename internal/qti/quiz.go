// Package qti packages quizzes as QTI 1.2 zip archives and reads them back.
//
// A package holds an imsmanifest.xml, one directory per assessment with the
// QTI document (<id>/<id>.xml) and its metadata (<id>/assessment_meta.xml),
// and the embedded images under images/.
package qti

import (
	"errors"
	"strconv"
)

// Sentinel errors for packaging operations.
var (
	ErrParseText     = errors.New("invalid quiz text")
	ErrPackage       = errors.New("cannot write quiz package")
	ErrImageNotFound = errors.New("image not found")
	ErrReadPackage   = errors.New("cannot read quiz package")
)

// QuestionType is the LMS question type stored in item metadata.
type QuestionType string

// Supported question types.
const (
	MultipleChoice  QuestionType = "multiple_choice_question"
	MultipleAnswers QuestionType = "multiple_answers_question"
	Essay           QuestionType = "essay_question"
)

// Quiz is one assessment.
type Quiz struct {
	ID          string // Set by Write and ReadPackage
	Title       string
	Description string
	Questions   []Question

	// Assets maps package paths ("images/x.png") to file content.
	// Filled by Write and ReadPackage.
	Assets map[string][]byte
}

// Question is one assessment item. Text holds exam markup and is empty for
// quizzes read from a package; HTML holds the rendered form.
type Question struct {
	Number  int
	Type    QuestionType
	Points  float64
	Text    string
	HTML    string
	Choices []Choice
}

// Choice is one answer of a choice question.
type Choice struct {
	Letter  string
	Text    string
	HTML    string
	Correct bool
	Fixed   bool // Position must not be shuffled
}

// TotalPoints returns the sum of question points.
func (q *Quiz) TotalPoints() float64 {
	var total float64
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}

// SetFixed marks the choice with letter in question number as fixed.
// It reports whether the choice exists.
func (q *Quiz) SetFixed(number int, letter string) bool {
	for i := range q.Questions {
		if q.Questions[i].Number != number {
			continue
		}
		for j := range q.Questions[i].Choices {
			if q.Questions[i].Choices[j].Letter == letter {
				q.Questions[i].Choices[j].Fixed = true
				return true
			}
		}
	}
	return false
}

// CorrectCount returns the number of correct choices.
func (q Question) CorrectCount() int {
	n := 0
	for _, c := range q.Choices {
		if c.Correct {
			n++
		}
	}
	return n
}

// typeFor derives the question type from its choices.
func typeFor(choices []Choice) QuestionType {
	correct := 0
	for _, c := range choices {
		if c.Correct {
			correct++
		}
	}
	switch {
	case len(choices) == 0:
		return Essay
	case correct > 1:
		return MultipleAnswers
	default:
		return MultipleChoice
	}
}

// formatPoints renders points without a trailing ".0".
func formatPoints(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
