package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// CorrectMarker prefixes a formatted answer that was tagged correct.
const CorrectMarker = "*"

// letters labels answers in order; questions with more answers are rejected.
const letters = "abcdefghijklmnopqrstuvwxyz"

// excerptLength is the number of runes of a question quoted in errors.
const excerptLength = 40

var (
	correctTag = regexp.MustCompile(`(?i)\[\s*correct\s*\]`)
	fixedTag   = regexp.MustCompile(`(?i)\[\s*fixed\s*\]`)

	// Either tag with the whitespace around it
	anyTag = regexp.MustCompile(`(?i)\s*\[\s*(?:correct|fixed)\s*\]\s*`)
)

// FormatRecord numbers a record and letters its answers.
//
// The question becomes "<number>. <text>" on a single display line. Each
// answer becomes "<letter>) <text>", prefixed by CorrectMarker when it carries
// a [correct] tag; [correct] and [fixed] tags are removed from the text and
// kept in Choices. A record without answers gets EssayBlank appended to its
// question instead. A record with answers but none tagged correct returns
// ErrNoCorrectAnswer.
func FormatRecord(rec Record, number int) (Formatted, error) {
	question := strings.TrimSpace(rec.Question)
	question = strings.ReplaceAll(question, LineBreak+"\n", LineBreak)
	question = fmt.Sprintf("%d. %s", number, question)

	if len(rec.Answers) > len(letters) {
		return Formatted{}, fmt.Errorf("%w: %d answers (max %d) in question %q",
			ErrTooManyAnswers, len(rec.Answers), len(letters), excerpt(question))
	}

	out := Formatted{
		Number: number,
		Points: rec.Points,
		Topic:  rec.Topic,
	}

	hasCorrect := false
	for i, raw := range rec.Answers {
		answer := strings.TrimSpace(raw)
		choice := Choice{
			Letter:  letters[i : i+1],
			Correct: correctTag.MatchString(answer),
			Fixed:   fixedTag.MatchString(answer),
		}
		choice.Text = stripTags(answer)

		marker := ""
		if choice.Correct {
			marker = CorrectMarker
			hasCorrect = true
		}
		out.Answers = append(out.Answers, fmt.Sprintf("%s%s) %s", marker, choice.Letter, choice.Text))
		out.Choices = append(out.Choices, choice)
	}

	if len(out.Answers) > 0 && !hasCorrect {
		return Formatted{}, fmt.Errorf("%w: %q", ErrNoCorrectAnswer, excerpt(question))
	}

	if len(out.Answers) == 0 {
		question += "\n" + EssayBlank
	}
	out.Question = question

	return out, nil
}

// FormatRecords formats records in order, numbering from 1.
func FormatRecords(records []Record) ([]Formatted, error) {
	formatted := make([]Formatted, 0, len(records))
	for i, rec := range records {
		f, err := FormatRecord(rec, i+1)
		if err != nil {
			return nil, err
		}
		formatted = append(formatted, f)
	}
	return formatted, nil
}

// stripTags removes [correct] and [fixed] tags and surrounding whitespace.
func stripTags(answer string) string {
	return strings.TrimSpace(anyTag.ReplaceAllString(answer, " "))
}

// excerpt returns the first runes of a question for error messages.
func excerpt(question string) string {
	runes := []rune(question)
	if len(runes) <= excerptLength {
		return question
	}
	return string(runes[:excerptLength]) + "..."
}
