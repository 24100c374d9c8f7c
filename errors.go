package exam2qti

import (
	"errors"

	"github.com/alnah/go-exam2qti/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrReadExam = errors.New("cannot read exam file")

	// Exam validation errors.
	ErrNoCorrectAnswer = pipeline.ErrNoCorrectAnswer
	ErrInvalidPoints   = pipeline.ErrInvalidPoints
	ErrTooManyAnswers  = pipeline.ErrTooManyAnswers
)
