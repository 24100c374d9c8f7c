package pipeline

import "errors"

// Sentinel errors for exam parsing and formatting.
var (
	ErrNoCorrectAnswer = errors.New("question has no correct answer")
	ErrInvalidPoints   = errors.New("invalid points value")
	ErrTooManyAnswers  = errors.New("too many answers")
)
