// Package exam2qti converts plain-text exams into the line-oriented quiz
// format consumed by QTI packagers.
//
// # Quick Start
//
//	svc := exam2qti.New()
//
//	result, err := svc.ConvertFile(ctx, "exams/week1.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("week1_t2q.txt", []byte(result.Normalized), 0644)
//
// # Exam Format
//
// An exam is UTF-8 text (an optional byte-order mark is ignored):
//
//	TITLE: Week 1 Quiz
//	SUBTITLE: Arithmetic
//	# comment lines are dropped
//	@ What is 2+2? | Points: 3 | Topic: Addition
//	$ 3
//	$ [correct] 4
//	@ Explain carrying in your own words.
//	% author note, never rendered
//
// Questions start with "@ " at the beginning of a line, answers with "$ ".
// A [correct] tag marks right answers; [fixed] marks an answer whose position
// must not be shuffled. A question without answers becomes an essay prompt.
// Runs of three or more underscores become a blank rule, and !(name)[width]
// references an image next to the exam.
//
// # Conversion Pipeline
//
//  1. Cleaning (byte-order mark, comments, empty lines, blank rules)
//  2. Header extraction (TITLE, SUBTITLE, INSTRUCTIONS; last one wins)
//  3. Block splitting on question starts
//  4. Question parsing (body, answers, Points, Topic)
//  5. Formatting (numbers, letters, correctness markers, validation)
//  6. Serialization and image path resolution
//
// A question with answers but none tagged [correct] aborts the conversion
// with ErrNoCorrectAnswer before anything is written.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := exam2qti.New(
//	    exam2qti.WithSettings(exam2qti.Settings{DefaultPoints: 1, DefaultTopic: "General"}),
//	    exam2qti.WithImageFolders("figures", "images"),
//	    exam2qti.WithLogger(logger),
//	)
package exam2qti
