// Package pipeline turns a loosely structured plain-text exam into the
// normalized line-oriented text consumed by the quiz packager.
//
// The stages run in order, each a pure text transformation:
//   - Clean: byte-order mark removal, blank-rule placeholders, comment lines
//   - ExtractHeader / StripHeaderLines: TITLE, SUBTITLE and INSTRUCTIONS lines
//   - SplitBlocks: one block per question-start line
//   - ParseBlock / ParseQuestions: question body, answers, points and topic
//   - FormatRecord: numbering, answer letters, correctness markers
//   - Serialize: the packager text
//   - ResolveImages: image references rewritten to absolute paths
//
// Line classification is an explicit state machine over lines (header region
// before the first question, question region after it), so header
// last-occurrence-wins and block boundaries can be tested line by line.
package pipeline
