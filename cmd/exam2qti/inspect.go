package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	exam2qti "github.com/alnah/go-exam2qti"
	"github.com/alnah/go-exam2qti/internal/yamlutil"
)

// inspectDocument is the YAML form of a parsed exam.
type inspectDocument struct {
	Source      string              `yaml:"source"`
	Header      exam2qti.Header     `yaml:"header"`
	TotalPoints int                 `yaml:"totalPoints"`
	Questions   []exam2qti.Question `yaml:"questions"`
}

// runInspectCmd parses exams and prints what would be packaged, without
// writing any file. Validation errors are reported as in convert.
func runInspectCmd(ctx context.Context, args []string, env *Environment) error {
	flags, files, err := parseInspectFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		printInspectUsage(env.Stderr)
		return ErrNoInput
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	defer func() { _ = logger.Sync() }()

	cfg, err := resolveConfig(flags.common, logger)
	if err != nil {
		return err
	}
	mergeParseFlags(flags.parse, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	svc := newService(cfg, logger)
	for i, path := range files {
		result, err := svc.ConvertFile(ctx, path)
		if err != nil {
			return err
		}

		if flags.yaml {
			if i > 0 {
				fmt.Fprintln(env.Stdout, "---")
			}
			if err := printInspectYAML(env.Stdout, path, result); err != nil {
				return err
			}
			continue
		}

		if i > 0 {
			fmt.Fprintln(env.Stdout)
		}
		printInspectSummary(env.Stdout, path, result)
	}

	return nil
}

// printInspectYAML writes the parsed exam as a YAML document.
func printInspectYAML(w io.Writer, path string, result *exam2qti.Result) error {
	out, err := yamlutil.Marshal(inspectDocument{
		Source:      path,
		Header:      result.Header,
		TotalPoints: result.TotalPoints(),
		Questions:   result.Questions,
	})
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	_, err = w.Write(out)
	return err
}

// printInspectSummary writes one line per question.
func printInspectSummary(w io.Writer, path string, result *exam2qti.Result) {
	title := result.Header.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(w, "%s: %s\n", path, title)
	if result.Header.Subtitle != "" {
		fmt.Fprintf(w, "  %s\n", result.Header.Subtitle)
	}
	fmt.Fprintf(w, "  %d questions, %d points\n", len(result.Questions), result.TotalPoints())

	for _, q := range result.Questions {
		kind := "essay"
		if !q.Essay() {
			var correct []string
			for _, c := range q.Choices {
				if c.Correct {
					correct = append(correct, c.Letter)
				}
			}
			kind = fmt.Sprintf("%d answers, correct: %s", len(q.Answers), strings.Join(correct, ","))
		}
		fmt.Fprintf(w, "  %3d. [%d pts, %s] %s (%s)\n", q.Number, q.Points, q.Topic, firstLine(q.Question), kind)
	}
}

// firstLine returns the question text up to its first line break, without
// its number prefix, shortened for display.
func firstLine(question string) string {
	const max = 60

	line, _, _ := strings.Cut(question, "\n")
	if _, rest, ok := strings.Cut(line, ". "); ok {
		line = rest
	}
	line, _, _ = strings.Cut(line, "<br>")

	runes := []rune(line)
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return line
}
