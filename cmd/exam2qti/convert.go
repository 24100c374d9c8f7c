package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	exam2qti "github.com/alnah/go-exam2qti"
	"github.com/alnah/go-exam2qti/internal/config"
	"github.com/alnah/go-exam2qti/internal/fileutil"
	"github.com/alnah/go-exam2qti/internal/hints"
	"github.com/alnah/go-exam2qti/internal/qti"
	"github.com/alnah/go-exam2qti/internal/report"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrNoInput     = errors.New("no input specified")
	ErrWriteOutput = errors.New("failed to write output file")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// ConversionResult holds the outcome of a single exam conversion.
type ConversionResult struct {
	InputPath string
	Outputs   []string
	Warnings  []string
	Err       error
	Duration  time.Duration
}

// runConvertCmd parses flags and converts every exam given as argument.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, files, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		printConvertUsage(env.Stderr)
		return ErrNoInput
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	defer func() { _ = logger.Sync() }()
	setMaxProcs(logger)

	cfg, err := resolveConfig(flags.common, logger)
	if err != nil {
		return err
	}
	mergeParseFlags(flags.parse, cfg)
	mergeReportFlags(flags.report, cfg)
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.suffix != "" {
		cfg.Output.Suffix = flags.suffix
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	return runConvert(ctx, files, flags, cfg, env, logger)
}

// runConvert converts files in parallel and prints one line per result.
// Input, output and asset paths are made absolute before any worker starts:
// packaging changes the process working directory.
func runConvert(ctx context.Context, files []string, flags *convertFlags, cfg *config.Config, env *Environment, logger *zap.Logger) error {
	absFiles, err := fileutil.AbsPaths(files...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if err := anchorConfigPaths(cfg); err != nil {
		return err
	}
	if cfg.Output.Dir != "" {
		if err := os.MkdirAll(cfg.Output.Dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	svc := newService(cfg, logger)
	packager := qti.NewPackager(qti.WithLogger(logger))
	workers := flags.workers
	if workers == 0 {
		workers = workersFromEnv(logger)
	}
	workers = resolvePoolSize(workers)

	var pool *writerPool
	if flags.html || cfg.Report.PDF {
		pool = newWriterPool(workers, func() (*reportWriter, error) {
			return newReportWriter(cfg, flags.html, logger)
		})
		defer func() { _ = pool.Close() }()
	}

	logger.Debug("converting", zap.Int("files", len(files)), zap.Int("workers", workers))
	results := runBatch(ctx, absFiles, workers, pool, func(ctx context.Context, path string, reports *reportWriter) ConversionResult {
		return convertFile(ctx, path, svc, packager, reports, flags, cfg, env)
	})
	for i := range results {
		results[i].InputPath = files[i]
	}

	return printResults(results, flags.common, env)
}

// anchorConfigPaths makes the configured output and asset directories absolute.
func anchorConfigPaths(cfg *config.Config) error {
	abs, err := fileutil.AbsPaths(cfg.Output.Dir, cfg.Assets.BasePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	cfg.Output.Dir, cfg.Assets.BasePath = abs[0], abs[1]
	return nil
}

// newService builds the conversion service from cfg.
func newService(cfg *config.Config, logger *zap.Logger) *exam2qti.Service {
	return exam2qti.New(
		exam2qti.WithSettings(exam2qti.Settings{
			DefaultPoints: cfg.Defaults.PointsOrDefault(),
			DefaultTopic:  cfg.Defaults.TopicOrDefault(),
		}),
		exam2qti.WithImageFolders(cfg.Images.FoldersOrDefault()...),
		exam2qti.WithLogger(logger),
	)
}

// convertFile runs one exam through the pipeline, the packager and the
// optional report. Nothing is written when the exam fails validation.
func convertFile(ctx context.Context, path string, svc *exam2qti.Service, packager *qti.Packager,
	reports *reportWriter, flags *convertFlags, cfg *config.Config, env *Environment,
) ConversionResult {
	start := env.Now()
	result := ConversionResult{InputPath: path}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = env.Now().Sub(start)
		return result
	}

	converted, err := svc.ConvertFile(ctx, path)
	if err != nil {
		return fail(err)
	}
	if len(converted.Questions) == 0 {
		result.Warnings = append(result.Warnings, "no questions found"+hints.ForNoQuestions())
	}

	quiz, err := qti.ParseText(converted.Normalized)
	if err != nil {
		return fail(fmt.Errorf("%s: %w", path, err))
	}
	markFixed(quiz, converted.Questions)

	paths := exam2qti.OutputPaths(path, cfg.Output.Dir, cfg.Output.SuffixOrDefault())
	if err := os.WriteFile(paths.Text, []byte(converted.Normalized), filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}
	result.Outputs = append(result.Outputs, paths.Text)

	if !flags.noPackage {
		if err := writePackage(ctx, packager, quiz, paths); err != nil {
			return fail(fmt.Errorf("%s: %w", path, err))
		}
		result.Outputs = append(result.Outputs, paths.Package)
	}

	if reports != nil {
		opts := report.Options{
			Instructions: converted.Header.Instructions,
			Topics:       topicsByNumber(converted.Questions),
		}
		written, err := reports.write(ctx, quiz, opts, paths.Report, paths.PDF)
		if err != nil {
			return fail(fmt.Errorf("%s: %w", path, err))
		}
		result.Outputs = append(result.Outputs, written...)
	}

	result.Duration = env.Now().Sub(start)
	return result
}

// writePackage writes the quiz archive with the working directory set to
// the folder of the normalized text, so relative image paths resolve there.
// paths must be absolute.
func writePackage(ctx context.Context, packager *qti.Packager, quiz *qti.Quiz, paths exam2qti.Paths) error {
	return fileutil.WithWorkingDir(filepath.Dir(paths.Text), func() error {
		return packager.WriteFile(ctx, quiz, paths.Package)
	})
}

// markFixed carries the fixed-position flags, which the text format does
// not hold, from the parsed exam to the quiz.
func markFixed(quiz *qti.Quiz, questions []exam2qti.Question) {
	for _, q := range questions {
		for _, c := range q.Choices {
			if c.Fixed {
				quiz.SetFixed(q.Number, c.Letter)
			}
		}
	}
}

// topicsByNumber returns the topic of each question keyed by number.
func topicsByNumber(questions []exam2qti.Question) map[int]string {
	topics := make(map[int]string, len(questions))
	for _, q := range questions {
		topics[q.Number] = q.Topic
	}
	return topics
}

// printResults outputs conversion results and returns an error when any
// conversion failed. A single failure is returned as is.
func printResults(results []ConversionResult, flags commonFlags, env *Environment) error {
	var (
		failed   int
		firstErr error
	)

	for _, r := range results {
		if r.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
			if len(results) > 1 {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			}
			continue
		}

		if flags.quiet {
			continue
		}
		for _, warn := range r.Warnings {
			fmt.Fprintf(env.Stderr, "warning: %s: %s\n", r.InputPath, warn)
		}
		for _, out := range r.Outputs {
			if flags.verbose {
				fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, out, r.Duration.Round(time.Millisecond))
			} else {
				fmt.Fprintf(env.Stdout, "Created %s\n", out)
			}
		}
	}

	if !flags.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}

	switch {
	case failed == 0:
		return nil
	case len(results) == 1:
		return firstErr
	default:
		return fmt.Errorf("%d of %d conversions failed: %w", failed, len(results), firstErr)
	}
}
