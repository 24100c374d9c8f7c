package main

import (
	"context"
	"errors"
	"os"

	exam2qti "github.com/alnah/go-exam2qti"
	"github.com/alnah/go-exam2qti/internal/assets"
	"github.com/alnah/go-exam2qti/internal/config"
	"github.com/alnah/go-exam2qti/internal/hints"
	"github.com/alnah/go-exam2qti/internal/qti"
	"github.com/alnah/go-exam2qti/internal/report"
)

// Exit codes for the exam2qti CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or exam content
	ExitIO      = 3 // File not found, permission denied, missing image
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, report.ErrBrowserConnect) ||
		errors.Is(err, report.ErrPageCreate) ||
		errors.Is(err, report.ErrPageLoad) ||
		errors.Is(err, report.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, exam2qti.ErrNoCorrectAnswer) ||
		errors.Is(err, exam2qti.ErrInvalidPoints) ||
		errors.Is(err, exam2qti.ErrTooManyAnswers) ||
		errors.Is(err, qti.ErrParseText) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, exam2qti.ErrReadExam) ||
		errors.Is(err, qti.ErrImageNotFound) ||
		errors.Is(err, qti.ErrReadPackage) {
		return ExitIO
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or an empty string.
// Config lookup failures carry their hint from resolveConfig.
func hintFor(err error) string {
	switch {
	case errors.Is(err, report.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, report.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, assets.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, qti.ErrImageNotFound):
		return hints.ForImageNotFound(config.DefaultImageFolders)
	case errors.Is(err, exam2qti.ErrNoCorrectAnswer):
		return hints.ForNoCorrectAnswer()
	case errors.Is(err, exam2qti.ErrInvalidPoints):
		return hints.ForInvalidPoints()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
