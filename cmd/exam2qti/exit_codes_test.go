package main

// Notes:
// - exitCodeFor: we test the sentinel errors of every package the CLI calls,
//   plus wrapped errors to verify the errors.Is() chain.
// - hintFor: we test that each hinted error gets a hint and others do not.
//   Browser hints depend on CI/container detection and are covered in hints.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	exam2qti "github.com/alnah/go-exam2qti"
	"github.com/alnah/go-exam2qti/internal/assets"
	"github.com/alnah/go-exam2qti/internal/config"
	"github.com/alnah/go-exam2qti/internal/qti"
	"github.com/alnah/go-exam2qti/internal/report"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", report.ErrBrowserConnect, ExitBrowser},
		{"page create", report.ErrPageCreate, ExitBrowser},
		{"page load", report.ErrPageLoad, ExitBrowser},
		{"pdf generation", report.ErrPDFGeneration, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("exam.txt: %w", report.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read exam", exam2qti.ErrReadExam, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"image not found", qti.ErrImageNotFound, ExitIO},
		{"read package", qti.ErrReadPackage, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"no correct answer", exam2qti.ErrNoCorrectAnswer, ExitUsage},
		{"invalid points", exam2qti.ErrInvalidPoints, ExitUsage},
		{"too many answers", exam2qti.ErrTooManyAnswers, ExitUsage},
		{"parse text", qti.ErrParseText, ExitUsage},
		{"style not found", assets.ErrStyleNotFound, ExitUsage},
		{"template not found", assets.ErrTemplateNotFound, ExitUsage},
		{"invalid asset name", assets.ErrInvalidAssetName, ExitUsage},
		{"invalid base path", assets.ErrInvalidBasePath, ExitUsage},
		{"batch of validation errors", fmt.Errorf("1 of 2 conversions failed: %w", exam2qti.ErrNoCorrectAnswer), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("something else"), ExitGeneral},
		{"render error", report.ErrRender, ExitGeneral},
		{"cancelled", context.Canceled, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Conventions(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes 0, 1 and 2 must follow Unix conventions")
	}
	for _, code := range []int{ExitIO, ExitBrowser} {
		if code >= 126 {
			t.Errorf("custom exit code %d must be below 126", code)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantHint string // empty means no hint
	}{
		{"timeout", fmt.Errorf("printing: %w", context.DeadlineExceeded), "--timeout"},
		{"page load", report.ErrPageLoad, "--timeout"},
		{"style not found", assets.ErrStyleNotFound, "compact, default"},
		{"image not found", qti.ErrImageNotFound, "images or pics"},
		{"no correct answer", exam2qti.ErrNoCorrectAnswer, "[correct]"},
		{"invalid points", exam2qti.ErrInvalidPoints, "Points:"},
		{"write output", ErrWriteOutput, "writable"},
		{"unknown", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.wantHint == "" {
				if got != "" {
					t.Errorf("hintFor(%v) = %q, want none", tt.err, got)
				}
				return
			}
			if !strings.HasPrefix(got, "\n  hint: ") || !strings.Contains(got, tt.wantHint) {
				t.Errorf("hintFor(%v) = %q, want hint containing %q", tt.err, got, tt.wantHint)
			}
		})
	}
}
