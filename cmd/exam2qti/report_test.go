package main

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alnah/go-exam2qti/internal/config"
)

// ---------------------------------------------------------------------------
// TestNewReportWriter - Asset override detection
// ---------------------------------------------------------------------------

func TestNewReportWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		basePath func(t *testing.T) string
		wantLogs int
	}{
		{
			name:     "embedded assets only",
			basePath: func(t *testing.T) string { return "" },
			wantLogs: 0,
		},
		{
			name:     "custom asset directory",
			basePath: func(t *testing.T) string { return t.TempDir() },
			wantLogs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			cfg.Assets.BasePath = tt.basePath(t)
			core, logs := observer.New(zapcore.DebugLevel)

			w, err := newReportWriter(cfg, true, zap.New(core))
			if err != nil {
				t.Fatalf("newReportWriter() error = %v", err)
			}
			if w.pdf != nil {
				t.Error("pdf converter created without --pdf")
			}
			if got := logs.FilterMessage("report assets override").Len(); got != tt.wantLogs {
				t.Errorf("override logs = %d, want %d", got, tt.wantLogs)
			}
		})
	}
}
