package main

// Notes:
// - Tests use black-box approach: testing through runDoctorCmd() observable outputs.
// - Container detection tests modify environment variables, cannot use t.Parallel().
// - Chrome detection depends on system state: a missing browser is a warning,
//   so the exit code only depends on the temp dir, config and assets.

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_JSONOutput - JSON output format and structure
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSONOutput(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	env := &Environment{Stdout: &stdout, Stderr: &stderr}

	exitCode := runDoctorCmd([]string{"--json"}, env)

	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\noutput was: %s", err, stdout.String())
	}

	if result.Env.OS != runtime.GOOS || result.Env.Arch != runtime.GOARCH {
		t.Errorf("platform = %s/%s", result.Env.OS, result.Env.Arch)
	}
	validStatuses := map[string]bool{statusReady: true, statusWarnings: true, statusErrors: true}
	if !validStatuses[result.Status] {
		t.Errorf("invalid status %q", result.Status)
	}
	if strings.Join(result.System.Styles, ",") != "compact,default" {
		t.Errorf("styles = %v, want embedded styles", result.System.Styles)
	}
	if result.Status != statusErrors && exitCode != ExitSuccess {
		t.Errorf("exit code = %d for status %q", exitCode, result.Status)
	}
	if !result.Chrome.Found && result.Status == statusReady {
		t.Error("missing Chrome should produce a warning")
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_HumanOutput - Text report
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_HumanOutput(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	env := &Environment{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	runDoctorCmd(nil, env)

	for _, section := range []string{"exam2qti doctor", "Chrome/Chromium", "Environment", "System", "Status:"} {
		if !strings.Contains(stdout.String(), section) {
			t.Errorf("output missing %q:\n%s", section, stdout.String())
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_Container - Container detection via env override
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_Container(t *testing.T) {
	t.Setenv("EXAM2QTI_CONTAINER", "1")
	t.Setenv("ROD_NO_SANDBOX", "")

	var stdout bytes.Buffer
	runDoctorCmd([]string{"--json"}, &Environment{Stdout: &stdout, Stderr: &bytes.Buffer{}})

	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !result.Env.Container || result.Env.ContainerHint != "EXAM2QTI_CONTAINER=1" {
		t.Errorf("container = %v (%q)", result.Env.Container, result.Env.ContainerHint)
	}
	if !strings.Contains(strings.Join(result.Warnings, "\n"), "ROD_NO_SANDBOX") {
		t.Errorf("warnings = %v, want sandbox warning", result.Warnings)
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_Config - Config named by the environment
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_Config(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode int
	}{
		{"valid config", "defaults:\n  points: 3\n", -1},
		{"invalid config", "defaults:\n  points: -3\n", ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "course.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			t.Setenv("EXAM2QTI_CONFIG", path)

			var stdout bytes.Buffer
			code := runDoctorCmd([]string{"--json"}, &Environment{Stdout: &stdout, Stderr: &bytes.Buffer{}})

			var result doctorResult
			if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if result.Env.Config != path {
				t.Errorf("config = %q, want %q", result.Env.Config, path)
			}
			if tt.wantCode >= 0 && code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			hasConfigError := strings.Contains(strings.Join(result.Errors, "\n"), "Config ")
			if hasConfigError != (tt.wantCode == ExitGeneral) {
				t.Errorf("errors = %v", result.Errors)
			}
		})
	}
}
