package config

// Notes:
// - Tests that change the working directory or HOME do not call t.Parallel().
// - The unreadable-file case is skipped when running as root, where chmod 0000
//   does not prevent reading.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

// writeConfig writes content to dir/name and returns the path.
func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestDefaultConfig - Zero config resolves to built-in defaults
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if got := cfg.Defaults.PointsOrDefault(); got != DefaultPoints {
		t.Errorf("PointsOrDefault() = %d, want %d", got, DefaultPoints)
	}
	if got := cfg.Defaults.TopicOrDefault(); got != DefaultTopic {
		t.Errorf("TopicOrDefault() = %q, want %q", got, DefaultTopic)
	}
	if got := cfg.Images.FoldersOrDefault(); strings.Join(got, ",") != "images,pics" {
		t.Errorf("FoldersOrDefault() = %v, want [images pics]", got)
	}
	if got := cfg.Output.SuffixOrDefault(); got != "_t2q" {
		t.Errorf("SuffixOrDefault() = %q, want %q", got, "_t2q")
	}
	if got := cfg.Report.StyleOrDefault(); got != "default" {
		t.Errorf("StyleOrDefault() = %q, want %q", got, "default")
	}
	if !cfg.Report.ShowAnswerKey() {
		t.Error("ShowAnswerKey() = false, want true")
	}
	if got := cfg.Report.TimeoutOrDefault(); got != 30*time.Second {
		t.Errorf("TimeoutOrDefault() = %v, want 30s", got)
	}
	if cfg.Report.PDF {
		t.Error("Report.PDF = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestAccessors_Overrides(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Defaults: DefaultsConfig{Points: intPtr(0), Topic: "Algebra"},
		Images:   ImagesConfig{Folders: []string{"figures"}},
		Output:   OutputConfig{Suffix: "_canvas"},
		Report:   ReportConfig{Style: "compact", AnswerKey: boolPtr(false), Timeout: "2m"},
	}

	if got := cfg.Defaults.PointsOrDefault(); got != 0 {
		t.Errorf("PointsOrDefault() = %d, want 0", got)
	}
	if got := cfg.Defaults.TopicOrDefault(); got != "Algebra" {
		t.Errorf("TopicOrDefault() = %q, want %q", got, "Algebra")
	}
	if got := cfg.Images.FoldersOrDefault(); len(got) != 1 || got[0] != "figures" {
		t.Errorf("FoldersOrDefault() = %v, want [figures]", got)
	}
	if got := cfg.Output.SuffixOrDefault(); got != "_canvas" {
		t.Errorf("SuffixOrDefault() = %q", got)
	}
	if got := cfg.Report.StyleOrDefault(); got != "compact" {
		t.Errorf("StyleOrDefault() = %q", got)
	}
	if cfg.Report.ShowAnswerKey() {
		t.Error("ShowAnswerKey() = true, want false")
	}
	if got := cfg.Report.TimeoutOrDefault(); got != 2*time.Minute {
		t.Errorf("TimeoutOrDefault() = %v, want 2m", got)
	}
}

// ---------------------------------------------------------------------------
// TestValidateFieldLength - Length limit helper
// ---------------------------------------------------------------------------

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrFieldTooLong) {
				t.Fatalf("error = %v, want ErrFieldTooLong", err)
			}
			if !strings.Contains(err.Error(), "test.field") {
				t.Errorf("error %q should name the field", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Range and format checks
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "zero points allowed",
			cfg:  Config{Defaults: DefaultsConfig{Points: intPtr(0)}},
		},
		{
			name:    "negative points",
			cfg:     Config{Defaults: DefaultsConfig{Points: intPtr(-1)}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "topic too long",
			cfg:     Config{Defaults: DefaultsConfig{Topic: strings.Repeat("t", MaxTopicLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "blank image folder",
			cfg:     Config{Images: ImagesConfig{Folders: []string{"images", " "}}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "suffix with separator",
			cfg:     Config{Output: OutputConfig{Suffix: "../x"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "suffix too long",
			cfg:     Config{Output: OutputConfig{Suffix: strings.Repeat("s", MaxSuffixLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "unparsable timeout",
			cfg:     Config{Report: ReportConfig{Timeout: "soon"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "zero timeout",
			cfg:     Config{Report: ReportConfig{Timeout: "0s"}},
			wantErr: ErrInvalidValue,
		},
		{
			name: "valid full config",
			cfg: Config{
				Defaults: DefaultsConfig{Points: intPtr(5), Topic: "Geometry"},
				Images:   ImagesConfig{Folders: []string{"figs"}},
				Output:   OutputConfig{Suffix: "_lms", Dir: "out"},
				Report:   ReportConfig{Style: "compact", PDF: true, Timeout: "45s"},
				Assets:   AssetsConfig{BasePath: "./assets"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading and name resolution
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "exam.yaml", `defaults:
  points: 3
  topic: "Fractions"
images:
  folders: ["figures", "images"]
output:
  suffix: "_canvas"
report:
  style: compact
  pdf: true
  answerKey: false
  timeout: 1m
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if got := cfg.Defaults.PointsOrDefault(); got != 3 {
			t.Errorf("points = %d, want 3", got)
		}
		if cfg.Defaults.Topic != "Fractions" {
			t.Errorf("topic = %q, want %q", cfg.Defaults.Topic, "Fractions")
		}
		if len(cfg.Images.Folders) != 2 || cfg.Images.Folders[0] != "figures" {
			t.Errorf("folders = %v", cfg.Images.Folders)
		}
		if cfg.Output.Suffix != "_canvas" {
			t.Errorf("suffix = %q", cfg.Output.Suffix)
		}
		if !cfg.Report.PDF || cfg.Report.ShowAnswerKey() {
			t.Errorf("report = %+v", cfg.Report)
		}
		if cfg.Report.TimeoutOrDefault() != time.Minute {
			t.Errorf("timeout = %v, want 1m", cfg.Report.TimeoutOrDefault())
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "invalid.yaml", "images: [unclosed")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "unknown.yaml", "defaults:\n  pointz: 3\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("validation runs after parsing", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "negative.yaml", "defaults:\n  points: -2\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("unreadable file returns read error not ErrConfigNotFound", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root can read files with mode 0000")
		}
		path := writeConfig(t, t.TempDir(), "unreadable.yaml", "defaults:\n  points: 1\n")
		if err := os.Chmod(path, 0000); err != nil {
			t.Fatalf("setup chmod: %v", err)
		}
		defer os.Chmod(path, 0600)

		_, err := LoadConfig(path)
		if err == nil {
			t.Fatal("expected error for unreadable file")
		}
		if errors.Is(err, ErrConfigNotFound) {
			t.Error("error should not be ErrConfigNotFound for permission error")
		}
	})

	t.Run("config name resolves yml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "myconfig.yml", "defaults:\n  topic: fromname\n")

		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Defaults.Topic != "fromname" {
			t.Errorf("topic = %q, want %q", cfg.Defaults.Topic, "fromname")
		}
	})

	t.Run("unknown name lists searched paths", func(t *testing.T) {
		_, err := LoadConfig("does-not-exist-xyz")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "does-not-exist-xyz.yaml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	paths := SearchPaths("exam")

	if len(paths) < 2 || paths[0] != "exam.yaml" || paths[1] != "exam.yml" {
		t.Fatalf("SearchPaths() = %v, want local paths first", paths)
	}
	found := false
	for _, p := range paths {
		if strings.Contains(filepath.ToSlash(p), "go-exam2qti/exam.yaml") {
			found = true
		}
	}
	if !found {
		t.Errorf("SearchPaths() = %v, want user config dir entry", paths)
	}
}
