package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-exam2qti/internal/fileutil"
	"github.com/alnah/go-exam2qti/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTopicLength  = 100
	MaxFolderLength = 255
	MaxSuffixLength = 50
	MaxPathLength   = 4096
	MaxStyleLength  = 100
)

// Built-in defaults.
const (
	DefaultPoints  = 2
	DefaultTopic   = "??"
	DefaultSuffix  = "_t2q"
	DefaultStyle   = "default"
	DefaultTimeout = "30s"
)

// DefaultImageFolders are searched, in order, next to the exam file.
var DefaultImageFolders = []string{"images", "pics"}

// appDirName is the directory under the user config dir holding named configs.
const appDirName = "go-exam2qti"

// Config holds all configuration for exam conversion.
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Images   ImagesConfig   `yaml:"images"`
	Output   OutputConfig   `yaml:"output"`
	Report   ReportConfig   `yaml:"report"`
	Assets   AssetsConfig   `yaml:"assets"`
}

// DefaultsConfig holds values applied to questions that omit a field.
type DefaultsConfig struct {
	Points *int   `yaml:"points"` // nil = DefaultPoints
	Topic  string `yaml:"topic"`  // empty = DefaultTopic
}

// ImagesConfig defines where exam images are looked up.
type ImagesConfig struct {
	Folders []string `yaml:"folders"` // Relative to the exam file, first existing wins
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Suffix string `yaml:"suffix"` // Appended to the exam stem (default: "_t2q")
	Dir    string `yaml:"dir"`    // Empty = same directory as source
}

// ReportConfig defines the optional printable report.
type ReportConfig struct {
	Style     string `yaml:"style"`     // Asset style name (default: "default")
	PDF       bool   `yaml:"pdf"`       // Print the report to PDF
	AnswerKey *bool  `yaml:"answerKey"` // nil = true
	Timeout   string `yaml:"timeout"`   // Go duration (default: "30s")
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PointsOrDefault returns the configured default points.
func (d DefaultsConfig) PointsOrDefault() int {
	if d.Points == nil {
		return DefaultPoints
	}
	return *d.Points
}

// TopicOrDefault returns the configured default topic.
func (d DefaultsConfig) TopicOrDefault() string {
	if d.Topic == "" {
		return DefaultTopic
	}
	return d.Topic
}

// FoldersOrDefault returns the configured image folders.
func (i ImagesConfig) FoldersOrDefault() []string {
	if len(i.Folders) == 0 {
		return DefaultImageFolders
	}
	return i.Folders
}

// SuffixOrDefault returns the configured output suffix.
func (o OutputConfig) SuffixOrDefault() string {
	if o.Suffix == "" {
		return DefaultSuffix
	}
	return o.Suffix
}

// StyleOrDefault returns the configured report style.
func (r ReportConfig) StyleOrDefault() string {
	if r.Style == "" {
		return DefaultStyle
	}
	return r.Style
}

// ShowAnswerKey reports whether correct answers are marked in the report.
func (r ReportConfig) ShowAnswerKey() bool {
	return r.AnswerKey == nil || *r.AnswerKey
}

// TimeoutOrDefault returns the report timeout. Validate guarantees it parses.
func (r ReportConfig) TimeoutOrDefault() time.Duration {
	raw := r.Timeout
	if raw == "" {
		raw = DefaultTimeout
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		d, _ = time.ParseDuration(DefaultTimeout)
	}
	return d
}

// Validate checks value ranges and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if c.Defaults.Points != nil && *c.Defaults.Points < 0 {
		return fmt.Errorf("%w: defaults.points must be >= 0, got %d", ErrInvalidValue, *c.Defaults.Points)
	}
	if err := validateFieldLength("defaults.topic", c.Defaults.Topic, MaxTopicLength); err != nil {
		return err
	}

	for i, folder := range c.Images.Folders {
		field := fmt.Sprintf("images.folders[%d]", i)
		if strings.TrimSpace(folder) == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidValue, field)
		}
		if err := validateFieldLength(field, folder, MaxFolderLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("output.suffix", c.Output.Suffix, MaxSuffixLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.Output.Suffix, "/\\\x00") {
		return fmt.Errorf("%w: output.suffix %q contains a path separator", ErrInvalidValue, c.Output.Suffix)
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("report.style", c.Report.Style, MaxStyleLength); err != nil {
		return err
	}
	if c.Report.Timeout != "" {
		d, err := time.ParseDuration(c.Report.Timeout)
		if err != nil {
			return fmt.Errorf("%w: report.timeout %q: %v", ErrInvalidValue, c.Report.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: report.timeout must be positive, got %s", ErrInvalidValue, c.Report.Timeout)
		}
	}

	return validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration where every field takes its default.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.ReadFile(configPath, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns the locations LoadConfig tries for a config name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-exam2qti/
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing search path for name.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, path := range tried {
		if fileutil.FileExists(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
