package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-exam2qti/internal/config"
	"github.com/alnah/go-exam2qti/internal/hints"
)

// envPrefix starts every environment variable read by the CLI.
const envPrefix = "EXAM2QTI_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // EXAM2QTI_CONFIG: config file name or path
	Points     *int   // EXAM2QTI_POINTS: default points per question
	Topic      string // EXAM2QTI_TOPIC: default topic per question
	OutputDir  string // EXAM2QTI_OUTPUT_DIR: output directory
	Style      string // EXAM2QTI_STYLE: report style name
	Timeout    string // EXAM2QTI_TIMEOUT: PDF generation timeout
}

// knownEnvVars lists valid EXAM2QTI_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"EXAM2QTI_CONFIG":     true,
	"EXAM2QTI_POINTS":     true,
	"EXAM2QTI_TOPIC":      true,
	"EXAM2QTI_OUTPUT_DIR": true,
	"EXAM2QTI_STYLE":      true,
	"EXAM2QTI_TIMEOUT":    true,
	"EXAM2QTI_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable points are ignored with a warning.
func loadEnvConfig(logger *zap.Logger) *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("EXAM2QTI_CONFIG"),
		Topic:      os.Getenv("EXAM2QTI_TOPIC"),
		OutputDir:  os.Getenv("EXAM2QTI_OUTPUT_DIR"),
		Style:      os.Getenv("EXAM2QTI_STYLE"),
		Timeout:    os.Getenv("EXAM2QTI_TIMEOUT"),
	}

	if raw := os.Getenv("EXAM2QTI_POINTS"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p >= 0 {
			cfg.Points = &p
		} else {
			logger.Warn("ignoring invalid EXAM2QTI_POINTS", zap.String("value", raw))
		}
	}

	return cfg
}

// workersFromEnv returns EXAM2QTI_WORKERS, or 0 (auto) when unset or invalid.
func workersFromEnv(logger *zap.Logger) int {
	raw := os.Getenv("EXAM2QTI_WORKERS")
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || validateWorkers(n) != nil {
		logger.Warn("ignoring invalid EXAM2QTI_WORKERS", zap.String("value", raw))
		return 0
	}
	return n
}

// warnUnknownEnvVars logs warnings for unrecognized EXAM2QTI_* variables.
func warnUnknownEnvVars(logger *zap.Logger) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", zap.String("name", name))
		}
	}
}

// applyEnvConfig applies environment variable values over the config file.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by the commands).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Points != nil {
		cfg.Defaults.Points = env.Points
	}
	if env.Topic != "" {
		cfg.Defaults.Topic = env.Topic
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Style != "" {
		cfg.Report.Style = env.Style
	}
	if env.Timeout != "" {
		cfg.Report.Timeout = env.Timeout
	}
}

// resolveConfig loads the config named by --config or EXAM2QTI_CONFIG and
// applies environment overrides. Without either, defaults are used.
func resolveConfig(flags commonFlags, logger *zap.Logger) (*config.Config, error) {
	env := loadEnvConfig(logger)
	warnUnknownEnvVars(logger)

	name := flags.config
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
		logger.Debug("config loaded", zap.String("name", name))
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// mergeParseFlags applies exam parsing flags over cfg.
func mergeParseFlags(f parseFlags, cfg *config.Config) {
	if f.pointsSet {
		points := f.points
		cfg.Defaults.Points = &points
	}
	if f.topic != "" {
		cfg.Defaults.Topic = f.topic
	}
	if len(f.images) > 0 {
		cfg.Images.Folders = f.images
	}
}

// mergeReportFlags applies report flags over cfg.
func mergeReportFlags(f reportFlags, cfg *config.Config) {
	if f.style != "" {
		cfg.Report.Style = f.style
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.pdf {
		cfg.Report.PDF = true
	}
	if f.noAnswerKey {
		answerKey := false
		cfg.Report.AnswerKey = &answerKey
	}
	if f.timeout != "" {
		cfg.Report.Timeout = f.timeout
	}
}
