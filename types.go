package exam2qti

import (
	"go.uber.org/zap"

	"github.com/alnah/go-exam2qti/internal/config"
	"github.com/alnah/go-exam2qti/internal/pipeline"
)

// Header holds the exam title, subtitle and instructions.
type Header = pipeline.Header

// Record is a parsed question before numbering and lettering.
type Record = pipeline.Record

// Question is a numbered question with lettered answers.
type Question = pipeline.Formatted

// Choice is one lettered answer of a Question.
type Choice = pipeline.Choice

// Settings holds the values applied to questions that omit a field.
type Settings = pipeline.Settings

// DefaultSettings returns the configuration defaults: 2 points, topic "??".
func DefaultSettings() Settings {
	defaults := config.DefaultConfig().Defaults
	return Settings{
		DefaultPoints: defaults.PointsOrDefault(),
		DefaultTopic:  defaults.TopicOrDefault(),
	}
}

// DefaultImageFolders are searched, in order, next to the exam file.
var DefaultImageFolders = []string{"images", "pics"}

// Input contains the data for a single conversion.
type Input struct {
	Text       string // Raw exam text (required)
	SourceName string // Exam file name; its stem is the fallback title
	ImageDir   string // Base for image references; empty means the directory of SourceName
}

// Result contains the outputs of a conversion.
type Result struct {
	Header     Header
	Questions  []Question
	Normalized string // Quiz text ready for the packager
}

// TotalPoints returns the sum of question points.
func (r *Result) TotalPoints() int {
	total := 0
	for _, q := range r.Questions {
		total += q.Points
	}
	return total
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	settings     Settings
	imageFolders []string
}

// WithSettings sets the default points and topic.
// Panics if DefaultPoints is negative (programmer error).
func WithSettings(settings Settings) Option {
	if settings.DefaultPoints < 0 {
		panic("exam2qti: WithSettings DefaultPoints must be >= 0")
	}
	return func(s *Service) {
		s.cfg.settings = settings
	}
}

// WithImageFolders sets the folder names searched next to the exam file.
func WithImageFolders(folders ...string) Option {
	return func(s *Service) {
		if len(folders) > 0 {
			s.cfg.imageFolders = append([]string(nil), folders...)
		}
	}
}

// WithLogger sets the logger for warnings and debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
