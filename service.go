package exam2qti

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/alnah/go-exam2qti/internal/fileutil"
	"github.com/alnah/go-exam2qti/internal/pipeline"
)

// Service orchestrates the exam-to-quiz pipeline.
// A Service holds no per-conversion state and is safe for concurrent use.
type Service struct {
	cfg    serviceConfig
	logger *zap.Logger
}

// New creates a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			settings:     DefaultSettings(),
			imageFolders: DefaultImageFolders,
		},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Convert runs the pipeline on in-memory text.
// The context is checked between stages.
func (s *Service) Convert(ctx context.Context, input Input) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := pipeline.Clean(input.Text)
	header := pipeline.ExtractHeader(text)

	records, err := pipeline.ParseQuestions(pipeline.StripHeaderLines(text), s.cfg.settings)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		s.logger.Warn("no questions found", zap.String("source", input.SourceName))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	questions, err := pipeline.FormatRecords(records)
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		s.logger.Debug("question parsed",
			zap.Int("number", q.Number),
			zap.Int("points", q.Points),
			zap.String("topic", q.Topic),
			zap.Int("answers", len(q.Answers)),
		)
	}

	imageDir := input.ImageDir
	if imageDir == "" {
		imageDir = filepath.Dir(input.SourceName)
	}
	normalized, err := pipeline.ResolveImages(
		pipeline.Serialize(header, fileutil.Stem(input.SourceName), questions),
		imageDir,
	)
	if err != nil {
		return nil, err
	}

	return &Result{
		Header:     header,
		Questions:  questions,
		Normalized: normalized,
	}, nil
}

// ConvertFile reads the exam at path, resolves its image folder and converts it.
// A missing image folder is not an error: the exam's own directory is used
// and a warning is logged.
func (s *Service) ConvertFile(ctx context.Context, path string) (*Result, error) {
	text, err := ReadExamFile(path)
	if err != nil {
		return nil, err
	}

	imageDir, found := ResolveImageDir(path, s.cfg.imageFolders)
	if !found {
		s.logger.Warn("no image folder found, using exam directory",
			zap.Strings("searched", s.cfg.imageFolders),
			zap.String("dir", imageDir),
		)
	}

	result, err := s.Convert(ctx, Input{
		Text:       text,
		SourceName: path,
		ImageDir:   imageDir,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}
