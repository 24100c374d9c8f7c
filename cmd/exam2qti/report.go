package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/alnah/go-exam2qti/internal/assets"
	"github.com/alnah/go-exam2qti/internal/config"
	"github.com/alnah/go-exam2qti/internal/fileutil"
	"github.com/alnah/go-exam2qti/internal/qti"
	"github.com/alnah/go-exam2qti/internal/report"
)

// reportWriter renders quiz reports to HTML and, when configured, PDF.
type reportWriter struct {
	renderer *report.Renderer
	pdf      *report.PDFConverter // nil unless PDF output is enabled
	html     bool
	cfg      *config.Config
	logger   *zap.Logger
}

// newReportWriter creates a reportWriter from cfg. HTML is written when html
// is set; PDF when cfg.Report.PDF is set.
func newReportWriter(cfg *config.Config, html bool, logger *zap.Logger) (*reportWriter, error) {
	loader, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return nil, err
	}
	if loader.HasCustomLoader() {
		logger.Debug("report assets override", zap.String("path", cfg.Assets.BasePath))
	}

	w := &reportWriter{
		renderer: report.NewRenderer(loader, logger),
		html:     html,
		cfg:      cfg,
		logger:   logger,
	}
	if cfg.Report.PDF {
		w.pdf = report.NewPDFConverter(cfg.Report.TimeoutOrDefault())
	}
	return w, nil
}

// write renders quiz and writes the enabled outputs, returning their paths.
func (w *reportWriter) write(ctx context.Context, quiz *qti.Quiz, opts report.Options, htmlPath, pdfPath string) ([]string, error) {
	opts.Style = w.cfg.Report.StyleOrDefault()
	opts.AnswerKey = w.cfg.Report.ShowAnswerKey()

	document, err := w.renderer.Render(ctx, quiz, opts)
	if err != nil {
		return nil, err
	}

	var written []string
	if w.html {
		if err := os.WriteFile(htmlPath, document, filePermissions); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		written = append(written, htmlPath)
	}

	if w.pdf != nil {
		pdfCtx, cancel := context.WithTimeout(ctx, w.cfg.Report.TimeoutOrDefault())
		defer cancel()

		w.logger.Debug("printing PDF", zap.String("path", pdfPath))
		pdf, err := w.pdf.ToPDF(pdfCtx, document, quiz.Title)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(pdfPath, pdf, filePermissions); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		written = append(written, pdfPath)
	}

	return written, nil
}

// Close releases the browser, if one was started.
func (w *reportWriter) Close() error {
	if w.pdf != nil {
		return w.pdf.Close()
	}
	return nil
}

// runReportCmd renders reports from quiz packages.
func runReportCmd(ctx context.Context, args []string, env *Environment) error {
	flags, files, err := parseReportFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		printReportUsage(env.Stderr)
		return ErrNoInput
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	defer func() { _ = logger.Sync() }()
	setMaxProcs(logger)

	cfg, err := resolveConfig(flags.common, logger)
	if err != nil {
		return err
	}
	mergeReportFlags(flags.report, cfg)
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Output.Dir != "" {
		if err := os.MkdirAll(cfg.Output.Dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	workers := flags.workers
	if workers == 0 {
		workers = workersFromEnv(logger)
	}
	workers = resolvePoolSize(workers)

	// The report command always produces a document: HTML unless PDF was asked for.
	pool := newWriterPool(workers, func() (*reportWriter, error) {
		return newReportWriter(cfg, !cfg.Report.PDF, logger)
	})
	defer func() { _ = pool.Close() }()

	results := runBatch(ctx, files, workers, pool, func(ctx context.Context, path string, writer *reportWriter) ConversionResult {
		return reportPackage(ctx, path, writer, cfg, env)
	})

	return printResults(results, flags.common, env)
}

// reportPackage writes the reports of every assessment in one package.
// Packages holding several assessments get numbered output names.
func reportPackage(ctx context.Context, path string, writer *reportWriter, cfg *config.Config, env *Environment) ConversionResult {
	start := env.Now()
	result := ConversionResult{InputPath: path}

	quizzes, err := qti.ReadPackage(path)
	if err != nil {
		result.Err = err
		return result
	}

	for i, quiz := range quizzes {
		suffix := ""
		if len(quizzes) > 1 {
			suffix = "_" + strconv.Itoa(i+1)
		}
		htmlPath := fileutil.SiblingPath(path, cfg.Output.Dir, suffix, ".html")
		pdfPath := fileutil.SiblingPath(path, cfg.Output.Dir, suffix, ".pdf")

		written, err := writer.write(ctx, quiz, report.Options{BaseDir: filepath.Dir(path)}, htmlPath, pdfPath)
		if err != nil {
			result.Err = fmt.Errorf("%s: %w", path, err)
			return result
		}
		result.Outputs = append(result.Outputs, written...)
	}

	result.Duration = env.Now().Sub(start)
	return result
}
