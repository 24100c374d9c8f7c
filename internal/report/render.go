// Package report renders quizzes as printable HTML documents and, through a
// headless browser, as PDF.
package report

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/alnah/go-exam2qti/internal/assets"
	"github.com/alnah/go-exam2qti/internal/markup"
	"github.com/alnah/go-exam2qti/internal/qti"
)

// Options controls a single report.
type Options struct {
	Style        string // Style name; empty uses assets.DefaultStyleName
	Template     string // Template name; empty uses assets.DefaultTemplateName
	AnswerKey    bool   // Mark correct choices
	Instructions string
	Topics       map[int]string // Topic per question number
	BaseDir      string         // Resolves relative image paths of unpackaged quizzes
}

// View is the data passed to the report template.
type View struct {
	Title        string
	Subtitle     string
	Instructions string
	CSS          template.CSS
	AnswerKey    bool
	TotalPoints  string
	Questions    []QuestionView
}

// QuestionView is one question of the report.
type QuestionView struct {
	Number  int
	Points  string
	Topic   string
	Body    template.HTML
	Essay   bool
	Choices []ChoiceView
}

// ChoiceView is one lettered choice of the report.
type ChoiceView struct {
	Letter  string
	Body    template.HTML
	Correct bool
	Fixed   bool
}

// Renderer produces HTML reports from quizzes.
type Renderer struct {
	loader assets.AssetLoader
	markup *markup.Renderer
	logger *zap.Logger
}

// NewRenderer creates a Renderer loading styles and templates from loader.
// A nil logger is replaced by a no-op logger.
func NewRenderer(loader assets.AssetLoader, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		loader: loader,
		markup: markup.NewRenderer(),
		logger: logger,
	}
}

// Render returns the report as a standalone HTML document. Images are
// inlined as data URIs.
func (r *Renderer) Render(ctx context.Context, quiz *qti.Quiz, opts Options) ([]byte, error) {
	if quiz == nil {
		return nil, fmt.Errorf("%w: nil quiz", ErrRender)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	styleName := opts.Style
	if styleName == "" {
		styleName = assets.DefaultStyleName
	}
	css, err := r.loader.LoadStyle(styleName)
	if err != nil {
		return nil, err
	}

	templateName := opts.Template
	if templateName == "" {
		templateName = assets.DefaultTemplateName
	}
	source, err := r.loader.LoadTemplate(templateName)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(templateName).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: template %q: %v", ErrRender, templateName, err)
	}

	view, err := r.buildView(ctx, quiz, opts)
	if err != nil {
		return nil, err
	}
	view.CSS = template.CSS(css)

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	r.logger.Debug("report rendered",
		zap.String("title", view.Title),
		zap.String("style", styleName),
		zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func (r *Renderer) buildView(ctx context.Context, quiz *qti.Quiz, opts Options) (*View, error) {
	inline := &imageInliner{quiz: quiz, baseDir: opts.BaseDir, logger: r.logger}

	view := &View{
		Title:        quiz.Title,
		Subtitle:     quiz.Description,
		Instructions: opts.Instructions,
		AnswerKey:    opts.AnswerKey,
		TotalPoints:  formatPoints(quiz.TotalPoints()),
	}

	for _, q := range quiz.Questions {
		body, err := r.fragment(ctx, q.HTML, q.Text, false, inline)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", q.Number, err)
		}

		qv := QuestionView{
			Number: q.Number,
			Points: formatPoints(q.Points),
			Topic:  opts.Topics[q.Number],
			Body:   body,
			Essay:  q.Type == qti.Essay,
		}
		for _, c := range q.Choices {
			cb, err := r.fragment(ctx, c.HTML, c.Text, true, inline)
			if err != nil {
				return nil, fmt.Errorf("question %d, choice %s: %w", q.Number, c.Letter, err)
			}
			qv.Choices = append(qv.Choices, ChoiceView{
				Letter:  c.Letter,
				Body:    cb,
				Correct: c.Correct,
				Fixed:   c.Fixed,
			})
		}
		view.Questions = append(view.Questions, qv)
	}

	return view, nil
}

// fragment returns rendered HTML with images inlined. Quizzes that were
// never packaged carry only source text, which is rendered here.
func (r *Renderer) fragment(ctx context.Context, html, text string, inline bool, images *imageInliner) (template.HTML, error) {
	if html == "" && text != "" {
		var err error
		if inline {
			html, err = r.markup.Inline(ctx, text)
		} else {
			html, err = r.markup.Block(ctx, text)
		}
		if err != nil {
			return "", err
		}
	}

	out, err := markup.RewriteImages(html, images.dataURI)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	// Fragments were sanitized when rendered or packaged.
	return template.HTML(out), nil
}

// imageInliner replaces image sources by data URIs.
type imageInliner struct {
	quiz    *qti.Quiz
	baseDir string
	logger  *zap.Logger
}

// dataURI returns src as a data URI. Sources that cannot be read are kept
// unchanged and logged.
func (in *imageInliner) dataURI(src string) (string, error) {
	var (
		name string
		data []byte
	)

	if assetPath, ok := qti.AssetPath(src); ok {
		content, found := in.quiz.Assets[assetPath]
		if !found {
			in.logger.Warn("image missing from package", zap.String("src", src))
			return src, nil
		}
		name, data = assetPath, content
	} else if local, ok := markup.LocalPath(src, in.baseDir); ok {
		content, err := os.ReadFile(local)
		if err != nil {
			in.logger.Warn("image not readable", zap.String("path", local), zap.Error(err))
			return src, nil
		}
		name, data = local, content
	} else {
		return src, nil
	}

	return "data:" + mediaType(name, data) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// mediaType guesses the MIME type from the extension, then from content.
func mediaType(name string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

func formatPoints(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
