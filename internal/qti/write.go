package qti

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alnah/go-exam2qti/internal/markup"
)

// idNamespace seeds the name-based identifiers of a package.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/alnah/go-exam2qti"))

// Packager writes quizzes as QTI zip archives.
type Packager struct {
	renderer *markup.Renderer
	baseDir  string
	logger   *zap.Logger
}

// Option configures a Packager.
type Option func(*Packager)

// WithBaseDir sets the directory relative image paths resolve against.
// Defaults to the working directory.
func WithBaseDir(dir string) Option {
	return func(p *Packager) {
		p.baseDir = dir
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Packager) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPackager creates a Packager.
func NewPackager(opts ...Option) *Packager {
	p := &Packager{
		renderer: markup.NewRenderer(),
		baseDir:  ".",
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WriteFile writes the package to path. A partial file is removed on error.
func (p *Packager) WriteFile(ctx context.Context, quiz *Quiz, path string) error {
	var buf bytes.Buffer
	if err := p.Write(ctx, quiz, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("%w: %w", ErrPackage, err)
	}
	return nil
}

// Write renders the quiz markup, embeds the local images it references and
// writes the zip archive to w. Missing images return ErrImageNotFound.
// On success the quiz carries its ID, rendered HTML and embedded Assets.
func (p *Packager) Write(ctx context.Context, quiz *Quiz, w io.Writer) error {
	if quiz == nil {
		return fmt.Errorf("%w: nil quiz", ErrPackage)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	quiz.ID = assessmentID(quiz)
	embed := newImageSet(p.baseDir)

	for i := range quiz.Questions {
		if err := p.renderQuestion(ctx, &quiz.Questions[i], embed); err != nil {
			return err
		}
	}

	files, err := buildDocuments(quiz, embed)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	for _, f := range files {
		fw, err := zw.Create(f.name)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPackage, err)
		}
		if _, err := fw.Write(f.data); err != nil {
			return fmt.Errorf("%w: %w", ErrPackage, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrPackage, err)
	}

	quiz.Assets = make(map[string][]byte, len(embed.order))
	for _, img := range embed.order {
		quiz.Assets[path.Join(imagesDir, img.name)] = img.data
	}

	p.logger.Debug("package written",
		zap.String("id", quiz.ID),
		zap.Int("questions", len(quiz.Questions)),
		zap.Int("images", len(embed.order)))
	return nil
}

// renderQuestion fills the HTML of the question and its choices.
func (p *Packager) renderQuestion(ctx context.Context, q *Question, embed *imageSet) error {
	html, err := p.renderer.Block(ctx, q.Text)
	if err != nil {
		return err
	}
	if q.HTML, err = markup.RewriteImages(html, embed.reference); err != nil {
		return fmt.Errorf("question %d: %w", q.Number, err)
	}

	for j := range q.Choices {
		c := &q.Choices[j]
		html, err := p.renderer.Inline(ctx, c.Text)
		if err != nil {
			return err
		}
		if c.HTML, err = markup.RewriteImages(html, embed.reference); err != nil {
			return fmt.Errorf("question %d, choice %s: %w", q.Number, c.Letter, err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Images
// ---------------------------------------------------------------------------

// imageSet collects the local images of a package under unique names.
type imageSet struct {
	baseDir string
	names   map[string]string // Filesystem path to package name
	taken   map[string]bool
	order   []embeddedImage
}

type embeddedImage struct {
	name string
	data []byte
}

func newImageSet(baseDir string) *imageSet {
	return &imageSet{
		baseDir: baseDir,
		names:   make(map[string]string),
		taken:   make(map[string]bool),
	}
}

// reference reads the image src points to and returns its package reference.
// Remote and data sources are returned unchanged.
func (s *imageSet) reference(src string) (string, error) {
	local, ok := markup.LocalPath(src, s.baseDir)
	if !ok {
		return src, nil
	}

	name, seen := s.names[local]
	if !seen {
		data, err := os.ReadFile(local)
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrImageNotFound, src)
		}
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrPackage, err)
		}

		name = s.uniqueName(filepath.Base(local))
		s.names[local] = name
		s.order = append(s.order, embeddedImage{name: name, data: data})
	}

	return fileBase + "/" + imagesDir + "/" + url.PathEscape(name), nil
}

// uniqueName prefixes name with a counter when another file took it.
func (s *imageSet) uniqueName(name string) string {
	candidate := name
	for i := 2; s.taken[candidate]; i++ {
		candidate = strconv.Itoa(i) + "_" + name
	}
	s.taken[candidate] = true
	return candidate
}

// ---------------------------------------------------------------------------
// Documents
// ---------------------------------------------------------------------------

type zipFile struct {
	name string
	data []byte
}

// buildDocuments marshals the package files in archive order.
func buildDocuments(quiz *Quiz, embed *imageSet) ([]zipFile, error) {
	id := quiz.ID
	metaID := ident(id, "meta")
	qtiPath := path.Join(id, id+".xml")
	metaPath := path.Join(id, metaName)

	man := manifest{
		Xmlns:      manifestNS,
		Identifier: ident(id, "manifest"),
		Metadata:   metadata{Schema: "IMS Content", SchemaVersion: "1.1.3"},
		Resources: []resource{
			{
				Identifier:   id,
				Type:         resourceQTI,
				Files:        []file{{Href: qtiPath}},
				Dependencies: []dependency{{IdentifierRef: metaID}},
			},
			{
				Identifier: metaID,
				Type:       resourceMeta,
				Href:       metaPath,
				Files:      []file{{Href: metaPath}},
			},
		},
	}
	for _, img := range embed.order {
		href := path.Join(imagesDir, img.name)
		man.Resources = append(man.Resources, resource{
			Identifier: ident(id, href),
			Type:       resourceWeb,
			Href:       href,
			Files:      []file{{Href: href}},
		})
	}

	meta := quizMeta{
		Xmlns:          quizMetaNS,
		Identifier:     id,
		Title:          quiz.Title,
		Description:    quiz.Description,
		QuizType:       "assignment",
		PointsPossible: formatPoints(quiz.TotalPoints()),
		AllowedAttempt: 1,
	}

	doc := questestinterop{
		Xmlns: qtiNS,
		Assessment: assessment{
			Ident:    id,
			Title:    quiz.Title,
			Metadata: []metaField{{Label: "cc_maxattempts", Entry: "1"}},
			Section:  section{Ident: "root_section"},
		},
	}
	for _, q := range quiz.Questions {
		doc.Assessment.Section.Items = append(doc.Assessment.Section.Items, buildItem(id, q))
	}

	files := make([]zipFile, 0, 3+len(embed.order))
	for _, d := range []struct {
		name string
		v    any
	}{
		{manifestName, man},
		{qtiPath, doc},
		{metaPath, meta},
	} {
		data, err := marshalDocument(d.v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrPackage, d.name, err)
		}
		files = append(files, zipFile{name: d.name, data: data})
	}
	for _, img := range embed.order {
		files = append(files, zipFile{name: path.Join(imagesDir, img.name), data: img.data})
	}

	return files, nil
}

// buildItem converts one question to a QTI item.
func buildItem(assessmentID string, q Question) item {
	itemID := ident(assessmentID, "item", strconv.Itoa(q.Number))

	it := item{
		Ident: itemID,
		Title: "Question " + strconv.Itoa(q.Number),
		Metadata: []metaField{
			{Label: "question_type", Entry: string(q.Type)},
			{Label: "points_possible", Entry: formatPoints(q.Points)},
		},
		Presentation: presentation{
			Material: htmlMaterial(q.HTML),
		},
		Resprocessing: resprocessing{
			Outcomes: outcomes{Decvar: decvar{
				MaxValue: fullScore,
				MinValue: "0",
				VarName:  "SCORE",
				VarType:  "Decimal",
			}},
		},
	}

	if q.Type == Essay {
		it.Presentation.ResponseStr = &responseStr{
			Ident:       responseIdent,
			Cardinality: "Single",
			Render:      renderFib{Label: responseLabelEmpty{Ident: "answer1", Shuffle: "No"}},
		}
		it.Resprocessing.Conditions = []respcondition{{
			Continue:     "No",
			ConditionVar: conditionVar{Other: &struct{}{}},
		}}
		return it
	}

	cardinality := "Single"
	if q.Type == MultipleAnswers {
		cardinality = "Multiple"
	}
	lid := &responseLid{Ident: responseIdent, Cardinality: cardinality}

	var correct, wrong []varequal
	var answerIDs []string
	for _, c := range q.Choices {
		choiceID := ident(itemID, c.Letter)
		answerIDs = append(answerIDs, choiceID)

		label := responseLabel{Ident: choiceID, Material: htmlMaterial(c.HTML)}
		if c.Fixed {
			label.Shuffle = "No"
		}
		lid.Render.Labels = append(lid.Render.Labels, label)

		eq := varequal{RespIdent: responseIdent, Value: choiceID}
		if c.Correct {
			correct = append(correct, eq)
		} else {
			wrong = append(wrong, eq)
		}
	}
	it.Presentation.ResponseLid = lid
	it.Metadata = append(it.Metadata, metaField{Label: "original_answer_ids", Entry: strings.Join(answerIDs, ",")})

	cond := conditionVar{VarEqual: correct}
	if q.Type == MultipleAnswers {
		and := &andCond{VarEqual: correct}
		for _, eq := range wrong {
			and.Not = append(and.Not, notCond{VarEqual: []varequal{eq}})
		}
		cond = conditionVar{And: and}
	}
	it.Resprocessing.Conditions = []respcondition{{
		Continue:     "No",
		ConditionVar: cond,
		SetVar:       &setvar{Action: "Set", VarName: "SCORE", Value: fullScore},
	}}

	return it
}

func htmlMaterial(body string) material {
	return material{Text: mattext{Type: "text/html", Body: body}}
}

func marshalDocument(v any) ([]byte, error) {
	out, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// assessmentID derives a stable identifier from the quiz content.
func assessmentID(quiz *Quiz) string {
	parts := []string{"assessment", quiz.Title, quiz.Description}
	for _, q := range quiz.Questions {
		parts = append(parts, q.Text)
		for _, c := range q.Choices {
			parts = append(parts, c.Text)
		}
	}
	return ident(parts...)
}

// ident returns a "g"-prefixed hex identifier derived from parts.
func ident(parts ...string) string {
	id := uuid.NewSHA1(idNamespace, []byte(strings.Join(parts, "\x00")))
	return "g" + hex.EncodeToString(id[:])
}
