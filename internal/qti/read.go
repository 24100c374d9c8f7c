package qti

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"
)

// maxEntrySize bounds the size of a single archive entry read into memory.
const maxEntrySize = 32 << 20

// ReadPackage reads every assessment of a QTI zip archive. Question and
// choice HTML keep their package image references; the referenced files are
// returned in each quiz's Assets.
func ReadPackage(zipPath string) ([]*Quiz, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadPackage, err)
	}
	defer func() { _ = zr.Close() }()

	entries := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = f
	}

	var man manifest
	if err := decodeEntry(entries, manifestName, &man); err != nil {
		return nil, err
	}

	assets, err := readAssets(zr.File)
	if err != nil {
		return nil, err
	}

	var quizzes []*Quiz
	for _, res := range man.Resources {
		if res.Type != resourceQTI || len(res.Files) == 0 {
			continue
		}
		quiz, err := readAssessment(entries, res)
		if err != nil {
			return nil, err
		}
		quiz.Assets = assets
		quizzes = append(quizzes, quiz)
	}
	if len(quizzes) == 0 {
		return nil, fmt.Errorf("%w: no assessment in %s", ErrReadPackage, manifestName)
	}

	return quizzes, nil
}

// readAssessment decodes the QTI document of res and its metadata.
func readAssessment(entries map[string]*zip.File, res resource) (*Quiz, error) {
	qtiPath := res.Files[0].Href

	var doc questestinterop
	if err := decodeEntry(entries, qtiPath, &doc); err != nil {
		return nil, err
	}

	quiz := &Quiz{ID: res.Identifier, Title: doc.Assessment.Title}

	var meta quizMeta
	metaPath := path.Join(path.Dir(qtiPath), metaName)
	if _, ok := entries[metaPath]; ok {
		if err := decodeEntry(entries, metaPath, &meta); err != nil {
			return nil, err
		}
		if meta.Title != "" {
			quiz.Title = meta.Title
		}
		quiz.Description = meta.Description
	}

	for i, it := range doc.Assessment.Section.Items {
		q, err := readItem(it, i+1)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadPackage, qtiPath, err)
		}
		quiz.Questions = append(quiz.Questions, q)
	}

	return quiz, nil
}

// readItem converts a QTI item to a question numbered n.
func readItem(it item, n int) (Question, error) {
	q := Question{
		Number: n,
		Type:   QuestionType(field(it.Metadata, "question_type")),
		HTML:   it.Presentation.Material.Text.Body,
	}

	if raw := field(it.Metadata, "points_possible"); raw != "" {
		points, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Question{}, fmt.Errorf("item %s: invalid points %q", it.Ident, raw)
		}
		q.Points = points
	}

	correct := correctIdents(it.Resprocessing)
	if lid := it.Presentation.ResponseLid; lid != nil {
		for i, label := range lid.Render.Labels {
			q.Choices = append(q.Choices, Choice{
				Letter:  nextLetter(i),
				HTML:    label.Material.Text.Body,
				Correct: correct[label.Ident],
				Fixed:   label.Shuffle == "No",
			})
		}
	}

	if q.Type == "" {
		q.Type = typeFor(q.Choices)
	}
	return q, nil
}

// correctIdents returns the choice idents that score in a condition.
// Choices under <not> are excluded.
func correctIdents(rp resprocessing) map[string]bool {
	correct := make(map[string]bool)
	for _, cond := range rp.Conditions {
		if cond.SetVar == nil || cond.SetVar.Value == "0" {
			continue
		}
		for _, eq := range cond.ConditionVar.VarEqual {
			correct[strings.TrimSpace(eq.Value)] = true
		}
		if and := cond.ConditionVar.And; and != nil {
			for _, eq := range and.VarEqual {
				correct[strings.TrimSpace(eq.Value)] = true
			}
		}
	}
	return correct
}

// readAssets loads the files under images/.
func readAssets(files []*zip.File) (map[string][]byte, error) {
	assets := make(map[string][]byte)
	for _, f := range files {
		if !strings.HasPrefix(f.Name, imagesDir+"/") || f.FileInfo().IsDir() {
			continue
		}
		data, err := readEntry(f)
		if err != nil {
			return nil, err
		}
		assets[f.Name] = data
	}
	return assets, nil
}

func decodeEntry(entries map[string]*zip.File, name string, v any) error {
	f, ok := entries[name]
	if !ok {
		return fmt.Errorf("%w: missing %s", ErrReadPackage, name)
	}
	data, err := readEntry(f)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrReadPackage, name, err)
	}
	return nil
}

func readEntry(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > maxEntrySize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrReadPackage, f.Name, maxEntrySize)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadPackage, f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(io.LimitReader(rc, maxEntrySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadPackage, f.Name, err)
	}
	return data, nil
}

// AssetPath returns the archive path a package image reference points to.
func AssetPath(src string) (string, bool) {
	rest, ok := strings.CutPrefix(src, fileBase+"/")
	if !ok {
		return "", false
	}
	if unescaped, err := url.PathUnescape(rest); err == nil {
		rest = unescaped
	}
	return rest, true
}
