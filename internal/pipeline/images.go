package pipeline

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-exam2qti/internal/fileutil"
)

var (
	// !(name) optionally followed by a width annotation [N]
	imageRef = regexp.MustCompile(`!\(([^)]+)\)(\[\d+\])?`)

	// !(name)[N][M], an accidental second width annotation
	doubleWidth = regexp.MustCompile(`(!\([^)]+\)\[\d+\])\[\d+\]`)
)

// ResolveImages rewrites every !(name)[N] reference as a Markdown image
// ![name](<baseDir>/name)[N] with an absolute path. A duplicated width
// annotation keeps only the first width. Absolute paths and URLs are kept.
func ResolveImages(text, baseDir string) (string, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolving image directory: %w", err)
	}

	text = doubleWidth.ReplaceAllString(text, "$1")

	return imageRef.ReplaceAllStringFunc(text, func(ref string) string {
		m := imageRef.FindStringSubmatch(ref)
		name := strings.TrimSpace(m[1])
		return fmt.Sprintf("![%s](%s)%s", m[1], imageTarget(absBase, name), m[2])
	}), nil
}

// imageTarget returns the Markdown link destination for an image name.
func imageTarget(absBase, name string) string {
	if fileutil.IsURL(name) {
		return name
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(absBase, name)
	}
	path = filepath.ToSlash(path)
	if strings.ContainsAny(path, " \t") {
		return "<" + path + ">"
	}
	return path
}
