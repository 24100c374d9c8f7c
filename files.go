package exam2qti

import (
	"fmt"
	"path/filepath"

	"github.com/alnah/go-exam2qti/internal/fileutil"
)

// ReadExamFile reads an exam as UTF-8 text, dropping a leading byte-order mark.
// Errors wrap ErrReadExam and the underlying cause (os.ErrNotExist, ...).
func ReadExamFile(path string) (string, error) {
	text, err := fileutil.ReadText(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadExam, err)
	}
	return text, nil
}

// ResolveImageDir returns the first of folders that exists next to source.
// When none exists it returns the directory of source and found=false.
func ResolveImageDir(source string, folders []string) (dir string, found bool) {
	base := filepath.Dir(source)
	for _, folder := range folders {
		candidate := filepath.Join(base, folder)
		if fileutil.DirExists(candidate) {
			return candidate, true
		}
	}
	return base, false
}

// Paths holds the files derived from an exam source.
type Paths struct {
	Text    string // Normalized quiz text
	Package string // QTI zip archive
	Report  string // HTML report
	PDF     string // PDF report
}

// OutputPaths derives output files from source. Files go to dir, or next to
// source when dir is empty, named <stem><suffix> with their extension.
func OutputPaths(source, dir, suffix string) Paths {
	return Paths{
		Text:    fileutil.SiblingPath(source, dir, suffix, ".txt"),
		Package: fileutil.SiblingPath(source, dir, suffix, ".zip"),
		Report:  fileutil.SiblingPath(source, dir, suffix, ".html"),
		PDF:     fileutil.SiblingPath(source, dir, suffix, ".pdf"),
	}
}
