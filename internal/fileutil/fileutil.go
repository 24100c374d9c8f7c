// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrNotUTF8                = errors.New("file is not valid UTF-8")
)

// byteOrderMark is the UTF-8 encoded BOM some editors write at file start.
const byteOrderMark = "\xef\xbb\xbf"

// chdirMu serializes WithWorkingDir; the working directory is process-wide.
var chdirMu sync.Mutex

// ReadText reads a UTF-8 text file, dropping a leading byte-order mark.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrNotUTF8, path)
	}
	return strings.TrimPrefix(string(data), byteOrderMark), nil
}

// WriteTempFile creates a temporary file with the given content and extension.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", "exam2qti-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "default" -> false (name)
//   - "./custom.css" -> true (relative path)
//   - "/absolute/path.css" -> true (absolute)
//   - "C:\windows\path.css" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like a URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Stem returns the file name of path without directory and extension.
//
//	Stem("exams/week1.txt") -> "week1"
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SiblingPath returns <dir>/<stem><suffix><ext>, where dir defaults to the
// directory of source when empty.
//
//	SiblingPath("exams/week1.txt", "", "_t2q", ".zip") -> "exams/week1_t2q.zip"
func SiblingPath(source, dir, suffix, ext string) string {
	if dir == "" {
		dir = filepath.Dir(source)
	}
	return filepath.Join(dir, Stem(source)+suffix+ext)
}

// AbsPaths returns paths made absolute against the current working directory.
// Empty entries stay empty.
func AbsPaths(paths ...string) ([]string, error) {
	abs := make([]string, len(paths))
	for i, p := range paths {
		if p == "" {
			continue
		}
		resolved, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		abs[i] = resolved
	}
	return abs, nil
}

// WithWorkingDir runs fn with the process working directory set to dir and
// restores the previous directory afterwards, even when fn fails.
// Calls are serialized across goroutines, but other goroutines still see the
// changed directory while fn runs: they must only use absolute paths.
func WithWorkingDir(dir string, fn func() error) (err error) {
	chdirMu.Lock()
	defer chdirMu.Unlock()

	prev, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("changing to %s: %w", dir, err)
	}
	defer func() {
		if restoreErr := os.Chdir(prev); restoreErr != nil && err == nil {
			err = fmt.Errorf("restoring working directory: %w", restoreErr)
		}
	}()

	return fn()
}
