package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Built-in asset names.
const (
	DefaultStyleName    = "default"
	DefaultTemplateName = "report"
)

// AssetLoader loads report styles and templates by name.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML report template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// kind is a family of assets stored as {dir}/{name}{ext}.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// file returns the slash-separated path of the named asset.
func (k kind) file(name string) string {
	return k.dir + "/" + name + k.ext
}

// readAsset validates name and reads the asset of kind k from fsys.
func readAsset(fsys fs.FS, k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	data, err := fs.ReadFile(fsys, k.file(name))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

// listAssets returns the names of the assets of kind k in fsys, sorted.
// Files whose stem is not a valid asset name are skipped.
func listAssets(fsys fs.FS, k kind) []string {
	matches, err := fs.Glob(fsys, k.dir+"/*"+k.ext)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(path.Base(m), k.ext)
		if ValidateAssetName(name) == nil {
			names = append(names, name)
		}
	}
	return names
}
