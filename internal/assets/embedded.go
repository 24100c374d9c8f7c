package assets

import (
	"embed"
	"io/fs"
)

//go:embed styles templates
var builtin embed.FS

// EmbeddedLoader loads the styles and templates compiled into the binary.
type EmbeddedLoader struct {
	fsys fs.FS
}

// NewEmbeddedLoader creates an EmbeddedLoader over the built-in assets.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{fsys: builtin}
}

// LoadStyle loads a built-in CSS style.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readAsset(e.fsys, styleKind, name)
}

// LoadTemplate loads a built-in report template.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readAsset(e.fsys, templateKind, name)
}

// Styles returns the names of the built-in styles, sorted.
func (e *EmbeddedLoader) Styles() []string {
	return listAssets(e.fsys, styleKind)
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
