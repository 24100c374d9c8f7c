package assets

// Notes:
// - Symlink tests are skipped where the OS refuses to create symlinks.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "style.css")
	if err := os.WriteFile(file, []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"existing directory", t.TempDir(), false},
		{"empty path", "", true},
		{"missing directory", filepath.Join(t.TempDir(), "missing"), true},
		{"regular file", file, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loader, err := NewFilesystemLoader(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBasePath) {
					t.Errorf("NewFilesystemLoader(%q) error = %v, want ErrInvalidBasePath", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFilesystemLoader(%q) error = %v", tt.path, err)
			}
			if !filepath.IsAbs(loader.basePath) {
				t.Errorf("basePath = %q, want absolute", loader.basePath)
			}
		})
	}
}

func TestFilesystemLoader_Load(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "styles", "exam.css", "ol.choices { margin: 0; }")
	writeAsset(t, base, "templates", "handout.html", "<h1>{{.Title}}</h1>")

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		load    func(string) (string, error)
		asset   string
		want    string
		wantErr error
	}{
		{"style", loader.LoadStyle, "exam", "ol.choices", nil},
		{"template", loader.LoadTemplate, "handout", "{{.Title}}", nil},
		{"missing style", loader.LoadStyle, "handout", "", ErrStyleNotFound},
		{"missing template", loader.LoadTemplate, "exam", "", ErrTemplateNotFound},
		{"traversal", loader.LoadStyle, "../exam", "", ErrInvalidAssetName},
		{"extension", loader.LoadTemplate, "handout.html", "", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.load(tt.asset)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("load(%q) error = %v, want %v", tt.asset, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("load(%q) error = %v", tt.asset, err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("load(%q) = %q, want it to contain %q", tt.asset, got, tt.want)
			}
		})
	}
}

func TestFilesystemLoader_Styles(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "styles", "zeta.css", "")
	writeAsset(t, base, "styles", "alpha.css", "")
	writeAsset(t, base, "styles", "notes.txt", "")
	writeAsset(t, base, "styles", ".hidden.css", "")

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(loader.Styles(), ","); got != "alpha,zeta" {
		t.Errorf("Styles() = %s, want alpha,zeta", got)
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.css")
	if err := os.WriteFile(secret, []byte("secret"), 0o644); err != nil {
		t.Fatal(err)
	}

	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "styles"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(secret, filepath.Join(base, "styles", "leak.css")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := loader.LoadStyle("leak"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadStyle(leak) error = %v, want ErrPathTraversal", err)
	}
}
