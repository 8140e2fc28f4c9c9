package plugfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdbplug/gdbplug/internal/plugin"
)

const sampleFile = `home: ~/.config/gdb/plug
autoload: "all,-heavy"
plugins:
  - hugsy/gef
  - repo: cyrus-and/gdb-dashboard
    autoload: false
  - repo: ~/src/my-plugin/
    name: mine
    groups: [dev, heavy]
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sampleFile))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if f.Home != "~/.config/gdb/plug" {
		t.Errorf("Home = %q", f.Home)
	}
	if f.Autoload != "all,-heavy" {
		t.Errorf("Autoload = %#v, want \"all,-heavy\"", f.Autoload)
	}
	if len(f.Plugins) != 3 {
		t.Fatalf("expected 3 plugins, got %d", len(f.Plugins))
	}

	if f.Plugins[0].Repo != "hugsy/gef" || f.Plugins[0].Autoload != nil {
		t.Errorf("plugins[0] = %+v, want bare hugsy/gef", f.Plugins[0])
	}
	if f.Plugins[1].Autoload != false {
		t.Errorf("plugins[1].Autoload = %#v, want false", f.Plugins[1].Autoload)
	}
	if f.Plugins[2].Name != "mine" || len(f.Plugins[2].Groups) != 2 {
		t.Errorf("plugins[2] = %+v", f.Plugins[2])
	}

	s := f.Settings()
	if s.Home != f.Home || s.Autoload != f.Autoload || s.URIFormat != "" {
		t.Errorf("Settings() = %+v", s)
	}
}

func TestParse_IntegerAutoload(t *testing.T) {
	f, err := Parse([]byte("plugins:\n  - repo: a/b\n    autoload: 0\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if f.Plugins[0].Autoload != 0 {
		t.Errorf("Autoload = %#v, want 0", f.Plugins[0].Autoload)
	}
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if len(f.Plugins) != 0 {
		t.Errorf("expected no plugins, got %d", len(f.Plugins))
	}
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
		path    string
	}{
		{"unknown top-level key", "plugin: []\n", ""},
		{"missing repo", "plugins:\n  - name: x\n", "/plugins/0"},
		{"groups not a list", "plugins:\n  - repo: a/b\n    groups: dev\n", "/plugins/0/groups"},
		{"autoload list", "autoload: [all]\n", "/autoload"},
		{"format without placeholder", "uri_format: https://example.com/x.git\n", "/uri_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if len(ve.Issues) == 0 {
				t.Fatal("expected at least one issue")
			}

			found := false
			for _, issue := range ve.Issues {
				if strings.HasPrefix(issue.Path, tt.path) {
					found = true
				}
			}
			if !found {
				t.Errorf("no issue under %q in %v", tt.path, ve.Issues)
			}
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("plugins: [unterminated\n"))
	if err == nil {
		t.Fatal("expected error for malformed YAML, got nil")
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		t.Errorf("syntax error should not be reported as a schema violation")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "plug.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(f.Plugins) != 0 {
		t.Errorf("expected empty declaration set, got %d plugins", len(f.Plugins))
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plug.yaml")
	if err := os.WriteFile(path, []byte(sampleFile), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(f.Plugins) != 3 {
		t.Errorf("expected 3 plugins, got %d", len(f.Plugins))
	}
}

func TestLoad_InvalidFileNamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plug.yaml")
	if err := os.WriteFile(path, []byte("bogus: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not mention %s", err, path)
	}
}

type fakeRegistrar struct {
	registered []plugin.Declaration
}

func (f *fakeRegistrar) Register(decl plugin.Declaration) (plugin.Config, error) {
	if !strings.Contains(decl.Repo, "/") {
		return plugin.Config{}, &plugin.DeclarationError{Repo: decl.Repo, Reason: "bad"}
	}
	f.registered = append(f.registered, decl)
	return plugin.Config{Name: decl.Repo}, nil
}

func TestApply_ContinuesPastInvalidEntries(t *testing.T) {
	f := &File{Plugins: []Entry{
		{Repo: "a/one"},
		{Repo: "broken"},
		{Repo: "a/two", Groups: []string{"dev"}},
	}}
	r := &fakeRegistrar{}

	err := Apply(r, f)
	if err == nil {
		t.Fatal("expected error for invalid entry, got nil")
	}
	if !errors.Is(err, plugin.ErrInvalidDeclaration) {
		t.Errorf("expected ErrInvalidDeclaration in %v", err)
	}
	if !strings.Contains(err.Error(), "plugins[1]") {
		t.Errorf("error %q does not name the entry index", err)
	}

	if len(r.registered) != 2 {
		t.Fatalf("expected 2 registered, got %d", len(r.registered))
	}
	if r.registered[1].Repo != "a/two" || r.registered[1].Groups[0] != "dev" {
		t.Errorf("registered[1] = %+v", r.registered[1])
	}
}

func TestValidate_NonStringKeyIsSchemaIssue(t *testing.T) {
	err := Validate([]byte("plugins:\n  - repo: a/b\n    1: x\n"))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Validate() error = %v, want *ValidationError", err)
	}
	if !strings.Contains(ve.Error(), "/plugins/0") {
		t.Errorf("issues %q do not point at the plugin entry", ve.Error())
	}
}

func TestNormalizeYAML(t *testing.T) {
	in := map[string]any{
		"plugins": []any{map[any]any{"repo": "a/b", 1: "x", true: []any{map[any]any{2: "y"}}}},
	}
	got := normalizeYAML(in).(map[string]any)
	entry := got["plugins"].([]any)[0].(map[string]any)
	if entry["1"] != "x" || entry["repo"] != "a/b" {
		t.Errorf("entry = %#v", entry)
	}
	nested := entry["true"].([]any)[0].(map[string]any)
	if nested["2"] != "y" {
		t.Errorf("nested = %#v", nested)
	}
}
