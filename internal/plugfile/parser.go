package plugfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdbplug/gdbplug/internal/plugin"
	"go.yaml.in/yaml/v3"
)

// Registrar stores resolved declarations.
type Registrar interface {
	Register(decl plugin.Declaration) (plugin.Config, error)
}

// Parse validates and decodes a declaration file.
func Parse(data []byte) (*File, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding declaration file: %w", err)
	}
	return &f, nil
}

// Load reads the declaration file at path. A missing file yields an empty
// declaration set.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("reading declaration file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Apply registers every plugin in f, in file order. An entry that fails to
// resolve does not stop the rest; the failures are returned joined.
func Apply(r Registrar, f *File) error {
	var errs []error
	for i, entry := range f.Plugins {
		if _, err := r.Register(entry.Declaration()); err != nil {
			errs = append(errs, fmt.Errorf("plugins[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
