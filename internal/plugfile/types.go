package plugfile

import (
	"fmt"

	"github.com/gdbplug/gdbplug/internal/config"
	"github.com/gdbplug/gdbplug/internal/plugin"
	"go.yaml.in/yaml/v3"
)

// File is the decoded declaration file.
type File struct {
	Home      string  `yaml:"home"`
	Autoload  any     `yaml:"autoload"`
	URIFormat string  `yaml:"uri_format"`
	Plugins   []Entry `yaml:"plugins"`
}

// Entry is one plugin declaration. It decodes from either a bare repository
// string or a mapping with repo, name, autoload and groups keys.
type Entry struct {
	Repo     string   `yaml:"repo"`
	Name     string   `yaml:"name"`
	Autoload any      `yaml:"autoload"`
	Groups   []string `yaml:"groups"`
}

// UnmarshalYAML accepts scalar and mapping nodes.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*e = Entry{Repo: node.Value}
		return nil
	case yaml.MappingNode:
		type plain Entry
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*e = Entry(p)
		return nil
	default:
		return fmt.Errorf("line %d: plugin entry must be a string or a mapping", node.Line)
	}
}

// Declaration converts the entry for the resolver.
func (e Entry) Declaration() plugin.Declaration {
	return plugin.Declaration{
		Repo:     e.Repo,
		Name:     e.Name,
		Autoload: e.Autoload,
		Groups:   e.Groups,
	}
}

// Settings returns the explicit process settings declared in the file.
func (f *File) Settings() config.Settings {
	return config.Settings{
		Home:      f.Home,
		Autoload:  f.Autoload,
		URIFormat: f.URIFormat,
	}
}
