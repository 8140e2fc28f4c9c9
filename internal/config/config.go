package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdbplug/gdbplug/internal/branding"
	"github.com/gdbplug/gdbplug/internal/plugin"
	"github.com/spf13/viper"
)

const (
	keyHome      = "home"
	keyAutoload  = "autoload"
	keyURIFormat = "uri_format"
	keyFile      = "file"
)

// Settings carries explicitly supplied values (command-line flags or the
// declaration file). Zero values mean "not supplied".
type Settings struct {
	Home      string
	Autoload  any
	URIFormat string
}

// Merge returns s with every unset field taken from fallback.
func (s Settings) Merge(fallback Settings) Settings {
	if s.Home == "" {
		s.Home = fallback.Home
	}
	if s.Autoload == nil {
		s.Autoload = fallback.Autoload
	}
	if s.URIFormat == "" {
		s.URIFormat = fallback.URIFormat
	}
	return s
}

// Dir returns the GDB configuration directory (~/.config/gdb/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.ConfigDir())
	}
	return filepath.Join(home, branding.ConfigDir())
}

// DefaultHome returns the built-in clone directory (~/.config/gdb/plug).
func DefaultHome() string {
	return filepath.Join(Dir(), branding.PlugDir())
}

// DefaultFile returns the built-in declaration file path (~/.config/gdb/plug.yaml).
func DefaultFile() string {
	return filepath.Join(Dir(), branding.PlugFile())
}

// Resolve builds the plugin defaults from explicit settings, the environment
// and the built-ins, in that order of precedence.
func Resolve(explicit Settings) (plugin.Defaults, error) {
	v := viper.New()
	v.SetDefault(keyHome, DefaultHome())
	v.SetDefault(keyAutoload, true)
	v.SetDefault(keyURIFormat, plugin.DefaultURIFormat)

	// uri_format has no environment source.
	_ = v.BindEnv(keyHome, branding.EnvVar("HOME"))
	_ = v.BindEnv(keyAutoload, branding.EnvVar("AUTOLOAD"))

	if explicit.Home != "" {
		v.Set(keyHome, explicit.Home)
	}
	if explicit.Autoload != nil {
		v.Set(keyAutoload, explicit.Autoload)
	}
	if explicit.URIFormat != "" {
		v.Set(keyURIFormat, explicit.URIFormat)
	}

	format := v.GetString(keyURIFormat)
	if !strings.Contains(format, plugin.URIPlaceholder) {
		return plugin.Defaults{}, fmt.Errorf("uri format %q has no %s placeholder", format, plugin.URIPlaceholder)
	}

	home, err := ExpandHome(v.GetString(keyHome))
	if err != nil {
		return plugin.Defaults{}, err
	}

	return plugin.Defaults{
		Home:      home,
		Autoload:  v.Get(keyAutoload),
		URIFormat: format,
	}, nil
}

// File returns the declaration file path: explicit, then GDB_PLUG_FILE, then
// DefaultFile.
func File(explicit string) (string, error) {
	v := viper.New()
	v.SetDefault(keyFile, DefaultFile())
	_ = v.BindEnv(keyFile, branding.EnvVar("FILE"))
	if explicit != "" {
		v.Set(keyFile, explicit)
	}
	return ExpandHome(v.GetString(keyFile))
}

// ExpandHome replaces a leading "~" with the user's home directory. Other
// paths, including "~user/...", are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
