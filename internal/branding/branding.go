// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Hard defaults cover a missing or empty file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	GDBCommand  string `yaml:"gdb_command"`
	Description string `yaml:"description"`
	ConfigDir   string `yaml:"config_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	PlugDir     string `yaml:"plug_dir"`
	PlugFile    string `yaml:"plug_file"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "gdbplug",
			GDBCommand:  "Plug",
			Description: "Plugin manager for GDB",
			ConfigDir:   ".config/gdb",
			EnvPrefix:   "GDB_PLUG",
			PlugDir:     "plug",
			PlugFile:    "plug.yaml",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "gdbplug").
func CLIName() string { load(); return defaults.CLIName }

// GDBCommand returns the name of the command users type inside GDB (e.g., "Plug").
func GDBCommand() string { load(); return defaults.GDBCommand }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// ConfigDir returns the configuration directory relative to $HOME (e.g., ".config/gdb").
func ConfigDir() string { load(); return defaults.ConfigDir }

// EnvPrefix returns the environment variable prefix (e.g., "GDB_PLUG").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// PlugDir returns the directory under ConfigDir that holds cloned plugins.
func PlugDir() string { load(); return defaults.PlugDir }

// PlugFile returns the declaration file name under ConfigDir.
func PlugFile() string { load(); return defaults.PlugFile }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "GDB_PLUG_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
