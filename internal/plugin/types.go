package plugin

// DefaultURIFormat expands owner/name shorthand into a GitHub clone URI. The
// empty credentials ("git::@") keep git from prompting for a password when a
// repository does not exist.
const DefaultURIFormat = "https://git::@github.com/{}.git"

// URIPlaceholder is replaced by the repository identifier in a URI format.
const URIPlaceholder = "{}"

// Defaults holds the process-wide settings every declaration is resolved
// against. Build it once with config.Resolve and treat it as read-only.
type Defaults struct {
	// Home is the directory remote plugins are cloned into.
	Home string
	// Autoload is the raw policy used when a declaration has none: a bool,
	// an integer, or a comma-separated policy string.
	Autoload any
	// URIFormat contains exactly one URIPlaceholder.
	URIFormat string
}

// Declaration is a user request to register a plugin.
type Declaration struct {
	// Repo is a local path, a full URI, or owner/name shorthand.
	Repo string
	// Name overrides the name inferred from Repo.
	Name string
	// Autoload overrides Defaults.Autoload when non-nil.
	Autoload any
	// Groups are extra tags matched by autoload policy strings.
	Groups []string
}

// Config is the resolved record stored per plugin name.
type Config struct {
	Name      string   `json:"name" yaml:"name"`
	Repo      string   `json:"repo" yaml:"repo"`
	URI       string   `json:"uri,omitempty" yaml:"uri,omitempty"`
	Directory string   `json:"directory" yaml:"directory"`
	Autoload  bool     `json:"autoload" yaml:"autoload"`
	Groups    []string `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// IsLocal reports whether the plugin lives in a local directory rather than
// a remote repository.
func (c Config) IsLocal() bool {
	return c.URI == ""
}

// Tags returns the labels an autoload policy can match for this plugin.
func (c Config) Tags() []string {
	return append([]string{c.Name}, c.Groups...)
}
