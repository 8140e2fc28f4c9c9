package registry

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/gdbplug/gdbplug/internal/config"
	"github.com/gdbplug/gdbplug/internal/plugin"
	"github.com/spf13/afero"
)

// Syncer installs and updates remote plugin repositories.
type Syncer interface {
	Clone(ctx context.Context, uri, directory string) error
	Update(ctx context.Context, directory string) error
}

// Loader sources an initialization file into the debugger session.
type Loader interface {
	Source(ctx context.Context, path string) error
}

var (
	errNoSyncer = errors.New("no repository sync configured")
	errNoLoader = errors.New("no script loader configured")
)

// Registry maps plugin names to resolved records. It is meant to be used
// from a single goroutine.
type Registry struct {
	defaults plugin.Defaults
	plugins  map[string]plugin.Config
	order    []string

	syncer Syncer
	loader Loader
	fs     afero.Fs
	out    io.Writer
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithSyncer sets the repository sync capability used by Sync.
func WithSyncer(s Syncer) Option {
	return func(r *Registry) { r.syncer = s }
}

// WithLoader sets the script loader used by Load.
func WithLoader(l Loader) Option {
	return func(r *Registry) { r.loader = l }
}

// WithFs sets the filesystem consulted for presence checks.
func WithFs(fs afero.Fs) Option {
	return func(r *Registry) { r.fs = fs }
}

// WithOutput sets where per-plugin status lines are written.
func WithOutput(w io.Writer) Option {
	return func(r *Registry) { r.out = w }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// New creates an empty registry that resolves declarations against defaults.
func New(defaults plugin.Defaults, opts ...Option) *Registry {
	r := &Registry{
		defaults: defaults,
		plugins:  make(map[string]plugin.Config),
		fs:       afero.NewOsFs(),
		out:      io.Discard,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Defaults returns the process defaults the registry resolves against.
func (r *Registry) Defaults() plugin.Defaults {
	return r.defaults
}

// Register resolves decl and stores the result under its name, replacing any
// earlier record with that name. A replaced name keeps its original position.
func (r *Registry) Register(decl plugin.Declaration) (plugin.Config, error) {
	cfg, err := plugin.Resolve(decl, r.defaults)
	if err != nil {
		return plugin.Config{}, err
	}

	if prev, ok := r.plugins[cfg.Name]; ok {
		if prev.Repo != cfg.Repo {
			r.logger.Warn("replacing plugin registration",
				"name", cfg.Name, "previous", prev.Repo, "repo", cfg.Repo)
		}
	} else {
		r.order = append(r.order, cfg.Name)
	}
	r.plugins[cfg.Name] = cfg

	r.logger.Debug("registered plugin",
		"name", cfg.Name, "directory", cfg.Directory, "uri", cfg.URI, "autoload", cfg.Autoload)
	return cfg, nil
}

// Get returns the record registered under name.
func (r *Registry) Get(name string) (plugin.Config, bool) {
	cfg, ok := r.plugins[name]
	return cfg, ok
}

// Names returns the registered plugin names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	return len(r.order)
}

// exists reports whether path is present, expanding a leading "~".
func (r *Registry) exists(path string) bool {
	p := fsPath(path)
	ok, err := afero.Exists(r.fs, p)
	if err != nil {
		r.logger.Debug("checking path", "path", p, "error", err)
		return false
	}
	return ok
}

// fsPath returns the path handed to collaborators for a stored location.
func fsPath(path string) string {
	p, err := config.ExpandHome(path)
	if err != nil {
		return path
	}
	return p
}
