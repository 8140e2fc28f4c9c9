package registry

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gdbplug/gdbplug/internal/branding"
	"github.com/gdbplug/gdbplug/internal/plugin"
)

// InitFiles returns the initialization file candidates for a plugin, in
// probing order.
func InitFiles(directory, name string) []string {
	return []string{
		filepath.Join(directory, name+".py"),
		filepath.Join(directory, name+".gdb"),
		filepath.Join(directory, "main.py"),
		filepath.Join(directory, "main.gdb"),
		filepath.Join(directory, ".gdbinit"),
		filepath.Join(directory, "gdbinit-"+strings.ToLower(name)+".py"),
	}
}

// LoadPlan lists the initialization files present for one plugin, in probing
// order. A session sources them one at a time and stops at the first that
// sources cleanly.
type LoadPlan struct {
	Name       string   `json:"name"`
	Directory  string   `json:"directory"`
	Candidates []string `json:"candidates"`
}

// Plan returns the load plan of the named plugin without sourcing anything.
// Unknown, uninstalled and empty plugins are reported and return an error.
func (r *Registry) Plan(name string) (LoadPlan, error) {
	cfg, ok := r.plugins[name]
	if !ok {
		fmt.Fprintf(r.out, "Plugin not registered: %s\n", name)
		return LoadPlan{}, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}

	if !r.exists(cfg.Directory) {
		fmt.Fprintf(r.out, "Plugin not installed: %s. Run '%s update' to install.\n", name, branding.CLIName())
		return LoadPlan{}, fmt.Errorf("%w: %s", ErrNotInstalled, name)
	}

	candidates := r.presentInitFiles(cfg)
	if len(candidates) == 0 {
		fmt.Fprintf(r.out, "No valid initialization file found for plugin: %s\n", name)
		return LoadPlan{}, fmt.Errorf("%w: %s", ErrNoInitFile, name)
	}
	return LoadPlan{Name: name, Directory: fsPath(cfg.Directory), Candidates: candidates}, nil
}

// PlanAll returns the load plans of every autoload plugin, in registration
// order, and the results of the plugins that cannot be loaded.
func (r *Registry) PlanAll() ([]LoadPlan, []Result) {
	return r.planNames(r.autoloadNames())
}

// PlanNames returns the load plans of the given plugins regardless of their
// autoload policy.
func (r *Registry) PlanNames(names ...string) ([]LoadPlan, []Result) {
	return r.planNames(names)
}

func (r *Registry) planNames(names []string) ([]LoadPlan, []Result) {
	plans := []LoadPlan{}
	var failed []Result
	for _, name := range names {
		plan, err := r.Plan(name)
		if err != nil {
			failed = append(failed, failedResult(name, err))
			continue
		}
		plans = append(plans, plan)
	}
	return plans, failed
}

// InitFile returns the first initialization file candidate of the named
// plugin present on disk, without sourcing it.
func (r *Registry) InitFile(name string) (string, bool) {
	cfg, ok := r.plugins[name]
	if !ok {
		return "", false
	}
	if found := r.presentInitFiles(cfg); len(found) > 0 {
		return found[0], true
	}
	return "", false
}

func (r *Registry) presentInitFiles(cfg plugin.Config) []string {
	var found []string
	for _, candidate := range InitFiles(fsPath(cfg.Directory), cfg.Name) {
		if r.exists(candidate) {
			found = append(found, candidate)
		}
	}
	return found
}

// Load sources the first initialization file of the named plugin that exists
// and sources cleanly, and returns its path. A file that fails to source is
// reported and the next candidate is tried.
func (r *Registry) Load(ctx context.Context, name string) (string, error) {
	plan, err := r.Plan(name)
	if err != nil {
		return "", err
	}

	if r.loader == nil {
		fmt.Fprintf(r.out, "Failed to load %s: %v\n", name, errNoLoader)
		return "", errNoLoader
	}

	var failures []error
	for _, candidate := range plan.Candidates {
		r.logger.Debug("sourcing init file", "name", name, "path", candidate)
		if err := r.loader.Source(ctx, candidate); err != nil {
			fmt.Fprintf(r.out, "Failed to load %s: %v\n", candidate, err)
			failures = append(failures, &LoadError{Name: name, Path: candidate, Err: err})
			continue
		}

		fmt.Fprintf(r.out, "Loaded plugin: %s from %s\n", name, candidate)
		return candidate, nil
	}

	fmt.Fprintf(r.out, "No valid initialization file found for plugin: %s\n", name)
	return "", errors.Join(append([]error{fmt.Errorf("%w: %s", ErrNoInitFile, name)}, failures...)...)
}

// LoadAll loads every plugin whose autoload policy resolved to true, in
// registration order.
func (r *Registry) LoadAll(ctx context.Context) []Result {
	return r.LoadNames(ctx, r.autoloadNames()...)
}

// LoadNames loads the given plugins regardless of their autoload policy.
func (r *Registry) LoadNames(ctx context.Context, names ...string) []Result {
	results := make([]Result, 0, len(names))
	for _, name := range names {
		path, err := r.Load(ctx, name)
		if err != nil {
			results = append(results, failedResult(name, err))
			continue
		}
		results = append(results, Result{Name: name, Status: StatusLoaded, Path: path})
	}
	return results
}

func (r *Registry) autoloadNames() []string {
	var names []string
	for _, name := range r.order {
		if r.plugins[name].Autoload {
			names = append(names, name)
		}
	}
	return names
}

func failedResult(name string, err error) Result {
	switch {
	case errors.Is(err, ErrNotRegistered):
		return Result{Name: name, Status: StatusNotRegistered, Err: err}
	case errors.Is(err, ErrNotInstalled):
		return Result{Name: name, Status: StatusNotInstalled, Err: err}
	default:
		return Result{Name: name, Status: StatusFailed, Err: err}
	}
}
