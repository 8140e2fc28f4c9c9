package registry

import (
	"context"
	"fmt"
)

// Sync installs missing remote plugins and updates installed ones. With no
// names it walks every registered plugin in registration order. Plugins are
// processed one at a time; a failure is reported and the next name is tried.
func (r *Registry) Sync(ctx context.Context, names ...string) []Result {
	if len(names) == 0 {
		names = r.Names()
	}

	results := make([]Result, 0, len(names))
	for _, name := range names {
		results = append(results, r.syncOne(ctx, name))
	}
	return results
}

func (r *Registry) syncOne(ctx context.Context, name string) Result {
	cfg, ok := r.plugins[name]
	if !ok {
		fmt.Fprintf(r.out, "Plugin not registered: %s\n", name)
		return Result{Name: name, Status: StatusNotRegistered, Err: fmt.Errorf("%w: %s", ErrNotRegistered, name)}
	}

	if cfg.IsLocal() {
		fmt.Fprintf(r.out, "Not a remote repo, skipping %s\n", name)
		return Result{Name: name, Status: StatusSkipped}
	}

	dir := fsPath(cfg.Directory)
	if !r.exists(cfg.Directory) {
		if r.syncer == nil {
			fmt.Fprintf(r.out, "Failed to install %s: %v\n", name, errNoSyncer)
			return r.syncFailed(name, "clone", errNoSyncer)
		}
		fmt.Fprintf(r.out, "Installing %s...\n", name)
		r.logger.Debug("cloning plugin", "name", name, "uri", cfg.URI, "directory", dir)
		if err := r.syncer.Clone(ctx, cfg.URI, dir); err != nil {
			fmt.Fprintf(r.out, "Failed to install %s: %v\n", name, err)
			return r.syncFailed(name, "clone", err)
		}
		fmt.Fprintf(r.out, "Installed %s\n", name)
		return Result{Name: name, Status: StatusInstalled}
	}

	if r.syncer == nil {
		fmt.Fprintf(r.out, "Failed to update %s: %v\n", name, errNoSyncer)
		return r.syncFailed(name, "update", errNoSyncer)
	}
	fmt.Fprintf(r.out, "Updating %s...\n", name)
	r.logger.Debug("updating plugin", "name", name, "directory", dir)
	if err := r.syncer.Update(ctx, dir); err != nil {
		fmt.Fprintf(r.out, "Failed to update %s: %v\n", name, err)
		return r.syncFailed(name, "update", err)
	}
	fmt.Fprintf(r.out, "Updated %s\n", name)
	return Result{Name: name, Status: StatusUpdated}
}

func (r *Registry) syncFailed(name, op string, err error) Result {
	return Result{
		Name:   name,
		Status: StatusFailed,
		Err:    &SyncError{Name: name, Op: op, Err: err},
	}
}
