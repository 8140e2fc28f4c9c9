// Package doctor runs health checks on a gdbplug installation: the git
// binary, the declaration file, the plugin home and every declared plugin.
package doctor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/gdbplug/gdbplug/internal/branding"
	"github.com/gdbplug/gdbplug/internal/plugfile"
	"github.com/gdbplug/gdbplug/internal/registry"
	"github.com/spf13/afero"
)

// DirPerm is the mode used when creating the plugin home.
const DirPerm os.FileMode = 0o755

// GitChecker reports the installed git version, failing when git is missing
// or too old.
type GitChecker interface {
	Check(ctx context.Context) (*semver.Version, error)
}

// Doctor writes one line per check to its writer and counts problems.
type Doctor struct {
	w        io.Writer
	fs       afero.Fs
	fix      bool
	problems int
}

// New returns a Doctor writing to w. With fix set, repairable problems are
// repaired in place.
func New(w io.Writer, fs afero.Fs, fix bool) *Doctor {
	return &Doctor{w: w, fs: fs, fix: fix}
}

// Problems returns the number of failed or missing checks reported so far.
func (d *Doctor) Problems() int {
	return d.problems
}

func (d *Doctor) ok(format string, args ...any) {
	fmt.Fprintf(d.w, "  [ OK ] "+format+"\n", args...)
}

func (d *Doctor) miss(format string, args ...any) {
	d.problems++
	fmt.Fprintf(d.w, "  [MISS] "+format+"\n", args...)
}

func (d *Doctor) fail(format string, args ...any) {
	d.problems++
	fmt.Fprintf(d.w, "  [FAIL] "+format+"\n", args...)
}

func (d *Doctor) hint(format string, args ...any) {
	fmt.Fprintf(d.w, "         "+format+"\n", args...)
}

// CheckGit verifies git is installed and recent enough.
func (d *Doctor) CheckGit(ctx context.Context, git GitChecker) {
	fmt.Fprintln(d.w, "Git check:")
	v, err := git.Check(ctx)
	if err != nil {
		d.fail("%v", err)
		return
	}
	d.ok("git %s", v)
}

// CheckFile verifies the declaration file exists and is valid.
func (d *Doctor) CheckFile(path string) {
	fmt.Fprintln(d.w, "Declaration file check:")
	data, err := afero.ReadFile(d.fs, path)
	if os.IsNotExist(err) {
		d.miss("%s does not exist", path)
		d.hint("Declare plugins there, e.g. 'plugins: [hugsy/gef]'")
		return
	}
	if err != nil {
		d.fail("%s: %v", path, err)
		return
	}

	f, err := plugfile.Parse(data)
	if err != nil {
		d.fail("%s: %v", path, err)
		return
	}
	d.ok("%s (%d plugins declared)", path, len(f.Plugins))
}

// CheckHome verifies the plugin home is a directory, creating it when fixing.
func (d *Doctor) CheckHome(home string) {
	fmt.Fprintln(d.w, "Plugin home check:")
	info, err := d.fs.Stat(home)
	if os.IsNotExist(err) {
		if !d.fix {
			d.miss("%s does not exist", home)
			d.hint("Run '%s update' or '%s doctor --fix' to create it", branding.CLIName(), branding.CLIName())
			return
		}
		if err := d.fs.MkdirAll(home, DirPerm); err != nil {
			d.fail("Could not create %s: %v", home, err)
			return
		}
		fmt.Fprintf(d.w, "  [FIX ] Created %s\n", home)
		return
	}
	if err != nil {
		d.fail("%s: %v", home, err)
		return
	}
	if !info.IsDir() {
		d.fail("%s exists but is not a directory", home)
		return
	}
	d.ok("%s exists", home)
}

// CheckPlugins verifies every registered plugin is installed and has an
// initialization file.
func (d *Doctor) CheckPlugins(reg *registry.Registry) {
	fmt.Fprintln(d.w, "Plugin check:")
	entries := reg.List()
	if len(entries) == 0 {
		d.ok("no plugins declared")
		return
	}

	missing := 0
	for _, e := range entries {
		if !e.Installed {
			missing++
			d.miss("%s: not installed at %s", e.Name, e.Directory)
			continue
		}
		path, ok := reg.InitFile(e.Name)
		if !ok {
			d.fail("%s: no initialization file in %s", e.Name, e.Directory)
			continue
		}
		d.ok("%s: %s", e.Name, path)
	}
	if missing > 0 {
		d.hint("Run '%s update' to install missing plugins", branding.CLIName())
	}
}
