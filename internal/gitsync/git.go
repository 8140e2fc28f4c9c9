package gitsync

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const (
	// MinVersion is the oldest git that supports "git -C".
	MinVersion = ">= 1.8.5"

	// tmpSuffix is appended to the target dir during atomic clone.
	tmpSuffix = ".tmp"
)

// Git runs clone and pull through the git command line.
type Git struct {
	// Bin is the git executable; empty means "git" from PATH.
	Bin string

	version *semver.Version
}

// New returns a Git that uses the git found on PATH.
func New() *Git {
	return &Git{}
}

// Clone clones uri into directory. The clone lands in a temporary sibling
// first and is renamed into place on success.
func (g *Git) Clone(ctx context.Context, uri, directory string) error {
	if _, err := g.Check(ctx); err != nil {
		return err
	}

	tmpDir := directory + tmpSuffix
	_ = os.RemoveAll(tmpDir)

	if err := os.MkdirAll(filepath.Dir(directory), 0o755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	if _, err := g.run(ctx, "clone", "--recurse-submodules", uri, tmpDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return err
	}

	if err := os.Rename(tmpDir, directory); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("finalizing clone: %w", err)
	}
	return nil
}

// Update fast-forwards the repository in directory.
func (g *Git) Update(ctx context.Context, directory string) error {
	if _, err := g.Check(ctx); err != nil {
		return err
	}
	_, err := g.run(ctx, "-C", directory, "pull", "--ff-only")
	return err
}

// Version returns the installed git version.
func (g *Git) Version(ctx context.Context) (*semver.Version, error) {
	out, err := g.run(ctx, "--version")
	if err != nil {
		return nil, err
	}
	return ParseVersion(out)
}

// ParseVersion extracts the version from "git version X.Y.Z[...]" output.
// Vendor suffixes such as ".windows.1" or " (Apple Git-145)" are dropped.
func ParseVersion(output string) (*semver.Version, error) {
	fields := strings.Fields(output)
	if len(fields) < 3 || fields[0] != "git" || fields[1] != "version" {
		return nil, fmt.Errorf("unrecognized git version output %q", strings.TrimSpace(output))
	}

	parts := strings.SplitN(fields[2], ".", 4)
	if len(parts) > 3 {
		parts = parts[:3]
	}
	v, err := semver.NewVersion(strings.Join(parts, "."))
	if err != nil {
		return nil, fmt.Errorf("parsing git version %q: %w", fields[2], err)
	}
	return v, nil
}

// Check verifies once that git is on PATH and satisfies MinVersion, and
// returns the version found.
func (g *Git) Check(ctx context.Context) (*semver.Version, error) {
	if g.version != nil {
		return g.version, nil
	}
	if _, err := exec.LookPath(g.bin()); err != nil {
		return nil, fmt.Errorf("git is required but not found in PATH")
	}

	v, err := g.Version(ctx)
	if err != nil {
		return nil, err
	}
	c, err := semver.NewConstraint(MinVersion)
	if err != nil {
		return nil, fmt.Errorf("parsing version constraint: %w", err)
	}
	if !c.Check(v) {
		return v, fmt.Errorf("git %s is too old, need %s", v, MinVersion)
	}

	g.version = v
	return v, nil
}

func (g *Git) bin() string {
	if g.Bin != "" {
		return g.Bin
	}
	return "git"
}

// run executes git and returns its combined output. Prompts are disabled so
// a missing or private repository fails instead of waiting for credentials.
func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, g.bin(), args...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w\n%s", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}
