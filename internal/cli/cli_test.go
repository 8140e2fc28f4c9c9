package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	file  string
	home  string
	local string
}

// newFixture declares three plugins: gef (remote, installed), dash (local)
// and heavy (remote, not installed, autoload off).
func newFixture(t *testing.T, extra ...string) fixture {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("GDB_PLUG_AUTOLOAD", "")
	t.Setenv("GDB_PLUG_FILE", "")

	f := fixture{
		file:  filepath.Join(root, "plug.yaml"),
		home:  filepath.Join(root, "plug"),
		local: filepath.Join(root, "src", "dash"),
	}
	t.Setenv("GDB_PLUG_HOME", f.home)

	writeFile(t, filepath.Join(f.home, "gef", "gef.py"), "")
	writeFile(t, filepath.Join(f.local, "main.gdb"), "")

	var b strings.Builder
	b.WriteString("plugins:\n")
	b.WriteString("  - hugsy/gef\n")
	fmt.Fprintf(&b, "  - repo: %q\n", f.local)
	b.WriteString("  - repo: owner/heavy\n    autoload: false\n")
	for _, line := range extra {
		b.WriteString(line + "\n")
	}
	writeFile(t, f.file, b.String())
	return f
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand("1.2.3", "abc123", "2026-01-02")
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestList_Table(t *testing.T) {
	f := newFixture(t)

	out, _, err := execute(t, "list", "--file", f.file)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"NAME", "REPO", "DIRECTORY", "AUTOLOAD", "INSTALLED"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"gef", "hugsy/gef", filepath.Join(f.home, "gef"), "yes", "yes"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"dash", f.local, f.local, "yes", "yes"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"heavy", "owner/heavy", filepath.Join(f.home, "heavy"), "no", "no"}, strings.Fields(lines[3]))
}

func TestList_JSON(t *testing.T) {
	f := newFixture(t)

	out, _, err := execute(t, "list", "--json", "--file", f.file)
	require.NoError(t, err)

	var entries []struct {
		Name      string `json:"name"`
		Installed bool   `json:"installed"`
		Autoload  bool   `json:"autoload"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "gef", entries[0].Name)
	assert.True(t, entries[0].Installed)
	assert.False(t, entries[2].Installed)
	assert.False(t, entries[2].Autoload)
}

func TestList_NoDeclarationFile(t *testing.T) {
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("GDB_PLUG_FILE", "")
	missing := filepath.Join(root, "absent.yaml")

	out, _, err := execute(t, "list", "--file", missing)
	require.NoError(t, err)
	assert.Equal(t, "No plugins declared in "+missing+".\n", out)
}

type loadPlan struct {
	Name       string   `json:"name"`
	Candidates []string `json:"candidates"`
}

func decodePlans(t *testing.T, out string) []loadPlan {
	t.Helper()
	var plans []loadPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plans))
	return plans
}

func TestLoad_PrintsPlanForAutoloadPlugins(t *testing.T) {
	f := newFixture(t)

	out, errOut, err := execute(t, "load", "--file", f.file)
	require.NoError(t, err)

	assert.Equal(t, []loadPlan{
		{Name: "gef", Candidates: []string{filepath.Join(f.home, "gef", "gef.py")}},
		{Name: "dash", Candidates: []string{filepath.Join(f.local, "main.gdb")}},
	}, decodePlans(t, out))
	assert.NotContains(t, errOut, "Loaded plugin")
	assert.NotContains(t, errOut, "heavy")
}

func TestLoad_PlanKeepsFallbackCandidates(t *testing.T) {
	f := newFixture(t, "  - owner/broken", "  - owner/good")
	brokenPy := filepath.Join(f.home, "broken", "broken.py")
	brokenGdb := filepath.Join(f.home, "broken", "main.gdb")
	good := filepath.Join(f.home, "good", "main.gdb")
	writeFile(t, brokenPy, "raise\n")
	writeFile(t, brokenGdb, "")
	writeFile(t, good, "")

	out, _, err := execute(t, "load", "broken", "good", "--file", f.file)
	require.NoError(t, err)
	assert.Equal(t, []loadPlan{
		{Name: "broken", Candidates: []string{brokenPy, brokenGdb}},
		{Name: "good", Candidates: []string{good}},
	}, decodePlans(t, out))
}

func TestLoad_PlanWithUnloadablePlugin(t *testing.T) {
	f := newFixture(t)

	out, errOut, err := execute(t, "load", "heavy", "dash", "--file", f.file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 plugins failed")
	assert.Contains(t, errOut, "Plugin not installed: heavy")

	plans := decodePlans(t, out)
	require.Len(t, plans, 1)
	assert.Equal(t, "dash", plans[0].Name)
}

const fakeGDBModule = `import os
import sys

COMMAND_USER = 13


class error(RuntimeError):
    pass


class Command(object):
    def __init__(self, name, command_class):
        self.name = name


def string_to_argv(arg):
    return arg.split()


def write(s):
    sys.stdout.write(s)


def execute(command):
    with open(os.environ["FAKE_GDB_LOG"], "a") as log:
        log.write(command + "\n")
    with open(command[len("source "):]) as f:
        if "raise" in f.read():
            raise error("Python Exception <class 'ImportError'>: boom")
`

// TestGDBInit_FailingInitFileFallsThrough runs the generated glue under
// python3 against a stand-in gdb module. The CLI it shells out to replays a
// plan produced by the load command.
func TestGDBInit_FailingInitFileFallsThrough(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stand-in CLI is a POSIX shell script")
	}
	python, err := exec.LookPath("python3")
	if err != nil {
		t.Skip("python3 not available")
	}

	f := newFixture(t, "  - owner/broken", "  - owner/good")
	brokenPy := filepath.Join(f.home, "broken", "broken.py")
	brokenGdb := filepath.Join(f.home, "broken", "main.gdb")
	good := filepath.Join(f.home, "good", "main.gdb")
	writeFile(t, brokenPy, "raise\n")
	writeFile(t, brokenGdb, "")
	writeFile(t, good, "")
	// gef would load first; make it fail with no fallback.
	writeFile(t, filepath.Join(f.home, "gef", "gef.py"), "raise\n")

	plan, _, err := execute(t, "load", "--file", f.file)
	require.NoError(t, err)
	glue, _, err := execute(t, "gdbinit")
	require.NoError(t, err)

	dir := t.TempDir()
	planPath := filepath.Join(dir, "plan.json")
	writeFile(t, planPath, plan)
	writeFile(t, filepath.Join(dir, "gdb.py"), fakeGDBModule)
	writeFile(t, filepath.Join(dir, "glue.py"), glue)
	cli := filepath.Join(dir, "gdbplug")
	writeFile(t, cli, "#!/bin/sh\ncat "+planPath+"\n")
	require.NoError(t, os.Chmod(cli, 0o755))
	logPath := filepath.Join(dir, "gdb.log")

	cmd := exec.Command(python, filepath.Join(dir, "glue.py"))
	cmd.Env = append(os.Environ(),
		"PYTHONPATH="+dir,
		"GDB_PLUG_BIN="+cli,
		"FAKE_GDB_LOG="+logPath,
	)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))

	sourced, err := os.ReadFile(logPath)
	require.NoError(t, err)
	gef := filepath.Join(f.home, "gef", "gef.py")
	dash := filepath.Join(f.local, "main.gdb")
	assert.Equal(t,
		"source "+gef+"\nsource "+dash+"\nsource "+brokenPy+"\nsource "+brokenGdb+"\nsource "+good+"\n",
		string(sourced))

	out := string(output)
	assert.Contains(t, out, "Failed to load "+gef+": Python Exception")
	assert.Contains(t, out, "No valid initialization file found for plugin: gef")
	assert.Contains(t, out, "Loaded plugin: dash from "+dash)
	assert.Contains(t, out, "Failed to load "+brokenPy+": Python Exception")
	assert.Contains(t, out, "Loaded plugin: broken from "+brokenGdb)
	assert.Contains(t, out, "Loaded plugin: good from "+good)
}

func TestLoad_NamedPluginNotInstalled(t *testing.T) {
	f := newFixture(t)

	out, errOut, err := execute(t, "load", "heavy", "--file", f.file)
	require.Error(t, err)
	assert.Equal(t, "[]\n", out)
	assert.Contains(t, errOut, "Plugin not installed: heavy. Run 'gdbplug update' to install.")
	assert.Contains(t, err.Error(), "1 of 1 plugins failed")
}

func TestLoad_DryRun(t *testing.T) {
	f := newFixture(t)

	out, errOut, err := execute(t, "load", "dash", "--dry-run", "--file", f.file)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "[mockgdb] Executing command: source "+filepath.Join(f.local, "main.gdb"))
}

func TestUpdate_LocalPluginSkipped(t *testing.T) {
	f := newFixture(t)

	out, _, err := execute(t, "update", "dash", "--file", f.file)
	require.NoError(t, err)
	assert.Equal(t, "Not a remote repo, skipping dash\n", out)
}

func TestUpdate_UnknownPlugin(t *testing.T) {
	f := newFixture(t)

	out, _, err := execute(t, "update", "nope", "--file", f.file)
	require.Error(t, err)
	assert.Equal(t, "Plugin not registered: nope\n", out)
}

func TestInvalidEntryIsReportedAndSkipped(t *testing.T) {
	f := newFixture(t, "  - justname")

	out, errOut, err := execute(t, "list", "--json", "--file", f.file)
	require.NoError(t, err)
	assert.Contains(t, errOut, "plugins[3]")
	assert.Contains(t, errOut, "justname")

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, 3)
}

func TestComplete(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"subcommands", []string{"", "l"}, "list\nload\n"},
		{"plugin names", []string{"load ", ""}, "gef\ndash\nheavy\n"},
		{"filtered names", []string{"update g", "g"}, "gef\n"},
		{"no arguments", nil, "update\nlist\nload\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"complete", "--file", f.file, "--"}, tt.args...)
			out, _, err := execute(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestConfig_FlagOverridesEnvironment(t *testing.T) {
	f := newFixture(t)

	out, _, err := execute(t, "config", "--file", f.file, "--home", "/opt/plug", "--autoload", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "/opt/plug")
	assert.Contains(t, out, "none")
	assert.Contains(t, out, f.file)
	assert.NotContains(t, out, f.home+string(filepath.Separator))
	assert.Contains(t, out, "plugins     3")
}

func TestInvalidLogLevel(t *testing.T) {
	f := newFixture(t)

	_, _, err := execute(t, "list", "--file", f.file, "--loglevel", "chatty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestGDBInit(t *testing.T) {
	out, _, err := execute(t, "gdbinit")
	require.NoError(t, err)
	assert.Contains(t, out, `super().__init__("Plug", gdb.COMMAND_USER)`)
	assert.Contains(t, out, `CLI = os.environ.get("GDB_PLUG_BIN", "gdbplug")`)
	assert.Contains(t, out, `except Exception as e:`)
	assert.True(t, strings.HasSuffix(out, "PlugCommand()\nload([])\n"))

	out, _, err = execute(t, "gdbinit", "--no-autoload")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "PlugCommand()\n"))
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)

	out, _, err = execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "gdbplug version 1.2.3 (commit: abc123, built: 2026-01-02)\n", out)
}

func TestDoctor_InvalidDeclarationFile(t *testing.T) {
	root := t.TempDir()
	t.Setenv("HOME", root)
	path := filepath.Join(root, "plug.yaml")
	writeFile(t, path, "plugins:\n  - repo: owner/x\n    branch: main\n")

	out, _, err := execute(t, "doctor", "--file", path)
	require.Error(t, err)
	assert.Contains(t, out, "Declaration file check:")
	assert.Contains(t, out, "[FAIL] "+path)
	assert.NotContains(t, out, "Plugin check:")
}
