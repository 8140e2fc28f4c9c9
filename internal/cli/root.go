package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"

	"github.com/gdbplug/gdbplug/internal/branding"
	"github.com/gdbplug/gdbplug/internal/config"
	"github.com/gdbplug/gdbplug/internal/gitsync"
	"github.com/gdbplug/gdbplug/internal/plugfile"
	"github.com/gdbplug/gdbplug/internal/registry"
	"github.com/spf13/cobra"
)

// app holds the state of one invocation: persistent flag values and build
// info. Commands open their own registry from it.
type app struct {
	version string
	commit  string
	date    string

	file      string
	home      string
	autoload  string
	uriFormat string
	logLevel  string
	logFormat string
}

// NewRootCommand builds the command tree with build info attached.
func NewRootCommand(version, commit, date string) *cobra.Command {
	a := &app{version: version, commit: commit, date: date}

	root := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.CLIName() + ` manages GDB plugins declared in a YAML file. It clones and
updates plugin repositories with git and emits the source commands that load
them into a GDB session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.file, "file", "f", "",
		fmt.Sprintf("declaration file (env %s, default %s)", branding.EnvVar("FILE"), config.DefaultFile()))
	flags.StringVar(&a.home, "home", "",
		fmt.Sprintf("plugin clone directory (env %s)", branding.EnvVar("HOME")))
	flags.StringVar(&a.autoload, "autoload", "",
		fmt.Sprintf("default autoload policy, e.g. all,-heavy (env %s)", branding.EnvVar("AUTOLOAD")))
	flags.StringVar(&a.uriFormat, "uri-format", "", "clone URI template with a {} placeholder")
	registerLoggingFlags(root, a)

	root.AddCommand(
		newUpdateCommand(a),
		newListCommand(a),
		newLoadCommand(a),
		newCompleteCommand(a),
		newConfigCommand(a),
		newDoctorCommand(a),
		newGDBInitCommand(a),
		newVersionCommand(a),
	)
	return root
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCommand(version, commit, date)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

// explicitSettings returns the process settings given on the command line.
func (a *app) explicitSettings() config.Settings {
	s := config.Settings{Home: a.home, URIFormat: a.uriFormat}
	if a.autoload != "" {
		s.Autoload = a.autoload
	}
	return s
}

// session is an opened registry plus the declaration file it was built from.
type session struct {
	registry *registry.Registry
	file     string
}

// open resolves the process defaults, reads the declaration file and
// registers its plugins. Entries that fail to resolve are reported on stderr
// and skipped. Status lines go to stdout unless opts say otherwise.
func (a *app) open(cmd *cobra.Command, opts ...registry.Option) (*session, error) {
	logger, err := a.newLogger(cmd)
	if err != nil {
		return nil, err
	}

	path, err := config.File(a.file)
	if err != nil {
		return nil, fmt.Errorf("resolving declaration file: %w", err)
	}
	f, err := plugfile.Load(path)
	if err != nil {
		return nil, err
	}

	defaults, err := config.Resolve(a.explicitSettings().Merge(f.Settings()))
	if err != nil {
		return nil, fmt.Errorf("resolving defaults: %w", err)
	}
	logger.Debug("resolved defaults",
		"file", path, "home", defaults.Home, "autoload", defaults.Autoload, "uri_format", defaults.URIFormat)

	base := []registry.Option{
		registry.WithSyncer(gitsync.New()),
		registry.WithOutput(cmd.OutOrStdout()),
		registry.WithLogger(logger),
	}
	reg := registry.New(defaults, append(base, opts...)...)

	if err := plugfile.Apply(reg, f); err != nil {
		for _, e := range splitJoined(err) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s: %v\n", path, e)
		}
	}
	return &session{registry: reg, file: path}, nil
}

func splitJoined(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

// completePluginNames offers registered plugin names for shell completion.
func (a *app) completePluginNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	s, err := a.open(cmd, registry.WithOutput(cmd.ErrOrStderr()))
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var names []string
	for _, name := range s.registry.Names() {
		if !slices.Contains(args, name) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// batchError summarizes the failed results of a batch operation.
func batchError(op string, results []registry.Result) error {
	failed := registry.Failures(results)
	if len(failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(failed))
	for _, res := range failed {
		errs = append(errs, res.Err)
	}
	return fmt.Errorf("%s: %d of %d plugins failed: %w", op, len(failed), len(results), errors.Join(errs...))
}
