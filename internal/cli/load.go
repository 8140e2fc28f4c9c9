package cli

import (
	"encoding/json"
	"fmt"

	"github.com/gdbplug/gdbplug/internal/host"
	"github.com/gdbplug/gdbplug/internal/registry"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newLoadCommand(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "load [names...]",
		Short: "Print the load plan of plugins",
		Long: `Print, as JSON on stdout, the initialization files present for each plugin
in probing order. The GDB command glue sources them one at a time, reports
each failure and falls through to the next candidate until one sources
cleanly. Status lines for plugins that cannot be loaded go to stderr.

With no names every plugin whose autoload policy is on is planned. Named
plugins are planned regardless of autoload. --dry-run sources through a mock
GDB session instead and reports each command it would execute.`,
		ValidArgsFunction: a.completePluginNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				return a.runLoadDryRun(cmd, args)
			}

			s, err := a.open(cmd, registry.WithOutput(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			var plans []registry.LoadPlan
			var failed []registry.Result
			if len(args) == 0 {
				plans, failed = s.registry.PlanAll()
			} else {
				plans, failed = s.registry.PlanNames(args...)
			}

			data, err := json.MarshalIndent(plans, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling load plan: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))

			results := make([]registry.Result, 0, len(plans)+len(failed))
			for _, p := range plans {
				results = append(results, registry.Result{Name: p.Name, Status: registry.StatusPlanned})
			}
			return batchError("load", append(results, failed...))
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Source through a mock GDB session")
	return cmd
}

func (a *app) runLoadDryRun(cmd *cobra.Command, args []string) error {
	mock := &host.Mock{Out: cmd.ErrOrStderr()}
	s, err := a.open(cmd,
		registry.WithOutput(cmd.ErrOrStderr()),
		registry.WithLoader(host.NewLoader(mock, afero.NewOsFs())),
	)
	if err != nil {
		return err
	}

	var results []registry.Result
	if len(args) == 0 {
		results = s.registry.LoadAll(cmd.Context())
	} else {
		results = s.registry.LoadNames(cmd.Context(), args...)
	}
	return batchError("load", results)
}
