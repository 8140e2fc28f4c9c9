package cli

import (
	"github.com/spf13/cobra"
)

func newUpdateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update [names...]",
		Short: "Install or update plugins",
		Long: `Clone plugins that are not installed yet and fast-forward the ones that are.

With no names every declared plugin is synced in declaration order. Local
plugins are skipped. A failure is reported and the remaining plugins are still
processed; the command exits non-zero if any plugin failed.`,
		ValidArgsFunction: a.completePluginNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			results := s.registry.Sync(cmd.Context(), args...)
			return batchError("update", results)
		},
	}
}
