package cli

import (
	"fmt"

	"github.com/gdbplug/gdbplug/internal/branding"
	"github.com/gdbplug/gdbplug/internal/host"
	"github.com/gdbplug/gdbplug/internal/registry"
	"github.com/spf13/cobra"
)

func newCompleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <text> [word]",
		Short: "Complete a " + branding.GDBCommand() + " command line",
		Long: `Print completions for a partial GDB command line, one per line. text is
the argument string typed after the GDB command so far and word is the word
being completed. Used by the GDB command glue.`,
		Args:   cobra.RangeArgs(0, 2),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var text, word string
			if len(args) > 0 {
				text = args[0]
			}
			if len(args) > 1 {
				word = args[1]
			}

			s, err := a.open(cmd, registry.WithOutput(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			for _, c := range host.Complete(text, word, s.registry.Names()) {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}
