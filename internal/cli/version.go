package cli

import (
	"encoding/json"
	"fmt"

	"github.com/gdbplug/gdbplug/internal/branding"
	"github.com/spf13/cobra"
)

func newVersionCommand(a *app) *cobra.Command {
	var short, asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(w, a.version)
				return nil
			}

			if asJSON {
				info := map[string]string{
					"version": a.version,
					"commit":  a.commit,
					"date":    a.date,
				}
				out, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling version info: %w", err)
				}
				fmt.Fprintln(w, string(out))
				return nil
			}

			fmt.Fprintf(w, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), a.version, a.commit, a.date)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print version number only")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version info as JSON")
	return cmd
}
