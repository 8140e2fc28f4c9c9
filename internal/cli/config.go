package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newConfigCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Show the declaration file in use and the defaults every plugin is resolved
against, after flags, the declaration file and the environment are applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			d := s.registry.Defaults()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "file\t%s\n", s.file)
			fmt.Fprintf(tw, "home\t%s\n", d.Home)
			fmt.Fprintf(tw, "autoload\t%v\n", d.Autoload)
			fmt.Fprintf(tw, "uri_format\t%s\n", d.URIFormat)
			fmt.Fprintf(tw, "plugins\t%d\n", s.registry.Len())
			return tw.Flush()
		},
	}
}
