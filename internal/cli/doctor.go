package cli

import (
	"fmt"

	"github.com/gdbplug/gdbplug/internal/config"
	"github.com/gdbplug/gdbplug/internal/doctor"
	"github.com/gdbplug/gdbplug/internal/gitsync"
	"github.com/gdbplug/gdbplug/internal/registry"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newDoctorCommand(a *app) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Health check for the plugin setup",
		Long: `Check that git is installed and recent enough, the declaration file is
valid, the plugin home exists and every declared plugin is installed with an
initialization file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			d := doctor.New(w, afero.NewOsFs(), fix)

			d.CheckGit(cmd.Context(), gitsync.New())

			path, err := config.File(a.file)
			if err != nil {
				return fmt.Errorf("resolving declaration file: %w", err)
			}
			d.CheckFile(path)

			s, err := a.open(cmd, registry.WithOutput(cmd.ErrOrStderr()))
			switch {
			case err == nil:
				d.CheckHome(s.registry.Defaults().Home)
				d.CheckPlugins(s.registry)
			case d.Problems() == 0:
				return err
			}

			if n := d.Problems(); n > 0 {
				return fmt.Errorf("%d problems found", n)
			}
			fmt.Fprintln(w, "All checks passed.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Create the plugin home if it is missing")
	return cmd
}
