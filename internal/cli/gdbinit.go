package cli

import (
	_ "embed"
	"fmt"
	"text/template"

	"github.com/gdbplug/gdbplug/internal/branding"
	"github.com/spf13/cobra"
)

//go:embed gdbinit.py.tmpl
var gdbinitSource string

var gdbinitTemplate = template.Must(template.New("gdbinit").Parse(gdbinitSource))

type gdbinitData struct {
	CLI      string
	BinEnv   string
	Command  string
	Autoload bool
}

func newGDBInitCommand(a *app) *cobra.Command {
	var noAutoload bool

	cmd := &cobra.Command{
		Use:   "gdbinit",
		Short: "Print the GDB glue that defines the " + branding.GDBCommand() + " command",
		Long: fmt.Sprintf(`Print a GDB Python script that defines the %[1]s command and, unless
--no-autoload is given, loads autoload plugins at startup. Add it to ~/.gdbinit:

  %[2]s gdbinit > ~/.config/gdb/%[2]s.py
  echo 'source ~/.config/gdb/%[2]s.py' >> ~/.gdbinit`, branding.GDBCommand(), branding.CLIName()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := gdbinitData{
				CLI:      branding.CLIName(),
				BinEnv:   branding.EnvVar("BIN"),
				Command:  branding.GDBCommand(),
				Autoload: !noAutoload,
			}
			if err := gdbinitTemplate.Execute(cmd.OutOrStdout(), data); err != nil {
				return fmt.Errorf("rendering gdbinit: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noAutoload, "no-autoload", false, "Do not load autoload plugins at startup")
	return cmd
}
