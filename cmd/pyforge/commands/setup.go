package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pyforge/pyforge/internal/arduino"
	"github.com/pyforge/pyforge/internal/config"
)

// NewSetupCommand creates the setup subcommand. It installs the default
// platform core through arduino-cli.
func NewSetupCommand(configPath *string) *cobra.Command {
	var core string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Install the default platform core",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			result, err := arduino.NewCLI(cfg.CLIPath).InstallCore(cmd.Context(), core)
			fmt.Fprint(os.Stdout, result.Output)

			if err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintf(os.Stdout, "Core %s installed\n", core)

			return nil
		},
	}

	cmd.Flags().StringVar(&core, "core", arduino.DefaultCore, "platform core to install")

	return cmd
}
