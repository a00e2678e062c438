package commands

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pyforge/pyforge/internal/config"
	"github.com/pyforge/pyforge/internal/project"
)

// NewCreateCommand creates the create subcommand. It scaffolds a project
// directory with a starter sketch, a lib directory and a manifest.
func NewCreateCommand(configPath *string) *cobra.Command {
	var fqbn string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Scaffold a new pyforge project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("fqbn") {
				fqbn = cfg.FQBN
			}

			if err := project.Create(args[0], fqbn); err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintf(os.Stdout, "Created project %s (%s)\n", args[0], fqbn)

			return nil
		},
	}

	cmd.Flags().StringVarP(&fqbn, "fqbn", "b", "", "fully qualified board name for the project")

	return cmd
}
