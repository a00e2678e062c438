package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pyforge/pyforge/internal/arduino"
	"github.com/pyforge/pyforge/internal/config"
)

// NewBoardsCommand creates the boards subcommand.
func NewBoardsCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List connected boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			boards, err := arduino.NewCLI(cfg.CLIPath).ListBoards(cmd.Context())
			if err != nil {
				return err
			}

			if len(boards) == 0 {
				fmt.Fprintln(os.Stdout, "No boards connected.")
				return nil
			}

			tbl := table.NewWriter()
			tbl.SetOutputMirror(os.Stdout)
			tbl.SetStyle(table.StyleLight)
			tbl.AppendHeader(table.Row{"Port", "FQBN", "Board"})

			for _, b := range boards {
				tbl.AppendRow(table.Row{b.Port, b.FQBN, b.Name})
			}

			tbl.Render()

			return nil
		},
	}
}
