package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/pyforge/pyforge/internal/config"
	"github.com/pyforge/pyforge/pkg/transpile"
)

// ErrCheckMismatch is returned by --check when the existing output file
// differs from the fresh translation.
var ErrCheckMismatch = errors.New("output file is out of date, rerun transpile")

// TranspileCommand holds configuration for the transpile command.
type TranspileCommand struct {
	output     string
	autoLoop   bool
	heuristic  bool
	check      bool
	configPath *string
}

// NewTranspileCommand creates the transpile subcommand.
func NewTranspileCommand(configPath *string) *cobra.Command {
	tc := &TranspileCommand{configPath: configPath}

	cmd := &cobra.Command{
		Use:   "transpile <sketch.py>",
		Short: "Translate a Python sketch into a .ino file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return tc.run(cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&tc.output, "output", "o", "", "output file path (default: input with .ino extension)")
	cmd.Flags().BoolVar(&tc.autoLoop, "auto-loop", false, "populate a synthesized loop with calls to the other procedures")
	cmd.Flags().BoolVar(&tc.heuristic, "heuristic-construction", false, "treat any bare-name call assignment as object construction")
	cmd.Flags().BoolVar(&tc.check, "check", false, "verify the existing output is up to date instead of writing")

	return cmd
}

func (tc *TranspileCommand) run(cmd *cobra.Command, input string) error {
	cfg, err := config.Load(*tc.configPath)
	if err != nil {
		return err
	}

	opts := transpile.Options{
		AutoLoop:              cfg.AutoLoop,
		HeuristicConstruction: cfg.HeuristicConstruction,
	}

	if cmd.Flags().Changed("auto-loop") {
		opts.AutoLoop = tc.autoLoop
	}

	if cmd.Flags().Changed("heuristic-construction") {
		opts.HeuristicConstruction = tc.heuristic
	}

	unit, err := translateFile(cmd.Context(), input, opts)
	if err != nil {
		return err
	}

	output := tc.output
	if output == "" {
		output = transpile.OutputPath(input)
	}

	if tc.check {
		return checkOutput(output, unit.Bytes())
	}

	if err := unit.WriteFile(output); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(os.Stdout, "Wrote %s (%s)\n", output, humanize.Bytes(uint64(len(unit.Bytes()))))

	return nil
}

// checkOutput diffs the fresh translation against the file on disk and
// prints a readable diff on mismatch.
func checkOutput(output string, fresh []byte) error {
	existing, err := os.ReadFile(output)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrCheckMismatch, output)
	}

	if string(existing) == string(fresh) {
		color.New(color.FgGreen).Fprintf(os.Stdout, "%s is up to date\n", output)
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(existing), string(fresh), false)
	fmt.Fprint(os.Stdout, dmp.DiffPrettyText(diffs))

	return fmt.Errorf("%w: %s", ErrCheckMismatch, output)
}
