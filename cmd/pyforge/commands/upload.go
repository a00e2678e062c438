package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pyforge/pyforge/internal/arduino"
	"github.com/pyforge/pyforge/internal/config"
	"github.com/pyforge/pyforge/internal/project"
	"github.com/pyforge/pyforge/pkg/transpile"
)

// UploadCommand holds configuration for the upload command.
type UploadCommand struct {
	port       string
	fqbn       string
	autoLoop   bool
	configPath *string
}

// NewUploadCommand creates the upload subcommand: translate, lay out the
// sketch directory, compile and flash in one step.
func NewUploadCommand(configPath *string) *cobra.Command {
	uc := &UploadCommand{configPath: configPath}

	cmd := &cobra.Command{
		Use:   "upload <sketch.py>",
		Short: "Translate, compile and flash a sketch to a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return uc.run(cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&uc.port, "port", "p", "", "board port (default: first detected board)")
	cmd.Flags().StringVarP(&uc.fqbn, "fqbn", "b", "", "fully qualified board name (default: manifest, then config)")
	cmd.Flags().BoolVar(&uc.autoLoop, "auto-loop", false, "populate a synthesized loop with calls to the other procedures")

	return cmd
}

func (uc *UploadCommand) run(cmd *cobra.Command, input string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(*uc.configPath)
	if err != nil {
		return err
	}

	opts := transpile.Options{
		AutoLoop:              cfg.AutoLoop,
		HeuristicConstruction: cfg.HeuristicConstruction,
	}

	if cmd.Flags().Changed("auto-loop") {
		opts.AutoLoop = uc.autoLoop
	}

	unit, err := translateFile(ctx, input, opts)
	if err != nil {
		return err
	}

	inoPath := transpile.OutputPath(input)
	if err := unit.WriteFile(inoPath); err != nil {
		return err
	}

	headers := make([]string, 0, len(unit.Includes))
	for _, inc := range unit.Includes {
		headers = append(headers, inc.Header)
	}

	projectDir := filepath.Dir(input)

	sketchDir, err := arduino.PrepareSketch(inoPath, filepath.Join(projectDir, project.LibDir), headers)
	if err != nil {
		return err
	}

	fqbn, err := uc.resolveFQBN(projectDir, cfg)
	if err != nil {
		return err
	}

	cli := arduino.NewCLI(cfg.CLIPath)

	port := uc.port
	if port == "" {
		port, err = cli.DetectPort(ctx)
		if err != nil {
			return err
		}
	}

	compile, err := cli.Compile(ctx, sketchDir, fqbn)
	logOutput := compile.Output

	if err == nil {
		var upload arduino.StepResult

		upload, err = cli.Upload(ctx, sketchDir, port, fqbn)
		logOutput += upload.Output
	}

	if logPath, logErr := arduino.WriteLog(sketchDir, logOutput); logErr == nil {
		fmt.Fprintf(os.Stdout, "Build log: %s\n", logPath)
	}

	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stdout, "Upload failed\n")
		return err
	}

	color.New(color.FgGreen).Fprintf(os.Stdout, "Uploaded %s to %s (%s)\n", filepath.Base(sketchDir), port, fqbn)

	return nil
}

// resolveFQBN picks the board name by precedence: flag, project manifest,
// then config default.
func (uc *UploadCommand) resolveFQBN(projectDir string, cfg *config.Config) (string, error) {
	if uc.fqbn != "" {
		return uc.fqbn, nil
	}

	manifest, err := project.LoadManifest(projectDir)
	if err != nil {
		return "", err
	}

	if manifest.FQBN != "" {
		return manifest.FQBN, nil
	}

	return cfg.FQBN, nil
}
