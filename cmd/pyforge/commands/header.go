package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pyforge/pyforge/internal/project"
	"github.com/pyforge/pyforge/pkg/header"
)

// ErrNoClasses is returned when a header contains no class definitions.
var ErrNoClasses = errors.New("no classes found in header")

// HeaderCommand holds configuration for the header command.
type HeaderCommand struct {
	outDir     string
	projectDir string
}

// NewHeaderCommand creates the header subcommand. It introspects a C++
// library header, writes a Python stub next to it and records the class
// names in the project manifest.
func NewHeaderCommand() *cobra.Command {
	hc := &HeaderCommand{}

	cmd := &cobra.Command{
		Use:   "header <library.h>",
		Short: "Generate Python stubs from a C++ library header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return hc.run(cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&hc.outDir, "output", "o", "", "stub output directory (default: the header's directory)")
	cmd.Flags().StringVar(&hc.projectDir, "project", ".", "project directory holding the manifest")

	return cmd
}

func (hc *HeaderCommand) run(cmd *cobra.Command, headerPath string) error {
	src, err := os.ReadFile(headerPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", headerPath, err)
	}

	classes, err := header.Extract(cmd.Context(), src)
	if err != nil {
		return err
	}

	if len(classes) == 0 {
		return fmt.Errorf("%w: %s", ErrNoClasses, headerPath)
	}

	outDir := hc.outDir
	if outDir == "" {
		outDir = filepath.Dir(headerPath)
	}

	stubPath := header.StubPath(outDir, headerPath)
	if err := os.WriteFile(stubPath, header.GenerateStub(classes), 0o644); err != nil {
		return fmt.Errorf("write stub: %w", err)
	}

	names := header.ClassNames(classes)

	manifest, err := project.LoadManifest(hc.projectDir)
	if err != nil {
		return err
	}

	manifest.RegisterClasses(names)

	if err := project.SaveManifest(hc.projectDir, manifest); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(os.Stdout, "Wrote %s\n", stubPath)

	for _, name := range names {
		fmt.Fprintf(os.Stdout, "  registered class %s\n", name)
	}

	return nil
}
