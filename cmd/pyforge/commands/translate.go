// Package commands implements CLI command handlers for pyforge.
package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pyforge/pyforge/internal/project"
	"github.com/pyforge/pyforge/pkg/pyast"
	"github.com/pyforge/pyforge/pkg/transpile"
)

// translateFile parses a Python sketch and renders it into a translation
// unit. The constructible-type registry is seeded from the project
// manifest next to the input file, when one exists.
func translateFile(ctx context.Context, input string, opts transpile.Options) (*transpile.Unit, error) {
	src, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", input, err)
	}

	mod, err := pyast.Parse(ctx, src)
	if err != nil {
		return nil, err
	}

	manifest, err := project.LoadManifest(filepath.Dir(input))
	if err != nil {
		return nil, err
	}

	opts.Constructible = append(opts.Constructible, manifest.Classes...)

	return transpile.New(opts).Transpile(mod), nil
}
