package arduino

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PrepareSketch lays out the directory structure arduino-cli expects: a
// directory named after the sketch containing <name>.ino, plus any
// library headers (and their sources) copied alongside. A previous
// sketch directory is replaced.
func PrepareSketch(inoPath, libDir string, headers []string) (string, error) {
	name := strings.TrimSuffix(filepath.Base(inoPath), filepath.Ext(inoPath))
	sketchDir := filepath.Join(filepath.Dir(inoPath), name)

	if err := os.RemoveAll(sketchDir); err != nil {
		return "", fmt.Errorf("arduino: clear sketch dir: %w", err)
	}

	if err := os.MkdirAll(sketchDir, 0o755); err != nil {
		return "", fmt.Errorf("arduino: create sketch dir: %w", err)
	}

	if err := os.Rename(inoPath, filepath.Join(sketchDir, name+".ino")); err != nil {
		return "", fmt.Errorf("arduino: move sketch: %w", err)
	}

	for _, h := range headers {
		copyIfPresent(filepath.Join(libDir, h), sketchDir)
		copyIfPresent(filepath.Join(libDir, strings.TrimSuffix(h, ".h")+".cpp"), sketchDir)
	}

	return sketchDir, nil
}

// copyIfPresent copies a library file into the sketch directory, quietly
// skipping files that do not exist.
func copyIfPresent(src, destDir string) {
	data, err := os.ReadFile(src)
	if err != nil {
		return
	}

	_ = os.WriteFile(filepath.Join(destDir, filepath.Base(src)), data, 0o644)
}
