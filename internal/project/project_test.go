package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "robot")

	require.NoError(t, Create(dir, "arduino:avr:uno"))

	assert.DirExists(t, filepath.Join(dir, LibDir))
	assert.FileExists(t, filepath.Join(dir, "main.py"))

	m, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "arduino:avr:uno", m.FQBN)

	data, err := os.ReadFile(filepath.Join(dir, "main.py"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "def setup():")
	assert.Contains(t, string(data), "def loop():")
}

func TestCreate_ExistingDirectoryFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := Create(dir, "arduino:avr:uno")
	assert.Error(t, err)
}

func TestLoadManifest_Missing(t *testing.T) {
	t.Parallel()

	m, err := LoadManifest(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, m.FQBN)
	assert.Empty(t, m.Classes)
}

func TestManifest_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	in := &Manifest{FQBN: "arduino:avr:nano", Classes: []string{"Servo"}}
	require.NoError(t, SaveManifest(dir, in))

	out, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRegisterClasses_SortsAndDeduplicates(t *testing.T) {
	t.Parallel()

	m := &Manifest{Classes: []string{"Servo"}}
	m.RegisterClasses([]string{"CheapStepper", "Servo", "Beeper"})

	assert.Equal(t, []string{"Beeper", "CheapStepper", "Servo"}, m.Classes)
}
