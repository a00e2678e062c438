package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyforge/pyforge/internal/project"
)

const servoHeader = `class Servo {
public:
    Servo();
    void attach(int pin);
    void write(int angle);
};
`

func TestHeaderCommand(t *testing.T) {
	dir := t.TempDir()
	headerPath := filepath.Join(dir, "Servo.h")
	require.NoError(t, os.WriteFile(headerPath, []byte(servoHeader), 0o644))

	cmd := NewHeaderCommand()
	cmd.SetArgs([]string{headerPath, "--project", dir})
	require.NoError(t, cmd.Execute())

	stub, err := os.ReadFile(filepath.Join(dir, "Servo.py"))
	require.NoError(t, err)
	assert.Contains(t, string(stub), "class Servo:")
	assert.Contains(t, string(stub), "def attach(self, pin: int):")

	manifest, err := project.LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Servo"}, manifest.Classes)
}

func TestHeaderCommand_NoClasses(t *testing.T) {
	dir := t.TempDir()
	headerPath := filepath.Join(dir, "util.h")
	require.NoError(t, os.WriteFile(headerPath, []byte("#define MAX 10\n"), 0o644))

	cmd := NewHeaderCommand()
	cmd.SetArgs([]string{headerPath, "--project", dir})

	err := cmd.Execute()
	assert.ErrorIs(t, err, ErrNoClasses)
}
