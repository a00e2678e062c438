package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyforge/pyforge/internal/project"
)

const sketchSource = `from lib.stepper import CheapStepper
import time

motor = CheapStepper(8, 9, 10, 11)

def setup():
    pinMode(13, OUTPUT)

def loop():
    digitalWrite(13, HIGH)
    time.sleep(1)
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".pyforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestTranspileCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "robot.py")
	require.NoError(t, os.WriteFile(input, []byte(sketchSource), 0o644))

	configPath := writeConfig(t, "")

	cmd := NewTranspileCommand(&configPath)
	cmd.SetArgs([]string{input})
	require.NoError(t, cmd.Execute())

	out, err := os.ReadFile(filepath.Join(dir, "robot.ino"))
	require.NoError(t, err)

	assert.Contains(t, string(out), `#include "stepper.h"`)
	assert.Contains(t, string(out), "CheapStepper motor(8, 9, 10, 11);")
	assert.Contains(t, string(out), "delay(1000);")
	assert.Contains(t, string(out), "void setup() {")
	assert.Contains(t, string(out), "void loop() {")
}

func TestTranspileCommand_ManifestSeedsRegistry(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "robot.py")
	require.NoError(t, os.WriteFile(input, []byte("arm = Servo(9)\n"), 0o644))

	require.NoError(t, project.SaveManifest(dir, &project.Manifest{Classes: []string{"Servo"}}))

	configPath := writeConfig(t, "")

	cmd := NewTranspileCommand(&configPath)
	cmd.SetArgs([]string{input})
	require.NoError(t, cmd.Execute())

	out, err := os.ReadFile(filepath.Join(dir, "robot.ino"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Servo arm(9);")
}

func TestTranspileCommand_CheckDetectsDrift(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "robot.py")
	require.NoError(t, os.WriteFile(input, []byte("x = y\n"), 0o644))

	output := filepath.Join(dir, "robot.ino")
	require.NoError(t, os.WriteFile(output, []byte("stale\n"), 0o644))

	configPath := writeConfig(t, "")

	cmd := NewTranspileCommand(&configPath)
	cmd.SetArgs([]string{input, "--check"})

	err := cmd.Execute()
	assert.ErrorIs(t, err, ErrCheckMismatch)
}

func TestTranspileCommand_CheckPassesWhenCurrent(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "robot.py")
	require.NoError(t, os.WriteFile(input, []byte("x = y\n"), 0o644))

	configPath := writeConfig(t, "")

	write := NewTranspileCommand(&configPath)
	write.SetArgs([]string{input})
	require.NoError(t, write.Execute())

	check := NewTranspileCommand(&configPath)
	check.SetArgs([]string{input, "--check"})
	require.NoError(t, check.Execute())
}

func TestTranspileCommand_AutoLoopFromConfig(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "robot.py")
	require.NoError(t, os.WriteFile(input, []byte("def step():\n    advance()\n"), 0o644))

	configPath := writeConfig(t, "auto_loop: true\n")

	cmd := NewTranspileCommand(&configPath)
	cmd.SetArgs([]string{input})
	require.NoError(t, cmd.Execute())

	out, err := os.ReadFile(filepath.Join(dir, "robot.ino"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "void loop() {\n    step();\n}")
}
