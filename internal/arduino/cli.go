// Package arduino is the thin process-invocation glue around the
// arduino-cli build tool: board discovery, compile and upload steps with
// captured output, and upload log persistence. Failures here never touch
// an already-written translation unit.
package arduino

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Sentinel errors for collaborator failures.
var (
	// ErrCLINotFound reports a missing arduino-cli binary.
	ErrCLINotFound = errors.New("arduino: arduino-cli not found, install it first")

	// ErrNoPort reports that no board port could be auto-detected.
	ErrNoPort = errors.New("arduino: could not auto-detect a board port, specify one explicitly")
)

// DefaultFQBN is the fallback fully qualified board name.
const DefaultFQBN = "arduino:avr:uno"

// DefaultCore is the platform core installed by the setup command.
const DefaultCore = "arduino:avr"

// Runner executes an external command and returns its captured output.
// It exists so tests can substitute fake commands.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var outBuf, errBuf bytes.Buffer

	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()

	return outBuf.String(), errBuf.String(), err
}

// CLI drives one arduino-cli binary.
type CLI struct {
	bin    string
	runner Runner
}

// NewCLI returns a CLI for the given binary path or name.
func NewCLI(bin string) *CLI {
	return &CLI{bin: bin, runner: execRunner{}}
}

// WithRunner substitutes the command runner. Test seam.
func (c *CLI) WithRunner(r Runner) *CLI {
	c.runner = r
	return c
}

// StepResult is the captured outcome of one external build step.
type StepResult struct {
	Command string
	Output  string
	OK      bool
}

// Board is one connected board as reported by board list.
type Board struct {
	Port string
	FQBN string
	Name string
}

// ListBoards runs board list and parses the connected boards.
func (c *CLI) ListBoards(ctx context.Context) ([]Board, error) {
	stdout, _, err := c.runner.Run(ctx, c.bin, "board", "list")
	if err != nil {
		return nil, c.wrapRunError("board list", err)
	}

	return parseBoardList(stdout), nil
}

// parseBoardList extracts boards from the tabular board list output. The
// first column is the port; an FQBN is recognized by its two colons.
func parseBoardList(output string) []Board {
	var boards []Board

	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] == "Port" {
			continue
		}

		port := fields[0]
		if !isPort(port) {
			continue
		}

		board := Board{Port: port}

		const fqbnColons = 2

		var nameParts []string

		for _, f := range fields[1:] {
			if strings.Count(f, ":") == fqbnColons {
				board.FQBN = f
				continue
			}

			nameParts = append(nameParts, f)
		}

		board.Name = strings.Join(nameParts, " ")
		boards = append(boards, board)
	}

	return boards
}

func isPort(s string) bool {
	return strings.HasPrefix(s, "/dev/") || strings.Contains(s, "COM")
}

// DetectPort returns the port of the first connected board.
func (c *CLI) DetectPort(ctx context.Context) (string, error) {
	boards, err := c.ListBoards(ctx)
	if err != nil {
		return "", err
	}

	if len(boards) == 0 {
		return "", ErrNoPort
	}

	return boards[0].Port, nil
}

// Compile builds the sketch directory for the given board.
func (c *CLI) Compile(ctx context.Context, sketchDir, fqbn string) (StepResult, error) {
	return c.step(ctx, "compile", "compile", "--fqbn", fqbn, sketchDir)
}

// Upload flashes the compiled sketch to the given port.
func (c *CLI) Upload(ctx context.Context, sketchDir, port, fqbn string) (StepResult, error) {
	return c.step(ctx, "upload", "upload", "-p", port, "--fqbn", fqbn, sketchDir)
}

// InstallCore installs a platform core.
func (c *CLI) InstallCore(ctx context.Context, core string) (StepResult, error) {
	return c.step(ctx, "core install", "core", "install", core)
}

func (c *CLI) step(ctx context.Context, label string, args ...string) (StepResult, error) {
	stdout, stderr, err := c.runner.Run(ctx, c.bin, args...)

	result := StepResult{Command: label, Output: stdout + stderr, OK: err == nil}
	if err != nil {
		return result, c.wrapRunError(label, err)
	}

	return result, nil
}

func (c *CLI) wrapRunError(label string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w (%s)", ErrCLINotFound, c.bin)
	}

	return fmt.Errorf("arduino: %s failed: %w", label, err)
}
