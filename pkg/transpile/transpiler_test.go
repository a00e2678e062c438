package transpile

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pyforge/pyforge/pkg/pyast"
)

func transpileSource(t *testing.T, src string, opts Options) *Unit {
	t.Helper()

	mod, err := pyast.Parse(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	return New(opts).Transpile(mod)
}

func TestTranspile_FullSketch(t *testing.T) {
	t.Parallel()

	src := `from lib.stepper import CheapStepper
import time

SPEED = 15  # steps per second

# drive train
motor = CheapStepper(8, 9, 10, 11)

def setup():
    pinMode(13, OUTPUT)

def loop():
    digitalWrite(13, HIGH)
    time.sleep(0.5)
`

	want := `#include "stepper.h"

#define SPEED 15 // steps per second

// drive train
CheapStepper motor(8, 9, 10, 11);

void setup() {
    pinMode(13, OUTPUT);
}

void loop() {
    digitalWrite(13, HIGH);
    delay(500);
}
`

	unit := transpileSource(t, src, Options{})

	if got := string(unit.Bytes()); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTranspile_Deterministic(t *testing.T) {
	t.Parallel()

	src := `x = 1

def setup():
    pinMode(13, OUTPUT)
`

	mod, err := pyast.Parse(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	first := New(Options{}).Transpile(mod).Bytes()
	second := New(Options{}).Transpile(mod).Bytes()

	if !bytes.Equal(first, second) {
		t.Error("repeated translation of the same module differs")
	}
}

func TestTranspile_EntryPointSynthesis(t *testing.T) {
	t.Parallel()

	unit := transpileSource(t, "x = y\n", Options{})

	want := `x = y;

void setup() {}

void loop() {}
`

	if got := string(unit.Bytes()); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTranspile_AutoLoopCallsUserFunctions(t *testing.T) {
	t.Parallel()

	src := `def step():
    advance()

def check():
    poll()
`

	unit := transpileSource(t, src, Options{AutoLoop: true})

	want := `void setup() {}

void step() {
    advance();
}

void check() {
    poll();
}

void loop() {
    step();
    check();
}
`

	if got := string(unit.Bytes()); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTranspile_SetupFirstLoopLast(t *testing.T) {
	t.Parallel()

	src := `def loop():
    tick()

def helper():
    work()

def setup():
    begin()
`

	unit := transpileSource(t, src, Options{})
	out := string(unit.Bytes())

	setupAt := strings.Index(out, "void setup()")
	helperAt := strings.Index(out, "void helper()")
	loopAt := strings.Index(out, "void loop()")

	if setupAt == -1 || helperAt == -1 || loopAt == -1 {
		t.Fatalf("missing function block:\n%s", out)
	}

	if !(setupAt < helperAt && helperAt < loopAt) {
		t.Errorf("function order setup=%d helper=%d loop=%d, want setup < helper < loop", setupAt, helperAt, loopAt)
	}
}

func TestTranspile_CommentInterleaving(t *testing.T) {
	t.Parallel()

	src := `def setup():
    # prepare pins
    pinMode(13, OUTPUT)  # led
`

	unit := transpileSource(t, src, Options{})

	want := `void setup() {
    // prepare pins
    pinMode(13, OUTPUT); // led
}

void loop() {}
`

	if got := string(unit.Bytes()); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTranspile_ImportRegistryIsOrderIndependent(t *testing.T) {
	t.Parallel()

	// The construction appears before the import that registers its type.
	src := `arm = Servo(9)
from lib.servo import Servo
`

	unit := transpileSource(t, src, Options{})
	out := string(unit.Bytes())

	if !strings.Contains(out, "Servo arm(9);") {
		t.Errorf("expected typed construction, got:\n%s", out)
	}
}

func TestTranspile_BuiltinImportContributesNothing(t *testing.T) {
	t.Parallel()

	unit := transpileSource(t, "from Arduino import *\n", Options{})

	if len(unit.Includes) != 0 {
		t.Errorf("builtin import produced includes: %v", unit.Includes)
	}
}

func TestUnit_AddIncludeDeduplicates(t *testing.T) {
	t.Parallel()

	u := NewUnit()
	u.AddInclude("servo.h", "")
	u.AddInclude("stepper.h", "")
	u.AddInclude("servo.h", "dup")

	if len(u.Includes) != 2 {
		t.Fatalf("got %d includes, want 2", len(u.Includes))
	}

	if u.Includes[0].Header != "servo.h" || u.Includes[1].Header != "stepper.h" {
		t.Errorf("include order = %v, want first-seen order", u.Includes)
	}
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"sketch.py", "sketch.ino"},
		{"dir/robot.py", "dir/robot.ino"},
		{"noext", "noext.ino"},
	}

	for _, tt := range tests {
		if got := OutputPath(tt.in); got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnit_WriteFile(t *testing.T) {
	t.Parallel()

	unit := transpileSource(t, "x = 1\n", Options{})

	path := t.TempDir() + "/out.ino"
	if err := unit.WriteFile(path); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}
