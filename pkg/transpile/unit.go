package transpile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry point names required by the target program structure.
const (
	SetupFunc = "setup"
	LoopFunc  = "loop"
)

// OutputExt is the file extension of a serialized translation unit.
const OutputExt = ".ino"

// Include is one include directive, deduplicated by header name.
type Include struct {
	Header  string
	Comment string
}

// Macro is one compile-time constant definition.
type Macro struct {
	Name    string
	Value   string
	Comment string
}

// Function is one rendered procedure body.
type Function struct {
	Name  string
	Lines []Line
}

// Unit is the assembled translation unit: ordered sections serialized in
// a fixed order for reproducible output diffing.
type Unit struct {
	Includes []Include
	Macros   []Macro
	TopLevel []Line
	Funcs    []*Function

	includeSeen map[string]bool
}

// NewUnit returns an empty translation unit.
func NewUnit() *Unit {
	return &Unit{includeSeen: make(map[string]bool)}
}

// AddInclude records an include directive. Duplicates by header name are
// dropped; order is first seen.
func (u *Unit) AddInclude(header, comment string) {
	if u.includeSeen[header] {
		return
	}

	u.includeSeen[header] = true
	u.Includes = append(u.Includes, Include{Header: header, Comment: comment})
}

// Func returns the function with the given name, or nil.
func (u *Unit) Func(name string) *Function {
	for _, f := range u.Funcs {
		if f.Name == name {
			return f
		}
	}

	return nil
}

// orderedFuncs returns the function blocks in output order: setup first,
// user functions in declaration order, loop last.
func (u *Unit) orderedFuncs() []*Function {
	ordered := make([]*Function, 0, len(u.Funcs))

	if f := u.Func(SetupFunc); f != nil {
		ordered = append(ordered, f)
	}

	for _, f := range u.Funcs {
		if f.Name != SetupFunc && f.Name != LoopFunc {
			ordered = append(ordered, f)
		}
	}

	if f := u.Func(LoopFunc); f != nil {
		ordered = append(ordered, f)
	}

	return ordered
}

// Bytes serializes the unit. Every non-empty section is followed by
// exactly one blank line; function blocks are separated by one blank
// line. Serialization is deterministic: the same unit always yields
// byte-identical output.
func (u *Unit) Bytes() []byte {
	var sb strings.Builder

	if len(u.Includes) > 0 {
		for _, inc := range u.Includes {
			sb.WriteString(`#include "` + inc.Header + `"`)
			writeTrailingComment(&sb, inc.Comment)
			sb.WriteByte('\n')
		}

		sb.WriteByte('\n')
	}

	if len(u.Macros) > 0 {
		for _, m := range u.Macros {
			sb.WriteString("#define " + m.Name + " " + m.Value)
			writeTrailingComment(&sb, m.Comment)
			sb.WriteByte('\n')
		}

		sb.WriteByte('\n')
	}

	if len(u.TopLevel) > 0 {
		for _, line := range u.TopLevel {
			sb.WriteString(line.Text)
			sb.WriteByte('\n')
		}

		sb.WriteByte('\n')
	}

	funcs := u.orderedFuncs()
	for i, f := range funcs {
		if i > 0 {
			sb.WriteByte('\n')
		}

		for _, line := range f.Lines {
			sb.WriteString(line.Text)
			sb.WriteByte('\n')
		}
	}

	return []byte(sb.String())
}

func writeTrailingComment(sb *strings.Builder, comment string) {
	if comment != "" {
		sb.WriteString(" // " + comment)
	}
}

// OutputPath derives the sibling output path for an input file by
// swapping its extension.
func OutputPath(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + OutputExt
}

// WriteFile serializes the unit to the given path. This is the only
// storage side effect in the package.
func (u *Unit) WriteFile(path string) error {
	if err := os.WriteFile(path, u.Bytes(), 0o644); err != nil {
		return fmt.Errorf("transpile: write %s: %w", path, err)
	}

	return nil
}
