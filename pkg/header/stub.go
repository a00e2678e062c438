package header

import (
	"path/filepath"
	"strings"
)

// StubExt is the extension of generated stub modules.
const StubExt = ".py"

// GenerateStub renders Python stub modules for the extracted classes.
// Constructors become __init__; overloaded methods collapse to a single
// *args signature.
func GenerateStub(classes []Class) []byte {
	var sb strings.Builder

	sb.WriteString("from typing import Any\n\n")

	for _, cls := range classes {
		sb.WriteString("class " + cls.Name + ":\n")

		if len(cls.Methods) == 0 {
			sb.WriteString("    pass\n\n")
			continue
		}

		writeClassBody(&sb, cls)
		sb.WriteByte('\n')
	}

	return []byte(sb.String())
}

func writeClassBody(sb *strings.Builder, cls Class) {
	// Group overloads, keeping first-seen order.
	var order []string

	overloads := make(map[string][]Method)

	for _, m := range cls.Methods {
		if _, seen := overloads[m.Name]; !seen {
			order = append(order, m.Name)
		}

		overloads[m.Name] = append(overloads[m.Name], m)
	}

	for _, name := range order {
		methods := overloads[name]

		if name == cls.Name {
			writeStubDef(sb, "__init__", constructorParams(methods))
			continue
		}

		if len(methods) > 1 {
			sb.WriteString("    def " + name + "(self, *args: Any):\n        ...\n")
			continue
		}

		writeStubDef(sb, name, methods[0].Params)
	}
}

// constructorParams picks the first overload that takes arguments, so
// the stub's __init__ reflects the useful constructor.
func constructorParams(overloads []Method) []Param {
	for _, m := range overloads {
		if len(m.Params) > 0 {
			return m.Params
		}
	}

	return overloads[0].Params
}

func writeStubDef(sb *strings.Builder, name string, params []Param) {
	args := make([]string, 0, len(params)+1)
	args = append(args, "self")

	for _, p := range params {
		args = append(args, p.Name+": "+p.PyType)
	}

	sb.WriteString("    def " + name + "(" + strings.Join(args, ", ") + "):\n        ...\n")
}

// StubPath derives the stub module path for a header file inside outDir.
func StubPath(outDir, headerPath string) string {
	base := strings.TrimSuffix(filepath.Base(headerPath), filepath.Ext(headerPath))
	return filepath.Join(outDir, base+StubExt)
}
