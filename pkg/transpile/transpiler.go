package transpile

import (
	"sort"
	"strings"

	"github.com/pyforge/pyforge/pkg/pyast"
)

// builtinModule is the pseudo-module that provides the target's ambient
// API. Importing from it contributes no include directive.
const builtinModule = "Arduino"

// headerExt is the extension appended to a library module name to form
// its include directive.
const headerExt = ".h"

// Options configure one translation.
type Options struct {
	// AutoLoop populates a synthesized loop entry point with calls to
	// every other translated procedure in declaration order.
	AutoLoop bool

	// HeuristicConstruction treats any bare-name call on the right of an
	// assignment as object construction, even when the name is not in
	// the constructible registry.
	HeuristicConstruction bool

	// Constructible seeds the registry with type names known from header
	// introspection or the project manifest.
	Constructible []string
}

// Transpiler renders one parsed module into a translation unit. All
// registries are scoped to the value: concurrent translations using
// separate Transpilers are independent by construction.
type Transpiler struct {
	opts          Options
	constructible map[string]bool

	comments     map[int]string
	commentLines []int
	consumed     map[int]bool
}

// New returns a Transpiler for a single translation.
func New(opts Options) *Transpiler {
	t := &Transpiler{
		opts:          opts,
		constructible: make(map[string]bool),
	}

	for _, name := range opts.Constructible {
		t.constructible[name] = true
	}

	return t
}

// Transpile assembles the translation unit for a module. It never fails:
// constructs outside the supported subset degrade to placeholders, and
// the two entry points are always guaranteed.
func (t *Transpiler) Transpile(mod *pyast.Module) *Unit {
	t.loadComments(mod)

	unit := NewUnit()

	// Imports are scanned first so constructions anywhere in the file
	// see the full registry.
	for _, s := range mod.Body {
		if imp, ok := s.(*pyast.Import); ok {
			t.registerImport(imp)
		}
	}

	for _, s := range mod.Body {
		switch s := s.(type) {
		case *pyast.Import:
			t.emitInclude(unit, s)
		case *pyast.FunctionDef:
			t.emitFunction(unit, s)
		case *pyast.Assign:
			t.emitTopLevelAssign(unit, s)
		default:
			t.emitTopLevel(unit, s)
		}
	}

	// Comments trailing the last statement.
	unit.TopLevel = append(unit.TopLevel, t.standaloneComments(maxInt, 0)...)

	t.ensureEntryPoints(unit)

	return unit
}

const maxInt = int(^uint(0) >> 1)

func (t *Transpiler) loadComments(mod *pyast.Module) {
	t.comments = mod.Comments
	t.consumed = make(map[int]bool)
	t.commentLines = t.commentLines[:0]

	for ln := range mod.Comments {
		t.commentLines = append(t.commentLines, ln)
	}

	sort.Ints(t.commentLines)
}

// registerImport adds the imported names of a library from-import to the
// constructible-type registry.
func (t *Transpiler) registerImport(imp *pyast.Import) {
	if !imp.From || imp.Module == builtinModule {
		return
	}

	for _, name := range imp.Names {
		t.constructible[name] = true
	}
}

// emitInclude derives an include directive from a from-import. The
// builtin pseudo-module and plain imports contribute nothing.
func (t *Transpiler) emitInclude(u *Unit, imp *pyast.Import) {
	if !imp.From || imp.Module == builtinModule {
		return
	}

	module := imp.Module
	if i := strings.LastIndex(module, "."); i >= 0 {
		module = module[i+1:]
	}

	if module == "" {
		return
	}

	u.AddInclude(module+headerExt, t.takeComment(imp.Ln))
}

func (t *Transpiler) emitFunction(u *Unit, def *pyast.FunctionDef) {
	// Comments immediately preceding the definition stay with it.
	lines := t.standaloneComments(def.Ln, 0)

	rendered := t.renderStmt(def, 0)
	for i := range rendered {
		t.attachComment(&rendered[i])
	}

	lines = append(lines, rendered...)
	u.Funcs = append(u.Funcs, &Function{Name: def.Name, Lines: lines})
}

func (t *Transpiler) emitTopLevelAssign(u *Unit, s *pyast.Assign) {
	if t.classify(s, true) == declMacro {
		u.TopLevel = append(u.TopLevel, t.standaloneComments(s.Ln, 0)...)

		lit := s.Value.(*pyast.Literal)
		u.Macros = append(u.Macros, Macro{Name: s.Target, Value: lit.Raw, Comment: t.takeComment(s.Ln)})

		return
	}

	t.emitTopLevel(u, s)
}

func (t *Transpiler) emitTopLevel(u *Unit, s pyast.Stmt) {
	u.TopLevel = append(u.TopLevel, t.standaloneComments(s.Line(), 0)...)

	rendered := t.renderStmt(s, 0)
	for i := range rendered {
		t.attachComment(&rendered[i])
	}

	u.TopLevel = append(u.TopLevel, rendered...)
}

// takeComment consumes and returns the binding for a source line, if any.
func (t *Transpiler) takeComment(line int) string {
	if t.consumed[line] {
		return ""
	}

	text, ok := t.comments[line]
	if !ok {
		return ""
	}

	t.consumed[line] = true

	return text
}
