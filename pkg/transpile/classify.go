package transpile

import "github.com/pyforge/pyforge/pkg/pyast"

// declForm is the rendering chosen for an assignment.
type declForm int

const (
	// declPlain renders a mutable assignment statement.
	declPlain declForm = iota
	// declConstruct renders a typed object declaration: Type name(args);
	declConstruct
	// declMacro elevates a module-level numeric constant to a #define.
	declMacro
)

// classify decides the output form of an assignment. Construction takes
// precedence over macro elevation; macro elevation applies only at module
// level.
func (t *Transpiler) classify(s *pyast.Assign, topLevel bool) declForm {
	if call, ok := s.Value.(*pyast.Call); ok {
		if name, ok := call.Func.(*pyast.Name); ok {
			if t.constructible[name.ID] || t.opts.HeuristicConstruction {
				return declConstruct
			}
		}
	}

	if topLevel {
		if lit, ok := s.Value.(*pyast.Literal); ok {
			if lit.Kind == pyast.LitInt || lit.Kind == pyast.LitFloat {
				return declMacro
			}
		}
	}

	return declPlain
}
