// Package transpile renders a parsed Python-subset syntax tree into an
// Arduino sketch: a single translation unit with include directives,
// macro definitions, top-level statements and function bodies, always
// containing the two mandatory entry points.
package transpile

import "github.com/pyforge/pyforge/pkg/pyast"

// Target spellings for abstract operators. Both division kinds share "/"
// and Pow keeps "**": accepted lossy table entries, not bugs.
var binOps = map[pyast.Op]string{
	pyast.OpAdd: "+",
	pyast.OpSub: "-",
	pyast.OpMul: "*",
	pyast.OpDiv: "/",
	pyast.OpMod: "%",
	pyast.OpPow: "**",
}

var cmpOps = map[pyast.Op]string{
	pyast.OpEq: "==",
	pyast.OpNe: "!=",
	pyast.OpLt: "<",
	pyast.OpLe: "<=",
	pyast.OpGt: ">",
	pyast.OpGe: ">=",
}

var boolOps = map[pyast.Op]string{
	pyast.OpAnd: "&&",
	pyast.OpOr:  "||",
}

var unaryOps = map[pyast.Op]string{
	pyast.OpNot: "!",
	pyast.OpNeg: "-",
	pyast.OpPos: "+",
}
