package transpile

import (
	"strings"

	"github.com/pyforge/pyforge/pkg/pyast"
)

// indentUnit is one level of output indentation.
const indentUnit = "    "

// Line is one emitted target line together with the 1-based source line
// that produced it. Src is 0 for synthesized lines (closing braces, else
// headers, generated entry points).
type Line struct {
	Src  int
	Text string
}

func indent(depth int) string {
	return strings.Repeat(indentUnit, depth)
}

// renderStmt renders one statement (and any nested blocks) into target
// lines. It is total: unsupported statements render as a placeholder
// comment so the surrounding block keeps its structure.
func (t *Transpiler) renderStmt(s pyast.Stmt, depth int) []Line {
	ind := indent(depth)

	switch s := s.(type) {
	case *pyast.Assign:
		return t.renderAssign(s, depth)
	case *pyast.AugAssign:
		return []Line{{s.Ln, ind + s.Target + " " + binOps[s.Op] + "= " + t.renderExpr(s.Value) + ";"}}
	case *pyast.ExprStmt:
		return []Line{{s.Ln, ind + t.renderExpr(s.Value) + ";"}}
	case *pyast.If:
		return t.renderIf(s, depth)
	case *pyast.While:
		lines := []Line{{s.Ln, ind + "while " + t.renderExpr(s.Test) + " {"}}
		lines = append(lines, t.renderBlock(s.Body, depth+1, s.EndLn)...)

		return append(lines, Line{0, ind + "}"})
	case *pyast.ForRange:
		head := ind + "for (int " + s.Var + "=" + t.renderExpr(s.Start) +
			"; " + s.Var + "<" + t.renderExpr(s.End) + "; " + s.Var + "++) {"
		lines := []Line{{s.Ln, head}}
		lines = append(lines, t.renderBlock(s.Body, depth+1, s.EndLn)...)

		return append(lines, Line{0, ind + "}"})
	case *pyast.FunctionDef:
		return t.renderFunctionDef(s, depth)
	case *pyast.Break:
		return []Line{{s.Ln, ind + "break;"}}
	case *pyast.Continue:
		return []Line{{s.Ln, ind + "continue;"}}
	case *pyast.Import:
		// Includes are derived during the top-level walk.
		return nil
	case *pyast.BadStmt:
		return []Line{{s.Ln, ind + "// unsupported: " + s.Kind}}
	default:
		return []Line{{s.Line(), ind + "// unsupported statement"}}
	}
}

func (t *Transpiler) renderAssign(s *pyast.Assign, depth int) []Line {
	ind := indent(depth)

	// The macro form applies only at module level and is handled by the
	// top-level walk; here an assignment is either a construction or a
	// plain statement.
	if t.classify(s, false) == declConstruct {
		call := s.Value.(*pyast.Call)
		typeName := call.Func.(*pyast.Name).ID

		return []Line{{s.Ln, ind + typeName + " " + s.Target + "(" + t.renderArgs(call.Args) + ");"}}
	}

	return []Line{{s.Ln, ind + s.Target + " = " + t.renderExpr(s.Value) + ";"}}
}

// renderIf always emits braces, even for single-statement bodies, so the
// generated code has no dangling-else ambiguity.
func (t *Transpiler) renderIf(s *pyast.If, depth int) []Line {
	ind := indent(depth)

	lines := []Line{{s.Ln, ind + "if " + t.renderExpr(s.Test) + " {"}}
	lines = append(lines, t.renderBlock(s.Body, depth+1, elseBoundary(s))...)

	if len(s.Else) > 0 {
		lines = append(lines, Line{0, ind + "} else {"})
		lines = append(lines, t.renderBlock(s.Else, depth+1, s.EndLn)...)
	}

	return append(lines, Line{0, ind + "}"})
}

// elseBoundary limits comment flushing of the then-block to the line
// before the else branch starts.
func elseBoundary(s *pyast.If) int {
	if len(s.Else) > 0 {
		return s.Else[0].Line() - 1
	}

	return s.EndLn
}

func (t *Transpiler) renderFunctionDef(s *pyast.FunctionDef, depth int) []Line {
	ind := indent(depth)

	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = "auto " + p
	}

	head := ind + "void " + s.Name + "(" + strings.Join(params, ", ") + ") {"

	lines := []Line{{s.Ln, head}}
	lines = append(lines, t.renderBlock(s.Body, depth+1, s.EndLn)...)

	return append(lines, Line{0, ind + "}"})
}

// renderBlock renders a statement sequence, interleaving comment
// bindings: a binding on a code-producing line attaches as a trailing
// comment, a binding on a codeless line is emitted standalone at its
// position. endLn bounds the trailing flush for the block.
func (t *Transpiler) renderBlock(stmts []pyast.Stmt, depth, endLn int) []Line {
	var lines []Line

	for _, s := range stmts {
		lines = append(lines, t.standaloneComments(s.Line(), depth)...)

		rendered := t.renderStmt(s, depth)
		for i := range rendered {
			t.attachComment(&rendered[i])
		}

		lines = append(lines, rendered...)
	}

	if endLn > 0 {
		lines = append(lines, t.standaloneComments(endLn+1, depth)...)
	}

	return lines
}

// standaloneComments emits unconsumed comment bindings on lines strictly
// before the given line as standalone comment lines.
func (t *Transpiler) standaloneComments(before, depth int) []Line {
	var lines []Line

	for _, ln := range t.commentLines {
		if ln >= before {
			break
		}

		if t.consumed[ln] {
			continue
		}

		t.consumed[ln] = true
		lines = append(lines, Line{ln, indent(depth) + "// " + t.comments[ln]})
	}

	return lines
}

// attachComment appends the binding for the line's source position as a
// trailing comment. At most one comment attaches per emitted line.
func (t *Transpiler) attachComment(line *Line) {
	if line.Src == 0 || t.consumed[line.Src] {
		return
	}

	text, ok := t.comments[line.Src]
	if !ok {
		return
	}

	t.consumed[line.Src] = true
	line.Text += " // " + text
}
