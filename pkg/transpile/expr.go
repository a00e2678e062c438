package transpile

import (
	"math"
	"strconv"
	"strings"

	"github.com/pyforge/pyforge/pkg/pyast"
)

// neutralExpr is the degraded rendering for any expression outside the
// supported subset. Expression translation happens deep inside statement
// nesting and must never abort an otherwise-good partial translation.
const neutralExpr = "0"

// fallbackReceiver is the deterministic spelling for a method call whose
// receiver is not a simple name.
const fallbackReceiver = "obj"

// msPerSecond converts time.sleep seconds to the delay() millisecond unit.
const msPerSecond = 1000

// renderExpr renders an expression as fully parenthesized target text.
// It is total over all node kinds.
func (t *Transpiler) renderExpr(e pyast.Expr) string {
	switch e := e.(type) {
	case *pyast.BinaryOp:
		return "(" + t.renderExpr(e.Left) + " " + binOps[e.Op] + " " + t.renderExpr(e.Right) + ")"
	case *pyast.UnaryOp:
		return "(" + unaryOps[e.Op] + t.renderExpr(e.Operand) + ")"
	case *pyast.BooleanOp:
		return "(" + t.renderExpr(e.Left) + " " + boolOps[e.Op] + " " + t.renderExpr(e.Right) + ")"
	case *pyast.Comparison:
		return "(" + t.renderExpr(e.Left) + " " + cmpOps[e.Op] + " " + t.renderExpr(e.Right) + ")"
	case *pyast.Call:
		return t.renderCall(e)
	case *pyast.Name:
		return e.ID
	case *pyast.Attribute:
		return t.receiverName(e) + "." + e.Name
	case *pyast.Literal:
		return renderLiteral(e)
	default:
		return neutralExpr
	}
}

func (t *Transpiler) renderCall(call *pyast.Call) string {
	if delay, ok := t.renderSleep(call); ok {
		return delay
	}

	args := t.renderArgs(call.Args)

	switch callee := call.Func.(type) {
	case *pyast.Name:
		return callee.ID + "(" + args + ")"
	case *pyast.Attribute:
		return t.receiverName(callee) + "." + callee.Name + "(" + args + ")"
	default:
		return neutralExpr
	}
}

func (t *Transpiler) renderArgs(args []pyast.Expr) string {
	rendered := make([]string, len(args))
	for i, a := range args {
		rendered[i] = t.renderExpr(a)
	}

	return strings.Join(rendered, ", ")
}

// receiverName resolves the receiver spelling of an attribute access.
// Non-simple receivers use the fallback placeholder.
func (t *Transpiler) receiverName(attr *pyast.Attribute) string {
	if name, ok := attr.Receiver.(*pyast.Name); ok {
		return name.ID
	}

	return fallbackReceiver
}

// renderSleep rewrites time.sleep(x) to the millisecond delay primitive.
// A literal argument folds to a whole millisecond count at render time;
// anything else stays a runtime multiplication.
func (t *Transpiler) renderSleep(call *pyast.Call) (string, bool) {
	attr, ok := call.Func.(*pyast.Attribute)
	if !ok || attr.Name != "sleep" {
		return "", false
	}

	recv, ok := attr.Receiver.(*pyast.Name)
	if !ok || recv.ID != "time" || len(call.Args) != 1 {
		return "", false
	}

	if lit, ok := call.Args[0].(*pyast.Literal); ok && (lit.Kind == pyast.LitInt || lit.Kind == pyast.LitFloat) {
		if secs, err := strconv.ParseFloat(lit.Raw, 64); err == nil {
			ms := int64(math.Round(secs * msPerSecond))
			return "delay(" + strconv.FormatInt(ms, 10) + ")", true
		}
	}

	return "delay(" + t.renderExpr(call.Args[0]) + " * 1000)", true
}

func renderLiteral(lit *pyast.Literal) string {
	switch lit.Kind {
	case pyast.LitInt, pyast.LitFloat:
		return lit.Raw
	case pyast.LitString:
		return strconv.Quote(lit.Raw)
	case pyast.LitBool:
		if lit.Raw == "True" {
			return "true"
		}

		return "false"
	default:
		return neutralExpr
	}
}
