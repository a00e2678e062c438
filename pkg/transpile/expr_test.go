package transpile

import (
	"testing"

	"github.com/pyforge/pyforge/pkg/pyast"
)

func TestRenderExpr_FullParenthesization(t *testing.T) {
	t.Parallel()

	tr := New(Options{})

	// (a + b) * 2
	e := &pyast.BinaryOp{
		Op: pyast.OpMul,
		Left: &pyast.BinaryOp{
			Op:    pyast.OpAdd,
			Left:  &pyast.Name{ID: "a"},
			Right: &pyast.Name{ID: "b"},
		},
		Right: &pyast.Literal{Kind: pyast.LitInt, Raw: "2"},
	}

	if got := tr.renderExpr(e); got != "((a + b) * 2)" {
		t.Errorf("got %q, want ((a + b) * 2)", got)
	}
}

func TestRenderExpr_Operators(t *testing.T) {
	t.Parallel()

	tr := New(Options{})

	tests := []struct {
		name string
		expr pyast.Expr
		want string
	}{
		{
			"comparison",
			&pyast.Comparison{Op: pyast.OpGe, Left: &pyast.Name{ID: "x"}, Right: &pyast.Literal{Kind: pyast.LitInt, Raw: "5"}},
			"(x >= 5)",
		},
		{
			"boolean and",
			&pyast.BooleanOp{Op: pyast.OpAnd, Left: &pyast.Name{ID: "a"}, Right: &pyast.Name{ID: "b"}},
			"(a && b)",
		},
		{
			"boolean or",
			&pyast.BooleanOp{Op: pyast.OpOr, Left: &pyast.Name{ID: "a"}, Right: &pyast.Name{ID: "b"}},
			"(a || b)",
		},
		{
			"not",
			&pyast.UnaryOp{Op: pyast.OpNot, Operand: &pyast.Name{ID: "ready"}},
			"(!ready)",
		},
		{
			"negation",
			&pyast.UnaryOp{Op: pyast.OpNeg, Operand: &pyast.Literal{Kind: pyast.LitInt, Raw: "1"}},
			"(-1)",
		},
		{
			"power keeps source token",
			&pyast.BinaryOp{Op: pyast.OpPow, Left: &pyast.Name{ID: "x"}, Right: &pyast.Literal{Kind: pyast.LitInt, Raw: "2"}},
			"(x ** 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tr.renderExpr(tt.expr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderExpr_Literals(t *testing.T) {
	t.Parallel()

	tr := New(Options{})

	tests := []struct {
		name string
		lit  *pyast.Literal
		want string
	}{
		{"int", &pyast.Literal{Kind: pyast.LitInt, Raw: "42"}, "42"},
		{"float", &pyast.Literal{Kind: pyast.LitFloat, Raw: "3.14"}, "3.14"},
		{"string requoted", &pyast.Literal{Kind: pyast.LitString, Raw: "hi\n"}, `"hi\n"`},
		{"true", &pyast.Literal{Kind: pyast.LitBool, Raw: "True"}, "true"},
		{"false", &pyast.Literal{Kind: pyast.LitBool, Raw: "False"}, "false"},
		{"none degrades", &pyast.Literal{Kind: pyast.LitNone, Raw: "None"}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tr.renderExpr(tt.lit); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderExpr_SleepFolding(t *testing.T) {
	t.Parallel()

	tr := New(Options{})

	sleep := func(arg pyast.Expr) *pyast.Call {
		return &pyast.Call{
			Func: &pyast.Attribute{Receiver: &pyast.Name{ID: "time"}, Name: "sleep"},
			Args: []pyast.Expr{arg},
		}
	}

	tests := []struct {
		name string
		call *pyast.Call
		want string
	}{
		{"whole seconds", sleep(&pyast.Literal{Kind: pyast.LitInt, Raw: "2"}), "delay(2000)"},
		{"fractional seconds", sleep(&pyast.Literal{Kind: pyast.LitFloat, Raw: "0.5"}), "delay(500)"},
		{"variable stays runtime", sleep(&pyast.Name{ID: "pause"}), "delay(pause * 1000)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tr.renderExpr(tt.call); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderExpr_SleepRequiresTimeReceiver(t *testing.T) {
	t.Parallel()

	tr := New(Options{})

	call := &pyast.Call{
		Func: &pyast.Attribute{Receiver: &pyast.Name{ID: "robot"}, Name: "sleep"},
		Args: []pyast.Expr{&pyast.Literal{Kind: pyast.LitInt, Raw: "2"}},
	}

	if got := tr.renderExpr(call); got != "robot.sleep(2)" {
		t.Errorf("got %q, want robot.sleep(2)", got)
	}
}

func TestRenderExpr_FallbackReceiver(t *testing.T) {
	t.Parallel()

	tr := New(Options{})

	// makeMotor().move(1) has no simple receiver name.
	call := &pyast.Call{
		Func: &pyast.Attribute{
			Receiver: &pyast.Call{Func: &pyast.Name{ID: "makeMotor"}},
			Name:     "move",
		},
		Args: []pyast.Expr{&pyast.Literal{Kind: pyast.LitInt, Raw: "1"}},
	}

	if got := tr.renderExpr(call); got != "obj.move(1)" {
		t.Errorf("got %q, want obj.move(1)", got)
	}
}

func TestRenderExpr_UnsupportedDegradesToNeutral(t *testing.T) {
	t.Parallel()

	tr := New(Options{})

	if got := tr.renderExpr(&pyast.BadExpr{From: "list"}); got != neutralExpr {
		t.Errorf("got %q, want %q", got, neutralExpr)
	}
}
