package transpile

import (
	"testing"

	"github.com/pyforge/pyforge/pkg/pyast"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	registeredCall := &pyast.Assign{
		Target: "motor",
		Value:  &pyast.Call{Func: &pyast.Name{ID: "CheapStepper"}},
	}
	unknownCall := &pyast.Assign{
		Target: "x",
		Value:  &pyast.Call{Func: &pyast.Name{ID: "compute"}},
	}
	numeric := &pyast.Assign{
		Target: "SPEED",
		Value:  &pyast.Literal{Kind: pyast.LitInt, Raw: "15"},
	}
	str := &pyast.Assign{
		Target: "name",
		Value:  &pyast.Literal{Kind: pyast.LitString, Raw: "bot"},
	}

	tests := []struct {
		name     string
		opts     Options
		assign   *pyast.Assign
		topLevel bool
		want     declForm
	}{
		{"registered call constructs", Options{Constructible: []string{"CheapStepper"}}, registeredCall, true, declConstruct},
		{"unknown call is plain", Options{}, unknownCall, true, declPlain},
		{"heuristic promotes unknown call", Options{HeuristicConstruction: true}, unknownCall, true, declConstruct},
		{"top-level numeric is macro", Options{}, numeric, true, declMacro},
		{"nested numeric is plain", Options{}, numeric, false, declPlain},
		{"string literal is plain", Options{}, str, true, declPlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr := New(tt.opts)

			if got := tr.classify(tt.assign, tt.topLevel); got != tt.want {
				t.Errorf("classify = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClassify_ConstructionBeatsMacro(t *testing.T) {
	t.Parallel()

	// A call RHS at module level must construct even when the heuristic
	// is on and elevation would otherwise apply.
	tr := New(Options{HeuristicConstruction: true})

	s := &pyast.Assign{
		Target: "x",
		Value:  &pyast.Call{Func: &pyast.Name{ID: "value"}},
	}

	if got := tr.classify(s, true); got != declConstruct {
		t.Errorf("classify = %d, want declConstruct", got)
	}
}
