package transpile

// ensureEntryPoints guarantees the unit defines both mandatory entry
// points. Missing ones are synthesized with empty bodies, or — when
// auto-populate is on — a loop body that calls every other translated
// procedure in declaration order. This is a structural contract of the
// output format.
func (t *Transpiler) ensureEntryPoints(u *Unit) {
	if u.Func(SetupFunc) == nil {
		u.Funcs = append(u.Funcs, &Function{
			Name:  SetupFunc,
			Lines: []Line{{0, "void " + SetupFunc + "() {}"}},
		})
	}

	if u.Func(LoopFunc) != nil {
		return
	}

	if !t.opts.AutoLoop {
		u.Funcs = append(u.Funcs, &Function{
			Name:  LoopFunc,
			Lines: []Line{{0, "void " + LoopFunc + "() {}"}},
		})

		return
	}

	lines := []Line{{0, "void " + LoopFunc + "() {"}}

	for _, f := range u.Funcs {
		if f.Name == SetupFunc || f.Name == LoopFunc {
			continue
		}

		lines = append(lines, Line{0, indentUnit + f.Name + "();"})
	}

	lines = append(lines, Line{0, "}"})
	u.Funcs = append(u.Funcs, &Function{Name: LoopFunc, Lines: lines})
}
