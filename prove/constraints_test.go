package prove

import (
	"testing"

	"formality/terms"
)

var u32 = terms.Scalar("u32")

func TestWithBinding(t *testing.T) {
	env, x := NewEnv(Soundness).NewExistential(terms.TyKind)
	env, y := env.NewExistential(terms.TyKind)
	env = env.WithPending(terms.WellFormed(x))

	c := None(env).WithBinding(x, terms.Adt("Vec", y))
	if got := c.Pending().String(); got != "{wf(Vec[?ty_1])}" {
		t.Fatalf("expected the binding to apply to pending clauses, got %s", got)
	}

	c = c.WithBinding(y, u32)
	if got := c.substitution.String(); got != "{?ty_0 => Vec[u32], ?ty_1 => u32}" {
		t.Fatalf("expected the substitution to stay idempotent, got %s", got)
	}
}

func TestWithBindingTwicePanics(t *testing.T) {
	env, x := NewEnv(Soundness).NewExistential(terms.TyKind)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected binding %v twice to panic", x)
		}
	}()

	None(env).WithBinding(x, u32).WithBinding(x, u32)
}

func TestSeq(t *testing.T) {
	env, x := NewEnv(Soundness).NewExistential(terms.TyKind)
	env, y := env.NewExistential(terms.TyKind)

	first := None(env).WithBinding(x, terms.Adt("Vec", y))
	second := None(first.Env()).WithBinding(y, u32).Ambiguous()

	c := first.Seq(second)
	if got := c.substitution.String(); got != "{?ty_0 => Vec[u32], ?ty_1 => u32}" {
		t.Fatalf("unexpected substitution: %s", got)
	}

	if !c.IsAmbiguous() {
		t.Fatalf("expected ambiguity to propagate")
	}
}

func TestPopSubst(t *testing.T) {
	env, x := NewEnv(Soundness).NewExistential(terms.TyKind)
	env, vars := env.ExistentialSubstitution([]terms.Kind{terms.TyKind, terms.TyKind})

	a, b := vars[0].(terms.ExistentialVar), vars[1].(terms.ExistentialVar)

	c := None(env).WithBinding(x, terms.Adt("Vec", b)).WithBinding(a, u32)
	c = c.PopSubst(vars)

	if c.env.Contains(a) {
		t.Errorf("expected %v to be popped: %v", a, c)
	}

	if !c.env.Contains(b) {
		t.Errorf("expected %v to stay in scope, since %v mentions it: %v", b, x, c)
	}

	if _, ok := c.substitution[a]; ok {
		t.Errorf("expected the binding of %v to be dropped: %v", a, c)
	}

	if !c.IsValidExtensionOf(NewEnv(Soundness)) {
		t.Errorf("expected %v to be valid", c)
	}
}

func TestMinimizeRoundTrip(t *testing.T) {
	env, _ := NewEnv(Soundness).NewUniversal(terms.TyKind)
	env, _ = env.NewExistential(terms.TyKind)
	env, _ = env.NewUniversal(terms.TyKind)
	env, y := env.NewExistential(terms.TyKind)

	minEnv, _, goal, min := Minimize(env, nil, terms.Wcs{terms.Eq(y, u32)})
	if got := goal.String(); got != "{?ty_0 = u32}" {
		t.Fatalf("unexpected minimized goal: %s", got)
	}

	minY := minEnv.Variables()[0].(terms.ExistentialVar)
	minEnv, fresh := minEnv.NewExistential(terms.TyKind)

	c := min.Reconstitute(None(minEnv).WithBinding(minY, terms.Adt("Vec", fresh)))

	if got := c.substitution.String(); got != "{?ty_3 => Vec[?ty_4]}" {
		t.Fatalf("unexpected substitution: %s", got)
	}

	if !c.IsValidExtensionOf(env) {
		t.Fatalf("expected %v to extend %v", c, env)
	}

	if got := min.Reconstitute(None(minEnv)).env.String(); got != "Env { variables: [!ty_0, ?ty_1, !ty_2, ?ty_3, ?ty_4], bias: soundness, pending: {} }" {
		t.Fatalf("unexpected env: %s", got)
	}
}

func TestMinimizeKeepsUniverses(t *testing.T) {
	env, x := NewEnv(Soundness).NewExistential(terms.TyKind)
	env, _ = env.NewUniversal(terms.TyKind)
	env, _ = env.NewUniversal(terms.TyKind)
	env, y := env.NewExistential(terms.TyKind)

	minEnv, _, _, min := Minimize(env, nil, terms.Wcs{terms.Eq(x, y)})
	if got := minEnv.String(); got != "Env { variables: [?ty_0, !ty_1, ?ty_2], bias: soundness, pending: {} }" {
		t.Fatalf("unexpected minimized env: %s", got)
	}

	if got := min.Reconstitute(None(minEnv)).env.String(); got != env.String() {
		t.Fatalf("expected %s, got %s", env, got)
	}
}

func TestReconstituteAppendsUniversals(t *testing.T) {
	env, x := NewEnv(Soundness).NewExistential(terms.TyKind)
	env, y := env.NewExistential(terms.TyKind)

	minEnv, _, _, min := Minimize(env, nil, terms.Wcs{terms.WellFormed(x)})

	// A universal the proof left in scope, e.g. one a pending clause names
	minEnv, _ = minEnv.NewUniversal(terms.LtKind)
	minEnv, _ = minEnv.NewExistential(terms.TyKind)

	result := min.Reconstitute(None(minEnv)).env

	if got, expected := result.Universe(y), env.Universe(y); got != expected {
		t.Fatalf("expected %v to stay in universe %d, got %d (%s)", y, expected, got, result)
	}

	variables := result.Variables()
	if len(variables) != 4 || variables[0] != x || variables[1] != y || !terms.IsUniversal(variables[2]) || !terms.IsExistential(variables[3]) {
		t.Fatalf("expected the new variables at the end, got %s", result)
	}
}
