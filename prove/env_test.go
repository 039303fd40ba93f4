package prove

import (
	"testing"

	"formality/terms"
)

func TestUniverses(t *testing.T) {
	env, x := NewEnv(Soundness).NewExistential(terms.TyKind)
	env, a := env.NewUniversal(terms.LtKind)
	env, y := env.NewExistential(terms.TyKind)
	env, z := env.InsertExistentialAfter(x, terms.TyKind)

	for v, universe := range map[terms.Variable]int{x: 0, z: 0, a: 1, y: 1} {
		if got := env.Universe(v); got != universe {
			t.Errorf("expected %v to be in universe %d, got %d", v, universe, got)
		}
	}

	if got := env.String(); got != "Env { variables: [?ty_0, ?ty_3, !lt_1, ?ty_2], bias: soundness, pending: {} }" {
		t.Errorf("unexpected env: %s", got)
	}
}

func TestEnvIsValue(t *testing.T) {
	base, _ := NewEnv(Soundness).NewUniversal(terms.TyKind)
	extended, x := base.NewExistential(terms.TyKind)
	pending := extended.WithPending(terms.WellFormed(x))

	if base.Contains(x) || len(base.Variables()) != 1 {
		t.Fatalf("extending an env modified the original: %v", base)
	}

	if len(extended.Pending()) != 0 {
		t.Fatalf("adding a pending clause modified the original: %v", extended)
	}

	if again := pending.WithPending(terms.WellFormed(x)); len(again.Pending()) != 1 {
		t.Fatalf("expected pending clauses to be deduplicated, got %v", again)
	}

	if !extended.IsExtensionOf(base) || base.IsExtensionOf(extended) {
		t.Fatalf("expected %v to extend %v", extended, base)
	}
}

func TestEncloses(t *testing.T) {
	env, x := NewEnv(Soundness).NewUniversal(terms.TyKind)
	_, y := NewEnv(Soundness).NewExistential(terms.TyKind)

	if !env.Encloses(terms.Adt("Vec", x)) {
		t.Errorf("expected %v to enclose Vec[%v]", env, x)
	}

	if env.Encloses(terms.Tuple(x, y)) {
		t.Errorf("expected %v not to enclose (%v, %v)", env, x, y)
	}
}

func TestPopVars(t *testing.T) {
	env, x := NewEnv(Soundness).NewUniversal(terms.TyKind)
	env, vars := env.ExistentialSubstitution([]terms.Kind{terms.TyKind, terms.LtKind})

	popped := env.PopVars([]terms.Variable{vars[0].(terms.Variable), vars[1].(terms.Variable)})
	if len(popped.Variables()) != 1 || !popped.Contains(x) {
		t.Fatalf("expected only %v to remain, got %v", x, popped)
	}
}

func TestParseBias(t *testing.T) {
	for _, bias := range []Bias{Soundness, Completeness} {
		parsed, err := ParseBias(bias.String())
		if err != nil || parsed != bias {
			t.Errorf("expected %v, got %v (%v)", bias, parsed, err)
		}
	}

	if _, err := ParseBias("optimism"); err == nil {
		t.Errorf("expected an error for an unknown bias")
	}
}
