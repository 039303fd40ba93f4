package terms_test

import (
	"testing"

	"formality/terms"
)

func TestDisplay(t *testing.T) {
	a := terms.UniversalVar{VarKind: terms.LtKind, Index: 0}
	x := terms.ExistentialVar{VarKind: terms.TyKind, Index: 1}
	u32 := terms.Scalar("u32")

	for _, test := range []struct {
		expected string
		term     terms.Term
	}{
		{"Vec[u32]", terms.Adt("Vec", u32)},
		{"&!lt_0 ?ty_1", terms.Ref(a, x)},
		{"&mut 'static u32", terms.RefMut(terms.Static{}, u32)},
		{"(u32, ?ty_1)", terms.Tuple(u32, x)},
		{"(u32,)", terms.Tuple(u32)},
		{"Iterator::Item[?ty_1]", terms.Alias("Iterator", "Item", x)},
		{"?ty_1: Into[u32]", terms.NewTraitRef("Into", x, u32).IsImplemented()},
		{"u32: !Copy", terms.NewTraitRef("Copy", u32).NotImplemented()},
		{"wf(?ty_1: Copy)", terms.NewTraitRef("Copy", x).WellFormed()},
		{"{?ty_1 = u32, !lt_0: 'static}", terms.Wcs{terms.Eq(x, u32), terms.Outlives(a, terms.Static{})}},
		{"if {wf(?ty_1)} ?ty_1 <: u32", terms.Implies{Hypotheses: terms.Wcs{terms.WellFormed(x)}, Goal: terms.Sub(x, u32)}},
	} {
		if got := test.term.String(); got != test.expected {
			t.Errorf("expected %q, got %q", test.expected, got)
		}
	}
}

func TestBinder(t *testing.T) {
	binder := terms.Bind([]terms.Kind{terms.TyKind, terms.LtKind}, func(vars []terms.Parameter) terms.Wc {
		return terms.Outlives(terms.Ref(vars[1], vars[0]), vars[1])
	})

	if vars := terms.FreeVariables(binder); len(vars) != 0 {
		t.Fatalf("expected no free variables, got %v", vars)
	}

	x := terms.UniversalVar{VarKind: terms.TyKind, Index: 0}
	a := terms.UniversalVar{VarKind: terms.LtKind, Index: 1}

	if got := binder.Instantiate([]terms.Parameter{x, a}).String(); got != "&!lt_1 !ty_0: !lt_1" {
		t.Fatalf("unexpected instantiation: %s", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected a kind mismatch to panic")
		}
	}()

	binder.Instantiate([]terms.Parameter{a, x})
}

func TestSubstitution(t *testing.T) {
	x := terms.ExistentialVar{VarKind: terms.TyKind, Index: 0}
	y := terms.ExistentialVar{VarKind: terms.TyKind, Index: 1}

	s := terms.Substitution{x: terms.Scalar("u8")}

	wc := terms.Apply(s, terms.Wc(terms.Eq(terms.Adt("Vec", x), y)))
	if got := wc.String(); got != "Vec[u8] = ?ty_1" {
		t.Fatalf("unexpected result: %s", got)
	}

	if terms.Occurs(x, wc) || !terms.Occurs(y, wc) {
		t.Fatalf("unexpected free variables in %v", wc)
	}

	if got := s.String(); got != "{?ty_0 => u8}" {
		t.Fatalf("unexpected display: %s", got)
	}
}

func TestSize(t *testing.T) {
	u32 := terms.Scalar("u32")

	if size := terms.Adt("Vec", terms.Adt("Vec", u32)).Size(); size != 3 {
		t.Errorf("expected size 3, got %d", size)
	}

	if size := (terms.Wcs{terms.NewTraitRef("Foo", u32).IsImplemented()}).Size(); size != 2 {
		t.Errorf("expected size 2, got %d", size)
	}
}

func TestEqual(t *testing.T) {
	x := terms.UniversalVar{VarKind: terms.TyKind, Index: 0}

	if !terms.Equal(terms.Adt("Vec", x), terms.Adt("Vec", x)) {
		t.Errorf("expected structurally equal types to be equal")
	}

	if terms.Equal(terms.Adt("Vec", x), terms.Tuple(x)) {
		t.Errorf("expected different types to be unequal")
	}

	if !terms.Equal(terms.Static{}, terms.Static{}) {
		t.Errorf("expected 'static to equal itself")
	}
}
