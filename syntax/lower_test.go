package syntax_test

import (
	"testing"

	"formality/decls"
	"formality/syntax"
	"formality/terms"
)

func universals(kinds []terms.Kind) []terms.Parameter {
	vars := make([]terms.Parameter, len(kinds))
	for i, kind := range kinds {
		vars[i] = terms.UniversalVar{VarKind: kind, Index: i}
	}

	return vars
}

func parseProgram(t *testing.T, source string) *syntax.Program {
	program, err := syntax.ParseProgram("test", source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return program
}

func TestLowerDecls(t *testing.T) {
	program := parseProgram(t, `
		max_size 40;
		trait Foo[ty T] where Self: Bar, T: 'static;
		impl[ty T, lt a] &'a Vec[T]: Foo[u32] where T: Foo[u32];
		impl u8: !Foo[u32];
		struct Vec[ty T] where wf(T);
		alias[ty T] Iterator::Item[Vec[T]] = T;
	`)

	if program.MaxSize == nil || *program.MaxSize != 40 {
		t.Fatalf("expected a maximum size of 40, got %v", program.MaxSize)
	}

	if len(program.Decls) != 5 {
		t.Fatalf("expected 5 declarations, got %d", len(program.Decls))
	}

	trait := program.Decls[0].(*decls.TraitDecl)
	if got := trait.Binder.Instantiate(universals(trait.Binder.Kinds())).String(); got != "where {!ty_0: Bar, !ty_1: 'static}" {
		t.Errorf("unexpected trait: %s", got)
	}

	impl := program.Decls[1].(*decls.ImplDecl)
	if got := impl.Binder.Instantiate(universals(impl.Binder.Kinds())).String(); got != "&!lt_1 Vec[!ty_0]: Foo[u32] where {!ty_0: Foo[u32]}" {
		t.Errorf("unexpected impl: %s", got)
	}

	if _, ok := program.Decls[2].(*decls.NegImplDecl); !ok {
		t.Errorf("expected a negative impl, got %v", program.Decls[2])
	}

	adt := program.Decls[3].(*decls.AdtDecl)
	if got := adt.Binder.Instantiate(universals(adt.Binder.Kinds())).String(); adt.Id != "Vec" || got != "where {wf(!ty_0)}" {
		t.Errorf("unexpected struct: %s %s", adt.Id, got)
	}

	alias := program.Decls[4].(*decls.AliasEqDecl)
	if got := alias.Binder.Instantiate(universals(alias.Binder.Kinds())).String(); got != "Iterator::Item[Vec[!ty_0]] = !ty_0 where {}" {
		t.Errorf("unexpected alias: %s", got)
	}
}

func TestLowerQuery(t *testing.T) {
	program := parseProgram(t, "prove forall[lt a] exists[ty X] given { 'a: 'static } { X = u32, wf(&'a X), for[ty T] T: Foo };")

	if len(program.Queries) != 1 {
		t.Fatalf("expected 1 query, got %d", len(program.Queries))
	}

	query := program.Queries[0]
	if len(query.Exists) != 2 || query.Exists[0] || !query.Exists[1] {
		t.Fatalf("unexpected quantifiers: %v", query.Exists)
	}

	body := query.Binder.Instantiate(universals(query.Binder.Kinds()))
	if got := body.First.String(); got != "{!lt_0: 'static}" {
		t.Errorf("unexpected assumptions: %s", got)
	}

	goal := body.Second
	if len(goal) != 3 || goal[0].String() != "!ty_1 = u32" || goal[1].String() != "wf(&!lt_0 !ty_1)" {
		t.Errorf("unexpected goal: %v", goal)
	}

	if _, ok := goal[2].(terms.ForAll); !ok {
		t.Errorf("expected a `for` clause, got %v", goal[2])
	}
}

func TestLowerErrors(t *testing.T) {
	for _, test := range []struct {
		source  string
		message string
	}{
		{"prove { 'a: 'static };", "Can't find lifetime `'a`"},
		{"trait Foo[ty T, ty T];", "`T` is declared more than once"},
		{"prove forall[ty T] { T[u8] = T };", "`T` is a variable and doesn't take parameters"},
		{"impl Self: Foo;", "`Self` is only available in trait declarations"},
		{"prove { 'static = u32 };", "Expected a lifetime here, but found `u32`"},
		{"prove { u32[u8] = u32 };", "`u32` doesn't take parameters"},
	} {
		_, err := syntax.ParseProgram("test", test.source)
		if err == nil {
			t.Errorf("expected %q to fail", test.source)
			continue
		}

		if err.Message != test.message {
			t.Errorf("%q: expected %q, got %q", test.source, test.message, err.Message)
		}
	}
}
