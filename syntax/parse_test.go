package syntax_test

import (
	"testing"

	"formality/syntax"
)

func TestParseNamedTy(t *testing.T) {
	syntax.TestParse(t, syntax.ParseTy, "Vec[u32]")
}

func TestParseRefTy(t *testing.T) {
	syntax.TestParse(t, syntax.ParseTy, "&'a mut (T, u8)")
}

func TestParseTupleTys(t *testing.T) {
	syntax.TestParse(t, syntax.ParseTy, "((), (u8,), (u8))")
}

func TestParseTupleCommas(t *testing.T) {
	for _, test := range []struct {
		source   string
		elements int
	}{
		{"()", 0},
		{"(u8,)", 1},
		{"(u8, u32)", 2},
		{"(u8, u32,)", 2},
	} {
		ty, err := syntax.Parse("test", test.source, syntax.ParseTy)
		if err != nil {
			t.Fatalf("%q: %v", test.source, err)
		}

		tuple, ok := ty.(*syntax.TupleTy)
		if !ok || len(tuple.Elements) != test.elements {
			t.Errorf("%q: expected a tuple of %d, got %#v", test.source, test.elements, ty)
		}
	}

	ty, err := syntax.Parse("test", "(u8)", syntax.ParseTy)
	if err != nil {
		t.Fatal(err)
	}

	if named, ok := ty.(*syntax.NamedTy); !ok || named.Name != "u8" {
		t.Errorf("expected `(u8)` to be `u8`, got %#v", ty)
	}
}

func TestParseAliasTy(t *testing.T) {
	syntax.TestParse(t, syntax.ParseTy, "Iterator::Item[Vec[T]]")
}

func TestParseRelations(t *testing.T) {
	syntax.TestParse(t, syntax.ParseWcBlock, "{ X = u32, &'a T <: &'b T, 'a: 'static, }")
}

func TestParsePredicates(t *testing.T) {
	syntax.TestParse(t, syntax.ParseWcBlock, "{ T: Foo, T: !Into[u8], wf(T), wf(T: Copy) }")
}

func TestParseBinders(t *testing.T) {
	syntax.TestParse(t, syntax.ParseWc, "for[ty T, lt a] if { T: 'a } &'a T: Foo")
}

func TestParseFile(t *testing.T) {
	syntax.TestParse(t, syntax.ParseFile, `
		// Declarations
		max_size 40;
		trait Foo[ty T] where Self: Bar;
		impl[ty T] Vec[T]: Foo[u32] where T: Foo[u32];
		impl u8: !Foo[u32];
		struct Vec[ty T];
		alias[ty T] Iterator::Item[Vec[T]] = T;

		prove forall[lt a] exists[ty X] given { 'a: 'static } { X = u32, wf(&'a X) };
	`)
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		source  string
		message string
	}{
		{"trait Foo", "Expected `;`, but found the end of the file"},
		{"impl u32 Foo;", "Expected `:`, but found a name"},
		{"prove { X };", "Expected `=`, `<:` or `:` after this type"},
		{"struct Vec[ty T] where;", "Expected at least 1 items"},
		{"prove { (,) = () };", "Expected `)`, but found `,`"},
		{"trait $", "Unexpected character"},
		{"u32: Foo;", "Expected an item"},
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
