package coherence_test

import (
	"testing"

	"formality/coherence"
	"formality/decls"
	"formality/terms"
)

func traitDecl(id string) *decls.TraitDecl {
	return &decls.TraitDecl{
		Id: id,
		Binder: terms.Bind([]terms.Kind{terms.TyKind}, func([]terms.Parameter) decls.TraitBoundData {
			return decls.TraitBoundData{}
		}),
	}
}

func implData(kinds []terms.Kind, build func(vars []terms.Parameter) decls.ImplBoundData) terms.Binder[decls.ImplBoundData] {
	return terms.Bind(kinds, build)
}

func simpleImpl(trait string, ty terms.Parameter) *decls.ImplDecl {
	return &decls.ImplDecl{
		Binder: implData(nil, func([]terms.Parameter) decls.ImplBoundData {
			return decls.ImplBoundData{TraitRef: terms.NewTraitRef(trait, ty)}
		}),
	}
}

func blanketImpl(trait string) *decls.ImplDecl {
	return &decls.ImplDecl{
		Binder: implData([]terms.Kind{terms.TyKind}, func(vars []terms.Parameter) decls.ImplBoundData {
			return decls.ImplBoundData{TraitRef: terms.NewTraitRef(trait, vars[0])}
		}),
	}
}

func TestOverlappingImpls(t *testing.T) {
	d := decls.New(nil)
	d.Register(traitDecl("Foo"))
	d.Register(blanketImpl("Foo"))
	d.Register(simpleImpl("Foo", terms.Scalar("u32")))

	overlaps := coherence.CheckOverlap(d)
	if len(overlaps) != 1 || overlaps[0].TraitId != "Foo" || overlaps[0].Negative {
		t.Fatalf("expected one overlap, got %v", overlaps)
	}
}

func TestDisjointImpls(t *testing.T) {
	d := decls.New(nil)
	d.Register(traitDecl("Foo"))
	d.Register(traitDecl("Bar"))
	d.Register(simpleImpl("Foo", terms.Scalar("u32")))
	d.Register(simpleImpl("Foo", terms.Scalar("u8")))

	// `Vec[T]: Foo where T: Bar` can't overlap `Vec[u32]: Foo` since
	// nothing implements `Bar`
	d.Register(&decls.ImplDecl{
		Binder: implData([]terms.Kind{terms.TyKind}, func(vars []terms.Parameter) decls.ImplBoundData {
			return decls.ImplBoundData{
				TraitRef:    terms.NewTraitRef("Foo", terms.Adt("Vec", vars[0])),
				WhereClause: terms.Wcs{terms.NewTraitRef("Bar", vars[0]).IsImplemented()},
			}
		}),
	})
	d.Register(simpleImpl("Foo", terms.Adt("Vec", terms.Scalar("u32"))))

	if overlaps := coherence.CheckOverlap(d); len(overlaps) != 0 {
		t.Fatalf("expected no overlaps, got %v", overlaps)
	}
}

func TestOverlapWithNegativeImpl(t *testing.T) {
	d := decls.New(nil)
	d.Register(traitDecl("Foo"))
	d.Register(blanketImpl("Foo"))
	d.Register(&decls.NegImplDecl{
		Binder: implData(nil, func([]terms.Parameter) decls.ImplBoundData {
			return decls.ImplBoundData{TraitRef: terms.NewTraitRef("Foo", terms.Scalar("u8"))}
		}),
	})

	overlaps := coherence.CheckOverlap(d)
	if len(overlaps) != 1 || !overlaps[0].Negative {
		t.Fatalf("expected an overlap with the negative impl, got %v", overlaps)
	}
}

func adtDecl(id string, kinds ...terms.Kind) *decls.AdtDecl {
	return &decls.AdtDecl{
		Id: id,
		Binder: terms.Bind(kinds, func([]terms.Parameter) decls.AdtBoundData {
			return decls.AdtBoundData{}
		}),
	}
}

// orphanDecls declares `Display`, `Pair[T]` and `Vec[T]` in a library layer
// and `Mine` and `Local` in the layer being checked.
func orphanDecls() *decls.Decls {
	lib := decls.New(nil)
	lib.Register(traitDecl("Display"))
	lib.Register(&decls.TraitDecl{
		Id: "Pair",
		Binder: terms.Bind([]terms.Kind{terms.TyKind, terms.TyKind}, func([]terms.Parameter) decls.TraitBoundData {
			return decls.TraitBoundData{}
		}),
	})
	lib.Register(adtDecl("Vec", terms.TyKind))

	d := decls.New(lib)
	d.Register(traitDecl("Mine"))
	d.Register(adtDecl("Local"))

	return d
}

func TestOrphans(t *testing.T) {
	local := terms.Adt("Local")
	u32 := terms.Scalar("u32")

	tests := []struct {
		name   string
		impl   decls.Decl
		orphan bool
	}{
		{"local type", simpleImpl("Display", local), false},
		{"local trait", simpleImpl("Mine", u32), false},
		{"reference to local type", simpleImpl("Display", terms.Ref(terms.Static{}, local)), false},
		{"remote type", simpleImpl("Display", u32), true},
		{"blanket", blanketImpl("Display"), true},
		{"local type in remote type", simpleImpl("Display", terms.Adt("Vec", local)), true},
		{"local type parameter", &decls.ImplDecl{
			Binder: implData(nil, func([]terms.Parameter) decls.ImplBoundData {
				return decls.ImplBoundData{TraitRef: terms.NewTraitRef("Pair", u32, local)}
			}),
		}, false},
		{"uncovered type before local type", &decls.ImplDecl{
			Binder: implData([]terms.Kind{terms.TyKind}, func(vars []terms.Parameter) decls.ImplBoundData {
				return decls.ImplBoundData{TraitRef: terms.NewTraitRef("Pair", vars[0], local)}
			}),
		}, true},
		{"covered type before local type", &decls.ImplDecl{
			Binder: implData([]terms.Kind{terms.TyKind}, func(vars []terms.Parameter) decls.ImplBoundData {
				return decls.ImplBoundData{TraitRef: terms.NewTraitRef("Pair", terms.Adt("Vec", vars[0]), local)}
			}),
		}, false},
		{"negative impl of remote type", &decls.NegImplDecl{
			Binder: implData(nil, func([]terms.Parameter) decls.ImplBoundData {
				return decls.ImplBoundData{TraitRef: terms.NewTraitRef("Display", u32)}
			}),
		}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := orphanDecls()
			d.Register(test.impl)

			orphans := coherence.CheckOrphans(d)
			if test.orphan != (len(orphans) == 1) || len(orphans) > 1 {
				t.Fatalf("expected orphan: %v, got %v", test.orphan, orphans)
			}
		})
	}
}

func TestLibraryImplsAreNotChecked(t *testing.T) {
	lib := decls.New(nil)
	lib.Register(traitDecl("Display"))
	lib.Register(simpleImpl("Display", terms.Scalar("u32")))

	if orphans := coherence.CheckOrphans(decls.New(lib)); len(orphans) != 0 {
		t.Fatalf("expected only the innermost layer to be checked, got %v", orphans)
	}
}
