package coherence

import (
	"fmt"

	"formality/decls"
	"formality/prove"
	"formality/terms"
)

// Orphan is an impl in the innermost layer of a trait ref that layer doesn't
// own.
type Orphan struct {
	Impl     decls.Decl
	TraitRef terms.TraitRef
}

func (orphan Orphan) String() string {
	return fmt.Sprintf("impl `%v` implements `%v`, but neither the trait nor a type it covers is local", orphan.Impl, orphan.TraitRef)
}

// CheckOrphans reports every impl of the innermost layer whose trait ref
// can't be shown local, assuming the impl's where-clauses.
func CheckOrphans(d *decls.Decls) []Orphan {
	var orphans []Orphan
	for decl := range d.LocalImplDecls() {
		var binder terms.Binder[decls.ImplBoundData]
		switch decl := decl.(type) {
		case *decls.ImplDecl:
			binder = decl.Binder
		case *decls.NegImplDecl:
			binder = decl.Binder
		}

		env, vars := prove.NewEnv(prove.Soundness).UniversalSubstitution(binder.Kinds())
		data := binder.Instantiate(vars)

		result := prove.Prove(d, env, data.WhereClause, terms.Wcs{data.TraitRef.IsLocal()})
		verdict := prove.Classify(result)
		log.Debugf("%v is local: %v", data.TraitRef, verdict)

		if verdict != prove.Proven {
			orphans = append(orphans, Orphan{Impl: decl, TraitRef: data.TraitRef})
		}
	}

	return orphans
}
