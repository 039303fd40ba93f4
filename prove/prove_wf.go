package prove

import (
	"formality/terms"
)

func (p Prover) proveWf(env Env, assumptions terms.Wcs, goal terms.Parameter) *ProvenSet {
	return p.judge("prove_wf", []any{env, assumptions, goal}, func(p Prover) []rule {
		switch goal := goal.(type) {
		case terms.UniversalVar:
			return []rule{
				newRule("universal variables", func(yield func(Constraints) bool) {
					yield(None(env))
				}),
			}
		case terms.Static:
			return []rule{
				newRule("static", func(yield func(Constraints) bool) {
					yield(None(env))
				}),
			}
		case terms.ExistentialVar:
			// Nothing is known about `goal` yet
			return []rule{
				newRule("existential", func(yield func(Constraints) bool) {
					yield(None(env.WithPending(terms.WellFormed(goal))))
				}),
			}
		case terms.RigidTy:
			switch goal.Name.Kind {
			case terms.TupleKind, terms.ScalarKind:
				return []rule{
					setRule("tuples and scalars", p.forAll(env, assumptions, goal.Parameters, Prover.proveWf)),
				}
			case terms.RefKind, terms.RefMutKind:
				return []rule{
					newRule("references", func(yield func(Constraints) bool) {
						lt, ty := goal.Parameters[0], goal.Parameters[1]
						for c := range p.forAll(env, assumptions, goal.Parameters, Prover.proveWf).All() {
							for c := range p.proveAfter(c, assumptions, terms.Wcs{terms.Outlives(ty, lt)}).All() {
								if !yield(c) {
									return
								}
							}
						}
					}),
				}
			case terms.AdtKind:
				return []rule{
					newRule("ADT", func(yield func(Constraints) bool) {
						adt, ok := p.decls.AdtDecl(goal.Name.Id)
						if !ok || adt.Binder.Len() != len(goal.Parameters) {
							return
						}

						for c := range p.forAll(env, assumptions, goal.Parameters, Prover.proveWf).All() {
							data := adt.Binder.Instantiate(terms.Apply(c.Substitution(), goal.Parameters))
							for c := range p.proveAfter(c, assumptions, data.WhereClause).All() {
								if !yield(c) {
									return
								}
							}
						}
					}),
				}
			}
		case terms.AliasTy:
			if len(goal.Parameters) == 0 {
				return nil
			}

			return []rule{
				newRule("alias", func(yield func(Constraints) bool) {
					for c := range p.forAll(env, assumptions, goal.Parameters, Prover.proveWf).All() {
						traitRef := terms.NewTraitRef(goal.Name.TraitId, goal.Parameters...)
						for c := range p.proveAfter(c, assumptions, terms.Wcs{traitRef.IsImplemented()}).All() {
							if !yield(c) {
								return
							}
						}
					}
				}),
			}
		}

		return nil
	})
}
