package prove

import (
	"formality/terms"
)

// proveVia proves `goal` using the assumption `via`.
func (p Prover) proveVia(env Env, assumptions terms.Wcs, via terms.Wc, goal terms.Wc) *ProvenSet {
	return p.judge("prove_via", []any{env, assumptions, via, goal}, func(p Prover) []rule {
		switch via := via.(type) {
		case terms.Predicate:
			goal, ok := goal.(terms.Predicate)
			if !ok || via.Skeleton != goal.Skeleton || len(via.Parameters) != len(goal.Parameters) {
				return nil
			}

			return []rule{
				setRule("predicate-congruence", p.Prove(env, assumptions, terms.AllEq(via.Parameters, goal.Parameters))),
			}
		case terms.Relation:
			goal, ok := goal.(terms.Relation)
			if !ok || via.Skeleton != goal.Skeleton {
				return nil
			}

			return []rule{
				setRule("relation-congruence", p.Prove(env, assumptions, terms.AllEq(via.Parameters, goal.Parameters))),
			}
		case terms.ForAll:
			return []rule{
				newRule("forall", func(yield func(Constraints) bool) {
					env, vars := env.ExistentialSubstitution(via.Binder.Kinds())
					via := via.Binder.Instantiate(vars)
					for c := range p.proveVia(env, assumptions, via, goal).All() {
						if !yield(c.PopSubst(vars)) {
							return
						}
					}
				}),
			}
		case terms.Implies:
			return []rule{
				newRule("implies", func(yield func(Constraints) bool) {
					for c := range p.proveVia(env, assumptions, via.Goal, goal).All() {
						for c := range p.proveAfter(c, assumptions, via.Hypotheses).All() {
							if !yield(c) {
								return
							}
						}
					}
				}),
			}
		default:
			return nil
		}
	})
}
