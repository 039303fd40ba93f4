package prove

import (
	"formality/terms"
)

// proveOutlives proves `a: b`: as long as `b` is valid, `a` is valid.
func (p Prover) proveOutlives(env Env, assumptions terms.Wcs, a terms.Parameter, b terms.Parameter) *ProvenSet {
	return p.judge("prove_outlives", []any{env, assumptions, a, b}, func(p Prover) []rule {
		rules := []rule{
			newRule("trivial", func(yield func(Constraints) bool) {
				if terms.Equal(a, b) {
					yield(None(env))
				}
			}),
			newRule("static outlives everything", func(yield func(Constraints) bool) {
				if _, ok := a.(terms.Static); ok {
					yield(None(env))
				}
			}),
		}

		// A type outlives `b` if everything in it does
		if ty, ok := a.(terms.RigidTy); ok {
			goals := make(terms.Wcs, len(ty.Parameters))
			for i, parameter := range ty.Parameters {
				goals[i] = terms.Outlives(parameter, b)
			}

			rules = append(rules, setRule("rigid components", p.Prove(env, assumptions, goals)))
		}

		rules = append(rules,
			newRule("transitive via assumption", func(yield func(Constraints) bool) {
				for _, assumption := range assumptions {
					r, ok := assumption.(terms.Relation)
					if !ok || r.Skeleton != terms.OutlivesRel || !terms.Equal(r.Parameters[0], a) || terms.Equal(r.Parameters[1], b) {
						continue
					}

					for c := range p.Prove(env, assumptions, terms.Wcs{terms.Outlives(r.Parameters[1], b)}).All() {
						if !yield(c) {
							return
						}
					}
				}
			}),
			// Rather than proving `a: b` here, leave it to the caller
			newRule("anything can be pending", func(yield func(Constraints) bool) {
				yield(None(env.WithPending(terms.Outlives(a, b))))
			}),
		)

		return rules
	})
}
