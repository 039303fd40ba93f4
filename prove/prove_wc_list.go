package prove

import (
	"formality/judgment"
	"formality/terms"
)

// proveWcList proves each where-clause in order; constraints discovered by
// earlier clauses are applied to later ones.
func (p Prover) proveWcList(env Env, assumptions terms.Wcs, goal terms.Wcs) *ProvenSet {
	return p.judge("prove_wc_list", []any{env, assumptions, goal}, func(p Prover) []rule {
		if len(goal) == 0 {
			return []rule{
				newRule("none", func(yield func(Constraints) bool) {
					yield(None(env))
				}),
			}
		}

		// Only a failure of the first clause is reported
		var first *ProvenSet

		return []rule{{
			Name: "some",
			Apply: func(yield func(Constraints) bool) {
				first = p.proveWc(env, assumptions, goal[0])
				for c := range first.All() {
					for c := range p.proveAfter(c, assumptions, goal[1:]).All() {
						if !yield(c) {
							return
						}
					}
				}
			},
			Failures: func() []judgment.FailedRule {
				if first == nil || !first.IsEmpty() {
					return nil
				}

				return first.Failures()
			},
		}}
	})
}

// proveAfter proves `goal` in the context of earlier results `c`.
func (p Prover) proveAfter(c Constraints, assumptions terms.Wcs, goal terms.Wcs) *ProvenSet {
	s := c.Substitution()
	assumptions = terms.Apply(s, assumptions)
	goal = terms.Apply(s, goal)

	result := p.Prove(c.Env(), assumptions, goal)
	return judgment.Map(result.Label(), result, c.Seq)
}

// proveAllEq matches two parameter lists, as when checking a header against a
// goal. It does not go through `Prove`: the equalities are one step larger
// than the goal, so they would otherwise overflow first and lose the
// bindings the rest of the rule depends on.
func (p Prover) proveAllEq(env Env, assumptions terms.Wcs, left terms.Parameters, right terms.Parameters) *ProvenSet {
	return p.proveWcList(env, assumptions, terms.AllEq(left, right))
}
