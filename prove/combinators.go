package prove

import (
	"formality/judgment"
	"formality/terms"
)

// forAll proves `judge` for each item, threading the constraints from one
// item to the next.
func (p Prover) forAll(env Env, assumptions terms.Wcs, items terms.Parameters, judge func(p Prover, env Env, assumptions terms.Wcs, item terms.Parameter) *ProvenSet) *ProvenSet {
	if len(items) == 0 {
		return judgment.Singleton(None(env))
	}

	return judgment.FromSeq("for_all", func(yield func(Constraints) bool) {
		for c := range judge(p, env, assumptions, items[0]).All() {
			s := c.Substitution()
			rest := terms.Apply(s, items[1:])
			for next := range p.forAll(c.Env(), terms.Apply(s, assumptions), rest, judge).All() {
				if !yield(c.Seq(next)) {
					return
				}
			}
		}
	})
}
