package prove

import (
	"formality/terms"
)

type variance int

const (
	covariant variance = iota
	invariant
)

// variances gives how each parameter of a rigid type relates subtyping of
// the whole to subtyping of the parts.
func variances(ty terms.RigidTy) []variance {
	vs := make([]variance, len(ty.Parameters))
	switch ty.Name.Kind {
	case terms.RefKind, terms.TupleKind:
		// covariant throughout
	case terms.RefMutKind:
		vs[1] = invariant
	default:
		for i := range vs {
			vs[i] = invariant
		}
	}

	return vs
}

// proveSub proves `a <: b`. For lifetimes, `'a <: 'b` means `'a: 'b`.
func (p Prover) proveSub(env Env, assumptions terms.Wcs, a terms.Parameter, b terms.Parameter) *ProvenSet {
	return p.judge("prove_sub", []any{env, assumptions, a, b}, func(p Prover) []rule {
		if a.Kind() != b.Kind() {
			return nil
		}

		rules := []rule{
			newRule("trivial", func(yield func(Constraints) bool) {
				if terms.Equal(a, b) {
					yield(None(env))
				}
			}),
		}

		if a.Kind() == terms.LtKind {
			return append(rules, setRule("lifetimes", p.Prove(env, assumptions, terms.Wcs{terms.Outlives(a, b)})))
		}

		_, aExistential := a.(terms.ExistentialVar)
		_, bExistential := b.(terms.ExistentialVar)
		if aExistential || bExistential {
			rules = append(rules, setRule("existential", p.Prove(env, assumptions, terms.Wcs{terms.Eq(a, b)})))
		}

		left, leftOk := a.(terms.RigidTy)
		right, rightOk := b.(terms.RigidTy)
		if leftOk && rightOk && left.Name == right.Name && len(left.Parameters) == len(right.Parameters) {
			var goals terms.Wcs
			for i, v := range variances(left) {
				switch v {
				case covariant:
					goals = append(goals, terms.Sub(left.Parameters[i], right.Parameters[i]))
				case invariant:
					goals = append(goals, terms.Eq(left.Parameters[i], right.Parameters[i]))
				}
			}

			rules = append(rules, setRule("rigid", p.Prove(env, assumptions, goals)))
		}

		if alias, ok := a.(terms.AliasTy); ok {
			rules = append(rules, newRule("normalize-l", func(yield func(Constraints) bool) {
				for n := range p.proveNormalize(env, assumptions, alias).All() {
					for c := range p.proveAfter(n.Constraints, assumptions, terms.Wcs{terms.Sub(n.Ty, b)}).All() {
						if !yield(c) {
							return
						}
					}
				}
			}))
		}

		if alias, ok := b.(terms.AliasTy); ok {
			rules = append(rules, newRule("normalize-r", func(yield func(Constraints) bool) {
				for n := range p.proveNormalize(env, assumptions, alias).All() {
					for c := range p.proveAfter(n.Constraints, assumptions, terms.Wcs{terms.Sub(a, n.Ty)}).All() {
						if !yield(c) {
							return
						}
					}
				}
			}))
		}

		return rules
	})
}
