package prove

import (
	"fmt"

	"formality/judgment"
	"formality/terms"
)

func (p Prover) proveEq(env Env, assumptions terms.Wcs, a terms.Parameter, b terms.Parameter) *ProvenSet {
	return p.judge("prove_eq", []any{env, assumptions, a, b}, func(p Prover) []rule {
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

		// Only flip when the right-hand side has rules the left-hand side lacks
		if flips(a, b) {
			rules = append(rules, newRule("symmetric", func(yield func(Constraints) bool) {
				for c := range p.proveEq(env, assumptions, b, a).All() {
					if !yield(c) {
						return
					}
				}
			}))
		}

		switch a := a.(type) {
		case terms.RigidTy:
			if b, ok := b.(terms.RigidTy); ok && a.Name == b.Name && len(a.Parameters) == len(b.Parameters) {
				rules = append(rules, setRule("rigid", p.Prove(env, assumptions, terms.AllEq(a.Parameters, b.Parameters))))
			}
		case terms.AliasTy:
			if b, ok := b.(terms.AliasTy); ok && a.Name == b.Name && len(a.Parameters) == len(b.Parameters) {
				rules = append(rules, setRule("alias", p.Prove(env, assumptions, terms.AllEq(a.Parameters, b.Parameters))))
			}

			rules = append(rules, newRule("normalize-l", func(yield func(Constraints) bool) {
				for n := range p.proveNormalize(env, assumptions, a).All() {
					for c := range p.proveAfter(n.Constraints, assumptions, terms.Wcs{terms.Eq(n.Ty, b)}).All() {
						if !yield(c) {
							return
						}
					}
				}
			}))
		case terms.ExistentialVar:
			rules = append(rules, setRule("existential", p.proveExistentialVarEq(env, assumptions, a, b)))
		}

		return rules
	})
}

func flips(a terms.Parameter, b terms.Parameter) bool {
	switch b := b.(type) {
	case terms.ExistentialVar:
		_, ok := a.(terms.ExistentialVar)
		return !ok
	case terms.AliasTy:
		a, ok := a.(terms.AliasTy)
		return !ok || a.Name != b.Name
	default:
		return false
	}
}

func (p Prover) proveExistentialVarEq(env Env, assumptions terms.Wcs, v terms.ExistentialVar, b terms.Parameter) *ProvenSet {
	return p.judge("prove_existential_var_eq", []any{env, assumptions, v, b}, func(p Prover) []rule {
		switch b := b.(type) {
		case terms.ExistentialVar:
			if b == v {
				return nil
			}

			// Bind whichever of the two lives in the larger universe
			return []rule{
				newRule("existential-existential", func(yield func(Constraints) bool) {
					if env.Universe(v) < env.Universe(b) {
						yield(None(env).WithBinding(b, v))
					} else {
						yield(None(env).WithBinding(v, b))
					}
				}),
			}
		case terms.UniversalVar:
			return []rule{
				newRule("existential-universal", func(yield func(Constraints) bool) {
					if env.Universe(b) <= env.Universe(v) {
						yield(None(env).WithBinding(v, b))
					}
				}),
			}
		default:
			return []rule{
				setRule("existential-nonvar", p.equateVariable(env, assumptions, v, b)),
			}
		}
	})
}

// equateVariable binds `v := b`, where `b` is not a variable. Variables in
// `b` from a universe `v` cannot name are replaced by fresh existentials in
// `v`'s universe; for universals, the replacement must then be proven equal.
func (p Prover) equateVariable(env Env, assumptions terms.Wcs, v terms.ExistentialVar, b terms.Parameter) *ProvenSet {
	label := fmt.Sprintf("equate_variable[%v, %v]", v, b)

	if terms.Occurs(v, b) {
		return judgment.Failed[Constraints](label, fmt.Sprintf("%v occurs in %v", v, b))
	}

	universe := env.Universe(v)

	type replacement struct {
		from terms.Variable
		to   terms.ExistentialVar
	}

	var replacements []replacement
	for _, fv := range terms.FreeVariables(b) {
		if env.Universe(fv) <= universe {
			continue
		}

		var fresh terms.ExistentialVar
		env, fresh = env.InsertExistentialAfter(v, fv.Kind())
		replacements = append(replacements, replacement{from: fv, to: fresh})
	}

	c := None(env)
	var goals terms.Wcs
	rename := make(terms.Substitution, len(replacements))
	for _, r := range replacements {
		rename[r.from] = r.to
		switch from := r.from.(type) {
		case terms.ExistentialVar:
			c = c.WithBinding(from, r.to)
		case terms.UniversalVar:
			goals = append(goals, terms.Eq(from, r.to))
		}
	}

	c = c.WithBinding(v, terms.Apply(rename, b))

	return p.proveAfter(c, assumptions, goals)
}
