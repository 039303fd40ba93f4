package prove

import (
	"fmt"

	"formality/decls"
	"formality/terms"
)

// proveIsLocalTraitRef proves that the innermost layer may implement `goal`
// under the orphan rules: either the trait is declared there, or some
// parameter is a local type and nothing before it is a type another layer
// could choose.
func (p Prover) proveIsLocalTraitRef(env Env, assumptions terms.Wcs, goal terms.TraitRef) *ProvenSet {
	return p.judge("is_local_trait_ref", []any{env, assumptions, goal}, func(p Prover) []rule {
		rules := []rule{
			newRule("local trait", func(yield func(Constraints) bool) {
				if p.decls.IsLocalTrait(goal.TraitId) {
					yield(None(env))
				}
			}),
		}

		for i, parameter := range goal.Parameters {
			rules = append(rules, newRule(fmt.Sprintf("local parameter %d", i), func(yield func(Constraints) bool) {
				for c := range p.isLocalParameter(env, assumptions, parameter).All() {
					s := c.Substitution()
					before := terms.Apply(s, goal.Parameters[:i])

					for next := range p.forAll(c.Env(), terms.Apply(s, assumptions), before, Prover.isNotDownstream).All() {
						if !yield(c.Seq(next)) {
							return
						}
					}
				}
			}))
		}

		return rules
	})
}

func (p Prover) isLocalParameter(env Env, assumptions terms.Wcs, goal terms.Parameter) *ProvenSet {
	return p.judge("is_local_parameter", []any{env, assumptions, goal}, func(p Prover) []rule {
		switch goal := goal.(type) {
		case terms.RigidTy:
			switch goal.Name.Kind {
			case terms.AdtKind:
				return []rule{
					newRule("local rigid type", func(yield func(Constraints) bool) {
						if p.decls.IsLocalAdt(goal.Name.Id) {
							yield(None(env))
						}
					}),
				}
			case terms.RefKind, terms.RefMutKind:
				// References are fundamental: `&T` is local when `T` is
				return []rule{setRule("fundamental rigid type", p.isLocalParameter(env, assumptions, goal.Parameters[1]))}
			}
		case terms.AliasTy:
			return []rule{
				newRule("local parameter via normalization", func(yield func(Constraints) bool) {
					for n := range p.proveNormalize(env, assumptions, goal).All() {
						s := n.Substitution()
						for c := range p.isLocalParameter(n.Env(), terms.Apply(s, assumptions), terms.Apply(s, n.Ty)).All() {
							if !yield(n.Constraints.Seq(c)) {
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

// isNotDownstream holds for parameters that no other layer could fill with
// one of its own types.
func (p Prover) isNotDownstream(env Env, assumptions terms.Wcs, goal terms.Parameter) *ProvenSet {
	return p.judge("is_not_downstream", []any{env, assumptions, goal}, func(p Prover) []rule {
		switch goal := goal.(type) {
		case terms.RigidTy:
			if goal.Name.Kind == terms.RefKind || goal.Name.Kind == terms.RefMutKind {
				return []rule{setRule("fundamental rigid type", p.isNotDownstream(env, assumptions, goal.Parameters[1]))}
			}

			return []rule{
				newRule("rigid type", func(yield func(Constraints) bool) {
					yield(None(env))
				}),
			}
		case terms.Variable:
			if goal.Kind() == terms.LtKind {
				return []rule{
					newRule("lifetime", func(yield func(Constraints) bool) {
						yield(None(env))
					}),
				}
			}
		case terms.Static:
			return []rule{
				newRule("lifetime", func(yield func(Constraints) bool) {
					yield(None(env))
				}),
			}
		}

		return nil
	})
}

// mayBeDownstream is true of parameters that could still turn out to be a
// type declared by another layer.
func mayBeDownstream(goal terms.Parameter) bool {
	switch goal := goal.(type) {
	case terms.ExistentialVar:
		return goal.Kind() == terms.TyKind
	case terms.AliasTy:
		return true
	case terms.RigidTy:
		if goal.Name.Kind == terms.RefKind || goal.Name.Kind == terms.RefMutKind {
			return mayBeDownstream(goal.Parameters[1])
		}
	}

	return false
}

func (p Prover) mayBeRemote(env Env, assumptions terms.Wcs, goal terms.TraitRef) *ProvenSet {
	return p.judge("may_be_remote", []any{env, assumptions, goal}, func(p Prover) []rule {
		return []rule{
			newRule("may be downstream", func(yield func(Constraints) bool) {
				for _, parameter := range goal.Parameters {
					if mayBeDownstream(parameter) {
						yield(None(env))
						return
					}
				}
			}),
			newRule("not known to be local", func(yield func(Constraints) bool) {
				notLocal := MayNotBeProvable(env, func(env Env) *ProvenSet {
					return p.proveIsLocalTraitRef(env, assumptions, goal)
				})

				if !notLocal.IsEmpty() {
					yield(None(env))
				}
			}),
		}
	})
}

// remoteImpl is an ambiguous answer for trait refs that another layer could
// implement.
func (p Prover) remoteImpl(env Env, assumptions terms.Wcs, goal terms.TraitRef) rule {
	return newRule("remote impl", func(yield func(Constraints) bool) {
		for c := range p.mayBeRemote(env, assumptions, goal).All() {
			if !yield(c.Ambiguous()) {
				return
			}
		}
	})
}

// MayBeRemote succeeds if an impl of `goal` could come from outside the
// innermost layer of `d`.
func MayBeRemote(d *decls.Decls, env Env, assumptions terms.Wcs, goal terms.TraitRef) *ProvenSet {
	return NewProver(d).mayBeRemote(env, assumptions, goal)
}
