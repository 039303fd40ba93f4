package prove

import (
	"slices"

	"formality/terms"
)

func (p Prover) proveWc(env Env, assumptions terms.Wcs, goal terms.Wc) *ProvenSet {
	return p.judge("prove_wc", []any{env, assumptions, goal}, func(p Prover) []rule {
		switch goal := goal.(type) {
		case terms.ForAll:
			return []rule{
				newRule("forall", func(yield func(Constraints) bool) {
					env, vars := env.UniversalSubstitution(goal.Binder.Kinds())
					wc := goal.Binder.Instantiate(vars)
					for c := range p.proveWc(env, assumptions, wc).All() {
						if !yield(c.PopSubst(vars)) {
							return
						}
					}
				}),
			}
		case terms.Implies:
			return []rule{
				newRule("implies", func(yield func(Constraints) bool) {
					assumptions := append(slices.Clone(assumptions), goal.Hypotheses...)
					for c := range p.proveWc(env, assumptions, goal.Goal).All() {
						if !yield(c) {
							return
						}
					}
				}),
			}
		}

		rules := []rule{
			newRule("assumption", func(yield func(Constraints) bool) {
				for _, a := range assumptions {
					for c := range p.proveVia(env, assumptions, a, goal).All() {
						if !yield(c) {
							return
						}
					}
				}
			}),
		}

		switch goal := goal.(type) {
		case terms.Predicate:
			traitRef := goal.TraitRef()
			switch goal.Skeleton.Kind {
			case terms.IsImplementedPred:
				rules = append(rules,
					p.positiveImpl(env, assumptions, traitRef),
					p.traitImpliedBound(env, assumptions, traitRef),
				)

				// Another layer may add an impl we can't see
				if env.Bias() == Completeness {
					rules = append(rules, p.remoteImpl(env, assumptions, traitRef))
				}
			case terms.NotImplementedPred:
				rules = append(rules, p.negativeImpl(env, assumptions, traitRef))
			case terms.WellFormedTraitRefPred:
				rules = append(rules, p.traitWellFormed(env, assumptions, traitRef))
			case terms.IsLocalPred:
				rules = append(rules, setRule("local", p.proveIsLocalTraitRef(env, assumptions, traitRef)))
			}
		case terms.Relation:
			switch goal.Skeleton {
			case terms.EqualsRel:
				rules = append(rules, setRule("eq", p.proveEq(env, assumptions, goal.Parameters[0], goal.Parameters[1])))
			case terms.SubRel:
				rules = append(rules, setRule("sub", p.proveSub(env, assumptions, goal.Parameters[0], goal.Parameters[1])))
			case terms.OutlivesRel:
				rules = append(rules, setRule("outlives", p.proveOutlives(env, assumptions, goal.Parameters[0], goal.Parameters[1])))
			case terms.WellFormedRel:
				rules = append(rules, setRule("well formed", p.proveWf(env, assumptions, goal.Parameters[0])))
			}
		}

		return rules
	})
}

func (p Prover) positiveImpl(env Env, assumptions terms.Wcs, goal terms.TraitRef) rule {
	return newRule("positive impl", func(yield func(Constraints) bool) {
		trait, ok := p.decls.TraitDecl(goal.TraitId)
		if !ok {
			return
		}

		for impl := range p.decls.ImplDecls(goal.TraitId) {
			env, vars := env.ExistentialSubstitution(impl.Binder.Kinds())
			i := impl.Binder.Instantiate(vars)
			if len(i.TraitRef.Parameters) != len(goal.Parameters) {
				continue
			}

			t := trait.Binder.Instantiate(i.TraitRef.Parameters)

			for c := range p.proveAllEq(env, assumptions, goal.Parameters, i.TraitRef.Parameters).All() {
				for c := range p.proveAfter(c, assumptions, i.WhereClause).All() {
					for c := range p.proveAfter(c, assumptions, t.WhereClause).All() {
						if !yield(c.PopSubst(vars)) {
							return
						}
					}
				}
			}
		}
	})
}

// traitImpliedBound proves `T: Super` from `T: Sub` when `Sub` requires
// `Self: Super`.
func (p Prover) traitImpliedBound(env Env, assumptions terms.Wcs, goal terms.TraitRef) rule {
	return newRule("trait implied bound", func(yield func(Constraints) bool) {
		for trait := range p.decls.TraitDecls() {
			for index, wc := range trait.Binder.Term.WhereClause {
				super, ok := wc.(terms.Predicate)
				if !ok || super.Skeleton.Kind != terms.IsImplementedPred || super.Skeleton.TraitId != goal.TraitId {
					continue
				}

				if len(super.Parameters) != len(goal.Parameters) {
					continue
				}

				env, vars := env.ExistentialSubstitution(trait.Binder.Kinds())
				super = trait.Binder.Instantiate(vars).WhereClause[index].(terms.Predicate)
				sub := terms.NewTraitRef(trait.Id, vars...).IsImplemented()

				for c := range p.proveAllEq(env, assumptions, super.Parameters, goal.Parameters).All() {
					for c := range p.proveAfter(c, assumptions, terms.Wcs{sub}).All() {
						if !yield(c.PopSubst(vars)) {
							return
						}
					}
				}
			}
		}
	})
}

func (p Prover) negativeImpl(env Env, assumptions terms.Wcs, goal terms.TraitRef) rule {
	return newRule("negative impl", func(yield func(Constraints) bool) {
		for impl := range p.decls.NegImplDecls(goal.TraitId) {
			env, vars := env.ExistentialSubstitution(impl.Binder.Kinds())
			i := impl.Binder.Instantiate(vars)
			if len(i.TraitRef.Parameters) != len(goal.Parameters) {
				continue
			}

			for c := range p.proveAllEq(env, assumptions, goal.Parameters, i.TraitRef.Parameters).All() {
				for c := range p.proveAfter(c, assumptions, i.WhereClause).All() {
					if !yield(c.PopSubst(vars)) {
						return
					}
				}
			}
		}
	})
}

func (p Prover) traitWellFormed(env Env, assumptions terms.Wcs, goal terms.TraitRef) rule {
	return newRule("trait well formed", func(yield func(Constraints) bool) {
		trait, ok := p.decls.TraitDecl(goal.TraitId)
		if !ok || trait.Binder.Len() != len(goal.Parameters) {
			return
		}

		for c := range p.forAll(env, assumptions, goal.Parameters, Prover.proveWf).All() {
			t := trait.Binder.Instantiate(terms.Apply(c.Substitution(), goal.Parameters))
			for c := range p.proveAfter(c, assumptions, t.WhereClause).All() {
				if !yield(c) {
					return
				}
			}
		}
	})
}
