package prove

import (
	"fmt"

	"formality/judgment"
	"formality/terms"
)

// Normalized is one way an alias normalizes: the type it is equal to, under
// some constraints.
type Normalized struct {
	Constraints
	Ty terms.Parameter
}

func (n Normalized) String() string {
	return fmt.Sprintf("(%v, %v)", n.Constraints, n.Ty)
}

func (n Normalized) Key() string {
	return n.String()
}

type normalizeRule = judgment.Rule[Normalized]

func (p Prover) proveNormalize(env Env, assumptions terms.Wcs, alias terms.AliasTy) *judgment.ProvenSet[Normalized] {
	label := fmt.Sprintf("prove_normalize[%v, %v, %v]", env, assumptions, alias)
	p, ok := p.enter(label)
	if !ok {
		return judgment.Failed[Normalized](label, "cycle")
	}

	return judgment.Rules(label,
		judgment.NewRule("normalize-via-assumption", func(yield func(Normalized) bool) {
			for _, a := range assumptions {
				for n := range p.proveNormalizeVia(env, assumptions, a, alias).All() {
					if !yield(n) {
						return
					}
				}
			}
		}),
		judgment.NewRule("normalize-via-impl", func(yield func(Normalized) bool) {
			for decl := range p.decls.AliasEqDecls(alias.Name) {
				env, vars := env.ExistentialSubstitution(decl.Binder.Kinds())
				data := decl.Binder.Instantiate(vars)
				if len(data.Alias.Parameters) != len(alias.Parameters) {
					continue
				}

				for c := range p.proveAllEq(env, assumptions, alias.Parameters, data.Alias.Parameters).All() {
					for c := range p.proveAfter(c, assumptions, data.WhereClause).All() {
						ty := terms.Apply(c.substitution, data.Ty)
						if !yield(Normalized{Constraints: c.PopSubst(vars, ty), Ty: ty}) {
							return
						}
					}
				}
			}
		}),
	)
}

// proveNormalizeVia normalizes `alias` using an assumption of the form
// `alias = ty` (in either direction).
func (p Prover) proveNormalizeVia(env Env, assumptions terms.Wcs, via terms.Wc, alias terms.AliasTy) *judgment.ProvenSet[Normalized] {
	label := fmt.Sprintf("prove_normalize_via[%v, %v, %v, %v]", env, assumptions, via, alias)
	p, ok := p.enter(label)
	if !ok {
		return judgment.Failed[Normalized](label, "cycle")
	}

	var rules []normalizeRule
	switch via := via.(type) {
	case terms.Relation:
		if via.Skeleton != terms.EqualsRel {
			break
		}

		left, right := via.Parameters[0], via.Parameters[1]
		rules = append(rules,
			judgment.NewRule("axiom-l", p.normalizeAxiom(env, assumptions, left, right, alias)),
			judgment.NewRule("axiom-r", p.normalizeAxiom(env, assumptions, right, left, alias)),
		)
	case terms.ForAll:
		rules = append(rules, judgment.NewRule("forall", func(yield func(Normalized) bool) {
			env, vars := env.ExistentialSubstitution(via.Binder.Kinds())
			via := via.Binder.Instantiate(vars)
			for n := range p.proveNormalizeVia(env, assumptions, via, alias).All() {
				ty := terms.Apply(n.substitution, n.Ty)
				if !yield(Normalized{Constraints: n.PopSubst(vars, ty), Ty: ty}) {
					return
				}
			}
		}))
	case terms.Implies:
		rules = append(rules, judgment.NewRule("implies", func(yield func(Normalized) bool) {
			for n := range p.proveNormalizeVia(env, assumptions, via.Goal, alias).All() {
				for c := range p.proveAfter(n.Constraints, assumptions, via.Hypotheses).All() {
					if !yield(Normalized{Constraints: c, Ty: terms.Apply(c.substitution, n.Ty)}) {
						return
					}
				}
			}
		}))
	}

	return judgment.Rules(label, rules...)
}

// normalizeAxiom uses `from = to` to normalize `alias` when `from` is the
// same alias, up to equality of its parameters.
func (p Prover) normalizeAxiom(env Env, assumptions terms.Wcs, from terms.Parameter, to terms.Parameter, alias terms.AliasTy) func(yield func(Normalized) bool) {
	return func(yield func(Normalized) bool) {
		from, ok := from.(terms.AliasTy)
		if !ok || from.Name != alias.Name || len(from.Parameters) != len(alias.Parameters) {
			return
		}

		for c := range p.Prove(env, assumptions, terms.AllEq(from.Parameters, alias.Parameters)).All() {
			if !yield(Normalized{Constraints: c, Ty: terms.Apply(c.substitution, to)}) {
				return
			}
		}
	}
}
