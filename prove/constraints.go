package prove

import (
	"fmt"
	"slices"

	"formality/terms"
)

// Constraints is one way in which a goal holds: the values chosen for some
// existential variables, the environment those values live in (including any
// deferred obligations), and whether the answer is definite.
type Constraints struct {
	env          Env
	knownTrue    bool
	substitution terms.Substitution
}

func None(env Env) Constraints {
	return Constraints{
		env:          env,
		knownTrue:    true,
		substitution: terms.Substitution{},
	}
}

func (c Constraints) Ambiguous() Constraints {
	c.knownTrue = false
	return c
}

func (c Constraints) IsAmbiguous() bool {
	return !c.knownTrue
}

func (c Constraints) Env() Env {
	return c.env
}

func (c Constraints) Substitution() terms.Substitution {
	return c.substitution.Clone()
}

func (c Constraints) Pending() terms.Wcs {
	return c.env.Pending()
}

// WithBinding records `v := p`. `v` must be unbound and `p` must not mention
// any bound variable.
func (c Constraints) WithBinding(v terms.ExistentialVar, p terms.Parameter) Constraints {
	if _, ok := c.substitution[v]; ok {
		panic(fmt.Sprintf("variable %v is already bound", v))
	}

	p = terms.Apply(c.substitution, p)
	binding := terms.Substitution{v: p}

	substitution := make(terms.Substitution, len(c.substitution)+1)
	for key, value := range c.substitution {
		substitution[key] = terms.Apply(binding, value)
	}
	substitution[v] = p

	c.substitution = substitution
	c.env = c.env.withPendingApplied(binding)
	return c
}

// Seq composes `c` with `next`, a result computed afterwards in `c`'s
// environment (with `c`'s substitution already applied to its goals).
func (c Constraints) Seq(next Constraints) Constraints {
	substitution := make(terms.Substitution, len(c.substitution)+len(next.substitution))
	for key, value := range c.substitution {
		substitution[key] = terms.Apply(next.substitution, value)
	}

	for key, value := range next.substitution {
		if _, ok := substitution[key]; ok {
			panic(fmt.Sprintf("variable %v bound twice", key))
		}

		substitution[key] = value
	}

	return Constraints{
		env:          next.env.withPendingApplied(substitution),
		knownTrue:    c.knownTrue && next.knownTrue,
		substitution: substitution,
	}
}

// PopSubst forgets the variables a binder introduced. A variable that some
// remaining term still mentions (the substitution, a pending obligation, or
// one of `keep`) stays in scope.
func (c Constraints) PopSubst(parameters []terms.Parameter, keep ...terms.Term) Constraints {
	if len(parameters) == 0 {
		return c
	}

	vars := make([]terms.Variable, 0, len(parameters))
	for _, p := range parameters {
		vars = append(vars, p.(terms.Variable))
	}

	substitution := make(terms.Substitution, len(c.substitution))
	for key, value := range c.substitution {
		if !slices.Contains(vars, key) {
			substitution[key] = value
		}
	}

	referenced := func(v terms.Variable) bool {
		for _, value := range substitution {
			if terms.Occurs(v, value) {
				return true
			}
		}

		if terms.Occurs(v, c.env.pending) {
			return true
		}

		return slices.ContainsFunc(keep, func(t terms.Term) bool {
			return terms.Occurs(v, t)
		})
	}

	popped := slices.DeleteFunc(slices.Clone(vars), referenced)

	c.substitution = substitution
	c.env = c.env.PopVars(popped)
	return c
}

// IsValidExtensionOf checks the invariants a judgment must preserve: it only
// adds variables to `env`, it only binds existentials that are in scope, and
// everything it mentions is in scope.
func (c Constraints) IsValidExtensionOf(env Env) bool {
	if !c.env.IsExtensionOf(env) {
		return false
	}

	for key, value := range c.substitution {
		if !terms.IsExistential(key) || !c.env.Contains(key) {
			return false
		}

		if !c.env.Encloses(value) {
			return false
		}
	}

	return c.env.Encloses(c.env.pending)
}

func (c Constraints) String() string {
	s := fmt.Sprintf("Constraints { env: %v, known_true: %v, substitution: %v }", c.env, c.knownTrue, c.substitution)
	return s
}

func (c Constraints) Key() string {
	return c.String()
}
