package prove

import (
	"fmt"

	"formality/decls"
	"formality/judgment"
	"formality/terms"
)

// NegationViaFailure succeeds, binding nothing, if `op` cannot be proven in
// `env`. Results that hold only conditionally (they bind a variable, defer an
// obligation, or are ambiguous) settle nothing; the env's bias decides how
// they are treated.
func NegationViaFailure(env Env, op func(env Env) *ProvenSet) *ProvenSet {
	result := op(env)
	label := fmt.Sprintf("negation_via_failure[%v]", result.Label())

	settled := true
	for c := range result.All() {
		if c.unconditionallyTrue(env) {
			return judgment.Failed[Constraints](label, fmt.Sprintf("proven: %v", c))
		}

		settled = false
	}

	if settled {
		return judgment.Singleton(None(env))
	}

	switch env.bias {
	case Soundness:
		return judgment.Failed[Constraints](label, "ambiguous")
	default:
		return judgment.Singleton(None(env))
	}
}

// IsDefinitelyNotProveable succeeds only if `goal` has no proof at all.
func IsDefinitelyNotProveable(d *decls.Decls, env Env, assumptions terms.Wcs, goal terms.Wcs) *ProvenSet {
	return NegationViaFailure(env.WithBias(Soundness), func(env Env) *ProvenSet {
		return Prove(d, env, assumptions, goal)
	})
}

// MayNotBeProvable succeeds unless `op` holds unconditionally.
func MayNotBeProvable(env Env, op func(env Env) *ProvenSet) *ProvenSet {
	return NegationViaFailure(env.WithBias(Completeness), op)
}

func (c Constraints) unconditionallyTrue(env Env) bool {
	return c.knownTrue && len(c.substitution) == 0 && len(c.env.pending) == len(env.pending)
}
