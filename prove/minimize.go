package prove

import (
	"formality/terms"

	"github.com/hashicorp/go-set/v3"
)

// Minimization remembers how a goal was renamed by `Minimize` so that results
// can be mapped back onto the caller's variables.
type Minimization struct {
	original   Env
	toOriginal map[terms.Variable]terms.Variable
}

// Minimize drops every variable the goal doesn't mention from the
// environment and renumbers the rest densely, preserving their order and
// their relative universes. Two occurrences of the same subgoal in different
// contexts thus look identical, which is what lets cycles be detected.
func Minimize(env Env, assumptions terms.Wcs, goal terms.Wcs) (Env, terms.Wcs, terms.Wcs, *Minimization) {
	mentioned := set.From(terms.FreeVariables(terms.Pair[terms.Wcs, terms.Wcs]{First: assumptions, Second: goal}))

	minimized := NewEnv(env.bias)
	toMinimized := make(map[terms.Variable]terms.Variable, mentioned.Size())
	toOriginal := make(map[terms.Variable]terms.Variable, mentioned.Size())

	// An unmentioned universal between two mentioned variables still puts
	// them in different universes, so a stand-in takes its place
	var gap terms.Variable
	started := false
	for _, v := range env.variables {
		if !mentioned.Contains(v) {
			if started && gap == nil && terms.IsUniversal(v) {
				gap = v
			}

			continue
		}

		if gap != nil && terms.IsExistential(v) {
			var standIn terms.UniversalVar
			minimized, standIn = minimized.NewUniversal(gap.Kind())
			toOriginal[standIn] = gap
		}

		var renamed terms.Variable
		minimized, renamed = minimized.fresh(terms.IsUniversal(v), v.Kind())
		minimized = minimized.push(renamed)

		toMinimized[v] = renamed
		toOriginal[renamed] = v

		gap = nil
		started = true
	}

	rename := renaming(toMinimized)

	return minimized,
		terms.Substitute(assumptions, rename),
		terms.Substitute(goal, rename),
		&Minimization{original: env, toOriginal: toOriginal}
}

func renaming(m map[terms.Variable]terms.Variable) terms.SubstFunc {
	return func(v terms.Variable) (terms.Parameter, bool) {
		renamed, ok := m[v]
		return renamed, ok
	}
}

// Reconstitute maps a result computed in the minimized environment back into
// the original one. Variables the proof introduced get fresh counterparts:
// existentials are placed after the variable they followed, and universals
// go at the end so that no existing variable changes universe.
func (m *Minimization) Reconstitute(c Constraints) Constraints {
	env := m.original

	toOriginal := make(map[terms.Variable]terms.Variable, len(c.env.variables))
	for minimized, original := range m.toOriginal {
		toOriginal[minimized] = original
	}

	var previous terms.Variable
	for _, v := range c.env.variables {
		if original, ok := toOriginal[v]; ok {
			previous = original
			continue
		}

		var fresh terms.Variable
		env, fresh = env.fresh(terms.IsUniversal(v), v.Kind())
		if terms.IsUniversal(v) {
			env = env.push(fresh)
		} else {
			env = env.insertAfter(previous, fresh)
		}

		toOriginal[v] = fresh
		previous = fresh
	}

	rename := renaming(toOriginal)

	substitution := make(terms.Substitution, len(c.substitution))
	for key, value := range c.substitution {
		substitution[toOriginal[key]] = terms.Substitute(value, rename)
	}

	for _, wc := range c.env.pending {
		env = env.WithPending(terms.Substitute(wc, rename))
	}

	return Constraints{
		env:          env.withPendingApplied(substitution),
		knownTrue:    c.knownTrue,
		substitution: substitution,
	}
}
