package prove

import (
	"fmt"
	"slices"
	"strings"

	"formality/terms"

	"github.com/hashicorp/go-set/v3"
)

// Bias decides how ambiguity is treated when the answer matters: under
// `Soundness` an ambiguous proof is not trusted, under `Completeness` it is
// assumed to hold.
type Bias int

const (
	Soundness Bias = iota
	Completeness
)

func (bias Bias) String() string {
	switch bias {
	case Soundness:
		return "soundness"
	case Completeness:
		return "completeness"
	default:
		panic(fmt.Sprintf("invalid bias: %d", int(bias)))
	}
}

func ParseBias(s string) (Bias, error) {
	switch s {
	case "soundness":
		return Soundness, nil
	case "completeness":
		return Completeness, nil
	default:
		return Soundness, fmt.Errorf("unknown bias %q", s)
	}
}

// Env is the set of variables in scope, in order of introduction, together
// with the where-clauses whose proof was deferred to the caller. It is a
// value: every operation returns a new Env.
type Env struct {
	variables []terms.Variable
	next      int
	bias      Bias
	pending   terms.Wcs
}

func NewEnv(bias Bias) Env {
	return Env{bias: bias}
}

func (env Env) Bias() Bias {
	return env.bias
}

func (env Env) WithBias(bias Bias) Env {
	env.bias = bias
	return env
}

func (env Env) Variables() []terms.Variable {
	return slices.Clone(env.variables)
}

func (env Env) Pending() terms.Wcs {
	return slices.Clone(env.pending)
}

func (env Env) WithPending(wc terms.Wc) Env {
	if env.pending.Contains(wc) {
		return env
	}

	env.pending = append(slices.Clone(env.pending), wc)
	return env
}

func (env Env) withPendingApplied(s terms.Substitution) Env {
	if len(s) == 0 || len(env.pending) == 0 {
		return env
	}

	var pending terms.Wcs
	for _, wc := range env.pending {
		wc = terms.Apply(s, wc)
		if !pending.Contains(wc) {
			pending = append(pending, wc)
		}
	}

	env.pending = pending
	return env
}

func (env Env) fresh(universal bool, kind terms.Kind) (Env, terms.Variable) {
	index := env.next
	env.next++

	if universal {
		return env, terms.UniversalVar{VarKind: kind, Index: index}
	}

	return env, terms.ExistentialVar{VarKind: kind, Index: index}
}

func (env Env) push(v terms.Variable) Env {
	env.variables = append(slices.Clone(env.variables), v)
	return env
}

func (env Env) NewUniversal(kind terms.Kind) (Env, terms.UniversalVar) {
	env, v := env.fresh(true, kind)
	return env.push(v), v.(terms.UniversalVar)
}

func (env Env) NewExistential(kind terms.Kind) (Env, terms.ExistentialVar) {
	env, v := env.fresh(false, kind)
	return env.push(v), v.(terms.ExistentialVar)
}

// InsertExistentialAfter introduces an existential in the same universe as
// `after` (or in the root universe if `after` is nil).
func (env Env) InsertExistentialAfter(after terms.Variable, kind terms.Kind) (Env, terms.ExistentialVar) {
	env, v := env.fresh(false, kind)
	return env.insertAfter(after, v), v.(terms.ExistentialVar)
}

func (env Env) insertAfter(after terms.Variable, v terms.Variable) Env {
	position := 0
	if after != nil {
		index := slices.Index(env.variables, after)
		if index == -1 {
			panic(fmt.Sprintf("variable %v is not in the environment", after))
		}

		position = index + 1
	}

	env.variables = slices.Insert(slices.Clone(env.variables), position, v)
	return env
}

func (env Env) substitution(universal bool, kinds []terms.Kind) (Env, []terms.Parameter) {
	parameters := make([]terms.Parameter, len(kinds))
	for i, kind := range kinds {
		var v terms.Variable
		env, v = env.fresh(universal, kind)
		env = env.push(v)
		parameters[i] = v
	}

	return env, parameters
}

// UniversalSubstitution creates a universal variable per binder variable.
func (env Env) UniversalSubstitution(kinds []terms.Kind) (Env, []terms.Parameter) {
	return env.substitution(true, kinds)
}

// ExistentialSubstitution creates an existential variable per binder
// variable.
func (env Env) ExistentialSubstitution(kinds []terms.Kind) (Env, []terms.Parameter) {
	return env.substitution(false, kinds)
}

func (env Env) Contains(v terms.Variable) bool {
	return slices.Contains(env.variables, v)
}

// Universe counts the universal variables introduced at or before `v`. An
// existential can only name universals whose universe is no larger than its
// own.
func (env Env) Universe(v terms.Variable) int {
	universe := 0
	for _, other := range env.variables {
		if terms.IsUniversal(other) {
			universe++
		}

		if other == v {
			return universe
		}
	}

	panic(fmt.Sprintf("variable %v is not in the environment", v))
}

// Encloses checks that every free variable of `t` is in scope.
func (env Env) Encloses(t terms.Term) bool {
	inScope := set.From(env.variables)

	encloses := true
	t.Visit(func(v terms.Variable) {
		if !inScope.Contains(v) {
			encloses = false
		}
	})

	return encloses
}

// PopVars removes `vars` from scope.
func (env Env) PopVars(vars []terms.Variable) Env {
	env.variables = slices.DeleteFunc(slices.Clone(env.variables), func(v terms.Variable) bool {
		return slices.Contains(vars, v)
	})

	return env
}

// IsExtensionOf checks that `env` only adds variables to `other`, keeping the
// order of the ones they share.
func (env Env) IsExtensionOf(other Env) bool {
	i := 0
	for _, v := range env.variables {
		if i < len(other.variables) && other.variables[i] == v {
			i++
		}
	}

	return i == len(other.variables)
}

func (env Env) String() string {
	var s strings.Builder
	s.WriteString("Env { variables: [")
	for i, v := range env.variables {
		if i > 0 {
			s.WriteString(", ")
		}

		s.WriteString(v.String())
	}
	fmt.Fprintf(&s, "], bias: %v, pending: %v }", env.bias, env.pending)

	return s.String()
}
