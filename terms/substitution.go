package terms

import (
	"slices"
	"strings"
)

// Substitution maps variables to the parameters that replace them. It is kept
// idempotent: no value mentions a key.
type Substitution map[Variable]Parameter

func (s Substitution) Func() SubstFunc {
	return func(v Variable) (Parameter, bool) {
		p, ok := s[v]
		return p, ok
	}
}

func Apply[T Term](s Substitution, t T) T {
	if len(s) == 0 {
		return t
	}

	return Substitute(t, s.Func())
}

func (s Substitution) Clone() Substitution {
	clone := make(Substitution, len(s))
	for v, p := range s {
		clone[v] = p
	}

	return clone
}

// Keys are sorted by their display so that iteration is deterministic.
func (s Substitution) Keys() []Variable {
	keys := make([]Variable, 0, len(s))
	for v := range s {
		keys = append(keys, v)
	}

	slices.SortFunc(keys, func(left Variable, right Variable) int {
		return strings.Compare(left.String(), right.String())
	})

	return keys
}

func (s Substitution) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, v := range s.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(v.String())
		b.WriteString(" => ")
		b.WriteString(s[v].String())
	}
	b.WriteString("}")

	return b.String()
}
