package terms

import (
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
)

var nextBoundVar atomic.Int64

func FreshBoundVar(kind Kind) BoundVar {
	return BoundVar{VarKind: kind, Id: nextBoundVar.Add(1)}
}

// Binder introduces variables that are only meaningful within `Term`; they
// are replaced wholesale by `Instantiate`.
type Binder[T Term] struct {
	Vars []BoundVar
	Term T
}

func NewBinder[T Term](vars []BoundVar, term T) Binder[T] {
	return Binder[T]{Vars: vars, Term: term}
}

// Bind allocates fresh bound variables of the given kinds and passes them to
// `build` to construct the body.
func Bind[T Term](kinds []Kind, build func(vars []Parameter) T) Binder[T] {
	vars := make([]BoundVar, len(kinds))
	parameters := make([]Parameter, len(kinds))
	for i, kind := range kinds {
		vars[i] = FreshBoundVar(kind)
		parameters[i] = vars[i]
	}

	return Binder[T]{Vars: vars, Term: build(parameters)}
}

func (b Binder[T]) Kinds() []Kind {
	kinds := make([]Kind, len(b.Vars))
	for i, v := range b.Vars {
		kinds[i] = v.VarKind
	}

	return kinds
}

func (b Binder[T]) Len() int {
	return len(b.Vars)
}

func (b Binder[T]) Instantiate(parameters []Parameter) T {
	if len(parameters) != len(b.Vars) {
		panic(fmt.Sprintf("binder expects %d parameters, got %d", len(b.Vars), len(parameters)))
	}

	replacements := make(map[Variable]Parameter, len(b.Vars))
	for i, v := range b.Vars {
		if parameters[i].Kind() != v.VarKind {
			panic(fmt.Sprintf("cannot instantiate %v with %v: kind mismatch", v, parameters[i]))
		}

		replacements[v] = parameters[i]
	}

	return Substitute(b.Term, func(v Variable) (Parameter, bool) {
		p, ok := replacements[v]
		return p, ok
	})
}

func (b Binder[T]) binds(v Variable) bool {
	bound, ok := v.(BoundVar)
	return ok && slices.Contains(b.Vars, bound)
}

func (b Binder[T]) String() string {
	var s strings.Builder
	s.WriteString("[")
	for i, v := range b.Vars {
		if i > 0 {
			s.WriteString(", ")
		}

		fmt.Fprintf(&s, "%v %v", v.VarKind, v)
	}
	fmt.Fprintf(&s, "] %v", b.Term)

	return s.String()
}

func (b Binder[T]) Size() int {
	return b.Term.Size()
}

func (b Binder[T]) Visit(f func(v Variable)) {
	b.Term.Visit(func(v Variable) {
		if !b.binds(v) {
			f(v)
		}
	})
}

func (b Binder[T]) Substitute(f SubstFunc) Term {
	return Binder[T]{
		Vars: b.Vars,
		Term: Substitute(b.Term, func(v Variable) (Parameter, bool) {
			if b.binds(v) {
				return nil, false
			}

			return f(v)
		}),
	}
}
