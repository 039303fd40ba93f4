package terms

import (
	"fmt"

	"github.com/hashicorp/go-set/v3"
)

type Kind int

const (
	TyKind Kind = iota
	LtKind
)

func (kind Kind) String() string {
	switch kind {
	case TyKind:
		return "ty"
	case LtKind:
		return "lt"
	default:
		panic(fmt.Sprintf("invalid kind: %d", int(kind)))
	}
}

// SubstFunc returns the replacement for a variable, or false to leave it alone.
type SubstFunc func(v Variable) (Parameter, bool)

// Term is implemented by everything the prover manipulates: parameters,
// where-clauses, binders and the bound data of declarations.
type Term interface {
	fmt.Stringer
	Size() int
	Visit(f func(v Variable))
	Substitute(f SubstFunc) Term
}

func Substitute[T Term](t T, f SubstFunc) T {
	return t.Substitute(f).(T)
}

// FreeVariables lists the variables of `t` in order of first appearance.
func FreeVariables(t Term) []Variable {
	seen := set.New[Variable](0)

	var vars []Variable
	t.Visit(func(v Variable) {
		if seen.Insert(v) {
			vars = append(vars, v)
		}
	})

	return vars
}

func Occurs(v Variable, t Term) bool {
	occurs := false
	t.Visit(func(other Variable) {
		if other == v {
			occurs = true
		}
	})

	return occurs
}

// Pair lets two terms be treated as one (for sizing, enclosure checks, etc.)
type Pair[A Term, B Term] struct {
	First  A
	Second B
}

func (pair Pair[A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", pair.First, pair.Second)
}

func (pair Pair[A, B]) Size() int {
	return pair.First.Size() + pair.Second.Size()
}

func (pair Pair[A, B]) Visit(f func(v Variable)) {
	pair.First.Visit(f)
	pair.Second.Visit(f)
}

func (pair Pair[A, B]) Substitute(f SubstFunc) Term {
	return Pair[A, B]{
		First:  Substitute(pair.First, f),
		Second: Substitute(pair.Second, f),
	}
}
