package terms

import "fmt"

type Variable interface {
	Parameter
	isVariable()
}

// UniversalVar is rigid: it stands for every possible value.
type UniversalVar struct {
	VarKind Kind
	Index   int
}

// ExistentialVar may be instantiated by the prover.
type ExistentialVar struct {
	VarKind Kind
	Index   int
}

// BoundVar only appears inside the binder that introduced it.
type BoundVar struct {
	VarKind Kind
	Id      int64
}

func (v UniversalVar) Kind() Kind {
	return v.VarKind
}

func (v UniversalVar) String() string {
	return fmt.Sprintf("!%v_%d", v.VarKind, v.Index)
}

func (v UniversalVar) Size() int {
	return 1
}

func (v UniversalVar) Visit(f func(v Variable)) {
	f(v)
}

func (v UniversalVar) Substitute(f SubstFunc) Term {
	return substituteVariable(v, f)
}

func (UniversalVar) isParameter() {}

func (UniversalVar) isVariable() {}

func (v ExistentialVar) Kind() Kind {
	return v.VarKind
}

func (v ExistentialVar) String() string {
	return fmt.Sprintf("?%v_%d", v.VarKind, v.Index)
}

func (v ExistentialVar) Size() int {
	return 1
}

func (v ExistentialVar) Visit(f func(v Variable)) {
	f(v)
}

func (v ExistentialVar) Substitute(f SubstFunc) Term {
	return substituteVariable(v, f)
}

func (ExistentialVar) isParameter() {}

func (ExistentialVar) isVariable() {}

func (v BoundVar) Kind() Kind {
	return v.VarKind
}

func (v BoundVar) String() string {
	return fmt.Sprintf("^%v_%d", v.VarKind, v.Id)
}

func (v BoundVar) Size() int {
	return 1
}

func (v BoundVar) Visit(f func(v Variable)) {
	f(v)
}

func (v BoundVar) Substitute(f SubstFunc) Term {
	return substituteVariable(v, f)
}

func (BoundVar) isParameter() {}

func (BoundVar) isVariable() {}

func substituteVariable(v Variable, f SubstFunc) Term {
	if p, ok := f(v); ok {
		return p
	}

	return v
}

func IsUniversal(v Variable) bool {
	_, ok := v.(UniversalVar)
	return ok
}

func IsExistential(v Variable) bool {
	_, ok := v.(ExistentialVar)
	return ok
}
