package terms

import (
	"fmt"
	"slices"
	"strings"
)

// Parameter is anything that can be substituted for a variable: a type or a
// lifetime.
type Parameter interface {
	Term
	Kind() Kind
	isParameter()
}

type Parameters []Parameter

func (parameters Parameters) String() string {
	var s strings.Builder
	for i, p := range parameters {
		if i > 0 {
			s.WriteString(", ")
		}

		s.WriteString(p.String())
	}

	return s.String()
}

func (parameters Parameters) Size() int {
	size := 0
	for _, p := range parameters {
		size += p.Size()
	}

	return size
}

func (parameters Parameters) Visit(f func(v Variable)) {
	for _, p := range parameters {
		p.Visit(f)
	}
}

func (parameters Parameters) Substitute(f SubstFunc) Term {
	substituted := make(Parameters, len(parameters))
	for i, p := range parameters {
		substituted[i] = Substitute(p, f)
	}

	return substituted
}

func (parameters Parameters) Equal(other Parameters) bool {
	return slices.EqualFunc(parameters, other, Equal)
}

type RigidKind int

const (
	AdtKind RigidKind = iota
	ScalarKind
	RefKind
	RefMutKind
	TupleKind
)

type RigidName struct {
	Kind RigidKind
	Id   string
}

// RigidTy is a type whose identity is fixed by its name: `Vec[T]`, `u32`,
// `&'a T`, `(A, B)`.
type RigidTy struct {
	Name       RigidName
	Parameters Parameters
}

func Adt(id string, parameters ...Parameter) RigidTy {
	return RigidTy{Name: RigidName{Kind: AdtKind, Id: id}, Parameters: parameters}
}

func Scalar(id string) RigidTy {
	return RigidTy{Name: RigidName{Kind: ScalarKind, Id: id}}
}

func Ref(lt Parameter, ty Parameter) RigidTy {
	return RigidTy{Name: RigidName{Kind: RefKind}, Parameters: Parameters{lt, ty}}
}

func RefMut(lt Parameter, ty Parameter) RigidTy {
	return RigidTy{Name: RigidName{Kind: RefMutKind}, Parameters: Parameters{lt, ty}}
}

func Tuple(parameters ...Parameter) RigidTy {
	return RigidTy{Name: RigidName{Kind: TupleKind}, Parameters: parameters}
}

var scalars = []string{"bool", "char", "u8", "u16", "u32", "u64", "usize", "i8", "i16", "i32", "i64", "isize"}

func IsScalarName(name string) bool {
	return slices.Contains(scalars, name)
}

func (ty RigidTy) Kind() Kind {
	return TyKind
}

func (ty RigidTy) String() string {
	switch ty.Name.Kind {
	case ScalarKind:
		return ty.Name.Id
	case RefKind:
		return fmt.Sprintf("&%v %v", ty.Parameters[0], ty.Parameters[1])
	case RefMutKind:
		return fmt.Sprintf("&mut %v %v", ty.Parameters[0], ty.Parameters[1])
	case TupleKind:
		if len(ty.Parameters) == 1 {
			return fmt.Sprintf("(%v,)", ty.Parameters[0])
		}

		return fmt.Sprintf("(%v)", ty.Parameters)
	default:
		if len(ty.Parameters) == 0 {
			return ty.Name.Id
		}

		return fmt.Sprintf("%s[%v]", ty.Name.Id, ty.Parameters)
	}
}

func (ty RigidTy) Size() int {
	return 1 + ty.Parameters.Size()
}

func (ty RigidTy) Visit(f func(v Variable)) {
	ty.Parameters.Visit(f)
}

func (ty RigidTy) Substitute(f SubstFunc) Term {
	return RigidTy{Name: ty.Name, Parameters: Substitute(ty.Parameters, f)}
}

func (RigidTy) isParameter() {}

type AliasName struct {
	TraitId string
	Item    string
}

func (name AliasName) String() string {
	return fmt.Sprintf("%s::%s", name.TraitId, name.Item)
}

// AliasTy is an associated type projection like `Iterator::Item[T]`; it
// may normalize to another type.
type AliasTy struct {
	Name       AliasName
	Parameters Parameters
}

func Alias(traitId string, item string, parameters ...Parameter) AliasTy {
	return AliasTy{Name: AliasName{TraitId: traitId, Item: item}, Parameters: parameters}
}

func (ty AliasTy) Kind() Kind {
	return TyKind
}

func (ty AliasTy) String() string {
	if len(ty.Parameters) == 0 {
		return ty.Name.String()
	}

	return fmt.Sprintf("%v[%v]", ty.Name, ty.Parameters)
}

func (ty AliasTy) Size() int {
	return 1 + ty.Parameters.Size()
}

func (ty AliasTy) Visit(f func(v Variable)) {
	ty.Parameters.Visit(f)
}

func (ty AliasTy) Substitute(f SubstFunc) Term {
	return AliasTy{Name: ty.Name, Parameters: Substitute(ty.Parameters, f)}
}

func (AliasTy) isParameter() {}

// Static is the `'static` lifetime.
type Static struct{}

func (Static) Kind() Kind {
	return LtKind
}

func (Static) String() string {
	return "'static"
}

func (Static) Size() int {
	return 1
}

func (Static) Visit(func(v Variable)) {}

func (lt Static) Substitute(SubstFunc) Term {
	return lt
}

func (Static) isParameter() {}

func Equal(left Parameter, right Parameter) bool {
	switch left := left.(type) {
	case RigidTy:
		right, ok := right.(RigidTy)
		return ok && left.Name == right.Name && left.Parameters.Equal(right.Parameters)
	case AliasTy:
		right, ok := right.(AliasTy)
		return ok && left.Name == right.Name && left.Parameters.Equal(right.Parameters)
	default:
		// Variables and `'static` are comparable values
		return left == right
	}
}
