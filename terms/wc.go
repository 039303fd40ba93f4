package terms

import (
	"fmt"
	"strings"
)

// Wc is a where-clause: a single proposition the prover can be asked about.
type Wc interface {
	Term
	isWc()
}

type Wcs []Wc

func (wcs Wcs) String() string {
	var s strings.Builder
	s.WriteString("{")
	for i, wc := range wcs {
		if i > 0 {
			s.WriteString(", ")
		}

		s.WriteString(wc.String())
	}
	s.WriteString("}")

	return s.String()
}

func (wcs Wcs) Size() int {
	size := 0
	for _, wc := range wcs {
		size += wc.Size()
	}

	return size
}

func (wcs Wcs) Visit(f func(v Variable)) {
	for _, wc := range wcs {
		wc.Visit(f)
	}
}

func (wcs Wcs) Substitute(f SubstFunc) Term {
	substituted := make(Wcs, len(wcs))
	for i, wc := range wcs {
		substituted[i] = Substitute(wc, f)
	}

	return substituted
}

func (wcs Wcs) Contains(wc Wc) bool {
	for _, existing := range wcs {
		if existing.String() == wc.String() {
			return true
		}
	}

	return false
}

// AllEq pairs up two parameter lists as equality goals.
func AllEq(left Parameters, right Parameters) Wcs {
	if len(left) != len(right) {
		panic(fmt.Sprintf("cannot equate %v and %v: different lengths", left, right))
	}

	wcs := make(Wcs, len(left))
	for i := range left {
		wcs[i] = Eq(left[i], right[i])
	}

	return wcs
}

func AllWellFormed(parameters Parameters) Wcs {
	wcs := make(Wcs, len(parameters))
	for i, p := range parameters {
		wcs[i] = WellFormed(p)
	}

	return wcs
}

type RelationKind int

const (
	EqualsRel RelationKind = iota
	SubRel
	OutlivesRel
	WellFormedRel
)

type Relation struct {
	Skeleton   RelationKind
	Parameters Parameters
}

func Eq(left Parameter, right Parameter) Relation {
	return Relation{Skeleton: EqualsRel, Parameters: Parameters{left, right}}
}

func Sub(left Parameter, right Parameter) Relation {
	return Relation{Skeleton: SubRel, Parameters: Parameters{left, right}}
}

func Outlives(left Parameter, right Parameter) Relation {
	return Relation{Skeleton: OutlivesRel, Parameters: Parameters{left, right}}
}

func WellFormed(p Parameter) Relation {
	return Relation{Skeleton: WellFormedRel, Parameters: Parameters{p}}
}

func (r Relation) String() string {
	switch r.Skeleton {
	case EqualsRel:
		return fmt.Sprintf("%v = %v", r.Parameters[0], r.Parameters[1])
	case SubRel:
		return fmt.Sprintf("%v <: %v", r.Parameters[0], r.Parameters[1])
	case OutlivesRel:
		return fmt.Sprintf("%v: %v", r.Parameters[0], r.Parameters[1])
	case WellFormedRel:
		return fmt.Sprintf("wf(%v)", r.Parameters[0])
	default:
		panic(fmt.Sprintf("invalid relation: %d", int(r.Skeleton)))
	}
}

func (r Relation) Size() int {
	return 1 + r.Parameters.Size()
}

func (r Relation) Visit(f func(v Variable)) {
	r.Parameters.Visit(f)
}

func (r Relation) Substitute(f SubstFunc) Term {
	return Relation{Skeleton: r.Skeleton, Parameters: Substitute(r.Parameters, f)}
}

func (Relation) isWc() {}

type PredicateKind int

const (
	IsImplementedPred PredicateKind = iota
	NotImplementedPred
	WellFormedTraitRefPred
	// The trait ref may be implemented in the innermost layer without
	// breaking the orphan rules
	IsLocalPred
)

type PredicateSkeleton struct {
	Kind    PredicateKind
	TraitId string
}

// Predicate is a statement about a trait reference; `Parameters[0]` is the
// self type.
type Predicate struct {
	Skeleton   PredicateSkeleton
	Parameters Parameters
}

func (p Predicate) TraitRef() TraitRef {
	return TraitRef{TraitId: p.Skeleton.TraitId, Parameters: p.Parameters}
}

func (p Predicate) String() string {
	switch p.Skeleton.Kind {
	case IsImplementedPred:
		return p.TraitRef().String()
	case NotImplementedPred:
		return p.TraitRef().display("!")
	case WellFormedTraitRefPred:
		return fmt.Sprintf("wf(%v)", p.TraitRef())
	case IsLocalPred:
		return fmt.Sprintf("local(%v)", p.TraitRef())
	default:
		panic(fmt.Sprintf("invalid predicate: %d", int(p.Skeleton.Kind)))
	}
}

func (p Predicate) Size() int {
	return 1 + p.Parameters.Size()
}

func (p Predicate) Visit(f func(v Variable)) {
	p.Parameters.Visit(f)
}

func (p Predicate) Substitute(f SubstFunc) Term {
	return Predicate{Skeleton: p.Skeleton, Parameters: Substitute(p.Parameters, f)}
}

func (Predicate) isWc() {}

type TraitRef struct {
	TraitId    string
	Parameters Parameters
}

func NewTraitRef(traitId string, parameters ...Parameter) TraitRef {
	return TraitRef{TraitId: traitId, Parameters: parameters}
}

func (t TraitRef) predicate(kind PredicateKind) Predicate {
	return Predicate{
		Skeleton:   PredicateSkeleton{Kind: kind, TraitId: t.TraitId},
		Parameters: t.Parameters,
	}
}

func (t TraitRef) IsImplemented() Predicate {
	return t.predicate(IsImplementedPred)
}

func (t TraitRef) NotImplemented() Predicate {
	return t.predicate(NotImplementedPred)
}

func (t TraitRef) WellFormed() Predicate {
	return t.predicate(WellFormedTraitRefPred)
}

func (t TraitRef) IsLocal() Predicate {
	return t.predicate(IsLocalPred)
}

func (t TraitRef) String() string {
	return t.display("")
}

func (t TraitRef) display(polarity string) string {
	s := fmt.Sprintf("%v: %s%s", t.Parameters[0], polarity, t.TraitId)
	if len(t.Parameters) > 1 {
		s += fmt.Sprintf("[%v]", t.Parameters[1:])
	}

	return s
}

func (t TraitRef) Size() int {
	return 1 + t.Parameters.Size()
}

func (t TraitRef) Visit(f func(v Variable)) {
	t.Parameters.Visit(f)
}

func (t TraitRef) Substitute(f SubstFunc) Term {
	return TraitRef{TraitId: t.TraitId, Parameters: Substitute(t.Parameters, f)}
}

// ForAll holds for every instantiation of its binder.
type ForAll struct {
	Binder Binder[Wc]
}

func (wc ForAll) String() string {
	return fmt.Sprintf("for%v", wc.Binder)
}

func (wc ForAll) Size() int {
	return 1 + wc.Binder.Size()
}

func (wc ForAll) Visit(f func(v Variable)) {
	wc.Binder.Visit(f)
}

func (wc ForAll) Substitute(f SubstFunc) Term {
	return ForAll{Binder: Substitute(wc.Binder, f)}
}

func (ForAll) isWc() {}

// Implies holds if `Goal` holds whenever all of `Hypotheses` do.
type Implies struct {
	Hypotheses Wcs
	Goal       Wc
}

func (wc Implies) String() string {
	return fmt.Sprintf("if %v %v", wc.Hypotheses, wc.Goal)
}

func (wc Implies) Size() int {
	return 1 + wc.Hypotheses.Size() + wc.Goal.Size()
}

func (wc Implies) Visit(f func(v Variable)) {
	wc.Hypotheses.Visit(f)
	wc.Goal.Visit(f)
}

func (wc Implies) Substitute(f SubstFunc) Term {
	return Implies{
		Hypotheses: Substitute(wc.Hypotheses, f),
		Goal:       Substitute(wc.Goal, f),
	}
}

func (Implies) isWc() {}
