package coherence

import (
	"fmt"

	"formality/decls"
	"formality/prove"
	"formality/terms"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("formality.coherence")

// Overlap is a pair of impls that may apply to the same types.
type Overlap struct {
	TraitId  string
	Left     decls.Decl
	Right    decls.Decl
	Negative bool
}

func (overlap Overlap) String() string {
	if overlap.Negative {
		return fmt.Sprintf("impl `%v` overlaps with negative impl `%v`", overlap.Left, overlap.Right)
	}

	return fmt.Sprintf("impls `%v` and `%v` overlap", overlap.Left, overlap.Right)
}

// CheckOverlap reports every pair of impls of the same trait (and every impl
// paired with a negative impl of its trait) that cannot be shown disjoint.
func CheckOverlap(d *decls.Decls) []Overlap {
	var overlapping []Overlap
	for trait := range d.TraitDecls() {
		var impls []*decls.ImplDecl
		for impl := range d.ImplDecls(trait.Id) {
			impls = append(impls, impl)
		}

		for i, left := range impls {
			for _, right := range impls[i+1:] {
				if mayOverlap(d, left.Binder, right.Binder) {
					overlapping = append(overlapping, Overlap{TraitId: trait.Id, Left: left, Right: right})
				}
			}

			for negImpl := range d.NegImplDecls(trait.Id) {
				if mayOverlap(d, left.Binder, negImpl.Binder) {
					overlapping = append(overlapping, Overlap{TraitId: trait.Id, Left: left, Right: negImpl, Negative: true})
				}
			}
		}
	}

	return overlapping
}

// mayOverlap instantiates both impls with existentials and tries to show
// that no types satisfy both headers and both where-clauses.
func mayOverlap(d *decls.Decls, left terms.Binder[decls.ImplBoundData], right terms.Binder[decls.ImplBoundData]) bool {
	env := prove.NewEnv(prove.Soundness)

	env, leftVars := env.ExistentialSubstitution(left.Kinds())
	env, rightVars := env.ExistentialSubstitution(right.Kinds())

	l := left.Instantiate(leftVars)
	r := right.Instantiate(rightVars)

	if len(l.TraitRef.Parameters) != len(r.TraitRef.Parameters) {
		return false
	}

	var goal terms.Wcs
	goal = append(goal, terms.AllEq(l.TraitRef.Parameters, r.TraitRef.Parameters)...)
	goal = append(goal, l.WhereClause...)
	goal = append(goal, r.WhereClause...)

	disjoint := !prove.IsDefinitelyNotProveable(d, env, nil, goal).IsEmpty()
	log.Debugf("%v and %v disjoint: %v", l.TraitRef, r.TraitRef, disjoint)

	return !disjoint
}
