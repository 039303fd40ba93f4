package decls

import (
	"fmt"

	"formality/terms"
)

// TraitDecl's binder starts with `Self`, followed by the trait's own
// parameters.
type TraitDecl struct {
	Id     string
	Binder terms.Binder[TraitBoundData]
}

type TraitBoundData struct {
	WhereClause terms.Wcs
}

func (decl *TraitDecl) String() string {
	return fmt.Sprintf("trait %s%v", decl.Id, decl.Binder)
}

func (*TraitDecl) isDecl() {}

func (data TraitBoundData) String() string {
	return fmt.Sprintf("where %v", data.WhereClause)
}

func (data TraitBoundData) Size() int {
	return data.WhereClause.Size()
}

func (data TraitBoundData) Visit(f func(v terms.Variable)) {
	data.WhereClause.Visit(f)
}

func (data TraitBoundData) Substitute(f terms.SubstFunc) terms.Term {
	return TraitBoundData{WhereClause: terms.Substitute(data.WhereClause, f)}
}

type ImplDecl struct {
	Binder terms.Binder[ImplBoundData]
}

type ImplBoundData struct {
	TraitRef    terms.TraitRef
	WhereClause terms.Wcs
}

func (decl *ImplDecl) String() string {
	return fmt.Sprintf("impl%v", decl.Binder)
}

func (*ImplDecl) isDecl() {}

func (data ImplBoundData) String() string {
	return fmt.Sprintf("%v where %v", data.TraitRef, data.WhereClause)
}

func (data ImplBoundData) Size() int {
	return data.TraitRef.Size() + data.WhereClause.Size()
}

func (data ImplBoundData) Visit(f func(v terms.Variable)) {
	data.TraitRef.Visit(f)
	data.WhereClause.Visit(f)
}

func (data ImplBoundData) Substitute(f terms.SubstFunc) terms.Term {
	return ImplBoundData{
		TraitRef:    terms.Substitute(data.TraitRef, f),
		WhereClause: terms.Substitute(data.WhereClause, f),
	}
}

// NegImplDecl asserts that a trait is *not* implemented (`impl u8: !Foo`).
type NegImplDecl struct {
	Binder terms.Binder[ImplBoundData]
}

func (decl *NegImplDecl) String() string {
	return fmt.Sprintf("impl! %v", decl.Binder)
}

func (*NegImplDecl) isDecl() {}

type AdtDecl struct {
	Id     string
	Binder terms.Binder[AdtBoundData]
}

type AdtBoundData struct {
	WhereClause terms.Wcs
}

func (decl *AdtDecl) String() string {
	return fmt.Sprintf("struct %s%v", decl.Id, decl.Binder)
}

func (*AdtDecl) isDecl() {}

func (data AdtBoundData) String() string {
	return fmt.Sprintf("where %v", data.WhereClause)
}

func (data AdtBoundData) Size() int {
	return data.WhereClause.Size()
}

func (data AdtBoundData) Visit(f func(v terms.Variable)) {
	data.WhereClause.Visit(f)
}

func (data AdtBoundData) Substitute(f terms.SubstFunc) terms.Term {
	return AdtBoundData{WhereClause: terms.Substitute(data.WhereClause, f)}
}

// AliasEqDecl says that an alias normalizes to `Ty` when `WhereClause`
// holds.
type AliasEqDecl struct {
	Binder terms.Binder[AliasEqBoundData]
}

type AliasEqBoundData struct {
	Alias       terms.AliasTy
	Ty          terms.Parameter
	WhereClause terms.Wcs
}

func (decl *AliasEqDecl) String() string {
	return fmt.Sprintf("alias%v", decl.Binder)
}

func (*AliasEqDecl) isDecl() {}

func (data AliasEqBoundData) String() string {
	return fmt.Sprintf("%v = %v where %v", data.Alias, data.Ty, data.WhereClause)
}

func (data AliasEqBoundData) Size() int {
	return data.Alias.Size() + data.Ty.Size() + data.WhereClause.Size()
}

func (data AliasEqBoundData) Visit(f func(v terms.Variable)) {
	data.Alias.Visit(f)
	data.Ty.Visit(f)
	data.WhereClause.Visit(f)
}

func (data AliasEqBoundData) Substitute(f terms.SubstFunc) terms.Term {
	return AliasEqBoundData{
		Alias:       terms.Substitute(data.Alias, f),
		Ty:          terms.Substitute(data.Ty, f),
		WhereClause: terms.Substitute(data.WhereClause, f),
	}
}
