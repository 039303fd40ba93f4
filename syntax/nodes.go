package syntax

type File struct {
	Path  string
	Items []Item
}

type Item interface {
	GetSpan() Span
}

type Generic struct {
	Kind string
	Name string
	Span Span
}

type MaxSizeItem struct {
	Value int
	Span  Span
}

type TraitItem struct {
	Name     string
	Generics []Generic
	Where    []Wc
	Span     Span
}

type ImplItem struct {
	Generics []Generic
	Self     Ty
	Negative bool
	Trait    TraitRef
	Where    []Wc
	Span     Span
}

type StructItem struct {
	Name     string
	Generics []Generic
	Where    []Wc
	Span     Span
}

type AliasItem struct {
	Generics []Generic
	Alias    *AliasTy
	Value    Ty
	Where    []Wc
	Span     Span
}

type Quantifier struct {
	Exists   bool
	Generics []Generic
}

type ProveItem struct {
	Quantifiers []Quantifier
	Given       []Wc
	Goal        []Wc
	Span        Span
}

func (item *MaxSizeItem) GetSpan() Span { return item.Span }
func (item *TraitItem) GetSpan() Span   { return item.Span }
func (item *ImplItem) GetSpan() Span    { return item.Span }
func (item *StructItem) GetSpan() Span  { return item.Span }
func (item *AliasItem) GetSpan() Span   { return item.Span }
func (item *ProveItem) GetSpan() Span   { return item.Span }

type Ty interface {
	GetSpan() Span
}

// NamedTy is a variable, a scalar or an ADT, depending on what `Name`
// resolves to.
type NamedTy struct {
	Name       string
	Parameters []Ty
	Span       Span
}

type LifetimeTy struct {
	Name string
	Span Span
}

type RefTy struct {
	Lifetime Ty
	Mutable  bool
	Ty       Ty
	Span     Span
}

type TupleTy struct {
	Elements []Ty
	Span     Span
}

type AliasTy struct {
	Trait      string
	Item       string
	Parameters []Ty
	Span       Span
}

func (ty *NamedTy) GetSpan() Span    { return ty.Span }
func (ty *LifetimeTy) GetSpan() Span { return ty.Span }
func (ty *RefTy) GetSpan() Span      { return ty.Span }
func (ty *TupleTy) GetSpan() Span    { return ty.Span }
func (ty *AliasTy) GetSpan() Span    { return ty.Span }

type TraitRef struct {
	Name       string
	Parameters []Ty
	Span       Span
}

type Wc interface {
	GetSpan() Span
}

type ForWc struct {
	Generics []Generic
	Wc       Wc
	Span     Span
}

type IfWc struct {
	Hypotheses []Wc
	Wc         Wc
	Span       Span
}

// RelationWc is `A = B`, `A <: B` or `A: 'b`.
type RelationWc struct {
	Operator string
	Left     Ty
	Right    Ty
	Span     Span
}

type PredicateWc struct {
	Self     Ty
	Negative bool
	Trait    TraitRef
	Span     Span
}

type WfWc struct {
	Ty   Ty
	Span Span
}

type WfTraitWc struct {
	Self  Ty
	Trait TraitRef
	Span  Span
}

func (wc *ForWc) GetSpan() Span       { return wc.Span }
func (wc *IfWc) GetSpan() Span        { return wc.Span }
func (wc *RelationWc) GetSpan() Span  { return wc.Span }
func (wc *PredicateWc) GetSpan() Span { return wc.Span }
func (wc *WfWc) GetSpan() Span        { return wc.Span }
func (wc *WfTraitWc) GetSpan() Span   { return wc.Span }
