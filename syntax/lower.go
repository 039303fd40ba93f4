package syntax

import (
	"fmt"

	"formality/decls"
	"formality/terms"
)

type Program struct {
	Path    string
	MaxSize *int
	Decls   []decls.Decl
	Queries []*Query
}

// Query is a `prove` item. `Binder` binds every quantified variable in order
// (`Exists[i]` says whether `Binder.Vars[i]` is existential) over the
// assumptions and the goal.
type Query struct {
	Names  []string
	Exists []bool
	Binder terms.Binder[terms.Pair[terms.Wcs, terms.Wcs]]
	Span   Span
}

func (query *Query) String() string {
	return query.Span.Source
}

type scope struct {
	parent *scope
	vars   map[string]terms.Parameter
}

func (s *scope) lookup(name string) (terms.Parameter, bool) {
	for current := s; current != nil; current = current.parent {
		if p, ok := current.vars[name]; ok {
			return p, true
		}
	}

	return nil, false
}

func genericKey(generic Generic) string {
	if generic.Kind == "lt" {
		return "'" + generic.Name
	}

	return generic.Name
}

type lowerer struct {
	err *Error
}

func (l *lowerer) fail(span Span, format string, args ...any) {
	if l.err == nil {
		l.err = &Error{Message: fmt.Sprintf(format, args...), Span: span}
	}
}

func (l *lowerer) kinds(generics []Generic) []terms.Kind {
	seen := make(map[string]struct{}, len(generics))

	kinds := make([]terms.Kind, 0, len(generics))
	for _, generic := range generics {
		if _, ok := seen[genericKey(generic)]; ok {
			l.fail(generic.Span, "`%s` is declared more than once", generic.Name)
		}
		seen[genericKey(generic)] = struct{}{}

		if generic.Kind == "lt" {
			kinds = append(kinds, terms.LtKind)
		} else {
			kinds = append(kinds, terms.TyKind)
		}
	}

	return kinds
}

func (s *scope) with(generics []Generic, vars []terms.Parameter) *scope {
	inner := &scope{parent: s, vars: make(map[string]terms.Parameter, len(generics))}
	for i, generic := range generics {
		inner.vars[genericKey(generic)] = vars[i]
	}

	return inner
}

// Lower resolves names in `file`, producing declarations and queries.
func Lower(file *File) (*Program, *Error) {
	l := &lowerer{}
	program := &Program{Path: file.Path}

	for _, item := range file.Items {
		switch item := item.(type) {
		case *MaxSizeItem:
			value := item.Value
			program.MaxSize = &value
		case *TraitItem:
			program.Decls = append(program.Decls, l.lowerTrait(item))
		case *ImplItem:
			program.Decls = append(program.Decls, l.lowerImpl(item))
		case *StructItem:
			program.Decls = append(program.Decls, l.lowerStruct(item))
		case *AliasItem:
			program.Decls = append(program.Decls, l.lowerAlias(item))
		case *ProveItem:
			program.Queries = append(program.Queries, l.lowerQuery(item))
		default:
			panic(fmt.Sprintf("unknown item: %T", item))
		}

		if l.err != nil {
			return nil, l.err
		}
	}

	return program, nil
}

func (l *lowerer) lowerTrait(item *TraitItem) decls.Decl {
	kinds := append([]terms.Kind{terms.TyKind}, l.kinds(item.Generics)...)

	return &decls.TraitDecl{
		Id: item.Name,
		Binder: terms.Bind(kinds, func(vars []terms.Parameter) decls.TraitBoundData {
			s := (&scope{vars: map[string]terms.Parameter{"Self": vars[0]}}).with(item.Generics, vars[1:])
			return decls.TraitBoundData{WhereClause: l.lowerWcs(s, item.Where)}
		}),
	}
}

func (l *lowerer) lowerImpl(item *ImplItem) decls.Decl {
	binder := terms.Bind(l.kinds(item.Generics), func(vars []terms.Parameter) decls.ImplBoundData {
		s := (*scope)(nil).with(item.Generics, vars)
		self := l.lowerTyOfKind(s, item.Self, terms.TyKind)

		return decls.ImplBoundData{
			TraitRef:    l.lowerTraitRef(s, self, item.Trait),
			WhereClause: l.lowerWcs(s, item.Where),
		}
	})

	if item.Negative {
		return &decls.NegImplDecl{Binder: binder}
	}

	return &decls.ImplDecl{Binder: binder}
}

func (l *lowerer) lowerStruct(item *StructItem) decls.Decl {
	return &decls.AdtDecl{
		Id: item.Name,
		Binder: terms.Bind(l.kinds(item.Generics), func(vars []terms.Parameter) decls.AdtBoundData {
			s := (*scope)(nil).with(item.Generics, vars)
			return decls.AdtBoundData{WhereClause: l.lowerWcs(s, item.Where)}
		}),
	}
}

func (l *lowerer) lowerAlias(item *AliasItem) decls.Decl {
	return &decls.AliasEqDecl{
		Binder: terms.Bind(l.kinds(item.Generics), func(vars []terms.Parameter) decls.AliasEqBoundData {
			s := (*scope)(nil).with(item.Generics, vars)

			return decls.AliasEqBoundData{
				Alias:       l.lowerAliasTy(s, item.Alias),
				Ty:          l.lowerTyOfKind(s, item.Value, terms.TyKind),
				WhereClause: l.lowerWcs(s, item.Where),
			}
		}),
	}
}

func (l *lowerer) lowerQuery(item *ProveItem) *Query {
	var generics []Generic
	var names []string
	var exists []bool
	for _, quantifier := range item.Quantifiers {
		for _, generic := range quantifier.Generics {
			generics = append(generics, generic)
			names = append(names, genericKey(generic))
			exists = append(exists, quantifier.Exists)
		}
	}

	return &Query{
		Names:  names,
		Exists: exists,
		Binder: terms.Bind(l.kinds(generics), func(vars []terms.Parameter) terms.Pair[terms.Wcs, terms.Wcs] {
			s := (*scope)(nil).with(generics, vars)

			return terms.Pair[terms.Wcs, terms.Wcs]{
				First:  l.lowerWcs(s, item.Given),
				Second: l.lowerWcs(s, item.Goal),
			}
		}),
		Span: item.Span,
	}
}

func (l *lowerer) lowerWcs(s *scope, wcs []Wc) terms.Wcs {
	lowered := make(terms.Wcs, 0, len(wcs))
	for _, wc := range wcs {
		lowered = append(lowered, l.lowerWc(s, wc))
	}

	return lowered
}

func (l *lowerer) lowerWc(s *scope, wc Wc) terms.Wc {
	switch wc := wc.(type) {
	case *ForWc:
		return terms.ForAll{
			Binder: terms.Bind(l.kinds(wc.Generics), func(vars []terms.Parameter) terms.Wc {
				return l.lowerWc(s.with(wc.Generics, vars), wc.Wc)
			}),
		}
	case *IfWc:
		return terms.Implies{
			Hypotheses: l.lowerWcs(s, wc.Hypotheses),
			Goal:       l.lowerWc(s, wc.Wc),
		}
	case *RelationWc:
		left := l.lowerTy(s, wc.Left)

		switch wc.Operator {
		case "=":
			return terms.Eq(left, l.lowerTyOfKind(s, wc.Right, left.Kind()))
		case "<:":
			return terms.Sub(left, l.lowerTyOfKind(s, wc.Right, left.Kind()))
		case ":":
			return terms.Outlives(left, l.lowerTyOfKind(s, wc.Right, terms.LtKind))
		default:
			panic(fmt.Sprintf("unknown relation: %s", wc.Operator))
		}
	case *PredicateWc:
		traitRef := l.lowerTraitRef(s, l.lowerTyOfKind(s, wc.Self, terms.TyKind), wc.Trait)
		if wc.Negative {
			return traitRef.NotImplemented()
		}

		return traitRef.IsImplemented()
	case *WfWc:
		return terms.WellFormed(l.lowerTy(s, wc.Ty))
	case *WfTraitWc:
		return l.lowerTraitRef(s, l.lowerTyOfKind(s, wc.Self, terms.TyKind), wc.Trait).WellFormed()
	default:
		panic(fmt.Sprintf("unknown where-clause: %T", wc))
	}
}

func (l *lowerer) lowerTraitRef(s *scope, self terms.Parameter, traitRef TraitRef) terms.TraitRef {
	parameters := []terms.Parameter{self}
	for _, parameter := range traitRef.Parameters {
		parameters = append(parameters, l.lowerTy(s, parameter))
	}

	return terms.NewTraitRef(traitRef.Name, parameters...)
}

func (l *lowerer) lowerTyOfKind(s *scope, ty Ty, kind terms.Kind) terms.Parameter {
	p := l.lowerTy(s, ty)
	if p.Kind() != kind {
		l.fail(ty.GetSpan(), "Expected a %v here, but found `%s`", kindName(kind), ty.GetSpan().Source)
	}

	return p
}

func kindName(kind terms.Kind) string {
	if kind == terms.LtKind {
		return "lifetime"
	}

	return "type"
}

func (l *lowerer) lowerAliasTy(s *scope, ty *AliasTy) terms.AliasTy {
	parameters := make([]terms.Parameter, 0, len(ty.Parameters))
	for _, parameter := range ty.Parameters {
		parameters = append(parameters, l.lowerTy(s, parameter))
	}

	if len(parameters) == 0 {
		l.fail(ty.Span, "`%s::%s` needs a `Self` type", ty.Trait, ty.Item)
	}

	return terms.Alias(ty.Trait, ty.Item, parameters...)
}

func (l *lowerer) lowerTy(s *scope, ty Ty) terms.Parameter {
	switch ty := ty.(type) {
	case *LifetimeTy:
		if ty.Name == "static" {
			return terms.Static{}
		}

		if p, ok := s.lookup("'" + ty.Name); ok {
			return p
		}

		l.fail(ty.Span, "Can't find lifetime `'%s`", ty.Name)
		return terms.Static{}
	case *RefTy:
		lt := l.lowerTyOfKind(s, ty.Lifetime, terms.LtKind)
		referent := l.lowerTyOfKind(s, ty.Ty, terms.TyKind)

		if ty.Mutable {
			return terms.RefMut(lt, referent)
		}

		return terms.Ref(lt, referent)
	case *TupleTy:
		elements := make([]terms.Parameter, 0, len(ty.Elements))
		for _, element := range ty.Elements {
			elements = append(elements, l.lowerTyOfKind(s, element, terms.TyKind))
		}

		return terms.Tuple(elements...)
	case *AliasTy:
		return l.lowerAliasTy(s, ty)
	case *NamedTy:
		if p, ok := s.lookup(ty.Name); ok {
			if len(ty.Parameters) > 0 {
				l.fail(ty.Span, "`%s` is a variable and doesn't take parameters", ty.Name)
			}

			return p
		}

		if ty.Name == "Self" {
			l.fail(ty.Span, "`Self` is only available in trait declarations")
			return terms.Tuple()
		}

		if terms.IsScalarName(ty.Name) {
			if len(ty.Parameters) > 0 {
				l.fail(ty.Span, "`%s` doesn't take parameters", ty.Name)
			}

			return terms.Scalar(ty.Name)
		}

		parameters := make([]terms.Parameter, 0, len(ty.Parameters))
		for _, parameter := range ty.Parameters {
			parameters = append(parameters, l.lowerTy(s, parameter))
		}

		return terms.Adt(ty.Name, parameters...)
	default:
		panic(fmt.Sprintf("unknown type: %T", ty))
	}
}
