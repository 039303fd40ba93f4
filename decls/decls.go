package decls

import (
	"fmt"
	"io"
	"iter"

	"formality/terms"
)

const DefaultMaxSize = 222

type Decl interface {
	fmt.Stringer
	isDecl()
}

// Decls is a read-only view of the program's declarations. Layers see the
// declarations of their parents, so a library can be shared between
// programs.
type Decls struct {
	parent  *Decls
	decls   []Decl
	MaxSize int
}

func New(parent *Decls) *Decls {
	maxSize := DefaultMaxSize
	if parent != nil {
		maxSize = parent.MaxSize
	}

	return &Decls{
		parent:  parent,
		MaxSize: maxSize,
	}
}

func (d *Decls) Register(decl Decl) {
	d.decls = append(d.decls, decl)
}

// each walks the declarations of type `T`, parents first.
func each[T Decl](d *Decls) iter.Seq[T] {
	return func(yield func(T) bool) {
		var layers []*Decls
		for current := d; current != nil; current = current.parent {
			layers = append(layers, current)
		}

		for i := len(layers) - 1; i >= 0; i-- {
			for _, decl := range layers[i].decls {
				if decl, ok := decl.(T); ok {
					if !yield(decl) {
						return
					}
				}
			}
		}
	}
}

// local walks the declarations of type `T` in this layer only; everything
// declared by a parent is remote.
func local[T Decl](d *Decls) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, decl := range d.decls {
			if decl, ok := decl.(T); ok {
				if !yield(decl) {
					return
				}
			}
		}
	}
}

func find[T Decl](d *Decls, f func(decl T) bool) (T, bool) {
	for decl := range each[T](d) {
		if f(decl) {
			return decl, true
		}
	}

	var zero T
	return zero, false
}

func filter[T Decl](d *Decls, f func(decl T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for decl := range each[T](d) {
			if f(decl) && !yield(decl) {
				return
			}
		}
	}
}

func (d *Decls) TraitDecl(id string) (*TraitDecl, bool) {
	return find(d, func(decl *TraitDecl) bool {
		return decl.Id == id
	})
}

func (d *Decls) TraitDecls() iter.Seq[*TraitDecl] {
	return each[*TraitDecl](d)
}

func (d *Decls) ImplDecls(traitId string) iter.Seq[*ImplDecl] {
	return filter(d, func(decl *ImplDecl) bool {
		return decl.Binder.Term.TraitRef.TraitId == traitId
	})
}

func (d *Decls) NegImplDecls(traitId string) iter.Seq[*NegImplDecl] {
	return filter(d, func(decl *NegImplDecl) bool {
		return decl.Binder.Term.TraitRef.TraitId == traitId
	})
}

func (d *Decls) AdtDecl(id string) (*AdtDecl, bool) {
	return find(d, func(decl *AdtDecl) bool {
		return decl.Id == id
	})
}

func (d *Decls) IsLocalTrait(id string) bool {
	for decl := range local[*TraitDecl](d) {
		if decl.Id == id {
			return true
		}
	}

	return false
}

func (d *Decls) IsLocalAdt(id string) bool {
	for decl := range local[*AdtDecl](d) {
		if decl.Id == id {
			return true
		}
	}

	return false
}

// LocalImplDecls are the impls (positive or negative) declared in this layer.
func (d *Decls) LocalImplDecls() iter.Seq[Decl] {
	return func(yield func(Decl) bool) {
		for _, decl := range d.decls {
			switch decl.(type) {
			case *ImplDecl, *NegImplDecl:
				if !yield(decl) {
					return
				}
			}
		}
	}
}

func (d *Decls) AliasEqDecls(name terms.AliasName) iter.Seq[*AliasEqDecl] {
	return filter(d, func(decl *AliasEqDecl) bool {
		return decl.Binder.Term.Alias.Name == name
	})
}

func (d *Decls) String() string {
	count := 0
	for range each[Decl](d) {
		count++
	}

	return fmt.Sprintf("Decls(%d declarations, max_size: %d)", count, d.MaxSize)
}

func (d *Decls) Write(w io.Writer) {
	for decl := range each[Decl](d) {
		_, err := fmt.Fprintf(w, "%v;\n", decl)
		if err != nil {
			panic(err)
		}
	}
}
