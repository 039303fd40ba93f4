package judgment

import (
	"fmt"
	"iter"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// Keyed values are deduplicated by their key.
type Keyed interface {
	Key() string
}

// FailedRule records that an inference rule produced no results, along with
// the failures of the judgments it depended on.
type FailedRule struct {
	Rule   string
	Cause  string
	Causes []FailedRule
}

func (f FailedRule) String() string {
	var b strings.Builder
	f.write(&b, "")
	return b.String()
}

func (f FailedRule) write(b *strings.Builder, indent string) {
	b.WriteString(indent)
	if f.Cause == "" {
		fmt.Fprintf(b, "rule %q failed", f.Rule)
	} else {
		fmt.Fprintf(b, "rule %q failed: %s", f.Rule, f.Cause)
	}

	for _, cause := range f.Causes {
		b.WriteString("\n")
		cause.write(b, indent+"  ")
	}
}

// Rule is one named alternative of a judgment. `Failures`, if set, explains
// why the rule produced nothing.
type Rule[T any] struct {
	Name     string
	Apply    iter.Seq[T]
	Failures func() []FailedRule
}

func NewRule[T any](name string, apply iter.Seq[T]) Rule[T] {
	return Rule[T]{Name: name, Apply: apply}
}

// FromSet is a rule whose results are those of `s`.
func FromSet[T Keyed](name string, s *ProvenSet[T]) Rule[T] {
	return Rule[T]{Name: name, Apply: s.All(), Failures: s.Failures}
}

// ProvenSet is the lazily computed set of results of a judgment. Results are
// produced on demand, remembered, and deduplicated; if no rule produces
// anything the set records which rules failed.
type ProvenSet[T Keyed] struct {
	label  string
	source func(s *ProvenSet[T], yield func(T) bool) bool
	items  []T
	seen   *set.Set[string]
	failed []FailedRule
	done   bool
}

func newProvenSet[T Keyed](label string, source func(s *ProvenSet[T], yield func(T) bool) bool) *ProvenSet[T] {
	return &ProvenSet[T]{
		label:  label,
		source: source,
		seen:   set.New[string](0),
	}
}

func Singleton[T Keyed](item T) *ProvenSet[T] {
	s := newProvenSet[T]("singleton", nil)
	s.items = []T{item}
	s.seen.Insert(item.Key())
	s.done = true
	return s
}

func Failed[T Keyed](label string, cause string) *ProvenSet[T] {
	s := newProvenSet[T](label, nil)
	s.failed = []FailedRule{{Rule: label, Cause: cause}}
	s.done = true
	return s
}

func FromSeq[T Keyed](label string, seq iter.Seq[T]) *ProvenSet[T] {
	return newProvenSet(label, func(s *ProvenSet[T], yield func(T) bool) bool {
		for item := range seq {
			if !yield(item) {
				return false
			}
		}

		return true
	})
}

// Rules tries every rule in order; all of their results belong to the set.
func Rules[T Keyed](label string, rules ...Rule[T]) *ProvenSet[T] {
	return newProvenSet(label, func(s *ProvenSet[T], yield func(T) bool) bool {
		var failed []FailedRule
		for _, rule := range rules {
			produced := false
			for item := range rule.Apply {
				produced = true
				if !yield(item) {
					return false
				}
			}

			if !produced {
				failure := FailedRule{Rule: rule.Name}
				if rule.Failures != nil {
					failure.Causes = rule.Failures()
				}

				failed = append(failed, failure)
			}
		}

		s.failed = failed
		return true
	})
}

// Map transforms every result under a new label; failures of `s` carry over.
func Map[T Keyed, U Keyed](label string, s *ProvenSet[T], f func(T) U) *ProvenSet[U] {
	return newProvenSet(label, func(mapped *ProvenSet[U], yield func(U) bool) bool {
		for item := range s.All() {
			if !yield(f(item)) {
				return false
			}
		}

		mapped.failed = s.Failures()
		return true
	})
}

// All yields every distinct result, computing more of them only as needed.
// The source is not suspended between iterations: one that stops early leaves
// the results found so far, and the next iteration past them starts the
// source over.
func (s *ProvenSet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		next := 0

		// A nested iteration of the same set can append results while this
		// one is running, so every result is read back from `s.items`
		catchUp := func() bool {
			for ; next < len(s.items); next++ {
				if !yield(s.items[next]) {
					return false
				}
			}

			return true
		}

		if !catchUp() || s.done {
			return
		}

		completed := s.source(s, func(item T) bool {
			if s.seen.Insert(item.Key()) {
				s.items = append(s.items, item)
			}

			return catchUp()
		})

		if !completed {
			return
		}

		s.done = true
		s.source = nil
		catchUp()
	}
}

func (s *ProvenSet[T]) Items() []T {
	for range s.All() {
	}

	return s.items
}

func (s *ProvenSet[T]) IsEmpty() bool {
	for range s.All() {
		return false
	}

	return true
}

func (s *ProvenSet[T]) Len() int {
	return len(s.Items())
}

func (s *ProvenSet[T]) Any(f func(T) bool) bool {
	for item := range s.All() {
		if f(item) {
			return true
		}
	}

	return false
}

func (s *ProvenSet[T]) Label() string {
	return s.label
}

// Failures is only meaningful for an empty set; it forces evaluation.
func (s *ProvenSet[T]) Failures() []FailedRule {
	s.Items()
	return s.failed
}

func (s *ProvenSet[T]) String() string {
	items := s.Items()
	if len(items) == 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "failed: %s", s.label)
		for _, f := range s.failed {
			b.WriteString("\n")
			f.write(&b, "  ")
		}

		return b.String()
	}

	var b strings.Builder
	b.WriteString("{")
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}

		fmt.Fprintf(&b, "%v", item)
	}
	b.WriteString("}")

	return b.String()
}
