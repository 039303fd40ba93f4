package judgment_test

import (
	"slices"
	"testing"

	"formality/judgment"
)

type item string

func (i item) Key() string {
	return string(i)
}

func produce(count *int, items ...item) func(yield func(item) bool) {
	return func(yield func(item) bool) {
		for _, i := range items {
			*count++
			if !yield(i) {
				return
			}
		}
	}
}

func TestRulesDeduplicate(t *testing.T) {
	var count int
	s := judgment.Rules("test",
		judgment.NewRule("first", produce(&count, "a", "b")),
		judgment.NewRule("second", produce(&count, "b", "c")),
	)

	if got := s.Items(); !slices.Equal(got, []item{"a", "b", "c"}) {
		t.Fatalf("expected [a b c], got %v", got)
	}

	if len(s.Failures()) != 0 {
		t.Fatalf("expected no failures, got %v", s.Failures())
	}
}

func TestRulesAreLazy(t *testing.T) {
	var count int
	s := judgment.Rules("test",
		judgment.NewRule("first", produce(&count, "a")),
		judgment.NewRule("second", produce(&count, "b")),
	)

	if s.IsEmpty() {
		t.Fatalf("expected a result")
	}

	if count != 1 {
		t.Fatalf("expected only the first result to be computed, computed %d", count)
	}

	if s.Len() != 2 {
		t.Fatalf("expected two results, got %v", s)
	}

	// Everything is remembered once computed
	before := count
	s.Items()
	if count != before {
		t.Fatalf("expected no recomputation")
	}
}

func TestFailedRules(t *testing.T) {
	var count int
	s := judgment.Rules("goal",
		judgment.NewRule("first", produce(&count)),
		judgment.NewRule("second", produce(&count)),
	)

	if !s.IsEmpty() {
		t.Fatalf("expected no results, got %v", s)
	}

	failures := s.Failures()
	if len(failures) != 2 || failures[0].Rule != "first" || failures[1].Rule != "second" {
		t.Fatalf("expected both rules to fail, got %v", failures)
	}

	mapped := judgment.Map("mapped", s, func(i item) item { return i + "!" })
	if !mapped.IsEmpty() || len(mapped.Failures()) != 2 || mapped.Label() != "mapped" {
		t.Fatalf("expected failures to carry over, got %v", mapped)
	}
}

func TestMap(t *testing.T) {
	var count int
	s := judgment.FromSeq("test", produce(&count, "a", "b"))

	mapped := judgment.Map(s.Label(), s, func(i item) item { return "x" })
	if got := mapped.Items(); !slices.Equal(got, []item{"x"}) {
		t.Fatalf("expected mapped results to be deduplicated, got %v", got)
	}
}

func TestSingletonAndFailed(t *testing.T) {
	if got := judgment.Singleton(item("a")).Items(); !slices.Equal(got, []item{"a"}) {
		t.Fatalf("expected [a], got %v", got)
	}

	failed := judgment.Failed[item]("goal", "cycle")
	if !failed.IsEmpty() {
		t.Fatalf("expected no results")
	}

	if got := failed.String(); got != "failed: goal\n  rule \"goal\" failed: cycle" {
		t.Fatalf("unexpected display: %q", got)
	}
}

func TestNestedIteration(t *testing.T) {
	var count int
	s := judgment.FromSeq("test", produce(&count, "a", "b", "c"))

	var outer []item
	for i := range s.All() {
		outer = append(outer, i)

		if s.Len() != 3 {
			t.Fatalf("expected three results, got %v", s)
		}
	}

	if !slices.Equal(outer, []item{"a", "b", "c"}) {
		t.Fatalf("expected [a b c], got %v", outer)
	}
}

func TestNestedIterationKeepsFailures(t *testing.T) {
	var count int
	s := judgment.Rules("test",
		judgment.NewRule("first", produce(&count, "a")),
		judgment.NewRule("second", produce(&count)),
		judgment.NewRule("third", produce(&count)),
	)

	for range s.All() {
		s.Items()
	}

	if got := len(s.Failures()); got != 2 {
		t.Fatalf("expected two failed rules, got %v", s.Failures())
	}
}

func TestResumeAfterEarlyExit(t *testing.T) {
	var count int
	s := judgment.FromSeq("test", produce(&count, "a", "b"))

	if s.IsEmpty() {
		t.Fatalf("expected a result")
	}

	if got := s.Items(); !slices.Equal(got, []item{"a", "b"}) {
		t.Fatalf("expected [a b], got %v", got)
	}

	// Finished sets are never evaluated again
	count = 0
	s.Items()
	if count != 0 {
		t.Fatalf("expected no more evaluation, computed %d", count)
	}
}

func TestFailureCauses(t *testing.T) {
	var count int
	inner := judgment.Rules("inner",
		judgment.NewRule("leaf", produce(&count)),
	)

	outer := judgment.Rules("outer",
		judgment.FromSet("nested", inner),
		judgment.NewRule("plain", produce(&count)),
	)

	if !outer.IsEmpty() {
		t.Fatalf("expected no results, got %v", outer)
	}

	expected := "failed: outer\n  rule \"nested\" failed\n    rule \"leaf\" failed\n  rule \"plain\" failed"
	if got := outer.String(); got != expected {
		t.Fatalf("unexpected display: %q", got)
	}
}
