package prove

import (
	"fmt"
	"iter"

	"formality/decls"
	"formality/judgment"
	"formality/terms"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("formality.prove")

type ProvenSet = judgment.ProvenSet[Constraints]

type rule = judgment.Rule[Constraints]

func newRule(name string, apply iter.Seq[Constraints]) rule {
	return judgment.NewRule(name, apply)
}

// setRule is a rule that proves a single subgoal, keeping its failures.
func setRule(name string, s *ProvenSet) rule {
	return judgment.FromSet(name, s)
}

// frame is one judgment currently being proven; frames form the stack used
// to detect cycles.
type frame struct {
	parent *frame
	key    string
}

// Prover carries the declarations and the stack of in-progress judgments.
// It is passed by value: each recursive call sees only its own ancestors.
type Prover struct {
	decls *decls.Decls
	stack *frame
}

func NewProver(d *decls.Decls) Prover {
	return Prover{decls: d}
}

func (p Prover) Decls() *decls.Decls {
	return p.decls
}

// enter pushes a judgment onto the stack, failing if it is already there.
func (p Prover) enter(key string) (Prover, bool) {
	for f := p.stack; f != nil; f = f.parent {
		if f.key == key {
			return p, false
		}
	}

	p.stack = &frame{parent: p.stack, key: key}
	return p, true
}

// Prove is the top-level entry point; returns every way `goal` holds in `env`
// given `assumptions`.
func Prove(d *decls.Decls, env Env, assumptions terms.Wcs, goal terms.Wcs) *ProvenSet {
	return NewProver(d).Prove(env, assumptions, goal)
}

func (p Prover) Prove(env Env, assumptions terms.Wcs, goal terms.Wcs) *ProvenSet {
	// Minimize so that recurring subgoals look the same
	env, assumptions, goal, min := Minimize(env, assumptions, goal)

	if log.AllowLevel(commonlog.Debug) {
		log.Debug("prove", "goal", goal.String(), "assumptions", assumptions.String(), "env", env.String())
	}

	// Overflow detection: recursion that never reaches a simple cycle (e.g.,
	// `A: Foo` requires `Vec[A]: Foo` requires `Vec[Vec[A]]: Foo`...) makes
	// the terms grow, so give up once they get too large. Recursion depth
	// would depend on the context the proof occurs in; size doesn't.
	term := terms.Pair[terms.Wcs, terms.Wcs]{First: assumptions, Second: goal}
	if size := term.Size(); size > p.decls.MaxSize {
		log.Debugf("term has size %d which exceeds max size of %d", size, p.decls.MaxSize)
		return judgment.Singleton(min.Reconstitute(None(env).Ambiguous()))
	}

	if !env.Encloses(term) {
		panic(fmt.Sprintf("prove: %v has variables not in %v", term, env))
	}

	label := fmt.Sprintf("prove { goal: %v, assumptions: %v, env: %v }", goal, assumptions, env)

	p, ok := p.enter(label)
	if !ok {
		log.Debug("cycle", "goal", goal.String())
		return judgment.Failed[Constraints](label, "cycle")
	}

	// Map the results back to the caller's variables
	return judgment.Map(label, p.proveWcList(env, assumptions, goal), func(c Constraints) Constraints {
		if !c.IsValidExtensionOf(env) {
			panic(fmt.Sprintf("prove: %v is not a valid extension of %v", c, env))
		}

		return min.Reconstitute(c)
	})
}

// judge sets up a judgment: it detects cycles and evaluates the rules lazily.
func (p Prover) judge(name string, inputs []any, rules func(p Prover) []rule) *ProvenSet {
	label := fmt.Sprintf("%s%v", name, inputs)
	p, ok := p.enter(label)
	if !ok {
		return judgment.Failed[Constraints](label, "cycle")
	}

	return judgment.Rules(label, rules(p)...)
}
