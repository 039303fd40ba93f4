package driver

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"formality/coherence"
	"formality/colors"
	"formality/decls"
	"formality/prove"
	"formality/syntax"
	"formality/terms"

	"github.com/charmbracelet/x/ansi"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("formality.driver")

// Root holds the declarations of every layer and the queries of the last
// one; queries in library layers are not run.
type Root struct {
	Decls   *decls.Decls
	Queries []*syntax.Query
}

func Compile(layers []Layer) *Root {
	root := &Root{Decls: decls.New(nil)}

	for i, layer := range layers {
		d := decls.New(root.Decls)

		for _, program := range layer.Programs {
			if program.MaxSize != nil {
				d.MaxSize = *program.MaxSize
			}

			for _, decl := range program.Decls {
				d.Register(decl)
			}

			if i == len(layers)-1 {
				root.Queries = append(root.Queries, program.Queries...)
			}
		}

		root.Decls = d
	}

	return root
}

type Result struct {
	Query     *syntax.Query
	Vars      []terms.Variable
	Env       prove.Env
	Verdict   prove.Verdict
	Solutions *prove.ProvenSet
}

// Holds reports whether the result may be relied upon under the bias the
// query ran with.
func (result Result) Holds() bool {
	return result.Verdict.Holds(result.Env.Bias())
}

// Run instantiates `query` in a fresh environment and proves it.
func Run(d *decls.Decls, query *syntax.Query, bias prove.Bias) Result {
	id, err := gonanoid.New()
	if err != nil {
		panic(err)
	}

	env := prove.NewEnv(bias)

	vars := make([]terms.Variable, 0, query.Binder.Len())
	parameters := make([]terms.Parameter, 0, query.Binder.Len())
	for i, kind := range query.Binder.Kinds() {
		var v terms.Variable
		if query.Exists[i] {
			env, v = env.NewExistential(kind)
		} else {
			env, v = env.NewUniversal(kind)
		}

		vars = append(vars, v)
		parameters = append(parameters, v)
	}

	body := query.Binder.Instantiate(parameters)

	log.Info("running query", "id", id, "query", query.String(), "bias", bias.String())

	start := time.Now()
	solutions := prove.Prove(d, env, body.First, body.Second)

	// Every solution is reported, so finish the search before classifying it
	count := solutions.Len()
	verdict := prove.Classify(solutions)

	log.Info("finished query", "id", id, "verdict", verdict.String(), "solutions", count, "duration", time.Since(start).String())

	return Result{
		Query:     query,
		Vars:      vars,
		Env:       env,
		Verdict:   verdict,
		Solutions: solutions,
	}
}

func RunAll(root *Root, bias prove.Bias) []Result {
	results := make([]Result, 0, len(root.Queries))
	for _, query := range root.Queries {
		results = append(results, Run(root.Decls, query, bias))
	}

	return results
}

const lineWidth = 100

func write(w io.Writer, format string, args ...any) {
	_, err := fmt.Fprintf(w, format, args...)
	if err != nil {
		panic(err)
	}
}

func wrap(message string, indent string) string {
	rendered := ansi.Wordwrap(message, lineWidth-len(indent), " ")

	var s strings.Builder
	for i, line := range strings.Split(rendered, "\n") {
		if i > 0 {
			s.WriteString("\n")
		}

		s.WriteString(indent)
		s.WriteString(line)
	}

	return s.String()
}

// namer displays the query's variables by the names they were declared with.
func namer(result Result) *strings.Replacer {
	type pair struct{ old, new string }

	pairs := make([]pair, 0, len(result.Vars))
	for i, v := range result.Vars {
		pairs = append(pairs, pair{v.String(), result.Query.Names[i]})
	}

	// `?ty_10` before `?ty_1`
	slices.SortStableFunc(pairs, func(left pair, right pair) int {
		return len(right.old) - len(left.old)
	})

	oldnew := make([]string, 0, 2*len(pairs))
	for _, p := range pairs {
		oldnew = append(oldnew, p.old, p.new)
	}

	return strings.NewReplacer(oldnew...)
}

func verdictString(result Result) string {
	switch {
	case result.Verdict == prove.Proven:
		return colors.Success(result.Verdict.String())
	case result.Holds():
		return colors.Warning(result.Verdict.String())
	default:
		return colors.Conflict(result.Verdict.String())
	}
}

// WriteResults renders each query's verdict and solutions, returning the
// number of queries that don't hold.
func WriteResults(w io.Writer, results []Result) int {
	failed := 0

	for _, result := range results {
		names := namer(result)

		write(w, "%s\n", colors.Title(result.Query.String()))
		write(w, "  %s %s\n", verdictString(result), colors.Extra(fmt.Sprintf("bias: %v", result.Env.Bias())))

		if !result.Holds() {
			failed++
		}

		solutions := result.Solutions.Items()

		if len(solutions) == 0 {
			// Failures are labeled with the minimized goal, so the query's
			// names don't apply
			write(w, "%s\n", wrap("no proof of "+result.Solutions.Label(), "  "))
			for _, failure := range result.Solutions.Failures() {
				write(w, "%s\n", wrap(failure.String(), "    "))
			}
		}

		for i, c := range solutions {
			write(w, "  solution %d:", i+1)
			if c.IsAmbiguous() {
				write(w, " %s", colors.Extra("ambiguous"))
			}
			write(w, "\n")

			lines := 0
			substitution := c.Substitution()
			for j, v := range result.Vars {
				existential, ok := v.(terms.ExistentialVar)
				if !ok {
					continue
				}

				if value, ok := substitution[existential]; ok {
					write(w, "    %s = %s\n", result.Query.Names[j], colors.Code(names.Replace(value.String())))
					lines++
				}
			}

			if pending := c.Pending(); len(pending) > 0 {
				write(w, "%s\n", wrap("pending: "+names.Replace(pending.String()), "    "))
				lines++
			}

			if lines == 0 {
				write(w, "    %s\n", colors.Extra("no constraints"))
			}
		}

		write(w, "\n")
	}

	return failed
}

// WriteOverlaps renders the overlapping impls found by coherence checking.
func WriteOverlaps(w io.Writer, overlaps []coherence.Overlap) int {
	for _, overlap := range overlaps {
		write(w, "%s\n", colors.Conflict(fmt.Sprintf("overlapping impls of %s", overlap.TraitId)))
		write(w, "%s\n", wrap(colors.Code(overlap.Left.String()), "  "))
		write(w, "%s\n\n", wrap(colors.Code(overlap.Right.String()), "  "))
	}

	return len(overlaps)
}

// WriteOrphans renders the impls that break the orphan rules.
func WriteOrphans(w io.Writer, orphans []coherence.Orphan) int {
	for _, orphan := range orphans {
		write(w, "%s\n", colors.Conflict(fmt.Sprintf("orphan impl of %s", orphan.TraitRef.TraitId)))
		write(w, "%s\n\n", wrap(colors.Code(orphan.Impl.String()), "  "))
	}

	return len(orphans)
}
