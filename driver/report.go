package driver

import (
	"io"

	"formality/terms"

	"gopkg.in/yaml.v3"
)

// Report is the machine-readable form of a set of results.
type Report struct {
	Queries []QueryReport `yaml:"queries"`
}

type QueryReport struct {
	Query     string           `yaml:"query"`
	Bias      string           `yaml:"bias"`
	Verdict   string           `yaml:"verdict"`
	Holds     bool             `yaml:"holds"`
	Solutions []SolutionReport `yaml:"solutions,omitempty"`
	Failures  []string         `yaml:"failures,omitempty"`
}

type SolutionReport struct {
	Ambiguous bool              `yaml:"ambiguous,omitempty"`
	Bindings  map[string]string `yaml:"bindings,omitempty"`
	Pending   []string          `yaml:"pending,omitempty"`
}

func NewReport(results []Result) Report {
	report := Report{Queries: make([]QueryReport, 0, len(results))}

	for _, result := range results {
		names := namer(result)

		query := QueryReport{
			Query:   result.Query.String(),
			Bias:    result.Env.Bias().String(),
			Verdict: result.Verdict.String(),
			Holds:   result.Holds(),
		}

		for _, c := range result.Solutions.Items() {
			solution := SolutionReport{Ambiguous: c.IsAmbiguous()}

			substitution := c.Substitution()
			for i, v := range result.Vars {
				existential, ok := v.(terms.ExistentialVar)
				if !ok {
					continue
				}

				if value, ok := substitution[existential]; ok {
					if solution.Bindings == nil {
						solution.Bindings = map[string]string{}
					}

					solution.Bindings[result.Query.Names[i]] = names.Replace(value.String())
				}
			}

			for _, wc := range c.Pending() {
				solution.Pending = append(solution.Pending, names.Replace(wc.String()))
			}

			query.Solutions = append(query.Solutions, solution)
		}

		if len(query.Solutions) == 0 {
			for _, failure := range result.Solutions.Failures() {
				query.Failures = append(query.Failures, failure.String())
			}
		}

		report.Queries = append(report.Queries, query)
	}

	return report
}

// WriteYAML renders the results as YAML, returning the number of queries
// that don't hold.
func WriteYAML(w io.Writer, results []Result) (int, error) {
	report := NewReport(results)

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return 0, err
	}

	if err := encoder.Close(); err != nil {
		return 0, err
	}

	failed := 0
	for _, query := range report.Queries {
		if !query.Holds {
			failed++
		}
	}

	return failed, nil
}
