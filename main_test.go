package main_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"formality/coherence"
	"formality/colors"
	"formality/driver"
	"formality/prove"
	"formality/syntax"

	"github.com/gkampitakis/go-snaps/snaps"
)

var expectation = regexp.MustCompile(`(?m)^prove .*// expect: (\w+)$`)

// expectations lists the verdicts annotated on each query of a fixture.
func expectations(source string) []string {
	var verdicts []string
	for _, match := range expectation.FindAllStringSubmatch(source, -1) {
		verdicts = append(verdicts, match[1])
	}

	return verdicts
}

func TestFiles(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	testDir := filepath.Join(cwd, "tests")

	entries, err := os.ReadDir(testDir)
	if err != nil {
		panic(err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".fml" {
			continue
		}

		t.Run(entry.Name(), func(t *testing.T) {
			path := filepath.Join(testDir, entry.Name())
			source, err := os.ReadFile(path)
			if err != nil {
				panic(err)
			}

			program, syntaxError := syntax.ParseProgram(entry.Name(), string(source))
			if syntaxError != nil {
				panic(syntaxError)
			}

			root := driver.Compile([]driver.Layer{{Name: entry.Name(), Programs: []*syntax.Program{program}}})

			results := driver.RunAll(root, prove.Soundness)

			expected := expectations(string(source))
			if len(expected) != len(results) {
				t.Fatalf("expected %d annotated queries, got %d", len(results), len(expected))
			}

			for i, result := range results {
				if verdict := result.Verdict.String(); verdict != expected[i] {
					t.Errorf("expected `%v` to be %s, got %s", result.Query, expected[i], verdict)
				}
			}

			var buf bytes.Buffer
			colors.WithoutColor(func() {
				driver.WriteResults(&buf, results)
			})

			fmt.Fprintf(&buf, "overlapping impls: %d\n", len(coherence.CheckOverlap(root.Decls)))
			fmt.Fprintf(&buf, "orphan impls: %d\n", len(coherence.CheckOrphans(root.Decls)))

			snaps.WithConfig(snaps.Dir(filepath.Join(testDir, "__snapshots__")), snaps.Filename(entry.Name())).MatchStandaloneSnapshot(t, buf.String())
		})
	}
}
