package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"formality/colors"
	"formality/driver"
	"formality/prove"
	"formality/syntax"
)

func program(t *testing.T, source string) *syntax.Program {
	t.Helper()

	p, err := syntax.ParseProgram("test", source)
	if err != nil {
		t.Fatalf("unexpected syntax error: %v", err)
	}

	return p
}

func layer(t *testing.T, name string, source string) driver.Layer {
	return driver.Layer{Name: name, Programs: []*syntax.Program{program(t, source)}}
}

func TestCompileLayers(t *testing.T) {
	lib := layer(t, "lib", `
		trait Debug;
		impl u32: Debug;
		prove { u8: Debug };
	`)

	app := layer(t, "app", `
		max_size 7;
		struct Vec[ty T];
		impl[ty T] Vec[T]: Debug where T: Debug;
		prove { Vec[u32]: Debug };
	`)

	root := driver.Compile([]driver.Layer{lib, app})

	if len(root.Queries) != 1 {
		t.Fatalf("expected only the last layer's query, got %d", len(root.Queries))
	}

	if root.Decls.MaxSize != 7 {
		t.Fatalf("expected max_size 7, got %d", root.Decls.MaxSize)
	}

	results := driver.RunAll(root, prove.Soundness)
	if results[0].Verdict != prove.Proven || !results[0].Holds() {
		t.Fatalf("expected the query to see the library's impl, got %v", results[0].Verdict)
	}
}

func TestWriteResults(t *testing.T) {
	root := driver.Compile([]driver.Layer{layer(t, "main", `
		trait Debug;
		impl u32: Debug;
		prove exists[ty X] { X = u32, X: Debug };
		prove { u8: Debug };
	`)})

	results := driver.RunAll(root, prove.Soundness)

	var output strings.Builder
	var failed int
	colors.WithoutColor(func() {
		failed = driver.WriteResults(&output, results)
	})

	if failed != 1 {
		t.Fatalf("expected one query to fail, got %d", failed)
	}

	text := output.String()
	for _, expected := range []string{"proven", "X = u32", "unproven", "no proof of"} {
		if !strings.Contains(text, expected) {
			t.Errorf("expected output to contain %q:\n%s", expected, text)
		}
	}
}

func TestWriteYAML(t *testing.T) {
	root := driver.Compile([]driver.Layer{layer(t, "main", `
		trait Debug;
		impl u32: Debug;
		prove exists[ty X] { X = u32, X: Debug };
	`)})

	var output strings.Builder
	failed, err := driver.WriteYAML(&output, driver.RunAll(root, prove.Completeness))
	if err != nil {
		t.Fatal(err)
	}

	if failed != 0 {
		t.Fatalf("expected every query to hold, got %d failures", failed)
	}

	text := output.String()
	for _, expected := range []string{"verdict: proven", "holds: true", "bias: completeness", "X: u32"} {
		if !strings.Contains(text, expected) {
			t.Errorf("expected output to contain %q:\n%s", expected, text)
		}
	}
}

func TestReadLayers(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, source string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(source), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("a.fml", "trait Debug;\n")
	write("b.fml", "impl u32: Debug;\n")
	write("notes.txt", "not a program")

	l, err := driver.ReadLayers(dir, "")
	if err != nil {
		t.Fatal(err)
	}

	if len(l.Programs) != 2 {
		t.Fatalf("expected 2 programs, got %d", len(l.Programs))
	}

	write("c.fml", "impl u32 Debug;\n")

	if _, err := driver.ReadLayers(dir, ""); err == nil || !strings.Contains(err.Error(), "syntax error") {
		t.Fatalf("expected a syntax error, got %v", err)
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- driver.Watch(ctx, []string{dir}, func() {
			runs.Add(1)
			cancel()
		})
	}()

	// Give the watcher time to register the directory
	time.Sleep(200 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A burst of writes is a single change
	for range 3 {
		if err := os.WriteFile(filepath.Join(dir, "a.fml"), []byte("trait Debug;\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change to trigger a run")
	}

	if n := runs.Load(); n != 1 {
		t.Fatalf("expected 1 run, got %d", n)
	}
}
