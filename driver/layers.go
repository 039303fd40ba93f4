package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"formality/syntax"
)

// Layer is a group of programs compiled together. Each layer sees the
// declarations of the layers before it.
type Layer struct {
	Name     string
	Programs []*syntax.Program
}

func ReadFile(path string) (*syntax.Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	program, syntaxError := syntax.ParseProgram(path, string(source))
	if syntaxError != nil {
		return nil, fmt.Errorf("syntax error: %w", syntaxError)
	}

	return program, nil
}

func ReadLayers(path string, cwd string) (Layer, error) {
	if cwd != "" {
		var err error
		path, err = filepath.Rel(cwd, path)
		if err != nil {
			return Layer{}, err
		}
	} else if !filepath.IsAbs(path) {
		return Layer{}, fmt.Errorf("layer path must be absolute")
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return Layer{}, err
	}

	programs := make([]*syntax.Program, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".fml" {
			program, err := ReadFile(filepath.Join(path, entry.Name()))
			if err != nil {
				return Layer{}, err
			}

			programs = append(programs, program)
		}
	}

	return Layer{Name: path, Programs: programs}, nil
}

// ReadPaths reads the given files into a single layer.
func ReadPaths(paths []string, cwd string) (Layer, error) {
	var layer Layer
	for i, path := range paths {
		if cwd != "" {
			var err error
			path, err = filepath.Rel(cwd, path)
			if err != nil {
				return Layer{}, err
			}
		}

		program, err := ReadFile(path)
		if err != nil {
			return Layer{}, err
		}

		if i > 0 {
			layer.Name += ", "
		}

		layer.Name += path
		layer.Programs = append(layer.Programs, program)
	}

	return layer, nil
}
