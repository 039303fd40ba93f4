package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"formality/coherence"
	"formality/colors"
	"formality/driver"
	"formality/prove"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

type Context struct{}

type ProveCmd struct {
	Lib     []string `type:"path" help:"Directories of .fml files to load before the given files."`
	MaxSize int      `default:"-1" env:"FORMALITY_MAX_SIZE" help:"Override the maximum term size (negative to use the program's)."`
	Bias    string   `default:"soundness" enum:"soundness,completeness" env:"FORMALITY_BIAS" help:"How ambiguous results are treated."`
	Format  string   `default:"text" enum:"text,yaml" help:"Output format."`
	Watch   bool     `help:"Run the queries again whenever a file changes."`
	Paths   []string `arg:"" name:"path" type:"path"`
}

func (cmd *ProveCmd) Run(ctx *Context) error {
	if !cmd.Watch {
		return cmd.prove()
	}

	dirs := slices.Clone(cmd.Lib)
	for _, path := range cmd.Paths {
		if dir := filepath.Dir(path); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	watchCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	run := func() {
		if err := cmd.prove(); err != nil {
			fmt.Fprintln(os.Stderr, colors.Conflict(err.Error()))
		}
	}

	run()

	return driver.Watch(watchCtx, dirs, run)
}

func (cmd *ProveCmd) prove() error {
	bias, err := prove.ParseBias(cmd.Bias)
	if err != nil {
		return err
	}

	root, err := load(cmd.Lib, cmd.Paths)
	if err != nil {
		return err
	}

	if cmd.MaxSize >= 0 {
		root.Decls.MaxSize = cmd.MaxSize
	}

	results := driver.RunAll(root, bias)

	var output strings.Builder
	var failed int
	switch cmd.Format {
	case "yaml":
		failed, err = driver.WriteYAML(&output, results)
		if err != nil {
			return err
		}
	default:
		failed = driver.WriteResults(&output, results)
	}

	fmt.Print(output.String())

	if failed > 0 {
		return fmt.Errorf("%d of %d queries did not hold", failed, len(results))
	}

	return nil
}

type CheckCmd struct {
	Lib   []string `type:"path" help:"Directories of .fml files to load before the given files."`
	Paths []string `arg:"" name:"path" type:"path"`
}

func (cmd *CheckCmd) Run(ctx *Context) error {
	root, err := load(cmd.Lib, cmd.Paths)
	if err != nil {
		return err
	}

	var output strings.Builder
	overlaps := driver.WriteOverlaps(&output, coherence.CheckOverlap(root.Decls))
	orphans := driver.WriteOrphans(&output, coherence.CheckOrphans(root.Decls))
	fmt.Print(output.String())

	if overlaps > 0 || orphans > 0 {
		return fmt.Errorf("found %d overlapping and %d orphan impl(s)", overlaps, orphans)
	}

	return nil
}

var log = commonlog.GetLogger("formality")

var cli struct {
	Verbosity int `short:"v" default:"0" env:"FORMALITY_VERBOSITY" help:"Log verbosity (2 logs every proof step)."`

	Prove ProveCmd `cmd:"" help:"Run the queries in the given files."`
	Check CheckCmd `cmd:"" help:"Check that no two impls overlap and that no impl is an orphan."`
}

func main() {
	// Environment variables may come from a `.env` file
	godotenv.Load()

	ctx := kong.Parse(&cli)

	commonlog.Configure(cli.Verbosity, nil)

	err := ctx.Run(&Context{})
	ctx.FatalIfErrorf(err)
}

func load(lib []string, paths []string) (*driver.Root, error) {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	layers := make([]driver.Layer, 0, len(lib)+1)
	for _, path := range lib {
		layer, err := driver.ReadLayers(path, cwd)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}

	files, err := driver.ReadPaths(paths, cwd)
	if err != nil {
		return nil, err
	}

	layers = append(layers, files)

	start := time.Now()
	root := driver.Compile(layers)

	for _, layer := range layers {
		_, err = fmt.Fprintf(os.Stderr, "Loaded %s (%d file(s))\n", layer.Name, len(layer.Programs))
		if err != nil {
			panic(err)
		}
	}

	log.Info("loaded declarations", "decls", root.Decls.String(), "duration", time.Since(start).String())

	return root, nil
}
