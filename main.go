//go:build !js

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"arithgraph/pkg/calc"
	"arithgraph/pkg/graph"
	"arithgraph/pkg/utils"
)

func main() {
	log.SetFlags(0)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run interprets the program named by args and returns the process exit code.
// Lexical, syntax and rendering errors are reported but do not fail the run; only an
// unreadable source or unusable output directory does.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("arithgraph", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inPath := fs.String("in", "entrada.txt", "source file to interpret")
	outDir := fs.String("out", ".", "directory for graf<N>.dot files and their images")
	dotBin := fs.String("dot", graph.DefaultBin, "Graphviz program used to rasterize graphs")
	format := fs.String("format", graph.DefaultFormat, "image format passed to the rasterizer as -T<format>")
	noRender := fs.Bool("no-render", false, "write .dot files only, do not start the rasterizer")
	quiet := fs.Bool("quiet", false, "do not print results")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "expected at most one source file")
		fs.Usage()
		return 2
	}
	if fs.NArg() == 1 {
		*inPath = fs.Arg(0)
	}

	fullPath, _, err := utils.GetPathInfo(*inPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to resolve input path %q: %v\n", *inPath, err)
		return 1
	}
	src, err := os.Open(fullPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to open input file: %v\n", err)
		return 1
	}
	defer src.Close()

	if err := utils.EnsureDir(*outDir); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var raster graph.Rasterizer = &graph.DotRasterizer{Bin: *dotBin}
	if *noRender {
		raster = graph.Nop{}
	}
	exporter := graph.NewExporter(*outDir, raster)
	exporter.Format = *format

	out := stdout
	if *quiet {
		out = io.Discard
	}
	diag := calc.NewReporter(stderr)
	interp := &calc.Interpreter{Out: out, Diag: diag, Graph: exporter}

	results, runErr := interp.Run(src)

	// Failures were logged as they happened; waiting keeps the images complete on exit.
	_ = exporter.Wait()

	if runErr != nil {
		fmt.Fprintf(stderr, "fatal error interpreting %s: %v\n", fullPath, runErr)
		return 1
	}

	if !*quiet {
		fmt.Fprintf(stdout, "%d statement(s), %d diagnostic(s), %d graph(s)\n",
			len(results), len(diag.Diagnostics()), exporter.Count())
	}
	return 0
}
