package graph

import (
	"bytes"
	"errors"
	"log"
	"os/exec"
	"strings"
	"sync"
)

// Rasterizer turns a DOT file into an image. Rasterize must not block on the external
// work; Wait blocks until all requested renders are finished and returns their failures.
type Rasterizer interface {
	Rasterize(dotPath, imgPath, format string)
	Wait() error
}

// DefaultBin is the Graphviz layout program used when DotRasterizer.Bin is empty.
const DefaultBin = "dot"

// DotRasterizer runs `dot -T<format> -o <image> <file.dot>` for each request. The
// process is started and left running; a goroutine collects its exit status.
type DotRasterizer struct {
	Bin string

	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

// Args returns the command line used to render dotPath into imgPath.
func (d *DotRasterizer) Args(dotPath, imgPath, format string) []string {
	bin := d.Bin
	if bin == "" {
		bin = DefaultBin
	}
	return []string{bin, "-T" + format, "-o", imgPath, dotPath}
}

func (d *DotRasterizer) Rasterize(dotPath, imgPath, format string) {
	args := d.Args(dotPath, imgPath, format)
	cmd := exec.Command(args[0], args[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		d.fail(&RenderError{Dot: dotPath, Err: err})
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := cmd.Wait(); err != nil {
			d.fail(&RenderError{Dot: dotPath, Output: strings.TrimSpace(stderr.String()), Err: err})
		}
	}()
}

func (d *DotRasterizer) fail(err *RenderError) {
	log.Printf("graph: %v", err)
	d.mu.Lock()
	d.errs = append(d.errs, err)
	d.mu.Unlock()
}

// Wait blocks until every started process has exited and returns the joined failures.
func (d *DotRasterizer) Wait() error {
	d.wg.Wait()
	d.mu.Lock()
	defer d.mu.Unlock()
	return errors.Join(d.errs...)
}

// Nop writes no images. It backs the -no-render mode, where only .dot files are kept.
type Nop struct{}

func (Nop) Rasterize(dotPath, imgPath, format string) {}
func (Nop) Wait() error                               { return nil }
