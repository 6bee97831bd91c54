package graph

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"arithgraph/pkg/calc"
)

// DefaultFormat is the image format requested from the rasterizer.
const DefaultFormat = "jpg"

// Exporter writes numbered graph descriptions (graf1.dot, graf2.dot, ...) and asks its
// Rasterizer to turn each into an image with the same base name. It satisfies
// calc.Grapher. An Exporter is not safe for concurrent use.
type Exporter struct {
	Dir    string     // output directory, "" for the working directory
	Format string     // image extension and -T value, DefaultFormat when empty
	Raster Rasterizer // nil means Nop

	// WriteFile defaults to os.WriteFile.
	WriteFile func(name string, data []byte, perm os.FileMode) error

	n      int
	failed []error
}

// NewExporter returns an Exporter writing under dir and rendering with r.
func NewExporter(dir string, r Rasterizer) *Exporter {
	return &Exporter{Dir: dir, Format: DefaultFormat, Raster: r}
}

func (e *Exporter) format() string {
	if e.Format == "" {
		return DefaultFormat
	}
	return e.Format
}

func (e *Exporter) raster() Rasterizer {
	if e.Raster == nil {
		return Nop{}
	}
	return e.Raster
}

// Paths returns the description and image paths for export number n.
func (e *Exporter) Paths(n int) (dotPath, imgPath string) {
	base := filepath.Join(e.Dir, fmt.Sprintf("graf%d", n))
	return base + ".dot", base + "." + e.format()
}

// Export renders root and returns the path its image is expected at. The counter
// advances on every call, whether or not anything could be written. A write failure is
// logged and the rasterizer is not invoked; a rasterizer failure shows up later in Wait.
func (e *Exporter) Export(root calc.Node) string {
	e.n++
	dotPath, imgPath := e.Paths(e.n)

	write := e.WriteFile
	if write == nil {
		write = os.WriteFile
	}
	if err := write(dotPath, []byte(DOT(root)), 0o644); err != nil {
		werr := &WriteError{Path: dotPath, Err: err}
		log.Printf("graph: %v", werr)
		e.failed = append(e.failed, werr)
		return imgPath
	}

	e.raster().Rasterize(dotPath, imgPath, e.format())
	return imgPath
}

// Count returns how many exports have been requested.
func (e *Exporter) Count() int { return e.n }

// Wait blocks until outstanding renders finish and returns every write and render
// failure seen so far.
func (e *Exporter) Wait() error {
	return errors.Join(append(append([]error(nil), e.failed...), e.raster().Wait())...)
}
