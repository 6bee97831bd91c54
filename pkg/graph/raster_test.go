package graph

import (
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func quietLog(t *testing.T) {
	t.Helper()
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
}

func TestDotRasterizerArgs(t *testing.T) {
	d := &DotRasterizer{}
	require.Equal(t,
		[]string{"dot", "-Tjpg", "-o", "graf1.jpg", "graf1.dot"},
		d.Args("graf1.dot", "graf1.jpg", "jpg"))

	d.Bin = "/opt/graphviz/bin/dot"
	require.Equal(t,
		[]string{"/opt/graphviz/bin/dot", "-Tsvg", "-o", "out/graf3.svg", "out/graf3.dot"},
		d.Args("out/graf3.dot", "out/graf3.svg", "svg"))
}

func TestDotRasterizerMissingBinary(t *testing.T) {
	quietLog(t)
	d := &DotRasterizer{Bin: filepath.Join(t.TempDir(), "no-such-dot")}
	d.Rasterize("graf1.dot", "graf1.jpg", "jpg")

	err := d.Wait()
	var rerr *RenderError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, "graf1.dot", rerr.Dot)
}

func TestDotRasterizerExitStatus(t *testing.T) {
	ok, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not available")
	}
	bad, err := exec.LookPath("false")
	if err != nil {
		t.Skip("false not available")
	}
	quietLog(t)

	d := &DotRasterizer{Bin: ok}
	for i := 0; i < 4; i++ {
		d.Rasterize("a.dot", "a.jpg", "jpg")
	}
	require.NoError(t, d.Wait())

	d = &DotRasterizer{Bin: bad}
	d.Rasterize("a.dot", "a.jpg", "jpg")
	d.Rasterize("b.dot", "b.jpg", "jpg")
	err = d.Wait()
	require.Error(t, err)
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Contains(t, err.Error(), "render a.dot")
	require.Contains(t, err.Error(), "render b.dot")
}

func TestDotRasterizerEndToEnd(t *testing.T) {
	bin, err := exec.LookPath(DefaultBin)
	if err != nil {
		t.Skip("graphviz not installed")
	}
	dir := t.TempDir()
	e := NewExporter(dir, &DotRasterizer{Bin: bin})
	e.Format = "png"
	img := e.Export(parseOne(t, "(1 + 2) * -3;"))

	require.NoError(t, e.Wait())
	info, err := os.Stat(img)
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

func TestNop(t *testing.T) {
	var r Rasterizer = Nop{}
	r.Rasterize("x.dot", "x.jpg", "jpg")
	require.NoError(t, r.Wait())
}
