package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"arithgraph/pkg/gallery"
	"arithgraph/pkg/grid"
)

const (
	pageWidth  = 800
	pageHeight = 600
)

// Viewer pages through rendered expression graphs.
// Right/Left (or Space/Backspace) move between images, G toggles the overview grid,
// R rescans the directory, Escape quits.
type Viewer struct {
	dir   string
	paths []string
	pages map[string]*ebiten.Image // fitted to the page, keyed by path
	bad   map[string]error

	index    int
	showGrid bool
}

func newViewer(dir string, paths []string) *Viewer {
	return &Viewer{
		dir:   dir,
		paths: paths,
		pages: make(map[string]*ebiten.Image),
		bad:   make(map[string]error),
	}
}

// rescan picks up images the rasterizer finished after the viewer started.
func (v *Viewer) rescan() {
	if v.dir == "" {
		return
	}
	paths, err := gallery.Find(v.dir)
	if err != nil {
		log.Printf("viewer: %v", err)
		return
	}
	v.paths = paths
	clear(v.bad)
	if v.index >= len(v.paths) {
		v.index = 0
	}
}

// page returns the image for path scaled to the page, loading it on first use.
func (v *Viewer) page(path string) *ebiten.Image {
	if img, ok := v.pages[path]; ok {
		return img
	}
	if _, failed := v.bad[path]; failed {
		return nil
	}
	src, err := gallery.Load(path)
	if err != nil {
		log.Printf("viewer: %v", err)
		v.bad[path] = err
		return nil
	}
	img := ebiten.NewImageFromImage(gallery.Fit(src, pageWidth, pageHeight))
	v.pages[path] = img
	return img
}

func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.rescan()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		v.showGrid = !v.showGrid
	}
	n := len(v.paths)
	if n == 0 {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.index = (v.index + 1) % n
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		v.index = (v.index + n - 1) % n
	}
	return nil
}

func (v *Viewer) drawPage(screen *ebiten.Image) {
	path := v.paths[v.index]
	if img := v.page(path); img != nil {
		screen.DrawImage(img, &ebiten.DrawImageOptions{})
	} else {
		ebitenutil.DebugPrintAt(screen, "cannot load "+path, 8, pageHeight/2)
	}
	msg := fmt.Sprintf("%s  (%d/%d)", filepath.Base(path), v.index+1, len(v.paths))
	ebitenutil.DebugPrintAt(screen, msg, 4, 4)
}

func (v *Viewer) drawGrid(screen *ebiten.Image) {
	cols, rows := grid.Shape(len(v.paths))
	tileW := pageWidth / cols
	tileH := pageHeight / rows

	for i, path := range v.paths {
		x, y := grid.GetGridCoords(i, cols)
		px, py := x*tileW, y*tileH
		if img := v.page(path); img != nil {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(float64(tileW)/pageWidth, float64(tileH)/pageHeight)
			op.GeoM.Translate(float64(px), float64(py))
			screen.DrawImage(img, op)
		}
		label := filepath.Base(path)
		if i == v.index {
			label = "> " + label
		}
		ebitenutil.DebugPrintAt(screen, label, px+2, py+2)
	}
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)
	if len(v.paths) == 0 {
		ebitenutil.DebugPrintAt(screen, "no rendered graphs yet (R to rescan)", 8, 8)
		return
	}
	if v.showGrid {
		v.drawGrid(screen)
		return
	}
	v.drawPage(screen)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return pageWidth, pageHeight
}

func main() {
	dir := flag.String("dir", ".", "directory scanned for graf<N> images when no files are given")
	flag.Parse()

	var v *Viewer
	if flag.NArg() > 0 {
		paths := append([]string(nil), flag.Args()...)
		gallery.Sort(paths)
		v = newViewer("", paths)
	} else {
		paths, err := gallery.Find(*dir)
		if err != nil {
			log.Fatalf("Failed to list %s: %v", *dir, err)
		}
		v = newViewer(*dir, paths)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(pageWidth, pageHeight)
	ebiten.SetWindowTitle("Expression Graphs")

	if err := ebiten.RunGame(v); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
