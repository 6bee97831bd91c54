package gallery

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// requireNear allows for rounding in the resampling kernel.
func requireNear(t *testing.T, want, got color.RGBA) {
	t.Helper()
	require.InDelta(t, want.R, got.R, 2)
	require.InDelta(t, want.G, got.G, 2)
	require.InDelta(t, want.B, got.B, 2)
	require.InDelta(t, want.A, got.A, 2)
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		path string
		want int
		ok   bool
	}{
		{"graf1.jpg", 1, true},
		{"out/graf12.png", 12, true},
		{"graf3.dot", 3, true},
		{"graf.jpg", 0, false},
		{"grafx.jpg", 0, false},
		{"image1.jpg", 0, false},
	}
	for _, tt := range tests {
		n, ok := Number(tt.path)
		require.Equal(t, tt.ok, ok, tt.path)
		require.Equal(t, tt.want, n, tt.path)
	}
}

func TestSort(t *testing.T) {
	paths := []string{"graf10.jpg", "b.png", "graf2.jpg", "a.png", "graf1.jpg"}
	Sort(paths)
	require.Equal(t, []string{"graf1.jpg", "graf2.jpg", "graf10.jpg", "a.png", "b.png"}, paths)
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "graf1.jpg", "graf1.dot", "graf10.jpg", "graf2.PNG", "graph.jpg", "grafx.jpg", "notes.txt")

	got, err := Find(dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "graf1.jpg"),
		filepath.Join(dir, "graf2.PNG"),
		filepath.Join(dir, "graf10.jpg"),
	}, got)
}

func TestFindEmpty(t *testing.T) {
	got, err := Find(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	src := solid(6, 4, color.RGBA{R: 200, A: 255})

	encoders := map[string]func(*os.File) error{
		"graf1.png":  func(f *os.File) error { return png.Encode(f, src) },
		"graf2.bmp":  func(f *os.File) error { return bmp.Encode(f, src) },
		"graf3.tiff": func(f *os.File) error { return tiff.Encode(f, src, nil) },
	}
	for name, encode := range encoders {
		f, err := os.Create(filepath.Join(dir, name))
		require.NoError(t, err)
		require.NoError(t, encode(f))
		require.NoError(t, f.Close())

		img, err := Load(filepath.Join(dir, name))
		require.NoError(t, err, name)
		require.Equal(t, image.Rect(0, 0, 6, 4), img.Bounds(), name)
		r, _, _, _ := img.At(2, 2).RGBA()
		require.Equal(t, uint32(200)*0x101, r, name)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.jpg"))
	require.ErrorIs(t, err, os.ErrNotExist)

	touch(t, dir, "graf1.jpg")
	_, err = Load(filepath.Join(dir, "graf1.jpg"))
	require.ErrorContains(t, err, "decode")
}

func TestFit(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	dst := Fit(solid(200, 100, red), 800, 600)

	require.Equal(t, image.Rect(0, 0, 800, 600), dst.Bounds())
	// Scaled to 800x400 and centred vertically: rows 0-99 and 500-599 stay empty.
	require.Equal(t, color.RGBA{}, dst.RGBAAt(400, 50))
	require.Equal(t, color.RGBA{}, dst.RGBAAt(400, 550))
	requireNear(t, red, dst.RGBAAt(400, 300))
}

func TestFitTall(t *testing.T) {
	blue := color.RGBA{B: 255, A: 255}
	dst := Fit(solid(10, 60, blue), 800, 600)

	// Scaled to 100x600, centred horizontally.
	require.Equal(t, color.RGBA{}, dst.RGBAAt(200, 300))
	requireNear(t, blue, dst.RGBAAt(400, 300))
}

func TestFitEmptySource(t *testing.T) {
	dst := Fit(image.NewRGBA(image.Rect(0, 0, 0, 0)), 40, 30)
	require.Equal(t, image.Rect(0, 0, 40, 30), dst.Bounds())
}
