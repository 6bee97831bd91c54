// Package gallery loads the images produced by graph export and prepares them for display.
package gallery

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Extensions lists the image formats Load can decode.
var Extensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff", ".webp"}

// Load decodes the image at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Fit scales src to the largest size that fits in w×h without changing its aspect
// ratio, centred on a transparent w×h canvas.
func Fit(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 || w == 0 || h == 0 {
		return dst
	}

	scale := min(float64(w)/float64(sb.Dx()), float64(h)/float64(sb.Dy()))
	sw := max(1, int(float64(sb.Dx())*scale))
	sh := max(1, int(float64(sb.Dy())*scale))
	x0 := (w - sw) / 2
	y0 := (h - sh) / 2

	draw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+sw, y0+sh), src, sb, draw.Over, nil)
	return dst
}

// Number extracts N from a path named graf<N>.<ext>.
func Number(path string) (int, bool) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if !strings.HasPrefix(base, "graf") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(base, "graf"))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Sort orders paths by export number so graf10 follows graf9. Paths without a number
// go last, alphabetically.
func Sort(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		ni, oki := Number(paths[i])
		nj, okj := Number(paths[j])
		switch {
		case oki && okj:
			return ni < nj
		case oki != okj:
			return oki
		}
		return paths[i] < paths[j]
	})
}

// Find returns the rendered images in dir in export order.
func Find(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "graf*"))
	if err != nil {
		return nil, err
	}
	var images []string
	for _, m := range matches {
		if _, ok := Number(m); !ok {
			continue
		}
		ext := strings.ToLower(filepath.Ext(m))
		for _, e := range Extensions {
			if ext == e {
				images = append(images, m)
				break
			}
		}
	}
	Sort(images)
	return images, nil
}
