package photos

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/depeter/photostrip/internal/geometry"
)

// DirSource serves the images of a single local directory, sorted by name.
// Cursors are decimal offsets into that listing. Only stills are listed, so
// KindVideos yields an empty library.
type DirSource struct {
	Dir string
}

func isSupportedImage(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp":
		return true
	}
	return false
}

func (d DirSource) Photos(ctx context.Context, kind AssetKind, first int, after string) (Page, error) {
	if kind == KindVideos {
		return Page{}, nil
	}
	start, err := parseCursor(after)
	if err != nil {
		return Page{}, err
	}

	names, err := d.list()
	if err != nil {
		return Page{}, err
	}
	if start > len(names) {
		start = len(names)
	}
	end := min(start+first, len(names))

	images := make([]geometry.Image, 0, end-start)
	for _, name := range names[start:end] {
		if err := ctx.Err(); err != nil {
			return Page{}, err
		}
		img, err := decodeSize(filepath.Join(d.Dir, name))
		if err != nil {
			continue
		}
		images = append(images, img)
	}
	return Page{
		Images:      images,
		EndCursor:   strconv.Itoa(end),
		HasNextPage: end < len(names),
	}, nil
}

func (d DirSource) list() ([]string, error) {
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return nil, fmt.Errorf("read library dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if isSupportedImage(strings.ToLower(filepath.Ext(e.Name()))) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func decodeSize(path string) (geometry.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return geometry.Image{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return geometry.Image{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return geometry.Image{}, fmt.Errorf("decode %s: empty image", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return geometry.Image{URI: abs, Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
}

func parseCursor(after string) (int, error) {
	if after == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(after)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid cursor %q", after)
	}
	return n, nil
}
