package frame

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}

func TestImageCache_Load(t *testing.T) {
	path := writePNG(t, t.TempDir(), "a.png", 10, 6, color.White)
	cache := NewImageCache()

	first, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Remove the file; the cached copy must still be served.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	second, err := cache.Load(path)
	if err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if first != second {
		t.Error("expected the cached image instance")
	}

	cache.Evict(path)
	if _, err := cache.Load(path); err == nil {
		t.Error("Load after Evict should read the (deleted) file and fail")
	}
}

func TestImageCache_Clear(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "b.png", 2, 2, color.Black)
	cache := NewImageCache()

	if _, err := cache.Load(path); err != nil {
		t.Fatal(err)
	}
	cache.Clear()
	if len(cache.images) != 0 {
		t.Errorf("cache holds %d images after Clear", len(cache.images))
	}
}

func TestImageCache_Frame(t *testing.T) {
	path := writePNG(t, t.TempDir(), "c.png", 5, 3, color.NRGBA{0, 255, 0, 255})

	f, err := NewImageCache().Frame(path)
	if err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if f.Width() != 5 || f.Height() != 3 {
		t.Errorf("size = %dx%d, want 5x3", f.Width(), f.Height())
	}
	if g := f.Get(Green, 2, 0, 1)[0]; g != 1 {
		t.Errorf("green = %v, want 1", g)
	}
}

func TestLoadInfo(t *testing.T) {
	path := writePNG(t, t.TempDir(), "d.png", 7, 9, color.NRGBA{1, 2, 3, 128})

	info, err := LoadInfo(NewImageCache(), path)
	if err != nil {
		t.Fatalf("LoadInfo failed: %v", err)
	}
	if info.Width != 7 || info.Height != 9 {
		t.Errorf("size = %dx%d, want 7x9", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format = %q, want png", info.Format)
	}
	if !info.HasAlpha {
		t.Error("HasAlpha = false for a translucent PNG")
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("FileSizeBytes = %d", info.FileSizeBytes)
	}
}

func TestLoadInfo_MissingFile(t *testing.T) {
	if _, err := LoadInfo(NewImageCache(), filepath.Join(t.TempDir(), "none.png")); err == nil {
		t.Error("expected error for a missing file")
	}
}
