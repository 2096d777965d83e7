package detect

import (
	"image"
	"math"
	"testing"
)

func TestGrayscale_SingleChannel(t *testing.T) {
	img := NewImage(3, 2, 1)
	copy(img.Pix, []uint8{1, 2, 3, 4, 5, 6})

	gray := Grayscale(img)
	if gray.Bounds().Dx() != 3 || gray.Bounds().Dy() != 2 {
		t.Fatalf("size = %v", gray.Bounds())
	}
	for i, want := range []uint8{1, 2, 3, 4, 5, 6} {
		if gray.Pix[i] != want {
			t.Errorf("Pix[%d] = %d, want %d", i, gray.Pix[i], want)
		}
	}
}

func TestGrayscale_BGR(t *testing.T) {
	img := NewImage(3, 2, 3)
	// Row 0: black, white, pure red. Row 1: pure green, pure blue, mixed.
	copy(img.Row(0), []uint8{0, 0, 0, 255, 255, 255, 0, 0, 255})
	copy(img.Row(1), []uint8{0, 255, 0, 255, 0, 0, 50, 100, 200})

	gray := Grayscale(img)
	if gray.Bounds().Dx() != 3 || gray.Bounds().Dy() != 2 {
		t.Fatalf("size = %v", gray.Bounds())
	}

	tests := []struct {
		name    string
		x, y    int
		r, g, b float64
	}{
		{"black", 0, 0, 0, 0, 0},
		{"white", 1, 0, 255, 255, 255},
		{"red", 2, 0, 255, 0, 0},
		{"green", 0, 1, 0, 255, 0},
		{"blue", 1, 1, 0, 0, 255},
		{"mixed", 2, 1, 200, 100, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := 0.299*tt.r + 0.587*tt.g + 0.114*tt.b
			got := float64(gray.Pix[tt.y*gray.Stride+tt.x])
			if math.Abs(got-want) > 1 {
				t.Errorf("gray = %v, want %.2f (BT.601 weights)", got, want)
			}
		})
	}
}

func TestDownscale_UnevenWidth(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 35, 35))

	small, scale := Downscale(gray, 2)
	// 35/2 rounds to 18, so the applied scale is 18/35 rather than 0.5.
	if small.Bounds().Dx() != 18 {
		t.Fatalf("width = %d, want 18", small.Bounds().Dx())
	}
	if want := 18.0 / 35.0; scale != want {
		t.Errorf("scale = %v, want %v", scale, want)
	}
}

func TestDownscale(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 40, 20))
	for i := range gray.Pix {
		gray.Pix[i] = 100
	}

	small, scale := Downscale(gray, 2)
	if scale != 0.5 {
		t.Errorf("scale = %v, want 0.5", scale)
	}
	if small.Bounds().Dx() != 20 || small.Bounds().Dy() != 10 {
		t.Errorf("size = %v, want 20x10", small.Bounds())
	}
	if small.Pix[5*small.Stride+5] != 100 {
		t.Errorf("uniform image changed value: %d", small.Pix[5*small.Stride+5])
	}

	same, scale := Downscale(gray, 1)
	if same != gray || scale != 1 {
		t.Error("factor 1 should return the input unchanged")
	}
}

func TestEqualizeHist(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	copy(gray.Pix, []uint8{10, 10, 20, 30})

	EqualizeHist(gray)

	want := []uint8{0, 0, 128, 255}
	for i := range want {
		if gray.Pix[i] != want[i] {
			t.Errorf("Pix[%d] = %d, want %d", i, gray.Pix[i], want[i])
		}
	}
}

func TestEqualizeHist_Uniform(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range gray.Pix {
		gray.Pix[i] = 42
	}
	EqualizeHist(gray)
	for i, v := range gray.Pix {
		if v != 42 {
			t.Fatalf("Pix[%d] = %d; a single-valued image must be left unchanged", i, v)
		}
	}
}

func TestUprightPixels(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 3))
	copy(gray.Pix, []uint8{1, 2, 3, 4, 5, 6})

	got := uprightPixels(gray)
	want := []uint8{5, 6, 3, 4, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("uprightPixels = %v, want %v", got, want)
		}
	}
}

func TestToDetectorSpace(t *testing.T) {
	// A 10x10 box 5 rows below the top of a 100-row image sits 85 rows above
	// the bottom.
	r := toDetectorSpace(20, 5, 10, 10, 100)
	if r != (Rect{X: 20, Y: 85, Width: 10, Height: 10}) {
		t.Errorf("toDetectorSpace = %+v", r)
	}
}
