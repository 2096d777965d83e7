package detect

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeCascade writes a pigo cascade with a single depth-1 tree whose two
// leaves both predict pred and whose rejection threshold is threshold.
func writeCascade(t *testing.T, pred, threshold float32) string {
	t.Helper()

	var data []byte
	data = append(data, make([]byte, 8)...)
	data = binary.LittleEndian.AppendUint32(data, 1) // tree depth
	data = binary.LittleEndian.AppendUint32(data, 1) // tree count
	data = append(data, 0, 0, 0, 0)                  // one split node comparing the window center with itself
	data = binary.LittleEndian.AppendUint32(data, math.Float32bits(pred))
	data = binary.LittleEndian.AppendUint32(data, math.Float32bits(pred))
	data = binary.LittleEndian.AppendUint32(data, math.Float32bits(threshold))

	path := filepath.Join(t.TempDir(), "test.cascade")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func uniformImage(w, h int, v uint8) *Image {
	img := NewImage(w, h, 3)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestNew(t *testing.T) {
	d, err := New("pigo")
	if err != nil {
		t.Fatalf("New(pigo) failed: %v", err)
	}
	if _, ok := d.(*PigoDetector); !ok {
		t.Errorf("New(pigo) = %T", d)
	}

	if _, err := New("haar"); !errors.Is(err, ErrUnknownDetector) {
		t.Errorf("New(haar) err = %v, want ErrUnknownDetector", err)
	}
}

func TestNew_OpenCVWithoutTag(t *testing.T) {
	for _, name := range Names() {
		if name == "opencv" {
			t.Skip("built with the opencv tag")
		}
	}

	_, err := New("opencv")
	if !errors.Is(err, ErrUnknownDetector) {
		t.Fatalf("err = %v, want ErrUnknownDetector", err)
	}
	if !strings.Contains(err.Error(), "-tags opencv") {
		t.Errorf("err = %v, should mention the build tag", err)
	}
}

func TestPigo_LoadClassifierErrors(t *testing.T) {
	dir := t.TempDir()
	short := filepath.Join(dir, "short.cascade")
	if err := os.WriteFile(short, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}

	// Header promises five depth-2 trees but the body is missing.
	truncated := filepath.Join(dir, "truncated.cascade")
	var data []byte
	data = append(data, make([]byte, 8)...)
	data = binary.LittleEndian.AppendUint32(data, 2)
	data = binary.LittleEndian.AppendUint32(data, 5)
	if err := os.WriteFile(truncated, data, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.cascade")},
		{"too short", short},
		{"truncated trees", truncated},
	}

	d := &PigoDetector{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := d.LoadClassifier(tt.path)
			if !errors.Is(err, ErrClassifierLoad) {
				t.Errorf("err = %v, want ErrClassifierLoad", err)
			}
			if c != nil {
				t.Error("expected no classifier on failure")
			}
		})
	}
}

func TestPigo_DetectRejectingCascade(t *testing.T) {
	d := &PigoDetector{}
	c, err := d.LoadClassifier(writeCascade(t, 0, 1))
	if err != nil {
		t.Fatalf("LoadClassifier failed: %v", err)
	}
	defer c.Close()

	res, err := d.Detect(uniformImage(64, 64, 90), c, DefaultParams())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(res.Rects) != 0 {
		t.Errorf("got %d rects from a cascade that rejects everything", len(res.Rects))
	}
	if res.Scale != 1 {
		t.Errorf("Scale = %v, want 1", res.Scale)
	}
}

func TestPigo_DetectAcceptingCascade(t *testing.T) {
	d := &PigoDetector{}
	c, err := d.LoadClassifier(writeCascade(t, 10, -100))
	if err != nil {
		t.Fatalf("LoadClassifier failed: %v", err)
	}
	defer c.Close()

	p := DefaultParams()
	p.Downscale = 2
	res, err := d.Detect(uniformImage(120, 120, 90), c, p)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if res.Scale != 0.5 {
		t.Errorf("Scale = %v, want 0.5", res.Scale)
	}
	if len(res.Rects) == 0 {
		t.Fatal("expected detections from a cascade that accepts everything")
	}
	for _, r := range res.Rects {
		if r.Width != r.Height {
			t.Errorf("pigo rects are square, got %+v", r)
		}
		if r.Width < p.MinSize {
			t.Errorf("rect %+v smaller than MinSize %d", r, p.MinSize)
		}
	}

	p.MinQuality = math.MaxFloat32
	res, err = d.Detect(uniformImage(120, 120, 90), c, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Rects) != 0 {
		t.Errorf("MinQuality should drop every detection, got %d", len(res.Rects))
	}
}

func TestPigo_DetectWindowLargerThanImage(t *testing.T) {
	d := &PigoDetector{}
	c, err := d.LoadClassifier(writeCascade(t, 10, -100))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	res, err := d.Detect(uniformImage(20, 20, 90), c, DefaultParams())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if res.Rects == nil || len(res.Rects) != 0 {
		t.Errorf("Rects = %v, want empty non-nil", res.Rects)
	}
}

func TestPigo_DetectRequiresOwnClassifier(t *testing.T) {
	d := &PigoDetector{}
	if _, err := d.Detect(uniformImage(8, 8, 0), nil, DefaultParams()); err == nil {
		t.Error("expected error for a foreign classifier")
	}

	c, err := d.LoadClassifier(writeCascade(t, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	c.Close()
	if _, err := d.Detect(uniformImage(8, 8, 0), c, DefaultParams()); err == nil {
		t.Error("expected error after Close")
	}

	img := uniformImage(8, 8, 0)
	img.Release()
	c, _ = d.LoadClassifier(writeCascade(t, 0, 1))
	if _, err := d.Detect(img, c, DefaultParams()); err == nil {
		t.Error("expected error for a released image")
	}
}
