package imaging

import (
	"encoding/base64"
	"image"
	"image/color"
	"testing"
)

func TestExpandBox(t *testing.T) {
	bounds := image.Rect(0, 0, 200, 100)

	tests := []struct {
		name string
		in   Region
		pad  int
		want Region
	}{
		{"interior", Region{50, 40, 100, 60}, 6, Region{44, 34, 106, 66}},
		{"clamped top-left", Region{2, 3, 40, 20}, 6, Region{0, 0, 46, 26}},
		{"clamped bottom-right", Region{180, 90, 198, 99}, 6, Region{174, 84, 200, 100}},
		{"zero pad", Region{10, 10, 20, 20}, 0, Region{10, 10, 20, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandBox(tt.in, bounds, tt.pad)
			if got != tt.want {
				t.Errorf("ExpandBox(%v, %d): got %v, want %v", tt.in, tt.pad, got, tt.want)
			}
		})
	}
}

func TestCropRegion(t *testing.T) {
	img := createCardImage(120, 80, color.White, color.Black)

	cropped, err := CropRegion(img, Region{10, 20, 60, 50})
	if err != nil {
		t.Fatalf("CropRegion failed: %v", err)
	}

	b := cropped.Bounds()
	if b.Min.X != 0 || b.Min.Y != 0 {
		t.Errorf("crop origin: got %v, want (0,0)", b.Min)
	}
	if b.Dx() != 50 || b.Dy() != 30 {
		t.Errorf("crop size: got %dx%d, want 50x30", b.Dx(), b.Dy())
	}
}

func TestCropRegion_Invalid(t *testing.T) {
	img := createInMemoryImage(50, 50, color.White)

	if _, err := CropRegion(img, Region{30, 10, 20, 40}); err == nil {
		t.Error("CropRegion should fail when x1 >= x2")
	}
	if _, err := CropRegion(img, Region{0, 0, 60, 40}); err == nil {
		t.Error("CropRegion should fail outside image bounds")
	}
}

func TestEncodeBase64(t *testing.T) {
	img := createInMemoryImage(40, 30, color.White)

	enc, err := EncodeBase64(img)
	if err != nil {
		t.Fatalf("EncodeBase64 failed: %v", err)
	}
	if enc.Width != 40 || enc.Height != 30 {
		t.Errorf("dimensions: got %dx%d, want 40x30", enc.Width, enc.Height)
	}
	if enc.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", enc.MimeType)
	}
	if _, err := base64.StdEncoding.DecodeString(enc.ImageBase64); err != nil {
		t.Errorf("failed to decode base64: %v", err)
	}
}
