package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/rotisserie/eris"
)

// Region is a rectangle in pixel coordinates. (X1, Y1) is inclusive and
// (X2, Y2) is exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Empty reports whether the region contains no pixels.
func (r Region) Empty() bool {
	return r.X1 >= r.X2 || r.Y1 >= r.Y2
}

// ExpandBox grows a region by pad pixels on every side and clamps it to
// bounds. Recognizers read text more reliably when glyphs are not touching
// the crop edge.
func ExpandBox(r Region, bounds image.Rectangle, pad int) Region {
	out := Region{
		X1: r.X1 - pad,
		Y1: r.Y1 - pad,
		X2: r.X2 + pad,
		Y2: r.Y2 + pad,
	}
	if out.X1 < bounds.Min.X {
		out.X1 = bounds.Min.X
	}
	if out.Y1 < bounds.Min.Y {
		out.Y1 = bounds.Min.Y
	}
	if out.X2 > bounds.Max.X {
		out.X2 = bounds.Max.X
	}
	if out.Y2 > bounds.Max.Y {
		out.Y2 = bounds.Max.Y
	}
	return out
}

// CropRegion extracts a region from an image. The returned image has its
// origin at (0, 0).
func CropRegion(img image.Image, r Region) (image.Image, error) {
	bounds := img.Bounds()
	if r.Empty() {
		return nil, eris.Errorf("invalid crop region (%d,%d)-(%d,%d): x1 must be < x2, y1 must be < y2",
			r.X1, r.Y1, r.X2, r.Y2)
	}
	if !r.Rect().In(bounds) {
		return nil, eris.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	return imaging.Crop(img, r.Rect()), nil
}

// EncodedImage is an image serialized for transport in a tool result.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG returns the PNG bytes of an image.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, eris.Wrap(err, "failed to encode image")
	}
	return buf.Bytes(), nil
}

// EncodeBase64 encodes an image as a base64 PNG.
func EncodeBase64(img image.Image) (*EncodedImage, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return nil, err
	}
	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    "image/png",
	}, nil
}
