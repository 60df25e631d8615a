package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// darkLightness is the CIE L* (0-1) below which a card background is
// treated as dark.
const darkLightness = 0.5

// PreprocessOptions selects the cleanup steps applied before recognition.
type PreprocessOptions struct {
	// Grayscale drops color information.
	Grayscale bool `yaml:"gray" json:"gray"`

	// InvertDark inverts cards printed light-on-dark so text is dark on light.
	InvertDark bool `yaml:"invert_dark" json:"invert_dark"`

	// Denoise applies a median filter of DenoiseRadius pixels.
	Denoise       bool    `yaml:"denoise" json:"denoise"`
	DenoiseRadius float64 `yaml:"denoise_radius" json:"denoise_radius"`

	// Threshold binarizes the image at its mean luminance.
	Threshold bool `yaml:"threshold" json:"threshold"`

	// MinWidth upscales narrower images to this width, keeping the aspect
	// ratio. Zero disables upscaling.
	MinWidth int `yaml:"min_width" json:"min_width"`
}

// DefaultPreprocessOptions mirrors the defaults of the recognition pipeline:
// grayscale and denoise on, threshold off.
func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{
		Grayscale:     true,
		InvertDark:    true,
		Denoise:       true,
		DenoiseRadius: 1,
		Threshold:     false,
		MinWidth:      0,
	}
}

// Preprocess prepares a card image for OCR. The input is not modified.
//
// Steps run in a fixed order: upscale, grayscale, invert dark backgrounds,
// median denoise, threshold. Each is skipped when disabled.
func Preprocess(img image.Image, opts PreprocessOptions) image.Image {
	out := img

	if opts.MinWidth > 0 && out.Bounds().Dx() > 0 && out.Bounds().Dx() < opts.MinWidth {
		out = imaging.Resize(out, opts.MinWidth, 0, imaging.Lanczos)
	}

	if opts.Grayscale {
		out = imaging.Grayscale(out)
	}

	if opts.InvertDark && IsDarkBackground(out) {
		out = imaging.Invert(out)
	}

	if opts.Denoise && opts.DenoiseRadius > 0 {
		out = effect.Median(out, opts.DenoiseRadius)
	}

	if opts.Threshold {
		out = segment.Threshold(out, MeanLuminance(out))
	}

	return out
}

// IsDarkBackground reports whether the border of an image is dark.
//
// The outermost row and column of pixels approximate the card stock. Their
// average CIE L* lightness is compared against darkLightness.
func IsDarkBackground(img image.Image) bool {
	b := img.Bounds()
	if b.Empty() {
		return false
	}

	var sum float64
	n := 0
	sample := func(x, y int) {
		c, ok := colorful.MakeColor(img.At(x, y))
		if !ok {
			return
		}
		l, _, _ := c.Lab()
		sum += l
		n++
	}

	for x := b.Min.X; x < b.Max.X; x++ {
		sample(x, b.Min.Y)
		sample(x, b.Max.Y-1)
	}
	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		sample(b.Min.X, y)
		sample(b.Max.X-1, y)
	}

	if n == 0 {
		return false
	}
	return sum/float64(n) < darkLightness
}

// MeanLuminance returns the average 8-bit gray level of an image.
func MeanLuminance(img image.Image) uint8 {
	b := img.Bounds()
	if b.Empty() {
		return 0
	}

	var sum uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			sum += uint64(g.Y)
		}
	}
	return uint8(sum / uint64(b.Dx()*b.Dy()))
}
