package ocr

import (
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/rotisserie/eris"

	"github.com/ironsheep/contact-extract-mcp/internal/contact"
	"github.com/ironsheep/contact-extract-mcp/internal/imaging"
)

// Mode selects how text is located on the card.
type Mode string

const (
	// ModeWords recognizes the whole image once and reports word boxes.
	ModeWords Mode = "words"

	// ModeRegions locates text lines, then recognizes each padded crop.
	ModeRegions Mode = "regions"
)

// Options configures a recognition run.
type Options struct {
	// Language is a Tesseract language code such as "eng" or "eng+hin".
	// The corresponding language data must be installed.
	Language string `yaml:"language" json:"language"`

	// Mode is ModeWords or ModeRegions.
	Mode Mode `yaml:"mode" json:"mode"`

	// MinConfidence drops boxes whose confidence (0 to 1) is lower.
	MinConfidence float64 `yaml:"min_confidence" json:"min_confidence"`

	// RegionPadding is the number of pixels added around each line box in
	// regions mode.
	RegionPadding int `yaml:"region_padding" json:"region_padding"`

	// TessdataPrefix overrides the directory holding *.traineddata files.
	TessdataPrefix string `yaml:"tessdata_prefix" json:"tessdata_prefix,omitempty"`
}

// DefaultOptions returns English words mode with a 6 pixel region pad and
// no confidence floor.
func DefaultOptions() Options {
	return Options{
		Language:      "eng",
		Mode:          ModeWords,
		MinConfidence: 0,
		RegionPadding: 6,
	}
}

// Validate reports the first invalid option.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Language) == "" {
		return eris.New("language must not be empty")
	}
	if o.Mode != ModeWords && o.Mode != ModeRegions {
		return eris.Errorf("unknown mode %q: want %q or %q", o.Mode, ModeWords, ModeRegions)
	}
	if o.MinConfidence < 0 || o.MinConfidence > 1 {
		return eris.Errorf("min_confidence %v outside [0, 1]", o.MinConfidence)
	}
	if o.RegionPadding < 0 {
		return eris.Errorf("region_padding %d must not be negative", o.RegionPadding)
	}
	return nil
}

// Recognize runs Tesseract over img and returns one DetectionRecord per
// recognized word (ModeWords) or text line (ModeRegions).
//
// Boxes are in img's pixel coordinates. Every record carries the raw text,
// its CleanText form, and a 0 to 1 confidence when Tesseract reported one.
//
// Returns an error if the options are invalid, the image cannot be handed
// to Tesseract, or the requested language data is missing.
func Recognize(img image.Image, opts Options) ([]contact.DetectionRecord, error) {
	if err := opts.Validate(); err != nil {
		return nil, eris.Wrap(err, "invalid recognizer options")
	}

	client, err := newClient(opts)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	data, err := imaging.EncodePNG(img)
	if err != nil {
		return nil, err
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return nil, eris.Wrap(err, "failed to set image")
	}

	if opts.Mode == ModeRegions {
		return recognizeRegions(client, img, opts)
	}
	return recognizeWords(client, opts)
}

func newClient(opts Options) (*gosseract.Client, error) {
	client := gosseract.NewClient()
	if opts.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(opts.TessdataPrefix); err != nil {
			client.Close()
			return nil, eris.Wrap(err, "failed to set tessdata path")
		}
	}
	if err := client.SetLanguage(strings.Split(opts.Language, "+")...); err != nil {
		client.Close()
		return nil, eris.Wrap(err, "failed to set language")
	}
	return client, nil
}

func recognizeWords(client *gosseract.Client, opts Options) ([]contact.DetectionRecord, error) {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, eris.Wrap(err, "failed to get word boxes")
	}

	records := make([]contact.DetectionRecord, 0, len(boxes))
	for _, box := range boxes {
		if strings.TrimSpace(box.Word) == "" {
			continue
		}
		conf := box.Confidence / 100.0
		if conf < opts.MinConfidence {
			continue
		}
		records = append(records, newRecord(box.Box, box.Word, &conf))
	}
	return records, nil
}

// recognizeRegions finds text lines on the full image, then recognizes each
// line again from a padded crop with single-block segmentation.
func recognizeRegions(client *gosseract.Client, img image.Image, opts Options) ([]contact.DetectionRecord, error) {
	lines, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, eris.Wrap(err, "failed to get line boxes")
	}

	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return nil, eris.Wrap(err, "failed to set page segmentation mode")
	}

	records := make([]contact.DetectionRecord, 0, len(lines))
	for _, line := range lines {
		if line.Confidence/100.0 < opts.MinConfidence {
			continue
		}

		region := imaging.ExpandBox(regionOf(line.Box), img.Bounds(), opts.RegionPadding)
		if region.Empty() {
			continue
		}
		crop, err := imaging.CropRegion(img, region)
		if err != nil {
			return nil, err
		}

		text, conf, err := recognizeCrop(client, crop)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to recognize region (%d,%d)-(%d,%d)",
				region.X1, region.Y1, region.X2, region.Y2)
		}
		records = append(records, newRecord(region.Rect(), text, conf))
	}
	return records, nil
}

// recognizeCrop returns the trimmed text of a crop and the mean confidence
// of its words. The confidence is nil when no word was scored.
func recognizeCrop(client *gosseract.Client, crop image.Image) (string, *float64, error) {
	data, err := imaging.EncodePNG(crop)
	if err != nil {
		return "", nil, err
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", nil, eris.Wrap(err, "failed to set image")
	}

	text, err := client.Text()
	if err != nil {
		return "", nil, eris.Wrap(err, "OCR failed")
	}

	words, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return strings.TrimSpace(text), nil, nil
	}

	var sum float64
	n := 0
	for _, w := range words {
		if w.Confidence < 0 {
			continue
		}
		sum += w.Confidence
		n++
	}
	if n == 0 {
		return strings.TrimSpace(text), nil, nil
	}
	mean := sum / float64(n) / 100.0
	return strings.TrimSpace(text), &mean, nil
}

func newRecord(r image.Rectangle, text string, conf *float64) contact.DetectionRecord {
	return contact.DetectionRecord{
		Box:        []int{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y},
		TextRaw:    text,
		TextClean:  CleanText(text),
		Confidence: conf,
	}
}

func regionOf(r image.Rectangle) imaging.Region {
	return imaging.Region{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// Info describes the Tesseract installation.
type Info struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Language  string `json:"language"`
	Error     string `json:"error,omitempty"`
}

// TesseractInfo reports the Tesseract version and whether the given
// language data can be loaded. It never fails; problems are described in
// Info.Error.
func TesseractInfo(opts Options) Info {
	info := Info{Language: opts.Language}

	client, err := newClient(opts)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	defer client.Close()

	info.Version = client.Version()

	// Recognizing a blank image forces Tesseract to initialize and load the
	// language data.
	blank := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range blank.Pix {
		blank.Pix[i] = 0xff
	}
	data, err := imaging.EncodePNG(blank)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	if err := client.SetImageFromBytes(data); err != nil {
		info.Error = eris.Wrap(err, "failed to set image").Error()
		return info
	}
	if _, err := client.Text(); err != nil {
		info.Error = eris.Wrap(err, "failed to initialize tesseract").Error()
		return info
	}

	info.Available = true
	return info
}
