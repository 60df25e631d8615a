// Package imaging loads card images and prepares them for text recognition.
//
// The package covers the image side of the pipeline that precedes parsing:
//
//   - ImageCache: thread-safe cache of decoded images keyed by path
//   - Preprocess: upscale, grayscale, dark-background inversion, median
//     denoise and thresholding ahead of OCR
//   - ExpandBox / CropRegion: padded crops of detected text regions
//   - EncodeBase64: PNG encoding for tool results
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner.
// For regions, (X1, Y1) is inclusive and (X2, Y2) is exclusive.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Preprocess and the crop helpers
// never modify their input and can be called concurrently.
package imaging
