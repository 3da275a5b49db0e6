package ocr

import (
	"bytes"
	"image"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"
)

// Preprocess converts an image to grayscale before OCR, which tends to help
// text detection on photographed prints. If the bytes cannot be decoded or
// re-encoded the original data is returned untouched, so a preprocessing
// failure never loses the source image.
func Preprocess(data []byte) []byte {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return data
	}
	return buf.Bytes()
}
