package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"io"

	"golang.org/x/image/draw"
)

// Encoder writes a raster in a lossy format at quality in [1, 100].
type Encoder interface {
	Encode(w io.Writer, img image.Image, quality int) error
	MimeType() string
}

type jpegEncoder struct{}

func (jpegEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

func (jpegEncoder) MimeType() string {
	return "image/jpeg"
}

// JPEGEncoder is the default encoder.
func JPEGEncoder() Encoder {
	return jpegEncoder{}
}

// DataURI returns the base64 data URI for an encoded payload.
func DataURI(mimeType string, data []byte) string {
	return dataURIPrefix(mimeType) + base64.StdEncoding.EncodeToString(data)
}

// ApproxSizeKB estimates the payload size from the length of its data URI.
// Base64 inflates by ~4/3, hence the 0.75 factor.
func ApproxSizeKB(dataURILength int) float64 {
	return float64(dataURILength) * 0.75 / 1024
}

func dataURIPrefix(mimeType string) string {
	return "data:" + mimeType + ";base64,"
}

func dataURILength(mimeType string, payloadLen int) int {
	return len(dataURIPrefix(mimeType)) + base64.StdEncoding.EncodedLen(payloadLen)
}

// resample draws src onto a white canvas of width x height. Transparent
// areas become white since the target format has no alpha.
func resample(scaler draw.Scaler, src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	b := src.Bounds()
	if b.Dx() == width && b.Dy() == height {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
		return dst
	}

	scaler.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func encodeRaster(enc Encoder, img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := enc.Encode(&buf, img, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
