package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	// Декодеры форматов, которые принимает форма загрузки
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrEmptyImage     = errors.New("image file is empty")
	ErrZeroDimensions = errors.New("image has zero width or height")
)

// DecodeError means one input file could not be interpreted as an image.
// It is scoped to that file only.
type DecodeError struct {
	Filename string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("decode image: %v", e.Err)
	}
	return fmt.Sprintf("decode image %q: %v", e.Filename, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode reads r fully and decodes it into a raster.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("read: %w", err)}
	}
	if len(data) == 0 {
		return nil, &DecodeError{Err: ErrEmptyImage}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, &DecodeError{Err: ErrZeroDimensions}
	}

	return img, nil
}
