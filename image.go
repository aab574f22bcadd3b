package kantera

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Common errors for containers.
var (
	// ErrInvalidDimensions is returned when a width, height or count is negative.
	ErrInvalidDimensions = errors.New("kantera: invalid dimensions")

	// ErrDataSize is returned when a backing slice does not match the dimensions.
	ErrDataSize = errors.New("kantera: data size does not match dimensions")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("kantera: empty data")
)

// Image is a row-major 2D store of T. Images are shared by reference
// between render nodes and must not be modified once in a tree.
type Image[T any] struct {
	Width  int
	Height int
	Pix    []T
}

// NewImage allocates a zeroed image.
func NewImage[T any](width, height int) (*Image[T], error) {
	if width < 0 || height < 0 {
		return nil, ErrInvalidDimensions
	}
	return &Image[T]{Width: width, Height: height, Pix: make([]T, width*height)}, nil
}

// ImageFrom wraps pix, which must hold exactly width*height values.
func ImageFrom[T any](width, height int, pix []T) (*Image[T], error) {
	if width < 0 || height < 0 {
		return nil, ErrInvalidDimensions
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("%w: got %d values for %dx%d", ErrDataSize, len(pix), width, height)
	}
	return &Image[T]{Width: width, Height: height, Pix: pix}, nil
}

// At returns the pixel at (x, y). The coordinates must be in bounds.
func (m *Image[T]) At(x, y int) T { return m.Pix[y*m.Width+x] }

// Set stores a pixel. The coordinates must be in bounds.
func (m *Image[T]) Set(x, y int, v T) { m.Pix[y*m.Width+x] = v }

// In reports whether (x, y) is inside the image.
func (m *Image[T]) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// FromStdImage converts any image.Image to a straight-alpha Image[Rgba].
func FromStdImage(src image.Image) *Image[Rgba] {
	b := src.Bounds()
	dst := &Image[Rgba]{Width: b.Dx(), Height: b.Dy(), Pix: make([]Rgba, b.Dx()*b.Dy())}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[y*dst.Width+x] = FromColor(src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

// ToStdImage converts an Image[Rgba] to an 8-bit image.NRGBA, clamping
// every channel.
func ToStdImage(src *Image[Rgba]) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, src.Width, src.Height))
	for i, p := range src.Pix {
		c := p.Color().(color.NRGBA)
		dst.Pix[i*4+0] = c.R
		dst.Pix[i*4+1] = c.G
		dst.Pix[i*4+2] = c.B
		dst.Pix[i*4+3] = c.A
	}
	return dst
}

// LoadImage decodes an image file. PNG, JPEG, GIF, BMP, TIFF and WebP are
// supported.
func LoadImage(path string) (*Image[Rgba], error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("kantera: open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeImage(f)
}

// LoadImageFromBytes decodes an in-memory image, auto-detecting the format.
func LoadImageFromBytes(data []byte) (*Image[Rgba], error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return DecodeImage(bytes.NewReader(data))
}

// DecodeImage decodes an image from r, auto-detecting the format.
func DecodeImage(r io.Reader) (*Image[Rgba], error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("kantera: decode image: %w", err)
	}
	Logger().Debug("image decoded", "format", format, "bounds", img.Bounds())
	return FromStdImage(img), nil
}

// ResizeImage rescales an image with Catmull-Rom resampling.
func ResizeImage(src *Image[Rgba], width, height int) (*Image[Rgba], error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), ToStdImage(src), image.Rect(0, 0, src.Width, src.Height), draw.Src, nil)
	return FromStdImage(dst), nil
}
