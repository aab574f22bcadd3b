package kantera

import "fmt"

// Buffer is a contiguous store of Width*Height*FrameNum values ordered
// frame-major, then row-major, then column.
type Buffer[T any] struct {
	Width     int
	Height    int
	FrameNum  int
	Framerate int
	Pix       []T
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer[T any](width, height, frames, framerate int) (*Buffer[T], error) {
	if width < 0 || height < 0 || frames < 0 || framerate < 1 {
		return nil, ErrInvalidDimensions
	}
	return &Buffer[T]{
		Width:     width,
		Height:    height,
		FrameNum:  frames,
		Framerate: framerate,
		Pix:       make([]T, width*height*frames),
	}, nil
}

// BufferFrom wraps pix after checking its length.
func BufferFrom[T any](width, height, frames, framerate int, pix []T) (*Buffer[T], error) {
	if width < 0 || height < 0 || frames < 0 || framerate < 1 {
		return nil, ErrInvalidDimensions
	}
	if len(pix) != width*height*frames {
		return nil, fmt.Errorf("%w: got %d values for %dx%dx%d", ErrDataSize, len(pix), width, height, frames)
	}
	return &Buffer[T]{Width: width, Height: height, FrameNum: frames, Framerate: framerate, Pix: pix}, nil
}

// FrameSize returns the number of values per frame.
func (b *Buffer[T]) FrameSize() int { return b.Width * b.Height }

// Frame returns the values of frame f. The slice aliases the buffer.
func (b *Buffer[T]) Frame(f int) []T {
	n := b.FrameSize()
	return b.Pix[f*n : (f+1)*n]
}

// At returns the value at frame f, row y, column x.
func (b *Buffer[T]) At(f, x, y int) T {
	return b.Pix[(f*b.Height+y)*b.Width+x]
}

// Duration returns the playback length in seconds.
func (b *Buffer[T]) Duration() float64 {
	return float64(b.FrameNum) / float64(b.Framerate)
}

// FrameImage copies frame f into a new Image.
func (b *Buffer[T]) FrameImage(f int) *Image[T] {
	pix := make([]T, b.FrameSize())
	copy(pix, b.Frame(f))
	return &Image[T]{Width: b.Width, Height: b.Height, Pix: pix}
}
