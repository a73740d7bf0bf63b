// Package frame holds decoded video frames and the single-slot hand-off
// between the pipeline's producer threads and the UI.
package frame

import (
	"errors"
	"fmt"
	"image"

	"github.com/nfnt/resize"
)

// BytesPerPixel is the stride of a tightly packed RGBA pixel.
const BytesPerPixel = 4

// ErrSize is returned when the pixel buffer does not match the dimensions.
var ErrSize = errors.New("pixel buffer does not match frame dimensions")

// Frame is a decoded RGBA image. Treat it as immutable once built.
type Frame struct {
	Pixels []byte
	Width  uint32
	Height uint32
}

// New builds a frame, taking ownership of pixels.
func New(pixels []byte, width, height uint32) (Frame, error) {
	if width == 0 || height == 0 {
		return Frame{}, fmt.Errorf("%w: %dx%d", ErrSize, width, height)
	}
	want := uint64(width) * uint64(height) * BytesPerPixel
	if uint64(len(pixels)) != want {
		return Frame{}, fmt.Errorf("%w: got %d bytes, want %d for %dx%d",
			ErrSize, len(pixels), want, width, height)
	}
	return Frame{Pixels: pixels, Width: width, Height: height}, nil
}

// Len returns the size of the pixel buffer in bytes.
func (f Frame) Len() int { return len(f.Pixels) }

// Empty reports whether the frame carries no pixels.
func (f Frame) Empty() bool { return len(f.Pixels) == 0 }

// Clone returns a deep copy.
func (f Frame) Clone() Frame {
	if f.Pixels == nil {
		return f
	}
	pixels := make([]byte, len(f.Pixels))
	copy(pixels, f.Pixels)
	return Frame{Pixels: pixels, Width: f.Width, Height: f.Height}
}

// Image wraps the pixels as an RGBA image without copying.
func (f Frame) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pixels,
		Stride: int(f.Width) * BytesPerPixel,
		Rect:   image.Rect(0, 0, int(f.Width), int(f.Height)),
	}
}

// Fit returns an image scaled to fit within maxWidth x maxHeight while
// keeping the aspect ratio. Frames already small enough are returned as is.
func (f Frame) Fit(maxWidth, maxHeight uint) image.Image {
	img := f.Image()
	if f.Empty() || maxWidth == 0 || maxHeight == 0 {
		return img
	}
	if uint(f.Width) <= maxWidth && uint(f.Height) <= maxHeight {
		return img
	}
	return resize.Thumbnail(maxWidth, maxHeight, img, resize.Bilinear)
}
