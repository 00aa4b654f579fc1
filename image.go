package skipenv

import (
	"errors"
	"fmt"
)

const (
	redScale   = 0.55
	greenScale = -0.45

	// ProcessThreshold is the smallest normalized value that
	// survives ProcessImage; anything below it becomes 0.
	ProcessThreshold = 0.4
)

// Computed at run time so that it rounds like a float64
// multiplication rather than an exact constant product.
var greenBias = 0.495
var greenShift = 255 * greenBias

// ErrShape is returned when an image buffer does not match
// its declared dimensions or lacks required channels.
var ErrShape = errors.New("bad image shape")

// An Image is a row-major height x width x depth buffer.
//
// Channels are ordered R, G, B, and values are usually in
// the range [0, 255].
type Image struct {
	Width  int
	Height int
	Depth  int
	Data   []float64
}

// NewImageUint8 creates an Image from a raw 8-bit frame
// buffer, such as an RGB screenshot.
func NewImageUint8(width, height, depth int, buf []uint8) (*Image, error) {
	data := make([]float64, len(buf))
	for i, x := range buf {
		data[i] = float64(x)
	}
	img := &Image{Width: width, Height: height, Depth: depth, Data: data}
	if err := img.check(1); err != nil {
		return nil, err
	}
	return img, nil
}

// At returns the component at column x, row y and
// channel z.
func (i *Image) At(x, y, z int) float64 {
	return i.Data[(y*i.Width+x)*i.Depth+z]
}

func (i *Image) check(minDepth int) error {
	if i == nil {
		return fmt.Errorf("%w: nil image", ErrShape)
	}
	if i.Width <= 0 || i.Height <= 0 || i.Depth <= 0 {
		return fmt.Errorf("%w: dimensions %dx%dx%d", ErrShape, i.Width,
			i.Height, i.Depth)
	}
	if i.Depth < minDepth {
		return fmt.Errorf("%w: need %d channels but have %d", ErrShape,
			minDepth, i.Depth)
	}
	if len(i.Data) != i.Width*i.Height*i.Depth {
		return fmt.Errorf("%w: %d components for %dx%dx%d", ErrShape,
			len(i.Data), i.Width, i.Height, i.Depth)
	}
	return nil
}

// ProcessImage converts an RGB frame into a single-channel
// feature map.
//
// The red channel is dimmed and the green channel is
// inverted and brightened, so that green backgrounds fade
// out while red and grey foreground remains.
// The sum is scaled into roughly [0, 1] and values below
// ProcessThreshold are zeroed.
//
// The input must have at least two channels.
func ProcessImage(img *Image) (*Image, error) {
	if err := img.check(2); err != nil {
		return nil, err
	}
	res := &Image{
		Width:  img.Width,
		Height: img.Height,
		Depth:  1,
		Data:   make([]float64, img.Width*img.Height),
	}
	for j := range res.Data {
		pixel := img.Data[j*img.Depth:]
		// Explicit conversions prevent fused multiply-adds.
		red := float64(pixel[0] * redScale)
		green := float64(pixel[1]*greenScale) + greenShift
		value := (red + green) / 255
		if value < ProcessThreshold {
			value = 0
		}
		res.Data[j] = value
	}
	return res, nil
}
