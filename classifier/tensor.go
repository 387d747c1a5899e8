package classifier

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
)

const (
	// FrameSize is the only geometry the model accepts (224x224 RGB).
	FrameSize = 224
	// Channels per pixel (RGB).
	Channels = 3
	// TensorLen is the flattened length of one input tensor [1, 224, 224, 3].
	TensorLen = 1 * FrameSize * FrameSize * Channels
)

// FrameToTensor builds the model input tensor from one frame.
// The frame must be exactly 224x224; each 8-bit channel value is mapped
// to [-1, 1] via value/127.5 - 1. Layout is HWC, row-major, with a
// leading batch dimension of 1.
func FrameToTensor(img image.Image) ([]float32, error) {
	bounds := img.Bounds()
	if bounds.Dx() != FrameSize || bounds.Dy() != FrameSize {
		return nil, fmt.Errorf("frame must be %dx%d, got %dx%d", FrameSize, FrameSize, bounds.Dx(), bounds.Dy())
	}

	data := make([]float32, TensorLen)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA() yields 16-bit values; shift back to 8-bit
			data[i] = float32(r>>8)/127.5 - 1
			data[i+1] = float32(g>>8)/127.5 - 1
			data[i+2] = float32(b>>8)/127.5 - 1
			i += Channels
		}
	}

	return data, nil
}

// AdaptFrame brings a device-resolution frame down (or up) to the model
// geometry. Frames that are already 224x224 pass through untouched.
func AdaptFrame(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() == FrameSize && bounds.Dy() == FrameSize {
		return img
	}
	return resize.Resize(FrameSize, FrameSize, img, resize.Lanczos3)
}
