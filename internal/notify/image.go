package notify

import (
	"image"
	"image/draw"

	"github.com/godbus/dbus/v5"
	"github.com/nfnt/resize"
)

// HintImageData is the hints key carrying inline image data.
const HintImageData = "image-data"

// ImageData is the structured image argument notification daemons expect in
// the image-data hint. Field order matches the wire format; godbus marshals
// the struct with signature (iiibiiay).
type ImageData struct {
	Width         int32
	Height        int32
	Stride        int32 // bytes per row
	HasAlpha      bool
	BitsPerSample int32
	Channels      int32
	Data          []byte
}

// Variant wraps the image structure for use as a hints value.
func (d ImageData) Variant() dbus.Variant {
	return dbus.MakeVariant(d)
}

// EncodeImage converts an icon to the 8-bit-per-channel RGBA layout daemons
// expect. The source image is never modified; conversion draws into a fresh
// buffer. When maxSize is non-zero, icons larger than maxSize in either
// dimension are thumbnailed first.
func EncodeImage(img image.Image, maxSize uint) ImageData {
	if maxSize > 0 {
		b := img.Bounds()
		if uint(b.Dx()) > maxSize || uint(b.Dy()) > maxSize {
			img = resize.Thumbnail(maxSize, maxSize, img, resize.Lanczos3)
		}
	}

	// Non-premultiplied RGBA, the layout GTK-based daemons decode.
	b := img.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	return ImageData{
		Width:         int32(rgba.Rect.Dx()),
		Height:        int32(rgba.Rect.Dy()),
		Stride:        int32(rgba.Stride),
		HasAlpha:      true,
		BitsPerSample: 8,
		Channels:      4,
		Data:          rgba.Pix,
	}
}
