// Package syntheticcapture provides a synthetic capture.Capturer that
// paints a moving bar across an in-memory frame, standing in for a real
// platform screen-capture backend in the demo binaries (pkg/capture's
// Capturer collaborator is otherwise unimplemented here by design).
package syntheticcapture

import (
	"github.com/aspia-go/core/pkg/desktop"
)

// Capturer paints a horizontally sweeping bar over a solid background,
// advancing one frame per CaptureFrame call.
type Capturer struct {
	width, height int32
	format        desktop.PixelFormat
	tick          int32
}

// New builds a Capturer producing width x height frames in format.
func New(width, height int32, format desktop.PixelFormat) *Capturer {
	return &Capturer{width: width, height: height, format: format}
}

// CaptureFrame renders the next animation frame. The returned frame's
// Dirty region is left empty, matching capture.Capturer's contract.
func (c *Capturer) CaptureFrame() (*desktop.Frame, error) {
	frame := desktop.NewFrame(c.width, c.height, c.format)
	bpp := c.format.BytesPerPixel()
	barX := c.tick % c.width

	for y := int32(0); y < c.height; y++ {
		rowStart := int(y) * int(frame.Stride)
		for x := int32(0); x < c.width; x++ {
			px := frame.Data[rowStart+int(x)*bpp : rowStart+int(x)*bpp+bpp]
			if x >= barX && x < barX+8 {
				fillPixel(px, 0xff, 0xff, 0xff)
			} else {
				fillPixel(px, 0x20, 0x40, 0x80)
			}
		}
	}

	c.tick++
	return frame, nil
}

// Close releases no resources; synthetic frames require none.
func (c *Capturer) Close() error { return nil }

func fillPixel(px []byte, r, g, b byte) {
	switch len(px) {
	case 4:
		// BGRA order, matching desktop.PixelFormatBGRA32.
		px[0], px[1], px[2], px[3] = b, g, r, 0xff
	case 2:
		// RGB565 packed into a little-endian uint16.
		v := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
		px[0] = byte(v)
		px[1] = byte(v >> 8)
	}
}
