package codec

import (
	"encoding/binary"

	"github.com/aspia-go/core/pkg/desktop"
)

// PixelTranslator converts one row of width pixels from a source pixel
// format to a destination pixel format. srcRow and dstRow are tightly
// packed (no padding is assumed by the translator itself — callers slice
// each row out of a strided frame before calling Translate).
type PixelTranslator interface {
	Translate(srcRow, dstRow []byte, width int)
}

// NewTranslator returns a PixelTranslator for the given (src, dst) pixel
// format pair, or ErrUnsupportedPixelFormat if either format lacks a 2- or
// 4-byte-per-pixel representation this package knows how to read/write.
func NewTranslator(src, dst desktop.PixelFormat) (PixelTranslator, error) {
	srcBpp := src.BytesPerPixel()
	dstBpp := dst.BytesPerPixel()
	if (srcBpp != 2 && srcBpp != 4) || (dstBpp != 2 && dstBpp != 4) {
		return nil, ErrUnsupportedPixelFormat
	}
	if src == dst {
		return identityTranslator{bpp: srcBpp}, nil
	}
	return &channelTranslator{src: src, dst: dst}, nil
}

// identityTranslator is used when source and destination formats are
// byte-identical: a straight row copy.
type identityTranslator struct {
	bpp int
}

func (t identityTranslator) Translate(srcRow, dstRow []byte, width int) {
	copy(dstRow[:width*t.bpp], srcRow[:width*t.bpp])
}

// channelTranslator re-derives each pixel's R/G/B channels from the source
// format's shift/max fields and repacks them using the destination
// format's shift/max fields, scaling each channel to the destination's bit
// depth.
type channelTranslator struct {
	src, dst desktop.PixelFormat
}

func (t *channelTranslator) Translate(srcRow, dstRow []byte, width int) {
	srcBpp := t.src.BytesPerPixel()
	dstBpp := t.dst.BytesPerPixel()

	for x := 0; x < width; x++ {
		pixel := readPixel(srcRow[x*srcBpp : x*srcBpp+srcBpp])

		r := scaleChannel((pixel>>t.src.RedShift)&uint32(t.src.RedMax), t.src.RedMax, t.dst.RedMax)
		g := scaleChannel((pixel>>t.src.GreenShift)&uint32(t.src.GreenMax), t.src.GreenMax, t.dst.GreenMax)
		b := scaleChannel((pixel>>t.src.BlueShift)&uint32(t.src.BlueMax), t.src.BlueMax, t.dst.BlueMax)

		out := (r << t.dst.RedShift) | (g << t.dst.GreenShift) | (b << t.dst.BlueShift)
		writePixel(dstRow[x*dstBpp:x*dstBpp+dstBpp], out)
	}
}

func scaleChannel(v uint32, srcMax, dstMax uint16) uint32 {
	if srcMax == 0 {
		return 0
	}
	return v * uint32(dstMax) / uint32(srcMax)
}

func readPixel(b []byte) uint32 {
	switch len(b) {
	case 2:
		return uint32(binary.LittleEndian.Uint16(b))
	default:
		return binary.LittleEndian.Uint32(b)
	}
}

func writePixel(b []byte, v uint32) {
	switch len(b) {
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	default:
		binary.LittleEndian.PutUint32(b, v)
	}
}
