package proto

import (
	"encoding/binary"

	"github.com/aspia-go/core/pkg/desktop"
)

// VideoEncoding identifies the compression scheme used for a VideoPacket's
// data payload.
type VideoEncoding uint8

const (
	VideoEncodingUnknown VideoEncoding = iota
	// VideoEncodingZstd is the only encoding pkg/codec implements.
	VideoEncodingZstd
)

const (
	formatDescriptorSize = 18 // width(4) height(4) bpp(1) redMax(2) redShift(1) greenMax(2) greenShift(1) blueMax(2) blueShift(1)
	rectSize             = 16 // x(4) y(4) width(4) height(4)
)

// VideoPacket is the flat, hot-path wire message pkg/codec produces on
// every captured frame: an encoding tag, an optional format descriptor
// (present on the first frame or whenever the pixel format changes), an
// ordered list of dirty rectangles, and the opaque compressed data
// payload.
//
// Data, once decompressed, is the byte-wise concatenation, in Rects
// iteration order, of each rectangle's pixels in the target pixel format
// with a tightly packed stride.
type VideoPacket struct {
	Encoding VideoEncoding
	Format   *desktop.PixelFormat // nil when omitted
	Width    int32                // only meaningful when Format != nil
	Height   int32
	Rects    []desktop.Rect
	Data     []byte
}

// Encode serialises the packet to its flat binary wire layout.
func (p VideoPacket) Encode() []byte {
	size := 2 // encoding(1) + hasFormat(1)
	if p.Format != nil {
		size += formatDescriptorSize
	}
	size += 4 // rect count
	size += len(p.Rects) * rectSize
	size += 4 // data length
	size += len(p.Data)

	buf := make([]byte, size)
	off := 0
	buf[off] = byte(p.Encoding)
	off++

	if p.Format != nil {
		buf[off] = 1
		off++
		binary.LittleEndian.PutUint32(buf[off:], uint32(p.Width))
		off += 4
		binary.LittleEndian.PutUint32(buf[off:], uint32(p.Height))
		off += 4
		buf[off] = p.Format.BitsPerPixel
		off++
		binary.LittleEndian.PutUint16(buf[off:], p.Format.RedMax)
		off += 2
		buf[off] = p.Format.RedShift
		off++
		binary.LittleEndian.PutUint16(buf[off:], p.Format.GreenMax)
		off += 2
		buf[off] = p.Format.GreenShift
		off++
		binary.LittleEndian.PutUint16(buf[off:], p.Format.BlueMax)
		off += 2
		buf[off] = p.Format.BlueShift
		off++
	} else {
		buf[off] = 0
		off++
	}

	binary.LittleEndian.PutUint32(buf[off:], uint32(len(p.Rects)))
	off += 4
	for _, r := range p.Rects {
		binary.LittleEndian.PutUint32(buf[off:], uint32(r.X))
		off += 4
		binary.LittleEndian.PutUint32(buf[off:], uint32(r.Y))
		off += 4
		binary.LittleEndian.PutUint32(buf[off:], uint32(r.Width))
		off += 4
		binary.LittleEndian.PutUint32(buf[off:], uint32(r.Height))
		off += 4
	}

	binary.LittleEndian.PutUint32(buf[off:], uint32(len(p.Data)))
	off += 4
	copy(buf[off:], p.Data)

	return buf
}

// DecodeVideoPacket parses a VideoPacket from its flat binary wire layout.
func DecodeVideoPacket(data []byte) (VideoPacket, error) {
	var p VideoPacket
	if len(data) < 2 {
		return p, ErrTruncated
	}

	p.Encoding = VideoEncoding(data[0])
	hasFormat := data[1]
	off := 2

	if hasFormat != 0 {
		if len(data) < off+formatDescriptorSize {
			return p, ErrTruncated
		}
		var f desktop.PixelFormat
		p.Width = int32(binary.LittleEndian.Uint32(data[off:]))
		off += 4
		p.Height = int32(binary.LittleEndian.Uint32(data[off:]))
		off += 4
		f.BitsPerPixel = data[off]
		off++
		f.RedMax = binary.LittleEndian.Uint16(data[off:])
		off += 2
		f.RedShift = data[off]
		off++
		f.GreenMax = binary.LittleEndian.Uint16(data[off:])
		off += 2
		f.GreenShift = data[off]
		off++
		f.BlueMax = binary.LittleEndian.Uint16(data[off:])
		off += 2
		f.BlueShift = data[off]
		off++
		p.Format = &f
	}

	if len(data) < off+4 {
		return p, ErrTruncated
	}
	rectCount := int(binary.LittleEndian.Uint32(data[off:]))
	off += 4

	if rectCount > 0 {
		need := rectCount * rectSize
		if len(data) < off+need {
			return p, ErrMalformed
		}
		p.Rects = make([]desktop.Rect, rectCount)
		for i := 0; i < rectCount; i++ {
			p.Rects[i].X = int32(binary.LittleEndian.Uint32(data[off:]))
			off += 4
			p.Rects[i].Y = int32(binary.LittleEndian.Uint32(data[off:]))
			off += 4
			p.Rects[i].Width = int32(binary.LittleEndian.Uint32(data[off:]))
			off += 4
			p.Rects[i].Height = int32(binary.LittleEndian.Uint32(data[off:]))
			off += 4
		}
	}

	if len(data) < off+4 {
		return p, ErrTruncated
	}
	dataLen := int(binary.LittleEndian.Uint32(data[off:]))
	off += 4
	if len(data) < off+dataLen {
		return p, ErrMalformed
	}
	p.Data = append([]byte(nil), data[off:off+dataLen]...)

	return p, nil
}
