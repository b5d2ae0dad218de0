package codec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pion/logging"

	"github.com/aspia-go/core/pkg/desktop"
	"github.com/aspia-go/core/pkg/proto"
)

// VideoDecoderZstd reverses VideoEncoderZstd: it decompresses a packet's
// data payload and writes the translated pixels into the matching
// rectangles of a destination frame, in the same rectangle order the
// encoder used.
type VideoDecoderZstd struct {
	stream *zstd.Decoder
	log    logging.LeveledLogger
}

// NewVideoDecoderZstd builds a decoder with its own long-lived zstd
// stream, reset before each packet. loggerFactory may be nil, in which
// case decompression errors are only ever returned, never logged.
func NewVideoDecoderZstd(loggerFactory logging.LoggerFactory) (*VideoDecoderZstd, error) {
	stream, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}

	var log logging.LeveledLogger
	if loggerFactory != nil {
		log = loggerFactory.NewLogger("codec")
	}

	return &VideoDecoderZstd{stream: stream, log: log}, nil
}

// DecodeInto decompresses packet.Data and copies the translated pixels
// into frame at each of packet.Rects, in iteration order. frame must
// already be sized to packet.Width x packet.Height with frame.Format
// matching the format the packet's data was encoded in (the caller is
// responsible for (re)allocating frame on a format-descriptor packet).
func (d *VideoDecoderZstd) DecodeInto(packet proto.VideoPacket, frame *desktop.Frame) error {
	decompressed, err := d.decompress(packet.Data)
	if err != nil {
		return err
	}

	bpp := frame.Format.BytesPerPixel()
	pos := 0
	for _, r := range packet.Rects {
		dstRows := frame.RectData(r)
		rowBytes := int(r.Width) * bpp
		for _, dstRow := range dstRows {
			copy(dstRow, decompressed[pos:pos+rowBytes])
			pos += rowBytes
		}
	}

	return nil
}

func (d *VideoDecoderZstd) decompress(data []byte) ([]byte, error) {
	if err := d.stream.Reset(bytes.NewReader(data)); err != nil {
		if d.log != nil {
			d.log.Warnf("decompression stream reset failed: %v", err)
		}
		return nil, ErrDecompressionFailed
	}
	out, err := io.ReadAll(d.stream)
	if err != nil {
		if d.log != nil {
			d.log.Warnf("decompression failed: %v", err)
		}
		return nil, ErrDecompressionFailed
	}
	return out, nil
}

// Close releases the underlying zstd stream.
func (d *VideoDecoderZstd) Close() {
	d.stream.Close()
}
