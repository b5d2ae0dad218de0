package codec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pion/logging"

	"github.com/aspia-go/core/pkg/desktop"
	"github.com/aspia-go/core/pkg/proto"
)

// maxCompressionLevel is the clamp ceiling for the caller-supplied
// compression ratio.
const maxCompressionLevel = 22

// VideoEncoderZstd translates each dirty rectangle from a frame's capture
// format into a fixed target format, concatenates the translated rows in
// rectangle order, and streams the result through a long-lived zstd
// stream, resetting it before each frame so every packet is independently
// decodable.
type VideoEncoderZstd struct {
	targetFormat desktop.PixelFormat
	translator   PixelTranslator
	log          logging.LeveledLogger

	stream *zstd.Encoder

	translateBuf []byte

	lastFormat    desktop.PixelFormat
	haveLastFormat bool
}

// NewVideoEncoderZstd builds an encoder translating from sourceFormat to
// targetFormat at the given compression level (clamped to [1,
// maxCompressionLevel]). Returns ErrUnsupportedPixelFormat if no
// translator exists for the pair. loggerFactory may be nil, in which case
// compression errors are only ever returned, never logged.
func NewVideoEncoderZstd(sourceFormat, targetFormat desktop.PixelFormat, level int, loggerFactory logging.LoggerFactory) (*VideoEncoderZstd, error) {
	if level > maxCompressionLevel {
		level = maxCompressionLevel
	} else if level < 1 {
		level = 1
	}

	translator, err := NewTranslator(sourceFormat, targetFormat)
	if err != nil {
		return nil, err
	}

	stream, err := zstd.NewWriter(io.Discard, zstd.WithEncoderLevel(levelToEncoderLevel(level)))
	if err != nil {
		return nil, err
	}

	var log logging.LeveledLogger
	if loggerFactory != nil {
		log = loggerFactory.NewLogger("codec")
	}

	return &VideoEncoderZstd{
		targetFormat: targetFormat,
		translator:   translator,
		log:          log,
		stream:       stream,
	}, nil
}

func levelToEncoderLevel(level int) zstd.EncoderLevel {
	switch {
	case level <= 3:
		return zstd.SpeedFastest
	case level <= 9:
		return zstd.SpeedDefault
	case level <= 19:
		return zstd.SpeedBetterCompression
	default:
		return zstd.SpeedBestCompression
	}
}

// Encode translates frame's dirty rectangles into the target format and
// compresses them into a VideoPacket. The format descriptor is attached
// whenever the target format changes from the previous call (which, for a
// fixed-target encoder, is only the first call).
func (e *VideoEncoderZstd) Encode(frame *desktop.Frame) (proto.VideoPacket, error) {
	packet := proto.VideoPacket{Encoding: proto.VideoEncodingZstd}

	if !e.haveLastFormat || e.lastFormat != e.targetFormat {
		format := e.targetFormat
		packet.Format = &format
		packet.Width = frame.Width
		packet.Height = frame.Height
		e.lastFormat = e.targetFormat
		e.haveLastFormat = true
	}

	rects := frame.Dirty.Rects()
	bpp := e.targetFormat.BytesPerPixel()

	dataSize := 0
	for _, r := range rects {
		dataSize += int(r.Width) * int(r.Height) * bpp
		packet.Rects = append(packet.Rects, r)
	}

	if cap(e.translateBuf) < dataSize {
		e.translateBuf = make([]byte, dataSize)
	}
	buf := e.translateBuf[:dataSize]

	pos := 0
	for _, r := range rects {
		srcRows := frame.RectData(r)
		dstStride := int(r.Width) * bpp
		for _, srcRow := range srcRows {
			e.translator.Translate(srcRow, buf[pos:pos+dstStride], int(r.Width))
			pos += dstStride
		}
	}

	compressed, err := e.compress(buf)
	if err != nil {
		return proto.VideoPacket{}, err
	}
	packet.Data = compressed

	return packet, nil
}

func (e *VideoEncoderZstd) compress(data []byte) ([]byte, error) {
	var out bytes.Buffer
	e.stream.Reset(&out)

	if _, err := e.stream.Write(data); err != nil {
		if e.log != nil {
			e.log.Warnf("compression failed: %v", err)
		}
		return nil, ErrCompressionFailed
	}
	if err := e.stream.Close(); err != nil {
		if e.log != nil {
			e.log.Warnf("compression stream close failed: %v", err)
		}
		return nil, ErrCompressionFailed
	}

	return out.Bytes(), nil
}

// Close releases the underlying zstd stream.
func (e *VideoEncoderZstd) Close() error {
	return e.stream.Close()
}
