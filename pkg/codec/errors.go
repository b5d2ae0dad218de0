// Package codec implements the pixel-translation and streaming-compression
// half of the screen-update pipeline: PixelTranslator converts a captured
// frame's pixel format to the negotiated wire format, and
// VideoEncoderZstd/VideoDecoderZstd stream the translated bytes through a
// zstd context into/out of a proto.VideoPacket.
package codec

import "errors"

var (
	// ErrUnsupportedPixelFormat is returned when NewTranslator or
	// NewVideoEncoderZstd is asked to convert between pixel formats neither
	// has a conversion path for (currently: bytes-per-pixel other than 2 or
	// 4).
	ErrUnsupportedPixelFormat = errors.New("codec: unsupported pixel format")

	// ErrCompressionFailed is returned when the zstd stream reports an
	// error mid-frame.
	ErrCompressionFailed = errors.New("codec: compression failed")

	// ErrDecompressionFailed is returned when the zstd stream reports an
	// error decoding a packet's data payload.
	ErrDecompressionFailed = errors.New("codec: decompression failed")
)
