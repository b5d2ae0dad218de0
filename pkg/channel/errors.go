// Package channel implements the framed channel: a length-prefixed,
// ordered, bidirectional message transport over a net.Conn. Each Channel
// owns a dedicated goroutine per direction (reader, writer), running its
// state machine as a single-threaded reactor; pkg/handshake supplies the
// Encryptor that drives the channel from NotConnected through Handshaking
// to Encrypted.
package channel

import "errors"

var (
	// ErrNotConnected is returned by New when Conn or Encryptor is nil, and
	// when WriteMessage/RequestNextMessage is called before the channel has
	// completed its handshake.
	ErrNotConnected = errors.New("channel: not connected")

	// ErrAlreadyReading is returned when RequestNextMessage is called while a
	// previous read is still pending — the channel only arms a single read
	// at a time.
	ErrAlreadyReading = errors.New("channel: read already pending")

	// ErrMessageTooLarge is returned when an outgoing message, or a
	// decoded incoming length prefix, exceeds MaxMessageSize.
	ErrMessageTooLarge = errors.New("channel: message exceeds maximum size")

	// ErrZeroLengthMessage is returned when a decoded incoming length
	// prefix is exactly 0. The channel never sends zero-length frames
	// itself, so seeing one on the wire always terminates the channel.
	ErrZeroLengthMessage = errors.New("channel: zero-length message")

	// ErrClosed is returned from WriteMessage/RequestNextMessage once the channel
	// has been stopped.
	ErrClosed = errors.New("channel: closed")

	// ErrHandshakeFailed wraps the underlying Encryptor error when the
	// handshake aborts.
	ErrHandshakeFailed = errors.New("channel: handshake failed")
)
