// Package proto implements the wire messages exchanged during the
// handshake and while streaming screen updates: the three SRP-6a
// handshake records, the VideoPacket frame format, and a StatusReport
// rejection record. Handshake records are encoded with pkg/tlv; VideoPacket
// and StatusReport use flat binary layouts matching their size-critical,
// high-frequency use on the hot path.
package proto

import "errors"

var (
	// ErrTruncated is returned when a buffer ends before a required field.
	ErrTruncated = errors.New("proto: message truncated")

	// ErrMalformed is returned when a field's encoded value is structurally
	// invalid (e.g. a length prefix that does not fit the remaining bytes).
	ErrMalformed = errors.New("proto: malformed message")
)
