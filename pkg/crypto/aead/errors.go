// Package aead implements the two session-encryption methods the secure
// channel negotiates during the handshake: AES-256-GCM and
// ChaCha20-Poly1305, each driven by a per-direction monotonic counter folded
// into the negotiated IV.
package aead

import "errors"

var (
	// ErrAuthenticationFailed is returned when a ciphertext fails the AEAD
	// tag check, surfaced in the error taxonomy as CryptoError.
	ErrAuthenticationFailed = errors.New("aead: message authentication failed")

	// ErrNonceExhausted is returned once a direction's message counter would
	// wrap past 2^64-1, rather than silently reusing a nonce.
	ErrNonceExhausted = errors.New("aead: per-direction message counter exhausted")

	// ErrBadKeySize names a session key that is not exactly 32 bytes. New
	// takes the key as a fixed-size array and never returns it.
	ErrBadKeySize = errors.New("aead: session key must be 32 bytes")

	// ErrBadIVSize names an IV that is not exactly 12 bytes. New takes the
	// IVs as fixed-size arrays and never returns it.
	ErrBadIVSize = errors.New("aead: iv must be 12 bytes")

	// ErrUnknownMethod is returned when New is called with a method not in
	// the method table.
	ErrUnknownMethod = errors.New("aead: unknown method")
)
