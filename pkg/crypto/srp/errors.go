package srp

import "errors"

// Handshake-level errors, surfaced as HandshakeError in the error taxonomy.
var (
	// ErrBadGroupParameters is returned when (N, g) does not byte-exactly
	// match one of the three hardcoded groups.
	ErrBadGroupParameters = errors.New("srp: bad group parameters")

	// ErrBadSaltSize is returned when the salt is shorter than 64 bytes.
	ErrBadSaltSize = errors.New("srp: salt shorter than 64 bytes")

	// ErrBadPublicValueSize is returned when B is shorter than 128 bytes.
	ErrBadPublicValueSize = errors.New("srp: public value B shorter than 128 bytes")

	// ErrInvalidPublicValue is returned when a received public value is
	// congruent to 0 modulo N.
	ErrInvalidPublicValue = errors.New("srp: public value is congruent to 0 mod N")

	// ErrEmptyCredentials is returned when username or password is empty.
	ErrEmptyCredentials = errors.New("srp: username or password is empty")

	// ErrUnknownMethod is returned when the requested AEAD method is not
	// one of the recognised SRP methods.
	ErrUnknownMethod = errors.New("srp: unknown or unsupported method")

	// ErrUnknownUser is returned by a VerifierStore when no verifier is on
	// file for the requested username.
	ErrUnknownUser = errors.New("srp: unknown user")
)
