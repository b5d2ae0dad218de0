package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"math"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/aspia-go/core/pkg/crypto/srp"
)

// KeySize and IVSize match the sizes SRP-6a negotiates: a 256-bit session
// key and a 96-bit IV, shared across both AEAD methods.
const (
	KeySize = srp.SessionKeySize
	IVSize  = srp.IVSize
)

// SessionCipher seals and opens messages for one direction of a session,
// using the negotiated method, a fixed 32-byte key and a fixed 96-bit base
// IV. Each call to Seal/Open folds a strictly increasing 64-bit
// little-endian counter into the trailing 8 bytes of the IV (XOR), so the
// same (key, baseIV) pair never repeats a nonce for the lifetime of the
// session.
//
// A SessionCipher is not safe for concurrent use; pkg/channel serialises
// writes and reads separately per direction.
type SessionCipher struct {
	aead    cipher.AEAD
	baseIV  [IVSize]byte
	counter uint64
	scratch [IVSize]byte
}

// New builds a SessionCipher for the given method, session key and base IV.
// The base IV is the one exchanged during the handshake for this direction
// (the initiator's encryptIV becomes the responder's decrypt baseIV, and
// vice versa).
func New(method srp.Method, key [KeySize]byte, baseIV [IVSize]byte) (*SessionCipher, error) {
	var a cipher.AEAD
	var err error

	switch method {
	case srp.MethodAES256GCM:
		var block cipher.Block
		block, err = aes.NewCipher(key[:])
		if err != nil {
			return nil, err
		}
		a, err = cipher.NewGCM(block)
	case srp.MethodChaCha20Poly1305:
		a, err = chacha20poly1305.New(key[:])
	default:
		return nil, ErrUnknownMethod
	}
	if err != nil {
		return nil, err
	}

	return &SessionCipher{aead: a, baseIV: baseIV}, nil
}

// nonce returns the IV to use for the current counter value, without
// advancing it.
func (c *SessionCipher) nonce() []byte {
	copy(c.scratch[:], c.baseIV[:])
	var ctrBytes [8]byte
	binary.LittleEndian.PutUint64(ctrBytes[:], c.counter)
	for i := 0; i < 8; i++ {
		c.scratch[IVSize-8+i] ^= ctrBytes[i]
	}
	return c.scratch[:]
}

// Seal encrypts and authenticates plaintext, appending the sealed output to
// dst, and advances the counter. additionalData is authenticated but not
// encrypted (pkg/handshake passes nil).
func (c *SessionCipher) Seal(dst, plaintext, additionalData []byte) ([]byte, error) {
	if c.counter == math.MaxUint64 {
		return nil, ErrNonceExhausted
	}
	out := c.aead.Seal(dst, c.nonce(), plaintext, additionalData)
	c.counter++
	return out, nil
}

// Open authenticates and decrypts ciphertext, appending the plaintext to
// dst, and advances the counter. Returns ErrAuthenticationFailed if the tag
// does not verify.
func (c *SessionCipher) Open(dst, ciphertext, additionalData []byte) ([]byte, error) {
	if c.counter == math.MaxUint64 {
		return nil, ErrNonceExhausted
	}
	out, err := c.aead.Open(dst, c.nonce(), ciphertext, additionalData)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	c.counter++
	return out, nil
}

// Overhead returns the number of bytes Seal adds beyond the plaintext
// length (the authentication tag).
func (c *SessionCipher) Overhead() int {
	return c.aead.Overhead()
}

// Destroy zeroises the base IV and scratch buffer. The underlying
// cipher.AEAD retains the raw key in its own state and cannot be
// zeroised from outside the standard library; callers should drop their
// last reference to the SessionCipher immediately after calling Destroy.
func (c *SessionCipher) Destroy() {
	for i := range c.baseIV {
		c.baseIV[i] = 0
	}
	for i := range c.scratch {
		c.scratch[i] = 0
	}
	c.counter = 0
}
