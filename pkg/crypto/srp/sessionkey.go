package srp

import "golang.org/x/crypto/blake2s"

// SessionKeySize is the size in bytes of the derived AEAD session key.
const SessionKeySize = 32

// DeriveSessionKey computes K = H_session(S_bytes). H_session is
// BLAKE2s-256; the raw shared secret S is never transmitted or logged.
func DeriveSessionKey(s []byte) [SessionKeySize]byte {
	return blake2s.Sum256(s)
}
