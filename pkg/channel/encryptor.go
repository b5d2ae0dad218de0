package channel

// Encryptor is the handshake/session-crypto capability a Channel drives to
// bootstrap and then maintain its secure session. pkg/handshake implements
// it over pkg/crypto/srp and pkg/crypto/aead.
//
// The handshake is modelled as an N-step exchange of id=-1 frames: each
// side calls Start (or, after receiving a peer message, Next) and keeps
// writing/reading until its own side reports done. This keeps the wire
// sequencing generic over however many logical messages the negotiated
// method actually needs (SRP-6a needs three: identify, challenge, proof).
type Encryptor interface {
	// Start returns the first handshake message to send, if this side
	// speaks first. A nil msg with done=false means this side has nothing
	// to send yet and must wait for the peer's first message.
	Start() (msg []byte, done bool, err error)

	// Next processes a received handshake message and returns the next
	// message to send, if any. done reports whether this side has now
	// derived the session key and the channel may transition to Encrypted.
	Next(received []byte) (msg []byte, done bool, err error)

	// Encrypt seals a plaintext message for transmission once the
	// handshake has completed.
	Encrypt(plaintext []byte) ([]byte, error)

	// Decrypt opens a received ciphertext message once the handshake has
	// completed.
	Decrypt(ciphertext []byte) ([]byte, error)

	// Destroy zeroises any key material the Encryptor holds.
	Destroy()
}
