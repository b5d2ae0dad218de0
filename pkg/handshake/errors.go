// Package handshake implements channel.Encryptor over pkg/crypto/srp,
// pkg/crypto/aead and pkg/proto: InitiatorEncryptor drives the client side
// of an SRP-6a exchange and ResponderEncryptor the server side, each
// producing a SessionCipher pair once the exchange completes.
package handshake

import "errors"

var (
	// ErrUnexpectedMessage is returned when a handshake message arrives
	// out of the expected SrpIdentify -> SrpServerKeyExchange ->
	// SrpClientKeyExchange order.
	ErrUnexpectedMessage = errors.New("handshake: unexpected message for current step")

	// ErrAlreadyDone is returned when Next is called after the handshake
	// has already completed.
	ErrAlreadyDone = errors.New("handshake: already complete")
)
