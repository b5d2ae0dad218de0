package handshake

import (
	"github.com/pion/logging"

	"github.com/aspia-go/core/pkg/crypto/aead"
	"github.com/aspia-go/core/pkg/crypto/srp"
	"github.com/aspia-go/core/pkg/proto"
)

// InitiatorEncryptor drives the client side of the SRP-6a exchange:
// SrpIdentify (sent) -> SrpServerKeyExchange (received) ->
// SrpClientKeyExchange (sent, handshake complete).
type InitiatorEncryptor struct {
	client *srp.ClientContext
	method srp.Method

	encryptCipher *aead.SessionCipher
	decryptCipher *aead.SessionCipher

	step int
	done bool
}

// NewInitiatorEncryptor builds an InitiatorEncryptor that will
// authenticate as username/password using method. loggerFactory may be
// nil, in which case the underlying SRP context logs nothing.
func NewInitiatorEncryptor(method srp.Method, username, password string, loggerFactory logging.LoggerFactory) (*InitiatorEncryptor, error) {
	client, err := srp.NewClientContext(method, username, password, loggerFactory)
	if err != nil {
		return nil, err
	}
	return &InitiatorEncryptor{client: client, method: method}, nil
}

// Start sends the initial SrpIdentify message.
func (e *InitiatorEncryptor) Start() ([]byte, bool, error) {
	msg := proto.SrpIdentify{Username: e.client.Username(), Method: uint8(e.method)}
	encoded, err := msg.Encode()
	if err != nil {
		return nil, false, err
	}
	e.step = 1
	return encoded, false, nil
}

// Next processes the responder's SrpServerKeyExchange and replies with
// SrpClientKeyExchange, completing the handshake.
func (e *InitiatorEncryptor) Next(received []byte) ([]byte, bool, error) {
	if e.done {
		return nil, true, ErrAlreadyDone
	}
	if e.step != 1 {
		return nil, false, ErrUnexpectedMessage
	}

	serverMsg, err := proto.DecodeSrpServerKeyExchange(received)
	if err != nil {
		return nil, false, err
	}

	publicA, clientIV, err := e.client.ProcessServerKeyExchange(
		serverMsg.N, serverMsg.G, serverMsg.Salt, serverMsg.B, serverMsg.IV)
	if err != nil {
		return nil, false, err
	}

	key, err := e.client.DeriveKey()
	if err != nil {
		return nil, false, err
	}

	var encryptIV, decryptIV [aead.IVSize]byte
	copy(encryptIV[:], e.client.EncryptIV())
	copy(decryptIV[:], e.client.DecryptIV())

	e.encryptCipher, err = aead.New(e.method, key, encryptIV)
	if err != nil {
		return nil, false, err
	}
	e.decryptCipher, err = aead.New(e.method, key, decryptIV)
	if err != nil {
		return nil, false, err
	}

	clientMsg := proto.SrpClientKeyExchange{A: publicA, IV: clientIV}
	encoded, err := clientMsg.Encode()
	if err != nil {
		return nil, false, err
	}

	e.done = true
	e.step = 2
	return encoded, true, nil
}

// Encrypt implements channel.Encryptor.
func (e *InitiatorEncryptor) Encrypt(plaintext []byte) ([]byte, error) {
	return e.encryptCipher.Seal(nil, plaintext, nil)
}

// Decrypt implements channel.Encryptor.
func (e *InitiatorEncryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	return e.decryptCipher.Open(nil, ciphertext, nil)
}

// Destroy zeroises all key material held by the client context and both
// session ciphers.
func (e *InitiatorEncryptor) Destroy() {
	e.client.Destroy()
	if e.encryptCipher != nil {
		e.encryptCipher.Destroy()
	}
	if e.decryptCipher != nil {
		e.decryptCipher.Destroy()
	}
}
