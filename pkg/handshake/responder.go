package handshake

import (
	"github.com/pion/logging"

	"github.com/aspia-go/core/pkg/crypto/aead"
	"github.com/aspia-go/core/pkg/crypto/srp"
	"github.com/aspia-go/core/pkg/proto"
)

// ResponderEncryptor drives the server side of the SRP-6a exchange:
// SrpIdentify (received) -> SrpServerKeyExchange (sent) ->
// SrpClientKeyExchange (received, handshake complete — no further write
// needed).
type ResponderEncryptor struct {
	method        srp.Method
	store         VerifierStore
	loggerFactory logging.LoggerFactory

	server *srp.ServerContext

	encryptCipher *aead.SessionCipher
	decryptCipher *aead.SessionCipher

	step int
	done bool
}

// NewResponderEncryptor builds a ResponderEncryptor that authenticates
// identities against store using method. loggerFactory may be nil, in
// which case each authentication attempt's SRP context logs nothing.
func NewResponderEncryptor(method srp.Method, store VerifierStore, loggerFactory logging.LoggerFactory) *ResponderEncryptor {
	return &ResponderEncryptor{method: method, store: store, loggerFactory: loggerFactory}
}

// Start reports that the responder has nothing to send first; it waits
// for the initiator's SrpIdentify.
func (e *ResponderEncryptor) Start() ([]byte, bool, error) {
	return nil, false, nil
}

// Next processes SrpIdentify (replying with SrpServerKeyExchange) and then
// SrpClientKeyExchange (completing the handshake with no reply).
func (e *ResponderEncryptor) Next(received []byte) ([]byte, bool, error) {
	if e.done {
		return nil, true, ErrAlreadyDone
	}

	switch e.step {
	case 0:
		return e.handleIdentify(received)
	case 1:
		return e.handleClientKeyExchange(received)
	default:
		return nil, false, ErrUnexpectedMessage
	}
}

func (e *ResponderEncryptor) handleIdentify(received []byte) ([]byte, bool, error) {
	identify, err := proto.DecodeSrpIdentify(received)
	if err != nil {
		return nil, false, err
	}

	group, salt, verifier, err := e.store.Lookup(identify.Username)
	if err != nil {
		return nil, false, err
	}

	server, err := srp.NewServerContext(e.method, group, salt, verifier, e.loggerFactory)
	if err != nil {
		return nil, false, err
	}
	e.server = server

	n, g, srvSalt, publicB, serverIV, err := server.ServerKeyExchange()
	if err != nil {
		return nil, false, err
	}

	reply := proto.SrpServerKeyExchange{N: n, G: g, Salt: srvSalt, B: publicB, IV: serverIV}
	encoded, err := reply.Encode()
	if err != nil {
		return nil, false, err
	}

	e.step = 1
	return encoded, false, nil
}

func (e *ResponderEncryptor) handleClientKeyExchange(received []byte) ([]byte, bool, error) {
	clientMsg, err := proto.DecodeSrpClientKeyExchange(received)
	if err != nil {
		return nil, false, err
	}

	key, err := e.server.ProcessClientKeyExchange(clientMsg.A, clientMsg.IV)
	if err != nil {
		return nil, false, err
	}

	var encryptIV, decryptIV [aead.IVSize]byte
	copy(encryptIV[:], e.server.EncryptIV())
	copy(decryptIV[:], e.server.DecryptIV())

	e.encryptCipher, err = aead.New(e.method, key, encryptIV)
	if err != nil {
		return nil, false, err
	}
	e.decryptCipher, err = aead.New(e.method, key, decryptIV)
	if err != nil {
		return nil, false, err
	}

	e.done = true
	e.step = 2
	return nil, true, nil
}

// Encrypt implements channel.Encryptor.
func (e *ResponderEncryptor) Encrypt(plaintext []byte) ([]byte, error) {
	return e.encryptCipher.Seal(nil, plaintext, nil)
}

// Decrypt implements channel.Encryptor.
func (e *ResponderEncryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	return e.decryptCipher.Open(nil, ciphertext, nil)
}

// Destroy zeroises all key material held by the server context and both
// session ciphers.
func (e *ResponderEncryptor) Destroy() {
	if e.server != nil {
		e.server.Destroy()
	}
	if e.encryptCipher != nil {
		e.encryptCipher.Destroy()
	}
	if e.decryptCipher != nil {
		e.decryptCipher.Destroy()
	}
}
