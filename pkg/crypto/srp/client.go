package srp

import (
	"crypto/rand"
	"math/big"

	"github.com/pion/logging"
)

// ClientContext is the initiator side of an SRP-6a exchange: it knows the
// username I and password p, and derives the session key once it has seen
// the responder's group parameters and public value B.
type ClientContext struct {
	method   Method
	username string
	password []byte
	log      logging.LeveledLogger

	n, g, b *big.Int
	nLen    int
	salt    []byte

	a, publicA *big.Int

	encryptIV [IVSize]byte
	decryptIV [IVSize]byte

	ready bool
}

// NewClientContext creates an initiator context. Empty credentials or an
// unrecognised method return (nil, err) rather than a partially initialised
// context. loggerFactory may be nil, in which case handshake failures are
// only ever returned, never logged.
func NewClientContext(method Method, username, password string, loggerFactory logging.LoggerFactory) (*ClientContext, error) {
	if !method.Valid() {
		return nil, ErrUnknownMethod
	}
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	var log logging.LeveledLogger
	if loggerFactory != nil {
		log = loggerFactory.NewLogger("srp")
	}

	return &ClientContext{
		method:   method,
		username: username,
		password: []byte(password),
		log:      log,
	}, nil
}

// Username returns the identity this context will present to the responder.
func (c *ClientContext) Username() string {
	return c.username
}

// ProcessServerKeyExchange validates the responder's group/salt/B/iv,
// samples the ephemeral private value a, computes the public value A and a
// fresh encryption IV, and returns the bytes to send as SrpClientKeyExchange
// (A and the client's encrypt IV). decryptIV is taken verbatim from the
// responder's message.
func (c *ClientContext) ProcessServerKeyExchange(n, g, salt, b, serverIV []byte) (publicA, clientIV []byte, err error) {
	if len(salt) < MinSaltSize {
		return nil, nil, ErrBadSaltSize
	}
	if len(b) < MinPublicValueSize {
		return nil, nil, ErrBadPublicValueSize
	}
	if len(serverIV) != IVSize {
		return nil, nil, ErrBadGroupParameters
	}

	group, err := LookupGroup(n, g)
	if err != nil {
		return nil, nil, err
	}

	c.n = new(big.Int).SetBytes(group.N)
	c.g = new(big.Int).SetBytes(group.G)
	c.nLen = len(group.N)
	c.salt = append([]byte(nil), salt...)
	c.b = new(big.Int).SetBytes(b)

	for {
		a, err := randomPrivateExponent()
		if err != nil {
			return nil, nil, err
		}
		A := calcA(c.n, c.g, a)
		if isCongruentToZero(A, c.n) {
			continue
		}
		c.a = a
		c.publicA = A
		break
	}

	if _, err := rand.Read(c.encryptIV[:]); err != nil {
		return nil, nil, err
	}
	copy(c.decryptIV[:], serverIV)

	return c.publicA.Bytes(), c.encryptIV[:], nil
}

// DeriveKey computes K = H_session(S) from the stored group parameters,
// ephemeral values and credentials. Must be called after
// ProcessServerKeyExchange. The raw shared secret S never leaves this
// function.
func (c *ClientContext) DeriveKey() ([SessionKeySize]byte, error) {
	if c.n == nil || c.a == nil {
		return [SessionKeySize]byte{}, ErrInvalidPublicValue
	}
	if isCongruentToZero(c.b, c.n) {
		if c.log != nil {
			c.log.Warnf("rejected server public value congruent to 0 mod N")
		}
		return [SessionKeySize]byte{}, ErrInvalidPublicValue
	}

	u := calcU(c.publicA, c.b, c.nLen)
	x := calcX(c.salt, c.username, string(c.password))
	k := calcK(c.n, c.g, c.nLen)

	s := calcClientS(c.n, c.g, k, x, c.a, u, c.b)
	key := DeriveSessionKey(s.Bytes())
	c.ready = true
	return key, nil
}

// EncryptIV returns the IV this side will use to encrypt outgoing messages.
func (c *ClientContext) EncryptIV() []byte { return append([]byte(nil), c.encryptIV[:]...) }

// DecryptIV returns the IV this side will use to decrypt incoming messages.
func (c *ClientContext) DecryptIV() []byte { return append([]byte(nil), c.decryptIV[:]...) }

// Ready reports whether DeriveKey has completed successfully.
func (c *ClientContext) Ready() bool { return c.ready }

// Destroy zeroises the password, both IVs and the ephemeral private value a.
func (c *ClientContext) Destroy() {
	zero(c.password)
	zero(c.encryptIV[:])
	zero(c.decryptIV[:])
	if c.a != nil {
		c.a.SetInt64(0)
	}
	c.ready = false
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
