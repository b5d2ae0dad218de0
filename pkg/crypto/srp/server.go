package srp

import (
	"crypto/rand"
	"math/big"

	"github.com/pion/logging"
)

// ServerContext is the responder side of an SRP-6a exchange. It is
// constructed once the caller has already looked up (salt, verifier) for a
// given username via a VerifierStore — identity/account management beyond
// that lookup is out of scope.
//
// It computes the responder-side mirror image of ClientContext's
// calc_* helpers symmetrically.
type ServerContext struct {
	method Method
	group  Group
	log    logging.LeveledLogger

	salt     []byte
	verifier *big.Int

	n, g *big.Int
	nLen int

	b, publicB *big.Int
	k          *big.Int

	a *big.Int // client's public value, learned from SrpClientKeyExchange

	encryptIV [IVSize]byte
	decryptIV [IVSize]byte

	ready bool
}

// NewServerContext creates a responder context for the given group and the
// (salt, verifier) pair on file for the authenticating user. loggerFactory
// may be nil, in which case handshake failures are only ever returned,
// never logged.
func NewServerContext(method Method, group Group, salt, verifier []byte, loggerFactory logging.LoggerFactory) (*ServerContext, error) {
	if !method.Valid() {
		return nil, ErrUnknownMethod
	}
	if len(salt) < MinSaltSize {
		return nil, ErrBadSaltSize
	}

	var log logging.LeveledLogger
	if loggerFactory != nil {
		log = loggerFactory.NewLogger("srp")
	}

	return &ServerContext{
		method:   method,
		group:    group,
		log:      log,
		salt:     append([]byte(nil), salt...),
		verifier: new(big.Int).SetBytes(verifier),
		n:        new(big.Int).SetBytes(group.N),
		g:        new(big.Int).SetBytes(group.G),
		nLen:     len(group.N),
	}, nil
}

// ServerKeyExchange samples the ephemeral private value b, computes the
// public value B = k*v + g^b mod N, and a fresh encryption IV. The returned
// values are sent as SrpServerKeyExchange{N, g, salt, B, iv}.
func (s *ServerContext) ServerKeyExchange() (n, g, salt, publicB, serverIV []byte, err error) {
	s.k = calcK(s.n, s.g, s.nLen)

	for {
		b, err := randomPrivateExponent()
		if err != nil {
			return nil, nil, nil, nil, nil, err
		}
		B := calcB(s.n, s.g, s.k, s.verifier, b)
		if isCongruentToZero(B, s.n) {
			continue
		}
		s.b = b
		s.publicB = B
		break
	}

	if _, err := rand.Read(s.encryptIV[:]); err != nil {
		return nil, nil, nil, nil, nil, err
	}

	return s.group.N, s.group.G, s.salt, s.publicB.Bytes(), s.encryptIV[:], nil
}

// ProcessClientKeyExchange validates the initiator's public value A,
// computes the shared secret and derives K = H_session(S). clientIV becomes
// this side's decrypt IV.
func (s *ServerContext) ProcessClientKeyExchange(a, clientIV []byte) ([SessionKeySize]byte, error) {
	if s.b == nil {
		return [SessionKeySize]byte{}, ErrInvalidPublicValue
	}

	publicA := new(big.Int).SetBytes(a)
	if isCongruentToZero(publicA, s.n) {
		if s.log != nil {
			s.log.Warnf("rejected client public value congruent to 0 mod N")
		}
		return [SessionKeySize]byte{}, ErrInvalidPublicValue
	}
	if len(clientIV) != IVSize {
		if s.log != nil {
			s.log.Warnf("rejected client key exchange: bad IV size %d", len(clientIV))
		}
		return [SessionKeySize]byte{}, ErrBadGroupParameters
	}

	s.a = publicA
	copy(s.decryptIV[:], clientIV)

	u := calcU(s.a, s.publicB, s.nLen)
	shared := calcServerS(s.n, s.verifier, s.a, u, s.b)

	key := DeriveSessionKey(shared.Bytes())
	s.ready = true
	return key, nil
}

// EncryptIV returns the IV this side will use to encrypt outgoing messages
// (the same bytes sent in ServerKeyExchange).
func (s *ServerContext) EncryptIV() []byte { return append([]byte(nil), s.encryptIV[:]...) }

// DecryptIV returns the IV this side will use to decrypt incoming messages
// (the client's IV, learned from SrpClientKeyExchange).
func (s *ServerContext) DecryptIV() []byte { return append([]byte(nil), s.decryptIV[:]...) }

// Ready reports whether ProcessClientKeyExchange has completed successfully.
func (s *ServerContext) Ready() bool { return s.ready }

// Destroy zeroises both IVs and the ephemeral private value b.
func (s *ServerContext) Destroy() {
	zero(s.encryptIV[:])
	zero(s.decryptIV[:])
	if s.b != nil {
		s.b.SetInt64(0)
	}
	s.ready = false
}

// ComputeVerifier derives (x, v) for a username/password/salt triple against
// a group, for use by a VerifierStore when provisioning a new user. This is
// the one piece of "verifier storage" the core implements directly; looking
// verifiers up by username at authentication time is left to the external
// VerifierStore collaborator.
func ComputeVerifier(group Group, salt []byte, username, password string) []byte {
	n := new(big.Int).SetBytes(group.N)
	g := new(big.Int).SetBytes(group.G)
	x := calcX(salt, username, password)
	v := calcVerifier(n, g, x)
	return v.Bytes()
}
