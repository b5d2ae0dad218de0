// Package srp implements the SRP-6a modular arithmetic and client/server
// handshake contexts used to bootstrap the session key for the secure
// channel.
package srp

import (
	"crypto/rand"
	"math/big"

	"github.com/aspia-go/core/pkg/crypto"
)

// PrivateKeyBits is the number of random bits sampled for the ephemeral
// private exponents a (initiator) and b (responder).
const PrivateKeyBits = 1024

// padTo left-zero-pads x to n bytes (the PAD_N(x) operation of RFC 5054).
func padTo(x *big.Int, n int) []byte {
	b := x.Bytes()
	if len(b) >= n {
		return b[len(b)-n:]
	}
	out := make([]byte, n)
	copy(out[n-len(b):], b)
	return out
}

// hashToInt computes SHA-256(data) and interprets the digest as a big-endian
// unsigned integer. This is the "H(...)" used throughout calc_u/calc_x/calc_k
// (distinct from H_session, which derives the final session key).
func hashToInt(data ...[]byte) *big.Int {
	h := crypto.NewSHA256()
	for _, d := range data {
		h.Write(d)
	}
	return new(big.Int).SetBytes(h.Sum(nil))
}

// randomPrivateExponent samples PrivateKeyBits cryptographically random bits
// for use as the ephemeral private value a or b.
func randomPrivateExponent() (*big.Int, error) {
	buf := make([]byte, PrivateKeyBits/8)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(buf), nil
}

// calcK computes k = H(PAD_N(N) | PAD_N(g)).
func calcK(n, g *big.Int, nLen int) *big.Int {
	return hashToInt(padTo(n, nLen), padTo(g, nLen))
}

// calcU computes u = H(PAD_N(A) | PAD_N(B)).
func calcU(a, b *big.Int, nLen int) *big.Int {
	return hashToInt(padTo(a, nLen), padTo(b, nLen))
}

// calcX computes x = H(s | H(I | ":" | p)).
// Both H() calls are SHA-256, and the separator between username and
// password is a literal colon.
func calcX(salt []byte, username, password string) *big.Int {
	inner := crypto.SHA256Slice([]byte(username + ":" + password))
	return hashToInt(salt, inner)
}

// calcA computes A = g^a mod N.
func calcA(n, g, a *big.Int) *big.Int {
	return new(big.Int).Exp(g, a, n)
}

// calcB computes B = (k*v + g^b) mod N.
func calcB(n, g, k, v, b *big.Int) *big.Int {
	gb := new(big.Int).Exp(g, b, n)
	kv := new(big.Int).Mul(k, v)
	sum := new(big.Int).Add(kv, gb)
	return sum.Mod(sum, n)
}

// calcVerifier computes v = g^x mod N.
func calcVerifier(n, g, x *big.Int) *big.Int {
	return new(big.Int).Exp(g, x, n)
}

// calcClientS computes S = (B - k*g^x)^(a + u*x) mod N from the initiator's
// side.
func calcClientS(n, g, k, x, a, u, b *big.Int) *big.Int {
	gx := new(big.Int).Exp(g, x, n)
	kgx := new(big.Int).Mul(k, gx)

	base := new(big.Int).Sub(b, kgx)
	base.Mod(base, n)
	if base.Sign() < 0 {
		base.Add(base, n)
	}

	exp := new(big.Int).Mul(u, x)
	exp.Add(exp, a)

	return new(big.Int).Exp(base, exp, n)
}

// calcServerS computes S = (A * v^u)^b mod N from the responder's side.
func calcServerS(n, v, a, u, b *big.Int) *big.Int {
	vu := new(big.Int).Exp(v, u, n)
	base := new(big.Int).Mul(a, vu)
	base.Mod(base, n)
	return new(big.Int).Exp(base, b, n)
}

// isCongruentToZero reports whether x mod n == 0, used for the A mod N != 0
// and B mod N != 0 validity checks.
func isCongruentToZero(x, n *big.Int) bool {
	r := new(big.Int).Mod(x, n)
	return r.Sign() == 0
}
