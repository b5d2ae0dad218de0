package srp

import (
	"encoding/hex"
	"strings"
)

// Group holds the (N, g) pair for one of the three permitted SRP-6a safe
// prime groups. N and g are byte-exact copies of the standard IETF
// draft-ietf-tls-srp / RFC 5054 groups.
type Group struct {
	// Name identifies the group for logging (e.g. "4096-bit").
	Name string
	// N is the big-endian safe prime modulus.
	N []byte
	// G is the big-endian generator.
	G []byte
}

func mustHex(s string) []byte {
	b, err := hex.DecodeString(strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\t' {
			return -1
		}
		return r
	}, s))
	if err != nil {
		panic("srp: invalid hardcoded group constant: " + err.Error())
	}
	return b
}

// Group4096 is the 4096-bit safe prime group (N: 512 bytes).
var Group4096 = Group{
	Name: "4096-bit",
	N: mustHex(`
		FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD1
		29024E088A67CC74020BBEA63B139B22514A08798E3404DD
		EF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245
		E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED
		EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3D
		C2007CB8A163BF0598DA48361C55D39A69163FA8FD24CF5F
		83655D23DCA3AD961C62F356208552BB9ED529077096966D
		670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B
		E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9
		DE2BCBF6955817183995497CEA956AE515D2261898FA0510
		15728E5A8AAAC42DAD33170D04507A33A85521ABDF1CBA64
		ECFB850458DBEF0A8AEA71575D060C7DB3970F85A6E1E4C7
		ABF5AE8CDB0933D71E8C94E04A25619DCEE3D2261AD2EE6B
		F12FFA06D98A0864D87602733EC86A64521F2B18177B200C
		BBE117577A615D6C770988C0BAD946E208E24FA074E5AB31
		43DB5BFCE0FD108E4B82D120A93AD2CAFFFFFFFFFFFFFFFF
	`),
	G: []byte{0x05},
}

// Group6144 is the 6144-bit safe prime group (N: 768 bytes).
var Group6144 = Group{
	Name: "6144-bit",
	N: mustHex(`
		FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD1
		29024E088A67CC74020BBEA63B139B22514A08798E3404DD
		EF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245
		E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED
		EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3D
		C2007CB8A163BF0598DA48361C55D39A69163FA8FD24CF5F
		83655D23DCA3AD961C62F356208552BB9ED529077096966D
		670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B
		E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9
		DE2BCBF6955817183995497CEA956AE515D2261898FA0510
		15728E5A8AAAC42DAD33170D04507A33A85521ABDF1CBA64
		ECFB850458DBEF0A8AEA71575D060C7DB3970F85A6E1E4C7
		ABF5AE8CDB0933D71E8C94E04A25619DCEE3D2261AD2EE6B
		F12FFA06D98A0864D87602733EC86A64521F2B18177B200C
		BBE117577A615D6C770988C0BAD946E208E24FA074E5AB31
		43DB5BFCE0FD108E4B82D120A921080 11A723C12A787E6D7
		88719A10BDBA5B2699C327186AF4E23C1A946834B6150BDA
		2583E9CA2AD44CE8DBBBC2DB04DE8EF92E8EFC141FBECAA6
		287C59474E6BC05D99B2964FA090C3A2233BA186515BE7ED
		1F612970CEE2D7AFB81BDD762170481CD0069127D5B05AA9
		93B4EA988D8FDDC186FFB7DC90A6C08F4DF435C934063199
		FFFFFFFFFFFFFFFF
	`),
	G: []byte{0x05},
}

// Group8192 is the 8192-bit safe prime group (N: 1024 bytes).
var Group8192 = Group{
	Name: "8192-bit",
	N: mustHex(`
		FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD1
		29024E088A67CC74020BBEA63B139B22514A08798E3404DD
		EF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245
		E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED
		EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3D
		C2007CB8A163BF0598DA48361C55D39A69163FA8FD24CF5F
		83655D23DCA3AD961C62F356208552BB9ED529077096966D
		670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B
		E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9
		DE2BCBF6955817183995497CEA956AE515D2261898FA0510
		15728E5A8AAAC42DAD33170D04507A33A85521ABDF1CBA64
		ECFB850458DBEF0A8AEA71575D060C7DB3970F85A6E1E4C7
		ABF5AE8CDB0933D71E8C94E04A25619DCEE3D2261AD2EE6B
		F12FFA06D98A0864D87602733EC86A64521F2B18177B200C
		BBE117577A615D6C770988C0BAD946E208E24FA074E5AB31
		43DB5BFCE0FD108E4B82D120A921080 11A723C12A787E6D7
		88719A10BDBA5B2699C327186AF4E23C1A946834B6150BDA
		2583E9CA2AD44CE8DBBBC2DB04DE8EF92E8EFC141FBECAA6
		287C59474E6BC05D99B2964FA090C3A2233BA186515BE7ED
		1F612970CEE2D7AFB81BDD762170481CD0069127D5B05AA9
		93B4EA988D8FDDC186FFB7DC90A6C08F4DF435C934028492
		36C3FAB4D27C7026C1D4DCB2602646DEC9751E763DBA37BD
		F8FF9406AD9E530EE5DB382F413001AEB06A53ED9027D831
		179727B0865A8918DA3EDBEBCF9B14ED44CE6CBACED4BB1B
		DB7F1447E6CC254B332051512BD7AF426FB8F401378CD2BF
		5983CA01C64B92ECF032EA15D1721D03F482D7CE6E74FEF6
		D55E702F46980C82B5A84031900B1C9E59E7C97FBEC7E8F3
		23A97A7E36CC88BE0F1D45B7FF585AC54BD407B22B4154AA
		CC8F6D7EBF48E1D814CC5ED20F8037E0A79715EEF29BE328
		06A1D58BB7C5DA76F550AA3D8A1FBFF0EB19CCB1A313D55C
		DA56C9EC2EF29632387FE8D76E3C0468043E8F663F4860EE
		12BF2D5B0B7474D6E694F91E6DCC4024FFFFFFFFFFFFFFFF
	`),
	G: []byte{0x13},
}

// groupTable is a frozen lookup table indexed by N's encoded byte length,
// letting LookupGroup pick the one candidate group a received N can match.
var groupTable = map[int]Group{
	len(Group4096.N): Group4096,
	len(Group6144.N): Group6144,
	len(Group8192.N): Group8192,
}

// LookupGroup returns the hardcoded group whose N is byte-identical to n and
// whose g is byte-identical to g, or ErrBadGroupParameters otherwise. Any N
// of a size other than 512/768/1024 bytes is rejected outright, including
// well-formed but non-canonical groups (e.g. a custom 2048-bit prime).
func LookupGroup(n, g []byte) (Group, error) {
	candidate, ok := groupTable[len(n)]
	if !ok {
		return Group{}, ErrBadGroupParameters
	}
	if !constantTimeEqual(candidate.N, n) || !constantTimeEqual(candidate.G, g) {
		return Group{}, ErrBadGroupParameters
	}
	return candidate, nil
}

func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := range a {
		v |= a[i] ^ b[i]
	}
	return v == 0
}
