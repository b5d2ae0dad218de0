package handshake

import "github.com/aspia-go/core/pkg/crypto/srp"

// VerifierStore is the external collaborator a ResponderEncryptor
// consults to authenticate a username: account management and verifier
// storage are out of scope, but the lookup shape is part of the
// handshake's contract, so it is named here.
type VerifierStore interface {
	// Lookup returns the SRP group, salt and verifier on file for
	// username, or srp.ErrUnknownUser if none exists.
	Lookup(username string) (group srp.Group, salt, verifier []byte, err error)
}

// StaticVerifierStore is a fixed-membership VerifierStore, useful for
// tests and small single-user deployments.
type StaticVerifierStore struct {
	group srp.Group
	users map[string]struct{ salt, verifier []byte }
}

// NewStaticVerifierStore builds an empty StaticVerifierStore provisioning
// new users against group.
func NewStaticVerifierStore(group srp.Group) *StaticVerifierStore {
	return &StaticVerifierStore{
		group: group,
		users: make(map[string]struct{ salt, verifier []byte }),
	}
}

// Provision derives and stores (salt, verifier) for username/password.
func (s *StaticVerifierStore) Provision(username, password string, salt []byte) {
	verifier := srp.ComputeVerifier(s.group, salt, username, password)
	s.users[username] = struct{ salt, verifier []byte }{salt, verifier}
}

// Lookup implements VerifierStore.
func (s *StaticVerifierStore) Lookup(username string) (srp.Group, []byte, []byte, error) {
	entry, ok := s.users[username]
	if !ok {
		return srp.Group{}, nil, nil, srp.ErrUnknownUser
	}
	return s.group, entry.salt, entry.verifier, nil
}
