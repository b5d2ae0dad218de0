package aead

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aspia-go/core/pkg/crypto/srp"
)

func testKeyAndIV() ([KeySize]byte, [IVSize]byte) {
	var key [KeySize]byte
	var iv [IVSize]byte
	for i := range key {
		key[i] = byte(i)
	}
	for i := range iv {
		iv[i] = byte(i + 100)
	}
	return key, iv
}

func TestSealOpenRoundTrip(t *testing.T) {
	for _, method := range []srp.Method{srp.MethodAES256GCM, srp.MethodChaCha20Poly1305} {
		key, iv := testKeyAndIV()
		encryptor, err := New(method, key, iv)
		require.NoError(t, err)
		decryptor, err := New(method, key, iv)
		require.NoError(t, err)

		plaintext := []byte("dirty rectangle payload")
		aad := []byte("message-header")

		ciphertext, err := encryptor.Seal(nil, plaintext, aad)
		require.NoError(t, err)
		require.NotEqual(t, plaintext, ciphertext)

		got, err := decryptor.Open(nil, ciphertext, aad)
		require.NoError(t, err)
		require.Equal(t, plaintext, got)
	}
}

func TestSuccessiveMessagesUseDistinctNonces(t *testing.T) {
	key, iv := testKeyAndIV()
	encryptor, err := New(srp.MethodAES256GCM, key, iv)
	require.NoError(t, err)

	plaintext := []byte("same plaintext every time")
	first, err := encryptor.Seal(nil, plaintext, nil)
	require.NoError(t, err)
	second, err := encryptor.Seal(nil, plaintext, nil)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestOpenRejectsTamperedCiphertext(t *testing.T) {
	key, iv := testKeyAndIV()
	encryptor, err := New(srp.MethodAES256GCM, key, iv)
	require.NoError(t, err)
	decryptor, err := New(srp.MethodAES256GCM, key, iv)
	require.NoError(t, err)

	ciphertext, err := encryptor.Seal(nil, []byte("payload"), nil)
	require.NoError(t, err)
	ciphertext[0] ^= 0xff

	_, err = decryptor.Open(nil, ciphertext, nil)
	require.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestOpenRejectsMismatchedAdditionalData(t *testing.T) {
	key, iv := testKeyAndIV()
	encryptor, err := New(srp.MethodChaCha20Poly1305, key, iv)
	require.NoError(t, err)
	decryptor, err := New(srp.MethodChaCha20Poly1305, key, iv)
	require.NoError(t, err)

	ciphertext, err := encryptor.Seal(nil, []byte("payload"), []byte("header-v1"))
	require.NoError(t, err)

	_, err = decryptor.Open(nil, ciphertext, []byte("header-v2"))
	require.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestOpenRejectsOutOfOrderCounter(t *testing.T) {
	key, iv := testKeyAndIV()
	encryptor, err := New(srp.MethodAES256GCM, key, iv)
	require.NoError(t, err)
	decryptor, err := New(srp.MethodAES256GCM, key, iv)
	require.NoError(t, err)

	first, err := encryptor.Seal(nil, []byte("one"), nil)
	require.NoError(t, err)
	second, err := encryptor.Seal(nil, []byte("two"), nil)
	require.NoError(t, err)

	// decryptor's counter is still at 0; feeding it the second ciphertext
	// first must fail since it was sealed under a different nonce.
	_, err = decryptor.Open(nil, second, nil)
	require.ErrorIs(t, err, ErrAuthenticationFailed)

	_, err = decryptor.Open(nil, first, nil)
	require.NoError(t, err)
}

func TestNewRejectsUnknownMethod(t *testing.T) {
	key, iv := testKeyAndIV()
	_, err := New(srp.MethodUnknown, key, iv)
	require.ErrorIs(t, err, ErrUnknownMethod)
}

func TestDestroyZeroisesState(t *testing.T) {
	key, iv := testKeyAndIV()
	c, err := New(srp.MethodAES256GCM, key, iv)
	require.NoError(t, err)

	_, err = c.Seal(nil, []byte("payload"), nil)
	require.NoError(t, err)

	c.Destroy()
	require.Equal(t, [IVSize]byte{}, c.baseIV)
	require.Equal(t, uint64(0), c.counter)
}
