package suite

import (
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"

	"github.com/cybergodev/paseto/internal/core"
	"github.com/cybergodev/paseto/internal/keys"
	"github.com/cybergodev/paseto/internal/pae"
	"github.com/cybergodev/paseto/internal/security"
)

const (
	v4NonceLen = 32
	v4MacLen   = 32
)

type v4Local struct{}

func init() { registerLocal(v4Local{}) }

func (v4Local) Version() core.Version { return core.V4 }

// Encrypt implements spec.md 4.5, the current recommended local suite.
// BLAKE2b keyed by the master key derives a 56-byte stream split into a
// 32-byte ChaCha20 key and 24-byte nonce, deliberately leaving the
// stream cipher unauthenticated — integrity comes solely from the
// separate keyed BLAKE2b MAC over the PAE-encoded body.
func (v4Local) Encrypt(key *keys.LocalKey, payload, footer, implicit []byte, rnd RandomSource) ([]byte, error) {
	k := key.Bytes()
	if len(k) != 32 {
		return nil, fmt.Errorf("v4.local key must be 32 bytes")
	}

	nonce, err := rnd(v4NonceLen)
	if err != nil {
		return nil, fmt.Errorf("draw nonce: %w", err)
	}

	ek, n2, ak, err := v4SplitKeys(k, nonce)
	if err != nil {
		return nil, fmt.Errorf("derive v4.local keys: %w", err)
	}

	cipherStream, err := chacha20.NewUnauthenticatedCipher(ek, n2)
	if err != nil {
		return nil, fmt.Errorf("create chacha20 cipher: %w", err)
	}
	ciphertext := make([]byte, len(payload))
	cipherStream.XORKeyStream(ciphertext, payload)

	preAuth := pae.Encode(core.Header(core.V4, core.Local), nonce, ciphertext, footer, implicit)
	mac, err := blake2b.New(v4MacLen, ak)
	if err != nil {
		return nil, fmt.Errorf("create blake2b mac: %w", err)
	}
	mac.Write(preAuth)
	tag := mac.Sum(nil)

	body := make([]byte, 0, len(nonce)+len(ciphertext)+len(tag))
	body = append(body, nonce...)
	body = append(body, ciphertext...)
	body = append(body, tag...)
	return body, nil
}

func (v4Local) Decrypt(key *keys.LocalKey, body, footer, implicit []byte) ([]byte, error) {
	k := key.Bytes()
	if len(body) < v4NonceLen+v4MacLen {
		return nil, fmt.Errorf("body too short for v4.local")
	}

	nonce := body[:v4NonceLen]
	ciphertext := body[v4NonceLen : len(body)-v4MacLen]
	tag := body[len(body)-v4MacLen:]

	ek, n2, ak, err := v4SplitKeys(k, nonce)
	if err != nil {
		return nil, fmt.Errorf("derive v4.local keys: %w", err)
	}

	preAuth := pae.Encode(core.Header(core.V4, core.Local), nonce, ciphertext, footer, implicit)
	mac, err := blake2b.New(v4MacLen, ak)
	if err != nil {
		return nil, fmt.Errorf("create blake2b mac: %w", err)
	}
	mac.Write(preAuth)
	expected := mac.Sum(nil)

	if !security.SecureCompare(expected, tag) {
		security.SecureRandomDelay()
		return nil, fmt.Errorf("authentication tag mismatch")
	}

	cipherStream, err := chacha20.NewUnauthenticatedCipher(ek, n2)
	if err != nil {
		return nil, fmt.Errorf("create chacha20 cipher: %w", err)
	}
	payload := make([]byte, len(ciphertext))
	cipherStream.XORKeyStream(payload, ciphertext)
	return payload, nil
}

func v4SplitKeys(key, nonce []byte) (encKey, streamNonce, authKey []byte, err error) {
	encKDF, err := blake2b.New(56, key)
	if err != nil {
		return nil, nil, nil, err
	}
	encKDF.Write([]byte("paseto-encryption-key"))
	encKDF.Write(nonce)
	tmp := encKDF.Sum(nil)
	encKey, streamNonce = tmp[:32], tmp[32:]

	authKDF, err := blake2b.New(32, key)
	if err != nil {
		return nil, nil, nil, err
	}
	authKDF.Write([]byte("paseto-auth-key-for-aead"))
	authKDF.Write(nonce)
	authKey = authKDF.Sum(nil)

	return encKey, streamNonce, authKey, nil
}
