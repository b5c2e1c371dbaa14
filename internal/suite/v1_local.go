package suite

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha512"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/cybergodev/paseto/internal/core"
	"github.com/cybergodev/paseto/internal/keys"
	"github.com/cybergodev/paseto/internal/pae"
	"github.com/cybergodev/paseto/internal/security"
)

const (
	v1NonceLen = 32
	v1MacLen   = 48 // sha512.New384 output size
)

type v1Local struct{}

func init() { registerLocal(v1Local{}) }

func (v1Local) Version() core.Version { return core.V1 }

// Encrypt implements spec.md 4.2 (NIST Original, deprecated but
// supported). The nonce is re-derived from the payload via
// HMAC-SHA384 keyed by 32 random bytes — this is v1's nonce
// construction, not a random IV chosen directly. The nonce's left 16
// bytes salt the HKDF key split; its right 16 bytes are the AES-CTR IV.
func (v1Local) Encrypt(key *keys.LocalKey, payload, footer, implicit []byte, rnd RandomSource) ([]byte, error) {
	if err := rejectImplicitUnsupported(implicit); err != nil {
		return nil, err
	}

	k := key.Bytes()
	if len(k) != 32 {
		return nil, fmt.Errorf("v1.local key must be 32 bytes")
	}

	salt, err := rnd(v1NonceLen)
	if err != nil {
		return nil, fmt.Errorf("draw nonce salt: %w", err)
	}

	hasher := hmac.New(sha512.New384, salt)
	hasher.Write(payload)
	nonce := hasher.Sum(nil)[:v1NonceLen]

	nAuth := nonce[:v1NonceLen/2]
	ek, ak, err := v1SplitKeys(k, nAuth)
	if err != nil {
		return nil, fmt.Errorf("derive v1.local keys: %w", err)
	}

	block, err := aes.NewCipher(ek)
	if err != nil {
		return nil, fmt.Errorf("create aes cipher: %w", err)
	}
	ciphertext := make([]byte, len(payload))
	cipher.NewCTR(block, nonce[v1NonceLen/2:]).XORKeyStream(ciphertext, payload)

	preAuth := pae.Encode(core.Header(core.V1, core.Local), nonce, ciphertext, footer)

	tagHasher := hmac.New(sha512.New384, ak)
	tagHasher.Write(preAuth)
	tag := tagHasher.Sum(nil)

	body := make([]byte, 0, len(nonce)+len(ciphertext)+len(tag))
	body = append(body, nonce...)
	body = append(body, ciphertext...)
	body = append(body, tag...)
	return body, nil
}

func (v1Local) Decrypt(key *keys.LocalKey, body, footer, implicit []byte) ([]byte, error) {
	if err := rejectImplicitUnsupported(implicit); err != nil {
		return nil, err
	}

	k := key.Bytes()
	if len(body) < v1NonceLen+v1MacLen {
		return nil, fmt.Errorf("body too short for v1.local")
	}

	nonce := body[:v1NonceLen]
	ciphertext := body[v1NonceLen : len(body)-v1MacLen]
	tag := body[len(body)-v1MacLen:]

	nAuth := nonce[:v1NonceLen/2]
	ek, ak, err := v1SplitKeys(k, nAuth)
	if err != nil {
		return nil, fmt.Errorf("derive v1.local keys: %w", err)
	}

	preAuth := pae.Encode(core.Header(core.V1, core.Local), nonce, ciphertext, footer)
	expectedHasher := hmac.New(sha512.New384, ak)
	expectedHasher.Write(preAuth)
	expected := expectedHasher.Sum(nil)

	if !security.SecureCompare(expected, tag) {
		security.SecureRandomDelay()
		return nil, fmt.Errorf("authentication tag mismatch")
	}

	block, err := aes.NewCipher(ek)
	if err != nil {
		return nil, fmt.Errorf("create aes cipher: %w", err)
	}
	payload := make([]byte, len(ciphertext))
	cipher.NewCTR(block, nonce[v1NonceLen/2:]).XORKeyStream(payload, ciphertext)
	return payload, nil
}

func v1SplitKeys(key, salt []byte) (encKey, authKey []byte, err error) {
	encKey = make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha512.New384, key, salt, []byte("paseto-encryption-key")), encKey); err != nil {
		return nil, nil, err
	}
	authKey = make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha512.New384, key, salt, []byte("paseto-auth-key-for-aead")), authKey); err != nil {
		return nil, nil, err
	}
	return encKey, authKey, nil
}
