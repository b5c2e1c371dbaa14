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
	v3NonceLen = 32
	v3MacLen   = 48
	v3KDFLen   = 48
)

type v3Local struct{}

func init() { registerLocal(v3Local{}) }

func (v3Local) Version() core.Version { return core.V3 }

// Encrypt implements spec.md 4.4 (NIST Modern). Unlike v1, the nonce is
// drawn directly from the random source; it is folded into the HKDF
// info parameter for both the encryption and authentication keys rather
// than used to key an HMAC, and implicit assertions are supported.
func (v3Local) Encrypt(key *keys.LocalKey, payload, footer, implicit []byte, rnd RandomSource) ([]byte, error) {
	k := key.Bytes()
	if len(k) != 32 {
		return nil, fmt.Errorf("v3.local key must be 32 bytes")
	}

	nonce, err := rnd(v3NonceLen)
	if err != nil {
		return nil, fmt.Errorf("draw nonce: %w", err)
	}

	ek, n2, ak, err := v3SplitKeys(k, nonce)
	if err != nil {
		return nil, fmt.Errorf("derive v3.local keys: %w", err)
	}

	block, err := aes.NewCipher(ek)
	if err != nil {
		return nil, fmt.Errorf("create aes cipher: %w", err)
	}
	ciphertext := make([]byte, len(payload))
	cipher.NewCTR(block, n2).XORKeyStream(ciphertext, payload)

	preAuth := pae.Encode(core.Header(core.V3, core.Local), nonce, ciphertext, footer, implicit)
	hasher := hmac.New(sha512.New384, ak)
	hasher.Write(preAuth)
	tag := hasher.Sum(nil)

	body := make([]byte, 0, len(nonce)+len(ciphertext)+len(tag))
	body = append(body, nonce...)
	body = append(body, ciphertext...)
	body = append(body, tag...)
	return body, nil
}

func (v3Local) Decrypt(key *keys.LocalKey, body, footer, implicit []byte) ([]byte, error) {
	k := key.Bytes()
	if len(body) < v3NonceLen+v3MacLen {
		return nil, fmt.Errorf("body too short for v3.local")
	}

	nonce := body[:v3NonceLen]
	ciphertext := body[v3NonceLen : len(body)-v3MacLen]
	tag := body[len(body)-v3MacLen:]

	ek, n2, ak, err := v3SplitKeys(k, nonce)
	if err != nil {
		return nil, fmt.Errorf("derive v3.local keys: %w", err)
	}

	preAuth := pae.Encode(core.Header(core.V3, core.Local), nonce, ciphertext, footer, implicit)
	hasher := hmac.New(sha512.New384, ak)
	hasher.Write(preAuth)
	expected := hasher.Sum(nil)

	if !security.SecureCompare(expected, tag) {
		security.SecureRandomDelay()
		return nil, fmt.Errorf("authentication tag mismatch")
	}

	block, err := aes.NewCipher(ek)
	if err != nil {
		return nil, fmt.Errorf("create aes cipher: %w", err)
	}
	payload := make([]byte, len(ciphertext))
	cipher.NewCTR(block, n2).XORKeyStream(payload, ciphertext)
	return payload, nil
}

// v3SplitKeys derives the AES encryption key, its CTR nonce tail, and
// the HMAC authentication key from a single 32-byte master key, with the
// random nonce folded into each HKDF info parameter rather than used as
// an HMAC key directly (the v1 construction).
func v3SplitKeys(key, nonce []byte) (encKey, ctrNonce, authKey []byte, err error) {
	encInfo := append([]byte("paseto-encryption-key"), nonce...)
	tmp := make([]byte, v3KDFLen)
	if _, err := io.ReadFull(hkdf.New(sha512.New384, key, nil, encInfo), tmp); err != nil {
		return nil, nil, nil, err
	}
	encKey, ctrNonce = tmp[:32], tmp[32:]

	authInfo := append([]byte("paseto-auth-key-for-aead"), nonce...)
	authKey = make([]byte, v3KDFLen)
	if _, err := io.ReadFull(hkdf.New(sha512.New384, key, nil, authInfo), authKey); err != nil {
		return nil, nil, nil, err
	}
	return encKey, ctrNonce, authKey, nil
}
