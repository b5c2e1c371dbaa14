package suite

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/cybergodev/paseto/internal/core"
	"github.com/cybergodev/paseto/internal/keys"
	"github.com/cybergodev/paseto/internal/pae"
)

type v2Local struct{}

func init() { registerLocal(v2Local{}) }

func (v2Local) Version() core.Version { return core.V2 }

// Encrypt implements spec.md 4.3 (XChaCha20-Poly1305, the original
// "modern" suite). The nonce is derived by keying BLAKE2b-24byte with
// 24 random bytes and hashing the payload, binding the nonce to the
// message it protects rather than trusting the random draw alone.
func (v2Local) Encrypt(key *keys.LocalKey, payload, footer, implicit []byte, rnd RandomSource) ([]byte, error) {
	if err := rejectImplicitUnsupported(implicit); err != nil {
		return nil, err
	}

	k := key.Bytes()
	if len(k) != 32 {
		return nil, fmt.Errorf("v2.local key must be 32 bytes")
	}

	seed, err := rnd(chacha20poly1305.NonceSizeX)
	if err != nil {
		return nil, fmt.Errorf("draw nonce seed: %w", err)
	}

	nonce, err := v2DeriveNonce(seed, payload)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(k)
	if err != nil {
		return nil, fmt.Errorf("create xchacha20poly1305 aead: %w", err)
	}

	preAuth := pae.Encode(core.Header(core.V2, core.Local), nonce, footer)
	ciphertext := aead.Seal(nil, nonce, payload, preAuth)

	body := make([]byte, 0, len(nonce)+len(ciphertext))
	body = append(body, nonce...)
	body = append(body, ciphertext...)
	return body, nil
}

func (v2Local) Decrypt(key *keys.LocalKey, body, footer, implicit []byte) ([]byte, error) {
	if err := rejectImplicitUnsupported(implicit); err != nil {
		return nil, err
	}

	k := key.Bytes()
	if len(body) < chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("body too short for v2.local")
	}

	nonce := body[:chacha20poly1305.NonceSizeX]
	ciphertext := body[chacha20poly1305.NonceSizeX:]

	aead, err := chacha20poly1305.NewX(k)
	if err != nil {
		return nil, fmt.Errorf("create xchacha20poly1305 aead: %w", err)
	}

	preAuth := pae.Encode(core.Header(core.V2, core.Local), nonce, footer)
	payload, err := aead.Open(nil, nonce, ciphertext, preAuth)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	return payload, nil
}

func v2DeriveNonce(seed, payload []byte) ([]byte, error) {
	h, err := blake2b.New(chacha20poly1305.NonceSizeX, seed)
	if err != nil {
		return nil, fmt.Errorf("create blake2b nonce hash: %w", err)
	}
	h.Write(payload)
	return h.Sum(nil), nil
}

// ReadRandom is the production RandomSource, reading from crypto/rand.
func ReadRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}
