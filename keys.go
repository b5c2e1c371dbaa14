package paseto

import (
	"github.com/cybergodev/paseto/internal/keys"
)

// LocalKey is 32 bytes of symmetric key material shared by all four
// local (encrypt-then-authenticate or AEAD) suites.
type LocalKey = keys.LocalKey

// NewLocalKey constructs a LocalKey tagged for v from raw, which must be
// exactly 32 bytes.
func NewLocalKey(v Version, raw []byte) (*LocalKey, error) {
	k, err := keys.NewLocalKey(v, raw)
	if err != nil {
		return nil, &KeyError{Version: v.String(), Reason: err.Error()}
	}
	return k, nil
}

// SecretKey signs tokens for the public (asymmetric) suites.
type SecretKey = keys.SecretKey

// NewSecretKey constructs a SecretKey tagged for v. v2 and v4 expect a
// 64-byte expanded Ed25519 private key; v3 expects a 48-byte P-384
// scalar. v1 has no constructible secret key (see the v1.public stub).
func NewSecretKey(v Version, raw []byte) (*SecretKey, error) {
	k, err := keys.NewSecretKey(v, raw)
	if err != nil {
		return nil, &KeyError{Version: v.String(), Reason: err.Error()}
	}
	return k, nil
}

// PublicKey verifies tokens for the public (asymmetric) suites.
type PublicKey = keys.PublicKey

// NewPublicKey constructs a PublicKey tagged for v. v2 and v4 expect a
// 32-byte Ed25519 public key; v3 expects a 49-byte SEC1-compressed
// P-384 point.
func NewPublicKey(v Version, raw []byte) (*PublicKey, error) {
	k, err := keys.NewPublicKey(v, raw)
	if err != nil {
		return nil, &KeyError{Version: v.String(), Reason: err.Error()}
	}
	return k, nil
}
