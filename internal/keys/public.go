package keys

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/cybergodev/paseto/internal/core"
	"github.com/cybergodev/paseto/internal/security"
)

const (
	ed25519SecretLength = ed25519.PrivateKeySize // 64
	ed25519PublicLength = ed25519.PublicKeySize  // 32
	p384SecretLength    = 48
	p384PublicLength    = 49 // SEC1 compressed point
)

// SecretKey signs payloads for the public (asymmetric) suites. v2 and
// v4 hold an expanded Ed25519 private key; v3 holds a P-384 ECDSA
// private scalar. v1 (RSA-PSS) is not constructible here; see
// internal/suite's v1Public stub.
type SecretKey struct {
	version core.Version
	ed      ed25519.PrivateKey
	ec      *ecdsa.PrivateKey
	secure  *security.SecureBytes // raw key bytes; backs ed directly, ec.D is a separate big.Int copy
}

// NewSecretKey constructs a SecretKey tagged for v, validating the exact
// expected length for that version's signature suite.
func NewSecretKey(v core.Version, raw []byte) (*SecretKey, error) {
	switch v {
	case core.V2, core.V4:
		if len(raw) != ed25519SecretLength {
			return nil, fmt.Errorf("%w: %s secret key must be %d bytes, got %d", ErrLength, v, ed25519SecretLength, len(raw))
		}
		secure := security.NewSecureBytesFromSlice(raw)
		return &SecretKey{version: v, ed: ed25519.PrivateKey(secure.Bytes()), secure: secure}, nil
	case core.V3:
		if len(raw) != p384SecretLength {
			return nil, fmt.Errorf("%w: v3 secret key must be %d bytes, got %d", ErrLength, p384SecretLength, len(raw))
		}
		secure := security.NewSecureBytesFromSlice(raw)
		curve := elliptic.P384()
		priv := new(ecdsa.PrivateKey)
		priv.Curve = curve
		priv.D = new(big.Int).SetBytes(secure.Bytes())
		priv.PublicKey.X, priv.PublicKey.Y = curve.ScalarBaseMult(secure.Bytes())
		return &SecretKey{version: v, ec: priv, secure: secure}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported version %s for public-purpose key", ErrLength, v)
	}
}

// Version reports which protocol version this key was tagged for.
func (k *SecretKey) Version() core.Version { return k.version }

// Ed25519 returns the expanded Ed25519 private key, or nil if this
// SecretKey was constructed for v3.
func (k *SecretKey) Ed25519() ed25519.PrivateKey { return k.ed }

// ECDSA returns the P-384 private key, or nil unless this SecretKey was
// constructed for v3.
func (k *SecretKey) ECDSA() *ecdsa.PrivateKey { return k.ec }

// Destroy zeroizes the key's backing bytes. Safe to call more than once.
func (k *SecretKey) Destroy() { k.secure.Destroy() }

// PublicKey verifies signatures for the public (asymmetric) suites. v2
// and v4 hold a 32-byte Ed25519 public key; v3 holds a P-384 point, also
// available pre-compressed for PAE binding.
type PublicKey struct {
	version    core.Version
	ed         ed25519.PublicKey
	ec         *ecdsa.PublicKey
	compressed []byte
}

// NewPublicKey constructs a PublicKey tagged for v, validating the exact
// expected length for that version's signature suite. v3's 49-byte
// SEC1-compressed point is decoded and rejected if not on the curve.
func NewPublicKey(v core.Version, raw []byte) (*PublicKey, error) {
	switch v {
	case core.V2, core.V4:
		if len(raw) != ed25519PublicLength {
			return nil, fmt.Errorf("%w: %s public key must be %d bytes, got %d", ErrLength, v, ed25519PublicLength, len(raw))
		}
		cp := make([]byte, len(raw))
		copy(cp, raw)
		return &PublicKey{version: v, ed: ed25519.PublicKey(cp)}, nil
	case core.V3:
		if len(raw) != p384PublicLength {
			return nil, fmt.Errorf("%w: v3 public key must be %d bytes, got %d", ErrLength, p384PublicLength, len(raw))
		}
		curve := elliptic.P384()
		x, y := elliptic.UnmarshalCompressed(curve, raw)
		if x == nil {
			return nil, fmt.Errorf("%w: v3 public key is not a valid compressed P-384 point", ErrLength)
		}
		cp := make([]byte, len(raw))
		copy(cp, raw)
		return &PublicKey{version: v, ec: &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, compressed: cp}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported version %s for public-purpose key", ErrLength, v)
	}
}

// Version reports which protocol version this key was tagged for.
func (k *PublicKey) Version() core.Version { return k.version }

// Ed25519 returns the public key, or nil unless this PublicKey was
// constructed for v2 or v4.
func (k *PublicKey) Ed25519() ed25519.PublicKey { return k.ed }

// ECDSA returns the P-384 public key, or nil unless this PublicKey was
// constructed for v3.
func (k *PublicKey) ECDSA() *ecdsa.PublicKey { return k.ec }

// Compressed returns the 49-byte SEC1 compressed point bound into PAE
// ahead of the header for v3.public. Returns nil for other versions.
func (k *PublicKey) Compressed() []byte { return k.compressed }
