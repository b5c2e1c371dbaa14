package suite

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"math/big"

	"github.com/cybergodev/paseto/internal/core"
	"github.com/cybergodev/paseto/internal/keys"
	"github.com/cybergodev/paseto/internal/pae"
	"github.com/cybergodev/paseto/internal/security"
)

const (
	v3ScalarLen = 48 // P-384 field element width
	v3SigLen    = 2 * v3ScalarLen
)

type v3Public struct{}

func init() { registerPublic(v3Public{}) }

func (v3Public) Version() core.Version { return core.V3 }

// Sign implements spec.md 4.4's signing half: ECDSA over P-384/SHA-384,
// with the signer's 49-byte compressed public point folded into the PAE
// ahead of the header so a verifier can't be fooled by a signature that
// happens to validate under a different keypair. The (r, s) pair is
// encoded as two fixed-width 48-byte big-endian scalars, never ASN.1,
// and s is normalized to the lower half of the curve order to avoid
// signature malleability.
func (v3Public) Sign(key *keys.SecretKey, payload, footer, implicit []byte) ([]byte, error) {
	priv := key.ECDSA()
	if priv == nil {
		return nil, fmt.Errorf("v3.public requires a P-384 secret key")
	}

	compressed := elliptic.MarshalCompressed(priv.Curve, priv.PublicKey.X, priv.PublicKey.Y)
	preAuth := pae.Encode(compressed, core.Header(core.V3, core.Public), payload, footer, implicit)

	digest := sha512.Sum384(preAuth)
	r, s, err := ecdsa.Sign(rand.Reader, priv, digest[:])
	if err != nil {
		return nil, fmt.Errorf("ecdsa sign: %w", err)
	}
	s = normalizeLowS(priv.Curve, s)

	sig := make([]byte, v3SigLen)
	r.FillBytes(sig[:v3ScalarLen])
	s.FillBytes(sig[v3ScalarLen:])

	body := make([]byte, 0, len(payload)+len(sig))
	body = append(body, payload...)
	body = append(body, sig...)
	return body, nil
}

func (v3Public) Verify(key *keys.PublicKey, body, footer, implicit []byte) ([]byte, error) {
	pub := key.ECDSA()
	if pub == nil {
		return nil, fmt.Errorf("v3.public requires a P-384 public key")
	}
	if len(body) < v3SigLen {
		return nil, fmt.Errorf("body too short for v3.public")
	}

	payload := body[:len(body)-v3SigLen]
	sig := body[len(body)-v3SigLen:]
	r := new(big.Int).SetBytes(sig[:v3ScalarLen])
	s := new(big.Int).SetBytes(sig[v3ScalarLen:])

	// ecdsa.Verify is symmetric under s -> N-s, so without this check a
	// token's signature could be republished with the high-S variant of
	// the same (r, s) pair and still verify. Reject it, matching the
	// lower-half-order requirement Sign already applies when encoding.
	half := new(big.Int).Rsh(pub.Curve.Params().N, 1)
	if s.Cmp(half) > 0 {
		security.SecureRandomDelay()
		return nil, fmt.Errorf("signature verification failed: s is not in the lower half of the curve order")
	}

	compressed := key.Compressed()
	preAuth := pae.Encode(compressed, core.Header(core.V3, core.Public), payload, footer, implicit)
	digest := sha512.Sum384(preAuth)

	if !ecdsa.Verify(pub, digest[:], r, s) {
		security.SecureRandomDelay()
		return nil, fmt.Errorf("signature verification failed")
	}
	return payload, nil
}

// normalizeLowS folds s into the lower half of the curve order, the
// same malleability guard libraries like OpenSSL apply to ECDSA
// signatures before encoding them for interchange.
func normalizeLowS(curve elliptic.Curve, s *big.Int) *big.Int {
	order := curve.Params().N
	half := new(big.Int).Rsh(order, 1)
	if s.Cmp(half) > 0 {
		return new(big.Int).Sub(order, s)
	}
	return s
}
