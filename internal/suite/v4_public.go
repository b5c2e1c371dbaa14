package suite

import (
	"crypto/ed25519"
	"fmt"

	"github.com/cybergodev/paseto/internal/core"
	"github.com/cybergodev/paseto/internal/keys"
	"github.com/cybergodev/paseto/internal/pae"
	"github.com/cybergodev/paseto/internal/security"
)

type v4Public struct{}

func init() { registerPublic(v4Public{}) }

func (v4Public) Version() core.Version { return core.V4 }

// Sign implements spec.md 4.6, the current recommended public suite:
// Ed25519 over the PAE encoding of header, payload, footer, and an
// optional implicit assertion.
func (v4Public) Sign(key *keys.SecretKey, payload, footer, implicit []byte) ([]byte, error) {
	priv := key.Ed25519()
	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("v4.public requires an ed25519 secret key")
	}

	preAuth := pae.Encode(core.Header(core.V4, core.Public), payload, footer, implicit)
	sig := ed25519.Sign(priv, preAuth)

	body := make([]byte, 0, len(payload)+len(sig))
	body = append(body, payload...)
	body = append(body, sig...)
	return body, nil
}

func (v4Public) Verify(key *keys.PublicKey, body, footer, implicit []byte) ([]byte, error) {
	pub := key.Ed25519()
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("v4.public requires an ed25519 public key")
	}
	if len(body) < ed25519.SignatureSize {
		return nil, fmt.Errorf("body too short for v4.public")
	}

	payload := body[:len(body)-ed25519.SignatureSize]
	sig := body[len(body)-ed25519.SignatureSize:]

	preAuth := pae.Encode(core.Header(core.V4, core.Public), payload, footer, implicit)
	if !ed25519.Verify(pub, preAuth, sig) {
		security.SecureRandomDelay()
		return nil, fmt.Errorf("signature verification failed")
	}
	return payload, nil
}
