package suite

import (
	"crypto/ed25519"
	"fmt"

	"github.com/cybergodev/paseto/internal/core"
	"github.com/cybergodev/paseto/internal/keys"
	"github.com/cybergodev/paseto/internal/pae"
	"github.com/cybergodev/paseto/internal/security"
)

type v2Public struct{}

func init() { registerPublic(v2Public{}) }

func (v2Public) Version() core.Version { return core.V2 }

// Sign implements spec.md 4.3's signing half: a plain Ed25519 signature
// over the PAE encoding of header, payload, and footer. No implicit
// assertion slot exists for this version.
func (v2Public) Sign(key *keys.SecretKey, payload, footer, implicit []byte) ([]byte, error) {
	if err := rejectImplicitUnsupported(implicit); err != nil {
		return nil, err
	}
	priv := key.Ed25519()
	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("v2.public requires an ed25519 secret key")
	}

	preAuth := pae.Encode(core.Header(core.V2, core.Public), payload, footer)
	sig := ed25519.Sign(priv, preAuth)

	body := make([]byte, 0, len(payload)+len(sig))
	body = append(body, payload...)
	body = append(body, sig...)
	return body, nil
}

func (v2Public) Verify(key *keys.PublicKey, body, footer, implicit []byte) ([]byte, error) {
	if err := rejectImplicitUnsupported(implicit); err != nil {
		return nil, err
	}
	pub := key.Ed25519()
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("v2.public requires an ed25519 public key")
	}
	if len(body) < ed25519.SignatureSize {
		return nil, fmt.Errorf("body too short for v2.public")
	}

	payload := body[:len(body)-ed25519.SignatureSize]
	sig := body[len(body)-ed25519.SignatureSize:]

	preAuth := pae.Encode(core.Header(core.V2, core.Public), payload, footer)
	if !ed25519.Verify(pub, preAuth, sig) {
		security.SecureRandomDelay()
		return nil, fmt.Errorf("signature verification failed")
	}
	return payload, nil
}
