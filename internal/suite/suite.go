// Package suite implements the PASETO cryptographic kernel: one
// encrypt/decrypt or sign/verify recipe per (Version, Purpose) pair,
// exactly as prescribed by the PASETO specification. Every suite binds
// its variable-length inputs through internal/pae and nothing else.
package suite

import (
	"fmt"

	"github.com/cybergodev/paseto/internal/core"
	"github.com/cybergodev/paseto/internal/keys"
)

// RandomSource draws n cryptographically secure random bytes. Production
// code uses crypto/rand; tests inject a fixed stream to reproduce the
// official PASETO test vectors.
type RandomSource func(n int) ([]byte, error)

// Local is the symmetric authenticated-encryption suite for one version.
type Local interface {
	Version() core.Version

	// Encrypt returns body_bytes = nonce || ciphertext || tag (v1-v3) or
	// nonce || ciphertext || tag (v4, stream cipher + separate MAC).
	// implicit must be empty for v1 and v2, which don't support it.
	Encrypt(key *keys.LocalKey, payload, footer, implicit []byte, rnd RandomSource) ([]byte, error)

	// Decrypt reverses Encrypt and authenticates body_bytes, returning
	// the original payload. Any tampering, wrong key, wrong footer, or
	// wrong implicit assertion must fail here.
	Decrypt(key *keys.LocalKey, body, footer, implicit []byte) ([]byte, error)
}

// Public is the asymmetric signing suite for one version.
type Public interface {
	Version() core.Version

	// Sign returns body_bytes = message || signature.
	// implicit must be empty for v1 and v2, which don't support it.
	Sign(key *keys.SecretKey, payload, footer, implicit []byte) ([]byte, error)

	// Verify reverses Sign, returning the original payload on success.
	Verify(key *keys.PublicKey, body, footer, implicit []byte) ([]byte, error)
}

var (
	localSuites  = map[core.Version]Local{}
	publicSuites = map[core.Version]Public{}
)

func registerLocal(s Local)   { localSuites[s.Version()] = s }
func registerPublic(s Public) { publicSuites[s.Version()] = s }

// LookupLocal returns the registered local suite for v.
func LookupLocal(v core.Version) (Local, error) {
	s, ok := localSuites[v]
	if !ok {
		return nil, fmt.Errorf("no local suite registered for %s", v)
	}
	return s, nil
}

// LookupPublic returns the registered public suite for v.
func LookupPublic(v core.Version) (Public, error) {
	s, ok := publicSuites[v]
	if !ok {
		return nil, fmt.Errorf("no public suite registered for %s", v)
	}
	return s, nil
}

// rejectImplicitUnsupported enforces that v1/v2 callers never pass a
// non-empty implicit assertion — those versions have nowhere to bind it.
func rejectImplicitUnsupported(implicit []byte) error {
	if len(implicit) != 0 {
		return fmt.Errorf("implicit assertions are not supported by this version")
	}
	return nil
}
