package suite

import (
	"errors"

	"github.com/cybergodev/paseto/internal/core"
	"github.com/cybergodev/paseto/internal/keys"
)

// ErrV1PublicUnsupported is returned by v1's Sign and Verify. v1.public
// calls for 2048-bit RSA-PSS with MGF1-SHA384, an algorithm this module
// chooses not to expose: RSA key handling (PKCS#1 vs PKCS#8, exponent
// validation) adds a second key-shape family solely to support a
// version PASETO itself documents as legacy, with v3.public covering the
// same "NIST-only deployment" need. Left registered, rather than
// omitted, so LookupPublic(V1) returns a suite whose Sign and Verify
// fail with this specific error instead of "no public suite registered".
var ErrV1PublicUnsupported = errors.New("v1.public (RSA-PSS) is not implemented")

type v1Public struct{}

func init() { registerPublic(v1Public{}) }

func (v1Public) Version() core.Version { return core.V1 }

func (v1Public) Sign(key *keys.SecretKey, payload, footer, implicit []byte) ([]byte, error) {
	return nil, ErrV1PublicUnsupported
}

func (v1Public) Verify(key *keys.PublicKey, body, footer, implicit []byte) ([]byte, error) {
	return nil, ErrV1PublicUnsupported
}
