// Package keys implements (Version, Purpose)-tagged key material for the
// PASETO crypto core: constructing a key from the wrong number of bytes
// fails with a typed length error rather than truncating or padding, and
// every key zeroizes its backing bytes on Destroy.
package keys

import (
	"errors"
	"fmt"

	"github.com/cybergodev/paseto/internal/core"
	"github.com/cybergodev/paseto/internal/security"
)

// ErrLength is wrapped by every key-construction error caused by a byte
// slice of the wrong length for its (Version, Purpose).
var ErrLength = errors.New("wrong key length for this paseto version")

const localKeyLength = 32

// LocalKey is the 32-byte symmetric key shared by all four local suites.
type LocalKey struct {
	version core.Version
	secure  *security.SecureBytes
}

// NewLocalKey constructs a LocalKey, requiring exactly 32 bytes. A
// byte slice of any other length is rejected outright — never truncated,
// never padded.
func NewLocalKey(v core.Version, raw []byte) (*LocalKey, error) {
	if len(raw) != localKeyLength {
		return nil, fmt.Errorf("%w: local key must be %d bytes, got %d", ErrLength, localKeyLength, len(raw))
	}
	return &LocalKey{version: v, secure: security.NewSecureBytesFromSlice(raw)}, nil
}

// Version reports which protocol version this key was tagged for.
func (k *LocalKey) Version() core.Version { return k.version }

// Bytes exposes the raw key material. Callers must not retain the
// returned slice past the key's lifetime.
func (k *LocalKey) Bytes() []byte { return k.secure.Bytes() }

// Destroy zeroizes the key's backing bytes. Safe to call more than once.
func (k *LocalKey) Destroy() { k.secure.Destroy() }
