package paseto

import (
	"errors"
	"fmt"
)

// Sentinel errors identify broad failure categories; use errors.Is
// against these rather than comparing error strings.
var (
	// ErrShape is returned when a token string doesn't have the
	// dot-delimited version.purpose.payload[.footer] structure, or
	// names an unrecognized version or purpose.
	ErrShape = errors.New("paseto: malformed token")

	// ErrCrypto is returned whenever decryption or signature
	// verification fails, for any reason: wrong key, tampered
	// ciphertext, wrong footer, wrong implicit assertion. The specific
	// cause is deliberately not distinguishable from the error message
	// alone, to avoid handing an attacker an oracle; call Unwrap or
	// errors.As on *CryptoError in tests that need the cause.
	ErrCrypto = errors.New("paseto: invalid token")

	// ErrKey is returned by key constructors given material of the
	// wrong length, or a version/purpose combination with no suite.
	ErrKey = errors.New("paseto: invalid key material")

	// ErrClaim is returned when a claim fails a registered or custom
	// validator during Parse.
	ErrClaim = errors.New("paseto: claim validation failed")

	// ErrBuild is returned when Builder.Build is given claims or
	// options that can't be serialized into a valid token.
	ErrBuild = errors.New("paseto: unable to build token")
)

// ShapeError reports a structurally invalid token: wrong segment count,
// unrecognized header, or malformed base64.
type ShapeError struct {
	Token  string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("paseto: malformed token: %s", e.Reason)
}

func (e *ShapeError) Unwrap() error { return ErrShape }

// CryptoError wraps the underlying cause of a decryption or signature
// failure. Error() intentionally returns the opaque ErrCrypto message;
// callers that need the real cause (tests, diagnostics) use errors.As
// to recover it, never end users.
type CryptoError struct {
	Cause error
}

func (e *CryptoError) Error() string { return ErrCrypto.Error() }

func (e *CryptoError) Unwrap() error { return e.Cause }

// Is reports ErrCrypto as this error's sentinel, so errors.Is(err,
// ErrCrypto) matches without exposing Cause through the message.
func (e *CryptoError) Is(target error) bool { return target == ErrCrypto }

// KeyError reports invalid key material: wrong length, wrong version,
// or a version/purpose with no registered suite.
type KeyError struct {
	Version string
	Reason  string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("paseto: invalid key for %s: %s", e.Version, e.Reason)
}

func (e *KeyError) Unwrap() error { return ErrKey }

// ClaimError names the offending claim and the reason it failed
// validation, so callers can build a useful rejection message without
// parsing the error string.
type ClaimError struct {
	Claim  string
	Reason string
}

func (e *ClaimError) Error() string {
	return fmt.Sprintf("paseto: claim %q: %s", e.Claim, e.Reason)
}

func (e *ClaimError) Unwrap() error { return ErrClaim }

// BuildError reports why Builder.Build could not produce a token.
type BuildError struct {
	Reason string
	Cause  error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("paseto: unable to build token: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("paseto: unable to build token: %s", e.Reason)
}

func (e *BuildError) Unwrap() error { return ErrBuild }
