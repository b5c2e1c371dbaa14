package paseto

import (
	"encoding/json"
	"time"

	"github.com/cybergodev/paseto/internal/core"
)

// Build is a package-level convenience wrapper around NewBuilder/Build.
// It is a pure function over its inputs: no package-level mutable
// state, no singleton cache, no background cleanup goroutine. Each call
// allocates a fresh Builder — cheap, since building a token involves no
// setup cost worth amortizing across calls (no connections, no
// handshake, just byte slices).
func Build(key any, claims *Claims, opts ...BuilderOption) (string, error) {
	b := &Builder{claims: getClaims(), clock: time.Now}
	if claims != nil {
		b.claims.RegisteredClaims = claims.RegisteredClaims
		for k, v := range claims.Extra {
			b.claims.Extra[k] = v
		}
		if !claims.IssuedAt.IsZero() {
			b.issuedAtSet = true
		}
		if !claims.ExpiresAt.IsZero() {
			b.expirationSet = true
		}
	}
	// Options apply after the caller's claims so WithIssuedAt/
	// WithExpiration/WithoutExpiration can override them deliberately.
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return "", &BuildError{Reason: "applying builder option", Cause: err}
		}
	}
	return b.Build(key)
}

// Parse is a package-level convenience wrapper around NewParser/Parse.
func Parse(key any, token string, opts ...ParserOption) (*Claims, error) {
	p, err := NewParser(opts...)
	if err != nil {
		return nil, err
	}
	return p.Parse(token, key)
}

// ParseValue parses a token and decodes its Extra claims into v, for
// callers who'd rather work with a typed application struct than the
// generic Claims.Extra map. v must be a non-nil pointer.
func ParseValue(key any, token string, v any, opts ...ParserOption) (*Claims, error) {
	claims, err := Parse(key, token, opts...)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(claims.Extra)
	if err != nil {
		return claims, &ShapeError{Token: token, Reason: "re-encoding claims for ParseValue"}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return claims, &ShapeError{Token: token, Reason: "decoding claims into target value"}
	}
	return claims, nil
}

// UntrustedFooterPeek decodes and returns a token's footer bytes without
// any cryptographic verification. Its sole sanctioned use is
// key-rotation lookup: pick a key candidate by footer-embedded key ID,
// then call Parse with that key. A nil, nil return means the token
// carries no footer segment at all.
func UntrustedFooterPeek(token string) ([]byte, error) {
	return core.UntrustedFooterPeek(token)
}

// UntrustedHeaderPeek reads the version and purpose off a token's header
// without decoding or verifying the body, for the same key-selection use
// case as UntrustedFooterPeek.
func UntrustedHeaderPeek(token string) (Version, Purpose, error) {
	return core.UntrustedHeaderPeek(token)
}
