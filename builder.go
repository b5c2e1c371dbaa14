package paseto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cybergodev/paseto/internal/core"
	"github.com/cybergodev/paseto/internal/keys"
	"github.com/cybergodev/paseto/internal/suite"
)

// defaultTTL is applied when the caller doesn't override expiration:
// iat is now, nbf is iat, exp is iat plus one hour.
const defaultTTL = time.Hour

// Builder accumulates claims and optional parameters, then produces a
// token against a single key. A zero-value Builder is not usable; call
// NewBuilder.
type Builder struct {
	claims *Claims

	footer   []byte
	implicit []byte

	issuedAtSet   bool
	expirationSet bool

	clock func() time.Time
}

// NewBuilder allocates a Builder and applies opts in order. The default
// claims (iat = now, nbf = iat, exp = iat + 1h) are filled in by Build
// for any of them still unset.
func NewBuilder(opts ...BuilderOption) (*Builder, error) {
	b := &Builder{claims: getClaims(), clock: time.Now}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, &BuildError{Reason: "applying builder option", Cause: err}
		}
	}
	return b, nil
}

// Set assigns a claim by name. Reserved names (iss, sub, aud, exp, nbf,
// iat, jti) route into the typed RegisteredClaims fields with a type
// check; any other name is validated (length, control characters — no
// HTML/script heuristics, since a token payload is never rendered as a
// document) and stored in Claims.Extra.
func (b *Builder) Set(key string, value any) error {
	switch key {
	case "iss":
		s, ok := value.(string)
		if !ok {
			return &ClaimError{Claim: key, Reason: "expected a string"}
		}
		if err := validateString(key, s); err != nil {
			return err
		}
		b.claims.Issuer = s
	case "sub":
		s, ok := value.(string)
		if !ok {
			return &ClaimError{Claim: key, Reason: "expected a string"}
		}
		if err := validateString(key, s); err != nil {
			return err
		}
		b.claims.Subject = s
	case "jti":
		s, ok := value.(string)
		if !ok {
			return &ClaimError{Claim: key, Reason: "expected a string"}
		}
		if err := validateString(key, s); err != nil {
			return err
		}
		b.claims.ID = s
	case "aud":
		switch v := value.(type) {
		case string:
			b.claims.Audience = []string{v}
		case []string:
			b.claims.Audience = v
		default:
			return &ClaimError{Claim: key, Reason: "expected a string or []string"}
		}
		if err := validateStringSlice(key, b.claims.Audience); err != nil {
			return err
		}
	case "exp":
		t, ok := value.(time.Time)
		if !ok {
			return &ClaimError{Claim: key, Reason: "expected a time.Time"}
		}
		b.claims.ExpiresAt = NewClaimTime(t)
		b.expirationSet = true
	case "nbf":
		t, ok := value.(time.Time)
		if !ok {
			return &ClaimError{Claim: key, Reason: "expected a time.Time"}
		}
		b.claims.NotBefore = NewClaimTime(t)
	case "iat":
		t, ok := value.(time.Time)
		if !ok {
			return &ClaimError{Claim: key, Reason: "expected a time.Time"}
		}
		b.claims.IssuedAt = NewClaimTime(t)
		b.issuedAtSet = true
	default:
		if err := validateExtraKey(key); err != nil {
			return err
		}
		if err := validateExtraValue(key, value); err != nil {
			return err
		}
		if _, exists := b.claims.Extra[key]; !exists {
			if err := validateExtraSize(b.claims.Extra); err != nil {
				return err
			}
		}
		b.claims.Extra[key] = value
	}
	return nil
}

// Build finalizes default claims, serializes the payload, and produces
// a token under key. key must be *LocalKey (for v1-v4.local) or
// *SecretKey (for v2-v4.public; v1.public is unimplemented).
func (b *Builder) Build(key any) (string, error) {
	defer putClaims(b.claims)

	now := b.clock().UTC()
	if !b.issuedAtSet {
		b.claims.IssuedAt = NewClaimTime(now)
	}
	if b.claims.NotBefore.IsZero() {
		b.claims.NotBefore = b.claims.IssuedAt
	}
	if !b.expirationSet {
		b.claims.ExpiresAt = NewClaimTime(b.claims.IssuedAt.Time.Add(defaultTTL))
	}
	if b.claims.ID == "" {
		b.claims.ID = uuid.NewString()
	}

	payload, err := json.Marshal(b.claims)
	if err != nil {
		return "", &BuildError{Reason: "encoding claims", Cause: err}
	}

	if err := core.ValidateFooterBytes(b.footer); err != nil {
		return "", &BuildError{Reason: "validating footer", Cause: err}
	}

	switch k := key.(type) {
	case *keys.LocalKey:
		s, err := suite.LookupLocal(k.Version())
		if err != nil {
			return "", &BuildError{Reason: "looking up local suite", Cause: err}
		}
		body, err := s.Encrypt(k, payload, b.footer, b.implicit, suite.ReadRandom)
		if err != nil {
			return "", &BuildError{Reason: "encrypting token", Cause: err}
		}
		return core.Encode(k.Version(), core.Local, body, b.footer), nil

	case *keys.SecretKey:
		s, err := suite.LookupPublic(k.Version())
		if err != nil {
			return "", &BuildError{Reason: "looking up public suite", Cause: err}
		}
		body, err := s.Sign(k, payload, b.footer, b.implicit)
		if err != nil {
			return "", &BuildError{Reason: "signing token", Cause: err}
		}
		return core.Encode(k.Version(), core.Public, body, b.footer), nil

	default:
		return "", &BuildError{Reason: fmt.Sprintf("unsupported key type %T", key)}
	}
}
