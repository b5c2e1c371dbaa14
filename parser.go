package paseto

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cybergodev/paseto/internal/core"
	"github.com/cybergodev/paseto/internal/keys"
	"github.com/cybergodev/paseto/internal/suite"
)

type claimCheck struct {
	name string
	want any
}

type claimValidator struct {
	name string
	fn   func(name string, raw []byte) error
}

// Parser verifies a token's cryptographic envelope, then applies the
// caller-configured claim checks: every CheckClaim check in the order
// registered, then every ValidateClaim validator in the order
// registered. A CheckClaim given after a ValidateClaim still runs before
// it. A zero-value Parser is not usable; call NewParser.
type Parser struct {
	expectFooter    []byte
	expectFooterSet bool
	implicit        []byte

	checks     []claimCheck
	validators []claimValidator

	allowNoExpiration bool

	now func() time.Time
}

// NewParser allocates a Parser and applies opts in order.
func NewParser(opts ...ParserOption) (*Parser, error) {
	p := &Parser{now: time.Now}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, &ShapeError{Reason: fmt.Sprintf("applying parser option: %v", err)}
		}
	}
	return p, nil
}

// Parse verifies token against key (*LocalKey for local purposes,
// *PublicKey for public purposes), enforces the footer and
// implicit-assertion expectations configured on p, decodes the Claims
// payload, and runs the registered checks, then the registered
// validators, before returning.
func (p *Parser) Parse(token string, key any) (*Claims, error) {
	parsed, err := core.Split(token)
	if err != nil {
		return nil, &ShapeError{Token: token, Reason: err.Error()}
	}

	if p.expectFooterSet && !core.FooterMatches(parsed.Footer, p.expectFooter) {
		return nil, &CryptoError{Cause: fmt.Errorf("footer does not match expected value")}
	}

	payload, err := p.decrypt(parsed, key)
	if err != nil {
		return nil, err
	}

	claims := getClaims()
	if err := json.Unmarshal(payload, claims); err != nil {
		putClaims(claims)
		return nil, &ShapeError{Reason: fmt.Sprintf("decoding claims payload: %v", err)}
	}

	if err := p.validateRegistered(claims); err != nil {
		putClaims(claims)
		return nil, err
	}

	if err := p.runChecks(claims, payload); err != nil {
		putClaims(claims)
		return nil, err
	}

	result := &Claims{
		RegisteredClaims: claims.RegisteredClaims,
		Extra:            make(map[string]any, len(claims.Extra)),
	}
	for k, v := range claims.Extra {
		result.Extra[k] = v
	}
	putClaims(claims)
	return result, nil
}

func (p *Parser) decrypt(parsed core.Parsed, key any) ([]byte, error) {
	switch k := key.(type) {
	case *keys.LocalKey:
		if parsed.Purpose != core.Local || parsed.Version != k.Version() {
			return nil, &KeyError{Version: parsed.Version.String(), Reason: "key does not match token's version/purpose"}
		}
		s, err := suite.LookupLocal(k.Version())
		if err != nil {
			return nil, &CryptoError{Cause: err}
		}
		payload, err := s.Decrypt(k, parsed.Body, parsed.Footer, p.implicit)
		if err != nil {
			return nil, &CryptoError{Cause: err}
		}
		return payload, nil

	case *keys.PublicKey:
		if parsed.Purpose != core.Public || parsed.Version != k.Version() {
			return nil, &KeyError{Version: parsed.Version.String(), Reason: "key does not match token's version/purpose"}
		}
		s, err := suite.LookupPublic(k.Version())
		if err != nil {
			return nil, &CryptoError{Cause: err}
		}
		payload, err := s.Verify(k, parsed.Body, parsed.Footer, p.implicit)
		if err != nil {
			return nil, &CryptoError{Cause: err}
		}
		return payload, nil

	default:
		return nil, &KeyError{Version: "unknown", Reason: fmt.Sprintf("unsupported key type %T", key)}
	}
}

func (p *Parser) validateRegistered(claims *Claims) error {
	if claims.ExpiresAt.IsZero() {
		if !p.allowNoExpiration {
			return &ClaimError{Claim: "exp", Reason: "missing; use AcknowledgeNoExpiration to accept tokens with no expiration"}
		}
	} else if p.now().After(claims.ExpiresAt.Time) {
		return &ClaimError{Claim: "exp", Reason: "token has expired"}
	}

	if !claims.NotBefore.IsZero() && p.now().Before(claims.NotBefore.Time) {
		return &ClaimError{Claim: "nbf", Reason: "token is not yet valid"}
	}

	return nil
}

func (p *Parser) runChecks(claims *Claims, payload []byte) error {
	var raw map[string]json.RawMessage
	if len(p.checks) > 0 || len(p.validators) > 0 {
		if err := json.Unmarshal(payload, &raw); err != nil {
			return &ShapeError{Reason: fmt.Sprintf("re-decoding claims for checks: %v", err)}
		}
	}

	for _, c := range p.checks {
		value, ok := claimValue(claims, raw, c.name)
		if !ok {
			return &ClaimError{Claim: c.name, Reason: "missing"}
		}
		if !claimEquals(value, c.want) {
			return &ClaimError{Claim: c.name, Reason: "did not match expected value"}
		}
	}

	for _, v := range p.validators {
		fieldRaw, ok := raw[v.name]
		if !ok {
			return &ClaimError{Claim: v.name, Reason: "missing"}
		}
		if err := v.fn(v.name, fieldRaw); err != nil {
			return &ClaimError{Claim: v.name, Reason: err.Error()}
		}
	}

	return nil
}

func claimValue(claims *Claims, raw map[string]json.RawMessage, name string) (any, bool) {
	switch name {
	case "iss":
		return claims.Issuer, claims.Issuer != ""
	case "sub":
		return claims.Subject, claims.Subject != ""
	case "jti":
		return claims.ID, claims.ID != ""
	case "aud":
		return claims.Audience, len(claims.Audience) > 0
	default:
		v, ok := claims.Extra[name]
		if ok {
			return v, true
		}
		_, present := raw[name]
		return nil, present
	}
}

func claimEquals(got, want any) bool {
	gotJSON, err1 := json.Marshal(got)
	wantJSON, err2 := json.Marshal(want)
	if err1 != nil || err2 != nil {
		return false
	}
	return subtle.ConstantTimeCompare(gotJSON, wantJSON) == 1
}
