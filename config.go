package paseto

import "time"

// BuilderOption configures a Builder before Build runs. Grounded in the
// functional-options shape the PASETO ecosystem uses for optional,
// order-independent token parameters (footer, implicit assertion)
// rather than a flat Config struct a caller must zero-value correctly.
type BuilderOption func(*Builder) error

// WithFooter attaches unencrypted, authenticated footer data to the
// token. The footer is bound into the PAE computation but never
// encrypted — callers use it for key-rotation hints (a key ID), never
// secrets.
func WithFooter(footer []byte) BuilderOption {
	return func(b *Builder) error {
		b.footer = footer
		return nil
	}
}

// WithImplicitAssertion attaches data that is cryptographically bound
// into the token (v3/v4 only) but never transmitted as part of it — the
// verifier must supply the identical bytes out-of-band. Passing this to
// a v1/v2 Builder causes Build to fail, since those versions have no
// implicit-assertion slot.
func WithImplicitAssertion(assertion []byte) BuilderOption {
	return func(b *Builder) error {
		b.implicit = assertion
		return nil
	}
}

// WithIssuedAt overrides the default iat (time.Now) with an explicit
// value, primarily for deterministic tests.
func WithIssuedAt(t ClaimTime) BuilderOption {
	return func(b *Builder) error {
		b.claims.IssuedAt = t
		b.issuedAtSet = true
		return nil
	}
}

// WithExpiration overrides the default exp (iat + one hour).
func WithExpiration(t ClaimTime) BuilderOption {
	return func(b *Builder) error {
		b.claims.ExpiresAt = t
		b.expirationSet = true
		return nil
	}
}

// WithoutExpiration produces a token that never expires. Parse still
// enforces every other registered claim check; callers asking for this
// must explicitly acknowledge it via ParserOption
// AcknowledgeNoExpiration, mirroring spec.md's requirement that an
// unbounded token never validates silently.
func WithoutExpiration() BuilderOption {
	return func(b *Builder) error {
		b.claims.ExpiresAt = ClaimTime{}
		b.expirationSet = true
		return nil
	}
}

// WithClock overrides the time source Build reads for the default
// iat/nbf/exp claims (time.Now by default), so a caller can produce a
// token stamped with a fixed, reproducible time in tests without
// touching a module-scope clock.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) error {
		b.clock = now
		return nil
	}
}

// ParserOption configures a Parser before Parse runs.
type ParserOption func(*Parser) error

// ExpectFooter requires the token's footer to exactly match want,
// verified in constant time before any cryptographic work runs.
func ExpectFooter(want []byte) ParserOption {
	return func(p *Parser) error {
		p.expectFooter = want
		p.expectFooterSet = true
		return nil
	}
}

// ExpectImplicitAssertion supplies the out-of-band implicit assertion
// bytes the token was built with (v3/v4 only).
func ExpectImplicitAssertion(assertion []byte) ParserOption {
	return func(p *Parser) error {
		p.implicit = assertion
		return nil
	}
}

// CheckClaim requires the named claim to equal want exactly (compared
// as decoded JSON values).
func CheckClaim(name string, want any) ParserOption {
	return func(p *Parser) error {
		p.checks = append(p.checks, claimCheck{name: name, want: want})
		return nil
	}
}

// ValidateClaim registers a custom validator for the named claim,
// invoked with the claim's raw JSON value. Validators run in the order
// registered, after the built-in exp/nbf checks and after every
// CheckClaim check, whichever option was given first.
func ValidateClaim(name string, fn func(name string, raw []byte) error) ParserOption {
	return func(p *Parser) error {
		p.validators = append(p.validators, claimValidator{name: name, fn: fn})
		return nil
	}
}

// UseClock overrides the time source Parse reads for exp/nbf checks
// (time.Now by default), the Parser-side counterpart to the Builder's
// WithClock — the same module-scope-clock-call problem, just on the
// validation path rather than the default-claims path.
func UseClock(now func() time.Time) ParserOption {
	return func(p *Parser) error {
		p.now = now
		return nil
	}
}

// AcknowledgeNoExpiration permits Parse to accept a token with no exp
// claim. Without this option, a missing exp is treated as a claim
// validation failure — an attacker-controlled unbounded token is never
// the silent default.
func AcknowledgeNoExpiration() ParserOption {
	return func(p *Parser) error {
		p.allowNoExpiration = true
		return nil
	}
}
