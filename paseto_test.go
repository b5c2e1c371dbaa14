package paseto

import (
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"
	"time"
)

func randomLocalKey(t *testing.T, v Version) *LocalKey {
	t.Helper()
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	k, err := NewLocalKey(v, raw)
	if err != nil {
		t.Fatalf("NewLocalKey: %v", err)
	}
	return k
}

func ed25519Pair(t *testing.T, v Version) (*SecretKey, *PublicKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("ed25519.GenerateKey: %v", err)
	}
	sk, err := NewSecretKey(v, priv)
	if err != nil {
		t.Fatalf("NewSecretKey: %v", err)
	}
	pk, err := NewPublicKey(v, pub)
	if err != nil {
		t.Fatalf("NewPublicKey: %v", err)
	}
	return sk, pk
}

func TestV4LocalHappyPath(t *testing.T) {
	key := randomLocalKey(t, V4)
	claims := &Claims{}
	claims.Subject = "user-1234"

	token, err := Build(key, claims)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.HasPrefix(token, "v4.local.") {
		t.Fatalf("expected v4.local. prefix, got %s", token)
	}

	got, err := Parse(key, token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Subject != "user-1234" {
		t.Errorf("subject mismatch: got %q", got.Subject)
	}
	if got.ID == "" {
		t.Error("expected a default jti to be assigned")
	}
}

func TestV4PublicHappyPathAndBitFlip(t *testing.T) {
	sk, pk := ed25519Pair(t, V4)
	claims := &Claims{}
	claims.Issuer = "issuer.example"

	token, err := Build(sk, claims)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if _, err := Parse(pk, token); err != nil {
		t.Fatalf("Parse of untampered token failed: %v", err)
	}

	tampered := []byte(token)
	// Flip a byte inside the base64 payload segment, well past the header.
	idx := len("v4.public.") + 5
	if tampered[idx] == 'A' {
		tampered[idx] = 'B'
	} else {
		tampered[idx] = 'A'
	}

	if _, err := Parse(pk, string(tampered)); err == nil {
		t.Error("expected Parse to reject a token whose signed payload was altered")
	}
}

func TestFooterMismatchRejected(t *testing.T) {
	key := randomLocalKey(t, V4)
	token, err := Build(key, &Claims{}, WithFooter([]byte("key-id:1")))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if _, err := Parse(key, token, ExpectFooter([]byte("key-id:2"))); err == nil {
		t.Error("expected Parse to reject a footer mismatch")
	}
	if _, err := Parse(key, token, ExpectFooter([]byte("key-id:1"))); err != nil {
		t.Errorf("expected Parse to accept the correct footer: %v", err)
	}
}

func TestReservedClaimMisuseRejected(t *testing.T) {
	b, err := NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if err := b.Set("exp", "not-a-time"); err == nil {
		t.Error("expected Set(\"exp\", wrong-type) to fail")
	}

	b2, err := NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if err := b2.Set("iss", 12345); err == nil {
		t.Error("expected Set(\"iss\", wrong-type) to fail")
	}
}

func TestDefaultExpirationIsOneHourAfterIssuedAt(t *testing.T) {
	key := randomLocalKey(t, V4)
	token, err := Build(key, &Claims{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got, err := Parse(key, token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	delta := got.ExpiresAt.Time.Sub(got.IssuedAt.Time)
	if delta != time.Hour {
		t.Errorf("expected exp = iat + 1h, got delta %s", delta)
	}
	if !got.NotBefore.Time.Equal(got.IssuedAt.Time) {
		t.Error("expected nbf to default to iat")
	}
}

func TestWithClockProducesDeterministicDefaults(t *testing.T) {
	key := randomLocalKey(t, V4)
	fixed := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	frozen := func() time.Time { return fixed }

	token, err := Build(key, &Claims{}, WithClock(frozen))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got, err := Parse(key, token, UseClock(frozen))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !got.IssuedAt.Time.Equal(fixed) {
		t.Errorf("expected iat = %s, got %s", fixed, got.IssuedAt.Time)
	}
	if !got.ExpiresAt.Time.Equal(fixed.Add(defaultTTL)) {
		t.Errorf("expected exp = %s, got %s", fixed.Add(defaultTTL), got.ExpiresAt.Time)
	}
}

func TestUseClockGovernsExpirationCheck(t *testing.T) {
	key := randomLocalKey(t, V4)
	issuedAt := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	token, err := Build(key, &Claims{}, WithClock(func() time.Time { return issuedAt }))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	beforeExpiry := func() time.Time { return issuedAt.Add(30 * time.Minute) }
	if _, err := Parse(key, token, UseClock(beforeExpiry)); err != nil {
		t.Errorf("expected token to still be valid 30m after issuance: %v", err)
	}

	afterExpiry := func() time.Time { return issuedAt.Add(2 * time.Hour) }
	if _, err := Parse(key, token, UseClock(afterExpiry)); err == nil {
		t.Error("expected token to be expired 2h after issuance")
	}
}

func TestImplicitAssertionBindingV4(t *testing.T) {
	key := randomLocalKey(t, V4)
	token, err := Build(key, &Claims{}, WithImplicitAssertion([]byte("request-context-a")))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if _, err := Parse(key, token, ExpectImplicitAssertion([]byte("request-context-b"))); err == nil {
		t.Error("expected Parse to reject the wrong implicit assertion")
	}
	if _, err := Parse(key, token, ExpectImplicitAssertion([]byte("request-context-a"))); err != nil {
		t.Errorf("expected Parse to accept the matching implicit assertion: %v", err)
	}
	if _, err := Parse(key, token); err == nil {
		t.Error("expected Parse without the implicit assertion to fail (it's bound into the MAC)")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	key := randomLocalKey(t, V4)
	past := NewClaimTime(time.Now().Add(-2 * time.Hour))
	token, err := Build(key, &Claims{}, WithIssuedAt(past), WithExpiration(NewClaimTime(time.Now().Add(-time.Hour))))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if _, err := Parse(key, token); err == nil {
		t.Error("expected Parse to reject an expired token")
	}
}

func TestWithoutExpirationRequiresAcknowledgement(t *testing.T) {
	key := randomLocalKey(t, V4)
	token, err := Build(key, &Claims{}, WithoutExpiration())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if _, err := Parse(key, token); err == nil {
		t.Error("expected Parse to reject a no-expiration token without AcknowledgeNoExpiration")
	}
	if _, err := Parse(key, token, AcknowledgeNoExpiration()); err != nil {
		t.Errorf("expected Parse with AcknowledgeNoExpiration to succeed: %v", err)
	}
}

func TestCrossVersionTokenRejected(t *testing.T) {
	keyV4 := randomLocalKey(t, V4)
	token, err := Build(keyV4, &Claims{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	otherRaw := make([]byte, 32)
	if _, err := rand.Read(otherRaw); err != nil {
		t.Fatal(err)
	}
	keyV2, err := NewLocalKey(V2, otherRaw)
	if err != nil {
		t.Fatalf("NewLocalKey: %v", err)
	}

	if _, err := Parse(keyV2, token); err == nil {
		t.Error("expected Parse to reject a v4 token against a v2 key")
	}
}

func TestCrossPurposeTokenRejected(t *testing.T) {
	key := randomLocalKey(t, V4)
	token, err := Build(key, &Claims{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	_, pk := ed25519Pair(t, V4)
	if _, err := Parse(pk, token); err == nil {
		t.Error("expected Parse to reject a local token against a public key")
	}
}

func TestCustomClaimRoundTripAndCheck(t *testing.T) {
	key := randomLocalKey(t, V4)
	b, err := NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if err := b.Set("role", "admin"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	token, err := b.Build(key)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got, err := Parse(key, token, CheckClaim("role", "admin"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Extra["role"] != "admin" {
		t.Errorf("expected role=admin in Extra, got %v", got.Extra["role"])
	}

	if _, err := Parse(key, token, CheckClaim("role", "guest")); err == nil {
		t.Error("expected CheckClaim mismatch to fail Parse")
	}
}

func TestUntrustedPeeksDoNotRequireAKey(t *testing.T) {
	key := randomLocalKey(t, V3)
	token, err := Build(key, &Claims{}, WithFooter([]byte("kid:7")))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	v, p, err := UntrustedHeaderPeek(token)
	if err != nil {
		t.Fatalf("UntrustedHeaderPeek: %v", err)
	}
	if v != V3 || p != Local {
		t.Errorf("expected v3/local, got %s/%s", v, p)
	}

	footer, err := UntrustedFooterPeek(token)
	if err != nil {
		t.Fatalf("UntrustedFooterPeek: %v", err)
	}
	if string(footer) != "kid:7" {
		t.Errorf("expected footer kid:7, got %q", footer)
	}
}
