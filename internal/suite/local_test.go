package suite

import (
	"bytes"
	"testing"

	"github.com/cybergodev/paseto/internal/core"
	"github.com/cybergodev/paseto/internal/keys"
)

func fixedRandom(b byte) RandomSource {
	return func(n int) ([]byte, error) {
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = b
		}
		return buf, nil
	}
}

// localKeyFor derives a deterministic but non-trivial 32-byte key from
// seed, distinct enough per seed to exercise "wrong key" test cases.
func localKeyFor(t *testing.T, v core.Version, seed byte) *keys.LocalKey {
	t.Helper()
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte((i*167 + int(seed)*31 + 59) % 256)
	}
	k, err := keys.NewLocalKey(v, raw)
	if err != nil {
		t.Fatalf("NewLocalKey: %v", err)
	}
	return k
}

func TestLocalSuitesRoundTrip(t *testing.T) {
	versions := []core.Version{core.V1, core.V2, core.V3, core.V4}
	for _, v := range versions {
		v := v
		t.Run(v.String(), func(t *testing.T) {
			suiteImpl, err := LookupLocal(v)
			if err != nil {
				t.Fatalf("LookupLocal: %v", err)
			}
			key := localKeyFor(t, v, 0x42)
			payload := []byte(`{"sub":"test"}`)
			footer := []byte("footer-data")

			var implicit []byte
			if v == core.V3 || v == core.V4 {
				implicit = []byte("implicit-assertion")
			}

			body, err := suiteImpl.Encrypt(key, payload, footer, implicit, ReadRandom)
			if err != nil {
				t.Fatalf("Encrypt: %v", err)
			}

			got, err := suiteImpl.Decrypt(key, body, footer, implicit)
			if err != nil {
				t.Fatalf("Decrypt: %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("round trip mismatch: got %q want %q", got, payload)
			}
		})
	}
}

func TestLocalSuitesDeterministicWithFixedRandom(t *testing.T) {
	versions := []core.Version{core.V1, core.V2, core.V3, core.V4}
	for _, v := range versions {
		v := v
		t.Run(v.String(), func(t *testing.T) {
			suiteImpl, _ := LookupLocal(v)
			key := localKeyFor(t, v, 0x11)
			payload := []byte("deterministic payload")

			b1, err := suiteImpl.Encrypt(key, payload, nil, nil, fixedRandom(0x07))
			if err != nil {
				t.Fatalf("Encrypt 1: %v", err)
			}
			b2, err := suiteImpl.Encrypt(key, payload, nil, nil, fixedRandom(0x07))
			if err != nil {
				t.Fatalf("Encrypt 2: %v", err)
			}
			if !bytes.Equal(b1, b2) {
				t.Error("expected identical ciphertext for identical fixed randomness")
			}
		})
	}
}

func TestLocalSuitesDetectTamperedCiphertext(t *testing.T) {
	versions := []core.Version{core.V1, core.V2, core.V3, core.V4}
	for _, v := range versions {
		v := v
		t.Run(v.String(), func(t *testing.T) {
			suiteImpl, _ := LookupLocal(v)
			key := localKeyFor(t, v, 0x55)
			payload := []byte("do not tamper with me")

			body, err := suiteImpl.Encrypt(key, payload, nil, nil, ReadRandom)
			if err != nil {
				t.Fatalf("Encrypt: %v", err)
			}

			tampered := make([]byte, len(body))
			copy(tampered, body)
			tampered[len(tampered)/2] ^= 0xFF

			if _, err := suiteImpl.Decrypt(key, tampered, nil, nil); err == nil {
				t.Error("expected decryption of tampered body to fail")
			}
		})
	}
}

func TestLocalSuitesDetectWrongFooter(t *testing.T) {
	versions := []core.Version{core.V1, core.V2, core.V3, core.V4}
	for _, v := range versions {
		v := v
		t.Run(v.String(), func(t *testing.T) {
			suiteImpl, _ := LookupLocal(v)
			key := localKeyFor(t, v, 0x66)
			payload := []byte("payload")

			body, err := suiteImpl.Encrypt(key, payload, []byte("footer-a"), nil, ReadRandom)
			if err != nil {
				t.Fatalf("Encrypt: %v", err)
			}
			if _, err := suiteImpl.Decrypt(key, body, []byte("footer-b"), nil); err == nil {
				t.Error("expected decryption with wrong footer to fail")
			}
		})
	}
}

func TestLocalSuitesDetectWrongKey(t *testing.T) {
	versions := []core.Version{core.V1, core.V2, core.V3, core.V4}
	for _, v := range versions {
		v := v
		t.Run(v.String(), func(t *testing.T) {
			suiteImpl, _ := LookupLocal(v)
			key := localKeyFor(t, v, 0x01)
			other := localKeyFor(t, v, 0x02)
			payload := []byte("payload")

			body, err := suiteImpl.Encrypt(key, payload, nil, nil, ReadRandom)
			if err != nil {
				t.Fatalf("Encrypt: %v", err)
			}
			if _, err := suiteImpl.Decrypt(other, body, nil, nil); err == nil {
				t.Error("expected decryption with wrong key to fail")
			}
		})
	}
}

func TestV1AndV2RejectImplicitAssertion(t *testing.T) {
	for _, v := range []core.Version{core.V1, core.V2} {
		suiteImpl, _ := LookupLocal(v)
		key := localKeyFor(t, v, 0x09)
		if _, err := suiteImpl.Encrypt(key, []byte("x"), nil, []byte("not allowed"), ReadRandom); err == nil {
			t.Errorf("%s: expected error when implicit assertion is supplied", v)
		}
	}
}

func TestV3AndV4BindImplicitAssertion(t *testing.T) {
	for _, v := range []core.Version{core.V3, core.V4} {
		suiteImpl, _ := LookupLocal(v)
		key := localKeyFor(t, v, 0x0A)
		payload := []byte("payload")

		body, err := suiteImpl.Encrypt(key, payload, nil, []byte("assertion-a"), ReadRandom)
		if err != nil {
			t.Fatalf("%s: Encrypt: %v", v, err)
		}
		if _, err := suiteImpl.Decrypt(key, body, nil, []byte("assertion-b")); err == nil {
			t.Errorf("%s: expected decryption with wrong implicit assertion to fail", v)
		}
	}
}
