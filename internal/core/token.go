package core

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
)

// ErrShape is the sentinel wrapped by every wire-format error: segment
// count wrong, header mismatch, non-base64 body, padded base64.
var ErrShape = fmt.Errorf("malformed paseto token")

const maxTokenLength = 1 << 20 // 1 MiB; generous, still bounds pathological input

// Parsed holds a token's decoded-but-unverified wire segments.
type Parsed struct {
	Version   Version
	Purpose   Purpose
	Body      []byte // decoded body_bytes (nonce || ciphertext-or-message || tag-or-signature)
	Footer    []byte // decoded footer, nil if absent
	HasFooter bool
}

// Encode assembles the wire string "v{N}.{purpose}.{body}[.{footer}]".
// footer may be nil or empty; a nil footer omits the fourth segment.
func Encode(v Version, p Purpose, body, footer []byte) string {
	var b strings.Builder
	b.WriteString(v.String())
	b.WriteByte('.')
	b.WriteString(p.String())
	b.WriteByte('.')
	b.WriteString(base64.RawURLEncoding.EncodeToString(body))
	if footer != nil {
		b.WriteByte('.')
		b.WriteString(base64.RawURLEncoding.EncodeToString(footer))
	}
	return b.String()
}

// Split validates token shape and decodes its segments, without
// performing any cryptographic verification. It requires exactly 3 or 4
// dot-separated segments, a literal version/purpose header, and
// unpadded base64url bodies.
func Split(token string) (Parsed, error) {
	if len(token) == 0 {
		return Parsed{}, fmt.Errorf("%w: empty token", ErrShape)
	}
	if len(token) > maxTokenLength {
		return Parsed{}, fmt.Errorf("%w: token too large", ErrShape)
	}

	segments := strings.Split(token, ".")
	if len(segments) != 3 && len(segments) != 4 {
		return Parsed{}, fmt.Errorf("%w: expected 3 or 4 segments, got %d", ErrShape, len(segments))
	}

	version, ok := ParseVersion(segments[0])
	if !ok {
		return Parsed{}, fmt.Errorf("%w: unknown version %q", ErrShape, segments[0])
	}
	purpose, ok := ParsePurpose(segments[1])
	if !ok {
		return Parsed{}, fmt.Errorf("%w: unknown purpose %q", ErrShape, segments[1])
	}

	body, err := decodeNoPad(segments[2])
	if err != nil {
		return Parsed{}, fmt.Errorf("%w: body is not unpadded base64url: %v", ErrShape, err)
	}

	parsed := Parsed{Version: version, Purpose: purpose, Body: body}

	if len(segments) == 4 {
		footer, err := decodeNoPad(segments[3])
		if err != nil {
			return Parsed{}, fmt.Errorf("%w: footer is not unpadded base64url: %v", ErrShape, err)
		}
		parsed.Footer = footer
		parsed.HasFooter = true
	}

	return parsed, nil
}

func decodeNoPad(segment string) ([]byte, error) {
	if strings.ContainsRune(segment, '=') {
		return nil, fmt.Errorf("padded base64 rejected")
	}
	return base64.RawURLEncoding.DecodeString(segment)
}

// FooterMatches compares a token's decoded footer against the footer the
// caller expects, in constant time. It must be called — and must fail —
// before any cryptographic operation runs, so that footer mismatches
// never leak through a decryption/verification oracle.
func FooterMatches(tokenFooter, expected []byte) bool {
	if len(expected) == 0 {
		return len(tokenFooter) == 0
	}
	if len(tokenFooter) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare(tokenFooter, expected) == 1
}

// ValidateFooterBytes rejects a footer containing the segment
// separator, which would otherwise corrupt the wire format.
func ValidateFooterBytes(footer []byte) error {
	for _, b := range footer {
		if b == '.' {
			return fmt.Errorf("%w: footer must not contain '.'", ErrShape)
		}
	}
	return nil
}
