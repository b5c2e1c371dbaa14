package paseto

import (
	"fmt"
	"time"
)

// ClaimTime represents a PASETO timestamp claim. PASETO's specification
// requires ISO 8601 / RFC 3339 encoding for exp, nbf, and iat — unlike
// JWT's NumericDate, these are quoted strings, never bare integers.
type ClaimTime struct {
	time.Time
}

// NewClaimTime creates a ClaimTime from a time.Time, truncating to
// second precision to match RFC 3339's canonical representation.
func NewClaimTime(t time.Time) ClaimTime {
	return ClaimTime{Time: t.UTC().Truncate(time.Second)}
}

// IsZero reports whether the underlying time is unset, letting
// encoding/json's "omitzero" tag option drop the field.
func (ct ClaimTime) IsZero() bool {
	return ct.Time.IsZero()
}

// MarshalJSON encodes the time as a quoted RFC 3339 string.
func (ct ClaimTime) MarshalJSON() ([]byte, error) {
	if ct.Time.IsZero() {
		return []byte("null"), nil
	}
	return fmt.Appendf(nil, "%q", ct.Time.Format(time.RFC3339)), nil
}

// UnmarshalJSON decodes a quoted RFC 3339 string. A JSON null or empty
// string clears the time to its zero value.
func (ct *ClaimTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` || s == "" {
		ct.Time = time.Time{}
		return nil
	}

	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid time format: expected RFC 3339, got %q: %w", s, err)
	}
	ct.Time = t.UTC()
	return nil
}
