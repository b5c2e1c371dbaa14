package paseto

import (
	"encoding/json"
	"sync"

	"github.com/cybergodev/paseto/internal/core"
)

// Version identifies a PASETO protocol version (v1 through v4). Each
// version binds one fixed cipher/KDF/signature suite; there is no
// negotiation.
type Version = core.Version

// Purpose identifies whether a token is symmetrically encrypted
// (Local) or asymmetrically signed (Public).
type Purpose = core.Purpose

const (
	V1 = core.V1
	V2 = core.V2
	V3 = core.V3
	V4 = core.V4

	Local  = core.Local
	Public = core.Public
)

// RegisteredClaims holds the seven claims PASETO reserves from RFC
// 7519: iss, sub, aud, exp, nbf, iat, and jti. Unlike the IANA JWT
// registry's NumericDate, PASETO encodes these as RFC 3339 strings.
type RegisteredClaims struct {
	Issuer    string    `json:"iss,omitempty"`
	Subject   string    `json:"sub,omitempty"`
	Audience  []string  `json:"aud,omitempty"`
	ExpiresAt ClaimTime `json:"exp,omitzero"`
	NotBefore ClaimTime `json:"nbf,omitzero"`
	IssuedAt  ClaimTime `json:"iat,omitzero"`
	ID        string    `json:"jti,omitempty"`
}

func (c *RegisteredClaims) reset() {
	c.Issuer = ""
	c.Subject = ""
	c.Audience = c.Audience[:0]
	c.ExpiresAt = ClaimTime{}
	c.NotBefore = ClaimTime{}
	c.IssuedAt = ClaimTime{}
	c.ID = ""
}

// reservedClaimNames rejects an application from shadowing a registered
// claim through the generic Extra map; Builder.Set enforces this.
var reservedClaimNames = map[string]bool{
	"iss": true, "sub": true, "aud": true,
	"exp": true, "nbf": true, "iat": true, "jti": true,
}

// Claims is the payload carried inside a token: the registered claims
// plus free-form application data under Extra. Build and Parse
// marshal/unmarshal this type as the token's JSON payload before
// encryption or signing; Extra is merged flat into the same JSON object
// as the registered claims, not nested under its own key.
type Claims struct {
	Extra map[string]any `json:"-"`
	RegisteredClaims
}

func (c *Claims) reset() {
	if c.Extra != nil {
		clear(c.Extra)
	}
	c.RegisteredClaims.reset()
}

// MarshalJSON flattens RegisteredClaims and Extra into one JSON object.
func (c Claims) MarshalJSON() ([]byte, error) {
	registered, err := json.Marshal(c.RegisteredClaims)
	if err != nil {
		return nil, err
	}
	if len(c.Extra) == 0 {
		return registered, nil
	}

	merged := make(map[string]json.RawMessage, len(c.Extra)+8)
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(registered, &flat); err != nil {
		return nil, err
	}
	for k, v := range flat {
		merged[k] = v
	}
	for k, v := range c.Extra {
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		merged[k] = encoded
	}
	return json.Marshal(merged)
}

// UnmarshalJSON populates RegisteredClaims from the reserved keys and
// everything else into Extra.
func (c *Claims) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &c.RegisteredClaims); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if c.Extra == nil {
		c.Extra = make(map[string]any, len(raw))
	}
	for k, v := range raw {
		if reservedClaimNames[k] {
			continue
		}
		var value any
		if err := json.Unmarshal(v, &value); err != nil {
			return err
		}
		c.Extra[k] = value
	}
	return nil
}

var claimsPool = sync.Pool{
	New: func() any {
		return &Claims{
			Extra: make(map[string]any, 4),
		}
	},
}

func getClaims() *Claims {
	c := claimsPool.Get().(*Claims)
	c.reset()
	return c
}

func putClaims(c *Claims) {
	if c != nil {
		c.reset()
		claimsPool.Put(c)
	}
}
