// Package core assembles and splits the PASETO wire format
// (header.body[.footer]) and enforces algorithm lucidity: a token built
// under one (Version, Purpose) pair must never be accepted under another.
package core

import "fmt"

// Version is a PASETO protocol version discriminant.
type Version int

const (
	V1 Version = iota + 1
	V2
	V3
	V4
)

func (v Version) String() string {
	switch v {
	case V1:
		return "v1"
	case V2:
		return "v2"
	case V3:
		return "v3"
	case V4:
		return "v4"
	default:
		return fmt.Sprintf("v?(%d)", int(v))
	}
}

// ParseVersion maps a wire-format version token ("v1".."v4") to a Version.
func ParseVersion(s string) (Version, bool) {
	switch s {
	case "v1":
		return V1, true
	case "v2":
		return V2, true
	case "v3":
		return V3, true
	case "v4":
		return V4, true
	default:
		return 0, false
	}
}

// Purpose selects symmetric authenticated encryption (Local) or
// asymmetric signing (Public).
type Purpose int

const (
	Local Purpose = iota + 1
	Public
)

func (p Purpose) String() string {
	switch p {
	case Local:
		return "local"
	case Public:
		return "public"
	default:
		return "?"
	}
}

// ParsePurpose maps a wire-format purpose token to a Purpose.
func ParsePurpose(s string) (Purpose, bool) {
	switch s {
	case "local":
		return Local, true
	case "public":
		return Public, true
	default:
		return 0, false
	}
}

// Header is the literal "v{N}.{purpose}." byte sequence bound into PAE
// as the first piece, and written verbatim at the front of every token.
func Header(v Version, p Purpose) []byte {
	return []byte(v.String() + "." + p.String() + ".")
}
