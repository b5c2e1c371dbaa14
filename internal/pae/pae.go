// Package pae implements PASETO's Pre-Authentication Encoding, the
// canonical length-prefixed serialization bound into every MAC and
// signature computed by the crypto core.
package pae

import "encoding/binary"

// topBitMask clears the most significant bit of a LE64 length field, as
// required by the PASETO specification.
const topBitMask = 1<<63 - 1

// Encode concatenates pieces as
//
//	LE64(len(pieces)) || LE64(len(pieces[0])) || pieces[0] || LE64(len(pieces[1])) || pieces[1] || ...
//
// Every crypto-core routine in internal/suite binds its inputs through
// this function and no other serializer; a one-byte deviation here would
// silently break interop with every other PASETO implementation.
func Encode(pieces ...[]byte) []byte {
	size := 8
	for _, p := range pieces {
		size += 8 + len(p)
	}

	out := make([]byte, 0, size)
	out = appendLE64(out, uint64(len(pieces)))
	for _, p := range pieces {
		out = appendLE64(out, uint64(len(p)))
		out = append(out, p...)
	}
	return out
}

func appendLE64(dst []byte, n uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n&topBitMask)
	return append(dst, buf[:]...)
}
