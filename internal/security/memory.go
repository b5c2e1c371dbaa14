// Package security holds the zeroize-on-drop byte buffer and the
// constant-time comparison and delay helpers the crypto suites use to
// avoid leaking timing information on a tag or signature mismatch.
package security

import (
	"crypto/rand"
	"runtime"
	"sync"
	"time"
)

// SecureBytes represents a secure byte slice that will be zeroed when no longer needed
type SecureBytes struct {
	data []byte
	mu   sync.Mutex // Protect against concurrent access during cleanup
}

// NewSecureBytesFromSlice creates a secure byte slice from existing data
func NewSecureBytesFromSlice(data []byte) *SecureBytes {
	secure := &SecureBytes{
		data: make([]byte, len(data)),
	}
	copy(secure.data, data)

	if len(data) > 256 {
		runtime.SetFinalizer(secure, (*SecureBytes).destroy)
	}

	return secure
}

// Bytes returns the underlying byte slice (use with caution)
func (s *SecureBytes) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Copy creates a secure copy of the data
func (s *SecureBytes) Copy() *SecureBytes {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return &SecureBytes{}
	}
	return NewSecureBytesFromSlice(s.data)
}

// Destroy securely zeros the memory and marks for cleanup
func (s *SecureBytes) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroy()
	runtime.SetFinalizer(s, nil)
}

func (s *SecureBytes) destroy() {
	if s.data != nil {
		ZeroBytes(s.data)
		s.data = nil
	}
}

// ZeroBytes securely zeros a byte slice
func ZeroBytes(data []byte) {
	if len(data) == 0 {
		return
	}

	for i := range data {
		data[i] = 0
	}

	for i := range data {
		data[i] = 0xFF
	}

	for i := range data {
		data[i] = 0
	}

	runtime.KeepAlive(data)
}

// SecureCompare performs constant-time comparison of two byte slices
func SecureCompare(a, b []byte) bool {
	lenA := len(a)
	lenB := len(b)

	if lenA == lenB {
		var result byte
		for i := 0; i < lenA; i++ {
			result |= a[i] ^ b[i]
		}
		return result == 0
	}

	maxLen := lenA
	if lenB > maxLen {
		maxLen = lenB
	}

	var result byte
	for i := 0; i < maxLen; i++ {
		var aVal, bVal byte
		if i < lenA {
			aVal = a[i]
		}
		if i < lenB {
			bVal = b[i]
		}
		result |= aVal ^ bVal
	}

	return result == 0 && lenA == lenB
}

// SecureRandomDelay sleeps for a short, crypto/rand-drawn duration. The
// v1, v3 and v4 local suites' tag checks and the v2, v3 and v4 public
// suites' signature checks call this on a mismatch, so a timing attacker
// sees noise instead of a delay that tracks how much of the comparison
// matched.
func SecureRandomDelay() {
	var delayBytes [1]byte
	rand.Read(delayBytes[:])
	delay := time.Duration(10+int(delayBytes[0])%90) * time.Microsecond
	time.Sleep(delay)
}
