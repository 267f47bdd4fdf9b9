// Package uuid provides UUID v7 generation. v7 sorts by timestamp, which
// keeps generated session identifiers roughly chronological.
package uuid

import (
	crand "crypto/rand"
	"fmt"
	"time"
)

// UUID is a 16-byte UUID v7 identifier.
type UUID [16]byte

// NewV7 generates a new UUID v7: 48 bits of millisecond UNIX timestamp
// followed by the version/variant bits and 74 random bits.
func NewV7() UUID {
	var u UUID

	now := time.Now().UnixMilli()
	u[0] = byte(now >> 40)
	u[1] = byte(now >> 32)
	u[2] = byte(now >> 24)
	u[3] = byte(now >> 16)
	u[4] = byte(now >> 8)
	u[5] = byte(now)

	_, _ = crand.Read(u[6:]) // crypto/rand.Read never fails on supported platforms

	u[6] = 0x70 | (u[6] & 0x0f) // version 7
	u[8] = 0x80 | (u[8] & 0x3f) // RFC 4122 variant

	return u
}

// String returns the canonical form xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx.
func (u UUID) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		u[0:4], u[4:6], u[6:8], u[8:10], u[10:16])
}
