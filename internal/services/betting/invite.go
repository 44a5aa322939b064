package betting

import (
	"crypto/rand"
	"encoding/hex"
)

// newInviteCode returns a short unguessable token for invite links.
// 8 random bytes keeps codes URL-friendly while leaving brute-force
// far beyond the 20-minute invite window.
func newInviteCode() string {
	var b [8]byte

	_, _ = rand.Read(b[:])

	return hex.EncodeToString(b[:])
}
