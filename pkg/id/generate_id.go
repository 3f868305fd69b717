package id

import (
	"encoding/hex"
	"regexp"

	"github.com/google/uuid"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewID32 returns a random (v4) identifier as exactly 32 hex characters,
// no separators or prefixes.
func NewID32() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// Valid reports whether s has the NewID32 shape: 32 lowercase hex chars.
func Valid(s string) bool { return reHex32.MatchString(s) }
