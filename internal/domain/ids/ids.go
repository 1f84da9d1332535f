// Package ids generates and checks resource identifiers: 24 lower-case hex
// characters, a 4 byte big-endian unix timestamp followed by 8 random bytes.
package ids

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/geocoder89/mesto/internal/domain"
)

const Length = 24

func New() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(time.Now().Unix()))
	if _, err := rand.Read(b[4:]); err != nil {
		panic(fmt.Sprintf("ids: read random: %v", err))
	}
	return hex.EncodeToString(b[:])
}

func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Normalize returns the canonical form of s. Ownership and membership checks
// compare normalized ids only.
func Normalize(s string) (string, error) {
	if !Valid(s) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidID, s)
	}
	return strings.ToLower(s), nil
}
