package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the work factor used for every stored hash unless overridden.
const DefaultCost = 10

var (
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrPasswordTooLong reports input past bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash hashes a plain text password with bcrypt. The salt is generated per call.
func (h *Hasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)

	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// Compare checks plain against a stored bcrypt hash. A mismatch is
// ErrPasswordMismatch; anything else means the hash itself is unusable.
func (h *Hasher) Compare(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))

	// nothing over 72 bytes was ever hashed, so it cannot match
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return ErrPasswordMismatch
	}

	return err
}
