package auth

import (
	"crypto/subtle"

	"laporrt/backend/internal/config"

	"golang.org/x/crypto/bcrypt"
)

// Hasher stores and verifies credentials.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(stored, plain string) bool
}

// NewHasher returns the hasher for a PASSWORD_HASHING mode.
func NewHasher(mode string) Hasher {
	if mode == config.HashBcrypt {
		return BcryptHasher{Cost: bcrypt.DefaultCost}
	}
	return PlainHasher{}
}

// BcryptHasher stores salted bcrypt hashes.
type BcryptHasher struct {
	Cost int
}

func (b BcryptHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), b.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify is false for a wrong password and for a stored value that is not a bcrypt hash.
func (b BcryptHasher) Verify(stored, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}

// PlainHasher keeps credentials as entered. Used by the local store.
type PlainHasher struct{}

func (PlainHasher) Hash(plain string) (string, error) { return plain, nil }

func (PlainHasher) Verify(stored, plain string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1
}
