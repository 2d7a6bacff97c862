package account

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost balances security and login latency
const DefaultBcryptCost = 12

// PasswordHasher hashes and verifies raw passwords
type PasswordHasher interface {
	Hash(rawPassword string) (string, error)
	// Compare returns nil only when rawPassword matches hash
	Compare(hash, rawPassword string) error
}

type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return BcryptHasher{Cost: cost}
}

func (h BcryptHasher) Hash(rawPassword string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(rawPassword), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare is constant-time on the hash (bcrypt.CompareHashAndPassword)
func (h BcryptHasher) Compare(hash, rawPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(rawPassword))
}
