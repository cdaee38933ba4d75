package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a bcrypt hash of the senha. A cost below
// bcrypt.MinCost falls back to bcrypt.DefaultCost so misconfiguration never
// weakens stored credentials.
func HashPassword(senha string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(senha), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword checks a plaintext senha against its stored hash.
func ComparePassword(hashed, senha string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(senha))
}
