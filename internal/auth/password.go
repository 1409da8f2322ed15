package auth

import "golang.org/x/crypto/bcrypt"

// MinPasswordLength is enforced on registration and password changes.
const MinPasswordLength = 8

// HashPassword hashes a plaintext password with the configured cost,
// clamped to the bcrypt cost bounds.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
