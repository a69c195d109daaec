package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a self-describing bcrypt verifier (algorithm,
// cost, per-hash salt, digest) safe to store in users.password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches the stored verifier.
// A malformed verifier and a wrong password both yield false.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
