package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt digest of plain using the given cost.
// A fresh salt is generated per call and embedded in the digest.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a bcrypt digest and a plain password in constant
// time. A mismatch is not an error; it simply returns false.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
