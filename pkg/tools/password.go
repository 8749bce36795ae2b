package tools

import "golang.org/x/crypto/bcrypt"

// bcrypt ignores input beyond 72 bytes.
const MaxPasswordBytes = 72

func HashPassword(password string) (string, error) {
	p, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(p), err
}

// CheckPassword returns nil when plain matches hashed.
func CheckPassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
