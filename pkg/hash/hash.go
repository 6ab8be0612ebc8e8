// Package hash はパスワードのハッシュ化と検証を提供する。
package hash

import "golang.org/x/crypto/bcrypt"

// HashPassword は平文パスワードを bcrypt でハッシュ化する。
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash は平文パスワードとハッシュの一致を検証する。
func CheckPasswordHash(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
