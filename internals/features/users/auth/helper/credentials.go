package helper

import (
	"crypto/rand"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	OTPLength     = 6
	OkoceIDLength = 8
)

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func randomDigits(n int, noLeadingZero bool) (string, error) {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		lo := int64(0)
		if i == 0 && noLeadingZero {
			lo = 1
		}
		d, err := rand.Int(rand.Reader, big.NewInt(10-lo))
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + lo + d.Int64()))
	}
	return sb.String(), nil
}

// GenerateOTP: 6 digit, boleh diawali 0.
func GenerateOTP() (string, error) {
	return randomDigits(OTPLength, false)
}

// GenerateOkoceID: 8 digit 10000000..99999999.
func GenerateOkoceID() (string, error) {
	return randomDigits(OkoceIDLength, true)
}

// IsEmailIdentifier: login_identifier dianggap email kalau mengandung '@', selain itu nomor HP.
func IsEmailIdentifier(identifier string) bool {
	return strings.Contains(identifier, "@")
}
