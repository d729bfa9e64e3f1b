package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// ConfirmationCodeAlphabet is the set of characters a confirmation code is drawn from
const ConfirmationCodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateConfirmationCode returns a random alphanumeric code of the given length.
// Characters are chosen with crypto/rand; a failing random source is an error,
// never a weaker fallback.
// Example: "x7K9m2"
func GenerateConfirmationCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid confirmation code length %d", length)
	}

	max := big.NewInt(int64(len(ConfirmationCodeAlphabet)))
	result := make([]byte, length)
	for i := range result {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		result[i] = ConfirmationCodeAlphabet[num.Int64()]
	}

	return string(result), nil
}

// HashConfirmationCode hashes a code for storage on the user record
func HashConfirmationCode(code string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash confirmation code: %w", err)
	}
	return string(hashed), nil
}

// CheckConfirmationCode reports whether code matches the stored hash
func CheckConfirmationCode(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
