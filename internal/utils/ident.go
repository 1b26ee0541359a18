package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateAccountNumber generates the random 10-digit numeric suffix of
// an IBAN.
func GenerateAccountNumber() (string, error) {
	n, err := randomInRange(1_000_000_000, 9_999_999_999)
	if err != nil {
		return "", fmt.Errorf("failed to generate account number: %w", err)
	}
	return fmt.Sprintf("%d", n), nil
}

// GeneratePAN generates a random 16-digit primary account number.
func GeneratePAN() (string, error) {
	n, err := randomInRange(1_000_000_000_000_000, 9_999_999_999_999_999)
	if err != nil {
		return "", fmt.Errorf("failed to generate PAN: %w", err)
	}
	return fmt.Sprintf("%d", n), nil
}

// GenerateCVV generates a random 3-digit card verification value.
func GenerateCVV() (string, error) {
	n, err := randomInRange(100, 999)
	if err != nil {
		return "", fmt.Errorf("failed to generate CVV: %w", err)
	}
	return fmt.Sprintf("%d", n), nil
}

// randomInRange returns a uniformly random integer in [min, max].
func randomInRange(min, max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return 0, err
	}
	return min + n.Int64(), nil
}
