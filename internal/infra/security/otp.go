package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DigitCodeGenerator produces numeric one-time codes for email
// verification.
type DigitCodeGenerator struct {
	Length int
}

func (g DigitCodeGenerator) NewCode() (string, error) {
	length := g.Length
	if length <= 0 {
		length = 6
	}
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("otp: entropy read failed: %w", err)
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
