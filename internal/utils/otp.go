package utils

import (
	"crypto/rand"
	"math/big"
)

// GenerateOTP returns a random numeric passcode of the given length. Each
// digit is drawn uniformly, leading zeros included.
func GenerateOTP(length int) (string, error) {
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		buf[i] = byte('0' + n.Int64())
	}
	return string(buf), nil
}
