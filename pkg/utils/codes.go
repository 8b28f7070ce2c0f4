package utils

import (
	"errors"
	"math/rand"
)

// GenerateAttendantCode returns a random numeric code of the given length.
// Codes are the QR payload printed on badges, so they never start with zero
// to survive spreadsheet round-trips.
func GenerateAttendantCode(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid code length")
	}

	const digits = "0123456789"
	code := make([]byte, length)
	code[0] = digits[1+rand.Intn(9)]
	for i := 1; i < length; i++ {
		code[i] = digits[rand.Intn(len(digits))]
	}

	return string(code), nil
}
