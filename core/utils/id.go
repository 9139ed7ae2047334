package utils

import (
	"fmt"
	"time"

	"courtbook/core/constants"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

func GenerateID() string {
	id, err := gonanoid.Generate("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateBookingCode returns a human-shareable code like BK-20260830-7KQ2MX.
// Uniqueness is enforced by the bookings table; a collision surfaces as an
// insert error, never a silent overwrite.
func GenerateBookingCode(now time.Time) (string, error) {
	suffix, err := gonanoid.Generate(constants.BookingCodeAlphabet, constants.BookingCodeLength)
	if err != nil {
		return "", fmt.Errorf("generate booking code: %w", err)
	}
	return fmt.Sprintf("%s-%s-%s", constants.BookingCodePrefix, now.Format("20060102"), suffix), nil
}
