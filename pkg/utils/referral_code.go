package utils

import (
	"crypto/rand"
	"fmt"
)

const referralAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ReferralCodeLength is the fixed length of generated referral codes
const ReferralCodeLength = 8

// GenerateReferralCode returns a random 8-character uppercase alphanumeric
// code. Uniqueness is the caller's concern.
func GenerateReferralCode() (string, error) {
	buf := make([]byte, ReferralCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate referral code: %w", err)
	}
	for i, b := range buf {
		buf[i] = referralAlphabet[int(b)%len(referralAlphabet)]
	}
	return string(buf), nil
}
