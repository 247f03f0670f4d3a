package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhoneNumber keeps the digits of a phone number, preserving a
// leading + for international numbers.
func NormalizePhoneNumber(phoneNumber string) string {
	trimmed := strings.TrimSpace(phoneNumber)
	digits := nonDigits.ReplaceAllString(trimmed, "")
	if digits != "" && strings.HasPrefix(trimmed, "+") {
		return "+" + digits
	}
	return digits
}

// ValidatePhoneNumber accepts 7 to 15 digits, the E.164 range.
func ValidatePhoneNumber(phoneNumber string) bool {
	digits := strings.TrimPrefix(NormalizePhoneNumber(phoneNumber), "+")
	return len(digits) >= 7 && len(digits) <= 15
}
