package utils

import "strings"

// IsValidPIN reports whether s is exactly 4 ASCII digits
func IsValidPIN(s string) bool {
	if len(s) != 4 {
		return false
	}
	return isDigits(s)
}

// IsValidOTPCode reports whether s is exactly 6 ASCII digits
func IsValidOTPCode(s string) bool {
	if len(s) != 6 {
		return false
	}
	return isDigits(s)
}

// NormalizeRFID trims surrounding whitespace from an RFID card number
func NormalizeRFID(s string) string {
	return strings.TrimSpace(s)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
