package utils

import "unicode"

// IsNameSeparator checks if a rune may appear inside a given name
// besides letters
func IsNameSeparator(r rune) bool {
	return r == '-' || r == '\'' || r == ' '
}

// ContainsDigits checks if a string contains any numeric digits
func ContainsDigits(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// IsValidName checks if input should be processed for name queries.
// Returns false for empty strings, strings with digits, and strings with
// characters that never appear in given names.
func IsValidName(s string) bool {
	if len(s) == 0 {
		return false
	}
	if ContainsDigits(s) {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !IsNameSeparator(r) {
			return false
		}
	}
	return true
}
