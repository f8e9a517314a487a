// Package validation holds the field-level rules shared by the customer and
// address forms and by the API's request validator.
package validation

import "regexp"

var (
	lettersPattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	digitsPattern  = regexp.MustCompile(`^\d+$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern   = regexp.MustCompile(`^\d{10}$`)
)

// PincodeLength is the exact number of digits in a postal code
const PincodeLength = 5

// IsLetters reports whether s is non-empty and made only of ASCII letters and whitespace
func IsLetters(s string) bool {
	return lettersPattern.MatchString(s)
}

// IsDigits reports whether s is non-empty and made only of ASCII digits
func IsDigits(s string) bool {
	return digitsPattern.MatchString(s)
}

// IsEmail reports whether s has the local@domain.tld shape
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsPhone reports whether s is exactly ten digits
func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// IsPincode reports whether s is exactly five digits
func IsPincode(s string) bool {
	return IsDigits(s) && len(s) == PincodeLength
}

func required(label, value string) string {
	if value == "" {
		return label + " is required"
	}
	return ""
}

func name(label, value string) string {
	if msg := required(label, value); msg != "" {
		return msg
	}
	if !IsLetters(value) {
		return label + " should contain only letters"
	}
	return ""
}
