package utils

import "github.com/ttacon/libphonenumber"

// defaultPhoneRegion is used when a number carries no country prefix
const defaultPhoneRegion = "US"

// IsValidPhone reports whether the given string parses as a valid phone
// number. Empty strings are considered valid so optional fields pass through.
func IsValidPhone(number string) bool {
	if number == "" {
		return true
	}

	parsed, err := libphonenumber.Parse(number, defaultPhoneRegion)
	if err != nil {
		return false
	}

	return libphonenumber.IsValidNumber(parsed)
}
