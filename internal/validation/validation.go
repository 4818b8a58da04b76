// Package validation holds the pure per-field predicates used by the
// registration form. Every function is side-effect free and returns a
// boolean verdict; messaging is left to the caller.
package validation

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// Malaysian mobile numbers start with 01 followed by 8 or 9 more
	// digits (10 or 11 digits total).
	reMobile = regexp.MustCompile(`^01\d{8,9}$`)
	// local@domain.tld shape, not full RFC 5322.
	reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	reName  = regexp.MustCompile(`^[A-Za-z]+(?:[ '\-][A-Za-z]+)*$`)
	// Lenient international phone shape for the optional emergency contact.
	reEmergencyNumber = regexp.MustCompile(`^[+]*[(]?[0-9]{1,4}[)]?[-\s./0-9]*$`)
	reIdentityNumber  = regexp.MustCompile(`^\d{12}$`)
)

// Per-country postal code patterns. Countries not listed here fail closed.
var postalPatterns = map[string]*regexp.Regexp{
	"India":    regexp.MustCompile(`^[1-9][0-9]{5}$`),
	"Malaysia": regexp.MustCompile(`^[0-9]{5}$`),
}

var postalFormats = map[string]string{
	"India":    "6 digits, not starting with 0",
	"Malaysia": "5 digits",
}

// Mobile reports whether s is a valid local mobile number.
func Mobile(s string) bool {
	return reMobile.MatchString(s)
}

// Email reports whether s looks like a deliverable address.
func Email(s string) bool {
	return reEmail.MatchString(s)
}

// Name accepts letters with single space, hyphen or apostrophe separators.
func Name(s string) bool {
	return reName.MatchString(strings.TrimSpace(s))
}

// NormalizeIdentityNumber strips every non-digit character.
func NormalizeIdentityNumber(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IdentityNumber reports whether s is exactly 12 decimal digits after
// normalization.
func IdentityNumber(s string) bool {
	return reIdentityNumber.MatchString(NormalizeIdentityNumber(s))
}

// PostalCode validates code against the single accepted pattern for
// country. Unsupported countries are rejected.
func PostalCode(code, country string) bool {
	re, ok := postalPatterns[country]
	if !ok {
		return false
	}
	return re.MatchString(code)
}

// PostalCodeSupported reports whether country has a known postal format.
func PostalCodeSupported(country string) bool {
	_, ok := postalPatterns[country]
	return ok
}

// PostalCodeFormat describes the expected format for error messages.
func PostalCodeFormat(country string) string {
	if f, ok := postalFormats[country]; ok {
		return f
	}
	return "unsupported country"
}

// EmergencyNumber accepts an empty value or a plausible phone string.
func EmergencyNumber(s string) bool {
	if s == "" {
		return true
	}
	return reEmergencyNumber.MatchString(s)
}
