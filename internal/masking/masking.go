// Package masking hides card and account numbers while keeping enough
// digits visible to identify them.
//
// Masked output never re-inserts spaces: "1234 5678 9012 3456" becomes
// "123456******3456".
package masking

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
)

const (
	cardVisiblePrefix = 6
	cardVisibleSuffix = 4
	cardMinLength     = cardVisiblePrefix + cardVisibleSuffix

	accountVisibleSuffix = 4

	maskRune = "*"
)

// ErrNotMaskable is returned by MaskAccountOrCardStrict for input that has no
// "<description> <number>" shape.
var ErrNotMaskable = errors.New("not a description and number")

var accountMarkers = []string{"счет", "счёт", "account"}

// MaskCardNumber keeps the first six and last four digits of a card number
// and replaces the rest with asterisks. Input that is empty, not made of
// digits, or shorter than ten digits after removing spaces is returned
// unchanged.
func MaskCardNumber(raw string) string {
	cleaned := stripSpaces(raw)
	if !isDigits(cleaned) || len(cleaned) < cardMinLength {
		return raw
	}

	return cleaned[:cardVisiblePrefix] +
		strings.Repeat(maskRune, len(cleaned)-cardMinLength) +
		cleaned[len(cleaned)-cardVisibleSuffix:]
}

// MaskAccountNumber keeps the last four digits of an account number. Input
// that is not made of digits or is shorter than four digits is returned
// unchanged.
func MaskAccountNumber(raw string) string {
	cleaned := stripSpaces(raw)
	if !isDigits(cleaned) || len(cleaned) < accountVisibleSuffix {
		return raw
	}

	return strings.Repeat(maskRune, len(cleaned)-accountVisibleSuffix) +
		cleaned[len(cleaned)-accountVisibleSuffix:]
}

// MaskAccountOrCard masks the trailing number of strings such as
// "Visa Platinum 7000792289606361" or "Счет 73654108430135874305". Accounts
// are recognised by their description; everything else is treated as a
// card. Input without both a description and a number is returned unchanged.
func MaskAccountOrCard(full string) string {
	masked, err := MaskAccountOrCardStrict(full)
	if err != nil {
		return full
	}
	return masked
}

// MaskAccountOrCardStrict is MaskAccountOrCard for callers that need to know
// the input had the wrong shape.
func MaskAccountOrCardStrict(full string) (string, error) {
	parts := strings.Fields(full)
	if len(parts) < 2 {
		return "", ErrNotMaskable
	}

	number := parts[len(parts)-1]
	description := strings.Join(parts[:len(parts)-1], " ")

	var masked string
	if IsAccount(description) {
		masked = MaskAccountNumber(number)
	} else {
		masked = MaskCardNumber(number)
	}

	return description + " " + masked, nil
}

// IsAccount reports whether a description names a bank account rather than a card.
func IsAccount(description string) bool {
	folded := cases.Fold().String(description)
	for _, marker := range accountMarkers {
		if strings.Contains(folded, marker) {
			return true
		}
	}
	return false
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
