package dates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidDate is returned for strings that do not hold a valid calendar date.
var ErrInvalidDate = errors.New("invalid date")

const timeSeparator = "T"

// Normalize converts an ISO-8601 date or timestamp such as
// "2019-07-03T18:35:29.512364" to the display form "03.07.2019". Only the
// date part before the first "T" is read; a string without "T" is read as
// a bare date.
func Normalize(iso string) (string, error) {
	datePart, _, _ := strings.Cut(iso, timeSeparator)

	parts := strings.Split(datePart, "-")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, iso)
	}

	year, errY := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	day, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, iso)
	}

	if month < 1 || month > 12 || day < 1 || day > DaysIn(year, month) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, iso)
	}

	return fmt.Sprintf("%02d.%02d.%04d", day, month, year), nil
}

// DaysIn returns the number of days in month of year.
func DaysIn(year, month int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeap(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && year%100 != 0 || year%400 == 0
}
