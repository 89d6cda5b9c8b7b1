package masking

import (
	"fmt"
	"iter"
)

const maxCardNumber = 9999_9999_9999_9999

// CardNumbers yields card numbers from start to end inclusive, zero-padded
// to 16 digits and grouped as "XXXX XXXX XXXX XXXX". Ranges that are
// inverted or fall outside 16 digits are clamped or yield nothing.
func CardNumbers(start, end int64) iter.Seq[string] {
	return func(yield func(string) bool) {
		from, to := max(start, 0), min(end, maxCardNumber)
		for n := from; n <= to; n++ {
			if !yield(formatCardNumber(n)) {
				return
			}
		}
	}
}

func formatCardNumber(n int64) string {
	digits := fmt.Sprintf("%016d", n)
	return digits[0:4] + " " + digits[4:8] + " " + digits[8:12] + " " + digits[12:16]
}
