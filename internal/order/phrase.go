package order

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	leadingQuantity  = regexp.MustCompile(`^(\d+)\s*x?\s*(.+)$`)
	trailingQuantity = regexp.MustCompile(`^(.+?)\s+(\d+)$`)
)

// Phrase is one order segment split into a quantity and a name candidate.
type Phrase struct {
	Quantity int
	Name     string
	// Raw is the normalized segment the phrase was extracted from.
	Raw string
	// Explicit is true when the segment carried a number.
	Explicit bool
}

// ExtractQuantity reads "2 carne", "3x carne" and "carne 2". Anything else
// is quantity 1 with the whole segment as the name.
func ExtractQuantity(segment string) Phrase {
	segment = strings.TrimSpace(segment)

	if m := leadingQuantity.FindStringSubmatch(segment); m != nil {
		return Phrase{
			Quantity: parseQuantity(m[1]),
			Name:     strings.TrimSpace(m[2]),
			Raw:      segment,
			Explicit: true,
		}
	}
	if m := trailingQuantity.FindStringSubmatch(segment); m != nil {
		return Phrase{
			Quantity: parseQuantity(m[2]),
			Name:     strings.TrimSpace(m[1]),
			Raw:      segment,
			Explicit: true,
		}
	}
	return Phrase{Quantity: 1, Name: segment, Raw: segment}
}

// parseQuantity falls back to 1 for zero, overflow and garbage.
func parseQuantity(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
