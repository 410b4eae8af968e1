// Package order turns free-form order text into priced menu items.
//
// The pipeline is a single pass with no shared mutable state:
//
//	raw text -> textnorm.Normalize -> split into phrases -> quantity
//	extraction -> Resolver -> Result
//
// BuildResponse renders a Result as the sentence read back to the caller.
package order

import "math"

// Item is a menu item resolved from the order text.
type Item struct {
	Key       string `json:"key"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
	// Strategy names the resolution step that matched the phrase.
	Strategy string `json:"strategy,omitempty"`
}

// Subtotal returns Quantity * UnitPrice.
func (i Item) Subtotal() int {
	return i.Quantity * i.UnitPrice
}

// Result is the outcome of parsing one order text. Items and Unknown keep
// the order in which phrases appear in the input.
type Result struct {
	Items   []Item   `json:"items"`
	Unknown []string `json:"unknown"`
}

// Empty reports whether nothing at all was recognized or left over.
func (r Result) Empty() bool {
	return len(r.Items) == 0 && len(r.Unknown) == 0
}

// Total returns the sum of item subtotals, capped at math.MaxInt.
func Total(items []Item) int {
	total := 0
	for _, it := range items {
		sub := it.Subtotal()
		if sub > math.MaxInt-total {
			return math.MaxInt
		}
		total += sub
	}
	return total
}
