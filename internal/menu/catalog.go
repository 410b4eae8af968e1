// Package menu holds the immutable price table the order interpreter
// resolves spoken item names against.
package menu

import (
	"errors"
	"fmt"

	"github.com/windoze95/cardapio-api/internal/textnorm"
)

var (
	// ErrEmptyMenu is returned when a catalog is built without entries.
	ErrEmptyMenu = errors.New("menu has no items")
	// ErrInvalidEntry is returned for entries with a blank name or a negative price.
	ErrInvalidEntry = errors.New("invalid menu entry")
	// ErrDuplicateEntry is returned when two entries share a name or a normalized name.
	ErrDuplicateEntry = errors.New("duplicate menu entry")
)

// Entry is a single menu item. Prices are whole reais.
type Entry struct {
	Name     string `json:"name" yaml:"name"`
	Price    int    `json:"price" yaml:"price"`
	Category string `json:"category,omitempty" yaml:"category"`
}

// Catalog is a read-only, declaration-ordered set of menu entries. It is
// safe for concurrent use.
type Catalog struct {
	entries      []Entry
	normalized   []string
	byName       map[string]int
	byNormalized map[string]int
}

// New validates entries and builds a Catalog. Declaration order is kept
// and is the tie-break order for every lookup.
func New(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyMenu
	}

	c := &Catalog{
		entries:      make([]Entry, len(entries)),
		normalized:   make([]string, len(entries)),
		byName:       make(map[string]int, len(entries)),
		byNormalized: make(map[string]int, len(entries)),
	}
	copy(c.entries, entries)

	for i, e := range c.entries {
		n := textnorm.Normalize(e.Name)
		if n == "" {
			return nil, fmt.Errorf("%w: item %d has no usable name %q", ErrInvalidEntry, i, e.Name)
		}
		if e.Price < 0 {
			return nil, fmt.Errorf("%w: %q has negative price %d", ErrInvalidEntry, e.Name, e.Price)
		}
		if _, ok := c.byName[e.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEntry, e.Name)
		}
		if j, ok := c.byNormalized[n]; ok {
			return nil, fmt.Errorf("%w: %q and %q both read as %q", ErrDuplicateEntry, c.entries[j].Name, e.Name, n)
		}
		c.byName[e.Name] = i
		c.byNormalized[n] = i
		c.normalized[i] = n
	}

	return c, nil
}

// MustNew is like New but panics on error. Intended for tests and fixed tables.
func MustNew(entries []Entry) *Catalog {
	c, err := New(entries)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entry returns the i-th entry in declaration order.
func (c *Catalog) Entry(i int) Entry {
	return c.entries[i]
}

// NormalizedName returns the normalized form of the i-th entry's name.
func (c *Catalog) NormalizedName(i int) string {
	return c.normalized[i]
}

// Entries returns a copy of all entries in declaration order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Price returns the unit price of the item with the given canonical name.
func (c *Catalog) Price(name string) (int, bool) {
	i, ok := c.byName[name]
	if !ok {
		return 0, false
	}
	return c.entries[i].Price, true
}

// IndexOfNormalized returns the index of the entry whose normalized name
// equals normalized exactly.
func (c *Catalog) IndexOfNormalized(normalized string) (int, bool) {
	i, ok := c.byNormalized[normalized]
	return i, ok
}
