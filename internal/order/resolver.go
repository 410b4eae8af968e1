package order

import (
	"strings"

	"github.com/windoze95/cardapio-api/internal/menu"
	"github.com/windoze95/cardapio-api/internal/textnorm"
)

// Strategy maps a normalized, non-empty phrase to a catalog index.
type Strategy interface {
	Name() string
	Resolve(phrase string, catalog *menu.Catalog) (int, bool)
}

// DefaultStrategies is the standard resolution order.
func DefaultStrategies() []Strategy {
	return []Strategy{ExactMatch{}, SubstringMatch{}, StopwordMatch{}}
}

// Match is a successful resolution.
type Match struct {
	Key      string
	Price    int
	Strategy string
}

// Resolver tries its strategies in order and returns the first hit.
// It is read-only after construction and safe for concurrent use.
type Resolver struct {
	catalog    *menu.Catalog
	strategies []Strategy
}

// NewResolver returns a Resolver over catalog. With no strategies the
// DefaultStrategies are used.
func NewResolver(catalog *menu.Catalog, strategies ...Strategy) *Resolver {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Resolver{catalog: catalog, strategies: strategies}
}

// Catalog returns the catalog the resolver matches against.
func (r *Resolver) Catalog() *menu.Catalog {
	return r.catalog
}

// Resolve normalizes raw and returns the matching menu entry.
func (r *Resolver) Resolve(raw string) (Match, bool) {
	phrase := textnorm.Normalize(raw)
	if phrase == "" {
		return Match{}, false
	}
	for _, s := range r.strategies {
		if i, ok := s.Resolve(phrase, r.catalog); ok {
			e := r.catalog.Entry(i)
			return Match{Key: e.Name, Price: e.Price, Strategy: s.Name()}, true
		}
	}
	return Match{}, false
}

// FindMenuKey returns the canonical name raw resolves to.
func (r *Resolver) FindMenuKey(raw string) (string, bool) {
	m, ok := r.Resolve(raw)
	return m.Key, ok
}

// ExactMatch accepts a phrase equal to a normalized menu name.
type ExactMatch struct{}

func (ExactMatch) Name() string { return "exact" }

func (ExactMatch) Resolve(phrase string, catalog *menu.Catalog) (int, bool) {
	return catalog.IndexOfNormalized(phrase)
}

// SubstringMatch accepts menu names contained in the phrase or containing
// it. The longest normalized name wins, since longer names are more
// specific; equal lengths keep catalog order.
type SubstringMatch struct{}

func (SubstringMatch) Name() string { return "substring" }

func (SubstringMatch) Resolve(phrase string, catalog *menu.Catalog) (int, bool) {
	best := -1
	bestLen := 0
	for i := 0; i < catalog.Len(); i++ {
		key := catalog.NormalizedName(i)
		if !contains(phrase, key) {
			continue
		}
		if best < 0 || len(key) > bestLen {
			best, bestLen = i, len(key)
		}
	}
	return best, best >= 0
}

// StopwordMatch drops articles and prepositions from the phrase and
// returns the first catalog entry that passes the containment test.
type StopwordMatch struct{}

func (StopwordMatch) Name() string { return "stopword" }

func (StopwordMatch) Resolve(phrase string, catalog *menu.Catalog) (int, bool) {
	cleaned := textnorm.StripStopwords(phrase)
	if cleaned == "" {
		return -1, false
	}
	for i := 0; i < catalog.Len(); i++ {
		if contains(cleaned, catalog.NormalizedName(i)) {
			return i, true
		}
	}
	return -1, false
}

func contains(phrase, key string) bool {
	return strings.Contains(phrase, key) || strings.Contains(key, phrase)
}
