package order

import (
	"math"
	"regexp"
	"strings"

	"github.com/windoze95/cardapio-api/internal/menu"
	"github.com/windoze95/cardapio-api/internal/textnorm"
)

// rawSeparators are cut before normalization, which would erase them. A
// "+" only separates when it stands alone between spaces.
var rawSeparators = regexp.MustCompile(`,|\s+\+\s+`)

// segment is one phrase of the order. joined marks a segment that followed
// the word "e" inside the same piece of text, so it may be the tail of a
// menu name such as "carne e queijo".
type segment struct {
	text   string
	joined bool
}

// Interpreter parses order text against a fixed menu.
type Interpreter struct {
	resolver *Resolver
}

// Option configures an Interpreter.
type Option func(*interpreterOptions)

type interpreterOptions struct {
	strategies []Strategy
}

// WithStrategies replaces the resolution strategies, in order.
func WithStrategies(strategies ...Strategy) Option {
	return func(o *interpreterOptions) {
		o.strategies = strategies
	}
}

// WithPhonetic appends a PhoneticMatch after the default strategies.
func WithPhonetic(opts ...PhoneticOption) Option {
	return func(o *interpreterOptions) {
		if len(o.strategies) == 0 {
			o.strategies = DefaultStrategies()
		}
		o.strategies = append(o.strategies, NewPhoneticMatch(opts...))
	}
}

// NewInterpreter returns an Interpreter over catalog.
func NewInterpreter(catalog *menu.Catalog, opts ...Option) *Interpreter {
	var o interpreterOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Interpreter{resolver: NewResolver(catalog, o.strategies...)}
}

// Resolver returns the interpreter's resolver.
func (in *Interpreter) Resolver() *Resolver {
	return in.resolver
}

// Catalog returns the interpreter's menu.
func (in *Interpreter) Catalog() *menu.Catalog {
	return in.resolver.Catalog()
}

// Parse reads every phrase of text. It never fails: phrases that match no
// menu item are returned in Unknown.
func (in *Interpreter) Parse(text string) Result {
	res := Result{Items: []Item{}, Unknown: []string{}}

	total := 0
	add := func(m Match, quantity int) {
		item := newItem(m, quantity)
		if item.Subtotal() > math.MaxInt-total {
			item.Quantity = 1
		}
		if sub := item.Subtotal(); sub > math.MaxInt-total {
			total = math.MaxInt
		} else {
			total += sub
		}
		res.Items = append(res.Items, item)
	}

	segments := splitSegments(text)
	for i := 0; i < len(segments); {
		if m, quantity, next, ok := in.mergeCompound(segments, i); ok {
			add(m, quantity)
			i = next
			continue
		}

		seg := segments[i].text
		i++

		ph := ExtractQuantity(seg)
		if m, ok := in.resolver.Resolve(ph.Name); ok {
			add(m, ph.Quantity)
			continue
		}
		// the quantity pattern may have eaten part of a valid name
		if m, ok := in.resolver.Resolve(ph.Raw); ok {
			add(m, ph.Quantity)
			continue
		}
		res.Unknown = append(res.Unknown, seg)
	}
	return res
}

// mergeCompound looks for the longest run of segments starting at i,
// chained by "e", that reads exactly as one menu name once the quantity is
// taken off. It returns the index of the first segment after the run.
func (in *Interpreter) mergeCompound(segments []segment, i int) (Match, int, int, bool) {
	end := i + 1
	for end < len(segments) && segments[end].joined {
		end++
	}
	catalog := in.resolver.Catalog()

	for j := end - 1; j > i; j-- {
		parts := make([]string, 0, j-i+1)
		for _, s := range segments[i : j+1] {
			parts = append(parts, s.text)
		}
		ph := ExtractQuantity(strings.Join(parts, " e "))
		idx, ok := catalog.IndexOfNormalized(textnorm.Normalize(ph.Name))
		if !ok {
			continue
		}
		e := catalog.Entry(idx)
		return Match{Key: e.Name, Price: e.Price, Strategy: "compound"}, ph.Quantity, j + 1, true
	}
	return Match{}, 0, i, false
}

// newItem counts a quantity whose subtotal would overflow an int as 1.
func newItem(m Match, quantity int) Item {
	if m.Price > 0 && quantity > math.MaxInt/m.Price {
		quantity = 1
	}
	return Item{Key: m.Key, Quantity: quantity, UnitPrice: m.Price, Strategy: m.Strategy}
}

// splitSegments cuts text on "," and "+" and then on the words "e" and
// "mais". Empty segments are dropped.
func splitSegments(text string) []segment {
	var out []segment
	for _, piece := range rawSeparators.Split(text, -1) {
		var (
			current []string
			afterE  bool
			pending bool
		)
		flush := func() {
			if len(current) > 0 {
				out = append(out, segment{text: strings.Join(current, " "), joined: pending})
				current = nil
			}
		}
		for _, word := range strings.Fields(textnorm.Normalize(piece)) {
			switch word {
			case "e", "mais":
				if len(current) > 0 {
					flush()
					afterE = word == "e"
				} else if word == "mais" {
					afterE = false
				}
			default:
				if len(current) == 0 {
					pending = afterE && len(out) > 0
				}
				current = append(current, word)
			}
		}
		flush()
	}
	return out
}

// FindMenuKey resolves a single phrase against catalog with the default
// strategies.
func FindMenuKey(phrase string, catalog *menu.Catalog) (string, bool) {
	return NewResolver(catalog).FindMenuKey(phrase)
}

// ParseOrderText parses text against catalog with the default strategies.
func ParseOrderText(text string, catalog *menu.Catalog) Result {
	return NewInterpreter(catalog).Parse(text)
}
