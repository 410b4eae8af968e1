package menu

import (
	"errors"
	"testing"
)

func TestNew_Empty(t *testing.T) {
	_, err := New(nil)
	if !errors.Is(err, ErrEmptyMenu) {
		t.Errorf("New(nil) error = %v, want ErrEmptyMenu", err)
	}
}

func TestNew_KeepsDeclarationOrder(t *testing.T) {
	c, err := New([]Entry{
		{Name: "queijo", Price: 16},
		{Name: "carne", Price: 15},
		{Name: "Chocolate com Banana", Price: 16},
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	if c.Entry(0).Name != "queijo" || c.Entry(1).Name != "carne" {
		t.Errorf("entries out of order: %+v", c.Entries())
	}
	if got := c.NormalizedName(2); got != "chocolate e banana" {
		t.Errorf("NormalizedName(2) = %q, want %q", got, "chocolate e banana")
	}
}

func TestNew_NegativePrice(t *testing.T) {
	_, err := New([]Entry{{Name: "carne", Price: -1}})
	if !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("error = %v, want ErrInvalidEntry", err)
	}
}

func TestNew_BlankName(t *testing.T) {
	_, err := New([]Entry{{Name: "  !! ", Price: 1}})
	if !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("error = %v, want ErrInvalidEntry", err)
	}
}

func TestNew_DuplicateName(t *testing.T) {
	_, err := New([]Entry{{Name: "carne", Price: 15}, {Name: "carne", Price: 16}})
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Errorf("error = %v, want ErrDuplicateEntry", err)
	}
}

func TestNew_DuplicateNormalizedName(t *testing.T) {
	_, err := New([]Entry{
		{Name: "chocolate com banana", Price: 16},
		{Name: "Chocolate e Banana", Price: 17},
	})
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Errorf("error = %v, want ErrDuplicateEntry", err)
	}
}

func TestPrice(t *testing.T) {
	c := MustNew([]Entry{{Name: "carne", Price: 15}})
	if p, ok := c.Price("carne"); !ok || p != 15 {
		t.Errorf("Price(carne) = %d, %v; want 15, true", p, ok)
	}
	if _, ok := c.Price("lagosta"); ok {
		t.Error("Price(lagosta) should not be found")
	}
}

func TestEntries_ReturnsCopy(t *testing.T) {
	c := MustNew([]Entry{{Name: "carne", Price: 15}})
	entries := c.Entries()
	entries[0].Price = 1
	if p, _ := c.Price("carne"); p != 15 {
		t.Errorf("catalog mutated through Entries(): price = %d", p)
	}
}

func TestIndexOfNormalized(t *testing.T) {
	c := MustNew([]Entry{{Name: "Pastel de Vento", Price: 7}})
	i, ok := c.IndexOfNormalized("pastel de vento")
	if !ok || i != 0 {
		t.Errorf("IndexOfNormalized = %d, %v; want 0, true", i, ok)
	}
}
