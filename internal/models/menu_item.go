package models

import (
	"github.com/windoze95/cardapio-api/internal/menu"
	"gorm.io/gorm"
)

// MenuItem is the model for a menu entry stored in the database.
type MenuItem struct {
	gorm.Model
	Name      string `gorm:"uniqueIndex;not null"`
	Price     int    `gorm:"not null;check:price >= 0"`
	Category  string `gorm:"index"`
	Position  int    `gorm:"index"`
	Available bool   `gorm:"not null"`
}

// Entry converts the row into a catalog entry.
func (m MenuItem) Entry() menu.Entry {
	return menu.Entry{Name: m.Name, Price: m.Price, Category: m.Category}
}

// MenuEntries converts rows into catalog entries, skipping unavailable items.
// Row order is kept.
func MenuEntries(items []MenuItem) []menu.Entry {
	entries := make([]menu.Entry, 0, len(items))
	for _, item := range items {
		if !item.Available {
			continue
		}
		entries = append(entries, item.Entry())
	}
	return entries
}

// MenuItemsFromEntries builds rows from catalog entries, numbering Position
// in declaration order.
func MenuItemsFromEntries(entries []menu.Entry) []MenuItem {
	items := make([]MenuItem, len(entries))
	for i, e := range entries {
		items[i] = MenuItem{
			Name:      e.Name,
			Price:     e.Price,
			Category:  e.Category,
			Position:  i,
			Available: true,
		}
	}
	return items
}
