package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/windoze95/cardapio-api/internal/repository"
)

var (
	errMissingName  = errors.New("-name is required")
	errInvalidPrice = errors.New("-price must be zero or more")
)

// setPrice changes the price of one menu item and prints old and new price.
func setPrice(repo repository.MenuRepo, name string, price int, out io.Writer) error {
	if name == "" {
		return errMissingName
	}
	if price < 0 {
		return errInvalidPrice
	}
	item, err := repo.GetMenuItemByName(name)
	if err != nil {
		return fmt.Errorf("look up %q: %w", name, err)
	}
	old := item.Price
	if err := repo.UpdateMenuItemPrice(name, price); err != nil {
		return fmt.Errorf("update %q: %w", name, err)
	}
	fmt.Fprintf(out, "%s: %d -> %d\n", name, old, price)
	return nil
}

// setAvailable takes an item on or off the menu without deleting it.
func setAvailable(repo repository.MenuRepo, name string, available bool, out io.Writer) error {
	if name == "" {
		return errMissingName
	}
	if err := repo.SetMenuItemAvailable(name, available); err != nil {
		return fmt.Errorf("update %q: %w", name, err)
	}
	state := "disabled"
	if available {
		state = "enabled"
	}
	fmt.Fprintf(out, "%s %s\n", name, state)
	return nil
}
