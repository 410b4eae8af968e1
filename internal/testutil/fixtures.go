package testutil

import (
	"github.com/windoze95/cardapio-api/internal/config"
	"github.com/windoze95/cardapio-api/internal/menu"
	"github.com/windoze95/cardapio-api/internal/order"
)

// TestMenuEntries returns a slice of the trailer menu, in declaration order.
func TestMenuEntries() []menu.Entry {
	return []menu.Entry{
		{Name: "carne", Price: 15, Category: "salgados"},
		{Name: "carne e queijo", Price: 17, Category: "salgados"},
		{Name: "queijo", Price: 16, Category: "salgados"},
		{Name: "pizza", Price: 16, Category: "salgados"},
		{Name: "frango e catupiry", Price: 17, Category: "salgados"},
		{Name: "especial de carne", Price: 20, Category: "salgados"},
		{Name: "chocolate", Price: 15, Category: "doces"},
		{Name: "chocolate com banana", Price: 16, Category: "doces"},
		{Name: "romeu e julieta", Price: 15, Category: "doces"},
		{Name: "goiabada", Price: 14, Category: "doces"},
		{Name: "pastel de vento", Price: 7, Category: "outros"},
		{Name: "churros", Price: 7, Category: "outros"},
	}
}

// TestCatalog builds a catalog from TestMenuEntries.
func TestCatalog() *menu.Catalog {
	return menu.MustNew(TestMenuEntries())
}

// TestInterpreter builds an interpreter over TestCatalog with the default
// strategies.
func TestInterpreter() *order.Interpreter {
	return order.NewInterpreter(TestCatalog())
}

// TestConfig returns a config that loads the menu from a file.
func TestConfig() *config.Config {
	return &config.Config{
		EnvVars: config.EnvVars{
			Port:         "3000",
			MenuSource:   config.MenuSourceFile,
			MenuPath:     "menu.yaml",
			JwtSecretKey: "test-secret",
			RateLimitRPS: 10,
		},
	}
}
