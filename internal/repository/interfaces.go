package repository

import "github.com/windoze95/cardapio-api/internal/models"

// MenuRepo is the interface for menu repository operations.
type MenuRepo interface {
	ListMenuItems() ([]models.MenuItem, error)
	GetMenuItemByName(name string) (*models.MenuItem, error)
	SeedMenuItems(items []models.MenuItem) (bool, error)
	UpdateMenuItemPrice(name string, price int) error
	SetMenuItemAvailable(name string, available bool) error
}

var _ MenuRepo = (*MenuRepository)(nil)
