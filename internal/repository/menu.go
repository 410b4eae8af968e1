package repository

import (
	"errors"

	"github.com/windoze95/cardapio-api/internal/logger"
	"github.com/windoze95/cardapio-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MenuRepository is a repository for interacting with menu items.
type MenuRepository struct {
	DB *gorm.DB
}

// NewMenuRepository creates a new MenuRepository.
func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// ListMenuItems retrieves every menu item in declaration order.
func (r *MenuRepository) ListMenuItems() ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := r.DB.Order("position ASC").Order("id ASC").Find(&items).Error; err != nil {
		logger.Get().Error("failed to list menu items", zap.Error(err))
		return nil, err
	}
	return items, nil
}

// GetMenuItemByName retrieves a menu item by its canonical name.
func (r *MenuRepository) GetMenuItemByName(name string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.DB.Where("name = ?", name).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{message: "menu item not found"}
		}
		logger.Get().Error("failed to get menu item", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return &item, nil
}

// SeedMenuItems inserts items when the table is empty. It reports whether
// anything was written.
func (r *MenuRepository) SeedMenuItems(items []models.MenuItem) (bool, error) {
	seeded := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 || len(items) == 0 {
			return nil
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		logger.Get().Error("failed to seed menu items", zap.Int("count", len(items)), zap.Error(err))
		return false, err
	}
	return seeded, nil
}

// UpdateMenuItemPrice sets the unit price of the named item.
func (r *MenuRepository) UpdateMenuItemPrice(name string, price int) error {
	res := r.DB.Model(&models.MenuItem{}).Where("name = ?", name).Update("price", price)
	if res.Error != nil {
		logger.Get().Error("failed to update menu item price", zap.String("name", name), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NotFoundError{message: "menu item not found"}
	}
	return nil
}

// SetMenuItemAvailable toggles whether the named item is offered.
func (r *MenuRepository) SetMenuItemAvailable(name string, available bool) error {
	res := r.DB.Model(&models.MenuItem{}).Where("name = ?", name).Update("available", available)
	if res.Error != nil {
		logger.Get().Error("failed to update menu item availability", zap.String("name", name), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NotFoundError{message: "menu item not found"}
	}
	return nil
}
