package service

import (
	"context"
	"fmt"

	"github.com/windoze95/cardapio-api/internal/config"
	"github.com/windoze95/cardapio-api/internal/logger"
	"github.com/windoze95/cardapio-api/internal/menu"
	"github.com/windoze95/cardapio-api/internal/models"
	"github.com/windoze95/cardapio-api/internal/repository"
	"github.com/windoze95/cardapio-api/internal/s3"
	"go.uber.org/zap"
)

// MenuService loads the menu catalog from the configured source.
type MenuService struct {
	Cfg  *config.Config
	Repo repository.MenuRepo
	// FetchObject downloads the menu document for the s3 source.
	FetchObject func(ctx context.Context, cfg *config.Config) ([]byte, error)
}

// NewMenuService creates a new MenuService. repo is only used by the
// database source and may be nil otherwise.
func NewMenuService(cfg *config.Config, repo repository.MenuRepo) *MenuService {
	return &MenuService{
		Cfg:         cfg,
		Repo:        repo,
		FetchObject: s3.DownloadMenuFromS3,
	}
}

// LoadCatalog reads the menu from MENU_SOURCE and builds the catalog.
func (s *MenuService) LoadCatalog(ctx context.Context) (*menu.Catalog, error) {
	entries, err := s.loadEntries(ctx)
	if err != nil {
		return nil, err
	}

	catalog, err := menu.New(entries)
	if err != nil {
		return nil, fmt.Errorf("build catalog from %s: %w", s.Cfg.EnvVars.MenuSource, err)
	}

	logger.Get().Info("menu loaded",
		zap.String("source", s.Cfg.EnvVars.MenuSource),
		zap.Int("items", catalog.Len()),
	)
	return catalog, nil
}

func (s *MenuService) loadEntries(ctx context.Context) ([]menu.Entry, error) {
	switch s.Cfg.EnvVars.MenuSource {
	case config.MenuSourceFile, "":
		return config.LoadMenuFile(s.Cfg.EnvVars.MenuPath)
	case config.MenuSourceS3:
		data, err := s.FetchObject(ctx, s.Cfg)
		if err != nil {
			return nil, err
		}
		return config.ParseMenu(data)
	case config.MenuSourceDatabase:
		return s.loadFromDatabase()
	default:
		return nil, fmt.Errorf("unknown menu source %q", s.Cfg.EnvVars.MenuSource)
	}
}

// loadFromDatabase lists stored items, seeding the table from MENU_PATH the
// first time it is found empty.
func (s *MenuService) loadFromDatabase() ([]menu.Entry, error) {
	if s.Repo == nil {
		return nil, fmt.Errorf("menu source %q needs a repository", config.MenuSourceDatabase)
	}

	items, err := s.Repo.ListMenuItems()
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	if len(items) > 0 {
		return models.MenuEntries(items), nil
	}

	seed, err := config.LoadMenuFile(s.Cfg.EnvVars.MenuPath)
	if err != nil {
		return nil, fmt.Errorf("menu table is empty and seed file failed: %w", err)
	}
	if _, err := menu.New(seed); err != nil {
		return nil, fmt.Errorf("seed menu: %w", err)
	}
	seeded, err := s.Repo.SeedMenuItems(models.MenuItemsFromEntries(seed))
	if err != nil {
		return nil, fmt.Errorf("seed menu items: %w", err)
	}
	if seeded {
		logger.Get().Info("seeded menu table", zap.String("path", s.Cfg.EnvVars.MenuPath), zap.Int("items", len(seed)))
	}

	items, err = s.Repo.ListMenuItems()
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return models.MenuEntries(items), nil
}
