// Command menuctl maintains the menu outside the API process: it validates
// the YAML menu, publishes it to S3, seeds and edits the database menu and
// mints device access tokens.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/windoze95/cardapio-api/internal/config"
	"github.com/windoze95/cardapio-api/internal/db"
	"github.com/windoze95/cardapio-api/internal/logger"
	"github.com/windoze95/cardapio-api/internal/menu"
	"github.com/windoze95/cardapio-api/internal/middleware"
	"github.com/windoze95/cardapio-api/internal/models"
	"github.com/windoze95/cardapio-api/internal/repository"
	"github.com/windoze95/cardapio-api/internal/s3"
	"go.uber.org/zap"
)

const usage = `usage: menuctl <command> [flags]

commands:
  check    validate the menu file
  publish  upload the menu file to S3_BUCKET/MENU_S3_KEY
  seed     insert the menu file into an empty database
  price    change an item's price in the database (-name, -price)
  enable   put an item back on the database menu (-name)
  disable  take an item off the database menu (-name)
  token    print an access token for a device (-caller, -ttl)
`

func main() {
	logger.Init(os.Getenv("GIN_MODE") != "release")
	defer logger.Sync()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Get().Fatal("failed to load config", zap.Error(err))
	}

	fs := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
	path := fs.String("menu", cfg.EnvVars.MenuPath, "menu YAML file")
	caller := fs.String("caller", "", "caller ID for token")
	ttl := fs.Duration("ttl", 365*24*time.Hour, "token lifetime")
	name := fs.String("name", "", "menu item name")
	price := fs.Int("price", -1, "new unit price")
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch os.Args[1] {
	case "check":
		entries := mustLoad(*path)
		fmt.Printf("%s: %d items ok\n", *path, len(entries))
	case "publish":
		mustLoad(*path)
		data, err := os.ReadFile(*path)
		if err != nil {
			logger.Get().Fatal("failed to read menu", zap.Error(err))
		}
		location, err := s3.UploadMenuToS3(ctx, cfg, data)
		if err != nil {
			logger.Get().Fatal("failed to publish menu", zap.Error(err))
		}
		fmt.Println(location)
	case "seed":
		entries := mustLoad(*path)
		seeded, err := mustRepo(cfg).SeedMenuItems(models.MenuItemsFromEntries(entries))
		if err != nil {
			logger.Get().Fatal("failed to seed menu", zap.Error(err))
		}
		if !seeded {
			fmt.Println("menu table not empty; nothing seeded")
			return
		}
		fmt.Printf("seeded %d items\n", len(entries))
	case "price":
		if err := setPrice(mustRepo(cfg), *name, *price, os.Stdout); err != nil {
			logger.Get().Fatal("failed to set price", zap.Error(err))
		}
	case "enable", "disable":
		if err := setAvailable(mustRepo(cfg), *name, os.Args[1] == "enable", os.Stdout); err != nil {
			logger.Get().Fatal("failed to set availability", zap.Error(err))
		}
	case "token":
		if *caller == "" || cfg.EnvVars.JwtSecretKey == "" {
			logger.Get().Fatal("token needs -caller and $JWT_SECRET_KEY")
		}
		token, err := middleware.NewAccessToken(cfg.EnvVars.JwtSecretKey, *caller, *ttl)
		if err != nil {
			logger.Get().Fatal("failed to sign token", zap.Error(err))
		}
		fmt.Println(token)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

// mustRepo connects to DATABASE_URL.
func mustRepo(cfg *config.Config) *repository.MenuRepository {
	database, err := db.New(cfg)
	if err != nil {
		logger.Get().Fatal("failed to connect to database", zap.Error(err))
	}
	return repository.NewMenuRepository(database)
}

// mustLoad parses and validates the menu file.
func mustLoad(path string) []menu.Entry {
	entries, err := config.LoadMenuFile(path)
	if err != nil {
		logger.Get().Fatal("failed to load menu", zap.String("path", path), zap.Error(err))
	}
	if _, err := menu.New(entries); err != nil {
		logger.Get().Fatal("invalid menu", zap.String("path", path), zap.Error(err))
	}
	return entries
}
