package main

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/windoze95/cardapio-api/internal/config"
	"github.com/windoze95/cardapio-api/internal/db"
	"github.com/windoze95/cardapio-api/internal/logger"
	"github.com/windoze95/cardapio-api/internal/repository"
	"github.com/windoze95/cardapio-api/internal/router"
	"github.com/windoze95/cardapio-api/internal/service"
	"go.uber.org/zap"
)

// init is called before the main function.
func init() {
	// Initialize structured logger (dev mode if GIN_MODE != release)
	isDev := os.Getenv("GIN_MODE") != "release"
	logger.Init(isDev)

	// Configure the runtime
	ConfigureRuntime()
}

// Entry point for the API.
func main() {
	defer logger.Sync()

	// Load the config
	var cfg *config.Config
	if c, err := config.LoadConfig(); err != nil {
		logger.Get().Fatal("failed to load config", zap.Error(err))
	} else {
		cfg = c
	}

	// Check that all ENV variables are set
	if err := cfg.CheckConfigEnvFields(); err != nil {
		logger.Get().Fatal("missing required config fields", zap.Error(err))
	}

	// Connect to the database only when the menu lives there
	var menuRepo repository.MenuRepo
	if cfg.EnvVars.MenuSource == config.MenuSourceDatabase {
		database, err := db.New(cfg)
		if err != nil {
			logger.Get().Fatal("failed to connect to database", zap.Error(err))
		}
		sqlDB, err := database.DB()
		if err != nil {
			logger.Get().Fatal("failed to get underlying sql.DB", zap.Error(err))
		}
		defer sqlDB.Close()
		menuRepo = repository.NewMenuRepository(database)
	}

	// Load the menu once; it is read-only for the life of the process
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	catalog, err := service.NewMenuService(cfg, menuRepo).LoadCatalog(ctx)
	cancel()
	if err != nil {
		logger.Get().Fatal("failed to load menu", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Create a new gin router
	gin.SetMode(gin.ReleaseMode)
	r := router.SetupRouter(cfg, catalog, reg)

	// Run the server
	logger.Get().Info("starting server",
		zap.String("port", cfg.EnvVars.Port),
		zap.Bool("phonetic_matching", cfg.EnvVars.PhoneticMatching),
	)
	if err := r.Run(":" + cfg.EnvVars.Port); err != nil {
		logger.Get().Fatal("server stopped", zap.Error(err))
	}
}

// ConfigureRuntime sets the number of operating system threads.
func ConfigureRuntime() {
	nuCPU := runtime.NumCPU()
	runtime.GOMAXPROCS(nuCPU)
	logger.Get().Info("runtime configured", zap.Int("cpus", nuCPU))
}
