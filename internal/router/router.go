package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/windoze95/cardapio-api/internal/ai"
	"github.com/windoze95/cardapio-api/internal/alexa"
	"github.com/windoze95/cardapio-api/internal/config"
	"github.com/windoze95/cardapio-api/internal/handlers"
	"github.com/windoze95/cardapio-api/internal/logger"
	"github.com/windoze95/cardapio-api/internal/menu"
	"github.com/windoze95/cardapio-api/internal/metrics"
	"github.com/windoze95/cardapio-api/internal/middleware"
	"github.com/windoze95/cardapio-api/internal/order"
	"github.com/windoze95/cardapio-api/internal/service"
	"github.com/windoze95/cardapio-api/internal/ws"
)

// SetupRouter sets up the Gin router. Collectors are registered on reg and
// served at /metrics.
func SetupRouter(cfg *config.Config, catalog *menu.Catalog, reg *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.EnvVars.AllowedOrigins) > 0 {
		corsConfig.AllowCredentials = true
		corsConfig.AllowOrigins = cfg.EnvVars.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsConfig))

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.AccessLogMiddleware())

	httpMetrics := metrics.NewHTTPMetrics(metrics.Namespace, reg)
	r.Use(httpMetrics.Middleware())

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Order interpretation setup
	var interpreterOpts []order.Option
	if cfg.EnvVars.PhoneticMatching {
		interpreterOpts = append(interpreterOpts, order.WithPhonetic())
	}
	interpreter := order.NewInterpreter(catalog, interpreterOpts...)
	orderService := service.NewOrderService(interpreter, metrics.NewOrderMetrics(metrics.Namespace, reg))

	// Speech-to-text is only available with an OpenAI key
	var voiceService *service.VoiceService
	if cfg.EnvVars.OpenAIAPIKey != "" {
		speechProvider := ai.NewWhisperProvider(cfg.EnvVars.OpenAIAPIKey)
		voiceService = service.NewVoiceService(cfg, speechProvider, orderService)
	}

	// Voice skill routes
	skill := alexa.NewSkill(alexa.DefaultHandlers(orderService), alexa.WithApplicationID(cfg.EnvVars.SkillID))
	skillHandler := handlers.NewSkillHandler(skill)
	r.GET("/", skillHandler.Status)
	r.POST("/", skillHandler.HandleSkillRequest)

	orderHandler := handlers.NewOrderHandler(orderService, voiceService)
	menuHandler := handlers.NewMenuHandler(orderService)

	// Group for API routes that don't require token verification
	apiPublic := r.Group("/v1")
	{
		apiPublic.Use(middleware.RateLimitByIP(cfg.EnvVars.RateLimitRPS, time.Minute, 3*time.Minute))

		// List the menu
		apiPublic.GET("/menu", menuHandler.GetMenu)
		// Price order text
		apiPublic.POST("/orders/quote", orderHandler.QuoteOrder)
	}

	// Token-protected routes need a signing secret
	if cfg.EnvVars.JwtSecretKey == "" {
		return r
	}

	apiProtected := r.Group("/v1")
	{
		apiProtected.Use(middleware.RateLimitByIP(cfg.EnvVars.RateLimitRPS, time.Minute, 3*time.Minute))
		apiProtected.Use(middleware.VerifyTokenMiddleware(cfg))

		// Price a recorded order
		apiProtected.POST("/orders/voice", orderHandler.QuoteVoiceOrder)
	}

	// WebSocket routes (authenticated via query param token)
	hub := ws.NewHub(metrics.NewSessionMetrics(metrics.Namespace, reg))
	go hub.Run(context.Background())
	sessionHandler := ws.NewOrderSessionHandler(hub, cfg.EnvVars.JwtSecretKey, orderService, voiceService, cfg.EnvVars.AllowedOrigins)
	r.GET("/v1/ws/orders/:room_id", sessionHandler.HandleOrderSession)

	return r
}
