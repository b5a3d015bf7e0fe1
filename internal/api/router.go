package api

import (
	"github.com/gin-gonic/gin"
	"github.com/timmy/artglass/internal/api/handler"
	"github.com/timmy/artglass/internal/api/middleware"
	"github.com/timmy/artglass/internal/config"
	"github.com/timmy/artglass/internal/notify"
	"github.com/timmy/artglass/internal/repository"
	"github.com/timmy/artglass/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	artService *service.ArtService,
	settingsRepo *repository.SettingsRepository,
	bus *notify.Bus,
	cfg *config.Config,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	artworkHandler := handler.NewArtworkHandler(artService)
	settingsHandler := handler.NewSettingsHandler(settingsRepo)
	eventsHandler := handler.NewEventsHandler(bus)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Artwork navigation
		v1.GET("/artwork/current", artworkHandler.Current)
		v1.POST("/artwork/next", artworkHandler.Next)
		v1.POST("/artwork/previous", artworkHandler.Previous)

		// Artwork-changed push
		v1.GET("/events", eventsHandler.Stream)

		// Settings
		v1.GET("/settings/hotkey", settingsHandler.GetHotkey)
		v1.PUT("/settings/hotkey", settingsHandler.SetHotkey)
	}

	return r
}
