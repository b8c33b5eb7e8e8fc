// internal/api/router.go
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelingo/ReelLingo/internal/config"
	"github.com/reelingo/ReelLingo/internal/di"
	"github.com/reelingo/ReelLingo/internal/services"
)

// SetupRouter wires the HTTP routes to services from the DI container.
func SetupRouter() (*gin.Engine, error) {
	cfg := config.GetCurrentConfig()

	container := di.GetContainer()

	reelService, ok := container.Get("reel").(*services.ReelService)
	if !ok {
		return nil, fmt.Errorf("reel service not initialized")
	}

	scriptService, ok := container.Get("script").(*services.ScriptService)
	if !ok {
		return nil, fmt.Errorf("script service not initialized")
	}

	exportService, ok := container.Get("export").(*services.ExportService)
	if !ok {
		return nil, fmt.Errorf("export service not initialized")
	}

	imageService, ok := container.Get("image").(*services.ImageService)
	if !ok {
		return nil, fmt.Errorf("image service not initialized")
	}

	progressService, ok := container.Get("progress").(*services.ProgressService)
	if !ok {
		return nil, fmt.Errorf("progress service not initialized")
	}

	configService, ok := container.Get("config").(*services.ConfigService)
	if !ok {
		return nil, fmt.Errorf("config service not initialized")
	}

	llmService, ok := container.Get("llm").(*services.LLMService)
	if !ok {
		return nil, fmt.Errorf("llm service not initialized")
	}

	handler := NewHandler(
		reelService,
		scriptService,
		exportService,
		imageService,
		progressService,
		configService,
		llmService,
	)

	if cfg != nil && !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(corsMiddleware())

	r.GET("/health", handler.Health)

	// WebSocket progress channel
	r.GET("/ws/progress/:taskID", handler.ProgressWebSocket)

	api := r.Group("/api")
	api.Use(DefaultRateLimit())
	{
		// Lesson upload builds a reel
		api.POST("/lessons", handler.UploadLesson)

		reelsGroup := api.Group("/reels")
		{
			reelsGroup.GET("", handler.GetReels)
			reelsGroup.GET("/:id", handler.GetReel)
			reelsGroup.DELETE("/:id", handler.DeleteReel)

			reelsGroup.POST("/:id/images", ImageGenerationRateLimit(), handler.GenerateReelImages)

			scriptGroup := reelsGroup.Group("/:id/script")
			{
				scriptGroup.GET("", handler.GetScript)
				scriptGroup.POST("", handler.GenerateScript)
				scriptGroup.POST("/enhance", EnhanceRateLimit(), handler.EnhanceScript)
				scriptGroup.GET("/export", handler.ExportScript)
			}
		}

		// Progress over SSE, plus cancellation
		api.GET("/progress/:taskID", handler.SubscribeProgress)
		api.POST("/cancel/:taskID", handler.CancelTask)

		settingsGroup := api.Group("/settings")
		{
			settingsGroup.GET("", handler.GetSettings)
			settingsGroup.POST("", handler.SaveSettings)
		}

		llmGroup := api.Group("/llm")
		{
			llmGroup.GET("/status", handler.GetLLMStatus)
			llmGroup.GET("/models", handler.GetLLMModels)
			llmGroup.PUT("/config", handler.SaveSettings)
		}
	}

	return r, nil
}

// corsMiddleware enables cross-origin requests from the frontend.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
