// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelingo/ReelLingo/internal/config"
	"github.com/reelingo/ReelLingo/internal/di"
	"github.com/reelingo/ReelLingo/internal/services"
	"github.com/reelingo/ReelLingo/internal/storage"
	"github.com/reelingo/ReelLingo/internal/utils"

	// Register the LLM providers with the registry.
	_ "github.com/reelingo/ReelLingo/internal/llm/providers/anthropic"
	_ "github.com/reelingo/ReelLingo/internal/llm/providers/openai"
)

// App holds the process-wide application state.
type App struct {
	Config   *config.Config
	Router   *gin.Engine
	server   *http.Server
	stopChan chan struct{}
}

var (
	instance *App
	appOnce  sync.Once
)

// GetApp returns the singleton application instance.
func GetApp() *App {
	appOnce.Do(func() {
		instance = &App{
			stopChan: make(chan struct{}),
		}
	})
	return instance
}

// Initialize loads configuration, prepares directories, and initializes
// logging and the runtime config overlay.
func (a *App) Initialize() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.Config = cfg

	for _, dir := range []string{cfg.DataDir, filepath.Join(cfg.DataDir, "reels"), cfg.LogDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := initLogger(cfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := config.InitConfig(cfg.DataDir); err != nil {
		return fmt.Errorf("failed to initialize runtime configuration: %w", err)
	}

	return nil
}

// initLogger opens one log file per day under the configured log dir.
func initLogger(cfg *config.Config) error {
	logFile := filepath.Join(cfg.LogDir, fmt.Sprintf("reellingo_%s.log", time.Now().Format("2006-01-02")))
	if err := utils.InitLogger(logFile); err != nil {
		return err
	}
	if cfg.DebugMode {
		utils.GetLogger().SetLogLevel(utils.DEBUG)
	}
	return nil
}

// InitServices constructs all services in dependency order and registers
// them in the DI container under their lookup names.
func InitServices() error {
	cfg := config.GetCurrentConfig()
	if cfg == nil {
		return fmt.Errorf("configuration not initialized")
	}

	container := di.GetContainer()

	fileStorage, err := storage.NewFileStorage(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	container.Register("storage", fileStorage)

	llmService, err := services.NewLLMService()
	if err != nil {
		return fmt.Errorf("failed to initialize llm service: %w", err)
	}
	container.Register("llm", llmService)

	container.Register("progress", services.NewProgressService())
	container.Register("config", services.NewConfigService())

	slideService := services.NewSlideService()
	container.Register("slide", slideService)

	reelService := services.NewReelService(fileStorage, slideService)
	container.Register("reel", reelService)

	container.Register("script", services.NewScriptService(llmService))
	container.Register("export", services.NewExportService())
	container.Register("image", services.NewImageService(llmService))

	return nil
}

// Run serves HTTP until Shutdown is called.
func (a *App) Run(router *gin.Engine, port string) error {
	a.Router = router
	a.server = &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	err := a.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server and releases service resources.
func (a *App) Shutdown(ctx context.Context) error {
	defer a.cleanup()

	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

func (a *App) cleanup() {
	container := di.GetContainer()
	if fileStorage, ok := container.Get("storage").(*storage.FileStorage); ok {
		fileStorage.Close()
	}
	utils.GetLogger().Close()
	close(a.stopChan)
}

// IsDebugMode reports whether the app runs with debug logging.
func (a *App) IsDebugMode() bool {
	return a.Config != nil && a.Config.DebugMode
}
