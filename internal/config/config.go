// internal/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var (
	currentConfig *AppConfig
	configMutex   sync.RWMutex
	configFile    string
)

// AppConfig holds the full application configuration: the base settings
// loaded from the environment plus the LLM/image provider settings managed
// through the settings API and persisted to config.json.
type AppConfig struct {
	Port         string `json:"port"`
	OpenAIAPIKey string `json:"openai_api_key,omitempty"`
	DataDir      string `json:"data_dir"`
	LogDir       string `json:"log_dir"`
	DebugMode    bool   `json:"debug_mode"`

	LLMProvider string            `json:"llm_provider"`
	LLMConfig   map[string]string `json:"llm_config"`

	// Image generation settings for the OpenAI-compatible images endpoint.
	ImageModel string `json:"image_model,omitempty"`
	ImageSize  string `json:"image_size,omitempty"`
}

// Config holds the base settings loaded from environment variables.
type Config struct {
	Port         string
	OpenAIAPIKey string
	DataDir      string
	LogDir       string
	DebugMode    bool
}

// Load reads the base configuration from the environment, picking up a
// .env file when one exists.
func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		Port:         getEnv("PORT", "8080"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		DataDir:      getEnvPath("DATA_DIR", "data"),
		LogDir:       getEnvPath("LOG_DIR", "logs"),
		DebugMode:    getEnvBool("DEBUG_MODE", true),
	}

	if config.OpenAIAPIKey == "" {
		log.Println("warning: OPENAI_API_KEY not set; image generation and script enhancement stay disabled until a key is configured in settings")
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvPath(key, defaultValue string) string {
	path := getEnv(key, defaultValue)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			fmt.Printf("warning: failed to create directory %s: %v\n", path, err)
		}
	}

	return path
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value == "true" || value == "1" || value == "yes"
}

// InitConfig loads the base configuration, overlays any saved config.json
// from dataDir and installs the result as the current configuration.
func InitConfig(dataDir string) error {
	configFile = filepath.Join(dataDir, "config.json")

	baseConfig, err := Load()
	if err != nil {
		return err
	}

	configMutex.Lock()
	defer configMutex.Unlock()

	currentConfig = &AppConfig{
		Port:         baseConfig.Port,
		OpenAIAPIKey: baseConfig.OpenAIAPIKey,
		DataDir:      baseConfig.DataDir,
		LogDir:       baseConfig.LogDir,
		DebugMode:    baseConfig.DebugMode,
		LLMProvider:  "openai",
		LLMConfig: map[string]string{
			"api_key":       baseConfig.OpenAIAPIKey,
			"default_model": "gpt-4o-mini",
		},
		ImageModel: "gpt-image-1",
		ImageSize:  "1024x1024",
	}

	// Saved settings win over defaults, but the base environment config
	// always takes effect for ports and directories.
	if _, err := os.Stat(configFile); !os.IsNotExist(err) {
		data, err := os.ReadFile(configFile)
		if err == nil {
			var savedConfig AppConfig
			if json.Unmarshal(data, &savedConfig) == nil {
				savedConfig.Port = baseConfig.Port
				savedConfig.DataDir = baseConfig.DataDir
				savedConfig.LogDir = baseConfig.LogDir
				savedConfig.DebugMode = baseConfig.DebugMode

				if savedConfig.LLMConfig != nil && savedConfig.LLMConfig["api_key"] == "" {
					savedConfig.LLMConfig["api_key"] = baseConfig.OpenAIAPIKey
				}
				if savedConfig.ImageModel == "" {
					savedConfig.ImageModel = "gpt-image-1"
				}
				if savedConfig.ImageSize == "" {
					savedConfig.ImageSize = "1024x1024"
				}

				currentConfig = &savedConfig
			}
		}
	}

	return SaveConfig()
}

// GetCurrentConfig returns a copy of the current configuration.
func GetCurrentConfig() *AppConfig {
	configMutex.RLock()
	defer configMutex.RUnlock()

	if currentConfig == nil {
		baseConfig, _ := Load()
		return &AppConfig{
			Port:         baseConfig.Port,
			OpenAIAPIKey: baseConfig.OpenAIAPIKey,
			DataDir:      baseConfig.DataDir,
			LogDir:       baseConfig.LogDir,
			DebugMode:    baseConfig.DebugMode,
			LLMProvider:  "openai",
			LLMConfig: map[string]string{
				"api_key": baseConfig.OpenAIAPIKey,
			},
		}
	}

	configCopy := *currentConfig
	return &configCopy
}

// UpdateLLMConfig installs a new LLM provider configuration and persists it.
func UpdateLLMConfig(provider string, config map[string]string) error {
	configMutex.Lock()
	defer configMutex.Unlock()

	if currentConfig == nil {
		return fmt.Errorf("config system not initialized")
	}

	currentConfig.LLMProvider = provider
	currentConfig.LLMConfig = config

	return saveConfigLocked()
}

// SaveConfig persists the current configuration to config.json.
func SaveConfig() error {
	return saveConfigLocked()
}

func saveConfigLocked() error {
	if currentConfig == nil {
		return fmt.Errorf("no config to save")
	}

	dir := filepath.Dir(configFile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(currentConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	return os.WriteFile(configFile, data, 0644)
}
