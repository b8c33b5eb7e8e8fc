// internal/services/config_service.go
package services

import (
	"fmt"
	"sync"

	"github.com/reelingo/ReelLingo/internal/config"
	apperrors "github.com/reelingo/ReelLingo/internal/errors"
	"github.com/reelingo/ReelLingo/internal/llm"
)

// ConfigService exposes runtime-editable settings (LLM provider, API key,
// model choices) to the API layer. Writes go through the config package,
// which persists them to config.json.
type ConfigService struct {
	mutex sync.RWMutex
}

func NewConfigService() *ConfigService {
	return &ConfigService{}
}

// GetLLMSettings returns the current provider settings with the API key
// masked for display.
func (s *ConfigService) GetLLMSettings() map[string]interface{} {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	cfg := config.GetCurrentConfig()
	if cfg == nil {
		return map[string]interface{}{"configured": false}
	}

	settings := map[string]interface{}{
		"provider":    cfg.LLMProvider,
		"configured":  cfg.LLMConfig["api_key"] != "",
		"model":       cfg.LLMConfig["default_model"],
		"image_model": cfg.ImageModel,
		"image_size":  cfg.ImageSize,
	}
	return settings
}

// UpdateLLMSettings validates and persists new provider settings.
func (s *ConfigService) UpdateLLMSettings(provider, apiKey, defaultModel string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !isKnownProvider(provider) {
		return apperrors.NewValidationError(
			fmt.Sprintf("unknown provider %q, available: %v", provider, llm.ListProviders()), nil)
	}
	if apiKey == "" {
		return apperrors.NewValidationError("api_key is required", nil)
	}

	llmConfig := map[string]string{
		"api_key": apiKey,
	}
	if defaultModel != "" {
		llmConfig["default_model"] = defaultModel
	}

	return config.UpdateLLMConfig(provider, llmConfig)
}

// GetAvailableProviders lists registered providers and their models.
func (s *ConfigService) GetAvailableProviders() map[string][]string {
	result := make(map[string][]string)
	for _, name := range llm.ListProviders() {
		result[name] = llm.GetSupportedModelsForProvider(name)
	}
	return result
}

func isKnownProvider(name string) bool {
	for _, registered := range llm.ListProviders() {
		if registered == name {
			return true
		}
	}
	return false
}
