// internal/services/llm_service.go
package services

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/reelingo/ReelLingo/internal/config"
	"github.com/reelingo/ReelLingo/internal/llm"
)

var ErrLLMNotReady = errors.New("llm service not ready")

// LLMService wraps the active text-generation provider behind a single
// call surface with a short-lived response cache. The service can start
// unconfigured and become ready later when an API key arrives through the
// settings API.
type LLMService struct {
	providerMutex sync.RWMutex
	provider      llm.Provider
	providerName  string
	cache         *llmCache
	isReady       bool
	readyState    string
}

type llmCache struct {
	entries    map[string]*llmCacheEntry
	mutex      sync.RWMutex
	expiration time.Duration
}

type llmCacheEntry struct {
	response  *llm.CompletionResponse
	createdAt time.Time
}

// NewLLMService creates an LLM service from the current configuration.
// A missing or broken provider configuration yields a not-ready service,
// never an error: the rest of the app works without AI features.
func NewLLMService() (*LLMService, error) {
	service := newBaseLLMService()

	cfg := config.GetCurrentConfig()
	if cfg == nil {
		service.readyState = "failed to retrieve configuration"
		return service, nil
	}

	if cfg.LLMProvider == "" || (cfg.LLMConfig != nil && cfg.LLMConfig["api_key"] == "") {
		service.readyState = "API key not configured"
		return service, nil
	}

	provider, err := llm.GetProvider(cfg.LLMProvider, cfg.LLMConfig)
	if err != nil {
		service.readyState = fmt.Sprintf("initialization failed: %v", err)
		return service, nil
	}

	service.provider = provider
	service.providerName = cfg.LLMProvider
	service.isReady = true
	service.readyState = "ready"

	return service, nil
}

// NewEmptyLLMService creates a standby service without a provider.
func NewEmptyLLMService() *LLMService {
	service := newBaseLLMService()
	service.providerName = "empty"
	service.readyState = "standby - configure an API key in settings"
	return service
}

func newBaseLLMService() *LLMService {
	return &LLMService{
		readyState: "uninitialized",
		cache: &llmCache{
			entries:    make(map[string]*llmCacheEntry),
			expiration: 30 * time.Minute,
		},
	}
}

// IsReady reports whether a provider is configured and usable.
func (s *LLMService) IsReady() bool {
	s.providerMutex.RLock()
	defer s.providerMutex.RUnlock()

	return s.provider != nil && s.isReady
}

// GetReadyState returns a readable status description.
func (s *LLMService) GetReadyState() string {
	s.providerMutex.RLock()
	defer s.providerMutex.RUnlock()

	return s.readyState
}

// GetProviderStatus returns readiness plus the status description.
func (s *LLMService) GetProviderStatus() (bool, string) {
	if s == nil {
		return false, "llm service not initialized"
	}
	if s.IsReady() {
		return true, "ready"
	}
	return false, s.GetReadyState()
}

// GetProviderName returns the configured provider key.
func (s *LLMService) GetProviderName() string {
	s.providerMutex.RLock()
	defer s.providerMutex.RUnlock()

	return s.providerName
}

// UpdateProvider swaps the active provider, clearing the response cache.
func (s *LLMService) UpdateProvider(providerName string, providerConfig map[string]string) error {
	provider, err := llm.GetProvider(providerName, providerConfig)
	if err != nil {
		s.providerMutex.Lock()
		s.isReady = false
		s.readyState = fmt.Sprintf("configuration failed: %v", err)
		s.providerMutex.Unlock()
		return err
	}

	s.providerMutex.Lock()
	defer s.providerMutex.Unlock()

	s.provider = provider
	s.providerName = providerName
	s.isReady = true
	s.readyState = "ready"

	s.cache = &llmCache{
		entries:    make(map[string]*llmCacheEntry),
		expiration: 30 * time.Minute,
	}

	return nil
}

// CompleteText performs a text completion through the active provider,
// serving repeated identical requests from the cache.
func (s *LLMService) CompleteText(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.providerMutex.RLock()
	provider := s.provider
	ready := s.isReady
	s.providerMutex.RUnlock()

	if provider == nil || !ready {
		return nil, ErrLLMNotReady
	}

	cacheKey := s.cacheKey(req.Prompt, req.SystemPrompt, req.Model)
	if cached := s.cache.get(cacheKey); cached != nil {
		return cached, nil
	}

	resp, err := provider.CompleteText(ctx, req)
	if err != nil {
		return nil, err
	}

	s.cache.put(cacheKey, resp)
	return resp, nil
}

// ImageGenerator returns the active provider's image capability, or nil
// when the provider cannot generate images.
func (s *LLMService) ImageGenerator() llm.ImageGenerator {
	s.providerMutex.RLock()
	defer s.providerMutex.RUnlock()

	if s.provider == nil || !s.isReady {
		return nil
	}
	if gen, ok := s.provider.(llm.ImageGenerator); ok {
		return gen
	}
	return nil
}

func (s *LLMService) cacheKey(prompt, systemPrompt, model string) string {
	s.providerMutex.RLock()
	providerName := s.providerName
	s.providerMutex.RUnlock()

	sum := md5.Sum([]byte(providerName + "|" + model + "|" + systemPrompt + "|" + prompt))
	return fmt.Sprintf("%x", sum)
}

func (c *llmCache) get(key string) *llm.CompletionResponse {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.entries[key]
	if !exists || time.Since(entry.createdAt) > c.expiration {
		return nil
	}
	return entry.response
}

func (c *llmCache) put(key string, resp *llm.CompletionResponse) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = &llmCacheEntry{
		response:  resp,
		createdAt: time.Now(),
	}
}
