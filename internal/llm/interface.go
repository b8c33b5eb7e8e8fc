// internal/llm/interface.go
package llm

import (
	"context"
	"errors"
)

var ErrUnknownProvider = errors.New("unknown llm provider")

// CompletionRequest is the normalized text-completion request shared by all
// providers.
type CompletionRequest struct {
	Prompt       string                 `json:"prompt"`
	SystemPrompt string                 `json:"system_prompt,omitempty"`
	MaxTokens    int                    `json:"max_tokens,omitempty"`
	Temperature  float32                `json:"temperature,omitempty"`
	Model        string                 `json:"model,omitempty"`
	ExtraParams  map[string]interface{} `json:"extra_params,omitempty"`
}

// CompletionResponse is the normalized text-completion response.
type CompletionResponse struct {
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason,omitempty"`
	TokensUsed   int    `json:"tokens_used,omitempty"`
	PromptTokens int    `json:"prompt_tokens,omitempty"`
	OutputTokens int    `json:"output_tokens,omitempty"`
	ModelName    string `json:"model_name,omitempty"`
	ProviderName string `json:"provider_name,omitempty"`
}

// ImageRequest asks for one generated image.
type ImageRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
	Size   string `json:"size,omitempty"`
}

// ImageResponse carries one generated image as a data URI.
type ImageResponse struct {
	DataURI   string `json:"data_uri"`
	ModelName string `json:"model_name,omitempty"`
}

// Provider is the interface every LLM provider implements.
type Provider interface {
	// Initialize configures the provider from a settings map.
	Initialize(config map[string]string) error

	// GetName returns the human-readable provider name.
	GetName() string

	// GetSupportedModels lists the models this provider can use.
	GetSupportedModels() []string

	// CompleteText performs a text completion.
	CompleteText(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// SetCustomModels overrides the supported model list.
	SetCustomModels(models []string)
}

// ImageGenerator is implemented by providers that can also synthesize images.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error)
}

// rateLimited is implemented by provider errors that represent an HTTP 429.
type rateLimited interface {
	RateLimited() bool
}

// IsRateLimited reports whether err (or anything it wraps) is a provider
// rate-limit error.
func IsRateLimited(err error) bool {
	var rl rateLimited
	return errors.As(err, &rl) && rl.RateLimited()
}

// ProviderFactory creates an unconfigured provider instance.
type ProviderFactory func() Provider

var providers = make(map[string]ProviderFactory)

// Register adds a provider factory under name. Called from provider
// package init functions.
func Register(name string, factory ProviderFactory) {
	providers[name] = factory
}

// GetProvider creates and initializes the named provider.
func GetProvider(name string, config map[string]string) (Provider, error) {
	factory, exists := providers[name]
	if !exists {
		return nil, ErrUnknownProvider
	}

	provider := factory()
	if err := provider.Initialize(config); err != nil {
		return nil, err
	}
	return provider, nil
}

// ListProviders returns all registered provider names.
func ListProviders() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	return names
}

// GetSupportedModelsForProvider lists the models of the named provider.
func GetSupportedModelsForProvider(name string) []string {
	factory, exists := providers[name]
	if !exists {
		return []string{}
	}

	return factory().GetSupportedModels()
}
