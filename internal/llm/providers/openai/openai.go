// internal/llm/providers/openai/openai.go
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/reelingo/ReelLingo/internal/llm"
)

func init() {
	llm.Register("openai", func() llm.Provider {
		return &Provider{
			recommendedModels: []string{
				"gpt-4o",
				"gpt-4o-mini",
				"gpt-4.1",
				"gpt-4.1-mini",
			},
			baseURL: "https://api.openai.com/v1",
		}
	})
}

type Provider struct {
	apiKey            string
	baseURL           string
	client            *http.Client
	defaultModel      string
	imageModel        string
	recommendedModels []string
	availableModels   []string
}

func (p *Provider) Initialize(config map[string]string) error {
	apiKey, exists := config["api_key"]
	if !exists || apiKey == "" {
		return errors.New("openai api key not provided")
	}

	p.apiKey = apiKey
	p.client = &http.Client{}

	if model, exists := config["default_model"]; exists && model != "" {
		p.defaultModel = model
	} else {
		p.defaultModel = "gpt-4o-mini"
	}

	if model, exists := config["image_model"]; exists && model != "" {
		p.imageModel = model
	} else {
		p.imageModel = "gpt-image-1"
	}

	if baseURL, exists := config["base_url"]; exists && baseURL != "" {
		p.baseURL = baseURL
	}

	if customModels, exists := config["custom_models"]; exists && customModels != "" {
		var models []string
		if err := json.Unmarshal([]byte(customModels), &models); err == nil && len(models) > 0 {
			p.availableModels = models
		}
	}

	return nil
}

func (p *Provider) GetName() string {
	return "OpenAI"
}

func (p *Provider) GetSupportedModels() []string {
	if len(p.availableModels) > 0 {
		return p.availableModels
	}
	return p.recommendedModels
}

func (p *Provider) SetCustomModels(models []string) {
	if len(models) > 0 {
		p.availableModels = models
	}
}

func (p *Provider) CompleteText(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.defaultModel
	}

	messages := []map[string]interface{}{}
	if req.SystemPrompt != "" {
		messages = append(messages, map[string]interface{}{
			"role": "system", "content": req.SystemPrompt,
		})
	}
	messages = append(messages, map[string]interface{}{
		"role": "user", "content": req.Prompt,
	})

	requestBody := map[string]interface{}{
		"model":    model,
		"messages": messages,
	}
	if req.MaxTokens > 0 {
		requestBody["max_tokens"] = req.MaxTokens
	}
	if req.Temperature > 0 {
		requestBody["temperature"] = req.Temperature
	}
	for k, v := range req.ExtraParams {
		requestBody[k] = v
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		"POST",
		p.baseURL+"/chat/completions",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(httpResp.Body)
		return nil, fmt.Errorf("openai api error (%d): %s", httpResp.StatusCode, string(body))
	}

	var response struct {
		ID      string `json:"id"`
		Model   string `json:"model"`
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
			TotalTokens      int `json:"total_tokens"`
		} `json:"usage"`
	}

	if err := json.NewDecoder(httpResp.Body).Decode(&response); err != nil {
		return nil, err
	}

	if len(response.Choices) == 0 {
		return nil, errors.New("openai returned no choices")
	}

	return &llm.CompletionResponse{
		Text:         response.Choices[0].Message.Content,
		FinishReason: response.Choices[0].FinishReason,
		TokensUsed:   response.Usage.TotalTokens,
		PromptTokens: response.Usage.PromptTokens,
		OutputTokens: response.Usage.CompletionTokens,
		ModelName:    model,
		ProviderName: p.GetName(),
	}, nil
}

// GenerateImage calls the images endpoint and returns the result as a
// base64 data URI.
func (p *Provider) GenerateImage(ctx context.Context, req llm.ImageRequest) (*llm.ImageResponse, error) {
	model := req.Model
	if model == "" {
		model = p.imageModel
	}
	size := req.Size
	if size == "" {
		size = "1024x1024"
	}

	requestBody := map[string]interface{}{
		"model":           model,
		"prompt":          req.Prompt,
		"n":               1,
		"size":            size,
		"response_format": "b64_json",
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		"POST",
		p.baseURL+"/images/generations",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(httpResp.Body)
		if httpResp.StatusCode == http.StatusTooManyRequests {
			return nil, &RateLimitError{Body: string(body)}
		}
		return nil, fmt.Errorf("openai images api error (%d): %s", httpResp.StatusCode, string(body))
	}

	var response struct {
		Data []struct {
			B64JSON string `json:"b64_json"`
		} `json:"data"`
	}

	if err := json.NewDecoder(httpResp.Body).Decode(&response); err != nil {
		return nil, err
	}

	if len(response.Data) == 0 || response.Data[0].B64JSON == "" {
		return nil, errors.New("openai returned no image data")
	}

	return &llm.ImageResponse{
		DataURI:   "data:image/png;base64," + response.Data[0].B64JSON,
		ModelName: model,
	}, nil
}

// RateLimitError marks an HTTP 429 from the images endpoint so callers can
// apply their backoff policy to it specifically.
type RateLimitError struct {
	Body string
}

func (e *RateLimitError) Error() string {
	return "openai rate limited (429): " + e.Body
}

func (e *RateLimitError) RateLimited() bool { return true }
