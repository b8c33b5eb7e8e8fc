// internal/api/handlers.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/reelingo/ReelLingo/internal/errors"
	"github.com/reelingo/ReelLingo/internal/models"
	"github.com/reelingo/ReelLingo/internal/services"
	"github.com/reelingo/ReelLingo/internal/utils"
)

// Handler wires the HTTP surface to the services.
type Handler struct {
	ReelService     *services.ReelService
	ScriptService   *services.ScriptService
	ExportService   *services.ExportService
	ImageService    *services.ImageService
	ProgressService *services.ProgressService
	ConfigService   *services.ConfigService
	LLMService      *services.LLMService
	Response        *ResponseHelper
}

func NewHandler(
	reelService *services.ReelService,
	scriptService *services.ScriptService,
	exportService *services.ExportService,
	imageService *services.ImageService,
	progressService *services.ProgressService,
	configService *services.ConfigService,
	llmService *services.LLMService,
) *Handler {
	return &Handler{
		ReelService:     reelService,
		ScriptService:   scriptService,
		ExportService:   exportService,
		ImageService:    imageService,
		ProgressService: progressService,
		ConfigService:   configService,
		LLMService:      llmService,
		Response:        NewResponseHelper(),
	}
}

// APIResponse is the standard response envelope.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
}

// APIError is the standard error payload.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// GenerateScriptRequest selects the voiceover tone.
type GenerateScriptRequest struct {
	Tone string `json:"tone"`
}

// EnhanceScriptRequest configures AI rewriting of the voiceover script.
type EnhanceScriptRequest struct {
	CEFRLevel string `json:"cefr_level"`
	Tone      string `json:"tone"`
}

// UpdateLLMConfigRequest updates the active provider settings.
type UpdateLLMConfigRequest struct {
	Provider     string `json:"provider"`
	APIKey       string `json:"api_key"`
	DefaultModel string `json:"default_model"`
}

// ========================================
// Lesson upload and reel management
// ========================================

// UploadLesson accepts a structured lesson document and builds a reel
// from it. Re-uploading a lesson replaces the previous reel.
func (h *Handler) UploadLesson(c *gin.Context) {
	var lesson models.Lesson
	if err := c.ShouldBindJSON(&lesson); err != nil {
		h.Response.Error(c, http.StatusBadRequest, ErrorLessonParseFailed,
			"Request body is not a valid lesson document", err.Error())
		return
	}

	reel, err := h.ReelService.CreateReel(&lesson)
	if err != nil {
		if apperrors.IsInvalidLesson(err) {
			h.Response.Error(c, http.StatusBadRequest, ErrorLessonInvalid,
				"Lesson document is incomplete", err.Error())
			return
		}
		h.Response.Error(c, http.StatusInternalServerError, ErrorReelCreateFailed,
			"Failed to build reel from lesson", err.Error())
		return
	}

	h.Response.Created(c, reel, "Reel created")
}

// GetReels lists all saved reels.
func (h *Handler) GetReels(c *gin.Context) {
	reels, err := h.ReelService.ListReels()
	if err != nil {
		h.Response.InternalError(c, "Failed to list reels", err.Error())
		return
	}
	h.Response.Success(c, reels)
}

// GetReel returns one reel by ID.
func (h *Handler) GetReel(c *gin.Context) {
	reel, err := h.ReelService.GetReel(c.Param("id"))
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			h.Response.NotFound(c, "reel")
			return
		}
		h.Response.InternalError(c, "Failed to load reel", err.Error())
		return
	}
	h.Response.Success(c, reel)
}

// DeleteReel removes a reel and everything stored with it.
func (h *Handler) DeleteReel(c *gin.Context) {
	if err := h.ReelService.DeleteReel(c.Param("id")); err != nil {
		if apperrors.IsNotFoundError(err) {
			h.Response.NotFound(c, "reel")
			return
		}
		h.Response.InternalError(c, "Failed to delete reel", err.Error())
		return
	}
	h.Response.Success(c, nil, "Reel deleted")
}

// ========================================
// Image generation
// ========================================

// GenerateReelImages kicks off asynchronous image generation for every
// slide of the reel that needs one. The response carries a task ID the
// client can watch via the progress endpoints.
func (h *Handler) GenerateReelImages(c *gin.Context) {
	reelID := c.Param("id")

	reel, err := h.ReelService.GetReel(reelID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			h.Response.NotFound(c, "reel")
			return
		}
		h.Response.InternalError(c, "Failed to load reel", err.Error())
		return
	}

	ready, state := h.LLMService.GetProviderStatus()
	if !ready {
		h.Response.ServiceUnavailable(c, ErrorLLMServiceUnavailable,
			"Image generation is not available", state)
		return
	}

	taskID := uuid.NewString()
	tracker := h.ProgressService.CreateTracker(taskID)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		result, err := h.ImageService.GenerateReelImages(ctx, reel, tracker)
		if err != nil {
			tracker.Fail(err.Error())
			return
		}

		if result.Succeeded > 0 {
			if err := h.ReelService.SaveReel(reel); err != nil {
				utils.GetLogger().Errorf("failed to save reel %s after image generation: %v",
					reelID, err)
			}
		}
	}()

	h.Response.Accepted(c, gin.H{"task_id": taskID, "reel_id": reelID},
		"Image generation started")
}

// ========================================
// Progress
// ========================================

// SubscribeProgress streams task progress over server-sent events.
func (h *Handler) SubscribeProgress(c *gin.Context) {
	taskID := c.Param("taskID")

	tracker, exists := h.ProgressService.GetTracker(taskID)
	if !exists {
		h.Response.NotFound(c, "task")
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Transfer-Encoding", "chunked")

	clientGone := c.Request.Context().Done()

	updateChan := tracker.Subscribe()
	defer tracker.Unsubscribe(updateChan)

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	fmt.Fprintf(c.Writer, "event: connected\ndata: {\"message\":\"connected\"}\n\n")
	c.Writer.Flush()

	for {
		select {
		case <-clientGone:
			return
		case update, ok := <-updateChan:
			if !ok {
				return
			}
			data, _ := json.Marshal(update)
			fmt.Fprintf(c.Writer, "event: progress\ndata: %s\n\n", string(data))
			c.Writer.Flush()

			if update.Status == "completed" || update.Status == "failed" {
				return
			}
		case <-ticker.C:
			fmt.Fprintf(c.Writer, "event: heartbeat\ndata: {\"time\":%d}\n\n", time.Now().Unix())
			c.Writer.Flush()
		}
	}
}

// CancelTask marks a running task failed on the user's request.
func (h *Handler) CancelTask(c *gin.Context) {
	taskID := c.Param("taskID")

	tracker, exists := h.ProgressService.GetTracker(taskID)
	if !exists {
		h.Response.NotFound(c, "task")
		return
	}

	tracker.Fail("cancelled by user")
	h.Response.Success(c, nil, "Task cancelled")
}

// ========================================
// Voiceover script
// ========================================

// GenerateScript builds the timed voiceover script for a reel and stores it.
func (h *Handler) GenerateScript(c *gin.Context) {
	reelID := c.Param("id")

	var req GenerateScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.Response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	reel, err := h.ReelService.GetReel(reelID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			h.Response.NotFound(c, "reel")
			return
		}
		h.Response.InternalError(c, "Failed to load reel", err.Error())
		return
	}

	script := h.ScriptService.GenerateScript(reel, models.Tone(req.Tone))
	if err := h.ReelService.SaveScript(reelID, script); err != nil {
		h.Response.Error(c, http.StatusInternalServerError, ErrorScriptGenerateFailed,
			"Failed to save script", err.Error())
		return
	}

	h.Response.Success(c, script, "Script generated")
}

// GetScript returns the stored voiceover script for a reel.
func (h *Handler) GetScript(c *gin.Context) {
	script, err := h.ReelService.LoadScript(c.Param("id"))
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			h.Response.NotFound(c, "script")
			return
		}
		h.Response.InternalError(c, "Failed to load script", err.Error())
		return
	}
	h.Response.Success(c, script)
}

// EnhanceScript rewrites the stored script with the LLM, line by line.
// Lines the model cannot improve keep their original text.
func (h *Handler) EnhanceScript(c *gin.Context) {
	reelID := c.Param("id")

	var req EnhanceScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.Response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	script, err := h.ReelService.LoadScript(reelID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			h.Response.NotFound(c, "script")
			return
		}
		h.Response.InternalError(c, "Failed to load script", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Minute)
	defer cancel()

	enhanced, err := h.ScriptService.EnhanceScript(ctx, script, req.CEFRLevel, models.Tone(req.Tone))
	if err != nil {
		if err == services.ErrLLMNotReady {
			_, state := h.LLMService.GetProviderStatus()
			h.Response.ServiceUnavailable(c, ErrorLLMServiceUnavailable,
				"Script enhancement is not available", state)
			return
		}
		h.Response.Error(c, http.StatusInternalServerError, ErrorScriptEnhanceFailed,
			"Failed to enhance script", err.Error())
		return
	}

	if err := h.ReelService.SaveScript(reelID, enhanced); err != nil {
		h.Response.Error(c, http.StatusInternalServerError, ErrorScriptEnhanceFailed,
			"Failed to save enhanced script", err.Error())
		return
	}

	h.Response.Success(c, enhanced, "Script enhanced")
}

// ExportScript downloads the stored script as SRT subtitles or plain text.
func (h *Handler) ExportScript(c *gin.Context) {
	reelID := c.Param("id")
	format := strings.ToLower(c.DefaultQuery("format", "srt"))

	script, err := h.ReelService.LoadScript(reelID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			h.Response.NotFound(c, "script")
			return
		}
		h.Response.InternalError(c, "Failed to load script", err.Error())
		return
	}

	content, err := h.ExportService.ExportScript(script, format)
	if err != nil {
		if apperrors.IsValidationError(err) {
			h.Response.Error(c, http.StatusBadRequest, ErrorExportFormatInvalid,
				"Unsupported export format", err.Error())
			return
		}
		h.Response.Error(c, http.StatusInternalServerError, ErrorExportFailed,
			"Failed to export script", err.Error())
		return
	}

	filename := fmt.Sprintf("reel_%s_script.%s", reelID, exportExtension(format))
	h.Response.DownloadResponse(c, content, filename, "text/plain; charset=utf-8")
}

func exportExtension(format string) string {
	if format == "srt" {
		return "srt"
	}
	return "txt"
}

// ========================================
// Settings and LLM configuration
// ========================================

// GetSettings returns the current provider configuration, key masked.
func (h *Handler) GetSettings(c *gin.Context) {
	h.Response.Success(c, h.ConfigService.GetLLMSettings())
}

// SaveSettings validates and persists new provider settings, then swaps
// the live provider.
func (h *Handler) SaveSettings(c *gin.Context) {
	var req UpdateLLMConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := h.ConfigService.UpdateLLMSettings(req.Provider, req.APIKey, req.DefaultModel); err != nil {
		if apperrors.IsValidationError(err) {
			h.Response.Error(c, http.StatusBadRequest, ErrorLLMConfigInvalid,
				"Invalid provider settings", err.Error())
			return
		}
		h.Response.InternalError(c, "Failed to save settings", err.Error())
		return
	}

	llmConfig := map[string]string{"api_key": req.APIKey}
	if req.DefaultModel != "" {
		llmConfig["default_model"] = req.DefaultModel
	}
	if err := h.LLMService.UpdateProvider(req.Provider, llmConfig); err != nil {
		h.Response.Error(c, http.StatusInternalServerError, ErrorLLMConfigInvalid,
			"Settings saved but provider failed to initialize", err.Error())
		return
	}

	h.Response.Success(c, h.ConfigService.GetLLMSettings(), "Settings updated")
}

// GetLLMStatus reports provider readiness.
func (h *Handler) GetLLMStatus(c *gin.Context) {
	ready, state := h.LLMService.GetProviderStatus()
	h.Response.Success(c, gin.H{
		"ready":    ready,
		"state":    state,
		"provider": h.LLMService.GetProviderName(),
	})
}

// GetLLMModels lists the registered providers and their models.
func (h *Handler) GetLLMModels(c *gin.Context) {
	h.Response.Success(c, h.ConfigService.GetAvailableProviders())
}

// Health is the liveness endpoint.
func (h *Handler) Health(c *gin.Context) {
	ready, _ := h.LLMService.GetProviderStatus()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"llm_ready": ready,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
