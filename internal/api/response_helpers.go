// internal/api/response_helpers.go
package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ResponseHelper centralizes the response envelope for all handlers.
type ResponseHelper struct{}

func NewResponseHelper() *ResponseHelper {
	return &ResponseHelper{}
}

// Success sends a 200 with the standard envelope.
func (rh *ResponseHelper) Success(c *gin.Context, data interface{}, message ...string) {
	response := &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: rh.getRequestID(c),
	}

	if len(message) > 0 {
		response.Message = message[0]
	}

	c.JSON(http.StatusOK, response)
}

// Created sends a 201 with the standard envelope.
func (rh *ResponseHelper) Created(c *gin.Context, data interface{}, message ...string) {
	response := &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: rh.getRequestID(c),
	}

	if len(message) > 0 {
		response.Message = message[0]
	} else {
		response.Message = "Resource created"
	}

	c.JSON(http.StatusCreated, response)
}

// Accepted sends a 202 for asynchronous work, carrying the task handle.
func (rh *ResponseHelper) Accepted(c *gin.Context, data interface{}, message ...string) {
	response := &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: rh.getRequestID(c),
	}

	if len(message) > 0 {
		response.Message = message[0]
	}

	c.JSON(http.StatusAccepted, response)
}

// sanitizeErrorMessage hides messages that may leak credentials or paths.
func sanitizeErrorMessage(message string) string {
	lowered := strings.ToLower(message)
	for _, pattern := range []string{"api_key", "apikey", "secret", "token", "password"} {
		if strings.Contains(lowered, pattern) {
			return "An internal error occurred"
		}
	}
	return message
}

// Error sends an error response with the given status and error code.
func (rh *ResponseHelper) Error(c *gin.Context, statusCode int, errorCode, message string, details ...string) {
	apiError := &APIError{
		Code:    errorCode,
		Message: sanitizeErrorMessage(message),
	}

	if len(details) > 0 {
		apiError.Details = sanitizeErrorMessage(details[0])
	}

	response := &APIResponse{
		Success:   false,
		Error:     apiError,
		Timestamp: time.Now(),
		RequestID: rh.getRequestID(c),
	}

	c.JSON(statusCode, response)
}

// BadRequest sends a 400.
func (rh *ResponseHelper) BadRequest(c *gin.Context, message string, details ...string) {
	rh.Error(c, http.StatusBadRequest, ErrorBadRequest, message, details...)
}

// NotFound sends a 404 with a resource-specific code where one exists.
func (rh *ResponseHelper) NotFound(c *gin.Context, resource string, details ...string) {
	message := resource + " not found"
	rh.Error(c, http.StatusNotFound, rh.getResourceNotFoundCode(resource), message, details...)
}

// InternalError sends a 500.
func (rh *ResponseHelper) InternalError(c *gin.Context, message string, details ...string) {
	rh.Error(c, http.StatusInternalServerError, ErrorInternalError, message, details...)
}

// ServiceUnavailable sends a 503.
func (rh *ResponseHelper) ServiceUnavailable(c *gin.Context, errorCode, message string, details ...string) {
	rh.Error(c, http.StatusServiceUnavailable, errorCode, message, details...)
}

func (rh *ResponseHelper) getRequestID(c *gin.Context) string {
	if requestID := c.GetString("request_id"); requestID != "" {
		return requestID
	}
	return ""
}

func (rh *ResponseHelper) getResourceNotFoundCode(resource string) string {
	switch strings.ToLower(resource) {
	case "reel":
		return ErrorReelNotFound
	case "script":
		return ErrorScriptNotFound
	case "task":
		return ErrorTaskNotFound
	default:
		return ErrorNotFound
	}
}

// DownloadResponse forces a file download of generated text content.
func (rh *ResponseHelper) DownloadResponse(c *gin.Context, content string, filename string, contentType string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Length", fmt.Sprintf("%d", len(content)))
	c.String(http.StatusOK, content)
}
