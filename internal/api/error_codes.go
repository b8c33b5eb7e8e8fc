// internal/api/error_codes.go
package api

// API error code constants.
const (
	// Generic
	ErrorBadRequest    = "BAD_REQUEST"
	ErrorNotFound      = "NOT_FOUND"
	ErrorInternalError = "INTERNAL_ERROR"

	// Lesson upload
	ErrorLessonInvalid     = "LESSON_INVALID"
	ErrorLessonParseFailed = "LESSON_PARSE_FAILED"

	// Reels
	ErrorReelNotFound     = "REEL_NOT_FOUND"
	ErrorReelCreateFailed = "REEL_CREATE_FAILED"

	// Scripts
	ErrorScriptNotFound       = "SCRIPT_NOT_FOUND"
	ErrorScriptGenerateFailed = "SCRIPT_GENERATE_FAILED"
	ErrorScriptEnhanceFailed  = "SCRIPT_ENHANCE_FAILED"
	ErrorExportFormatInvalid  = "EXPORT_FORMAT_INVALID"
	ErrorExportFailed         = "EXPORT_FAILED"

	// Image generation
	ErrorImageGenerateFailed = "IMAGE_GENERATE_FAILED"
	ErrorImageProviderUnset  = "IMAGE_PROVIDER_UNSET"

	// Tasks and progress
	ErrorTaskNotFound = "TASK_NOT_FOUND"

	// LLM configuration
	ErrorLLMServiceUnavailable = "LLM_SERVICE_UNAVAILABLE"
	ErrorLLMConfigInvalid      = "LLM_CONFIG_INVALID"
)
