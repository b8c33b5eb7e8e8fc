// internal/services/export_service.go
package services

import (
	"fmt"
	"math"
	"strings"

	apperrors "github.com/reelingo/ReelLingo/internal/errors"
	"github.com/reelingo/ReelLingo/internal/models"
)

// Subtitle cue limits follow common short-video subtitle conventions:
// cues wrap greedily at 42 characters and never exceed two visual lines.
// Text past the second line is dropped rather than carried to a new cue.
const (
	srtLineWidth    = 42
	srtMaxCueLines  = 2
	scriptSeparator = "----------------------------------------"
)

// ExportService renders voiceover scripts into interchange formats.
// All renderings are pure string formatting.
type ExportService struct{}

// NewExportService creates an export service.
func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportScript renders a script in the requested format ("srt" or "txt").
func (s *ExportService) ExportScript(script *models.VoiceoverScript, format string) (string, error) {
	switch strings.ToLower(format) {
	case "srt":
		return s.RenderSRT(script), nil
	case "txt", "text":
		return s.RenderScriptText(script), nil
	default:
		return "", apperrors.NewValidationError(fmt.Sprintf("unsupported export format: %s", format), nil)
	}
}

// RenderSRT renders a script as numbered SRT subtitle cues. Each cue spans
// exactly its line's duration.
func (s *ExportService) RenderSRT(script *models.VoiceoverScript) string {
	var sb strings.Builder

	cue := 0
	for _, line := range script.Lines {
		lines := wrapCueText(line.Text)
		if len(lines) == 0 {
			continue
		}

		cue++
		start := line.StartTimeSeconds
		end := start + line.SuggestedDurationSeconds

		sb.WriteString(fmt.Sprintf("%d\n", cue))
		sb.WriteString(formatSRTTimestamp(start) + " --> " + formatSRTTimestamp(end) + "\n")
		sb.WriteString(strings.Join(lines, "\n"))
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// RenderScriptText renders a script as a human-readable document.
func (s *ExportService) RenderScriptText(script *models.VoiceoverScript) string {
	var sb strings.Builder

	sb.WriteString("VOICEOVER SCRIPT: " + script.LessonTitle + "\n")
	sb.WriteString(fmt.Sprintf("Tone: %s | Total duration: %.1fs\n", script.Tone, script.TotalDurationSeconds))
	sb.WriteString(scriptSeparator + "\n\n")

	for _, line := range script.Lines {
		sb.WriteString(fmt.Sprintf("[SLIDE %d] %s\n", line.SlideIndex, strings.ToUpper(string(line.SlideType))))
		sb.WriteString(fmt.Sprintf("Duration: %.1fs\n\n", line.SuggestedDurationSeconds))
		sb.WriteString(line.Text + "\n")
		if len(line.PronunciationHints) > 0 {
			sb.WriteString("(Pronunciation: " + strings.Join(line.PronunciationHints, "; ") + ")\n")
		}
		sb.WriteString(scriptSeparator + "\n\n")
	}

	return sb.String()
}

// formatSRTTimestamp formats seconds as HH:MM:SS,mmm.
func formatSRTTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMillis := int(math.Round(seconds * 1000))

	hours := totalMillis / 3600000
	totalMillis -= hours * 3600000
	minutes := totalMillis / 60000
	totalMillis -= minutes * 60000
	secs := totalMillis / 1000
	millis := totalMillis - secs*1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// wrapCueText wraps text greedily at the cue width, keeping at most the
// first two visual lines. Words longer than the width are cut to fit.
func wrapCueText(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var current string

	for _, word := range words {
		if len(word) > srtLineWidth {
			word = word[:srtLineWidth]
		}

		if current == "" {
			current = word
			continue
		}

		if len(current)+1+len(word) <= srtLineWidth {
			current += " " + word
			continue
		}

		lines = append(lines, current)
		if len(lines) == srtMaxCueLines {
			return lines
		}
		current = word
	}

	if current != "" && len(lines) < srtMaxCueLines {
		lines = append(lines, current)
	}

	return lines
}
