// internal/models/script.go
package models

import "time"

// Tone selects the phrasing register of a voiceover script. It only swaps
// greeting/emphasis/closing phrases; the substantive content always comes
// verbatim from the slides.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneFun          Tone = "fun"
)

// Valid reports whether t is one of the supported tones.
func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneCasual, ToneFun:
		return true
	}
	return false
}

// ScriptLine is one spoken unit of a voiceover script.
// StartTimeSeconds is the running sum of all preceding durations; it is
// derived during assembly, never set independently.
type ScriptLine struct {
	SlideID                  string    `json:"slide_id"`
	SlideIndex               int       `json:"slide_index"`
	SlideType                SlideType `json:"slide_type"`
	Text                     string    `json:"text"`
	PronunciationHints       []string  `json:"pronunciation_hints,omitempty"`
	SuggestedDurationSeconds float64   `json:"suggested_duration_seconds"`
	StartTimeSeconds         float64   `json:"start_time_seconds"`
}

// VoiceoverScript is the timed narration for one reel.
type VoiceoverScript struct {
	LessonTitle          string       `json:"lesson_title"`
	Tone                 Tone         `json:"tone"`
	TotalDurationSeconds float64      `json:"total_duration_seconds"`
	Lines                []ScriptLine `json:"lines"`
	Enhanced             bool         `json:"enhanced,omitempty"`
	GeneratedAt          time.Time    `json:"generated_at"`
}
