// internal/services/script_service.go
package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/reelingo/ReelLingo/internal/llm"
	"github.com/reelingo/ReelLingo/internal/models"
	"github.com/reelingo/ReelLingo/internal/utils"
)

// Spoken-duration model: words divided by 2.5 approximates a 150 wpm
// narration baseline; the per-archetype factor slows delivery where the
// viewer needs time to read or think. This is a heuristic, not measured
// speech, and downstream subtitle timing depends on reproducing it exactly
// (same multipliers, 2 s floor, one-decimal rounding).
const (
	wordsPerSecond     = 2.5
	minLineDurationSec = 2.0
)

var durationMultipliers = map[models.SlideType]float64{
	models.SlideTitle:      1.5,
	models.SlideVocabulary: 1.3,
	models.SlideQuiz:       2.0,
	models.SlideAnswer:     1.5,
	models.SlideHook:       1.2,
	models.SlideOutro:      1.3,
}

// tonePhrases are the only part of the script that varies with tone; the
// substantive content always comes verbatim from the slides.
type tonePhrases struct {
	Greeting string
	Emphasis string
	Closing  string
}

var toneTable = map[models.Tone]tonePhrases{
	models.ToneProfessional: {
		Greeting: "Welcome to today's lesson.",
		Emphasis: "Our next key word is",
		Closing:  "Thank you for learning with us.",
	},
	models.ToneCasual: {
		Greeting: "Hey everyone!",
		Emphasis: "Here's another word for you:",
		Closing:  "See you next time!",
	},
	models.ToneFun: {
		Greeting: "Hey hey, word explorers!",
		Emphasis: "Check out this awesome word:",
		Closing:  "Catch you in the next one!",
	},
}

// ScriptService derives timed voiceover scripts from assembled reels.
// Generation is pure; only EnhanceScript touches the network.
type ScriptService struct {
	LLMService *LLMService
}

// NewScriptService creates a script service. llmService may be nil when
// enhancement is not needed.
func NewScriptService(llmService *LLMService) *ScriptService {
	return &ScriptService{LLMService: llmService}
}

// GenerateScript builds the voiceover script for a reel. It never fails:
// slides without a template or with empty derived text contribute no line,
// and an unknown tone falls back to professional.
func (s *ScriptService) GenerateScript(reel *models.Reel, tone models.Tone) *models.VoiceoverScript {
	if !tone.Valid() {
		tone = models.ToneProfessional
	}

	script := &models.VoiceoverScript{
		LessonTitle: reel.Title,
		Tone:        tone,
		GeneratedAt: time.Now(),
	}

	phrases := toneTable[tone]

	for _, gs := range reel.Slides {
		slide := gs.Slide
		text := speakSlide(slide, phrases)
		if strings.TrimSpace(text) == "" {
			continue
		}

		line := models.ScriptLine{
			SlideID:                  slide.ID,
			SlideIndex:               slide.Sequence,
			SlideType:                slide.Type,
			Text:                     text,
			SuggestedDurationSeconds: estimateDuration(text, slide.Type),
		}
		if slide.Type == models.SlideVocabulary && slide.Pronunciation != "" {
			line.PronunciationHints = []string{slide.Term + ": " + slide.Pronunciation}
		}

		line.StartTimeSeconds = script.TotalDurationSeconds
		script.TotalDurationSeconds = roundTenth(script.TotalDurationSeconds + line.SuggestedDurationSeconds)
		script.Lines = append(script.Lines, line)
	}

	return script
}

// speakSlide renders the spoken text for one slide. Archetypes without a
// template return "" and are skipped by the caller.
func speakSlide(slide models.Slide, phrases tonePhrases) string {
	switch slide.Type {
	case models.SlideTitle:
		text := fmt.Sprintf("%s Today we're learning about %s.", phrases.Greeting, slide.Title)
		if slide.Level != "" {
			text += fmt.Sprintf(" This is a %s level lesson.", slide.Level)
		}
		return text

	case models.SlideHook:
		return slide.Message

	case models.SlideObjectives:
		if len(slide.Objectives) == 0 {
			return ""
		}
		return "In this lesson you will: " + strings.Join(slide.Objectives, ". ") + "."

	case models.SlideVocabulary:
		if slide.Term == "" {
			return ""
		}
		text := fmt.Sprintf("%s %s.", phrases.Emphasis, slide.Term)
		if slide.Definition != "" {
			text += " It means: " + slide.Definition + "."
		}
		if slide.Example != "" {
			text += " For example: " + slide.Example
		}
		return text

	case models.SlideGrammar:
		if slide.Explanation == "" {
			return ""
		}
		return "Let's look at the grammar. " + slide.Explanation

	case models.SlideReading:
		if slide.Content == "" {
			return ""
		}
		return "Let's read together. " + slide.Content

	case models.SlideExample:
		if slide.Sentence == "" {
			return ""
		}
		return "Here's an example. " + slide.Sentence

	case models.SlideActivity:
		if slide.Instructions == "" {
			return ""
		}
		return "Time to practice! " + slide.Instructions

	case models.SlideQuiz:
		if slide.Question == "" {
			return ""
		}
		text := fmt.Sprintf("Question %d. %s", slide.QuestionNumber, slide.Question)
		if len(slide.Options) > 0 {
			text += " Your options are: " + strings.Join(slide.Options, ", ") + "."
		}
		return text

	case models.SlideAnswer:
		if slide.Answer == "" {
			return ""
		}
		text := "The answer is: " + slide.Answer + "."
		if slide.Encouragement != "" {
			text += " " + slide.Encouragement
		}
		return text

	case models.SlideSummary:
		if len(slide.Terms) == 0 {
			return ""
		}
		return "Let's review today's key vocabulary: " + strings.Join(slide.Terms, ", ") + "."

	case models.SlideOutro:
		text := slide.Message
		if text != "" {
			text += " "
		}
		if slide.CallToAction != "" {
			text += slide.CallToAction + " "
		}
		return strings.TrimSpace(text + phrases.Closing)

	default:
		return ""
	}
}

// estimateDuration applies the spoken-duration model to text.
func estimateDuration(text string, slideType models.SlideType) float64 {
	words := len(strings.Fields(text))

	multiplier, ok := durationMultipliers[slideType]
	if !ok {
		multiplier = 1.0
	}

	seconds := roundTenth(float64(words) / wordsPerSecond * multiplier)
	if seconds < minLineDurationSec {
		return minLineDurationSec
	}
	return seconds
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// EnhanceScript rewrites each line through the configured LLM, constrained
// to at most two sentences, then re-times the whole script. A failed
// rewrite keeps the original line and its duration; the full re-timing
// still runs over whatever text each line ended up with, so partial
// failure never aborts the script.
func (s *ScriptService) EnhanceScript(ctx context.Context, script *models.VoiceoverScript, cefrLevel string, tone models.Tone) (*models.VoiceoverScript, error) {
	if s.LLMService == nil || !s.LLMService.IsReady() {
		return nil, ErrLLMNotReady
	}
	if !tone.Valid() {
		tone = models.ToneProfessional
	}

	logger := utils.GetLogger()

	enhanced := *script
	enhanced.Lines = make([]models.ScriptLine, len(script.Lines))
	copy(enhanced.Lines, script.Lines)
	enhanced.Tone = tone
	enhanced.Enhanced = true
	enhanced.GeneratedAt = time.Now()

	systemPrompt := fmt.Sprintf(
		"You are a voiceover writer for short English lessons. Rewrite the given line for a %s tone, "+
			"suitable for CEFR level %s learners. Keep every fact from the original. "+
			"Respond with the rewritten line only, at most two sentences.",
		tone, cefrLevel)

	for i := range enhanced.Lines {
		line := &enhanced.Lines[i]

		resp, err := s.LLMService.CompleteText(ctx, llm.CompletionRequest{
			SystemPrompt: systemPrompt,
			Prompt:       line.Text,
			MaxTokens:    160,
			Temperature:  0.7,
		})
		if err != nil || resp == nil || strings.TrimSpace(resp.Text) == "" {
			logger.Warnf("script enhancement kept original line %d: %v", i+1, err)
			continue
		}

		line.Text = strings.TrimSpace(resp.Text)
		line.SuggestedDurationSeconds = estimateDuration(line.Text, line.SlideType)
	}

	// Recompute all start times from scratch over the final texts.
	var total float64
	for i := range enhanced.Lines {
		enhanced.Lines[i].StartTimeSeconds = total
		total = roundTenth(total + enhanced.Lines[i].SuggestedDurationSeconds)
	}
	enhanced.TotalDurationSeconds = total

	return &enhanced, nil
}
