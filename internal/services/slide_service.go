// internal/services/slide_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/reelingo/ReelLingo/internal/errors"
	"github.com/reelingo/ReelLingo/internal/models"
)

const (
	maxObjectives       = 4
	minObjectiveLength  = 10
	maxGrammarChars     = 300
	maxExampleChars     = 300
	maxReadingChars     = 400
	maxQuizQuestions    = 5
	maxSummaryTerms     = 6
	minFallbackChars    = 20
	activityPlaceholder = "Work through this activity together!"
	answerPlaceholder   = "See the correct answer!"
	answerEncouragement = "You're doing great - keep going!"
)

// AssembleOptions toggles the assembler phases that vary between reel
// styles. The zero value disables all of them; use DefaultAssembleOptions
// for the standard reel shape.
type AssembleOptions struct {
	IncludeHook         bool
	IncludeActivities   bool
	IncludeAnswerSlides bool
}

// DefaultAssembleOptions enables the hook slide, activity slides and
// quiz answer-reveal slides.
func DefaultAssembleOptions() AssembleOptions {
	return AssembleOptions{
		IncludeHook:         true,
		IncludeActivities:   true,
		IncludeAnswerSlides: true,
	}
}

// SlideService turns a lesson document into the ordered slide sequence of
// a reel. It is pure: no I/O, no shared state, safe for concurrent use.
type SlideService struct {
	Options AssembleOptions
}

// NewSlideService creates a slide service with the default options.
func NewSlideService() *SlideService {
	return &SlideService{Options: DefaultAssembleOptions()}
}

// slideBuilder tracks the sequence counter while slides are pushed.
type slideBuilder struct {
	slides []models.Slide
	seq    int
}

func (b *slideBuilder) push(slide models.Slide) {
	b.seq++
	slide.Sequence = b.seq
	if slide.ID == "" {
		slide.ID = uuid.NewString()
	}
	slide.RequiresImage = slide.Type.RequiresImage()
	b.slides = append(b.slides, slide)
}

// AssembleSlides produces the full slide sequence for a lesson.
//
// The only fatal input condition is a lesson without a title or without a
// sections list; every other missing or malformed field silently produces
// fewer slides. Source lessons are free-form author content of uncertain
// completeness, so graceful degradation here is a hard invariant, not an
// optimization.
func (s *SlideService) AssembleSlides(lesson *models.Lesson) ([]models.Slide, error) {
	if lesson == nil || strings.TrimSpace(lesson.Title) == "" {
		return nil, apperrors.NewInvalidLessonError("missing title")
	}
	if lesson.Content == nil || lesson.Content.Sections == nil {
		return nil, apperrors.NewInvalidLessonError("missing sections")
	}

	topic := lesson.Topic
	if topic == "" {
		topic = lesson.Title
	}

	b := &slideBuilder{}

	// Phase 1: title slide, always first.
	b.push(models.Slide{
		Type:     models.SlideTitle,
		Title:    lesson.Title,
		Subtitle: lesson.Content.Focus,
		Topic:    lesson.Topic,
		Level:    lesson.Level,
	})

	// Phase 2: optional hook.
	if s.Options.IncludeHook {
		b.push(models.Slide{
			Type:    models.SlideHook,
			Topic:   topic,
			Message: fmt.Sprintf("Ready to master %s? Let's go!", topic),
		})
	}

	sections := lesson.Content.Sections
	processed := make([]bool, len(sections))

	// Phase 3: the first objectives section is consumed here whether or
	// not it yields a slide.
	for i, section := range sections {
		if ClassifySection(section) != CategoryObjectives {
			continue
		}
		processed[i] = true
		if objectives := extractObjectives(section.Content); len(objectives) > 0 {
			b.push(models.Slide{
				Type:       models.SlideObjectives,
				Title:      "What You'll Learn",
				Objectives: objectives,
			})
		}
		break
	}

	// Phase 4: remaining sections in original order.
	for i, section := range sections {
		if processed[i] {
			continue
		}
		s.appendSectionSlides(b, section)
	}

	// Phase 5: vocabulary recap.
	var terms []string
	for _, slide := range b.slides {
		if slide.Type == models.SlideVocabulary {
			terms = append(terms, slide.Term)
		}
	}
	if len(terms) > 0 {
		if len(terms) > maxSummaryTerms {
			terms = terms[:maxSummaryTerms]
		}
		b.push(models.Slide{
			Type:  models.SlideSummary,
			Title: "Key Vocabulary",
			Terms: terms,
		})
	}

	// Phase 6: outro, always last.
	b.push(models.Slide{
		Type:         models.SlideOutro,
		Message:      fmt.Sprintf("Great job learning about %s!", topic),
		CallToAction: "Follow for more lessons!",
	})

	return b.slides, nil
}

func (s *SlideService) appendSectionSlides(b *slideBuilder, section models.Section) {
	switch ClassifySection(section) {
	case CategoryVocabulary:
		for _, word := range section.Words {
			b.push(models.Slide{
				Type:          models.SlideVocabulary,
				Term:          word.Term,
				PartOfSpeech:  word.PartOfSpeech,
				Definition:    word.Definition,
				Example:       word.Example,
				Pronunciation: word.Pronunciation,
				ImagePrompt:   word.ImagePrompt,
			})
		}

	case CategoryGrammar:
		if strings.TrimSpace(section.Content) == "" {
			return
		}
		examples := section.Paragraphs
		if len(examples) > 2 {
			examples = examples[:2]
		}
		b.push(models.Slide{
			Type:        models.SlideGrammar,
			Title:       section.Title,
			Explanation: truncate(section.Content, maxGrammarChars),
			Examples:    examples,
		})

	case CategoryReading, CategoryContent:
		text := sectionText(section)
		if text == "" {
			return
		}
		b.push(models.Slide{
			Type:    models.SlideReading,
			Title:   section.Title,
			Content: truncate(text, maxReadingChars),
		})

	case CategoryExample:
		text := sectionText(section)
		if text == "" {
			return
		}
		slide := models.Slide{
			Type:     models.SlideExample,
			Context:  section.Title,
			Sentence: truncate(text, maxExampleChars),
		}
		if len(section.TargetVocabulary) > 0 {
			slide.Highlight = section.TargetVocabulary[0]
		}
		b.push(slide)

	case CategoryActivity:
		if !s.Options.IncludeActivities {
			return
		}
		instructions := section.Procedure
		if instructions == "" {
			instructions = section.Content
		}
		if instructions == "" {
			instructions = activityPlaceholder
		}
		b.push(models.Slide{
			Type:         models.SlideActivity,
			Title:        section.Title,
			Instructions: instructions,
		})

	case CategoryQuiz:
		s.appendQuizSlides(b, section)

	case CategoryIntro:
		// Covered by the title slide.
		return

	default:
		// Unmatched sections still earn a reading-shaped slide when they
		// carry enough text to show.
		text := truncate(sectionText(section), maxReadingChars)
		if len([]rune(text)) <= minFallbackChars {
			return
		}
		b.push(models.Slide{
			Type:    models.SlideReading,
			Title:   section.Title,
			Content: text,
		})
	}
}

func (s *SlideService) appendQuizSlides(b *slideBuilder, section models.Section) {
	questions := section.Questions
	if len(questions) == 0 {
		return
	}

	total := len(questions)
	if total > maxQuizQuestions {
		total = maxQuizQuestions
	}

	for i := 0; i < total; i++ {
		q := questions[i]
		b.push(models.Slide{
			Type:           models.SlideQuiz,
			QuestionNumber: i + 1,
			TotalQuestions: total,
			Question:       q.DisplayText(),
			Options:        q.Options,
		})

		if s.Options.IncludeAnswerSlides {
			answer := q.Answer
			if answer == "" {
				answer = answerPlaceholder
			}
			b.push(models.Slide{
				Type:           models.SlideAnswer,
				QuestionNumber: i + 1,
				TotalQuestions: total,
				Answer:         answer,
				Encouragement:  answerEncouragement,
			})
		}
	}
}

// extractObjectives splits objectives body text on newlines, bullets and
// hyphens, keeping at most maxObjectives trimmed lines longer than
// minObjectiveLength characters.
func extractObjectives(body string) []string {
	if strings.TrimSpace(body) == "" {
		return nil
	}

	parts := strings.FieldsFunc(body, func(r rune) bool {
		return r == '\n' || r == '•' || r == '-'
	})

	var objectives []string
	for _, part := range parts {
		line := strings.TrimSpace(part)
		if len([]rune(line)) > minObjectiveLength {
			objectives = append(objectives, line)
			if len(objectives) == maxObjectives {
				break
			}
		}
	}

	return objectives
}

// sectionText joins a section's paragraphs with spaces, falling back to
// the body text when no paragraphs exist.
func sectionText(section models.Section) string {
	var nonEmpty []string
	for _, p := range section.Paragraphs {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			nonEmpty = append(nonEmpty, trimmed)
		}
	}
	if len(nonEmpty) > 0 {
		return strings.Join(nonEmpty, " ")
	}
	return strings.TrimSpace(section.Content)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
