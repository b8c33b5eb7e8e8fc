// internal/models/slide.go
package models

import "time"

// SlideType discriminates the slide archetypes of a reel.
type SlideType string

const (
	SlideTitle      SlideType = "title"
	SlideHook       SlideType = "hook"
	SlideObjectives SlideType = "objectives"
	SlideVocabulary SlideType = "vocabulary"
	SlideGrammar    SlideType = "grammar"
	SlideExample    SlideType = "example"
	SlideReading    SlideType = "reading"
	SlideActivity   SlideType = "activity"
	SlideQuiz       SlideType = "quiz"
	SlideAnswer     SlideType = "answer"
	SlideSummary    SlideType = "summary"
	SlideOutro      SlideType = "outro"
)

// slideNeedsImage fixes the requires-image flag per archetype.
var slideNeedsImage = map[SlideType]bool{
	SlideTitle:      true,
	SlideHook:       true,
	SlideVocabulary: true,
	SlideGrammar:    true,
	SlideReading:    true,
	SlideExample:    true,
	SlideOutro:      true,
}

// RequiresImage reports whether slides of this archetype are illustrated.
func (t SlideType) RequiresImage() bool {
	return slideNeedsImage[t]
}

// Slide is one entry of the reel blueprint. Only the fields of its archetype
// are populated; the rest stay empty and are omitted from JSON. Slides are
// immutable once assembled except for the image prompt attached out-of-band
// by the image generation collaborator.
type Slide struct {
	ID            string    `json:"id"`
	Type          SlideType `json:"type"`
	Sequence      int       `json:"sequence"`
	RequiresImage bool      `json:"requires_image"`

	// title
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Topic    string `json:"topic,omitempty"`
	Level    string `json:"level,omitempty"`

	// hook / outro
	Message      string `json:"message,omitempty"`
	CallToAction string `json:"call_to_action,omitempty"`

	// objectives
	Objectives []string `json:"objectives,omitempty"`

	// vocabulary
	Term          string `json:"term,omitempty"`
	PartOfSpeech  string `json:"part_of_speech,omitempty"`
	Definition    string `json:"definition,omitempty"`
	Example       string `json:"example,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty"`

	// grammar
	Explanation string   `json:"explanation,omitempty"`
	Examples    []string `json:"examples,omitempty"`

	// reading
	Content string `json:"content,omitempty"`

	// example
	Context   string `json:"context,omitempty"`
	Sentence  string `json:"sentence,omitempty"`
	Highlight string `json:"highlight,omitempty"`

	// activity
	Instructions string `json:"instructions,omitempty"`

	// quiz / answer
	QuestionNumber int      `json:"question_number,omitempty"`
	TotalQuestions int      `json:"total_questions,omitempty"`
	Question       string   `json:"question,omitempty"`
	Options        []string `json:"options,omitempty"`
	Answer         string   `json:"answer,omitempty"`
	Encouragement  string   `json:"encouragement,omitempty"`

	// summary
	Terms []string `json:"terms,omitempty"`

	// attached by the image generation collaborator
	ImagePrompt string `json:"image_prompt,omitempty"`
}

// GeneratedSlide pairs a slide with the image produced for it, if any.
// ImageData is a data-URI string; ImagePrompt records the prompt used.
type GeneratedSlide struct {
	Slide       Slide  `json:"slide"`
	ImageData   string `json:"image_data,omitempty"`
	ImagePrompt string `json:"image_prompt,omitempty"`
}

// Reel is the complete ordered slide sequence for one lesson, plus
// denormalized lesson metadata. A re-upload of the same lesson replaces
// the reel wholesale.
type Reel struct {
	ID         string           `json:"id"`
	LessonID   int              `json:"lesson_id"`
	Title      string           `json:"title"`
	Level      string           `json:"level"`
	Topic      string           `json:"topic"`
	SlideCount int              `json:"slide_count"`
	Slides     []GeneratedSlide `json:"slides"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}
