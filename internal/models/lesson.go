// internal/models/lesson.go
package models

import "encoding/json"

// Lesson is the root input document uploaded by the user. It is never
// mutated by the pipeline.
type Lesson struct {
	ID      int            `json:"id"`
	Title   string         `json:"title"`
	Topic   string         `json:"topic"`
	Level   string         `json:"level"` // CEFR code, e.g. "B1"
	Content *LessonContent `json:"content"`
}

// LessonContent holds the ordered sections of a lesson.
type LessonContent struct {
	Title         string    `json:"title,omitempty"`
	Level         string    `json:"level,omitempty"`
	Focus         string    `json:"focus,omitempty"`
	EstimatedTime int       `json:"estimated_time,omitempty"`
	Sections      []Section `json:"sections"`
}

// Section is a titled lesson block. The type tag is free-form author text
// ("Warm-up", "Key Vocabulary", ...), not an enum; type and title are the
// only reliable classification signals. Every other field is optional and
// a section with none of them populated simply contributes no slides.
type Section struct {
	Title            string           `json:"title,omitempty"`
	Type             string           `json:"type,omitempty"`
	Content          string           `json:"content,omitempty"`
	Paragraphs       []string         `json:"paragraphs,omitempty"`
	Words            []VocabularyWord `json:"words,omitempty"`
	Questions        []Question       `json:"questions,omitempty"`
	Procedure        string           `json:"procedure,omitempty"`
	TeacherNotes     string           `json:"teacher_notes,omitempty"`
	TargetVocabulary []string         `json:"target_vocabulary,omitempty"`
}

// VocabularyWord carries a vocabulary entry plus optional enrichment fields.
// The slide pipeline only consumes term, part of speech, definition, example,
// pronunciation and image prompt; the rest pass through untouched.
type VocabularyWord struct {
	Term          string                 `json:"term"`
	PartOfSpeech  string                 `json:"part_of_speech,omitempty"`
	Definition    string                 `json:"definition,omitempty"`
	Example       string                 `json:"example,omitempty"`
	Pronunciation string                 `json:"pronunciation,omitempty"`
	Collocations  []string               `json:"collocations,omitempty"`
	SemanticMap   map[string]interface{} `json:"semantic_map,omitempty"`
	WordFamily    []string               `json:"word_family,omitempty"`
	ImagePrompt   string                 `json:"image_prompt,omitempty"`
	TeachingTips  string                 `json:"teaching_tips,omitempty"`
}

// Question is authored either as a bare string or as a structured object
// with question text, options and an answer. Unmarshalling never fails hard:
// whatever could not be decoded stays available through Raw.
type Question struct {
	Text    string   `json:"question,omitempty"`
	Options []string `json:"options,omitempty"`
	Answer  string   `json:"answer,omitempty"`
	Raw     string   `json:"-"`
}

func (q *Question) UnmarshalJSON(data []byte) error {
	q.Raw = string(data)

	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		q.Text = plain
		return nil
	}

	var obj struct {
		Question string          `json:"question"`
		Options  []string        `json:"options"`
		Answer   json.RawMessage `json:"answer"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// Malformed entry, keep only the raw representation.
		return nil
	}

	q.Text = obj.Question
	q.Options = obj.Options
	if len(obj.Answer) > 0 {
		var answer string
		if err := json.Unmarshal(obj.Answer, &answer); err == nil {
			q.Answer = answer
		} else {
			q.Answer = string(obj.Answer)
		}
	}
	return nil
}

func (q Question) MarshalJSON() ([]byte, error) {
	if q.Text == "" && len(q.Options) == 0 && q.Answer == "" && q.Raw != "" {
		return []byte(q.Raw), nil
	}
	type alias Question
	return json.Marshal(alias(q))
}

// DisplayText returns the question text, falling back to the raw JSON
// representation when a structured entry carried no question field.
func (q Question) DisplayText() string {
	if q.Text != "" {
		return q.Text
	}
	return q.Raw
}
