// internal/services/classifier.go
package services

import (
	"strings"

	"github.com/reelingo/ReelLingo/internal/models"
)

// SectionCategory is the classification tag assigned to a lesson section.
type SectionCategory string

const (
	CategoryObjectives SectionCategory = "objectives"
	CategoryVocabulary SectionCategory = "vocabulary"
	CategoryGrammar    SectionCategory = "grammar"
	CategoryReading    SectionCategory = "reading"
	CategoryExample    SectionCategory = "example"
	CategoryActivity   SectionCategory = "activity"
	CategoryQuiz       SectionCategory = "quiz"
	CategorySummary    SectionCategory = "summary"
	CategoryIntro      SectionCategory = "intro"
	CategoryContent    SectionCategory = "content"
	CategoryOther      SectionCategory = "other"
)

// classifierRule pairs a category with the substrings that select it.
type classifierRule struct {
	Category SectionCategory
	Keywords []string
}

// classifierRules is evaluated top to bottom, first match wins. The order
// is load-bearing: "Reading Assessment" must classify as reading, not quiz,
// so reading is tested before quiz. Author-chosen section labels are noisy
// free text; an ordered substring list keeps classification deterministic
// and auditable.
var classifierRules = []classifierRule{
	{CategoryObjectives, []string{"objective", "learning goal"}},
	{CategoryVocabulary, []string{"vocabulary", "key words"}},
	{CategoryGrammar, []string{"grammar", "language focus", "structure"}},
	{CategoryReading, []string{"reading", "passage", "text"}},
	{CategoryExample, []string{"example", "dialogue", "conversation", "sample"}},
	{CategoryActivity, []string{"activity", "practice", "exercise", "task"}},
	{CategoryQuiz, []string{"quiz", "assessment", "check", "test"}},
	{CategorySummary, []string{"summary", "review", "wrap"}},
	{CategoryIntro, []string{"introduction", "warm"}},
}

// ClassifySection maps a section's free-form type and title to a category.
// Sections matching no rule fall back to "content" when they carry body
// text or paragraphs, and to "other" when they carry nothing usable.
func ClassifySection(section models.Section) SectionCategory {
	haystack := strings.ToLower(section.Type + " " + section.Title)

	for _, rule := range classifierRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(haystack, keyword) {
				return rule.Category
			}
		}
	}

	if strings.TrimSpace(section.Content) != "" || len(section.Paragraphs) > 0 {
		return CategoryContent
	}

	return CategoryOther
}
