// internal/services/slide_service_test.go
package services

import (
	"strings"
	"testing"

	apperrors "github.com/reelingo/ReelLingo/internal/errors"
	"github.com/reelingo/ReelLingo/internal/models"
)

func TestClassifySection(t *testing.T) {
	tests := []struct {
		name     string
		section  models.Section
		expected SectionCategory
	}{
		{"objectives by type", models.Section{Type: "objectives"}, CategoryObjectives},
		{"learning goals in title", models.Section{Title: "Learning Goals"}, CategoryObjectives},
		{"vocabulary by title", models.Section{Title: "Key Vocabulary"}, CategoryVocabulary},
		{"key words", models.Section{Title: "Key Words to Know"}, CategoryVocabulary},
		{"grammar", models.Section{Title: "Grammar Point"}, CategoryGrammar},
		{"language focus", models.Section{Title: "Language Focus"}, CategoryGrammar},
		{"reading passage", models.Section{Title: "Reading Passage"}, CategoryReading},
		{"example dialogue", models.Section{Title: "Example Dialogue"}, CategoryExample},
		{"practice activity", models.Section{Title: "Practice Activity"}, CategoryActivity},
		{"quiz", models.Section{Title: "Quiz Time"}, CategoryQuiz},
		{"comprehension check", models.Section{Title: "Comprehension Check"}, CategoryQuiz},
		{"summary", models.Section{Title: "Lesson Summary"}, CategorySummary},
		{"wrap up", models.Section{Title: "Wrap-Up"}, CategorySummary},
		{"warm up intro", models.Section{Title: "Warm-Up"}, CategoryIntro},
		{"case insensitive", models.Section{Type: "VOCABULARY"}, CategoryVocabulary},
		{"content fallback with body", models.Section{Title: "Notes", Content: "Some body text"}, CategoryContent},
		{"content fallback with paragraphs", models.Section{Title: "Notes", Paragraphs: []string{"p1"}}, CategoryContent},
		{"other fallback", models.Section{Title: "Notes"}, CategoryOther},

		// Order matters: earlier rules must win over later keyword overlap.
		{"reading assessment is reading", models.Section{Title: "Reading Assessment"}, CategoryReading},
		{"vocabulary practice is vocabulary", models.Section{Title: "Vocabulary Practice"}, CategoryVocabulary},
		{"grammar exercise is grammar", models.Section{Title: "Grammar Exercise"}, CategoryGrammar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifySection(tt.section); got != tt.expected {
				t.Errorf("ClassifySection(%q/%q) = %q, want %q",
					tt.section.Type, tt.section.Title, got, tt.expected)
			}
		})
	}
}

func makeLesson(sections ...models.Section) *models.Lesson {
	return &models.Lesson{
		ID:    1,
		Title: "Food and Cooking",
		Topic: "food",
		Level: "B1",
		Content: &models.LessonContent{
			Focus:    "Everyday cooking vocabulary",
			Sections: append([]models.Section{}, sections...),
		},
	}
}

func slideTypes(slides []models.Slide) []models.SlideType {
	types := make([]models.SlideType, len(slides))
	for i, s := range slides {
		types[i] = s.Type
	}
	return types
}

func TestAssembleSlidesInvalidLesson(t *testing.T) {
	svc := NewSlideService()

	tests := []struct {
		name   string
		lesson *models.Lesson
	}{
		{"nil lesson", nil},
		{"empty title", &models.Lesson{Content: &models.LessonContent{Sections: []models.Section{}}}},
		{"whitespace title", &models.Lesson{Title: "   ", Content: &models.LessonContent{Sections: []models.Section{}}}},
		{"nil content", &models.Lesson{Title: "Food"}},
		{"nil sections", &models.Lesson{Title: "Food", Content: &models.LessonContent{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AssembleSlides(tt.lesson)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !apperrors.IsInvalidLesson(err) {
				t.Errorf("expected invalid lesson error, got %T: %v", err, err)
			}
		})
	}
}

func TestAssembleSlidesEmptyLesson(t *testing.T) {
	svc := NewSlideService()

	slides, err := svc.AssembleSlides(makeLesson())
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	got := slideTypes(slides)
	want := []models.SlideType{models.SlideTitle, models.SlideHook, models.SlideOutro}
	if len(got) != len(want) {
		t.Fatalf("got %v slides %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slide %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAssembleSlidesHookCarriesTopic(t *testing.T) {
	svc := NewSlideService()

	slides, err := svc.AssembleSlides(makeLesson())
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	hook := slides[1]
	if hook.Type != models.SlideHook {
		t.Fatalf("slide 2 is %q, want hook", hook.Type)
	}
	if hook.Topic != "food" {
		t.Errorf("hook Topic = %q, want lesson topic", hook.Topic)
	}
}

func TestAssembleSlidesWithoutHook(t *testing.T) {
	svc := NewSlideService()
	svc.Options.IncludeHook = false

	slides, err := svc.AssembleSlides(makeLesson())
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	for _, slide := range slides {
		if slide.Type == models.SlideHook {
			t.Error("hook slide emitted with IncludeHook disabled")
		}
	}
}

func TestAssembleSlidesTitleAndOutro(t *testing.T) {
	svc := NewSlideService()

	slides, err := svc.AssembleSlides(makeLesson())
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	first := slides[0]
	if first.Type != models.SlideTitle {
		t.Fatalf("first slide is %q, want title", first.Type)
	}
	if first.Title != "Food and Cooking" || first.Level != "B1" {
		t.Errorf("title slide carries %q/%q", first.Title, first.Level)
	}
	if first.Subtitle != "Everyday cooking vocabulary" {
		t.Errorf("title subtitle = %q, want lesson focus", first.Subtitle)
	}
	if !first.RequiresImage {
		t.Error("title slide must require an image")
	}

	last := slides[len(slides)-1]
	if last.Type != models.SlideOutro {
		t.Fatalf("last slide is %q, want outro", last.Type)
	}
	if last.Message != "Great job learning about food!" {
		t.Errorf("outro message = %q", last.Message)
	}
	if last.CallToAction != "Follow for more lessons!" {
		t.Errorf("outro call to action = %q", last.CallToAction)
	}
}

func TestAssembleSlidesTopicFallsBackToTitle(t *testing.T) {
	svc := NewSlideService()

	lesson := makeLesson()
	lesson.Topic = ""

	slides, err := svc.AssembleSlides(lesson)
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	outro := slides[len(slides)-1]
	if outro.Message != "Great job learning about Food and Cooking!" {
		t.Errorf("outro message = %q, want the title as topic", outro.Message)
	}
}

func TestVocabularySlides(t *testing.T) {
	words := []models.VocabularyWord{
		{Term: "simmer", PartOfSpeech: "verb", Definition: "to cook gently", Example: "Simmer the soup.", Pronunciation: "/SIM-er/"},
		{Term: "whisk", Definition: "to beat quickly"},
		{Term: "chop", Definition: "to cut into pieces"},
	}

	svc := NewSlideService()
	slides, err := svc.AssembleSlides(makeLesson(models.Section{
		Title: "Key Vocabulary",
		Words: words,
	}))
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	var vocab []models.Slide
	for _, slide := range slides {
		if slide.Type == models.SlideVocabulary {
			vocab = append(vocab, slide)
		}
	}

	if len(vocab) != len(words) {
		t.Fatalf("got %d vocabulary slides, want %d", len(vocab), len(words))
	}
	for i, slide := range vocab {
		if slide.Term != words[i].Term {
			t.Errorf("vocabulary slide %d term = %q, want %q", i, slide.Term, words[i].Term)
		}
		if !slide.RequiresImage {
			t.Errorf("vocabulary slide %q must require an image", slide.Term)
		}
	}
	if vocab[0].Pronunciation != "/SIM-er/" || vocab[0].Definition != "to cook gently" {
		t.Errorf("vocabulary slide 0 payload incomplete: %+v", vocab[0])
	}
}

func TestSummarySlideTermOrderAndCap(t *testing.T) {
	var words []models.VocabularyWord
	for _, term := range []string{"one", "two", "three", "four", "five", "six", "seven", "eight"} {
		words = append(words, models.VocabularyWord{Term: term, Definition: "d"})
	}

	svc := NewSlideService()
	slides, err := svc.AssembleSlides(makeLesson(models.Section{
		Title: "Key Vocabulary",
		Words: words,
	}))
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	var summary *models.Slide
	for i := range slides {
		if slides[i].Type == models.SlideSummary {
			summary = &slides[i]
		}
	}
	if summary == nil {
		t.Fatal("no summary slide emitted")
	}
	if summary.Title != "Key Vocabulary" {
		t.Errorf("summary title = %q", summary.Title)
	}
	if len(summary.Terms) != maxSummaryTerms {
		t.Fatalf("summary has %d terms, want %d", len(summary.Terms), maxSummaryTerms)
	}
	for i, want := range []string{"one", "two", "three", "four", "five", "six"} {
		if summary.Terms[i] != want {
			t.Errorf("summary term %d = %q, want %q", i, summary.Terms[i], want)
		}
	}
	if summary.RequiresImage {
		t.Error("summary slide must not require an image")
	}

	// The summary comes right before the outro.
	if slides[len(slides)-2].Type != models.SlideSummary {
		t.Errorf("summary is not the second-to-last slide: %v", slideTypes(slides))
	}
}

func TestNoSummaryWithoutVocabulary(t *testing.T) {
	svc := NewSlideService()
	slides, err := svc.AssembleSlides(makeLesson(models.Section{
		Title:   "Reading Passage",
		Content: "A short text about food.",
	}))
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	for _, slide := range slides {
		if slide.Type == models.SlideSummary {
			t.Error("summary slide emitted for a lesson without vocabulary")
		}
	}
}

func TestObjectivesExtraction(t *testing.T) {
	svc := NewSlideService()
	slides, err := svc.AssembleSlides(makeLesson(models.Section{
		Title:   "Objectives",
		Content: "Learn ten cooking verbs\n• Practice ordering food\nok\n- Describe your favourite dish",
	}))
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	var objectives *models.Slide
	for i := range slides {
		if slides[i].Type == models.SlideObjectives {
			objectives = &slides[i]
		}
	}
	if objectives == nil {
		t.Fatal("no objectives slide emitted")
	}

	want := []string{"Learn ten cooking verbs", "Practice ordering food", "Describe your favourite dish"}
	if len(objectives.Objectives) != len(want) {
		t.Fatalf("got objectives %v, want %v", objectives.Objectives, want)
	}
	for i := range want {
		if objectives.Objectives[i] != want[i] {
			t.Errorf("objective %d = %q, want %q", i, objectives.Objectives[i], want[i])
		}
	}
	if objectives.RequiresImage {
		t.Error("objectives slide must not require an image")
	}
}

func TestObjectivesCap(t *testing.T) {
	body := strings.Join([]string{
		"Objective number one here",
		"Objective number two here",
		"Objective number three here",
		"Objective number four here",
		"Objective number five here",
	}, "\n")

	objectives := extractObjectives(body)
	if len(objectives) != maxObjectives {
		t.Errorf("got %d objectives, want %d", len(objectives), maxObjectives)
	}
}

func TestObjectivesSectionConsumedWithoutSlide(t *testing.T) {
	// All lines too short to qualify: the section yields no slide but must
	// not resurface as a reading slide later.
	svc := NewSlideService()
	slides, err := svc.AssembleSlides(makeLesson(models.Section{
		Title:   "Objectives",
		Content: "short\ntiny",
	}))
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	for _, slide := range slides {
		if slide.Type == models.SlideObjectives || slide.Type == models.SlideReading {
			t.Errorf("unexpected %q slide from a consumed objectives section", slide.Type)
		}
	}
}

func TestGrammarSlideTruncation(t *testing.T) {
	long := strings.Repeat("g", 450)

	svc := NewSlideService()
	slides, err := svc.AssembleSlides(makeLesson(models.Section{
		Title:      "Grammar Point",
		Content:    long,
		Paragraphs: []string{"example one", "example two", "example three"},
	}))
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	var grammar *models.Slide
	for i := range slides {
		if slides[i].Type == models.SlideGrammar {
			grammar = &slides[i]
		}
	}
	if grammar == nil {
		t.Fatal("no grammar slide emitted")
	}
	if len(grammar.Explanation) != maxGrammarChars {
		t.Errorf("grammar explanation is %d chars, want %d", len(grammar.Explanation), maxGrammarChars)
	}
	if len(grammar.Examples) != 2 {
		t.Errorf("grammar carries %d examples, want 2", len(grammar.Examples))
	}
}

func TestReadingSlideJoinsParagraphs(t *testing.T) {
	svc := NewSlideService()
	slides, err := svc.AssembleSlides(makeLesson(models.Section{
		Title:      "Reading Passage",
		Paragraphs: []string{"First paragraph.", "  ", "Second paragraph."},
	}))
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	var reading *models.Slide
	for i := range slides {
		if slides[i].Type == models.SlideReading {
			reading = &slides[i]
		}
	}
	if reading == nil {
		t.Fatal("no reading slide emitted")
	}
	if reading.Content != "First paragraph. Second paragraph." {
		t.Errorf("reading content = %q", reading.Content)
	}
	if !reading.RequiresImage {
		t.Error("reading slide must require an image")
	}
}

func TestReadingSlideTruncation(t *testing.T) {
	long := strings.Repeat("r", 500)

	svc := NewSlideService()
	slides, err := svc.AssembleSlides(makeLesson(models.Section{
		Title:   "Reading Passage",
		Content: long,
	}))
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	for _, slide := range slides {
		if slide.Type == models.SlideReading && len(slide.Content) != maxReadingChars {
			t.Errorf("reading content is %d chars, want %d", len(slide.Content), maxReadingChars)
		}
	}
}

func TestExampleSlideHighlight(t *testing.T) {
	svc := NewSlideService()
	slides, err := svc.AssembleSlides(makeLesson(models.Section{
		Title:            "Example Dialogue",
		Content:          "Could I have the bill, please?",
		TargetVocabulary: []string{"bill", "menu"},
	}))
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	var example *models.Slide
	for i := range slides {
		if slides[i].Type == models.SlideExample {
			example = &slides[i]
		}
	}
	if example == nil {
		t.Fatal("no example slide emitted")
	}
	if example.Context != "Example Dialogue" {
		t.Errorf("example context = %q", example.Context)
	}
	if example.Highlight != "bill" {
		t.Errorf("example highlight = %q, want first target vocabulary term", example.Highlight)
	}
}

func TestActivitySlide(t *testing.T) {
	tests := []struct {
		name    string
		section models.Section
		want    string
	}{
		{
			"procedure preferred",
			models.Section{Title: "Practice Activity", Procedure: "Pair up and order food.", Content: "body"},
			"Pair up and order food.",
		},
		{
			"content fallback",
			models.Section{Title: "Practice Activity", Content: "Describe your last meal."},
			"Describe your last meal.",
		},
		{
			"placeholder fallback",
			models.Section{Title: "Practice Activity"},
			activityPlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSlideService()
			slides, err := svc.AssembleSlides(makeLesson(tt.section))
			if err != nil {
				t.Fatalf("AssembleSlides: %v", err)
			}

			var activity *models.Slide
			for i := range slides {
				if slides[i].Type == models.SlideActivity {
					activity = &slides[i]
				}
			}
			if activity == nil {
				t.Fatal("no activity slide emitted")
			}
			if activity.Instructions != tt.want {
				t.Errorf("instructions = %q, want %q", activity.Instructions, tt.want)
			}
			if activity.RequiresImage {
				t.Error("activity slide must not require an image")
			}
		})
	}
}

func TestActivitySlidesDisabled(t *testing.T) {
	svc := NewSlideService()
	svc.Options.IncludeActivities = false

	slides, err := svc.AssembleSlides(makeLesson(models.Section{
		Title:   "Practice Activity",
		Content: "Describe your last meal.",
	}))
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	for _, slide := range slides {
		if slide.Type == models.SlideActivity {
			t.Error("activity slide emitted with IncludeActivities disabled")
		}
	}
}

func TestQuizSlidesCapAndNumbering(t *testing.T) {
	var questions []models.Question
	for i := 0; i < 7; i++ {
		questions = append(questions, models.Question{
			Text:    "Question text",
			Options: []string{"a", "b"},
			Answer:  "a",
		})
	}

	svc := NewSlideService()
	svc.Options.IncludeAnswerSlides = false

	slides, err := svc.AssembleSlides(makeLesson(models.Section{
		Title:     "Quiz Time",
		Questions: questions,
	}))
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	var quiz []models.Slide
	for _, slide := range slides {
		if slide.Type == models.SlideQuiz {
			quiz = append(quiz, slide)
		}
	}

	if len(quiz) != maxQuizQuestions {
		t.Fatalf("got %d quiz slides, want %d", len(quiz), maxQuizQuestions)
	}
	for i, slide := range quiz {
		if slide.QuestionNumber != i+1 {
			t.Errorf("quiz slide %d numbered %d", i, slide.QuestionNumber)
		}
		if slide.TotalQuestions != maxQuizQuestions {
			t.Errorf("quiz slide %d total = %d, want %d", i, slide.TotalQuestions, maxQuizQuestions)
		}
	}
}

func TestQuizAnswerSlides(t *testing.T) {
	svc := NewSlideService()

	slides, err := svc.AssembleSlides(makeLesson(models.Section{
		Title: "Quiz Time",
		Questions: []models.Question{
			{Text: "What does simmer mean?", Answer: "to cook gently"},
			{Text: "No answer given"},
		},
	}))
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	var sequence []models.SlideType
	var answers []models.Slide
	for _, slide := range slides {
		if slide.Type == models.SlideQuiz || slide.Type == models.SlideAnswer {
			sequence = append(sequence, slide.Type)
		}
		if slide.Type == models.SlideAnswer {
			answers = append(answers, slide)
		}
	}

	want := []models.SlideType{models.SlideQuiz, models.SlideAnswer, models.SlideQuiz, models.SlideAnswer}
	if len(sequence) != len(want) {
		t.Fatalf("quiz/answer sequence %v, want %v", sequence, want)
	}
	for i := range want {
		if sequence[i] != want[i] {
			t.Fatalf("quiz/answer sequence %v, want %v", sequence, want)
		}
	}

	if answers[0].Answer != "to cook gently" {
		t.Errorf("answer slide 0 = %q", answers[0].Answer)
	}
	if answers[1].Answer != answerPlaceholder {
		t.Errorf("answer slide 1 = %q, want placeholder", answers[1].Answer)
	}
	if answers[0].Encouragement != answerEncouragement {
		t.Errorf("answer encouragement = %q", answers[0].Encouragement)
	}
}

func TestQuizStringQuestionFallback(t *testing.T) {
	svc := NewSlideService()
	svc.Options.IncludeAnswerSlides = false

	slides, err := svc.AssembleSlides(makeLesson(models.Section{
		Title: "Quiz Time",
		Questions: []models.Question{
			{Raw: `{"options":["a","b"]}`, Options: []string{"a", "b"}},
		},
	}))
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	for _, slide := range slides {
		if slide.Type == models.SlideQuiz {
			if slide.Question != `{"options":["a","b"]}` {
				t.Errorf("quiz question = %q, want the raw representation", slide.Question)
			}
			return
		}
	}
	t.Fatal("no quiz slide emitted")
}

func TestSequenceStrictlyIncreasing(t *testing.T) {
	svc := NewSlideService()
	slides, err := svc.AssembleSlides(makeLesson(
		models.Section{Title: "Objectives", Content: "Learn ten cooking verbs"},
		models.Section{Title: "Key Vocabulary", Words: []models.VocabularyWord{{Term: "simmer"}}},
		models.Section{Title: "Reading Passage", Content: "A text."},
		models.Section{Title: "Quiz Time", Questions: []models.Question{{Text: "Q?"}}},
	))
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	seen := make(map[string]bool)
	for i, slide := range slides {
		if slide.Sequence != i+1 {
			t.Errorf("slide %d has sequence %d", i, slide.Sequence)
		}
		if slide.ID == "" {
			t.Errorf("slide %d has no ID", i)
		}
		if seen[slide.ID] {
			t.Errorf("duplicate slide ID %q", slide.ID)
		}
		seen[slide.ID] = true
		if slide.RequiresImage != slide.Type.RequiresImage() {
			t.Errorf("slide %d (%s) requires_image = %v", i, slide.Type, slide.RequiresImage)
		}
	}
}

func TestAssembleSlidesDeterministic(t *testing.T) {
	lesson := makeLesson(
		models.Section{Title: "Key Vocabulary", Words: []models.VocabularyWord{{Term: "simmer"}, {Term: "whisk"}}},
		models.Section{Title: "Quiz Time", Questions: []models.Question{{Text: "Q?", Answer: "A"}}},
	)

	svc := NewSlideService()
	first, err := svc.AssembleSlides(lesson)
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}
	second, err := svc.AssembleSlides(lesson)
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Type != second[i].Type || first[i].Sequence != second[i].Sequence {
			t.Errorf("slide %d differs between runs: %q/%d vs %q/%d",
				i, first[i].Type, first[i].Sequence, second[i].Type, second[i].Sequence)
		}
	}
}

func TestIntroSectionSkipped(t *testing.T) {
	svc := NewSlideService()
	slides, err := svc.AssembleSlides(makeLesson(models.Section{
		Title:   "Warm-Up",
		Content: "Today we talk about food, a topic everyone loves discussing at length.",
	}))
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}

	got := slideTypes(slides)
	want := []models.SlideType{models.SlideTitle, models.SlideHook, models.SlideOutro}
	if len(got) != len(want) {
		t.Errorf("intro section produced extra slides: %v", got)
	}
}

func TestFallbackSectionNeedsEnoughText(t *testing.T) {
	svc := NewSlideService()

	// Summary sections have no emitter; long enough text falls back to a
	// reading slide, short text is dropped.
	long, err := svc.AssembleSlides(makeLesson(models.Section{
		Title:   "Lesson Summary",
		Content: "This lesson covered cooking verbs, restaurant phrases and food adjectives.",
	}))
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}
	foundReading := false
	for _, slide := range long {
		if slide.Type == models.SlideReading {
			foundReading = true
		}
	}
	if !foundReading {
		t.Error("long unmatched section did not fall back to a reading slide")
	}

	short, err := svc.AssembleSlides(makeLesson(models.Section{
		Title:   "Lesson Summary",
		Content: "Short.",
	}))
	if err != nil {
		t.Fatalf("AssembleSlides: %v", err)
	}
	for _, slide := range short {
		if slide.Type == models.SlideReading {
			t.Error("short unmatched section produced a reading slide")
		}
	}
}
