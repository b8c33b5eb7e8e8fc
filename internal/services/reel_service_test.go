// internal/services/reel_service_test.go
package services

import (
	"strings"
	"testing"

	apperrors "github.com/reelingo/ReelLingo/internal/errors"
	"github.com/reelingo/ReelLingo/internal/models"
	"github.com/reelingo/ReelLingo/internal/storage"
)

func newTestReelService(t *testing.T) *ReelService {
	t.Helper()

	fileStorage, err := storage.NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorage: %v", err)
	}
	t.Cleanup(fileStorage.Close)

	return NewReelService(fileStorage, NewSlideService())
}

func TestCreateAndGetReel(t *testing.T) {
	svc := newTestReelService(t)

	lesson := makeLesson(models.Section{
		Title: "Key Vocabulary",
		Words: []models.VocabularyWord{{Term: "simmer", Definition: "to cook gently"}},
	})

	created, err := svc.CreateReel(lesson)
	if err != nil {
		t.Fatalf("CreateReel: %v", err)
	}
	if created.ID == "" {
		t.Fatal("reel has no ID")
	}
	if created.LessonID != lesson.ID {
		t.Errorf("reel lesson ID = %d, want %d", created.LessonID, lesson.ID)
	}
	if created.SlideCount != len(created.Slides) {
		t.Errorf("slide count %d does not match %d slides", created.SlideCount, len(created.Slides))
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("reel timestamps not set")
	}

	loaded, err := svc.GetReel(created.ID)
	if err != nil {
		t.Fatalf("GetReel: %v", err)
	}
	if loaded.ID != created.ID || loaded.Title != created.Title {
		t.Errorf("loaded reel differs: %q/%q", loaded.ID, loaded.Title)
	}
	if len(loaded.Slides) != len(created.Slides) {
		t.Fatalf("loaded %d slides, want %d", len(loaded.Slides), len(created.Slides))
	}
	for i := range created.Slides {
		if loaded.Slides[i].Slide.Type != created.Slides[i].Slide.Type {
			t.Errorf("slide %d type %q, want %q",
				i, loaded.Slides[i].Slide.Type, created.Slides[i].Slide.Type)
		}
	}
}

func TestCreateReelPropagatesInvalidLesson(t *testing.T) {
	svc := newTestReelService(t)

	_, err := svc.CreateReel(&models.Lesson{Title: ""})
	if err == nil {
		t.Fatal("expected error for invalid lesson")
	}
	if !apperrors.IsInvalidLesson(err) {
		t.Errorf("error = %T, want invalid lesson", err)
	}
}

func TestCreateReelReplacesPreviousUpload(t *testing.T) {
	svc := newTestReelService(t)
	lesson := makeLesson()

	first, err := svc.CreateReel(lesson)
	if err != nil {
		t.Fatalf("CreateReel: %v", err)
	}
	second, err := svc.CreateReel(lesson)
	if err != nil {
		t.Fatalf("CreateReel: %v", err)
	}

	if first.ID == second.ID {
		t.Error("re-upload reused the previous reel ID")
	}

	reels, err := svc.ListReels()
	if err != nil {
		t.Fatalf("ListReels: %v", err)
	}
	if len(reels) != 1 {
		t.Fatalf("got %d reels after re-upload, want 1", len(reels))
	}
	if reels[0].ID != second.ID {
		t.Errorf("surviving reel is %q, want %q", reels[0].ID, second.ID)
	}
}

func TestListReelsEmpty(t *testing.T) {
	svc := newTestReelService(t)

	reels, err := svc.ListReels()
	if err != nil {
		t.Fatalf("ListReels: %v", err)
	}
	if len(reels) != 0 {
		t.Errorf("got %d reels, want none", len(reels))
	}
}

func TestDeleteReel(t *testing.T) {
	svc := newTestReelService(t)

	created, err := svc.CreateReel(makeLesson())
	if err != nil {
		t.Fatalf("CreateReel: %v", err)
	}

	if err := svc.DeleteReel(created.ID); err != nil {
		t.Fatalf("DeleteReel: %v", err)
	}

	if _, err := svc.GetReel(created.ID); !apperrors.IsNotFoundError(err) {
		t.Errorf("GetReel after delete = %v, want not found", err)
	}

	if err := svc.DeleteReel("missing"); !apperrors.IsNotFoundError(err) {
		t.Errorf("DeleteReel(missing) = %v, want not found", err)
	}
}

func TestSaveAndLoadScript(t *testing.T) {
	svc := newTestReelService(t)

	created, err := svc.CreateReel(makeLesson())
	if err != nil {
		t.Fatalf("CreateReel: %v", err)
	}

	if _, err := svc.LoadScript(created.ID); !apperrors.IsNotFoundError(err) {
		t.Errorf("LoadScript before save = %v, want not found", err)
	}

	script := NewScriptService(nil).GenerateScript(created, models.ToneCasual)
	if err := svc.SaveScript(created.ID, script); err != nil {
		t.Fatalf("SaveScript: %v", err)
	}

	loaded, err := svc.LoadScript(created.ID)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if loaded.Tone != models.ToneCasual || len(loaded.Lines) != len(script.Lines) {
		t.Errorf("loaded script differs: tone %q, %d lines", loaded.Tone, len(loaded.Lines))
	}

	if err := svc.SaveScript("missing", script); !apperrors.IsNotFoundError(err) {
		t.Errorf("SaveScript(missing) = %v, want not found", err)
	}
}

func TestPaginateLongReadings(t *testing.T) {
	svc := newTestReelService(t)

	long := strings.TrimSpace(strings.Repeat("some reading words here ", 5))

	reel := &models.Reel{
		ID: "r1",
		Slides: []models.GeneratedSlide{
			{Slide: models.Slide{ID: "a", Type: models.SlideTitle, Sequence: 1, Title: "Lesson"}},
			{Slide: models.Slide{ID: "b", Type: models.SlideReading, Sequence: 2, Title: "Passage", Content: long},
				ImageData: "data:image/png;base64,AAAA", ImagePrompt: "a scene"},
			{Slide: models.Slide{ID: "c", Type: models.SlideOutro, Sequence: 3, Message: "Bye"}},
		},
	}

	svc.PaginateLongReadings(reel, 50)

	if len(reel.Slides) <= 3 {
		t.Fatalf("long reading was not paginated: %d slides", len(reel.Slides))
	}

	var pages []models.GeneratedSlide
	for _, gs := range reel.Slides {
		if gs.Slide.Type == models.SlideReading {
			pages = append(pages, gs)
		}
	}
	if len(pages) < 2 {
		t.Fatalf("got %d reading pages, want at least 2", len(pages))
	}

	if pages[0].Slide.ID != "b" {
		t.Errorf("first page ID = %q, want the original slide ID", pages[0].Slide.ID)
	}
	if pages[0].ImageData == "" {
		t.Error("first page lost its image")
	}
	for i, page := range pages[1:] {
		if page.Slide.ID == "b" || page.Slide.ID == "" {
			t.Errorf("continuation page %d has ID %q", i+1, page.Slide.ID)
		}
		if page.ImageData != "" {
			t.Errorf("continuation page %d inherited image data", i+1)
		}
	}

	var rebuilt []string
	for _, page := range pages {
		if len([]rune(page.Slide.Content)) > 50 {
			t.Errorf("page content exceeds limit: %d chars", len([]rune(page.Slide.Content)))
		}
		if !strings.Contains(page.Slide.Title, "Passage (") {
			t.Errorf("page title = %q", page.Slide.Title)
		}
		rebuilt = append(rebuilt, page.Slide.Content)
	}
	if joined := strings.Join(rebuilt, " "); joined != long {
		t.Errorf("pagination lost text:\n%q\n%q", joined, long)
	}

	for i, gs := range reel.Slides {
		if gs.Slide.Sequence != i+1 {
			t.Errorf("slide %d sequence = %d", i, gs.Slide.Sequence)
		}
	}
	if reel.SlideCount != len(reel.Slides) {
		t.Errorf("slide count %d, want %d", reel.SlideCount, len(reel.Slides))
	}

	last := reel.Slides[len(reel.Slides)-1]
	if last.Slide.Type != models.SlideOutro {
		t.Errorf("outro no longer last: %q", last.Slide.Type)
	}
}

func TestPaginateShortReadingUntouched(t *testing.T) {
	svc := newTestReelService(t)

	reel := &models.Reel{
		ID: "r1",
		Slides: []models.GeneratedSlide{
			{Slide: models.Slide{ID: "a", Type: models.SlideReading, Sequence: 1, Title: "Passage", Content: "Short text."}},
		},
	}

	svc.PaginateLongReadings(reel, 50)

	if len(reel.Slides) != 1 {
		t.Fatalf("short reading was split: %d slides", len(reel.Slides))
	}
	if reel.Slides[0].Slide.Title != "Passage" {
		t.Errorf("short reading title changed: %q", reel.Slides[0].Slide.Title)
	}
}

func TestSplitIntoPages(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		want     []string
	}{
		{"fits in one", "hello world", 20, []string{"hello world"}},
		{"splits on words", "aaa bbb ccc ddd", 7, []string{"aaa bbb", "ccc ddd"}},
		{"overlong word cut", "aaaaaaaaaa", 4, []string{"aaaa", "aaaa", "aa"}},
		{"blank input passthrough", "   ", 10, []string{"   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitIntoPages(tt.text, tt.maxChars)
			if len(got) != len(tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("page %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
