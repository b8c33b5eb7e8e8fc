// internal/services/image_service_test.go
package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/reelingo/ReelLingo/internal/llm"
	"github.com/reelingo/ReelLingo/internal/models"
)

// rateLimitErr mimics a provider 429.
type rateLimitErr struct{}

func (rateLimitErr) Error() string { return "rate limited" }

func (rateLimitErr) RateLimited() bool { return true }

func TestGenerateImageNoProvider(t *testing.T) {
	svc := NewImageService(NewEmptyLLMService())

	if _, err := svc.GenerateImage(context.Background(), "a cat"); err != ErrNoImageProvider {
		t.Errorf("GenerateImage error = %v, want ErrNoImageProvider", err)
	}
}

func TestGenerateImageSuccess(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewImageService(installFakeProvider(t, "fake-img-ok", provider))

	resp, err := svc.GenerateImage(context.Background(), "a cat")
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if !strings.HasPrefix(resp.DataURI, "data:image/png;base64,") {
		t.Errorf("unexpected data URI %q", resp.DataURI)
	}
	if provider.callCount() != 1 {
		t.Errorf("provider called %d times, want 1", provider.callCount())
	}
}

func TestGenerateImageDoesNotRetryOrdinaryErrors(t *testing.T) {
	provider := &fakeProvider{
		imageF: func(req llm.ImageRequest) (*llm.ImageResponse, error) {
			return nil, errors.New("bad prompt")
		},
	}
	svc := NewImageService(installFakeProvider(t, "fake-img-err", provider))

	if _, err := svc.GenerateImage(context.Background(), "a cat"); err == nil {
		t.Fatal("expected error")
	}
	if provider.callCount() != 1 {
		t.Errorf("provider called %d times, want 1 (no retry)", provider.callCount())
	}
}

func TestGenerateImageRateLimitStopsOnContextCancel(t *testing.T) {
	provider := &fakeProvider{
		imageF: func(req llm.ImageRequest) (*llm.ImageResponse, error) {
			return nil, rateLimitErr{}
		},
	}
	svc := NewImageService(installFakeProvider(t, "fake-img-429", provider))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := svc.GenerateImage(ctx, "a cat")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if provider.callCount() != 1 {
		t.Errorf("provider called %d times before cancellation, want 1", provider.callCount())
	}
	if time.Since(start) > 2*time.Second {
		t.Error("cancelled call still waited out the backoff")
	}
}

func imageTestReel() *models.Reel {
	slides := []models.Slide{
		{ID: "s1", Type: models.SlideTitle, Sequence: 1, Title: "Food", Topic: "food", RequiresImage: true},
		{ID: "s2", Type: models.SlideObjectives, Sequence: 2, Objectives: []string{"learn"}},
		{ID: "s3", Type: models.SlideVocabulary, Sequence: 3, Term: "simmer", Definition: "to cook gently", RequiresImage: true},
		{ID: "s4", Type: models.SlideVocabulary, Sequence: 4, Term: "whisk", Definition: "to beat quickly", RequiresImage: true},
		{ID: "s5", Type: models.SlideOutro, Sequence: 5, Message: "Bye", RequiresImage: true},
	}

	reel := &models.Reel{ID: "r1", Title: "Food", Topic: "food"}
	for _, slide := range slides {
		reel.Slides = append(reel.Slides, models.GeneratedSlide{Slide: slide})
	}
	return reel
}

func TestGenerateReelImagesPartialSuccess(t *testing.T) {
	provider := &fakeProvider{
		imageF: func(req llm.ImageRequest) (*llm.ImageResponse, error) {
			if strings.Contains(req.Prompt, "whisk") {
				return nil, errors.New("content rejected")
			}
			return &llm.ImageResponse{DataURI: "data:image/png;base64,AAAA"}, nil
		},
	}
	svc := NewImageService(installFakeProvider(t, "fake-img-partial", provider))

	progressService := NewProgressService()
	tracker := progressService.CreateTracker("task-1")

	reel := imageTestReel()
	result, err := svc.GenerateReelImages(context.Background(), reel, tracker)
	if err != nil {
		t.Fatalf("GenerateReelImages: %v", err)
	}

	if result.Total != 4 {
		t.Errorf("total = %d, want 4 image slides", result.Total)
	}
	if result.Succeeded != 3 || result.Failed != 1 {
		t.Errorf("succeeded/failed = %d/%d, want 3/1", result.Succeeded, result.Failed)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "slide 4") {
		t.Errorf("errors = %v", result.Errors)
	}

	for _, gs := range reel.Slides {
		switch gs.Slide.ID {
		case "s2":
			if gs.ImageData != "" {
				t.Error("slide without requires_image received an image")
			}
		case "s4":
			if gs.ImageData != "" {
				t.Error("failed slide received image data")
			}
		default:
			if gs.ImageData == "" {
				t.Errorf("slide %s missing image data", gs.Slide.ID)
			}
			if gs.ImagePrompt == "" {
				t.Errorf("slide %s missing image prompt", gs.Slide.ID)
			}
		}
	}

	// The batch always completes the tracker, even with failures.
	select {
	case <-tracker.Done:
	default:
		t.Error("tracker not completed after batch")
	}
	if tracker.Status != "completed" || tracker.Progress != 100 {
		t.Errorf("tracker status %q progress %d", tracker.Status, tracker.Progress)
	}
}

func TestGenerateReelImagesSkipsExistingImages(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewImageService(installFakeProvider(t, "fake-img-skip", provider))

	reel := imageTestReel()
	for i := range reel.Slides {
		reel.Slides[i].ImageData = "data:image/png;base64,EXISTING"
	}

	result, err := svc.GenerateReelImages(context.Background(), reel, nil)
	if err != nil {
		t.Fatalf("GenerateReelImages: %v", err)
	}
	if result.Total != 0 {
		t.Errorf("total = %d, want 0 when everything already has images", result.Total)
	}
	if provider.callCount() != 0 {
		t.Errorf("provider called %d times, want 0", provider.callCount())
	}
}

func TestBuildImagePrompt(t *testing.T) {
	tests := []struct {
		name     string
		slide    models.Slide
		contains string
	}{
		{
			"vocabulary prefers author prompt",
			models.Slide{Type: models.SlideVocabulary, Term: "simmer", ImagePrompt: "a pot simmering on a stove"},
			"a pot simmering on a stove",
		},
		{
			"vocabulary falls back to term",
			models.Slide{Type: models.SlideVocabulary, Term: "simmer", Definition: "to cook gently"},
			`"simmer"`,
		},
		{
			"title uses lesson title",
			models.Slide{Type: models.SlideTitle, Title: "Food and Cooking", Topic: "food"},
			`"Food and Cooking"`,
		},
		{
			"example uses sentence",
			models.Slide{Type: models.SlideExample, Sentence: "Could I have the bill?"},
			"Could I have the bill?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildImagePrompt(&tt.slide)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("prompt %q does not contain %q", got, tt.contains)
			}
		})
	}
}
