// internal/services/image_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/reelingo/ReelLingo/internal/config"
	"github.com/reelingo/ReelLingo/internal/llm"
	"github.com/reelingo/ReelLingo/internal/models"
	"github.com/reelingo/ReelLingo/internal/utils"
)

const (
	// Rate-limit backoff on the single-image path.
	imageBackoffInitial = 10 * time.Second
	imageBackoffFactor  = 1.5
	imageBackoffCap     = 30 * time.Second
	imageMaxAttempts    = 5

	// Batch generation across a reel's slides.
	imageBatchWorkers       = 3
	imageBatchSlideAttempts = 3
)

var ErrNoImageProvider = errors.New("active llm provider cannot generate images")

// ImageBatchResult summarizes a batch run over a reel. Batches always finish;
// per-slide failures are collected here instead of aborting the run.
type ImageBatchResult struct {
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// ImageService generates illustration images for reel slides through the
// active LLM provider.
type ImageService struct {
	LLMService *LLMService
	logger     *utils.Logger
}

func NewImageService(llmService *LLMService) *ImageService {
	return &ImageService{
		LLMService: llmService,
		logger:     utils.GetLogger(),
	}
}

// GenerateImage produces one image for the prompt. Rate-limit responses are
// retried with exponential backoff; any other error returns immediately.
func (s *ImageService) GenerateImage(ctx context.Context, prompt string) (*llm.ImageResponse, error) {
	generator := s.LLMService.ImageGenerator()
	if generator == nil {
		return nil, ErrNoImageProvider
	}

	cfg := config.GetCurrentConfig()
	req := llm.ImageRequest{Prompt: prompt}
	if cfg != nil {
		req.Model = cfg.ImageModel
		req.Size = cfg.ImageSize
	}

	delay := imageBackoffInitial
	var lastErr error

	for attempt := 1; attempt <= imageMaxAttempts; attempt++ {
		resp, err := generator.GenerateImage(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !llm.IsRateLimited(err) {
			return nil, err
		}

		lastErr = err
		if attempt == imageMaxAttempts {
			break
		}

		s.logger.Warnf("image generation rate limited, retrying in %s (attempt %d/%d)",
			delay, attempt, imageMaxAttempts)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * imageBackoffFactor)
		if delay > imageBackoffCap {
			delay = imageBackoffCap
		}
	}

	return nil, fmt.Errorf("image generation rate limited after %d attempts: %w",
		imageMaxAttempts, lastErr)
}

// GenerateReelImages fills in ImageData for every slide of the reel that
// requires an image, running a bounded worker pool. One failed slide never
// aborts the rest; the returned summary reports the per-slide outcome.
// Progress updates go to tracker when it is non-nil.
func (s *ImageService) GenerateReelImages(ctx context.Context, reel *models.Reel, tracker *ProgressTracker) (*ImageBatchResult, error) {
	if reel == nil {
		return nil, errors.New("reel is nil")
	}
	if s.LLMService.ImageGenerator() == nil {
		return nil, ErrNoImageProvider
	}

	var targets []int
	for i := range reel.Slides {
		if reel.Slides[i].Slide.RequiresImage && reel.Slides[i].ImageData == "" {
			targets = append(targets, i)
		}
	}

	result := &ImageBatchResult{Total: len(targets)}
	if len(targets) == 0 {
		if tracker != nil {
			tracker.Complete("No slides need images")
		}
		return result, nil
	}

	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(imageBatchWorkers)

	for _, idx := range targets {
		idx := idx
		g.Go(func() error {
			slide := &reel.Slides[idx]
			prompt := buildImagePrompt(&slide.Slide)

			var (
				resp *llm.ImageResponse
				err  error
			)
			for attempt := 1; attempt <= imageBatchSlideAttempts; attempt++ {
				resp, err = s.GenerateImage(gctx, prompt)
				if err == nil {
					break
				}
				if gctx.Err() != nil {
					break
				}
			}

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors,
					fmt.Sprintf("slide %d (%s): %v", slide.Slide.Sequence, slide.Slide.Type, err))
				s.logger.Warnf("image generation failed for slide %d: %v", slide.Slide.Sequence, err)
			} else {
				slide.ImageData = resp.DataURI
				slide.ImagePrompt = prompt
				result.Succeeded++
			}

			done++
			if tracker != nil {
				progress := done * 100 / len(targets)
				tracker.UpdateProgress(progress,
					fmt.Sprintf("Generated %d of %d images", done, len(targets)))
			}

			// Failures are reported through the summary, not the group.
			return nil
		})
	}

	_ = g.Wait()

	if tracker != nil {
		if result.Failed == 0 {
			tracker.Complete(fmt.Sprintf("All %d images generated", result.Succeeded))
		} else {
			tracker.Complete(fmt.Sprintf("%d of %d images generated (%d failed)",
				result.Succeeded, result.Total, result.Failed))
		}
	}

	return result, nil
}

// buildImagePrompt derives a text-to-image prompt from the slide content.
// Vocabulary slides prefer the lesson author's own prompt when present.
func buildImagePrompt(slide *models.Slide) string {
	const style = "Bright, friendly flat illustration for an English learning app, no text in the image."

	switch slide.Type {
	case models.SlideTitle:
		return fmt.Sprintf("Cover illustration for an English lesson titled %q about %s. %s",
			slide.Title, slide.Topic, style)
	case models.SlideHook:
		return fmt.Sprintf("Energetic opening scene about %s. %s", slide.Topic, style)
	case models.SlideVocabulary:
		if slide.ImagePrompt != "" {
			return slide.ImagePrompt
		}
		return fmt.Sprintf("Simple scene illustrating the word %q: %s. %s",
			slide.Term, slide.Definition, style)
	case models.SlideGrammar:
		return fmt.Sprintf("Abstract illustration of the grammar concept %q. %s",
			slide.Title, style)
	case models.SlideReading:
		return fmt.Sprintf("Scene depicting: %s. %s", truncate(slide.Content, 200), style)
	case models.SlideExample:
		return fmt.Sprintf("Scene depicting the sentence: %s. %s", slide.Sentence, style)
	case models.SlideOutro:
		return fmt.Sprintf("Celebratory closing scene with confetti. %s", style)
	default:
		return fmt.Sprintf("Illustration for an English lesson slide about %s. %s",
			slide.Topic, style)
	}
}
