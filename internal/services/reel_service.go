// internal/services/reel_service.go
package services

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/reelingo/ReelLingo/internal/errors"
	"github.com/reelingo/ReelLingo/internal/models"
	"github.com/reelingo/ReelLingo/internal/storage"
	"github.com/reelingo/ReelLingo/internal/utils"
)

const (
	reelsDir       = "reels"
	reelFileName   = "reel.json"
	scriptFileName = "script.json"
)

// ReelService persists assembled reels and their voiceover scripts as JSON
// files, one directory per reel.
type ReelService struct {
	Storage      *storage.FileStorage
	SlideService *SlideService
	logger       *utils.Logger
}

func NewReelService(fileStorage *storage.FileStorage, slideService *SlideService) *ReelService {
	return &ReelService{
		Storage:      fileStorage,
		SlideService: slideService,
		logger:       utils.GetLogger(),
	}
}

func reelDir(reelID string) string {
	return filepath.Join(reelsDir, reelID)
}

// CreateReel assembles a reel from the lesson and saves it. Re-uploading a
// lesson replaces any reel previously built from the same lesson ID.
func (s *ReelService) CreateReel(lesson *models.Lesson) (*models.Reel, error) {
	slides, err := s.SlideService.AssembleSlides(lesson)
	if err != nil {
		return nil, err
	}

	if lesson.ID != 0 {
		if err := s.deleteReelsForLesson(lesson.ID); err != nil {
			s.logger.Warnf("failed to remove previous reels for lesson %d: %v", lesson.ID, err)
		}
	}

	generated := make([]models.GeneratedSlide, len(slides))
	for i, slide := range slides {
		generated[i] = models.GeneratedSlide{Slide: slide}
	}

	topic := lesson.Topic
	if topic == "" {
		topic = lesson.Title
	}

	now := time.Now()
	reel := &models.Reel{
		ID:         uuid.NewString(),
		LessonID:   lesson.ID,
		Title:      lesson.Title,
		Level:      lesson.Level,
		Topic:      topic,
		SlideCount: len(generated),
		Slides:     generated,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.SaveReel(reel); err != nil {
		return nil, err
	}

	return reel, nil
}

// SaveReel writes the reel, refreshing UpdatedAt and SlideCount.
func (s *ReelService) SaveReel(reel *models.Reel) error {
	if reel == nil || reel.ID == "" {
		return apperrors.NewValidationError("reel has no ID", nil)
	}

	reel.SlideCount = len(reel.Slides)
	reel.UpdatedAt = time.Now()

	if err := s.Storage.SaveJSONFile(reelDir(reel.ID), reelFileName, reel); err != nil {
		return apperrors.NewProcessingError("failed to save reel", err)
	}
	return nil
}

// GetReel loads one reel by ID.
func (s *ReelService) GetReel(reelID string) (*models.Reel, error) {
	if !s.Storage.FileExists(reelDir(reelID), reelFileName) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("reel %s not found", reelID), nil)
	}

	var reel models.Reel
	if err := s.Storage.LoadJSONFile(reelDir(reelID), reelFileName, &reel); err != nil {
		return nil, apperrors.NewProcessingError("failed to load reel", err)
	}
	return &reel, nil
}

// ListReels returns all saved reels. Unreadable entries are logged and
// skipped so one corrupt file does not hide the rest.
func (s *ReelService) ListReels() ([]*models.Reel, error) {
	ids, err := s.Storage.ListDirs(reelsDir)
	if err != nil {
		return nil, apperrors.NewProcessingError("failed to list reels", err)
	}

	reels := make([]*models.Reel, 0, len(ids))
	for _, id := range ids {
		reel, err := s.GetReel(id)
		if err != nil {
			s.logger.Warnf("skipping unreadable reel %s: %v", id, err)
			continue
		}
		reels = append(reels, reel)
	}
	return reels, nil
}

// DeleteReel removes the reel and its script.
func (s *ReelService) DeleteReel(reelID string) error {
	if !s.Storage.DirExists(reelDir(reelID)) {
		return apperrors.NewNotFoundError(fmt.Sprintf("reel %s not found", reelID), nil)
	}
	return s.Storage.DeleteDir(reelDir(reelID))
}

// SaveScript stores the voiceover script next to its reel.
func (s *ReelService) SaveScript(reelID string, script *models.VoiceoverScript) error {
	if !s.Storage.DirExists(reelDir(reelID)) {
		return apperrors.NewNotFoundError(fmt.Sprintf("reel %s not found", reelID), nil)
	}
	if err := s.Storage.SaveJSONFile(reelDir(reelID), scriptFileName, script); err != nil {
		return apperrors.NewProcessingError("failed to save script", err)
	}
	return nil
}

// LoadScript retrieves the stored voiceover script for the reel.
func (s *ReelService) LoadScript(reelID string) (*models.VoiceoverScript, error) {
	if !s.Storage.FileExists(reelDir(reelID), scriptFileName) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no script saved for reel %s", reelID), nil)
	}

	var script models.VoiceoverScript
	if err := s.Storage.LoadJSONFile(reelDir(reelID), scriptFileName, &script); err != nil {
		return nil, apperrors.NewProcessingError("failed to load script", err)
	}
	return &script, nil
}

func (s *ReelService) deleteReelsForLesson(lessonID int) error {
	reels, err := s.ListReels()
	if err != nil {
		return err
	}
	for _, reel := range reels {
		if reel.LessonID != lessonID {
			continue
		}
		if err := s.DeleteReel(reel.ID); err != nil {
			return err
		}
	}
	return nil
}

// PaginateLongReadings splits reading slides whose content exceeds maxChars
// into multiple slides, breaking on word boundaries. Slide IDs stay stable;
// continuation slides get fresh IDs and every sequence number is reassigned
// afterwards so order stays strictly increasing.
func (s *ReelService) PaginateLongReadings(reel *models.Reel, maxChars int) {
	if reel == nil || maxChars <= 0 {
		return
	}

	var out []models.GeneratedSlide
	for _, gs := range reel.Slides {
		if gs.Slide.Type != models.SlideReading || len([]rune(gs.Slide.Content)) <= maxChars {
			out = append(out, gs)
			continue
		}

		pages := splitIntoPages(gs.Slide.Content, maxChars)
		total := len(pages)
		for i, page := range pages {
			pageSlide := gs.Slide
			pageSlide.Content = page
			if total > 1 {
				pageSlide.Title = fmt.Sprintf("%s (%d/%d)", gs.Slide.Title, i+1, total)
			}
			if i > 0 {
				pageSlide.ID = uuid.NewString()
			}
			entry := models.GeneratedSlide{Slide: pageSlide}
			if i == 0 {
				entry.ImageData = gs.ImageData
				entry.ImagePrompt = gs.ImagePrompt
			}
			out = append(out, entry)
		}
	}

	for i := range out {
		out[i].Slide.Sequence = i + 1
	}
	reel.Slides = out
	reel.SlideCount = len(out)
}

// splitIntoPages cuts text into chunks of at most maxChars runes, preferring
// word boundaries. A single word longer than maxChars is cut mid-word.
func splitIntoPages(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var (
		pages   []string
		current strings.Builder
	)
	flush := func() {
		if current.Len() > 0 {
			pages = append(pages, current.String())
			current.Reset()
		}
	}

	for _, word := range words {
		for len([]rune(word)) > maxChars {
			flush()
			runes := []rune(word)
			pages = append(pages, string(runes[:maxChars]))
			word = string(runes[maxChars:])
		}
		needed := len([]rune(word))
		if current.Len() > 0 {
			needed++
		}
		if len([]rune(current.String()))+needed > maxChars {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	flush()

	if len(pages) == 0 {
		return []string{text}
	}
	return pages
}
