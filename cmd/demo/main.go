// cmd/demo/main.go
//
// Offline demonstration of the lesson pipeline: reads a lesson JSON file,
// assembles the slide reel, generates the voiceover script, and prints the
// SRT rendering. No network calls, no server.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/reelingo/ReelLingo/internal/models"
	"github.com/reelingo/ReelLingo/internal/services"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <lesson.json> [tone]\n", os.Args[0])
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read lesson file: %v", err)
	}

	var lesson models.Lesson
	if err := json.Unmarshal(data, &lesson); err != nil {
		log.Fatalf("Failed to parse lesson: %v", err)
	}

	tone := models.ToneProfessional
	if len(os.Args) > 2 {
		tone = models.Tone(os.Args[2])
	}

	slideService := services.NewSlideService()
	slides, err := slideService.AssembleSlides(&lesson)
	if err != nil {
		log.Fatalf("Failed to assemble slides: %v", err)
	}

	fmt.Printf("Assembled %d slides:\n", len(slides))
	for _, slide := range slides {
		marker := " "
		if slide.RequiresImage {
			marker = "*"
		}
		fmt.Printf("  %2d %s %-12s %s\n", slide.Sequence, marker, slide.Type, slide.Title)
	}

	reel := &models.Reel{
		Title:  lesson.Title,
		Level:  lesson.Level,
		Topic:  lesson.Topic,
		Slides: make([]models.GeneratedSlide, len(slides)),
	}
	for i, slide := range slides {
		reel.Slides[i] = models.GeneratedSlide{Slide: slide}
	}

	scriptService := services.NewScriptService(nil)
	script := scriptService.GenerateScript(reel, tone)

	fmt.Printf("\nVoiceover script: %d lines, %.1fs total\n\n",
		len(script.Lines), script.TotalDurationSeconds)

	exportService := services.NewExportService()
	srt, err := exportService.ExportScript(script, "srt")
	if err != nil {
		log.Fatalf("Failed to render SRT: %v", err)
	}
	fmt.Println(srt)
}
